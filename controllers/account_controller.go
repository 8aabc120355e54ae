package controllers

import (
	"net/http"

	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	accounts *services.AccountService
}

func NewAccountController(accounts *services.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

// DELETE /api/account — the whole data tree goes in one transaction.
func (ctl *AccountController) Delete(c *gin.Context) {
	if err := ctl.accounts.DeleteAccount(c.Request.Context(), middlewares.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
