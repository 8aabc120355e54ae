package main

import (
	"log"

	"nutritracker/config"
	"nutritracker/routes"
)

func main() {
	db := config.InitDB()
	r := routes.SetupRouter(db)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
