package services

import "errors"

// ErrNotAllowed means the ownership chain (item → meal → day log → user)
// did not resolve to the requesting user. Controllers surface it without
// leaking whether the resource exists.
var ErrNotAllowed = errors.New("not allowed")

// ErrInvalidInput marks client-fixable validation failures rejected before
// any write.
var ErrInvalidInput = errors.New("invalid input")
