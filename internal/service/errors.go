package service

import "errors"

// Sentinel failure classes. Services wrap these with fmt.Errorf("%w: ...")
// and handlers translate them with errors.Is.
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEventFull          = errors.New("event full")
)
