package controllers

import "errors"

// Sentinel errors the routes layer maps onto HTTP status codes. Controllers
// wrap them with fmt.Errorf("%w: ...") to carry a user-facing message.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
