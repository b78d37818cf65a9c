package services

import "errors"

// ErrValidation indicates a required field is missing or malformed.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials indicates an unknown email or a wrong
// password. Callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden indicates the authenticated user does not own the
// resource being mutated.
var ErrForbidden = errors.New("forbidden")
