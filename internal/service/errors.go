package service

import "errors"

// ErrForbidden is returned when the acting user may not perform an operation
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when a request fails domain validation
var ErrValidation = errors.New("validation failed")
