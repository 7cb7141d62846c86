package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// document or row does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing contact name, malformed email, CMS document missing a slug).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
