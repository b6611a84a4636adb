package service

import "errors"

// ErrValidation marks errors caused by the caller's input
var ErrValidation = errors.New("validation failed")
