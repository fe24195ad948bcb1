package repository

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate id")
	ErrInvalidValue = errors.New("invalid field value")
	ErrMissingField = errors.New("missing required field")
)
