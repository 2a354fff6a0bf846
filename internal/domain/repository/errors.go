package repository

import "errors"

// ErrDuplicate is returned when a write violates a unique constraint
var ErrDuplicate = errors.New("duplicate record")
