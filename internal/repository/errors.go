package repository

import "errors"

// ErrNotFound is returned by every repository implementation when the
// requested row does not exist. Services wrap it into a domain error.
var ErrNotFound = errors.New("record not found")
