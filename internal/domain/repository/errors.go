package repository

import "errors"

// ErrNotFound is returned when an id or unique key does not resolve to a
// row. Services rely on it to distinguish NotFound from dependency failure.
var ErrNotFound = errors.New("not found")
