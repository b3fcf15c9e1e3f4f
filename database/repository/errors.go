package repository

import "errors"

// ErrNotFound is returned when a looked-up entity does not exist. Callers
// that have a fallback (e.g. the notification context resolver) match on it
// with errors.Is.
var ErrNotFound = errors.New("entity not found")
