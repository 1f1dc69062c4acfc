package repository

import "errors"

// ErrNotFound is returned by lookup methods when no row matches. Usecases
// map it onto their own sentinels.
var ErrNotFound = errors.New("not found")
