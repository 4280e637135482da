// Package repository defines error types that are reused across the
// repositories.  These sentinel values let higher layers such as the
// catalog service distinguish a missing row from a failing store.
package repository

import "errors"

// ErrFilmNotFound is returned when no film_work row matches the requested
// id.  The catalog service translates it into a 404.
var ErrFilmNotFound = errors.New("film not found")
