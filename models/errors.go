package models

import "errors"

var (
	// ErrNotFound - the referenced memorial, grant or token does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden - the entity exists but the requester lacks permission
	ErrForbidden = errors.New("access denied")
	// ErrConflict - a grant already exists for the same identity
	ErrConflict = errors.New("already exists")
)
