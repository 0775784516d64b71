package repository

import "errors"

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a row whose key is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCategory is returned by Append for a category that cannot be
	// stored in the comma-separated log: empty, or containing a comma or a
	// line break.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrMissingIdentity is returned when an operation is called without a
	// resolved user.
	ErrMissingIdentity = errors.New("missing user identity")
)
