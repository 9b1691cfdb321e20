package domain

import "errors"

var (
	// ErrDuplicate indicates a uniqueness violation (email or follow edge already taken).
	ErrDuplicate = errors.New("duplicate value")
	// ErrInvalidReference indicates a child row referencing a missing parent.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidValue indicates a value rejected by a check constraint.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotFound is returned when a record cannot be located.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyPatch is returned when a partial update supplies no fields.
	ErrEmptyPatch = errors.New("no fields provided for update")
	// ErrSelfFollow rejects a user following themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrStorage wraps store failures that carry no more specific meaning.
	ErrStorage = errors.New("storage failure")
)
