package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")

	// ErrStaleRecord is returned by guarded updates when the record's status at
	// write time no longer matches the status observed by the caller.
	ErrStaleRecord = errors.New("record changed since read")
)
