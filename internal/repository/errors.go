package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageRead matches any StorageReadError.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite matches any StorageWriteError.
	ErrStorageWrite = errors.New("storage write failed")
)

// StorageReadError reports persisted data that is malformed or could not be
// read. Callers fall back to an empty collection.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

func (e *StorageReadError) Is(target error) bool { return target == ErrStorageRead }

// StorageWriteError reports a failed persist. The operation that produced it
// was not applied.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func (e *StorageWriteError) Is(target error) bool { return target == ErrStorageWrite }
