package engine

import (
	"errors"
	"fmt"
)

// ErrUnalignedSize rejects sizes that are not a multiple of AlignUnit.
// Validation happens before any I/O is attempted.
var ErrUnalignedSize = errors.New("not a multiple of the 512-byte alignment unit")

// IOError is a failed positioned read or write, tagged with the operation
// and the file offset where it happened.
type IOError struct {
	Op     string // "read" or "write"
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
