//go:build !unix

package platform

import (
	"errors"
	"io"
	"os"
)

func Pwrite(f *os.File, buf []byte, off int64) (int, error) {
	return f.WriteAt(buf, off)
}

// Pread mirrors pread(2) semantics: end of file is 0, nil rather than
// io.EOF.
func Pread(f *os.File, buf []byte, off int64) (int, error) {
	n, err := f.ReadAt(buf, off)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}
