//go:build unix

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// Pwrite writes buf at off without moving the file cursor. May write fewer
// bytes than requested.
func Pwrite(f *os.File, buf []byte, off int64) (int, error) {
	return unix.Pwrite(int(f.Fd()), buf, off)
}

// Pread reads into buf at off. Returns 0, nil at end of file.
func Pread(f *os.File, buf []byte, off int64) (int, error) {
	return unix.Pread(int(f.Fd()), buf, off)
}
