// Package platform isolates the syscall-level pieces of unbuffered I/O:
// opening files with page-cache bypass and positioned reads/writes.
package platform

import (
	"errors"
	"os"

	"github.com/ncw/directio"
)

// ErrNoDIOAlign means the filesystem does not report its direct I/O
// alignment requirement.
var ErrNoDIOAlign = errors.New("filesystem does not report direct I/O alignment")

// OpenWrite opens path for positioned writing, creating it if needed and
// truncating existing content. When direct is set the file bypasses the OS
// page cache (O_DIRECT on Linux, F_NOCACHE on macOS).
func OpenWrite(path string, direct bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if direct {
		return directio.OpenFile(path, flags, 0o644)
	}
	return os.OpenFile(path, flags, 0o644)
}

// OpenRead opens an existing path for positioned reading, bypassing the
// page cache when direct is set.
func OpenRead(path string, direct bool) (*os.File, error) {
	if direct {
		return directio.OpenFile(path, os.O_RDONLY, 0)
	}
	return os.Open(path)
}
