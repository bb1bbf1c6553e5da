//go:build linux

package platform

import (
	"errors"

	"golang.org/x/sys/unix"
)

// DIOAlignment asks the kernel for the memory alignment direct I/O requires
// on the filesystem holding path (statx STATX_DIOALIGN, Linux >= 6.1).
// Filesystems that predate the interface return ErrNoDIOAlign and callers
// fall back to the conventional 512 bytes.
func DIOAlignment(path string) (uint32, error) {
	var stx unix.Statx_t
	flags := unix.AT_STATX_SYNC_AS_STAT | unix.AT_NO_AUTOMOUNT
	if err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_DIOALIGN, &stx); err != nil {
		if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EOPNOTSUPP) {
			return 0, ErrNoDIOAlign
		}
		return 0, err
	}
	if stx.Mask&unix.STATX_DIOALIGN == 0 || stx.Dio_mem_align == 0 {
		return 0, ErrNoDIOAlign
	}
	return stx.Dio_mem_align, nil
}
