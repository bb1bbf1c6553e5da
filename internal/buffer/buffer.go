// Package buffer provisions memory blocks aligned for unbuffered I/O.
package buffer

import (
	"fmt"

	"github.com/ncw/directio"
)

// Unit is the granularity direct I/O imposes on transfer sizes and offsets.
const Unit = 512

// Alloc returns a block whose base address satisfies the platform's direct
// I/O memory alignment. size must be a positive multiple of Unit.
func Alloc(size int) ([]byte, error) {
	if size <= 0 || size%Unit != 0 {
		return nil, fmt.Errorf("aligned alloc: size %d is not a positive multiple of %d", size, Unit)
	}
	block := directio.AlignedBlock(size)
	if len(block) != size {
		return nil, fmt.Errorf("aligned alloc: got %d of %d bytes", len(block), size)
	}
	return block, nil
}

// Aligned reports whether b starts on the direct I/O alignment boundary.
func Aligned(b []byte) bool {
	return directio.IsAligned(b)
}
