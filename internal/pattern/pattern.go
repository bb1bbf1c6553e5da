// Package pattern derives a deterministic repeating byte pattern from a
// 64-bit seed. The pattern tile packs the 8-, 16-, 32- and 64-bit
// truncations of the seed back to back in little-endian order, so a filled
// buffer is a pure function of (seed, length).
package pattern

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EncodedSize is the length of one packed tile: 1+2+4+8 bytes, no padding.
const EncodedSize = 15

// ErrInvalidPattern reports a malformed hex seed argument.
var ErrInvalidPattern = errors.New("invalid hex pattern")

// Parse decodes a hex seed like "0xDEADBEEF" or "DEADBEEF". Any trailing
// non-hex character is an error, not a truncation.
func Parse(s string) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	return v, nil
}

// Descriptor holds the four truncations of one seed value.
type Descriptor struct {
	P8  uint8
	P16 uint16
	P32 uint32
	P64 uint64
}

// Describe extracts the low 8, 16, 32 and all 64 bits of seed.
func Describe(seed uint64) Descriptor {
	return Descriptor{
		P8:  uint8(seed),
		P16: uint16(seed),
		P32: uint32(seed),
		P64: seed,
	}
}

// Encode returns the packed tile for the descriptor.
func (d Descriptor) Encode() [EncodedSize]byte {
	var b [EncodedSize]byte
	b[0] = d.P8
	binary.LittleEndian.PutUint16(b[1:3], d.P16)
	binary.LittleEndian.PutUint32(b[3:7], d.P32)
	binary.LittleEndian.PutUint64(b[7:15], d.P64)
	return b
}

func (d Descriptor) String() string {
	return fmt.Sprintf("p8=0x%02X p16=0x%04X p32=0x%08X p64=0x%016X",
		d.P8, d.P16, d.P32, d.P64)
}

// Fill tiles buf with the packed descriptor until fewer than EncodedSize
// bytes remain, then fills the tail by repeating P8.
func Fill(buf []byte, d Descriptor) {
	tile := d.Encode()
	off := 0
	for off+EncodedSize <= len(buf) {
		off += copy(buf[off:], tile[:])
	}
	for ; off < len(buf); off++ {
		buf[off] = d.P8
	}
}
