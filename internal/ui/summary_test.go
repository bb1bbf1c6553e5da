package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snb-labs/dit/internal/pattern"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, RunInfo{
		Path:      "/dev/sdb1",
		Size:      4096,
		Mode:      "readwrite",
		Seed:      0xDEADBEEF,
		Desc:      pattern.Describe(0xDEADBEEF),
		ChunkSize: 4 * 1024 * 1024,
	})

	out := buf.String()
	assert.Contains(t, out, "File    : /dev/sdb1")
	assert.Contains(t, out, "Size    : 4096 bytes")
	assert.Contains(t, out, "Mode    : readwrite")
	assert.Contains(t, out, "Pattern : 0xDEADBEEF")
	assert.Contains(t, out, "p16=0xBEEF")
	assert.Contains(t, out, "Buffer  : 4.00 MB")
}

func TestDumpHex(t *testing.T) {
	var buf bytes.Buffer
	b := make([]byte, 64)
	pattern.Fill(b, pattern.Describe(0xDEADBEEF))
	DumpHex(&buf, b, "Pattern buffer")

	out := buf.String()
	assert.Contains(t, out, "Pattern buffer (first 32 bytes):")
	assert.Contains(t, out, "EF EF BE EF BE AD DE EF")
}

func TestDumpHexShortBuffer(t *testing.T) {
	var buf bytes.Buffer
	DumpHex(&buf, []byte{0xAB, 0xCD}, "tiny")
	assert.Contains(t, buf.String(), "tiny (first 2 bytes):")
	assert.Contains(t, buf.String(), "AB CD")
}
