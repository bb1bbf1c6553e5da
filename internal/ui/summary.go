package ui

import (
	"fmt"
	"io"

	"github.com/snb-labs/dit/internal/pattern"
	"github.com/snb-labs/dit/internal/stats"
)

// RunInfo describes a run for the startup banner.
type RunInfo struct {
	Path      string
	Size      int64
	Mode      string
	Seed      uint64
	Desc      pattern.Descriptor
	ChunkSize int64
}

// PrintBanner writes the startup summary.
func PrintBanner(w io.Writer, info RunInfo) {
	fmt.Fprintln(w, "=== Direct I/O Pattern Test ===")
	fmt.Fprintf(w, "File    : %s\n", info.Path)
	fmt.Fprintf(w, "Size    : %d bytes (%s)\n", info.Size, stats.FormatMB(info.Size))
	fmt.Fprintf(w, "Mode    : %s\n", info.Mode)
	fmt.Fprintf(w, "Pattern : 0x%X\n", info.Seed)
	fmt.Fprintf(w, "Fields  : %s\n", info.Desc)
	fmt.Fprintf(w, "Buffer  : %s (reusable chunk)\n", stats.FormatMB(info.ChunkSize))
}

// DumpHex prints up to the first 32 bytes of buf as hex.
func DumpHex(w io.Writer, buf []byte, label string) {
	show := min(len(buf), 32)
	fmt.Fprintf(w, "%s (first %d bytes):\n ", label, show)
	for i := 0; i < show; i++ {
		fmt.Fprintf(w, " %02X", buf[i])
		if (i+1)%16 == 0 && i+1 < show {
			fmt.Fprint(w, "\n ")
		}
	}
	fmt.Fprintln(w)
}
