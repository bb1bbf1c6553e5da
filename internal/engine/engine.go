// Package engine drives sequential chunked transfers against one target
// file with direct I/O semantics: a write pass that lays down the pattern,
// a read pass that verifies it byte-by-byte, or both.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/snb-labs/dit/internal/buffer"
	"github.com/snb-labs/dit/internal/event"
	"github.com/snb-labs/dit/internal/pattern"
	"github.com/snb-labs/dit/internal/stats"
)

const (
	// AlignUnit is the transfer granularity required by direct I/O.
	AlignUnit = buffer.Unit

	// DefaultChunkSize is the reusable chunk buffer capacity.
	DefaultChunkSize = 4 * stats.MB
)

// Mode selects which passes run.
type Mode int

const (
	ModeRead Mode = iota + 1
	ModeWrite
	ModeReadWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeReadWrite:
		return "readwrite"
	default:
		return "unknown"
	}
}

// ParseMode maps the CLI mode argument to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "read":
		return ModeRead, nil
	case "write":
		return ModeWrite, nil
	case "readwrite":
		return ModeReadWrite, nil
	default:
		return 0, fmt.Errorf("invalid mode %q (want read, write or readwrite)", s)
	}
}

// Config describes one run against a target file.
type Config struct {
	Path      string
	Size      int64
	Mode      Mode
	Seed      uint64
	ChunkSize int64 // 0 means DefaultChunkSize
	BWLimit   int64 // bytes/sec, 0 = unlimited
	NoDirect  bool  // skip page-cache bypass (filesystems without support)
	Events    event.Sink
	Stats     *stats.Collector
}

// Result is the outcome of a run.
type Result struct {
	Outcome *Outcome // nil unless a read pass ran
	Err     error
}

// Run executes the requested passes sequentially, blocking until complete.
// The write pass fully completes and closes its handle before the read
// pass opens the file.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.Events == nil {
		cfg.Events = event.Discard
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	if cfg.Size < 0 || cfg.Size%AlignUnit != 0 {
		return Result{Err: fmt.Errorf("%w: size %d", ErrUnalignedSize, cfg.Size)}
	}
	if cfg.ChunkSize <= 0 || cfg.ChunkSize%AlignUnit != 0 {
		return Result{Err: fmt.Errorf("%w: chunk size %d", ErrUnalignedSize, cfg.ChunkSize)}
	}

	desc := pattern.Describe(cfg.Seed)

	// One reusable chunk buffer, pre-filled with the pattern. The read
	// pass re-fills it per chunk sized to the bytes actually read, so
	// callers must not assume earlier contents persist.
	chunk, err := buffer.Alloc(int(cfg.ChunkSize))
	if err != nil {
		return Result{Err: err}
	}
	pattern.Fill(chunk, desc)

	var limiter *rate.Limiter
	if cfg.BWLimit > 0 {
		limiter = newBWLimiter(cfg.BWLimit)
	}

	cfg.Events.Emit(event.Event{Type: event.RunStarted, Total: cfg.Size})
	slog.Debug("run starting",
		"path", cfg.Path,
		"size", cfg.Size,
		"mode", cfg.Mode.String(),
		"chunk", cfg.ChunkSize,
		"direct", !cfg.NoDirect,
	)

	if cfg.Mode == ModeWrite || cfg.Mode == ModeReadWrite {
		if err := writePass(ctx, cfg, chunk, limiter); err != nil {
			return Result{Err: err}
		}
	}

	if cfg.Mode == ModeRead || cfg.Mode == ModeReadWrite {
		// A second, independently owned buffer holds the data read back;
		// the pattern buffer stays live as the expected-value source.
		readBuf, err := buffer.Alloc(int(cfg.ChunkSize))
		if err != nil {
			return Result{Err: err}
		}
		outcome, err := readPass(ctx, cfg, desc, chunk, readBuf, limiter)
		return Result{Outcome: outcome, Err: err}
	}

	return Result{}
}
