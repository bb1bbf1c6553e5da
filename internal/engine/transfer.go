package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/snb-labs/dit/internal/event"
	"github.com/snb-labs/dit/internal/pattern"
	"github.com/snb-labs/dit/internal/platform"
)

// writePass moves cfg.Size bytes of pattern into the target in bounded
// chunks at explicit offsets.
func writePass(ctx context.Context, cfg Config, chunk []byte, limiter *rate.Limiter) error {
	f, err := platform.OpenWrite(cfg.Path, !cfg.NoDirect)
	if err != nil {
		return fmt.Errorf("open %s for write: %w", cfg.Path, err)
	}
	defer f.Close()

	cfg.Events.Emit(event.Event{Type: event.PassStarted, Op: event.OpWrite, Total: cfg.Size})

	var written int64
	start := time.Now()
	for written < cfg.Size {
		n := min(cfg.Size-written, cfg.ChunkSize)
		w, err := platform.Pwrite(f, chunk[:n], written)
		if err != nil {
			return &IOError{Op: "write", Offset: written, Err: err}
		}
		// A short write counts as progress; the next iteration resumes
		// from the new offset.
		written += int64(w)
		cfg.Stats.AddBytesWritten(int64(w))
		if limiter != nil {
			if err := waitBW(ctx, limiter, w); err != nil {
				return err
			}
		}
		cfg.Events.Emit(event.Event{
			Type: event.PassProgress, Op: event.OpWrite,
			Bytes: written, Total: cfg.Size,
		})
	}
	cfg.Events.Emit(event.Event{
		Type: event.PassCompleted, Op: event.OpWrite,
		Bytes: written, Total: cfg.Size, Elapsed: time.Since(start),
	})
	return nil
}

// readPass reads the target back in bounded chunks, regenerating the
// expected pattern for each chunk and verifying before the next read.
// Returning early at end-of-file is not an error; the outcome then covers
// only the bytes actually read.
func readPass(
	ctx context.Context,
	cfg Config,
	desc pattern.Descriptor,
	chunk, readBuf []byte,
	limiter *rate.Limiter,
) (*Outcome, error) {
	f, err := platform.OpenRead(cfg.Path, !cfg.NoDirect)
	if err != nil {
		return nil, fmt.Errorf("open %s for read: %w", cfg.Path, err)
	}
	defer f.Close()

	cfg.Events.Emit(event.Event{Type: event.PassStarted, Op: event.OpRead, Total: cfg.Size})

	outcome := &Outcome{}
	emit := func(m Mismatch) {
		cfg.Stats.AddMismatches(1)
		cfg.Events.Emit(event.Event{
			Type: event.MismatchFound, Op: event.OpRead,
			Offset: m.Offset, Expected: m.Expected, Actual: m.Actual,
		})
	}

	var read int64
	start := time.Now()
	for read < cfg.Size {
		n := min(cfg.Size-read, cfg.ChunkSize)
		r, err := platform.Pread(f, readBuf[:n], read)
		if err != nil {
			return outcome, &IOError{Op: "read", Offset: read, Err: err}
		}
		if r == 0 {
			// Target shorter than requested: end of file ends the pass.
			break
		}
		base := read
		read += int64(r)
		cfg.Stats.AddBytesRead(int64(r))
		if limiter != nil {
			if err := waitBW(ctx, limiter, r); err != nil {
				return outcome, err
			}
		}
		cfg.Events.Emit(event.Event{
			Type: event.PassProgress, Op: event.OpRead,
			Bytes: read, Total: cfg.Size,
		})

		// Regenerate the expected bytes for exactly this chunk, then
		// compare before issuing the next read.
		pattern.Fill(chunk[:r], desc)
		if !compare(chunk[:r], readBuf[:r], base, outcome, emit) {
			// Cap reached: stop scanning for the rest of the pass.
			break
		}
	}
	cfg.Events.Emit(event.Event{
		Type: event.PassCompleted, Op: event.OpRead,
		Bytes: read, Total: cfg.Size, Elapsed: time.Since(start),
	})
	cfg.Events.Emit(event.Event{
		Type: event.VerifyDone, Op: event.OpRead,
		Bytes: read, Mismatches: outcome.Count, Capped: outcome.Stopped,
	})
	return outcome, nil
}
