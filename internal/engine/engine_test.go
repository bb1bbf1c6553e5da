package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snb-labs/dit/internal/event"
	"github.com/snb-labs/dit/internal/pattern"
	"github.com/snb-labs/dit/internal/stats"
)

// recordSink captures events for assertions.
type recordSink struct {
	events []event.Event
}

func (r *recordSink) Emit(ev event.Event) { r.events = append(r.events, ev) }

func (r *recordSink) count(t event.Type, op event.Op) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t && ev.Op == op {
			n++
		}
	}
	return n
}

// testConfig builds a config against a temp file, with direct I/O off so
// tests run on any filesystem.
func testConfig(t *testing.T, size int64, mode Mode) Config {
	t.Helper()
	return Config{
		Path:      filepath.Join(t.TempDir(), "target"),
		Size:      size,
		Mode:      mode,
		Seed:      0xDEADBEEF,
		ChunkSize: 1024,
		NoDirect:  true,
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := testConfig(t, 4096, ModeReadWrite)
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Outcome)
	assert.True(t, res.Outcome.Passed())
	assert.Zero(t, res.Outcome.Count)
}

func TestRoundTripManySeeds(t *testing.T) {
	for _, seed := range []uint64{0, 1, 0xAB, 0xDEADBEEF, 0xFFFFFFFFFFFFFFFF} {
		cfg := testConfig(t, 2048, ModeReadWrite)
		cfg.Seed = seed
		res := Run(context.Background(), cfg)
		require.NoError(t, res.Err, "seed %#x", seed)
		assert.True(t, res.Outcome.Passed(), "seed %#x", seed)
	}
}

func TestTamperDetection(t *testing.T) {
	cfg := testConfig(t, 4096, ModeWrite)
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)

	// Flip one byte mid-file.
	const tamperOffset = 777
	f, err := os.OpenFile(cfg.Path, os.O_WRONLY, 0)
	require.NoError(t, err)
	expected := make([]byte, 4096)
	pattern.Fill(expected, pattern.Describe(cfg.Seed))
	_, err = f.WriteAt([]byte{expected[tamperOffset] ^ 0xFF}, tamperOffset)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg.Mode = ModeRead
	res = Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Outcome)
	assert.False(t, res.Outcome.Passed())
	assert.Equal(t, int64(1), res.Outcome.Count)
	require.Len(t, res.Outcome.Mismatches, 1)
	m := res.Outcome.Mismatches[0]
	assert.Equal(t, int64(tamperOffset), m.Offset)
	assert.Equal(t, expected[tamperOffset], m.Expected)
	assert.Equal(t, expected[tamperOffset]^0xFF, m.Actual)
}

func TestMismatchCapStopsPass(t *testing.T) {
	// Every expected byte is 0x11; a file of zeros mismatches everywhere.
	cfg := testConfig(t, 4096, ModeRead)
	cfg.Seed = 0x1111111111111111
	require.NoError(t, os.WriteFile(cfg.Path, make([]byte, 4096), 0o644))

	sink := &recordSink{}
	cfg.Events = sink
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, int64(MismatchCap), res.Outcome.Count)
	assert.True(t, res.Outcome.Stopped)
	assert.Len(t, res.Outcome.Mismatches, MismatchCap)
	assert.Equal(t, MismatchCap, sink.count(event.MismatchFound, event.OpRead))

	// The cap ends the pass after the first chunk.
	assert.Equal(t, 1, sink.count(event.PassProgress, event.OpRead))
}

func TestSizeEqualToChunkIsOneIteration(t *testing.T) {
	cfg := testConfig(t, 1024, ModeWrite)
	sink := &recordSink{}
	cfg.Events = sink
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, sink.count(event.PassProgress, event.OpWrite))
}

func TestUnalignedSizeRejectedBeforeIO(t *testing.T) {
	cfg := testConfig(t, 4095, ModeWrite)
	res := Run(context.Background(), cfg)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrUnalignedSize)

	// No file may have been created or truncated.
	_, err := os.Stat(cfg.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestNegativeSizeRejected(t *testing.T) {
	cfg := testConfig(t, -512, ModeWrite)
	res := Run(context.Background(), cfg)
	assert.ErrorIs(t, res.Err, ErrUnalignedSize)
}

func TestUnalignedChunkSizeRejected(t *testing.T) {
	cfg := testConfig(t, 4096, ModeWrite)
	cfg.ChunkSize = 1000
	res := Run(context.Background(), cfg)
	assert.ErrorIs(t, res.Err, ErrUnalignedSize)
}

func TestEarlyEOFEndsReadCleanly(t *testing.T) {
	cfg := testConfig(t, 1024, ModeWrite)
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)

	// Ask for more than the file holds.
	cfg.Mode = ModeRead
	cfg.Size = 4096
	collector := stats.NewCollector()
	cfg.Stats = collector
	res = Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Outcome)
	assert.True(t, res.Outcome.Passed())
	assert.Equal(t, int64(1024), collector.Snapshot().BytesRead)
}

func TestReadMissingFileFails(t *testing.T) {
	cfg := testConfig(t, 512, ModeRead)
	res := Run(context.Background(), cfg)
	require.Error(t, res.Err)
	assert.Nil(t, res.Outcome)
}

func TestZeroSizeWriteCreatesEmptyFile(t *testing.T) {
	cfg := testConfig(t, 0, ModeWrite)
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	info, err := os.Stat(cfg.Path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWritePassEmitsCompletion(t *testing.T) {
	cfg := testConfig(t, 2048, ModeWrite)
	sink := &recordSink{}
	cfg.Events = sink
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)

	require.Equal(t, 1, sink.count(event.PassCompleted, event.OpWrite))
	for _, ev := range sink.events {
		if ev.Type == event.PassCompleted {
			assert.Equal(t, int64(2048), ev.Bytes)
			assert.Equal(t, int64(2048), ev.Total)
		}
	}
}

func TestBWLimitStillCorrect(t *testing.T) {
	cfg := testConfig(t, 2048, ModeReadWrite)
	cfg.BWLimit = 64 * stats.MB
	res := Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	assert.True(t, res.Outcome.Passed())
}

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{
		"read":      ModeRead,
		"write":     ModeWrite,
		"readwrite": ModeReadWrite,
	} {
		got, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, s, got.String())
	}

	_, err := ParseMode("rw")
	assert.Error(t, err)
}
