// Package stats tracks transfer counters and formats throughput figures.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// MB is the reporting unit for sizes and throughput (MB/s).
const MB = 1 << 20

// Collector tracks run counters using atomic adds so presenters can read
// them at any time.
type Collector struct {
	bytesWritten atomic.Int64
	bytesRead    atomic.Int64
	mismatches   atomic.Int64
	startTime    time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

func (c *Collector) AddBytesWritten(n int64) { c.bytesWritten.Add(n) }
func (c *Collector) AddBytesRead(n int64)    { c.bytesRead.Add(n) }
func (c *Collector) AddMismatches(n int64)   { c.mismatches.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	BytesWritten int64
	BytesRead    int64
	Mismatches   int64
	Elapsed      time.Duration
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		BytesWritten: c.bytesWritten.Load(),
		BytesRead:    c.bytesRead.Load(),
		Mismatches:   c.mismatches.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("written=%d read=%d mismatches=%d",
		s.BytesWritten, s.BytesRead, s.Mismatches)
}

// FormatMB renders a byte count in MB with two decimals.
func FormatMB(b int64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/MB)
}

// Throughput returns MB/s for b bytes moved over d.
func Throughput(b int64, d time.Duration) float64 {
	if d <= 0 {
		d = time.Microsecond
	}
	return float64(b) / MB / d.Seconds()
}
