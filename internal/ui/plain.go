package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/snb-labs/dit/internal/event"
	"github.com/snb-labs/dit/internal/stats"
)

const barWidth = 40

// plainPresenter renders a carriage-return progress bar on a TTY and
// periodic progress lines otherwise. Progress output is purely cosmetic;
// suppressing it never affects the transfer.
type plainPresenter struct {
	w          io.Writer
	errW       io.Writer
	isTTY      bool
	noProgress bool

	lastDraw time.Time
	barLive  bool
	verdict  string
}

func (p *plainPresenter) Emit(ev event.Event) {
	switch ev.Type {
	case event.PassStarted:
		p.lastDraw = time.Time{}
	case event.PassProgress:
		p.drawProgress(ev)
	case event.PassCompleted:
		p.endBar()
		fmt.Fprintf(p.w, "[%-5s] %s in %.3f sec => %.2f MB/s\n",
			ev.Op, stats.FormatMB(ev.Bytes), ev.Elapsed.Seconds(),
			stats.Throughput(ev.Bytes, ev.Elapsed))
	case event.MismatchFound:
		p.endBar()
		fmt.Fprintf(p.errW, "  MISMATCH at offset %d (%s): expected 0x%02X got 0x%02X\n",
			ev.Offset, stats.FormatMB(ev.Offset), ev.Expected, ev.Actual)
	case event.VerifyDone:
		if ev.Capped {
			fmt.Fprintln(p.errW, "  ... (too many mismatches, stopping)")
		}
		p.verdict = VerdictLine(ev, p.isTTY)
	}
}

func (p *plainPresenter) drawProgress(ev event.Event) {
	if p.noProgress {
		return
	}

	// Throttle redraws; the final update always lands.
	interval := 100 * time.Millisecond
	if !p.isTTY {
		interval = 2 * time.Second
	}
	now := time.Now()
	if !p.lastDraw.IsZero() && now.Sub(p.lastDraw) < interval && ev.Bytes < ev.Total {
		return
	}
	p.lastDraw = now

	if !p.isTTY {
		fmt.Fprintf(p.errW, "[%-5s] %s / %s\n",
			ev.Op, stats.FormatMB(ev.Bytes), stats.FormatMB(ev.Total))
		return
	}

	pct := 0.0
	if ev.Total > 0 {
		pct = float64(ev.Bytes) / float64(ev.Total)
	}
	fmt.Fprintf(p.errW, "\r[%-5s] [%s] %s / %s",
		ev.Op, Bar(pct, barWidth), stats.FormatMB(ev.Bytes), stats.FormatMB(ev.Total))
	p.barLive = true
}

// endBar terminates a live \r bar line so following output starts clean.
func (p *plainPresenter) endBar() {
	if p.barLive {
		fmt.Fprintln(p.errW)
		p.barLive = false
	}
}

func (p *plainPresenter) Summary() string { return p.verdict }
