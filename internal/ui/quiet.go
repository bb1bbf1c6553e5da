package ui

import "github.com/snb-labs/dit/internal/event"

// quietPresenter suppresses all progress output but still surfaces the
// final verify verdict.
type quietPresenter struct {
	verdict string
}

func (p *quietPresenter) Emit(ev event.Event) {
	if ev.Type == event.VerifyDone {
		p.verdict = VerdictLine(ev, false)
	}
}

func (p *quietPresenter) Summary() string { return p.verdict }
