// Package ui renders engine progress and summaries as text.
package ui

import (
	"io"

	"github.com/snb-labs/dit/internal/event"
)

// Presenter consumes engine events and produces the final verdict line.
type Presenter interface {
	event.Sink
	// Summary returns the final verify verdict, or "" when no read pass ran.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer // pass summaries
	ErrWriter  io.Writer // progress bar and mismatch detail
	IsTTY      bool
	Quiet      bool
	NoProgress bool
}

// NewPresenter picks a presenter for the configuration.
//
//nolint:ireturn // factory returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{}
	}
	return &plainPresenter{
		w:          cfg.Writer,
		errW:       cfg.ErrWriter,
		isTTY:      cfg.IsTTY,
		noProgress: cfg.NoProgress,
	}
}
