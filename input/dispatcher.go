// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/dispatcher.go
// Summary: Paced input loop that routes each event to the handlers of its kind.
// Usage: Build once with NewDispatcher, then call Run on the goroutine that owns the UI state.
// Notes: Handlers run one at a time, in registration order, and the first failure ends the loop.

package input

import (
	"context"
	"log"
	"time"
)

// TickPeriod paces how often the source is polled.
const TickPeriod = 50 * time.Millisecond

// Source yields decoded terminal events.
type Source interface {
	// Next returns the next ready event without waiting for one to arrive.
	// ok is false when nothing is ready. A non-nil error reports a source
	// failure; the dispatcher treats it like "nothing ready".
	Next(ctx context.Context) (ev Event, ok bool, err error)
}

// Dispatcher owns an event source and six fixed handler lists.
type Dispatcher struct {
	source   Source
	handlers Handlers
}

// NewDispatcher copies handlers, so later changes to the caller's slices are
// not observed.
func NewDispatcher(source Source, handlers Handlers) *Dispatcher {
	return &Dispatcher{
		source:   source,
		handlers: handlers.clone(),
	}
}

// Handlers returns a copy of the registered handler lists.
func (d *Dispatcher) Handlers() Handlers {
	return d.handlers.clone()
}

// Run polls the source once per tick and dispatches whatever it yields. It
// returns the first handler error unchanged, or ctx.Err() once ctx is done.
// Source errors never end the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	var sourceFailing bool
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		ev, ok, err := d.source.Next(ctx)
		if err != nil {
			// Same as "nothing ready": a closed source keeps the loop spinning.
			if !sourceFailing {
				log.Printf("input: event source error, continuing: %v", err)
				sourceFailing = true
			}
			continue
		}
		if sourceFailing {
			log.Printf("input: event source recovered")
			sourceFailing = false
		}
		if !ok {
			continue
		}
		if err := d.Dispatch(ctx, ev); err != nil {
			return err
		}
	}
}

// Dispatch runs every handler registered for ev's kind, in order, stopping at
// the first error and returning it unchanged. A nil event is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case FocusGained:
		for _, run := range d.handlers.FocusGained {
			if err := run(ctx); err != nil {
				return err
			}
		}
	case FocusLost:
		for _, run := range d.handlers.FocusLost {
			if err := run(ctx); err != nil {
				return err
			}
		}
	case Key:
		for _, run := range d.handlers.Key {
			if err := run(ctx, ev.Info); err != nil {
				return err
			}
		}
	case Mouse:
		for _, run := range d.handlers.Mouse {
			if err := run(ctx, ev.Info); err != nil {
				return err
			}
		}
	case Paste:
		for _, run := range d.handlers.Paste {
			if err := run(ctx, ev.Text); err != nil {
				return err
			}
		}
	case Resize:
		for _, run := range d.handlers.Resize {
			if err := run(ctx, ev.Width, ev.Height); err != nil {
				return err
			}
		}
	}
	return nil
}
