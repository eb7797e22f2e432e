// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/inputtest/source.go
// Summary: Scripted event source and recording handlers for dispatcher tests.

package inputtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kittech0/ric-rac-roe/input"
)

type item struct {
	ev  input.Event
	err error
}

// Source replays queued events and errors, one per Next call. An empty queue
// reports "nothing ready".
type Source struct {
	mu    sync.Mutex
	queue []item
	polls int
	taken int
}

// NewSource returns a source preloaded with events.
func NewSource(events ...input.Event) *Source {
	s := &Source{}
	s.Push(events...)
	return s
}

// Push appends events to the queue.
func (s *Source) Push(events ...input.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range events {
		s.queue = append(s.queue, item{ev: ev})
	}
}

// Fail queues a source error.
func (s *Source) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, item{err: err})
}

func (s *Source) Next(ctx context.Context) (input.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if len(s.queue) == 0 {
		return nil, false, nil
	}
	it := s.queue[0]
	s.queue = s.queue[1:]
	if it.err != nil {
		return nil, false, it.err
	}
	s.taken++
	return it.ev, true, nil
}

// Pending reports how many queued items have not been consumed yet.
func (s *Source) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Taken reports how many events Next has handed out.
func (s *Source) Taken() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taken
}

// Polls reports how many times Next was called.
func (s *Source) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// Recorder is a shared, ordered call log.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Record appends an entry.
func (r *Recorder) Record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Handlers returns one handler per kind that logs "<name> <kind> <payload>"
// and succeeds.
func (r *Recorder) Handlers(name string) input.Handlers {
	return input.Handlers{
		FocusGained: []input.FocusHandler{func(context.Context) error {
			r.Record("%s %s", name, input.KindFocusGained)
			return nil
		}},
		FocusLost: []input.FocusHandler{func(context.Context) error {
			r.Record("%s %s", name, input.KindFocusLost)
			return nil
		}},
		Key: []input.KeyHandler{func(_ context.Context, key *tcell.EventKey) error {
			r.Record("%s %s %q", name, input.KindKey, key.Rune())
			return nil
		}},
		Mouse: []input.MouseHandler{func(_ context.Context, mouse *tcell.EventMouse) error {
			x, y := mouse.Position()
			r.Record("%s %s %d,%d", name, input.KindMouse, x, y)
			return nil
		}},
		Paste: []input.PasteHandler{func(_ context.Context, text string) error {
			r.Record("%s %s %q", name, input.KindPaste, text)
			return nil
		}},
		Resize: []input.ResizeHandler{func(_ context.Context, w, h uint16) error {
			r.Record("%s %s %dx%d", name, input.KindResize, w, h)
			return nil
		}},
	}
}
