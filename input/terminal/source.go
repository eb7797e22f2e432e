// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/terminal/source.go
// Summary: tcell-backed event source for the input dispatcher.
// Usage: NewSource(screen), run Poll on its own goroutine, hand the Source to input.NewDispatcher.
// Notes: Decoding happens on the poll goroutine; handlers never run there.

package terminal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kittech0/ric-rac-roe/input"
)

// ErrClosed is reported by Next once the screen stopped producing events.
var ErrClosed = errors.New("terminal: event source closed")

// Screen is the part of tcell.Screen the source needs.
type Screen interface {
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}

type result struct {
	ev  input.Event
	err error
}

// Source decodes tcell events into input events. At most one decoded event
// waits for the dispatcher; the poll goroutine blocks until it is taken.
type Source struct {
	screen Screen
	events chan result
	stop   chan struct{}
	once   sync.Once

	// Owned by the poll goroutine.
	pasting bool
	paste   strings.Builder
}

// NewSource wraps screen. Call Poll to start reading.
func NewSource(screen Screen) *Source {
	return &Source{
		screen: screen,
		events: make(chan result),
		stop:   make(chan struct{}),
	}
}

// Poll reads and decodes screen events until the screen is finalised or
// Close is called. It blocks; run it on a dedicated goroutine.
func (s *Source) Poll() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-s.stop:
			return
		default:
		}
		out, ok := s.decode(ev)
		if !ok {
			continue
		}
		select {
		case s.events <- out:
		case <-s.stop:
			return
		}
	}
}

// Next implements input.Source.
func (s *Source) Next(ctx context.Context) (input.Event, bool, error) {
	select {
	case r, open := <-s.events:
		if !open {
			return nil, false, ErrClosed
		}
		if r.err != nil {
			return nil, false, r.err
		}
		return r.ev, true, nil
	default:
		return nil, false, nil
	}
}

// Close stops Poll. It is safe to call more than once.
func (s *Source) Close() {
	s.once.Do(func() {
		close(s.stop)
		// Wake a PollEvent that is waiting for input.
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

func (s *Source) decode(ev tcell.Event) (result, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if s.pasting {
			s.consumePasteKey(ev)
			return result{}, false
		}
		return result{ev: input.Key{Info: ev}}, true
	case *tcell.EventPaste:
		if ev.Start() {
			s.pasting = true
			s.paste.Reset()
			return result{}, false
		}
		s.pasting = false
		if s.paste.Len() == 0 {
			return result{}, false
		}
		text := s.paste.String()
		s.paste.Reset()
		return result{ev: input.Paste{Text: text}}, true
	case *tcell.EventMouse:
		return result{ev: input.Mouse{Info: ev}}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return result{ev: input.Resize{Width: clampCells(w), Height: clampCells(h)}}, true
	case *tcell.EventFocus:
		if ev.Focused {
			return result{ev: input.FocusGained{}}, true
		}
		return result{ev: input.FocusLost{}}, true
	case *tcell.EventError:
		return result{err: fmt.Errorf("terminal: %w", ev)}, true
	case *tcell.EventInterrupt:
		// Used to wake PollEvent on Close.
	}
	return result{}, false
}

func (s *Source) consumePasteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		s.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		s.paste.WriteByte('\n')
	case tcell.KeyTab:
		s.paste.WriteByte('\t')
	default:
		if r := ev.Rune(); r != 0 && utf8.ValidRune(r) {
			s.paste.WriteRune(r)
		}
	}
}

func clampCells(n int) uint16 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(n)
}
