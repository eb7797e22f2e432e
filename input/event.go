// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/event.go
// Summary: Terminal input event union consumed by the dispatcher.
// Usage: Produced by an event Source, routed by Dispatcher to the handler set of its Kind.

package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Kind identifies which handler set an event is routed to.
type Kind int

const (
	KindFocusGained Kind = iota
	KindFocusLost
	KindKey
	KindMouse
	KindPaste
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindFocusGained:
		return "focus-gained"
	case KindFocusLost:
		return "focus-lost"
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindPaste:
		return "paste"
	case KindResize:
		return "resize"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one decoded terminal input event. The set of variants is closed.
type Event interface {
	Kind() Kind
	isEvent()
}

// FocusGained reports that the terminal window gained focus.
type FocusGained struct{}

// FocusLost reports that the terminal window lost focus.
type FocusLost struct{}

// Key carries a key press. Info is owned by the source and passed through untouched.
type Key struct {
	Info *tcell.EventKey
}

// Mouse carries a mouse action. Info is owned by the source and passed through untouched.
type Mouse struct {
	Info *tcell.EventMouse
}

// Paste carries the full text of one bracketed paste.
type Paste struct {
	Text string
}

// Resize reports the new terminal size in cells.
type Resize struct {
	Width  uint16
	Height uint16
}

func (FocusGained) Kind() Kind { return KindFocusGained }
func (FocusLost) Kind() Kind   { return KindFocusLost }
func (Key) Kind() Kind         { return KindKey }
func (Mouse) Kind() Kind       { return KindMouse }
func (Paste) Kind() Kind       { return KindPaste }
func (Resize) Kind() Kind      { return KindResize }

func (FocusGained) isEvent() {}
func (FocusLost) isEvent()   {}
func (Key) isEvent()         {}
func (Mouse) isEvent()       {}
func (Paste) isEvent()       {}
func (Resize) isEvent()      {}
