// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/handler.go
// Summary: Handler shapes and the per-kind handler sets owned by a Dispatcher.

package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Handlers may block for as long as they need; the dispatcher waits for each
// one to return before starting the next. A non-nil error stops the dispatch.
type (
	FocusHandler  func(ctx context.Context) error
	KeyHandler    func(ctx context.Context, key *tcell.EventKey) error
	MouseHandler  func(ctx context.Context, mouse *tcell.EventMouse) error
	PasteHandler  func(ctx context.Context, text string) error
	ResizeHandler func(ctx context.Context, width, height uint16) error
)

// Handlers holds one ordered handler list per event kind. Nil or empty lists
// are valid and make that kind a no-op.
type Handlers struct {
	FocusGained []FocusHandler
	FocusLost   []FocusHandler
	Key         []KeyHandler
	Mouse       []MouseHandler
	Paste       []PasteHandler
	Resize      []ResizeHandler
}

// Join concatenates handler sets kind by kind, in argument order.
func Join(sets ...Handlers) Handlers {
	var out Handlers
	for _, s := range sets {
		out.FocusGained = append(out.FocusGained, s.FocusGained...)
		out.FocusLost = append(out.FocusLost, s.FocusLost...)
		out.Key = append(out.Key, s.Key...)
		out.Mouse = append(out.Mouse, s.Mouse...)
		out.Paste = append(out.Paste, s.Paste...)
		out.Resize = append(out.Resize, s.Resize...)
	}
	return out
}

// Len returns the number of handlers registered for kind.
func (h Handlers) Len(kind Kind) int {
	switch kind {
	case KindFocusGained:
		return len(h.FocusGained)
	case KindFocusLost:
		return len(h.FocusLost)
	case KindKey:
		return len(h.Key)
	case KindMouse:
		return len(h.Mouse)
	case KindPaste:
		return len(h.Paste)
	case KindResize:
		return len(h.Resize)
	}
	return 0
}

func (h Handlers) clone() Handlers {
	return Handlers{
		FocusGained: append([]FocusHandler(nil), h.FocusGained...),
		FocusLost:   append([]FocusHandler(nil), h.FocusLost...),
		Key:         append([]KeyHandler(nil), h.Key...),
		Mouse:       append([]MouseHandler(nil), h.Mouse...),
		Paste:       append([]PasteHandler(nil), h.Paste...),
		Resize:      append([]ResizeHandler(nil), h.Resize...),
	}
}
