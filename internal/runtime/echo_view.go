// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/echo_view.go
// Summary: Full-screen view that echoes the latest event of each kind.
// Usage: Its handler set is registered first; the quit keys end the input loop through ErrQuit.

package ricracruntime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kittech0/ric-rac-roe/input"
	"github.com/kittech0/ric-rac-roe/internal/journal"
)

// ErrQuit is returned by the view's key handler when the user asks to leave.
var ErrQuit = errors.New("quit requested")

const helpLine = "ricrac: press q, Esc or Ctrl-C to quit"

// drawer is the part of tcell.Screen the view paints on.
type drawer interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	Sync()
	Size() (int, int)
}

type echoView struct {
	screen   drawer
	showHelp bool
	width    int
	height   int

	focus  string
	key    string
	mouse  string
	paste  string
	resize string
	count  int
}

func newEchoView(screen drawer, showHelp bool) *echoView {
	w, h := screen.Size()
	return &echoView{
		screen:   screen,
		showHelp: showHelp,
		width:    w,
		height:   h,
		focus:    "-",
		key:      "-",
		mouse:    "-",
		paste:    "-",
		resize:   fmt.Sprintf("%dx%d", w, h),
	}
}

// Handlers returns the view's handler set.
func (v *echoView) Handlers() input.Handlers {
	return input.Handlers{
		FocusGained: []input.FocusHandler{func(context.Context) error {
			v.focus = "gained"
			return v.changed()
		}},
		FocusLost: []input.FocusHandler{func(context.Context) error {
			v.focus = "lost"
			return v.changed()
		}},
		Key: []input.KeyHandler{func(_ context.Context, key *tcell.EventKey) error {
			if isQuitKey(key) {
				return ErrQuit
			}
			v.key = key.Name()
			return v.changed()
		}},
		Mouse: []input.MouseHandler{func(_ context.Context, mouse *tcell.EventMouse) error {
			v.mouse = journal.DescribeMouse(mouse)
			return v.changed()
		}},
		Paste: []input.PasteHandler{func(_ context.Context, text string) error {
			v.paste = fmt.Sprintf("%q (%d cells)", text, runewidth.StringWidth(text))
			return v.changed()
		}},
		Resize: []input.ResizeHandler{func(_ context.Context, width, height uint16) error {
			v.width, v.height = int(width), int(height)
			v.resize = fmt.Sprintf("%dx%d", width, height)
			v.count++
			// The old frame no longer matches the terminal; repaint every cell.
			v.paint()
			v.screen.Sync()
			return nil
		}},
	}
}

func isQuitKey(key *tcell.EventKey) bool {
	switch key.Key() {
	case tcell.KeyCtrlC, tcell.KeyEsc:
		return true
	case tcell.KeyRune:
		switch key.Modifiers() {
		case tcell.ModNone:
			return key.Rune() == 'q' || key.Rune() == 'Q'
		case tcell.ModCtrl:
			return key.Rune() == 'c' || key.Rune() == 'C'
		}
	}
	return false
}

func (v *echoView) changed() error {
	v.count++
	v.draw()
	return nil
}

func (v *echoView) lines() []string {
	var out []string
	if v.showHelp {
		out = append(out, helpLine, "")
	}
	return append(out,
		"focus:  "+v.focus,
		"key:    "+v.key,
		"mouse:  "+v.mouse,
		"paste:  "+v.paste,
		"resize: "+v.resize,
		fmt.Sprintf("events: %d", v.count),
	)
}

func (v *echoView) draw() {
	v.paint()
	v.screen.Show()
}

func (v *echoView) paint() {
	v.screen.Clear()
	for y, line := range v.lines() {
		if y >= v.height {
			break
		}
		drawText(v.screen, 0, y, v.width, line, tcell.StyleDefault)
	}
}

// drawText writes s at (x, y), truncated to maxWidth cells.
func drawText(screen drawer, x, y, maxWidth int, s string, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s = strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	if runewidth.StringWidth(s) > maxWidth {
		s = runewidth.Truncate(s, maxWidth, "…")
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}
