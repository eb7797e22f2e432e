// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/app.go
// Summary: Wires the terminal screen, event source, view, journal and dispatcher.
// Usage: Called by cmd/ricrac; returns when the user quits, ctx is cancelled, or a handler fails.

package ricracruntime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kittech0/ric-rac-roe/input"
	"github.com/kittech0/ric-rac-roe/input/terminal"
	"github.com/kittech0/ric-rac-roe/internal/journal"
)

// Options configures a runtime session.
type Options struct {
	LogPath     string // empty leaves the standard logger alone
	PanicLog    string
	JournalPath string // empty disables the journal

	Mouse    bool
	Paste    bool
	Focus    bool
	ShowHelp bool

	// NewScreen overrides tcell.NewScreen.
	NewScreen func() (tcell.Screen, error)
}

// Run owns the terminal until the input loop ends. Quitting and cancellation
// are clean exits; any other handler failure is returned.
func Run(ctx context.Context, opts Options) error {
	panicLogger := NewPanicLogger(opts.PanicLog)
	defer panicLogger.Recover("run")

	if opts.LogPath != "" {
		restoreLog, err := setupLogging(opts.LogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		} else {
			defer restoreLog()
		}
	}

	var jnl *journal.Journal
	if opts.JournalPath != "" {
		var err error
		jnl, err = journal.Open(opts.JournalPath)
		if err != nil {
			return err
		}
		defer jnl.Close()
	}

	newScreen := opts.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("create screen failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen failed: %w", err)
	}
	defer screen.Fini()
	if opts.Mouse {
		screen.EnableMouse()
		defer screen.DisableMouse()
	}
	if opts.Paste {
		screen.EnablePaste()
		defer screen.DisablePaste()
	}
	if opts.Focus {
		screen.EnableFocus()
		defer screen.DisableFocus()
	}
	screen.HideCursor()

	view := newEchoView(screen, opts.ShowHelp)
	view.draw()
	handlers := view.Handlers()
	if jnl != nil {
		handlers = input.Join(handlers, jnl.Handlers())
	}

	src := terminal.NewSource(screen)
	panicLogger.Go("eventPoll", src.Poll)
	defer src.Close()

	log.Printf("input: dispatch loop started")
	err = input.NewDispatcher(src, handlers).Run(ctx)
	switch {
	case errors.Is(err, ErrQuit):
		log.Printf("input: quit requested")
		return nil
	case errors.Is(err, context.Canceled):
		log.Printf("input: cancelled")
		return nil
	}
	return fmt.Errorf("input loop: %w", err)
}
