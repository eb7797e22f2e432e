// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ricrac/main.go
// Summary: ricrac command: runs the terminal input loop with the echo view.
// Usage: Run `ricrac` in a terminal; `ricrac -history 20` prints recorded events.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/kittech0/ric-rac-roe/config"
	"github.com/kittech0/ric-rac-roe/internal/journal"
	ricracruntime "github.com/kittech0/ric-rac-roe/internal/runtime"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ricrac", flag.ContinueOnError)

	journalFlag := fs.String("journal", "", "Record input events to this SQLite file")
	noMouse := fs.Bool("no-mouse", false, "Do not enable mouse reporting")
	panicLog := fs.String("panic-log", "", "File to append panic stack traces")
	history := fs.Int("history", 0, "Print the last N journal entries and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("resolve config paths: %w", err)
	}
	if err := paths.EnsureConfigDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	cfg := config.System()
	if err := config.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}

	if *history > 0 {
		path := *journalFlag
		if path == "" {
			path = paths.JournalPath
		}
		return printHistory(context.Background(), os.Stdout, path, *history)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ricracruntime.Run(ctx, ricracruntime.Options{
		LogPath:     paths.LogPath,
		PanicLog:    *panicLog,
		JournalPath: journalPath(*journalFlag, cfg, paths),
		Mouse:       !*noMouse && cfg.GetBool("input", "mouse", true),
		Paste:       cfg.GetBool("input", "paste", true),
		Focus:       cfg.GetBool("input", "focus", true),
		ShowHelp:    cfg.GetBool("view", "show_help", true),
	})
}

func printHistory(ctx context.Context, w io.Writer, path string, limit int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("journal %s: %w", path, err)
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(ctx, limit)
	if err != nil {
		return err
	}
	// Oldest first reads naturally in a terminal.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(w, "%s  %-12s %s\n", e.Time.Format(time.RFC3339Nano), e.Kind, e.Detail)
	}
	return nil
}
