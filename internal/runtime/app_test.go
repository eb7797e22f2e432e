// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ricracruntime

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kittech0/ric-rac-roe/internal/journal"
)

// liveScreen reports when Run has initialised the simulation screen. The
// simulation screen blocks InjectKey until Init has created its event queue,
// so tests inject only after ready is closed.
type liveScreen struct {
	tcell.SimulationScreen
	ready chan struct{}
}

func (s *liveScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	close(s.ready)
	return nil
}

func newLiveScreen() *liveScreen {
	return &liveScreen{
		SimulationScreen: tcell.NewSimulationScreen("UTF-8"),
		ready:            make(chan struct{}),
	}
}

func simOptions(sim *liveScreen) Options {
	return Options{
		Mouse:    true,
		Paste:    true,
		Focus:    true,
		ShowHelp: true,
		NewScreen: func() (tcell.Screen, error) {
			return sim, nil
		},
	}
}

func waitReady(t *testing.T, sim *liveScreen, done <-chan error) {
	t.Helper()
	select {
	case <-sim.ready:
	case err := <-done:
		t.Fatalf("Run returned before the screen was ready: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("screen never initialised")
	}
}

// injectUntilDone waits for the screen, then keeps injecting key until Run
// returns. Fini releases any injection still pending when the loop ends.
func injectUntilDone(t *testing.T, sim *liveScreen, done <-chan error, key tcell.Key, r rune) error {
	t.Helper()
	waitReady(t, sim, done)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			sim.InjectKey(key, r, tcell.ModNone)
		case <-timeout:
			t.Fatal("Run did not return")
		}
	}
}

func TestRunQuitsOnQuitKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"escape", tcell.KeyEsc, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newLiveScreen()
			done := make(chan error, 1)
			go func() { done <- Run(context.Background(), simOptions(sim)) }()

			if err := injectUntilDone(t, sim, done, tt.key, tt.r); err != nil {
				t.Fatalf("Run = %v, want nil", err)
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := newLiveScreen()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, simOptions(sim)) }()

	waitReady(t, sim, done)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsScreenFailure(t *testing.T) {
	opts := Options{NewScreen: func() (tcell.Screen, error) {
		return nil, errors.New("no tty")
	}}
	if err := Run(context.Background(), opts); err == nil {
		t.Fatal("expected error when the screen cannot be created")
	}
}

func TestRunRecordsJournal(t *testing.T) {
	sim := newLiveScreen()
	path := filepath.Join(t.TempDir(), "events.db")
	opts := simOptions(sim)
	opts.JournalPath = path

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), opts) }()

	// The journal opens before the screen, so wait for Init first.
	waitReady(t, sim, done)
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
		time.Sleep(20 * time.Millisecond)
	}
	if err := injectUntilDone(t, sim, done, tcell.KeyRune, 'q'); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer j.Close()
	n, err := j.Count(context.Background(), "key")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n == 0 {
		t.Fatal("expected key events in the journal")
	}
}
