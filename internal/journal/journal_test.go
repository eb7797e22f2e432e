// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kittech0/ric-rac-roe/input"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "events.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return j
}

func TestJournalRecordsEveryKind(t *testing.T) {
	j := openTestJournal(t)
	base := time.Unix(1700000000, 0)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	ctx := context.Background()
	d := input.NewDispatcher(nil, j.Handlers())
	events := []input.Event{
		input.FocusGained{},
		input.Key{Info: tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)},
		input.Mouse{Info: tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModNone)},
		input.Paste{Text: "pasted"},
		input.Resize{Width: 80, Height: 24},
		input.FocusLost{},
	}
	for _, ev := range events {
		if err := d.Dispatch(ctx, ev); err != nil {
			t.Fatalf("Dispatch(%s): %v", ev.Kind(), err)
		}
	}

	total, err := j.Count(ctx, "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != int64(len(events)) {
		t.Fatalf("Count = %d, want %d", total, len(events))
	}

	entries, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	wantKinds := []string{"focus-lost", "resize", "paste", "mouse", "key", "focus-gained"}
	if len(entries) != len(wantKinds) {
		t.Fatalf("Recent returned %d entries, want %d", len(entries), len(wantKinds))
	}
	for i, e := range entries {
		if e.Kind != wantKinds[i] {
			t.Errorf("entry %d kind = %q, want %q", i, e.Kind, wantKinds[i])
		}
	}
	if entries[1].Detail != "80x24" {
		t.Errorf("resize detail = %q, want 80x24", entries[1].Detail)
	}
	if entries[2].Detail != "pasted" {
		t.Errorf("paste detail = %q, want pasted", entries[2].Detail)
	}
	if want := base.Add(6 * time.Second); !entries[0].Time.Equal(want) {
		t.Errorf("newest timestamp = %v, want %v", entries[0].Time, want)
	}
}

func TestJournalCountByKindAndLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	d := input.NewDispatcher(nil, j.Handlers())
	for i := 0; i < 3; i++ {
		if err := d.Dispatch(ctx, input.Resize{Width: uint16(i), Height: 1}); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
	}
	if err := d.Dispatch(ctx, input.Paste{Text: "x"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	n, err := j.Count(ctx, "resize")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count(resize) = %d, want 3", n)
	}

	entries, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 || entries[0].Kind != "paste" || entries[1].Detail != "2x1" {
		t.Errorf("Recent(2) = %+v", entries)
	}
	if none, _ := j.Recent(ctx, 0); none != nil {
		t.Errorf("Recent(0) = %+v, want nil", none)
	}
}

func TestJournalReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	ctx := context.Background()

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := input.NewDispatcher(nil, j.Handlers()).Dispatch(ctx, input.FocusGained{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j.Close()
	n, err := j.Count(ctx, "focus-gained")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count after reopen = %d, want 1", n)
	}
}

func TestJournalFailureEndsDispatch(t *testing.T) {
	j := openTestJournal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := input.NewDispatcher(nil, j.Handlers()).Dispatch(ctx, input.Paste{Text: "x"})
	if err == nil {
		t.Fatal("expected insert with cancelled context to fail")
	}
}

func TestDescribeMouse(t *testing.T) {
	got := DescribeMouse(tcell.NewEventMouse(4, 5, tcell.ButtonNone, tcell.ModNone))
	if got != "4,5 buttons=0 mods=0" {
		t.Errorf("DescribeMouse = %q", got)
	}
}
