// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/panic_logger.go
// Summary: Panic capture for the runtime's goroutines.

package ricracruntime

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"
)

// PanicLogger records panic stack traces to the log, stderr and, when a path
// is set, an append-only panic file.
type PanicLogger struct {
	path string
	mu   sync.Mutex
	exit func(code int)
}

// NewPanicLogger returns a logger that appends to path if non-empty.
func NewPanicLogger(path string) *PanicLogger {
	return &PanicLogger{path: path, exit: os.Exit}
}

// Recover must be deferred. A recovered panic is logged and the process exits
// with status 2, since the terminal may be left in raw mode otherwise.
func (p *PanicLogger) Recover(name string) {
	if r := recover(); r != nil {
		p.report(name, r)
		p.exit(2)
	}
}

// Go runs fn on a new goroutine guarded by Recover.
func (p *PanicLogger) Go(name string, fn func()) {
	go func() {
		defer p.Recover(name)
		fn()
	}()
}

func (p *PanicLogger) report(name string, r interface{}) {
	buf := make([]byte, 1<<16)
	stack := buf[:runtime.Stack(buf, true)]
	msg := fmt.Sprintf("panic in %s: %v\n%s", name, r, stack)
	log.Print(msg)
	fmt.Fprintln(os.Stderr, msg)
	if p.path == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("panic: unable to write panic log: %v", err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] %s\n", time.Now().Format(time.RFC3339Nano), msg)
}
