// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/logging.go
// Summary: Redirects the standard logger to a file while tcell owns the terminal.

package ricracruntime

import (
	"log"
	"os"
	"path/filepath"
)

// setupLogging sends the standard logger to path. The returned func restores
// the previous output and flags, then closes the file.
func setupLogging(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		file.Close()
	}, nil
}
