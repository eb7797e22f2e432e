// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ricrac/paths.go
// Summary: Standard paths for ricrac logs and data files.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kittech0/ric-rac-roe/config"
)

// Paths holds the standard file locations.
type Paths struct {
	ConfigDir   string // <UserConfigDir>/ricrac
	LogPath     string // <ConfigDir>/logs/ricrac.log
	JournalPath string // <ConfigDir>/journal.db
}

// GetPaths resolves the standard paths.
func GetPaths() (*Paths, error) {
	root, err := config.Root()
	if err != nil {
		return nil, fmt.Errorf("get config directory: %w", err)
	}
	return &Paths{
		ConfigDir:   root,
		LogPath:     filepath.Join(root, "logs", "ricrac.log"),
		JournalPath: filepath.Join(root, "journal.db"),
	}, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func (p *Paths) EnsureConfigDir() error {
	return os.MkdirAll(p.ConfigDir, 0o755)
}

// journalPath picks the journal database: an explicit flag wins, then the
// config file when the journal is enabled there. Empty means disabled.
func journalPath(flagValue string, cfg config.Config, paths *Paths) string {
	if flagValue != "" {
		return flagValue
	}
	if !cfg.GetBool("journal", "enabled", false) {
		return ""
	}
	if p := cfg.GetString("journal", "path", ""); p != "" {
		return p
	}
	return paths.JournalPath
}
