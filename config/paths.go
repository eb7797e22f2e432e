// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for ricrac configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

// Root returns the ricrac directory under the user config dir.
func Root() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ricrac"), nil
}

func systemConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}
