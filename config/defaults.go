// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values, seeded from the embedded ricrac.json.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/kittech0/ric-rac-roe/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
)

func embeddedDefaults() Config {
	embeddedOnce.Do(func() {
		if err := json.Unmarshal(defaults.SystemConfig(), &embedded); err != nil {
			log.Printf("Config: Embedded defaults are invalid: %v", err)
			embedded = make(Config)
		}
	})
	return embedded
}

// defaultSystemConfig returns a fresh copy of the defaults.
func defaultSystemConfig() Config {
	cfg := Clone(embeddedDefaults())
	applySystemDefaults(cfg)
	return cfg
}

// applySystemDefaults fills keys missing from cfg with the embedded values,
// so a file written by an older release picks up new settings.
func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	defs := embeddedDefaults()
	for name := range defs {
		cfg.RegisterDefaults(name, defs.Section(name))
	}
}
