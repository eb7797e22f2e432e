// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing. The empty name
// addresses top-level keys.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults adds defaults to a section without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) lookup(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.lookup(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value, accepting JSON numbers and numeric strings.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch v := v.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed)
		}
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value, accepting "true"/"false" strings and numbers.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	v, ok := c.lookup(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch v := v.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return defaultValue
}
