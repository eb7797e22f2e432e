// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import _ "embed"

//go:embed ricrac.json
var systemConfig []byte

// SystemConfig returns the embedded ricrac.json.
func SystemConfig() []byte {
	return append([]byte(nil), systemConfig...)
}
