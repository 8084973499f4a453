// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableName returns the base name of the running executable,
// without extension. Used as the application name declared to the
// driver when the configuration does not override it.
func ExecutableName() string {
	exe, err := os.Executable()
	if err != nil {
		return "prism"
	}
	name := filepath.Base(exe)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
