// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build windows

package main

import (
	"os"
	"path/filepath"
)

// dataLocations returns the directories searched for a dictionary when no
// source is configured.
func dataLocations() []string {
	var loc []string

	if execPath, err := os.Executable(); err == nil {
		loc = append(loc, filepath.Join(filepath.Dir(execPath), "data"))
	}

	if dataDir := os.Getenv("LANGETUDE_DATA_DIR"); dataDir != "" {
		loc = append(loc, dataDir)
	}

	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		loc = append(loc, filepath.Join(configDir, "langetude", "data"))
	}

	return loc
}
