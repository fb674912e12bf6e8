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

// Package config loads the langetude configuration file.
//
// The configuration is a TOML file:
//
//	source = "https://example.com/langetude/data/"
//	log_file = "/tmp/langetude.log"
//	fold = ["whitespace", "case"]
//
//	[search]
//	delay = "500ms"
//	reset_delay = "1s"
//	limit = 8
//
//	[http]
//	timeout = "30s"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ianlewis/go-langetude/search"
	"github.com/ianlewis/go-langetude/source"
)

// ErrInvalid indicates an invalid configuration.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as a string, e.g. "500ms".
type Duration time.Duration

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the application configuration.
type Config struct {
	// Source is the location of the dictionary documents: a directory, a
	// SQLite bundle or a URL.
	Source string `toml:"source"`

	// LogFile is where the interactive browser writes its logs. Empty
	// disables logging in the browser.
	LogFile string `toml:"log_file"`

	// Fold lists the folders applied to headwords and search terms.
	Fold []string `toml:"fold"`

	Search Search `toml:"search"`
	HTTP   HTTP   `toml:"http"`
}

// Search configures search sessions.
type Search struct {
	Delay      Duration `toml:"delay"`
	ResetDelay Duration `toml:"reset_delay"`
	Limit      int      `toml:"limit"`
}

// HTTP configures the HTTP document source.
type HTTP struct {
	Timeout Duration `toml:"timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: Search{
			Delay:      Duration(search.DefaultDelay),
			ResetDelay: Duration(search.DefaultResetDelay),
			Limit:      search.DefaultLimit,
		},
		HTTP: HTTP{
			Timeout: Duration(source.DefaultHTTPTimeout),
		},
	}
}

// FoldNames returns the fold list in the form accepted by folding.Parse.
func (c *Config) FoldNames() string {
	return strings.Join(c.Fold, ",")
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Search.Delay < 0 {
		return fmt.Errorf("%w: negative search.delay", ErrInvalid)
	}
	if c.Search.ResetDelay < 0 {
		return fmt.Errorf("%w: negative search.reset_delay", ErrInvalid)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("%w: negative search.limit", ErrInvalid)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: negative http.timeout", ErrInvalid)
	}
	return nil
}

// Path returns the default configuration file path,
// $XDG_CONFIG_HOME/langetude/config.toml or its platform equivalent.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "langetude", "config.toml"), nil
}

// Load reads the configuration file at path. Values missing from the file
// keep their defaults. A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := Parse(b, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML configuration into cfg. Unknown keys are an error.
func Parse(b []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("%w: line %d column %d: %w", ErrInvalid, row, col, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg.Validate()
}
