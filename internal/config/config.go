// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads settings for the infer command: defaults, then a YAML file, then a .env file,
// then INFER_* environment variables.
package config

import (
	"bytes"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/infer"
	"github.com/wdamron/infer/types"
)

const (
	// DefaultFile is read when no configuration file is named explicitly. It may be missing.
	DefaultFile = "infer.yaml"
	// DefaultEnvFile is read when no .env file is named explicitly. It may be missing.
	DefaultEnvFile = ".env"
	// EnvPrefix prefixes environment variable overrides: INFER_ENTRY, INFER_LOG_LEVEL, ...
	EnvPrefix = "INFER_"
)

// Color modes for diagnostics
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds settings for the infer command.
type Config struct {
	// Name of the definition where inference starts
	Entry string `yaml:"entry"`
	// Type required of the entry definition, in `(-> Nil Int64)` syntax
	EntryType string `yaml:"entry_type"`
	// debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// auto, always or never
	Color string `yaml:"color"`
	// Delete definitions unreachable from the entry before inference
	PruneUnused bool `yaml:"prune_unused"`
	// Dump the inferred module's Go representation after inference
	Dump bool `yaml:"dump"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Entry:     infer.DefaultEntry,
		EntryType: types.TypeString(infer.DefaultEntryType()),
		LogLevel:  "warn",
		Color:     ColorAuto,
	}
}

// Load reads the configuration file at path and the .env file at envFile, then applies overrides
// from the process environment. An empty path or envFile selects the default file, which is skipped
// if it does not exist.
func Load(path, envFile string) (Config, error) {
	return LoadWith(path, envFile, os.LookupEnv)
}

// LoadWith is Load with environment variables read from lookup.
func LoadWith(path, envFile string, lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	src, err := readOptional(path, DefaultFile)
	if err != nil {
		return c, err
	}
	if len(src) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return c, errors.Wrapf(err, "config: %s", orDefault(path, DefaultFile))
		}
	}

	dotenv := map[string]string{}
	if envSrc, err := readOptional(envFile, DefaultEnvFile); err != nil {
		return c, err
	} else if len(envSrc) > 0 {
		if dotenv, err = godotenv.Unmarshal(string(envSrc)); err != nil {
			return c, errors.Wrapf(err, "config: %s", orDefault(envFile, DefaultEnvFile))
		}
	}

	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := c.applyEnv(env); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func orDefault(path, def string) string {
	if path == "" {
		return def
	}
	return path
}

// Read the file at path, or the default file if path is empty. A missing default file reads as empty.
func readOptional(path, def string) ([]byte, error) {
	if path != "" {
		src, err := os.ReadFile(path)
		return src, errors.Wrap(err, "config")
	}
	src, err := os.ReadFile(def)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return src, errors.Wrap(err, "config")
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	strs := map[string]*string{
		"ENTRY":      &c.Entry,
		"ENTRY_TYPE": &c.EntryType,
		"LOG_LEVEL":  &c.LogLevel,
		"COLOR":      &c.Color,
	}
	for key, field := range strs {
		if v, ok := env(EnvPrefix + key); ok {
			*field = v
		}
	}

	bools := map[string]*bool{
		"PRUNE_UNUSED": &c.PruneUnused,
		"DUMP":         &c.Dump,
	}
	for key, field := range bools {
		v, ok := env(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("config: %s%s: invalid boolean %q", EnvPrefix, key, v)
		}
		*field = b
	}
	return nil
}

// Validate checks that every setting has a valid value.
func (c Config) Validate() error {
	if c.Entry == "" {
		return errors.New("config: entry must not be empty")
	}
	if _, err := c.EntryTypeValue(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("config: color must be %s, %s or %s, found %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}

// EntryTypeValue parses the entry type.
func (c Config) EntryTypeValue() (types.Type, error) {
	t, err := types.Parse(c.EntryType)
	if err != nil {
		return nil, errors.Wrap(err, "config: entry_type")
	}
	return t, nil
}

// Level parses the log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, errors.Wrap(err, "config: log_level")
	}
	return level, nil
}
