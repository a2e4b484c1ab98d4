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

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// chdir changes the working directory for the duration of the test (t.Chdir requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := LoadWith("", "", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "main", c.Entry)
	assert.Equal(t, "(-> Nil Int64)", c.EntryType)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "infer.yaml", "entry: start\nlog_level: debug\ncolor: never\n")
	envFile := write(t, dir, "test.env", "INFER_LOG_LEVEL=info\nINFER_PRUNE_UNUSED=true\n")

	c, err := LoadWith(file, envFile, envMap(map[string]string{"INFER_LOG_LEVEL": "error", "INFER_DUMP": "1"}))
	require.NoError(t, err)
	assert.Equal(t, "start", c.Entry)
	assert.Equal(t, ColorNever, c.Color)
	assert.Equal(t, "error", c.LogLevel, "the process environment overrides .env")
	assert.True(t, c.PruneUnused)
	assert.True(t, c.Dump)
}

func TestDefaultFilesAreOptional(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	write(t, dir, DefaultFile, "entry_type: \"(-> Nil Bool)\"\n")

	c, err := LoadWith("", "", noEnv)
	require.NoError(t, err)
	et, err := c.EntryTypeValue()
	require.NoError(t, err)
	assert.Equal(t, "(-> Nil Bool)", c.EntryType)
	assert.NotNil(t, et)

	_, err = LoadWith(filepath.Join(dir, "missing.yaml"), "", noEnv)
	assert.Error(t, err, "an explicitly named file must exist")
}

func TestInvalid(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cases := map[string]struct {
		file string
		env  map[string]string
	}{
		"unknown key":  {file: "entyr: main\n"},
		"bad color":    {file: "color: sometimes\n"},
		"bad level":    {file: "log_level: loud\n"},
		"bad type":     {file: "entry_type: \"(-> Nil\"\n"},
		"empty entry":  {env: map[string]string{"INFER_ENTRY": ""}},
		"bad env bool": {env: map[string]string{"INFER_DUMP": "maybe"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			path := ""
			if c.file != "" {
				path = write(t, dir, "bad.yaml", c.file)
			}
			_, err := LoadWith(path, "", envMap(c.env))
			assert.Error(t, err)
		})
	}
}
