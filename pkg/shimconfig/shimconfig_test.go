// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package shimconfig

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadEnvFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "shim.env")
	writeFile(t, envFile, "REACTSHIM_FORMAT=json\nREACTSHIM_MAX_DEPTH=12\nREACTSHIM_LISTEN_ADDR=127.0.0.1:9000\nOTHER=1\n")
	t.Setenv("REACTSHIM_LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("REACTSHIM_DEV", "true")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 12, cfg.MaxDepth)
	assert.True(t, cfg.Dev)
	// process env wins over the file
	assert.Equal(t, "127.0.0.1:9100", cfg.ListenAddr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Chdir(t.TempDir())
	t.Setenv("REACTSHIM_FORMAT", "xml")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid format")

	t.Setenv("REACTSHIM_FORMAT", "html")
	t.Setenv("REACTSHIM_MAX_DEPTH", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestEnvKeyToField(t *testing.T) {
	field, ok := envKeyToField("REACTSHIM_OPEN_BROWSER")
	assert.True(t, ok)
	assert.Equal(t, "openbrowser", field)
	_, ok = envKeyToField("PATH")
	assert.False(t, ok)
	_, ok = envKeyToField("REACTSHIM_")
	assert.False(t, ok)
}

const testTheme = `
palette:
  primary:
    main: "#556cd6"
  background:
    default: "#fff"
`

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme("")
	require.NoError(t, err)
	assert.Nil(t, theme)

	path := filepath.Join(t.TempDir(), "theme.yaml")
	writeFile(t, path, testTheme)
	theme, err = LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"palette": map[string]any{
			"primary":    map[string]any{"main": "#556cd6"},
			"background": map[string]any{"default": "#fff"},
		},
	}, theme)

	writeFile(t, path, "palette: [unclosed")
	_, err = LoadTheme(path)
	assert.Error(t, err)
}

func TestThemeWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	writeFile(t, path, testTheme)
	watcher, err := MakeThemeWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()

	changed := make(chan map[string]any, 4)
	watcher.OnChange(func(theme map[string]any) {
		select {
		case changed <- theme:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)

	palette := watcher.Theme()["palette"].(map[string]any)
	assert.Equal(t, map[string]any{"main": "#556cd6"}, palette["primary"])

	writeFile(t, path, "palette:\n  primary:\n    main: \"#000\"\n")
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatalf("theme change not observed")
	}
	require.Eventually(t, func() bool {
		palette, _ := watcher.Theme()["palette"].(map[string]any)
		primary, _ := palette["primary"].(map[string]any)
		return primary["main"] == "#000"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSchemas(t *testing.T) {
	barr, err := json.Marshal(ConfigSchema())
	require.NoError(t, err)
	assert.Contains(t, string(barr), "listenaddr")
	barr, err = json.Marshal(ElemSchema())
	require.NoError(t, err)
	assert.Contains(t, string(barr), "children")
}
