// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

func runShim(t *testing.T, args ...string) (string, error) {
	t.Helper()
	envFileArg, renderFormat, renderTheme, renderOutFile, schemaOutFile = "", "", "", "", ""
	versionVerbose = false
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRenderHTML(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := runShim(t, "render")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<div class="ThemeProvider-root"`), out)
	assert.Contains(t, out, "CDN v4-beta example")
	assert.Contains(t, out, `href="https://material-ui.com/getting-started/templates/"`)
}

func TestRenderJSONFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REACTSHIM_FORMAT", "json")
	out, err := runShim(t, "render")
	require.NoError(t, err)
	var tree vdom.Elem
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "div", tree.Tag)
}

func TestRenderThemeAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	themeFile := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themeFile, []byte("palette:\n  primary:\n    main: \"#abcdef\"\n"), 0644))
	outFile := filepath.Join(dir, "page.html")
	_, err := runShim(t, "render", "--theme", themeFile, "-o", outFile)
	require.NoError(t, err)
	barr, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(barr), "--palette-primary-main:#abcdef")
}

func TestRenderBadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runShim(t, "render", "--format", "xml")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestBadEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runShim(t, "--env", "missing.env", "version")
	assert.ErrorContains(t, err, "loading config")
}

func TestSchema(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := runShim(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"listenaddr"`)

	out, err = runShim(t, "schema", "elem")
	require.NoError(t, err)
	assert.Contains(t, out, `"children"`)

	_, err = runShim(t, "schema", "nope")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := runShim(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "reactshim v"+ReactShimVersion+"\n", out)

	out, err = runShim(t, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "listenaddr: 127.0.0.1:1729")
}

func TestReleaseLine(t *testing.T) {
	assert.Equal(t, "v0.11", releaseLine("v0.11.3"))
	assert.Equal(t, "v1.2", releaseLine("v1.2"))
	assert.Equal(t, "dev", releaseLine("v0.12.0-beta.1"))
	assert.Equal(t, "dev", releaseLine("vlocal"))
}

func TestSchemaOutputFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	var stderr bytes.Buffer
	WrappedStderr = &stderr
	t.Cleanup(func() { WrappedStderr = os.Stderr })

	outFile := filepath.Join(dir, "config.schema.json")
	_, err := runShim(t, "schema", "-o", outFile)
	require.NoError(t, err)
	barr, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(barr), `"listenaddr"`)
	assert.Empty(t, stderr.String())

	_, err = runShim(t, "schema", "-o", outFile)
	require.NoError(t, err)
	assert.Equal(t, "no changes to "+outFile+"\n", stderr.String())

	stderr.Reset()
	_, err = runShim(t, "schema", "-o", filepath.Join(dir, "missing", "config.schema.json"))
	assert.ErrorContains(t, err, "failed to write schema")
	assert.Empty(t, stderr.String())
}
