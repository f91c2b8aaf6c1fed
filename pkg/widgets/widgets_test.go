// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package widgets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/reactshim/pkg/mount"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

func renderHTML(t *testing.T, root *vdom.Elem) string {
	t.Helper()
	expanded, err := mount.Expand(context.Background(), MakeRegistry(), root, mount.Opts{})
	require.NoError(t, err)
	return mount.RenderHTMLString(expanded)
}

func TestRegistry(t *testing.T) {
	reg := MakeRegistry()
	for _, comp := range All() {
		assert.Same(t, comp, reg.Lookup(comp.Name))
	}
}

func TestTypography(t *testing.T) {
	html := renderHTML(t, vdom.E("Typography", map[string]any{
		"variant": "h4", "component": "h1", "gutterBottom": true, "align": "center",
	}, "Title"))
	assert.Equal(t, `<h1 class="Typography-root Typography-h4" style="margin-bottom:0.35em;text-align:center">Title</h1>`, html)

	html = renderHTML(t, vdom.E("Typography", vdom.P("color", "textSecondary"), "x"))
	assert.Contains(t, html, `<p class="Typography-root Typography-body1"`)
	assert.Contains(t, html, "var(--palette-text-secondary")
}

func TestLink(t *testing.T) {
	html := renderHTML(t, vdom.E("Link", map[string]any{"href": "https://example.com/", "color": "inherit"}, "site"))
	assert.Equal(t, `<a class="Link-root" href="https://example.com/" style="color:inherit">site</a>`, html)
}

func TestContainer(t *testing.T) {
	html := renderHTML(t, vdom.E("Container", vdom.P("maxWidth", "sm")))
	assert.Contains(t, html, `class="Container-root Container-maxWidthSM"`)
	assert.Contains(t, html, "max-width:600px")
}

func TestThemeProvider(t *testing.T) {
	theme := map[string]any{
		"palette": map[string]any{
			"primary":    map[string]any{"main": "#556cd6"},
			"background": map[string]any{"default": "#fff"},
		},
	}
	vars := ThemeVars(theme)
	assert.Equal(t, map[string]any{
		"--palette-primary-main":       "#556cd6",
		"--palette-background-default": "#fff",
	}, vars)
	html := renderHTML(t, vdom.E("ThemeProvider", vdom.P("theme", theme), vdom.E("CssBaseline")))
	assert.Contains(t, html, `style="--palette-background-default:#fff;--palette-primary-main:#556cd6"`)
	assert.Contains(t, html, "<style>")
}

func TestSvgIcon(t *testing.T) {
	html := renderHTML(t, vdom.E("SvgIcon", vdom.P("className", "bulb"), vdom.E("path", vdom.P("d", "M0 0"))))
	assert.Contains(t, html, `<svg aria-hidden="true" class="SvgIcon-root bulb" focusable="false"`)
	assert.Contains(t, html, `<path d="M0 0"></path></svg>`)
	assert.Contains(t, html, "font-size:1.5rem")
}
