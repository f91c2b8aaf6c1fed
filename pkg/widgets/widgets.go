// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package widgets is a small component library (typography, links, layout,
// icons, theming) rendered to plain html tags.  it stands in for an external
// component library: callers only see the *vdom.Comp handles.
package widgets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wavetermdev/reactshim/pkg/keycase"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

var (
	Typography    = vdom.NewComp("Typography", renderTypography)
	Link          = vdom.NewComp("Link", renderLink)
	Container     = vdom.NewComp("Container", renderContainer)
	ThemeProvider = vdom.NewComp("ThemeProvider", renderThemeProvider)
	CssBaseline   = vdom.NewComp("CssBaseline", renderCssBaseline)
	SvgIcon       = vdom.NewComp("SvgIcon", renderSvgIcon)
)

func All() []*vdom.Comp {
	return []*vdom.Comp{Typography, Link, Container, ThemeProvider, CssBaseline, SvgIcon}
}

// MakeRegistry returns a registry with every widget registered
func MakeRegistry() *vdom.Registry {
	reg := vdom.MakeRegistry()
	err := reg.Register(All()...)
	if err != nil {
		// only fails on invalid comps, which would be a bug in this package
		panic(fmt.Sprintf("widgets: %v", err))
	}
	return reg
}

var variantTags = map[string]string{
	"h1": "h1", "h2": "h2", "h3": "h3", "h4": "h4", "h5": "h5", "h6": "h6",
	"subtitle1": "h6", "subtitle2": "h6",
	"body1": "p", "body2": "p",
	"caption": "span", "overline": "span", "inherit": "p",
}

var colorVars = map[string]string{
	"primary":       "var(--palette-primary-main)",
	"secondary":     "var(--palette-secondary-main)",
	"error":         "var(--palette-error-main)",
	"textPrimary":   "var(--palette-text-primary, rgba(0,0,0,0.87))",
	"textSecondary": "var(--palette-text-secondary, rgba(0,0,0,0.54))",
}

func propStr(props map[string]any, key string, def string) string {
	if str, ok := props[key].(string); ok && str != "" {
		return str
	}
	return def
}

func propBool(props map[string]any, key string) bool {
	val, _ := props[key].(bool)
	return val
}

func cssColor(color string) string {
	if color == "" || color == "inherit" || color == "initial" {
		return color
	}
	if cssVar, ok := colorVars[color]; ok {
		return cssVar
	}
	return color
}

// copies the style prop so widgets can add to it without touching the caller's map
func baseStyle(props map[string]any) map[string]any {
	rtn := make(map[string]any)
	if style, ok := props["style"].(map[string]any); ok {
		for k, v := range style {
			rtn[k] = v
		}
	}
	return rtn
}

func renderTypography(ctx context.Context, props map[string]any) any {
	variant := propStr(props, "variant", "body1")
	tag := propStr(props, "component", variantTags[variant])
	if tag == "" {
		tag = "span"
	}
	style := baseStyle(props)
	if color := cssColor(propStr(props, "color", "")); color != "" {
		style["color"] = color
	}
	if align := propStr(props, "align", ""); align != "" && align != "inherit" {
		style["textAlign"] = align
	}
	if propBool(props, "gutterBottom") {
		style["marginBottom"] = "0.35em"
	}
	classes := vdom.Classes("Typography-root", "Typography-"+variant, propStr(props, "className", ""))
	return vdom.E(tag, map[string]any{"className": classes, "style": style}, props[vdom.ChildrenPropKey])
}

func renderLink(ctx context.Context, props map[string]any) any {
	style := baseStyle(props)
	style["color"] = cssColor(propStr(props, "color", "primary"))
	attrs := map[string]any{
		"className": vdom.Classes("Link-root", propStr(props, "className", "")),
		"href":      propStr(props, "href", "#"),
		"style":     style,
	}
	if target := propStr(props, "target", ""); target != "" {
		attrs["target"] = target
		attrs["rel"] = "noopener noreferrer"
	}
	return vdom.E("a", attrs, props[vdom.ChildrenPropKey])
}

var containerWidths = map[string]int{
	"xs": 444, "sm": 600, "md": 960, "lg": 1280, "xl": 1920,
}

func renderContainer(ctx context.Context, props map[string]any) any {
	style := baseStyle(props)
	style["marginLeft"] = "auto"
	style["marginRight"] = "auto"
	style["paddingLeft"] = 16
	style["paddingRight"] = 16
	maxWidth := propStr(props, "maxWidth", "lg")
	if width, ok := containerWidths[maxWidth]; ok {
		style["maxWidth"] = width
	}
	classes := vdom.Classes("Container-root", "Container-maxWidth"+strings.ToUpper(maxWidth), propStr(props, "className", ""))
	return vdom.E("div", map[string]any{"className": classes, "style": style}, props[vdom.ChildrenPropKey])
}

// ThemeVars flattens a nested theme map into css custom properties:
// {"palette": {"primary": {"main": "#556cd6"}}} -> "--palette-primary-main": "#556cd6"
func ThemeVars(theme map[string]any) map[string]any {
	rtn := make(map[string]any)
	flattenTheme(rtn, "-", theme)
	return rtn
}

func flattenTheme(out map[string]any, prefix string, node map[string]any) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name := prefix + "-" + keycase.ToKebabCase(keycase.ToCamelCase(key))
		switch val := node[key].(type) {
		case map[string]any:
			flattenTheme(out, name, val)
		case nil:
			continue
		default:
			out[name] = fmt.Sprint(val)
		}
	}
}

func renderThemeProvider(ctx context.Context, props map[string]any) any {
	theme, _ := props["theme"].(map[string]any)
	style := ThemeVars(theme)
	return vdom.E("div", map[string]any{"className": "ThemeProvider-root", "style": style}, props[vdom.ChildrenPropKey])
}

const baselineCss = `html{-webkit-font-smoothing:antialiased;box-sizing:border-box}` +
	`*,*::before,*::after{box-sizing:inherit}` +
	`body{margin:0;font-family:Roboto,Helvetica,Arial,sans-serif;background-color:var(--palette-background-default, #fff)}`

func renderCssBaseline(ctx context.Context, props map[string]any) any {
	return []any{vdom.E("style", baselineCss), props[vdom.ChildrenPropKey]}
}

var iconSizes = map[string]string{
	"small": "1.25rem", "medium": "1.5rem", "large": "2.1875rem", "inherit": "inherit",
}

func renderSvgIcon(ctx context.Context, props map[string]any) any {
	style := baseStyle(props)
	style["width"] = "1em"
	style["height"] = "1em"
	style["fill"] = "currentColor"
	if size, ok := iconSizes[propStr(props, "fontSize", "medium")]; ok {
		style["fontSize"] = size
	}
	if color := cssColor(propStr(props, "color", "")); color != "" {
		style["color"] = color
	}
	attrs := map[string]any{
		"className":   vdom.Classes("SvgIcon-root", propStr(props, "className", "")),
		"viewBox":     propStr(props, "viewBox", "0 0 24 24"),
		"focusable":   "false",
		"aria-hidden": "true",
		"style":       style,
	}
	return vdom.E("svg", attrs, props[vdom.ChildrenPropKey])
}
