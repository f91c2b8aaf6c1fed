// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package demoapp assembles the getting-started page (heading, pro tip and
// copyright footer inside a themed container) out of wrapped widgets.
package demoapp

import (
	"context"
	"fmt"
	"time"

	"github.com/wavetermdev/reactshim/pkg/mount"
	"github.com/wavetermdev/reactshim/pkg/vdom"
	"github.com/wavetermdev/reactshim/pkg/widgets"
	"github.com/wavetermdev/reactshim/pkg/wrap"
)

const lightBulbPath = "M9 21c0 .55.45 1 1 1h4c.55 0 1-.45 1-1v-1H9v1zm3-19C8.14 2 5 5.14 5 9c0 2.38 1.19 4.47 3 5.74V17c0 " +
	".55.45 1 1 1h6c.55 0 1-.45 1-1v-2.26c1.81-1.27 3-3.36 3-5.74 0-3.86-3.14-7-7-7zm2.85 11.1l-.85.6V16h-4v-2.3l-.85-.6C7.8 " +
	"12.16 7 10.63 7 9c0-2.76 2.24-5 5-5s5 2.24 5 5c0 1.63-.8 3.16-2.15 4.1z"

const copyrightTemplate = `<Typography variant="body2" color="textSecondary" align="center">` +
	`Copyright © <Link color="inherit" href="#bind:href">Your Website</Link>` +
	`</Typography>`

const TemplatesUrl = "https://material-ui.com/getting-started/templates/"
const HomeUrl = "https://material-ui.com/"

// DefaultTheme matches the stock palette of the page
func DefaultTheme() map[string]any {
	return map[string]any{
		"palette": map[string]any{
			"primary":    map[string]any{"main": "#556cd6"},
			"secondary":  map[string]any{"main": "#19857b"},
			"error":      map[string]any{"main": "#FF1744"},
			"background": map[string]any{"default": "#fff"},
		},
	}
}

type App struct {
	Registry  *vdom.Registry
	Now       func() time.Time
	MountOpts mount.Opts

	Typography    wrap.ElemFn
	Link          wrap.ElemFn
	Container     wrap.ElemFn
	ThemeProvider wrap.ElemFn
	CssBaseline   wrap.ElemFn
	SvgIcon       wrap.ElemFn
	Div           wrap.ElemFn
	Path          wrap.ElemFn

	LightBulbIcon wrap.ElemFn
	ProTip        wrap.ElemFn
	Copyright     wrap.ElemFn
	Page          wrap.ElemFn

	copyright *vdom.TemplateNode
}

func MakeApp() (*App, error) {
	reg := widgets.MakeRegistry()
	factory := reg.CreateElement
	app := &App{
		Registry:      reg,
		Now:           time.Now,
		Typography:    wrap.Wrap(widgets.Typography, factory).Fn(),
		Link:          wrap.Wrap(widgets.Link, factory).Fn(),
		Container:     wrap.Wrap(widgets.Container, factory).Fn(),
		ThemeProvider: wrap.Wrap(widgets.ThemeProvider, factory).Fn(),
		CssBaseline:   wrap.Wrap(widgets.CssBaseline, factory).Fn(),
		SvgIcon:       wrap.Wrap(widgets.SvgIcon, factory).Fn(),
		Div:           wrap.Wrap(vdom.Tag("div"), factory).Fn(),
		Path:          wrap.Wrap(vdom.Tag("path"), factory).Fn(),
	}
	copyright, err := vdom.ParseTemplate(copyrightTemplate, map[string]any{"href": HomeUrl})
	if err != nil {
		return nil, fmt.Errorf("parsing copyright template: %w", err)
	}
	app.copyright = copyright
	comps := []*wrap.Constructor{
		wrap.WrapFunc("LightBulbIcon", app.renderLightBulbIcon, factory),
		wrap.WrapFunc("ProTip", app.renderProTip, factory),
		wrap.WrapFunc("Copyright", app.renderCopyright, factory),
		wrap.WrapFunc("App", app.renderPage, factory),
	}
	for _, ctor := range comps {
		err := reg.Register(ctor.Ref().(*vdom.Comp))
		if err != nil {
			return nil, fmt.Errorf("registering %s: %w", ctor.Ref().RefName(), err)
		}
	}
	app.LightBulbIcon = comps[0].Fn()
	app.ProTip = comps[1].Fn()
	app.Copyright = comps[2].Fn()
	app.Page = comps[3].Fn()
	return app, nil
}

// passes every prop except children through to the wrapped component
func forwardProps(props map[string]any) wrap.Params {
	rtn := make(wrap.Params, len(props))
	for k, v := range props {
		if k == vdom.ChildrenPropKey {
			continue
		}
		rtn[k] = v
	}
	return rtn
}

func (app *App) renderLightBulbIcon(ctx context.Context, props map[string]any) any {
	return app.SvgIcon(app.Path(wrap.P("d", lightBulbPath)), forwardProps(props))
}

func (app *App) renderProTip(ctx context.Context, props map[string]any) any {
	return app.Typography(wrap.P("class_name", "ProTip-root"), wrap.P("color", "textSecondary")).With(
		app.LightBulbIcon(wrap.P("class_name", "ProTip-lightBulb")),
		"Pro tip: See more ",
		app.Link("templates", wrap.P("href", TemplatesUrl)),
		" on the Material-UI documentation.",
	)
}

func (app *App) renderCopyright(ctx context.Context, props map[string]any) any {
	footer := wrap.MustFromTemplate(app.copyright, app.Registry.CreateElement)
	return footer.With(fmt.Sprintf(" %d.", app.Now().Year()))
}

func (app *App) renderPage(ctx context.Context, props map[string]any) any {
	return app.Container(wrap.P("max_width", "sm")).With(
		app.Div(
			app.Typography(
				"CDN v4-beta example",
				wrap.P("variant", "h4"),
				wrap.P("component", "h1"),
				wrap.P("gutter_bottom", true),
			),
			app.ProTip(),
			app.Copyright(),
			wrap.P("style", map[string]any{"marginTop": 24}),
		),
	)
}

// Root builds the top-level tree: theme provider, baseline styles and the page
func (app *App) Root(theme map[string]any) (*wrap.Element, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	return wrap.Catch(func() *wrap.Element {
		return app.ThemeProvider(app.CssBaseline(), app.Page(), wrap.P("theme", theme))
	})
}

// Render builds the root tree and mounts it on target
func (app *App) Render(ctx context.Context, theme map[string]any, target mount.Target) error {
	root, err := app.Root(theme)
	if err != nil {
		return err
	}
	return mount.MountWithOpts(ctx, app.Registry, root.Node(), target, app.MountOpts)
}
