// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package mount

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

func testRegistry(t *testing.T) *vdom.Registry {
	reg := vdom.MakeRegistry()
	require.NoError(t, reg.Register(
		vdom.NewComp("Card", func(ctx context.Context, props map[string]any) any {
			return vdom.E("div", vdom.P("className", "card"), vdom.E("h2", props["title"]), props[vdom.ChildrenPropKey])
		}),
		vdom.NewComp("Pair", func(ctx context.Context, props map[string]any) any {
			return []any{vdom.E("b", "one"), vdom.E("i", "two")}
		}),
		vdom.NewComp("Loop", func(ctx context.Context, props map[string]any) any {
			return vdom.E("Loop")
		}),
		vdom.NewComp("Crash", func(ctx context.Context, props map[string]any) any {
			panic("crash render")
		}),
	))
	return reg
}

var ignoreIds = cmpopts.IgnoreFields(vdom.Elem{}, "Id")

func TestExpand(t *testing.T) {
	reg := testRegistry(t)
	root := vdom.E("section", vdom.E("Card", vdom.P("title", "Hi"), "body"), vdom.E("Pair"))
	expanded, err := Expand(context.Background(), reg, root, Opts{})
	require.NoError(t, err)

	want := &vdom.Elem{Tag: "section", Children: []vdom.Elem{
		{Tag: "div", Props: map[string]any{"className": "card"}, Children: []vdom.Elem{
			{Tag: "h2", Children: []vdom.Elem{vdom.TextElem("Hi")}},
			vdom.TextElem("body"),
		}},
		{Tag: "b", Children: []vdom.Elem{vdom.TextElem("one")}},
		{Tag: "i", Children: []vdom.Elem{vdom.TextElem("two")}},
	}}
	if diff := cmp.Diff(want, expanded, ignoreIds); diff != "" {
		t.Fatalf("expanded tree mismatch (-want +got):\n%s", diff)
	}
	// the input tree is untouched
	assert.Equal(t, "Card", root.Children[0].Tag)
}

func TestExpandFragmentRoot(t *testing.T) {
	reg := testRegistry(t)
	expanded, err := Expand(context.Background(), reg, vdom.E("Pair"), Opts{})
	require.NoError(t, err)
	assert.Equal(t, vdom.FragmentTag, expanded.Tag)
	assert.Len(t, expanded.Children, 2)
}

func TestExpandErrors(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := Expand(ctx, reg, vdom.E("Loop"), Opts{MaxDepth: 10})
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, err = Expand(ctx, reg, vdom.E("div", vdom.E("Nope")), Opts{})
	assert.ErrorIs(t, err, vdom.ErrUnknownComponent)

	_, err = Expand(ctx, reg, vdom.E("div", vdom.E("Crash")), Opts{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crash render")

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Expand(cancelCtx, reg, vdom.E("div"), Opts{})
	assert.True(t, errors.Is(err, context.Canceled))

	err = Mount(ctx, reg, nil, HTMLTarget{W: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestMountHTML(t *testing.T) {
	reg := testRegistry(t)
	root := vdom.E("div",
		map[string]any{
			"className": "root",
			"style":     map[string]any{"marginTop": 24, "opacity": 0.5, "color": "red"},
			"hidden":    true,
			"disabled":  false,
			"onClick":   func() {},
			"key":       "k1",
			"data":      map[string]any{"a": 1},
		},
		vdom.E("Card", vdom.P("title", "a<b"), "x & y"),
		vdom.E("br"),
		vdom.E("label", vdom.P("htmlFor", "f1"), "L"),
	)
	var buf bytes.Buffer
	err := Mount(context.Background(), reg, root, HTMLTarget{W: &buf})
	require.NoError(t, err)
	want := `<div class="root" data="{&#34;a&#34;:1}" hidden style="color:red;margin-top:24px;opacity:0.5">` +
		`<div class="card"><h2>a&lt;b</h2>x &amp; y</div><br><label for="f1">L</label></div>`
	assert.Equal(t, want, buf.String())
}

func TestMountJSON(t *testing.T) {
	reg := testRegistry(t)
	root := vdom.E("div", map[string]any{"onClick": func() {}, "title": "t"}, "txt")
	var buf bytes.Buffer
	err := Mount(context.Background(), reg, root, JSONTarget{W: &buf, Indent: "  "})
	require.NoError(t, err)
	var decoded vdom.Elem
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "div", decoded.Tag)
	assert.Equal(t, map[string]any{"title": "t"}, decoded.Props)
	assert.Equal(t, root.Id, decoded.Id)
	require.Len(t, decoded.Children, 1)
	assert.Equal(t, "txt", decoded.Children[0].Text)

	buf.Reset()
	require.NoError(t, JSONTarget{W: &buf}.Render(vdom.E("p")))
	assert.Contains(t, buf.String(), `"tag":"p"`)
}

func TestMountHTMLSkipsBadAttrNames(t *testing.T) {
	root := vdom.E("div", map[string]any{
		`a" onload="alert(1)`: "x",
		"bad key":             "x",
		"x>y":                 "x",
		"a/b":                 "x",
		"":                    "x",
		"data-ok":             "1",
		"aria-label":          "ok",
		"style":               map[string]any{"color": "red", "onHover": func() {}},
	})
	assert.Equal(t, `<div aria-label="ok" data-ok="1" style="color:red"></div>`, RenderHTMLString(root))
}

func TestMountJSONNestedValues(t *testing.T) {
	reg := testRegistry(t)
	icon := vdom.E("span", "icon")
	root := vdom.E("div", map[string]any{
		"style":     map[string]any{"color": "red", "onHover": func() {}},
		"items":     []any{1, func() {}, "a"},
		"ratio":     math.NaN(),
		"startIcon": icon,
	})
	var buf bytes.Buffer
	err := Mount(context.Background(), reg, root, JSONTarget{W: &buf})
	require.NoError(t, err)
	var decoded vdom.Elem
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]any{"color": "red"}, decoded.Props["style"])
	assert.Equal(t, []any{float64(1), "a"}, decoded.Props["items"])
	assert.NotContains(t, decoded.Props, "ratio")
	iconProp, ok := decoded.Props["startIcon"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "span", iconProp["tag"])
}
