// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package mount

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wavetermdev/reactshim/pkg/keycase"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

var propToAttr = map[string]string{
	"className": "class",
	"htmlFor":   "for",
	"tabIndex":  "tabindex",
	"readOnly":  "readonly",
	"maxLength": "maxlength",
}

// props that are consumed by the tree and never rendered
var skipProps = map[string]bool{
	vdom.KeyPropKey:      true,
	vdom.ChildrenPropKey: true,
	"ref":                true,
}

// css properties that take plain numbers
var unitlessCss = map[string]bool{
	"opacity": true, "zIndex": true, "fontWeight": true, "lineHeight": true, "flex": true,
	"flexGrow": true, "flexShrink": true, "order": true, "zoom": true,
}

type HTMLTarget struct {
	W io.Writer
}

func (t HTMLTarget) Render(root *vdom.Elem) error {
	bw := bufio.NewWriter(t.W)
	writeElemHTML(bw, root)
	return bw.Flush()
}

func RenderHTMLString(root *vdom.Elem) string {
	var sb strings.Builder
	writeElemHTML(&sb, root)
	return sb.String()
}

type stringWriter interface {
	io.Writer
	WriteString(s string) (int, error)
}

func writeElemHTML(w stringWriter, elem *vdom.Elem) {
	if elem == nil {
		return
	}
	switch elem.Tag {
	case vdom.TextTag:
		w.WriteString(html.EscapeString(elem.Text))
		return
	case vdom.FragmentTag:
		for idx := range elem.Children {
			writeElemHTML(w, &elem.Children[idx])
		}
		return
	}
	w.WriteString("<" + elem.Tag)
	writeAttrs(w, elem.Props)
	w.WriteString(">")
	if vdom.IsVoidTag(elem.Tag) {
		return
	}
	for idx := range elem.Children {
		writeElemHTML(w, &elem.Children[idx])
	}
	w.WriteString("</" + elem.Tag + ">")
}

func sortedPropKeys(props map[string]any) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeAttrs(w stringWriter, props map[string]any) {
	for _, key := range sortedPropKeys(props) {
		if skipProps[key] {
			continue
		}
		attrName := key
		if mapped, ok := propToAttr[key]; ok {
			attrName = mapped
		}
		if !isValidAttrName(attrName) {
			continue
		}
		val := props[key]
		if key == "style" {
			if styleMap, ok := val.(map[string]any); ok {
				styleStr := styleToCss(styleMap)
				if styleStr != "" {
					fmt.Fprintf(w, " style=\"%s\"", html.EscapeString(styleStr))
				}
				continue
			}
		}
		attrVal, ok := attrValue(val)
		if !ok {
			continue
		}
		if attrVal == nil {
			w.WriteString(" " + attrName)
			continue
		}
		fmt.Fprintf(w, " %s=\"%s\"", attrName, html.EscapeString(*attrVal))
	}
}

// rejects names that would end the attribute or the tag (see the html
// attribute name state: whitespace, quotes, '/', '=', '>' and controls)
func isValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
		switch r {
		case '"', '\'', '<', '>', '/', '=', '`', utf8.RuneError:
			return false
		}
	}
	return true
}

// attrValue returns (nil, true) for boolean attributes that are set
func attrValue(val any) (*string, bool) {
	if val == nil {
		return nil, false
	}
	switch valTyped := val.(type) {
	case string:
		return &valTyped, true
	case bool:
		if !valTyped {
			return nil, false
		}
		return nil, true
	case fmt.Stringer:
		str := valTyped.String()
		return &str, true
	}
	switch reflect.TypeOf(val).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, false
	case reflect.Map, reflect.Slice, reflect.Struct, reflect.Ptr:
		barr, err := json.Marshal(val)
		if err != nil {
			return nil, false
		}
		str := string(barr)
		return &str, true
	}
	str := fmt.Sprint(val)
	return &str, true
}

func styleToCss(style map[string]any) string {
	var parts []string
	for _, key := range sortedPropKeys(style) {
		val := style[key]
		if val == nil {
			continue
		}
		switch reflect.TypeOf(val).Kind() {
		case reflect.Func, reflect.Chan, reflect.Map, reflect.Slice, reflect.UnsafePointer:
			continue
		}
		valStr := fmt.Sprint(val)
		if _, isStr := val.(string); !isStr && !unitlessCss[key] && isNumeric(val) {
			valStr += "px"
		}
		parts = append(parts, keycase.ToKebabCase(key)+":"+valStr)
	}
	return strings.Join(parts, ";")
}

func isNumeric(val any) bool {
	switch reflect.TypeOf(val).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
