// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package mount

import (
	"encoding/json"
	"io"
	"math"
	"reflect"

	"github.com/wavetermdev/reactshim/pkg/util/utilfn"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

// JSONTarget writes the tree as json.  func/chan props are dropped.
type JSONTarget struct {
	W      io.Writer
	Indent string
}

func (t JSONTarget) Render(root *vdom.Elem) error {
	clean := SanitizeForJSON(root)
	if t.Indent == "" {
		return json.NewEncoder(t.W).Encode(clean)
	}
	str, err := utilfn.MarshalIndentNoHTMLString(clean, "", t.Indent)
	if err != nil {
		return err
	}
	_, err = io.WriteString(t.W, str+"\n")
	return err
}

// SanitizeForJSON copies the tree keeping only prop values that can be encoded.
// maps and slices are cleaned recursively, so a func nested in a style map is
// dropped instead of failing the whole render.
func SanitizeForJSON(elem *vdom.Elem) *vdom.Elem {
	if elem == nil {
		return nil
	}
	rtn := &vdom.Elem{Id: elem.Id, Tag: elem.Tag, Text: elem.Text}
	for key, val := range elem.Props {
		cleanVal, ok := sanitizeJSONValue(val)
		if !ok {
			continue
		}
		if rtn.Props == nil {
			rtn.Props = make(map[string]any)
		}
		rtn.Props[key] = cleanVal
	}
	for idx := range elem.Children {
		rtn.Children = append(rtn.Children, *SanitizeForJSON(&elem.Children[idx]))
	}
	return rtn
}

func sanitizeJSONValue(val any) (any, bool) {
	switch valTyped := val.(type) {
	case nil, string, bool, json.Marshaler:
		return val, true
	case *vdom.Elem:
		return SanitizeForJSON(valTyped), true
	case map[string]any:
		rtn := make(map[string]any, len(valTyped))
		for k, v := range valTyped {
			if cleanVal, ok := sanitizeJSONValue(v); ok {
				rtn[k] = cleanVal
			}
		}
		return rtn, true
	case []any:
		rtn := make([]any, 0, len(valTyped))
		for _, v := range valTyped {
			if cleanVal, ok := sanitizeJSONValue(v); ok {
				rtn = append(rtn, cleanVal)
			}
		}
		return rtn, true
	}
	switch reflect.TypeOf(val).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, false
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Ptr, reflect.Interface:
		// other composite values are kept only if they encode as-is
		if _, err := json.Marshal(val); err != nil {
			return nil, false
		}
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(val).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
	}
	return val, true
}
