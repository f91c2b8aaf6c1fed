// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// ReactNode types = nil | string | Elem

func (e *Elem) Key() string {
	keyVal, ok := e.Props[KeyPropKey]
	if !ok {
		return ""
	}
	switch keyTyped := keyVal.(type) {
	case string:
		return keyTyped
	default:
		sval, ok := numToString(keyVal)
		if ok {
			return sval
		}
	}
	return ""
}

func (e *Elem) IsText() bool {
	return e != nil && e.Tag == TextTag
}

// Clone copies the props map and the children tree (prop values are shared)
func (e *Elem) Clone() *Elem {
	if e == nil {
		return nil
	}
	rtn := &Elem{Id: e.Id, Tag: e.Tag, Text: e.Text}
	if e.Props != nil {
		rtn.Props = make(map[string]any, len(e.Props))
		for k, v := range e.Props {
			rtn.Props[k] = v
		}
	}
	if len(e.Children) > 0 {
		rtn.Children = make([]Elem, len(e.Children))
		for idx := range e.Children {
			rtn.Children[idx] = *e.Children[idx].Clone()
		}
	}
	return rtn
}

func TextElem(text string) Elem {
	return Elem{Tag: TextTag, Text: text}
}

func Classes(classes ...any) string {
	var parts []string
	for _, class := range classes {
		switch c := class.(type) {
		case nil:
			continue
		case string:
			if c != "" {
				parts = append(parts, c)
			}
		}
		// Ignore any other types
	}
	return strings.Join(parts, " ")
}

func numToString(value any) (string, bool) {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func isNumber(value any) bool {
	_, ok := numToString(value)
	return ok
}

// PartToElems converts one child value into zero or more elems.
// primitives become #text elems, slices are flattened, Noders are unwrapped.
func PartToElems(part any) []Elem {
	if part == nil {
		return nil
	}
	switch part := part.(type) {
	case string:
		return []Elem{TextElem(part)}
	case bool:
		if part {
			return []Elem{TextElem("true")}
		}
		return nil
	case *Elem:
		if part == nil {
			return nil
		}
		return []Elem{*part}
	case Elem:
		return []Elem{part}
	case []Elem:
		return part
	case []*Elem:
		var rtn []Elem
		for _, e := range part {
			if e == nil {
				continue
			}
			rtn = append(rtn, *e)
		}
		return rtn
	case Noder:
		if reflect.ValueOf(part).Kind() == reflect.Ptr && reflect.ValueOf(part).IsNil() {
			return nil
		}
		node := part.Node()
		if node == nil {
			return nil
		}
		return []Elem{*node}
	}
	sval, ok := numToString(part)
	if ok {
		return []Elem{TextElem(sval)}
	}
	partVal := reflect.ValueOf(part)
	if partVal.Kind() == reflect.Slice {
		var rtn []Elem
		for i := 0; i < partVal.Len(); i++ {
			subPart := partVal.Index(i).Interface()
			rtn = append(rtn, PartToElems(subPart)...)
		}
		return rtn
	}
	stringer, ok := part.(fmt.Stringer)
	if ok {
		return []Elem{TextElem(stringer.String())}
	}
	jsonStr, jsonErr := json.Marshal(part)
	if jsonErr == nil {
		return []Elem{TextElem(string(jsonStr))}
	}
	typeText := "invalid:" + reflect.TypeOf(part).String()
	return []Elem{TextElem(typeText)}
}

func IsBaseTag(tag string) bool {
	if len(tag) == 0 {
		return false
	}
	return tag[0] == '#' || unicode.IsLower(rune(tag[0]))
}
