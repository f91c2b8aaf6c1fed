// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wrap

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/wavetermdev/reactshim/pkg/keycase"
	"github.com/wavetermdev/reactshim/pkg/util/utilfn"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

// Params are named parameters.  any Params argument passed to Call or Extend is
// treated as props, everything else is a child.
type Params map[string]any

// a single named parameter, keeps call-site ordering
type Param struct {
	Key string
	Val any
}

func P(key string, val any) Param {
	return Param{Key: key, Val: val}
}

// ParamsFrom converts a struct (json tags) or a map into Params
func ParamsFrom(v any) (Params, error) {
	if v == nil {
		return nil, nil
	}
	var out map[string]any
	err := utilfn.DoMapStructure(&out, v)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %T to params: %w", v, err)
	}
	return Params(out), nil
}

func sortedKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// splitArgs separates named params from children.  keys are normalized, a
// collision after normalization keeps the last write (Params keys are applied
// in sorted order of their original spelling).  wrapped nodes are unwrapped so
// factories only ever see nodes and primitives.
func splitArgs(args []any, normalize keycase.Normalizer) (*PropBag, []any) {
	props := MakePropBag()
	var children []any
	for _, arg := range args {
		switch argTyped := arg.(type) {
		case Params:
			for _, key := range sortedKeys(argTyped) {
				props.Set(normalize(key), nodeValue(argTyped[key]))
			}
		case Param:
			props.Set(normalize(argTyped.Key), nodeValue(argTyped.Val))
		case *Element:
			if argTyped == nil {
				continue
			}
			children = append(children, argTyped.Node())
		default:
			children = append(children, arg)
		}
	}
	return props, children
}

// nodeValue unwraps node handles used as prop values (start_icon=Icon()) so the
// factory gets the node itself.  slices of handles are unwrapped element-wise.
func nodeValue(val any) any {
	switch valTyped := val.(type) {
	case *Element:
		if valTyped == nil {
			return nil
		}
		return valTyped.Node()
	case vdom.Noder:
		if reflect.ValueOf(valTyped).Kind() == reflect.Ptr && reflect.ValueOf(valTyped).IsNil() {
			return nil
		}
		return valTyped.Node()
	case []*Element:
		rtn := make([]*vdom.Elem, 0, len(valTyped))
		for _, elem := range valTyped {
			if elem != nil {
				rtn = append(rtn, elem.Node())
			}
		}
		return rtn
	case []any:
		rtn := make([]any, len(valTyped))
		for idx, item := range valTyped {
			rtn[idx] = nodeValue(item)
		}
		return rtn
	}
	return val
}

var _ vdom.Noder = (*Element)(nil)
