// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wrap

import (
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

// Element pairs a constructed node with the state used to build it.
// an Element is never modified after construction.
type Element struct {
	node     *vdom.Elem
	ctor     *Constructor
	props    *PropBag
	children []any
}

func (e *Element) Node() *vdom.Elem {
	if e == nil {
		return nil
	}
	return e.node
}

func (e *Element) Ref() vdom.Ref {
	return e.ctor.ref
}

func (e *Element) Constructor() *Constructor {
	return e.ctor
}

// Props returns a copy of the accumulated (normalized) props
func (e *Element) Props() map[string]any {
	return e.props.Map()
}

// PropKeys returns the prop keys in first-set order
func (e *Element) PropKeys() []string {
	return e.props.Keys()
}

func (e *Element) Prop(key string) (any, bool) {
	return e.props.Get(key)
}

// Children returns a copy of the accumulated children list
func (e *Element) Children() []any {
	if len(e.children) == 0 {
		return nil
	}
	rtn := make([]any, len(e.children))
	copy(rtn, e.children)
	return rtn
}

// Extend builds a new element from this element's props and children plus the
// new args: new props override same-named props, new children are appended.
// the receiver is left unchanged, so extending the same element twice gives
// two independent elements.
func (e *Element) Extend(args ...any) (*Element, error) {
	addProps, addChildren := splitArgs(args, e.ctor.normalize)
	props := e.props.Clone()
	props.Merge(addProps)
	children := make([]any, 0, len(e.children)+len(addChildren))
	children = append(children, e.children...)
	children = append(children, addChildren...)
	return e.ctor.build(props, children)
}

// With is Extend for expression style tree building (panics like Constructor.New)
func (e *Element) With(args ...any) *Element {
	rtn, err := e.Extend(args...)
	if err != nil {
		panic(&constructPanic{err: err})
	}
	return rtn
}
