// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wrap

import (
	"fmt"

	"github.com/wavetermdev/reactshim/pkg/vdom"
)

// FromTemplate builds an element from parsed markup.  the template root keeps
// its ref, props and children as extension state, so the result can be
// extended like any constructed element.  nested template nodes are built
// once, up front.
func FromTemplate(tmpl *vdom.TemplateNode, factory vdom.Factory, opts ...Option) (*Element, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("%w: template has no root node", vdom.ErrTemplate)
	}
	children, err := tmpl.BuildChildren(factory)
	if err != nil {
		return nil, err
	}
	for idx, child := range children {
		children[idx] = nodeValue(child)
	}
	props := MakePropBag()
	for _, key := range sortedKeys(Params(tmpl.Props)) {
		props.Set(key, nodeValue(tmpl.Props[key]))
	}
	return Wrap(tmpl.Ref, factory, opts...).build(props, children)
}

// MustFromTemplate is FromTemplate for expression style tree building (see Catch)
func MustFromTemplate(tmpl *vdom.TemplateNode, factory vdom.Factory, opts ...Option) *Element {
	elem, err := FromTemplate(tmpl, factory, opts...)
	if err != nil {
		panic(&constructPanic{err: err})
	}
	return elem
}
