// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package wrap turns a component reference into an element constructor with a
// fluent call style: positional children mixed with named params, where param
// keys are normalized (max_width -> maxWidth) before reaching the factory.
//
// Every constructed Element remembers the props and children it was built
// with, so it can be extended later with more children or overriding props.
// Extending never touches the existing node, it builds a new one:
//
//	container := wrap.Wrap(vdom.Tag("div"), registry.CreateElement)
//	page, _ := container.Call(wrap.P("max_width", "sm"))
//	page, _ = page.Extend("hello")
package wrap

import (
	"github.com/wavetermdev/reactshim/pkg/keycase"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

type Constructor struct {
	ref       vdom.Ref
	factory   vdom.Factory
	normalize keycase.Normalizer
}

// ElemFn is the function form of a Constructor (see Constructor.Fn)
type ElemFn func(args ...any) *Element

type Option func(*Constructor)

func WithNormalizer(normalize keycase.Normalizer) Option {
	return func(c *Constructor) {
		if normalize != nil {
			c.normalize = normalize
		}
	}
}

func Wrap(ref vdom.Ref, factory vdom.Factory, opts ...Option) *Constructor {
	rtn := &Constructor{
		ref:       ref,
		factory:   factory,
		normalize: keycase.ToCamelCase,
	}
	for _, opt := range opts {
		opt(rtn)
	}
	return rtn
}

// WrapFunc wraps a go function component.  the component still has to be known
// to the factory (e.g. registered in the vdom.Registry) to be constructed.
func WrapFunc(name string, fn vdom.CFunc, factory vdom.Factory, opts ...Option) *Constructor {
	return Wrap(vdom.NewComp(name, fn), factory, opts...)
}

func (c *Constructor) Ref() vdom.Ref {
	return c.ref
}

// Call builds a new element.  factory errors are returned unchanged.
func (c *Constructor) Call(args ...any) (*Element, error) {
	props, children := splitArgs(args, c.normalize)
	return c.build(props, children)
}

// New is Call for expression style tree building.  a factory error panics and
// can be recovered (unchanged) with Catch.
func (c *Constructor) New(args ...any) *Element {
	elem, err := c.Call(args...)
	if err != nil {
		panic(&constructPanic{err: err})
	}
	return elem
}

func (c *Constructor) Fn() ElemFn {
	return c.New
}

func (c *Constructor) build(props *PropBag, children []any) (*Element, error) {
	node, err := c.factory(c.ref, props.Map(), children...)
	if err != nil {
		return nil, err
	}
	return &Element{
		node:     node,
		ctor:     c,
		props:    props,
		children: children,
	}, nil
}
