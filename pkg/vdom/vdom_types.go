// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"context"
	"errors"
)

const TextTag = "#text"
const FragmentTag = "#fragment"
const BindTag = "bind"

const ChildrenPropKey = "children"
const KeyPropKey = "key"

var (
	ErrInvalidRef       = errors.New("invalid component reference")
	ErrUnknownComponent = errors.New("unknown component")
	ErrInvalidProp      = errors.New("invalid prop")
)

// vdom element.  logically immutable once returned from a Factory
type Elem struct {
	Id       string         `json:"id,omitempty"` // unique per constructed node, empty for #text
	Tag      string         `json:"tag"`
	Props    map[string]any `json:"props,omitempty"`
	Children []Elem         `json:"children,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// function component.  props[ChildrenPropKey] holds the []Elem children
type CFunc = func(ctx context.Context, props map[string]any) any

// Ref identifies a renderable component type: a built-in Tag or a *Comp handle
type Ref interface {
	RefName() string
}

type Tag string

func (t Tag) RefName() string {
	return string(t)
}

type Comp struct {
	Name string
	Fn   CFunc
}

func NewComp(name string, fn CFunc) *Comp {
	return &Comp{Name: name, Fn: fn}
}

func (c *Comp) RefName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// Factory creates a node from a reference, a property bag and children
type Factory func(ref Ref, props map[string]any, children ...any) (*Elem, error)

// Noder is implemented by values that wrap a node (they can be passed as children)
type Noder interface {
	Node() *Elem
}
