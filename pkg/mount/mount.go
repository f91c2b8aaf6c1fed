// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package mount hands a finished tree to a render target.  function components
// are expanded here (not at construction time), so a tree can be built and
// extended freely before it is mounted.
package mount

import (
	"context"
	"errors"
	"fmt"

	"github.com/wavetermdev/reactshim/pkg/panichandler"
	"github.com/wavetermdev/reactshim/pkg/vdom"
)

const DefaultMaxDepth = 256

var ErrMaxDepth = errors.New("max component depth exceeded")

type Target interface {
	Render(root *vdom.Elem) error
}

type Opts struct {
	MaxDepth int
}

// Mount expands root against the registry and renders it to target.
func Mount(ctx context.Context, reg *vdom.Registry, root *vdom.Elem, target Target) error {
	return MountWithOpts(ctx, reg, root, target, Opts{})
}

func MountWithOpts(ctx context.Context, reg *vdom.Registry, root *vdom.Elem, target Target, opts Opts) error {
	if root == nil {
		return errors.New("cannot mount nil root")
	}
	resolved, err := Expand(ctx, reg, root, opts)
	if err != nil {
		return err
	}
	return target.Render(resolved)
}

// Expand returns a copy of root where every component elem is replaced by its
// rendered output.  only base tags (#text, #fragment, html tags) remain.
func Expand(ctx context.Context, reg *vdom.Registry, root *vdom.Elem, opts Opts) (*vdom.Elem, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	ex := &expander{reg: reg, maxDepth: maxDepth}
	elems, err := ex.expand(ctx, *root, 0)
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return &elems[0], nil
	}
	return &vdom.Elem{Tag: vdom.FragmentTag, Children: elems}, nil
}

type expander struct {
	reg      *vdom.Registry
	maxDepth int
}

func (ex *expander) expand(ctx context.Context, elem vdom.Elem, depth int) ([]vdom.Elem, error) {
	if depth > ex.maxDepth {
		return nil, fmt.Errorf("%w (%d) at <%s>", ErrMaxDepth, ex.maxDepth, elem.Tag)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if elem.IsText() {
		return []vdom.Elem{elem}, nil
	}
	if !vdom.IsBaseTag(elem.Tag) {
		rendered, err := ex.renderComp(ctx, elem)
		if err != nil {
			return nil, err
		}
		var rtn []vdom.Elem
		for _, child := range vdom.PartToElems(rendered) {
			expanded, err := ex.expand(ctx, child, depth+1)
			if err != nil {
				return nil, err
			}
			rtn = append(rtn, expanded...)
		}
		return rtn, nil
	}
	rtn := elem
	rtn.Children = nil
	for _, child := range elem.Children {
		expanded, err := ex.expand(ctx, child, depth+1)
		if err != nil {
			return nil, err
		}
		rtn.Children = append(rtn.Children, expanded...)
	}
	return []vdom.Elem{rtn}, nil
}

func (ex *expander) renderComp(ctx context.Context, elem vdom.Elem) (rtn any, rtnErr error) {
	comp := ex.reg.Lookup(elem.Tag)
	if comp == nil {
		return nil, fmt.Errorf("%w: %q", vdom.ErrUnknownComponent, elem.Tag)
	}
	props := make(map[string]any, len(elem.Props)+1)
	for k, v := range elem.Props {
		props[k] = v
	}
	props[vdom.ChildrenPropKey] = elem.Children
	defer func() {
		panicErr := panichandler.PanicHandler("component "+elem.Tag, recover())
		if panicErr != nil {
			rtnErr = panicErr
		}
	}()
	return comp.Fn(ctx, props), nil
}
