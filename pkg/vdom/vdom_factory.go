// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry is the component library known to the runtime.  its CreateElement
// method is the default Factory.
type Registry struct {
	lock         *sync.Mutex
	comps        map[string]*Comp
	autoRegister bool
}

func MakeRegistry() *Registry {
	return &Registry{
		lock:  &sync.Mutex{},
		comps: make(map[string]*Comp),
	}
}

// when set, unregistered *Comp refs are registered on first use instead of failing
func (r *Registry) SetAutoRegister(auto bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.autoRegister = auto
}

func validateComp(comp *Comp) error {
	if comp == nil {
		return fmt.Errorf("%w: nil component", ErrInvalidRef)
	}
	if comp.Name == "" {
		return fmt.Errorf("%w: component has no name", ErrInvalidRef)
	}
	if IsBaseTag(comp.Name) {
		return fmt.Errorf("%w: component name %q must start with an uppercase letter", ErrInvalidRef, comp.Name)
	}
	if comp.Fn == nil {
		return fmt.Errorf("%w: component %q has no render func", ErrInvalidRef, comp.Name)
	}
	return nil
}

func (r *Registry) Register(comps ...*Comp) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, comp := range comps {
		err := r.register_nolock(comp)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) register_nolock(comp *Comp) error {
	if err := validateComp(comp); err != nil {
		return err
	}
	existing := r.comps[comp.Name]
	if existing != nil && existing != comp {
		return fmt.Errorf("%w: component %q already registered", ErrInvalidRef, comp.Name)
	}
	r.comps[comp.Name] = comp
	return nil
}

func (r *Registry) Lookup(name string) *Comp {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.comps[name]
}

func (r *Registry) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	rtn := make([]string, 0, len(r.comps))
	for name := range r.comps {
		rtn = append(rtn, name)
	}
	return rtn
}

func (r *Registry) resolveRef(ref Ref) (string, error) {
	switch refTyped := ref.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil reference", ErrInvalidRef)
	case Tag:
		name := string(refTyped)
		if name == "" {
			return "", fmt.Errorf("%w: empty tag", ErrInvalidRef)
		}
		if IsBaseTag(name) {
			return name, nil
		}
		if r.Lookup(name) == nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}
		return name, nil
	case *Comp:
		if err := validateComp(refTyped); err != nil {
			return "", err
		}
		r.lock.Lock()
		defer r.lock.Unlock()
		existing := r.comps[refTyped.Name]
		if existing == refTyped {
			return refTyped.Name, nil
		}
		if existing == nil && r.autoRegister {
			r.comps[refTyped.Name] = refTyped
			return refTyped.Name, nil
		}
		return "", fmt.Errorf("%w: %q is not registered", ErrUnknownComponent, refTyped.Name)
	default:
		return "", fmt.Errorf("%w: unsupported reference type %T", ErrInvalidRef, ref)
	}
}

func validateProps(props map[string]any) error {
	for key, val := range props {
		if key == "" {
			return fmt.Errorf("%w: empty prop name", ErrInvalidProp)
		}
		if key == ChildrenPropKey {
			return fmt.Errorf("%w: %q must be passed as positional children", ErrInvalidProp, key)
		}
		if key == KeyPropKey {
			_, isStr := val.(string)
			if !isStr && !isNumber(val) {
				return fmt.Errorf("%w: %q must be a string or number, got %T", ErrInvalidProp, key, val)
			}
		}
	}
	return nil
}

// CreateElement implements Factory.  props are copied, the caller's map is not retained.
func (r *Registry) CreateElement(ref Ref, props map[string]any, children ...any) (*Elem, error) {
	tag, err := r.resolveRef(ref)
	if err != nil {
		return nil, err
	}
	if err := validateProps(props); err != nil {
		return nil, err
	}
	rtn := &Elem{Id: uuid.New().String(), Tag: tag}
	if len(props) > 0 {
		rtn.Props = make(map[string]any, len(props))
		for k, v := range props {
			rtn.Props[k] = v
		}
	}
	for _, part := range children {
		rtn.Children = append(rtn.Children, PartToElems(part)...)
	}
	return rtn, nil
}

// E is the unchecked shorthand used by component render funcs.  map parts are
// merged into props, all other parts become children.
func E(tag string, parts ...any) *Elem {
	rtn := &Elem{Id: uuid.New().String(), Tag: tag}
	for _, part := range parts {
		if part == nil {
			continue
		}
		props, ok := part.(map[string]any)
		if ok {
			mergeProps(&rtn.Props, props)
			continue
		}
		rtn.Children = append(rtn.Children, PartToElems(part)...)
	}
	return rtn
}

func P(propName string, propVal any) map[string]any {
	return map[string]any{propName: propVal}
}

func mergeProps(props *map[string]any, newProps map[string]any) {
	if *props == nil {
		*props = make(map[string]any)
	}
	for k, v := range newProps {
		if v == nil {
			delete(*props, k)
			continue
		}
		(*props)[k] = v
	}
}
