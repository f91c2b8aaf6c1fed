// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package wrap

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// PropBag is an insertion ordered prop map.  overwriting a key keeps its
// original position.  the zero value and nil *PropBag are empty bags.
type PropBag struct {
	m *linkedhashmap.Map
}

func MakePropBag() *PropBag {
	return &PropBag{m: linkedhashmap.New()}
}

func (pb *PropBag) Set(key string, val any) {
	if pb.m == nil {
		pb.m = linkedhashmap.New()
	}
	pb.m.Put(key, val)
}

func (pb *PropBag) Get(key string) (any, bool) {
	if pb == nil || pb.m == nil {
		return nil, false
	}
	return pb.m.Get(key)
}

func (pb *PropBag) Len() int {
	if pb == nil || pb.m == nil {
		return 0
	}
	return pb.m.Size()
}

func (pb *PropBag) Keys() []string {
	if pb == nil || pb.m == nil {
		return nil
	}
	rtn := make([]string, 0, pb.m.Size())
	for _, key := range pb.m.Keys() {
		rtn = append(rtn, key.(string))
	}
	return rtn
}

func (pb *PropBag) Each(fn func(key string, val any)) {
	if pb == nil || pb.m == nil {
		return
	}
	iter := pb.m.Iterator()
	for iter.Next() {
		fn(iter.Key().(string), iter.Value())
	}
}

// Merge copies every entry of other into pb, other's values win
func (pb *PropBag) Merge(other *PropBag) {
	other.Each(func(key string, val any) {
		pb.Set(key, val)
	})
}

func (pb *PropBag) Clone() *PropBag {
	rtn := MakePropBag()
	rtn.Merge(pb)
	return rtn
}

// Map returns a fresh map (nil for an empty bag)
func (pb *PropBag) Map() map[string]any {
	if pb.Len() == 0 {
		return nil
	}
	rtn := make(map[string]any, pb.Len())
	pb.Each(func(key string, val any) {
		rtn[key] = val
	})
	return rtn
}
