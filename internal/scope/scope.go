// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package scope provides a stack of identifier mappings with shadowing. Lookups without an explicit
// height always resolve to the innermost (most recently pushed) layer containing the identifier.
//
// Each layer is a persistent sorted map, so callers may read a layer while another is written.
package scope

import (
	"strconv"

	"github.com/benbjohnson/immutable"
)

var emptyLayer = immutable.NewSortedMap(nil)

// Stack is a stack of layers mapping identifiers to values of type V. Heights are counted from the
// bottom layer (0) to the top layer (Height()-1).
type Stack[V any] struct {
	layers []*immutable.SortedMap
}

// Create an empty stack.
func New[V any]() *Stack[V] { return &Stack[V]{} }

// Height returns the number of layers in the stack.
func (s *Stack[V]) Height() int { return len(s.layers) }

// Push a new layer containing the entries of layer. The map is copied.
func (s *Stack[V]) Push(layer map[string]V) {
	b := immutable.NewSortedMapBuilder(emptyLayer)
	for k, v := range layer {
		b.Set(k, v)
	}
	s.layers = append(s.layers, b.Map())
}

// Pop removes the top layer and returns its entries. Popping an empty stack is an internal error
// and panics.
func (s *Stack[V]) Pop() map[string]V {
	n := len(s.layers)
	if n == 0 {
		panic("ICE: scope.Stack.Pop: stack is empty")
	}
	top := s.layers[n-1]
	s.layers[n-1] = nil
	s.layers = s.layers[:n-1]

	out := make(map[string]V, top.Len())
	iter := top.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		out[k.(string)] = value[V](v)
	}
	return out
}

// HeightOf returns the height of the innermost layer containing key.
func (s *Stack[V]) HeightOf(key string) (int, bool) {
	for h := len(s.layers) - 1; h >= 0; h-- {
		if _, ok := s.layers[h].Get(key); ok {
			return h, true
		}
	}
	return -1, false
}

// Get returns the value bound to key in the innermost layer containing it.
func (s *Stack[V]) Get(key string) (V, bool) {
	h, ok := s.HeightOf(key)
	if !ok {
		var zero V
		return zero, false
	}
	return s.GetAt(key, h)
}

// GetAt returns the value bound to key in the layer at the given height.
func (s *Stack[V]) GetAt(key string, height int) (V, bool) {
	if height < 0 || height >= len(s.layers) {
		var zero V
		return zero, false
	}
	v, ok := s.layers[height].Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return value[V](v), true
}

// SetAt binds key to v in the layer at the given height. The result is false if the height is
// out of range.
func (s *Stack[V]) SetAt(key string, height int, v V) bool {
	if height < 0 || height >= len(s.layers) {
		return false
	}
	s.layers[height] = s.layers[height].Set(key, v)
	return true
}

// Update rebinds key in the innermost layer containing it. The result is false if no layer
// contains key.
func (s *Stack[V]) Update(key string, v V) bool {
	h, ok := s.HeightOf(key)
	if !ok {
		return false
	}
	return s.SetAt(key, h, v)
}

// Keys returns the identifiers bound in the layer at the given height, in sorted order.
func (s *Stack[V]) Keys(height int) []string {
	if height < 0 || height >= len(s.layers) {
		return nil
	}
	layer := s.layers[height]
	keys := make([]string, 0, layer.Len())
	iter := layer.Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		keys = append(keys, k.(string))
	}
	return keys
}

// String describes the stack's shape, for debugging.
func (s *Stack[V]) String() string {
	out := "scope.Stack["
	for h, layer := range s.layers {
		if h > 0 {
			out += " "
		}
		out += strconv.Itoa(layer.Len())
	}
	return out + "]"
}

func value[V any](v interface{}) V {
	if v == nil {
		var zero V
		return zero
	}
	return v.(V)
}
