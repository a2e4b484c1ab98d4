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

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShadowing(t *testing.T) {
	s := New[int]()
	s.Push(map[string]int{"x": 1, "y": 2})
	s.Push(map[string]int{"x": 10})

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	v, ok = s.Get("y")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	h, ok := s.HeightOf("x")
	require.True(t, ok)
	assert.Equal(t, 1, h)

	v, ok = s.GetAt("x", 0)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.HeightOf("z")
	assert.False(t, ok)
}

func TestWritesTargetOneLayer(t *testing.T) {
	s := New[string]()
	s.Push(map[string]string{"f": "outer"})
	s.Push(map[string]string{"f": "inner"})

	require.True(t, s.SetAt("f", 0, "outer2"))
	require.True(t, s.Update("f", "inner2"))
	assert.False(t, s.Update("g", "missing"))
	assert.False(t, s.SetAt("f", 5, "out of range"))

	top := s.Pop()
	assert.Equal(t, map[string]string{"f": "inner2"}, top)
	bottom := s.Pop()
	assert.Equal(t, map[string]string{"f": "outer2"}, bottom)
	assert.Equal(t, 0, s.Height())
}

func TestPopReturnsCopy(t *testing.T) {
	s := New[int]()
	s.Push(map[string]int{"a": 1})
	layer := s.Pop()
	layer["a"] = 2
	s.Push(layer)
	v, _ := s.Get("a")
	assert.Equal(t, 2, v)

	layer["a"] = 3
	v, _ = s.Get("a")
	assert.Equal(t, 2, v, "pushed layer must not alias the caller's map")
}

func TestNilValues(t *testing.T) {
	type def struct{ name string }
	s := New[*def]()
	s.Push(map[string]*def{"main": {"main"}})
	require.True(t, s.SetAt("main", 0, nil))

	d, ok := s.GetAt("main", 0)
	require.True(t, ok, "a nil binding is still a binding")
	assert.Nil(t, d)

	layer := s.Pop()
	_, present := layer["main"]
	assert.True(t, present)
}

func TestKeysSorted(t *testing.T) {
	s := New[bool]()
	s.Push(map[string]bool{"c": true, "a": true, "b": false})
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys(0))
	assert.Nil(t, s.Keys(1))
	assert.Equal(t, "scope.Stack[3]", s.String())
}

func TestPopEmptyPanics(t *testing.T) {
	s := New[int]()
	assert.Panics(t, func() { s.Pop() })
}
