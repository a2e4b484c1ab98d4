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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concreteSamples() []Type {
	return []Type{
		Int64,
		Bool,
		Nil,
		&Func{Param: Nil, Return: Int64},
		&Cons{Car: Int64, Cdr: &Func{Param: Bool, Return: ByteSlice}},
	}
}

func TestMergeUninferredIsIdentity(t *testing.T) {
	for _, ty := range concreteSamples() {
		merged, ok := Merge(Unknown, ty)
		require.True(t, ok)
		assert.True(t, Equal(merged, ty), TypeString(ty))

		merged, ok = Merge(ty, Unknown)
		require.True(t, ok)
		assert.True(t, Equal(merged, ty), TypeString(ty))

		merged, ok = Merge(nil, ty)
		require.True(t, ok)
		assert.True(t, Equal(merged, ty), TypeString(ty))
	}
}

func TestMergeReflexive(t *testing.T) {
	for _, ty := range concreteSamples() {
		merged, ok := Merge(ty, ty)
		require.True(t, ok)
		assert.True(t, Equal(merged, ty), TypeString(ty))
	}
}

func TestMergeConflicts(t *testing.T) {
	_, ok := Merge(Int64, Bool)
	assert.False(t, ok)

	_, ok = Merge(&Func{Param: Nil, Return: Int64}, Int64)
	assert.False(t, ok)

	_, ok = Merge(&Cons{Car: Int64, Cdr: Int64}, &Func{Param: Int64, Return: Int64})
	assert.False(t, ok)

	_, ok = Merge(&Func{Param: Int64, Return: Unknown}, &Func{Param: Bool, Return: Unknown})
	assert.False(t, ok, "parameter conflict must propagate")

	_, ok = Merge(&Cons{Car: Unknown, Cdr: Int64}, &Cons{Car: Bool, Cdr: Bool})
	assert.False(t, ok, "cdr conflict must propagate")
}

func TestMergeCombinesPartialTypes(t *testing.T) {
	a := &Func{Param: Int64, Return: Unknown}
	b := &Func{Param: Unknown, Return: Bool}
	merged, ok := Merge(a, b)
	require.True(t, ok)
	assert.Equal(t, "(-> Int64 Bool)", TypeString(merged))
	assert.True(t, IsFullyKnown(merged))
	assert.False(t, IsFullyKnown(a))

	c := &Cons{Car: Unknown, Cdr: &Cons{Car: Bool, Cdr: Unknown}}
	d := &Cons{Car: Int64, Cdr: Unknown}
	merged, ok = Merge(c, d)
	require.True(t, ok)
	assert.Equal(t, "(cons Int64 (cons Bool _))", TypeString(merged))
}

func TestMergeKeepsExpectedWhenNothingNew(t *testing.T) {
	f := &Func{Param: Int64, Return: Int64}
	merged, ok := Merge(f, &Func{Param: Unknown, Return: Int64})
	require.True(t, ok)
	assert.Same(t, f, merged)
}

func TestPartiallyKnown(t *testing.T) {
	assert.False(t, IsPartiallyKnown(nil))
	assert.False(t, IsPartiallyKnown(Unknown))
	assert.True(t, IsPartiallyKnown(&Func{Param: Unknown, Return: Unknown}))
	assert.True(t, IsPartiallyKnown(Nil))
}

func TestNumeric(t *testing.T) {
	assert.True(t, IsNumeric(Int64))
	assert.True(t, IsNumeric(NewConst("Float32")))
	assert.True(t, IsNumeric(NewConst("UIntPtr")))
	assert.False(t, IsNumeric(Bool))
	assert.False(t, IsNumeric(Unknown))
	assert.Len(t, NumericNames(), 12)
	assert.Equal(t, "Float32", NumericNames()[0])
}

func TestParseRoundTrip(t *testing.T) {
	for _, src := range []string{
		"_",
		"Int64",
		"(-> Nil Int64)",
		"(-> Int64 (-> Int64 Int64))",
		"(cons (cons Bool _) (-> _ ByteSlice))",
	} {
		ty, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, TypeString(ty))
	}

	ty, err := Parse("  ( ->   Int64\n Bool ) ")
	require.NoError(t, err)
	assert.Equal(t, "(-> Int64 Bool)", TypeString(ty))
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"", "(", "(-> Int64)", "(list Int64)", "Int64 Bool", ")"} {
		_, err := Parse(src)
		assert.Error(t, err, src)
	}
}
