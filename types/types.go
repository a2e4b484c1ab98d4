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

// Package types provides the type representation for curried, single-argument functions and the
// compatibility (merge) operation over partially-known types.
package types

import (
	"sort"

	set "github.com/hashicorp/go-set/v2"
)

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

func (t Uninferred) TypeName() string { return "Uninferred" }
func (t *Const) TypeName() string     { return "Const" }
func (t *Func) TypeName() string      { return "Func" }
func (t *Cons) TypeName() string      { return "Cons" }

// No type information is known yet. Uninferred is the bottom element of the informativeness order.
type Uninferred struct{}

// Unknown is the canonical Uninferred value.
var Unknown Type = Uninferred{}

// Nominal base type: `Int64`, `Bool`
type Const struct {
	Name string
}

// Single-argument function type: `(-> Int64 Bool)`
type Func struct {
	Param  Type
	Return Type
}

// Pair type: `(cons Int64 Bool)`
type Cons struct {
	Car Type
	Cdr Type
}

// Base type names
const (
	NilName       = "Nil"
	BoolName      = "Bool"
	ByteSliceName = "ByteSlice"
	SymbolName    = "Symbol"
	Int64Name     = "Int64"
)

var (
	Nil       = &Const{NilName}
	Bool      = &Const{BoolName}
	ByteSlice = &Const{ByteSliceName}
	Symbol    = &Const{SymbolName}
	Int64     = &Const{Int64Name}
)

var numericNames = set.From([]string{
	"Int8", "UInt8",
	"Int16", "UInt16",
	"Int32", "UInt32", "Float32",
	"Int64", "UInt64", "Float64",
	"IntPtr", "UIntPtr",
})

// NumericNames returns the closed set of base types a numeric literal may take, sorted by name.
func NumericNames() []string {
	names := numericNames.Slice()
	sort.Strings(names)
	return names
}

// IsNumeric reports whether t is one of the base numeric types.
func IsNumeric(t Type) bool {
	c, ok := t.(*Const)
	return ok && numericNames.Contains(c.Name)
}

func NewConst(name string) *Const { return &Const{name} }

func NewFunc(param, ret Type) *Func { return &Func{Param: OrUnknown(param), Return: OrUnknown(ret)} }

func NewCons(car, cdr Type) *Cons { return &Cons{Car: OrUnknown(car), Cdr: OrUnknown(cdr)} }

// OrUnknown returns t, or Unknown if t is nil.
func OrUnknown(t Type) Type {
	if t == nil {
		return Unknown
	}
	return t
}

// IsPartiallyKnown reports whether anything at all is known about t.
func IsPartiallyKnown(t Type) bool {
	switch t.(type) {
	case nil, Uninferred, *Uninferred:
		return false
	}
	return true
}

// IsFullyKnown reports whether t contains no Uninferred components.
func IsFullyKnown(t Type) bool {
	switch t := t.(type) {
	case *Const:
		return true
	case *Func:
		return IsFullyKnown(t.Param) && IsFullyKnown(t.Return)
	case *Cons:
		return IsFullyKnown(t.Car) && IsFullyKnown(t.Cdr)
	}
	return false
}

// FuncSig returns the parameter and return types of t, if t is a function type.
func FuncSig(t Type) (param, ret Type, ok bool) {
	if f, isFunc := t.(*Func); isFunc {
		return OrUnknown(f.Param), OrUnknown(f.Return), true
	}
	return Unknown, Unknown, false
}

// ConsParts returns the car and cdr types of t, if t is a pair type.
func ConsParts(t Type) (car, cdr Type, ok bool) {
	if c, isCons := t.(*Cons); isCons {
		return OrUnknown(c.Car), OrUnknown(c.Cdr), true
	}
	return Unknown, Unknown, false
}

// Equal reports whether a and b are structurally identical. Nil and Uninferred are equal.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Const:
		b, ok := b.(*Const)
		return ok && a.Name == b.Name
	case *Func:
		b, ok := b.(*Func)
		return ok && Equal(a.Param, b.Param) && Equal(a.Return, b.Return)
	case *Cons:
		b, ok := b.(*Cons)
		return ok && Equal(a.Car, b.Car) && Equal(a.Cdr, b.Cdr)
	}
	return !IsPartiallyKnown(a) && !IsPartiallyKnown(b)
}
