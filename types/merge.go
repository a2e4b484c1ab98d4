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

// Merge returns the most informative type consistent with both expected and found. The result is
// false if the types conflict.
//
// Uninferred merges with anything and adopts the other side. Constants merge only with a constant
// of the same name. Functions and pairs merge component-wise with the same shape.
func Merge(expected, found Type) (Type, bool) {
	if !IsPartiallyKnown(expected) {
		return OrUnknown(found), true
	}
	if !IsPartiallyKnown(found) {
		return expected, true
	}

	switch e := expected.(type) {
	case *Const:
		if f, ok := found.(*Const); ok && f.Name == e.Name {
			return e, true
		}
		return nil, false

	case *Func:
		f, ok := found.(*Func)
		if !ok {
			return nil, false
		}
		param, ok := Merge(e.Param, f.Param)
		if !ok {
			return nil, false
		}
		ret, ok := Merge(e.Return, f.Return)
		if !ok {
			return nil, false
		}
		if Equal(param, e.Param) && Equal(ret, e.Return) {
			return e, true
		}
		return &Func{Param: param, Return: ret}, true

	case *Cons:
		f, ok := found.(*Cons)
		if !ok {
			return nil, false
		}
		car, ok := Merge(e.Car, f.Car)
		if !ok {
			return nil, false
		}
		cdr, ok := Merge(e.Cdr, f.Cdr)
		if !ok {
			return nil, false
		}
		if Equal(car, e.Car) && Equal(cdr, e.Cdr) {
			return e, true
		}
		return &Cons{Car: car, Cdr: cdr}, true
	}

	panic("unexpected type " + expected.TypeName())
}

// Compatible reports whether a and b can be merged.
func Compatible(a, b Type) bool {
	_, ok := Merge(a, b)
	return ok
}
