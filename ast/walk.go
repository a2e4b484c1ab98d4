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

package ast

// WalkExpr calls f for e and every sub-expression of e, in pre-order. Bodies of block-scoped static
// definitions are visited in sorted name order, before the block's expressions.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Nil, *NumLit, *StrLit, *Bool, *Symbol, *Binding:
		f(e)

	case *Call:
		f(e)
		WalkExpr(e.Func, f)
		WalkExpr(e.Arg, f)

	case *Block:
		f(e)
		for _, name := range sortedKeys(e.Defs) {
			WalkExpr(e.Defs[name].Body, f)
		}
		for _, sub := range e.Exprs {
			WalkExpr(sub, f)
		}

	case *If:
		f(e)
		WalkExpr(e.Predicate, f)
		WalkExpr(e.Consequent, f)
		WalkExpr(e.Alternative, f)

	case *Lambda:
		f(e)
		WalkExpr(e.Body, f)

	case *VarDef:
		f(e)
		WalkExpr(e.Body, f)

	case *Assign:
		f(e)
		WalkExpr(e.Lhs, f)
		WalkExpr(e.Rhs, f)

	case *TypeAscript:
		f(e)
		WalkExpr(e.Expr, f)

	case *Transmute:
		f(e)
		WalkExpr(e.Expr, f)

	case *Cons:
		f(e)
		WalkExpr(e.Car, f)
		WalkExpr(e.Cdr, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// WalkModule calls WalkExpr for the body of every static definition in m, in sorted name order.
func WalkModule(m *Module, f func(def *StaticDef, e Expr)) {
	for _, name := range m.DefNames() {
		def := m.Defs[name]
		WalkExpr(def.Body, func(e Expr) { f(def, e) })
	}
}
