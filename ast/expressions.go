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

import (
	"github.com/wdamron/infer/types"
)

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Position of the expression in source.
	Pos() Pos
	// Type returns the (possibly partially) inferred type of the expression. Uninferred is returned
	// if nothing is known.
	Type() types.Type
	// Assign a type to the expression. Type assignments should occur indirectly, during inference.
	SetType(t types.Type)
}

var (
	_ Expr = (*Nil)(nil)
	_ Expr = (*NumLit)(nil)
	_ Expr = (*StrLit)(nil)
	_ Expr = (*Bool)(nil)
	_ Expr = (*Symbol)(nil)
	_ Expr = (*Binding)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*VarDef)(nil)
	_ Expr = (*Assign)(nil)
	_ Expr = (*TypeAscript)(nil)
	_ Expr = (*Transmute)(nil)
	_ Expr = (*Cons)(nil)
)

// Node holds the source position and the mutable type slot shared by all expressions.
type Node struct {
	At       Pos
	inferred types.Type
}

// Get the position of the expression.
func (n *Node) Pos() Pos { return n.At }

// Get the inferred (or assigned) type of the expression.
func (n *Node) Type() types.Type { return types.OrUnknown(n.inferred) }

// Assign a type to the expression. Type assignments should occur indirectly, during inference.
func (n *Node) SetType(t types.Type) { n.inferred = t }

// Unit value: `nil`
type Nil struct {
	Node
}

// "Nil"
func (e *Nil) ExprName() string { return "Nil" }

// Numeric literal: `42`, `1.5`
type NumLit struct {
	Node
	Lit string
}

// "NumLit"
func (e *NumLit) ExprName() string { return "NumLit" }

// String literal: `"abc"`
type StrLit struct {
	Node
	Value string
}

// "StrLit"
func (e *StrLit) ExprName() string { return "StrLit" }

// Boolean literal: `true`
type Bool struct {
	Node
	Value bool
}

// "Bool"
func (e *Bool) ExprName() string { return "Bool" }

// Quoted identifier: `'x`
type Symbol struct {
	Node
	Name string
}

// "Symbol"
func (e *Symbol) ExprName() string { return "Symbol" }

// Reference to an extern, a static definition, or a local variable: `x`
type Binding struct {
	Node
	Name string
}

// "Binding"
func (e *Binding) ExprName() string { return "Binding" }

// Application of a curried function to a single argument: `(f x)`
//
// A nil Arg is a nullary call; inference supplies an implicit Nil argument.
type Call struct {
	Node
	Func Expr
	Arg  Expr
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Sequence of expressions with block-scoped static definitions:
//
//  (block
//    (def f (lambda (x) x))
//    (f 1))
type Block struct {
	Node
	Defs  map[string]*StaticDef
	Exprs []Expr
}

// "Block"
func (e *Block) ExprName() string { return "Block" }

// Conditional: `(if p c a)`
type If struct {
	Node
	Predicate   Expr
	Consequent  Expr
	Alternative Expr
}

// "If"
func (e *If) ExprName() string { return "If" }

// Function with zero or one parameter: `(lambda (x) body)`
//
// A nil Param is a nullary function, whose parameter type is Nil.
type Lambda struct {
	Node
	Param *Param
	Body  Expr
}

// "Lambda"
func (e *Lambda) ExprName() string { return "Lambda" }

// ParamType returns the parameter type of e, or Nil for a nullary function.
func (e *Lambda) ParamType() types.Type {
	if e.Param == nil {
		return types.Nil
	}
	return types.OrUnknown(e.Param.Type)
}

// Parameter of a Lambda, with an optional declared type.
type Param struct {
	Name string
	At   Pos
	Type types.Type
}

// Block-local variable definition: `(var x 1)`
type VarDef struct {
	Node
	Name string
	Body Expr
}

// "VarDef"
func (e *VarDef) ExprName() string { return "VarDef" }

// Assignment: `(set x 1)`
type Assign struct {
	Node
	Lhs Expr
	Rhs Expr
}

// "Assign"
func (e *Assign) ExprName() string { return "Assign" }

// Type ascription: `(: x Int64)`. Ascriptions are discarded during inference.
type TypeAscript struct {
	Node
	Expr     Expr
	Ascribed types.Type
}

// "TypeAscript"
func (e *TypeAscript) ExprName() string { return "TypeAscript" }

// Reinterpretation of a value as another type: `(transmute x UInt64)`
type Transmute struct {
	Node
	Expr   Expr
	Target types.Type
}

// "Transmute"
func (e *Transmute) ExprName() string { return "Transmute" }

// Pair construction: `(cons a b)`
type Cons struct {
	Node
	Car Expr
	Cdr Expr
}

// "Cons"
func (e *Cons) ExprName() string { return "Cons" }
