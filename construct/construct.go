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

// construct provides terse builders for types and expressions.
package construct

import (
	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// Types

// No type information: `_`
func TUnknown() types.Type { return types.Unknown }

// Type constant: `Int64`, `Bool`, etc
func TConst(name string) *types.Const {
	return &types.Const{Name: name}
}

// Function type: `(-> Int64 Bool)`
func TFunc(param, ret types.Type) *types.Func {
	return types.NewFunc(param, ret)
}

// Curried function type: `(-> Int64 (-> Int64 Bool))`
func TFunc2(param1, param2, ret types.Type) *types.Func {
	return types.NewFunc(param1, types.NewFunc(param2, ret))
}

// Nullary function type: `(-> Nil Int64)`
func TThunk(ret types.Type) *types.Func {
	return types.NewFunc(types.Nil, ret)
}

// Pair type: `(cons Int64 Bool)`
func TCons(car, cdr types.Type) *types.Cons {
	return types.NewCons(car, cdr)
}

// Expressions:

// Unit value: `nil`
func Nil() *ast.Nil { return &ast.Nil{} }

// Numeric literal: `42`
func Num(lit string) *ast.NumLit { return &ast.NumLit{Lit: lit} }

// String literal: `"abc"`
func Str(s string) *ast.StrLit { return &ast.StrLit{Value: s} }

// Boolean literal
func Bool(b bool) *ast.Bool { return &ast.Bool{Value: b} }

// Quoted identifier: `'x`
func Sym(name string) *ast.Symbol { return &ast.Symbol{Name: name} }

// Reference to a variable, static definition or extern: `x`
func Var(name string) *ast.Binding { return &ast.Binding{Name: name} }

// Application: `(f x)`
func Call(fn, arg ast.Expr) *ast.Call { return &ast.Call{Func: fn, Arg: arg} }

// Curried application: `((f x) y)`
func Call2(fn, arg1, arg2 ast.Expr) *ast.Call { return Call(Call(fn, arg1), arg2) }

// Nullary application: `(f)`
func Call0(fn ast.Expr) *ast.Call { return &ast.Call{Func: fn} }

// Block without static definitions: `(block a b c)`
func Block(exprs ...ast.Expr) *ast.Block { return &ast.Block{Exprs: exprs} }

// Block with static definitions: `(block (def f ...) a b c)`
func BlockDefs(defs []*ast.StaticDef, exprs ...ast.Expr) *ast.Block {
	b := &ast.Block{Defs: make(map[string]*ast.StaticDef, len(defs)), Exprs: exprs}
	for _, d := range defs {
		b.Defs[d.Name] = d
	}
	return b
}

// Static definition: `(def name body)`
func Def(name string, body ast.Expr) *ast.StaticDef { return &ast.StaticDef{Name: name, Body: body} }

// Conditional: `(if p c a)`
func If(pred, cons, alt ast.Expr) *ast.If {
	return &ast.If{Predicate: pred, Consequent: cons, Alternative: alt}
}

// Single-parameter function: `(lambda (x) body)`
func Lambda(param string, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Param: &ast.Param{Name: param, Type: types.Unknown}, Body: body}
}

// Single-parameter function with a declared parameter type: `(lambda ((: x Int64)) body)`
func LambdaT(param string, t types.Type, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Param: &ast.Param{Name: param, Type: t}, Body: body}
}

// Nullary function: `(lambda () body)`
func Lambda0(body ast.Expr) *ast.Lambda { return &ast.Lambda{Body: body} }

// Block-local variable: `(var x body)`
func VarDef(name string, body ast.Expr) *ast.VarDef { return &ast.VarDef{Name: name, Body: body} }

// Assignment: `(set lhs rhs)`
func Assign(lhs, rhs ast.Expr) *ast.Assign { return &ast.Assign{Lhs: lhs, Rhs: rhs} }

// Type ascription: `(: e T)`
func As(e ast.Expr, t types.Type) *ast.TypeAscript { return &ast.TypeAscript{Expr: e, Ascribed: t} }

// Reinterpretation: `(transmute e T)`
func Transmute(e ast.Expr, t types.Type) *ast.Transmute {
	return &ast.Transmute{Expr: e, Target: t}
}

// Pair: `(cons car cdr)`
func Cons(car, cdr ast.Expr) *ast.Cons { return &ast.Cons{Car: car, Cdr: cdr} }

// Modules:

// Module with the given static definitions and extern declarations.
func Module(defs []*ast.StaticDef, externs map[string]types.Type) *ast.Module {
	m := ast.NewModule()
	for _, d := range defs {
		m.Defs[d.Name] = d
	}
	for name, t := range externs {
		m.Declare(name, t)
	}
	return m
}

// Module containing only `main`.
func Main(body ast.Expr) *ast.Module {
	return Module([]*ast.StaticDef{Def("main", body)}, nil)
}
