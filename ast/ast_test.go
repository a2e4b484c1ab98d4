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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/infer/ast"
	. "github.com/wdamron/infer/construct"
	"github.com/wdamron/infer/types"
)

func sample() ast.Expr {
	return LambdaT("n", types.Int64, BlockDefs(
		[]*ast.StaticDef{Def("k", Num("2"))},
		VarDef("v", Str("s")),
		Assign(Var("v"), Str("t")),
		Cons(Sym("a"), Transmute(Bool(true), types.Int64)),
		If(Bool(false), Call0(Var("now")), As(Call2(Var("add"), Var("n"), Var("k")), types.Int64)),
	))
}

func TestExprString(t *testing.T) {
	const expected = `(lambda ((: n Int64)) (block (def k 2) (var v "s") (set v "t") (cons 'a (transmute true Int64)) ` +
		`(if false (now) (: ((add n) k) Int64))))`
	assert.Equal(t, expected, ast.ExprString(sample()))
}

func TestTypedExprString(t *testing.T) {
	call := Call(Var("neg"), Num("1"))
	call.SetType(types.Int64)
	call.Func.SetType(TFunc(types.Int64, types.Int64))
	assert.Equal(t, "(: ((: neg (-> Int64 Int64)) (: 1 _)) Int64)", ast.TypedExprString(call))
}

func TestCopyExpr(t *testing.T) {
	orig := sample()
	orig.SetType(TFunc(types.Int64, types.Int64))
	cp := ast.CopyExpr(orig)

	assert.Equal(t, ast.TypedExprString(orig), ast.TypedExprString(cp))
	require.NotSame(t, orig, cp)

	lam := cp.(*ast.Lambda)
	lam.Param.Type = types.Bool
	lam.Body.(*ast.Block).Defs["k"].Body = Num("3")
	assert.Equal(t, "Int64", types.TypeString(orig.(*ast.Lambda).Param.Type))
	assert.Equal(t, "2", ast.ExprString(orig.(*ast.Lambda).Body.(*ast.Block).Defs["k"].Body))
}

func TestCopyModule(t *testing.T) {
	m := Module([]*ast.StaticDef{Def("main", sample())}, map[string]types.Type{"now": TThunk(types.Int64)})
	cp := ast.CopyModule(m)
	cp.Externs["now"].Type = types.Bool
	delete(cp.Defs, "main")

	assert.Equal(t, "(-> Nil Int64)", types.TypeString(m.Externs["now"].Type))
	assert.Equal(t, []string{"main"}, m.DefNames())
}

func TestWalkExpr(t *testing.T) {
	var names []string
	ast.WalkExpr(sample(), func(e ast.Expr) {
		names = append(names, e.ExprName())
	})
	assert.Equal(t, []string{
		"Lambda", "Block", "NumLit",
		"VarDef", "StrLit",
		"Assign", "Binding", "StrLit",
		"Cons", "Symbol", "Transmute", "Bool",
		"If", "Bool", "Call", "Binding", "TypeAscript", "Call", "Call", "Binding", "Binding", "Binding",
	}, names)
}

func TestWalkModule(t *testing.T) {
	m := Module([]*ast.StaticDef{Def("b", Var("x")), Def("a", Call(Var("f"), Var("y")))}, nil)
	var visited []string
	ast.WalkModule(m, func(def *ast.StaticDef, e ast.Expr) {
		visited = append(visited, def.Name+":"+ast.ExprString(e))
	})
	assert.Equal(t, []string{"a:(f y)", "a:f", "a:y", "b:x"}, visited)
}

func TestPos(t *testing.T) {
	assert.Equal(t, "-", ast.Pos{}.String())
	assert.Equal(t, "main.yaml", ast.Pos{File: "main.yaml"}.String())
	assert.Equal(t, "3:7", ast.Pos{Line: 3, Column: 7}.String())
	assert.Equal(t, "main.yaml:3:7", ast.Pos{File: "main.yaml", Line: 3, Column: 7}.String())
}
