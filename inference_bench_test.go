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

package infer_test

import (
	"testing"

	. "github.com/wdamron/infer"
	. "github.com/wdamron/infer/construct"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

func benchExterns() map[string]types.Type {
	i64 := types.Int64
	return map[string]types.Type{
		"add": TFunc2(i64, i64, i64),
		"sub": TFunc2(i64, i64, i64),
		"mul": TFunc2(i64, i64, i64),
		"eq":  TFunc2(i64, i64, types.Bool),
	}
}

func BenchmarkRecursiveStatic(b *testing.B) {
	fact := Def("fact", LambdaT("n", types.Int64,
		If(Call2(Var("eq"), Var("n"), Num("0")),
			Num("1"),
			Call2(Var("mul"), Var("n"), Call(Var("fact"), Call2(Var("sub"), Var("n"), Num("1")))))))
	m := Module([]*ast.StaticDef{fact, Def("main", Lambda0(Call(Var("fact"), Num("10"))))}, benchExterns())

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if err := Infer(ast.CopyModule(m)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMutuallyRecursiveStatic(b *testing.B) {
	even := Def("even", LambdaT("n", types.Int64,
		If(Call2(Var("eq"), Var("n"), Num("0")), Bool(true), Call(Var("odd"), Call2(Var("sub"), Var("n"), Num("1"))))))
	odd := Def("odd", Lambda("n",
		If(Call2(Var("eq"), Var("n"), Num("0")), Bool(false), Call(Var("even"), Call2(Var("sub"), Var("n"), Num("1"))))))
	main := Def("main", Lambda0(If(Call(Var("even"), Num("4")), Num("1"), Num("0"))))
	m := Module([]*ast.StaticDef{even, odd, main}, benchExterns())

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if err := Infer(ast.CopyModule(m)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNestedBlocks(b *testing.B) {
	var body ast.Expr = Var("x")
	for i := 0; i < 32; i++ {
		body = BlockDefs([]*ast.StaticDef{Def("k", Num("1"))},
			VarDef("x", Call2(Var("add"), Var("k"), Num("2"))),
			Assign(Var("x"), Call2(Var("mul"), Var("x"), Var("k"))),
			body)
	}
	m := Module([]*ast.StaticDef{Def("main", Lambda0(body))}, benchExterns())

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if err := Infer(ast.CopyModule(m)); err != nil {
			b.Fatal(err)
		}
	}
}
