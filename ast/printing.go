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
	"strconv"
	"strings"

	"github.com/wdamron/infer/types"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e, false)
	return sb.String()
}

// TypedExprString returns a string representation of an expression, with every sub-expression
// annotated with its inferred type: `(: (f 1) Int64)`.
func TypedExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e, true)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr, typed bool) {
	if e == nil {
		sb.WriteString("nil")
		return
	}
	if _, isAscript := e.(*TypeAscript); typed && !isAscript {
		sb.WriteString("(: ")
		defer func() {
			sb.WriteByte(' ')
			sb.WriteString(types.TypeString(e.Type()))
			sb.WriteByte(')')
		}()
	}

	switch et := e.(type) {
	case *Nil:
		sb.WriteString("nil")

	case *NumLit:
		sb.WriteString(et.Lit)

	case *StrLit:
		sb.WriteString(strconv.Quote(et.Value))

	case *Bool:
		sb.WriteString(strconv.FormatBool(et.Value))

	case *Symbol:
		sb.WriteByte('\'')
		sb.WriteString(et.Name)

	case *Binding:
		sb.WriteString(et.Name)

	case *Call:
		sb.WriteByte('(')
		exprString(sb, et.Func, typed)
		if et.Arg != nil {
			sb.WriteByte(' ')
			exprString(sb, et.Arg, typed)
		}
		sb.WriteByte(')')

	case *Block:
		sb.WriteString("(block")
		for _, name := range sortedKeys(et.Defs) {
			sb.WriteString(" (def ")
			sb.WriteString(name)
			sb.WriteByte(' ')
			exprString(sb, et.Defs[name].Body, typed)
			sb.WriteByte(')')
		}
		for _, sub := range et.Exprs {
			sb.WriteByte(' ')
			exprString(sb, sub, typed)
		}
		sb.WriteByte(')')

	case *If:
		sb.WriteString("(if ")
		exprString(sb, et.Predicate, typed)
		sb.WriteByte(' ')
		exprString(sb, et.Consequent, typed)
		sb.WriteByte(' ')
		exprString(sb, et.Alternative, typed)
		sb.WriteByte(')')

	case *Lambda:
		sb.WriteString("(lambda (")
		if p := et.Param; p != nil {
			if types.IsPartiallyKnown(p.Type) {
				sb.WriteString("(: ")
				sb.WriteString(p.Name)
				sb.WriteByte(' ')
				sb.WriteString(types.TypeString(p.Type))
				sb.WriteByte(')')
			} else {
				sb.WriteString(p.Name)
			}
		}
		sb.WriteString(") ")
		exprString(sb, et.Body, typed)
		sb.WriteByte(')')

	case *VarDef:
		sb.WriteString("(var ")
		sb.WriteString(et.Name)
		sb.WriteByte(' ')
		exprString(sb, et.Body, typed)
		sb.WriteByte(')')

	case *Assign:
		sb.WriteString("(set ")
		exprString(sb, et.Lhs, typed)
		sb.WriteByte(' ')
		exprString(sb, et.Rhs, typed)
		sb.WriteByte(')')

	case *TypeAscript:
		sb.WriteString("(: ")
		exprString(sb, et.Expr, typed)
		sb.WriteByte(' ')
		sb.WriteString(types.TypeString(et.Ascribed))
		sb.WriteByte(')')

	case *Transmute:
		sb.WriteString("(transmute ")
		exprString(sb, et.Expr, typed)
		sb.WriteByte(' ')
		sb.WriteString(types.TypeString(et.Target))
		sb.WriteByte(')')

	case *Cons:
		sb.WriteString("(cons ")
		exprString(sb, et.Car, typed)
		sb.WriteByte(' ')
		exprString(sb, et.Cdr, typed)
		sb.WriteByte(')')

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}
