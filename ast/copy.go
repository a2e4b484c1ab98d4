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

// CopyExpr returns a deep copy of e, including inferred types.
func CopyExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil

	case *Nil:
		return &Nil{e.Node}

	case *NumLit:
		return &NumLit{e.Node, e.Lit}

	case *StrLit:
		return &StrLit{e.Node, e.Value}

	case *Bool:
		return &Bool{e.Node, e.Value}

	case *Symbol:
		return &Symbol{e.Node, e.Name}

	case *Binding:
		return &Binding{e.Node, e.Name}

	case *Call:
		return &Call{e.Node, CopyExpr(e.Func), CopyExpr(e.Arg)}

	case *Block:
		exprs := make([]Expr, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = CopyExpr(sub)
		}
		return &Block{e.Node, copyDefs(e.Defs), exprs}

	case *If:
		return &If{e.Node, CopyExpr(e.Predicate), CopyExpr(e.Consequent), CopyExpr(e.Alternative)}

	case *Lambda:
		var param *Param
		if e.Param != nil {
			p := *e.Param
			param = &p
		}
		return &Lambda{e.Node, param, CopyExpr(e.Body)}

	case *VarDef:
		return &VarDef{e.Node, e.Name, CopyExpr(e.Body)}

	case *Assign:
		return &Assign{e.Node, CopyExpr(e.Lhs), CopyExpr(e.Rhs)}

	case *TypeAscript:
		return &TypeAscript{e.Node, CopyExpr(e.Expr), e.Ascribed}

	case *Transmute:
		return &Transmute{e.Node, CopyExpr(e.Expr), e.Target}

	case *Cons:
		return &Cons{e.Node, CopyExpr(e.Car), CopyExpr(e.Cdr)}
	}
	panic("unknown expression type: " + e.ExprName())
}

// CopyModule returns a deep copy of m.
func CopyModule(m *Module) *Module {
	externs := make(map[string]*ExternDecl, len(m.Externs))
	for name, decl := range m.Externs {
		d := *decl
		externs[name] = &d
	}
	return &Module{Defs: copyDefs(m.Defs), Externs: externs}
}

func copyDefs(defs map[string]*StaticDef) map[string]*StaticDef {
	if defs == nil {
		return nil
	}
	out := make(map[string]*StaticDef, len(defs))
	for name, def := range defs {
		out[name] = &StaticDef{def.Name, CopyExpr(def.Body), def.At}
	}
	return out
}
