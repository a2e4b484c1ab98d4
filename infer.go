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

package infer

import (
	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// Infer the expression in slot against the expected type. The expression's type is refined in place
// and the resolved (possibly still partially known) type is returned.
//
// The slot is passed by reference so that type ascriptions can replace themselves with their inner
// expression.
func (ti *Inferer) infer(slot *ast.Expr, expected types.Type) (types.Type, error) {
	e := *slot
	if e == nil {
		return nil, internalErrorf("missing expression")
	}
	expected = types.OrUnknown(expected)

	if own := e.Type(); types.IsPartiallyKnown(own) {
		merged, ok := types.Merge(expected, own)
		if !ok {
			return nil, mismatch(e.Pos(), expected, own)
		}
		if types.Equal(merged, own) {
			// Nothing more to learn from expected
			return own, nil
		}
		expected = merged
	}

	switch e := e.(type) {
	case *ast.Nil:
		return inferConst(e, types.Nil, expected)
	case *ast.StrLit:
		return inferConst(e, types.ByteSlice, expected)
	case *ast.Bool:
		return inferConst(e, types.Bool, expected)
	case *ast.Symbol:
		return inferConst(e, types.Symbol, expected)
	case *ast.NumLit:
		return inferNumLit(e, expected)
	case *ast.Binding:
		return ti.inferBinding(e, expected)
	case *ast.Call:
		return ti.inferCall(e, expected)
	case *ast.Block:
		return ti.inferBlock(e, expected)
	case *ast.If:
		return ti.inferIf(e, expected)
	case *ast.Lambda:
		return ti.inferLambda(e, expected)
	case *ast.VarDef:
		return ti.inferVarDef(e, expected)
	case *ast.Assign:
		return ti.inferAssign(e, expected)
	case *ast.TypeAscript:
		merged, ok := types.Merge(expected, e.Ascribed)
		if !ok {
			return nil, mismatch(e.Pos(), expected, e.Ascribed)
		}
		*slot = e.Expr
		return ti.infer(slot, merged)
	case *ast.Transmute:
		return ti.inferTransmute(e, expected)
	case *ast.Cons:
		return ti.inferCons(e, expected)
	}
	panic("unknown expression type: " + e.ExprName())
}

func inferConst(e ast.Expr, t *types.Const, expected types.Type) (types.Type, error) {
	merged, ok := types.Merge(expected, t)
	if !ok {
		return nil, mismatch(e.Pos(), expected, t)
	}
	e.SetType(merged)
	return merged, nil
}

// Numeric literals take any numeric base type, or stay Uninferred until context decides.
func inferNumLit(e *ast.NumLit, expected types.Type) (types.Type, error) {
	if !types.IsPartiallyKnown(expected) {
		return types.Unknown, nil
	}
	if !types.IsNumeric(expected) {
		return nil, &Error{Kind: LiteralMismatch, Pos: e.Pos(), Expected: expected, Name: e.Lit}
	}
	e.SetType(expected)
	return expected, nil
}

// Identifiers resolve to externs first, then static definitions, then local variables.
func (ti *Inferer) inferBinding(b *ast.Binding, expected types.Type) (types.Type, error) {
	if h, ok := ti.externs.HeightOf(b.Name); ok {
		decl, _ := ti.externs.GetAt(b.Name, h)
		// Extern types are fixed; only check compatibility
		merged, ok := types.Merge(decl.Type, expected)
		if !ok {
			return nil, mismatch(b.Pos(), expected, decl.Type)
		}
		b.SetType(merged)
		return merged, nil
	}

	if h, ok := ti.statics.HeightOf(b.Name); ok {
		t, err := ti.inferStatic(b.Name, h, expected)
		if err != nil {
			return nil, err
		}
		if types.IsPartiallyKnown(t) {
			b.SetType(t)
		}
		return t, nil
	}

	if v := ti.lookupVar(b.Name); v != nil {
		merged, ok := types.Merge(v.Type, expected)
		if !ok {
			return nil, mismatch(b.Pos(), expected, v.Type)
		}
		v.Type = merged
		b.SetType(merged)
		return merged, nil
	}

	return nil, &Error{Kind: UnresolvedIdentifier, Pos: b.Pos(), Name: b.Name}
}

// Calls take at most two rounds: the argument is inferred from what is known about the function,
// then the function from the argument and the expected result. If that taught us anything about the
// function, the argument is inferred once more.
func (ti *Inferer) inferCall(c *ast.Call, expected types.Type) (types.Type, error) {
	if c.Arg == nil {
		c.Arg = &ast.Nil{Node: ast.Node{At: c.Pos()}}
	}
	if err := ti.inferCallArg(c); err != nil {
		return nil, err
	}

	before := c.Func.Type()
	fnType, err := ti.infer(&c.Func, types.NewFunc(c.Arg.Type(), expected))
	if err != nil {
		return nil, err
	}
	if !types.Equal(before, fnType) {
		ti.log.Debug("call: second argument round", "pos", c.Pos().String(), "func", types.TypeString(fnType))
		if err := ti.inferCallArg(c); err != nil {
			return nil, err
		}
	}

	_, ret, _ := types.FuncSig(fnType)
	if types.IsPartiallyKnown(ret) {
		c.SetType(ret)
	}
	return ret, nil
}

func (ti *Inferer) inferCallArg(c *ast.Call) error {
	expected := types.Unknown
	if fnType := c.Func.Type(); types.IsPartiallyKnown(fnType) {
		param, _, ok := types.FuncSig(fnType)
		if !ok {
			return mismatch(c.Func.Pos(), types.NewFunc(types.Unknown, types.Unknown), fnType)
		}
		expected = param
	}
	_, err := ti.infer(&c.Arg, expected)
	return err
}

func (ti *Inferer) inferBlock(b *ast.Block, expected types.Type) (types.Type, error) {
	if len(b.Exprs) == 0 {
		return inferConst(b, types.Nil, expected)
	}

	ti.pushStatics(b.Defs)
	b.Defs = nil
	nvars := len(ti.vars)

	t, err := ti.inferBlockExprs(b, expected)

	ti.vars = ti.vars[:nvars]
	defs, popErr := ti.popStatics()
	b.Defs = defs
	if err != nil {
		return nil, err
	}
	if popErr != nil {
		return nil, popErr
	}
	if types.IsPartiallyKnown(t) {
		b.SetType(t)
	}
	return t, nil
}

// Every expression but the last is inferred only for its own sake. Variables defined in the block
// are pushed as they are encountered. If the block defines any, a second pass runs once the last
// expression is inferred: the block's variables are popped, then every expression is inferred again
// in order, each variable's definition against everything learned about the variable, and each
// variable is pushed again only after its own definition.
func (ti *Inferer) inferBlockExprs(b *ast.Block, expected types.Type) (types.Type, error) {
	nvars := len(ti.vars)
	last := len(b.Exprs) - 1
	hasVars := false
	for i := 0; i < last; i++ {
		if def, ok := b.Exprs[i].(*ast.VarDef); ok {
			if _, err := ti.inferVarDef(def, types.Unknown); err != nil {
				return nil, err
			}
			ti.pushVar(def.Name, def.Body.Type())
			hasVars = true
			continue
		}
		if _, err := ti.infer(&b.Exprs[i], types.Unknown); err != nil {
			return nil, err
		}
	}

	t, err := ti.infer(&b.Exprs[last], expected)
	if err != nil || !hasVars {
		return t, err
	}

	ti.log.Debug("block: second pass", "pos", b.Pos().String(), "vars", len(ti.vars)-nvars)
	defined := append([]local(nil), ti.vars[nvars:]...)
	ti.vars = ti.vars[:nvars]
	for i := 0; i < last; i++ {
		def, ok := b.Exprs[i].(*ast.VarDef)
		if !ok {
			if _, err := ti.infer(&b.Exprs[i], types.Unknown); err != nil {
				return nil, err
			}
			continue
		}
		if len(defined) == 0 {
			return nil, internalErrorf("block variable `%s` missing from the second pass", def.Name)
		}
		v := defined[0]
		defined = defined[1:]
		bodyType, err := ti.infer(&def.Body, v.Type)
		if err != nil {
			return nil, err
		}
		if types.IsPartiallyKnown(bodyType) {
			v.Type = bodyType
		}
		ti.vars = append(ti.vars, v)
	}
	return ti.infer(&b.Exprs[last], expected)
}

// Both arms are inferred independently, merged, then inferred once more against the merged type so
// that each arm learns from its sibling. An If whose arms still disagree stays Uninferred until a
// later pass.
func (ti *Inferer) inferIf(e *ast.If, expected types.Type) (types.Type, error) {
	if _, err := ti.infer(&e.Predicate, types.Bool); err != nil {
		return nil, err
	}

	consType, err := ti.infer(&e.Consequent, expected)
	if err != nil {
		return nil, err
	}
	altType, err := ti.infer(&e.Alternative, expected)
	if err != nil {
		return nil, err
	}

	merged, ok := types.Merge(consType, altType)
	if !ok {
		return nil, &Error{Kind: ArmsDiffer, Pos: e.Pos(), Expected: consType, Found: altType}
	}

	if !types.Equal(consType, merged) || !types.Equal(altType, merged) {
		ti.log.Debug("if: second branch round", "pos", e.Pos().String(), "merged", types.TypeString(merged))
		if consType, err = ti.infer(&e.Consequent, merged); err != nil {
			return nil, err
		}
		if altType, err = ti.infer(&e.Alternative, merged); err != nil {
			return nil, err
		}
		if !types.Equal(consType, merged) || !types.Equal(altType, merged) {
			return types.Unknown, nil
		}
	}

	e.SetType(merged)
	return merged, nil
}

func (ti *Inferer) inferLambda(l *ast.Lambda, expected types.Type) (types.Type, error) {
	expectedParam, expectedBody, ok := types.FuncSig(expected)
	if !ok && types.IsPartiallyKnown(expected) {
		return nil, mismatch(l.Pos(), expected, types.NewFunc(l.ParamType(), l.Body.Type()))
	}

	if l.Param == nil {
		if !types.Compatible(expectedParam, types.Nil) {
			return nil, mismatch(l.Pos(), expected, types.NewFunc(types.Nil, l.Body.Type()))
		}
	} else {
		pos := l.Param.At
		if !pos.IsValid() {
			pos = l.Pos()
		}
		declared := types.OrUnknown(l.Param.Type)
		if types.Equal(expectedParam, types.Nil) && types.IsPartiallyKnown(declared) && !types.Equal(declared, types.Nil) {
			return nil, &Error{Kind: NonNilNullary, Pos: pos, Expected: expected}
		}
		merged, ok := types.Merge(expectedParam, declared)
		if !ok {
			return nil, mismatch(pos, expectedParam, declared)
		}
		l.Param.Type = merged
	}

	nvars := len(ti.vars)
	if l.Param != nil {
		ti.pushVar(l.Param.Name, l.Param.Type)
	}

	bodyType, err := ti.infer(&l.Body, expectedBody)

	if l.Param != nil {
		if len(ti.vars) != nvars+1 {
			return nil, internalErrorf("local variable stack unbalanced after lambda body: %d != %d", len(ti.vars), nvars+1)
		}
		l.Param.Type = ti.vars[nvars].Type
	}
	ti.vars = ti.vars[:nvars]
	if err != nil {
		return nil, err
	}

	t := types.NewFunc(l.ParamType(), bodyType)
	l.SetType(t)
	return t, nil
}

func (ti *Inferer) inferVarDef(def *ast.VarDef, expected types.Type) (types.Type, error) {
	t, ok := types.Merge(expected, types.Nil)
	if !ok {
		return nil, mismatch(def.Pos(), expected, types.Nil)
	}
	if _, err := ti.infer(&def.Body, types.Unknown); err != nil {
		return nil, err
	}
	def.SetType(t)
	return t, nil
}

// The right-hand side is inferred against what is known of the left, then the left against the
// right. An assignment itself is always Nil.
func (ti *Inferer) inferAssign(a *ast.Assign, expected types.Type) (types.Type, error) {
	t, ok := types.Merge(expected, types.Nil)
	if !ok {
		return nil, mismatch(a.Pos(), expected, types.Nil)
	}
	rhsType, err := ti.infer(&a.Rhs, a.Lhs.Type())
	if err != nil {
		return nil, err
	}
	if _, err := ti.infer(&a.Lhs, rhsType); err != nil {
		return nil, err
	}
	a.SetType(t)
	return t, nil
}

func (ti *Inferer) inferTransmute(tr *ast.Transmute, expected types.Type) (types.Type, error) {
	t, ok := types.Merge(tr.Target, expected)
	if !ok {
		return nil, mismatch(tr.Pos(), expected, tr.Target)
	}
	tr.Target = t
	if _, err := ti.infer(&tr.Expr, types.Unknown); err != nil {
		return nil, err
	}
	tr.SetType(t)
	return t, nil
}

func (ti *Inferer) inferCons(c *ast.Cons, expected types.Type) (types.Type, error) {
	merged, ok := types.Merge(expected, types.NewCons(types.Unknown, types.Unknown))
	if !ok {
		return nil, mismatch(c.Pos(), expected, types.NewCons(types.Unknown, types.Unknown))
	}
	expectedCar, expectedCdr, _ := types.ConsParts(merged)

	carType, err := ti.infer(&c.Car, expectedCar)
	if err != nil {
		return nil, err
	}
	cdrType, err := ti.infer(&c.Cdr, expectedCdr)
	if err != nil {
		return nil, err
	}

	t := types.NewCons(carType, cdrType)
	c.SetType(t)
	return t, nil
}
