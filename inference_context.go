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
	"log/slog"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/internal/scope"
	"github.com/wdamron/infer/types"
)

// Inferer holds the environment for inference over a single module. The module's static definitions
// and extern declarations are owned by the Inferer until release is called.
//
// A slot holding a nil *ast.StaticDef in the static-definition stack marks a definition which is
// checked out: its body is currently being inferred further up the call stack.
type Inferer struct {
	vars    []local
	statics *scope.Stack[*ast.StaticDef]
	externs *scope.Stack[*ast.ExternDecl]
	log     *slog.Logger
}

// Local variable bound by a lambda parameter or a block-local VarDef.
type local struct {
	Name string
	Type types.Type
}

// Take ownership of m's definitions and externs.
func newInferer(m *ast.Module, log *slog.Logger) *Inferer {
	ti := &Inferer{
		statics: scope.New[*ast.StaticDef](),
		externs: scope.New[*ast.ExternDecl](),
		log:     log,
	}
	ti.statics.Push(m.Defs)
	ti.externs.Push(m.Externs)
	m.Defs, m.Externs = nil, nil
	return ti
}

// Return ownership of the definitions and externs to m. Unbalanced scopes or definitions left
// checked out are internal errors; m receives whatever could be recovered.
func (ti *Inferer) release(m *ast.Module) error {
	var err error
	if h := ti.statics.Height(); h != 1 {
		err = internalErrorf("static definition scope stack has height %d after inference", h)
		for ti.statics.Height() > 1 {
			ti.statics.Pop()
		}
	}
	if h := ti.externs.Height(); h != 1 && err == nil {
		err = internalErrorf("extern scope stack has height %d after inference", h)
	}
	for ti.externs.Height() > 1 {
		ti.externs.Pop()
	}
	if len(ti.vars) != 0 && err == nil {
		err = internalErrorf("%d local variables left on the stack after inference", len(ti.vars))
	}

	defs := ti.statics.Pop()
	for name, def := range defs {
		if def == nil {
			if err == nil {
				err = internalErrorf("static definition `%s` left checked out after inference", name)
			}
			delete(defs, name)
		}
	}
	m.Defs, m.Externs = defs, ti.externs.Pop()
	return err
}

// Push a layer of block-scoped static definitions.
func (ti *Inferer) pushStatics(defs map[string]*ast.StaticDef) { ti.statics.Push(defs) }

// Pop a layer of block-scoped static definitions. Every definition must be checked in.
func (ti *Inferer) popStatics() (map[string]*ast.StaticDef, error) {
	// The bottom layer holds the module's definitions and is only popped by release
	if ti.statics.Height() <= 1 {
		return nil, internalErrorf("static definition scope stack underflow")
	}
	defs := ti.statics.Pop()
	for name, def := range defs {
		if def == nil {
			return nil, internalErrorf("block-scoped static definition `%s` left checked out", name)
		}
	}
	if len(defs) == 0 {
		return nil, nil
	}
	return defs, nil
}

// Find the innermost local variable with the given name.
func (ti *Inferer) lookupVar(name string) *local {
	for i := len(ti.vars) - 1; i >= 0; i-- {
		if ti.vars[i].Name == name {
			return &ti.vars[i]
		}
	}
	return nil
}

func (ti *Inferer) pushVar(name string, t types.Type) int {
	ti.vars = append(ti.vars, local{name, types.OrUnknown(t)})
	return len(ti.vars) - 1
}

// Check out the static definition bound to name at the given height, infer its body against
// expected, then check it back in.
//
// The body is inferred with an empty local-variable stack: static definitions cannot capture the
// locals of the referencing expression. If the definition is already checked out, the reference is
// recursive and nothing more than Uninferred can be known about it in this pass.
func (ti *Inferer) inferStatic(name string, height int, expected types.Type) (types.Type, error) {
	def, _ := ti.statics.GetAt(name, height)
	if def == nil {
		ti.log.Debug("recursive reference to static definition", "name", name, "height", height)
		return types.Unknown, nil
	}

	ti.statics.SetAt(name, height, nil)
	outer := ti.vars
	ti.vars = nil

	ti.log.Debug("check out", "name", name, "height", height, "expected", types.TypeString(expected))
	t, err := ti.inferStaticDef(def, expected)

	ti.vars = outer
	ti.statics.SetAt(name, height, def)
	ti.log.Debug("check in", "name", name, "type", types.TypeString(def.Type()))
	return t, err
}

func (ti *Inferer) inferStaticDef(def *ast.StaticDef, expected types.Type) (types.Type, error) {
	if def.Body == nil {
		return nil, internalErrorf("static definition `%s` has no body", def.Name)
	}
	return ti.infer(&def.Body, expected)
}
