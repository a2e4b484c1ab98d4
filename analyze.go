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
	"sort"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/internal/util"
	"github.com/wdamron/infer/types"
)

// Analysis describes how the static definitions of a module refer to each other.
//
// References from block-scoped definitions are attributed to the enclosing module-level definition.
// References to externs, to block-scoped definitions, and to local variables are ignored.
type Analysis struct {
	// Definitions reachable from the entry definition (including the entry), sorted by name
	Reachable []string
	// Definitions not reachable from the entry definition, sorted by name
	Unused []string
	// Groups of definitions which refer to themselves or to each other, in dependency order
	Recursive [][]string
}

// Analyze the static definitions of m, starting at the definition named entry.
func Analyze(m *ast.Module, entry string) *Analysis {
	names := m.DefNames()
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	g := util.NewGraph(len(names))
	for i, name := range names {
		r := refCollector{externs: m.Externs, index: index}
		r.collect(m.Defs[name].Body, func(to int) { g.AddEdge(i, to) })
	}

	a := &Analysis{}
	root, ok := index[entry]
	if !ok {
		root = -1
	}
	reachable := g.Reachable(root)
	for i, name := range names {
		if reachable[i] {
			a.Reachable = append(a.Reachable, name)
		} else {
			a.Unused = append(a.Unused, name)
		}
	}

	for _, scc := range g.SCC() {
		if len(scc) == 1 && !g.HasEdge(scc[0], scc[0]) {
			continue
		}
		group := make([]string, len(scc))
		for i, v := range scc {
			group[i] = names[v]
		}
		sort.Strings(group)
		a.Recursive = append(a.Recursive, group)
	}
	return a
}

// RemoveUnused deletes the static definitions of m which are not reachable from the definition named
// entry. The names of deleted definitions are returned in sorted order.
func RemoveUnused(m *ast.Module, entry string) []string {
	unused := Analyze(m, entry).Unused
	for _, name := range unused {
		delete(m.Defs, name)
	}
	return unused
}

// Residual is an expression whose type is not fully known after inference.
type Residual struct {
	Def  string
	Expr ast.Expr
}

// Residuals returns the expressions of definitions reachable from entry whose types contain
// Uninferred components, in definition-name and then pre-order.
func Residuals(m *ast.Module, entry string) []Residual {
	var out []Residual
	for _, name := range Analyze(m, entry).Reachable {
		ast.WalkExpr(m.Defs[name].Body, func(e ast.Expr) {
			if !types.IsFullyKnown(e.Type()) {
				out = append(out, Residual{name, e})
			}
		})
	}
	return out
}

// Collects references to module-level static definitions, honoring resolution order: externs shadow
// static definitions, and block-scoped definitions shadow module-level ones.
type refCollector struct {
	externs map[string]*ast.ExternDecl
	index   map[string]int
	blocks  []map[string]*ast.StaticDef
}

func (r *refCollector) resolve(name string) (int, bool) {
	if _, isExtern := r.externs[name]; isExtern {
		return -1, false
	}
	for i := len(r.blocks) - 1; i >= 0; i-- {
		if _, isLocal := r.blocks[i][name]; isLocal {
			return -1, false
		}
	}
	v, ok := r.index[name]
	return v, ok
}

func (r *refCollector) collect(e ast.Expr, edge func(int)) {
	switch e := e.(type) {
	case *ast.Binding:
		if v, ok := r.resolve(e.Name); ok {
			edge(v)
		}

	case *ast.Block:
		r.blocks = append(r.blocks, e.Defs)
		for _, name := range sortedDefNames(e.Defs) {
			r.collect(e.Defs[name].Body, edge)
		}
		for _, sub := range e.Exprs {
			r.collect(sub, edge)
		}
		r.blocks = r.blocks[:len(r.blocks)-1]

	case *ast.Call:
		r.collect(e.Func, edge)
		r.collect(e.Arg, edge)

	case *ast.If:
		r.collect(e.Predicate, edge)
		r.collect(e.Consequent, edge)
		r.collect(e.Alternative, edge)

	case *ast.Lambda:
		r.collect(e.Body, edge)

	case *ast.VarDef:
		r.collect(e.Body, edge)

	case *ast.Assign:
		r.collect(e.Lhs, edge)
		r.collect(e.Rhs, edge)

	case *ast.TypeAscript:
		r.collect(e.Expr, edge)

	case *ast.Transmute:
		r.collect(e.Expr, edge)

	case *ast.Cons:
		r.collect(e.Car, edge)
		r.collect(e.Cdr, edge)
	}
}

func sortedDefNames(defs map[string]*ast.StaticDef) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
