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
	"sort"
	"strconv"

	"github.com/wdamron/infer/types"
)

// Pos is a position in source: a file name, a 1-based line and column, and a byte offset.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
}

// IsValid reports whether the position refers to a line in source.
func (p Pos) IsValid() bool { return p.Line > 0 }

// String returns `file:line:col`, or "-" for an unknown position.
func (p Pos) String() string {
	if !p.IsValid() {
		if p.File != "" {
			return p.File
		}
		return "-"
	}
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.File != "" {
		s = p.File + ":" + s
	}
	return s
}

// StaticDef is a named, module- or block-scoped immutable binding: `(def name body)`
type StaticDef struct {
	Name string
	Body Expr
	At   Pos
}

// Get the (possibly partially) inferred type of the definition's body.
func (d *StaticDef) Type() types.Type {
	if d.Body == nil {
		return types.Unknown
	}
	return d.Body.Type()
}

// ExternDecl declares an external item with a fixed type: `(extern-proc name T)`
type ExternDecl struct {
	Name string
	Type types.Type
	At   Pos
}

// Module contains the static definitions and extern declarations of a compilation unit.
//
// A Module must not be read or written while inference is running on it.
type Module struct {
	Defs    map[string]*StaticDef
	Externs map[string]*ExternDecl
}

// Create an empty module.
func NewModule() *Module {
	return &Module{
		Defs:    make(map[string]*StaticDef),
		Externs: make(map[string]*ExternDecl),
	}
}

// Add a static definition to the module, replacing any existing definition with the same name.
func (m *Module) Define(name string, body Expr) *StaticDef {
	if m.Defs == nil {
		m.Defs = make(map[string]*StaticDef)
	}
	def := &StaticDef{Name: name, Body: body}
	if body != nil {
		def.At = body.Pos()
	}
	m.Defs[name] = def
	return def
}

// Declare an extern item in the module, replacing any existing declaration with the same name.
func (m *Module) Declare(name string, t types.Type) *ExternDecl {
	if m.Externs == nil {
		m.Externs = make(map[string]*ExternDecl)
	}
	decl := &ExternDecl{Name: name, Type: t}
	m.Externs[name] = decl
	return decl
}

// DefNames returns the names of the module's static definitions in sorted order.
func (m *Module) DefNames() []string { return sortedKeys(m.Defs) }

// ExternNames returns the names of the module's extern declarations in sorted order.
func (m *Module) ExternNames() []string { return sortedKeys(m.Externs) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
