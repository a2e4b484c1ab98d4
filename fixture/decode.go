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

// Package fixture reads and writes modules as YAML documents.
//
//	format: "1.0"
//	externs:
//	  add: "(-> Int64 (-> Int64 Int64))"
//	defs:
//	  main:
//	    lambda:
//	      body: {call: [add, 1, 2]}
//
// Plain scalars are literals or identifiers: integers and floats are numeric literals, true and false
// are booleans, nil and ~ are nil, quoted strings are string literals, and anything else is a
// reference to a name. Every other expression is a mapping with a single form key, plus an optional
// `type` key which presets the expression's type.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// FormatVersion is the format version written by Encode.
const FormatVersion = "1.0"

// SupportedFormats is the constraint the format version of decoded documents must satisfy.
const SupportedFormats = "^1"

// Error is a malformed document, with the position of the offending node.
type Error struct {
	Pos ast.Pos
	Msg string
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// DecodeFile reads the module in the file at path.
func DecodeFile(path string) (*ast.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "fixture")
	}
	return DecodeBytes(src, path)
}

// Decode reads a module from r. The file name is recorded in the positions of decoded expressions.
func Decode(r io.Reader, file string) (*ast.Module, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "fixture")
	}
	return DecodeBytes(src, file)
}

// DecodeBytes reads a module from src. The file name is recorded in the positions of decoded
// expressions.
func DecodeBytes(src []byte, file string) (*ast.Module, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrapf(err, "fixture: %s", file)
	}
	d := &decoder{file: file, lines: lineOffsets(src)}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, d.errorf(&doc, "empty document")
	}
	return d.module(doc.Content[0])
}

type decoder struct {
	file string
	// Byte offset of the start of each line
	lines []int
}

func lineOffsets(src []byte) []int {
	lines := []int{0}
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func (d *decoder) pos(n *yaml.Node) ast.Pos {
	p := ast.Pos{File: d.file, Line: n.Line, Column: n.Column}
	if n.Line > 0 && n.Line <= len(d.lines) {
		// Columns count characters; offsets are exact for ASCII lines
		p.Offset = d.lines[n.Line-1] + n.Column - 1
	}
	return p
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &Error{Pos: d.pos(n), Msg: fmt.Sprintf(format, args...)}
}

type field struct {
	key, value *yaml.Node
}

// Split a mapping node into its fields, rejecting keys not in allowed and duplicate keys.
func (d *decoder) fields(n *yaml.Node, what string, allowed ...string) (map[string]field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "%s must be a mapping", what)
	}
	out := make(map[string]field, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !contains(allowed, k.Value) {
			return nil, d.errorf(k, "unknown key `%s` in %s", k.Value, what)
		}
		if _, dup := out[k.Value]; dup {
			return nil, d.errorf(k, "duplicate key `%s` in %s", k.Value, what)
		}
		out[k.Value] = field{k, v}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Iterate the key/value pairs of a mapping node in document order.
func (d *decoder) pairs(n *yaml.Node, what string, f func(k, v *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return d.errorf(n, "%s must be a mapping", what)
	}
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if seen[k.Value] {
			return d.errorf(k, "duplicate %s `%s`", what, k.Value)
		}
		seen[k.Value] = true
		if err := f(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) module(n *yaml.Node) (*ast.Module, error) {
	fs, err := d.fields(n, "module", "format", "externs", "defs")
	if err != nil {
		return nil, err
	}
	if err := d.checkFormat(n, fs); err != nil {
		return nil, err
	}

	m := ast.NewModule()
	if f, ok := fs["externs"]; ok {
		err := d.pairs(f.value, "extern", func(k, v *yaml.Node) error {
			t, err := d.typ(v)
			if err != nil {
				return err
			}
			m.Declare(k.Value, t).At = d.pos(k)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if f, ok := fs["defs"]; ok {
		m.Defs, err = d.defs(f.value)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (d *decoder) checkFormat(n *yaml.Node, fs map[string]field) error {
	f, ok := fs["format"]
	if !ok {
		return d.errorf(n, "missing format version")
	}
	v, err := semver.NewVersion(f.value.Value)
	if err != nil {
		return d.errorf(f.value, "invalid format version `%s`: %v", f.value.Value, err)
	}
	c, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return errors.WithStack(err)
	}
	if !c.Check(v) {
		return d.errorf(f.value, "unsupported format version %s (supported: %s)", v, SupportedFormats)
	}
	return nil
}

func (d *decoder) defs(n *yaml.Node) (map[string]*ast.StaticDef, error) {
	defs := make(map[string]*ast.StaticDef)
	err := d.pairs(n, "definition", func(k, v *yaml.Node) error {
		body, err := d.expr(v)
		if err != nil {
			return err
		}
		defs[k.Value] = &ast.StaticDef{Name: k.Value, Body: body, At: d.pos(k)}
		return nil
	})
	return defs, err
}

func (d *decoder) typ(n *yaml.Node) (types.Type, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, d.errorf(n, "type must be a string")
	}
	t, err := types.Parse(n.Value)
	if err != nil {
		return nil, d.errorf(n, "%v", err)
	}
	return t, nil
}

func (d *decoder) name(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" || n.Value == "" {
		return "", d.errorf(n, "%s must be a name", what)
	}
	return n.Value, nil
}

func (d *decoder) seq(n *yaml.Node, what string, length int) ([]ast.Expr, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "%s must be a sequence", what)
	}
	if length >= 0 && len(n.Content) != length {
		return nil, d.errorf(n, "%s takes %d expressions, found %d", what, length, len(n.Content))
	}
	out := make([]ast.Expr, len(n.Content))
	for i, sub := range n.Content {
		var err error
		if out[i], err = d.expr(sub); err != nil {
			return nil, err
		}
	}
	return out, nil
}

var forms = []string{
	"num", "str", "bool", "nil", "ref", "sym",
	"call", "block", "if", "lambda", "var", "assign", "as", "transmute", "cons",
}

func (d *decoder) expr(n *yaml.Node) (ast.Expr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.MappingNode:
	case yaml.AliasNode:
		return d.expr(n.Alias)
	default:
		return nil, d.errorf(n, "expected an expression")
	}

	fs, err := d.fields(n, "expression", append(forms, "type")...)
	if err != nil {
		return nil, err
	}
	var form string
	for name := range fs {
		if name == "type" {
			continue
		}
		if form != "" {
			return nil, d.errorf(n, "expression has more than one form: `%s` and `%s`", form, name)
		}
		form = name
	}
	if form == "" {
		return nil, d.errorf(n, "expression has no form")
	}

	e, err := d.form(form, fs[form].key, fs[form].value)
	if err != nil {
		return nil, err
	}
	if f, ok := fs["type"]; ok {
		t, err := d.typ(f.value)
		if err != nil {
			return nil, err
		}
		e.SetType(t)
	}
	return e, nil
}

func (d *decoder) scalar(n *yaml.Node) (ast.Expr, error) {
	node := ast.Node{At: d.pos(n)}
	switch n.ShortTag() {
	case "!!int", "!!float":
		return &ast.NumLit{Node: node, Lit: n.Value}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.errorf(n, "%v", err)
		}
		return &ast.Bool{Node: node, Value: b}, nil
	case "!!null":
		return &ast.Nil{Node: node}, nil
	case "!!str":
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			return &ast.StrLit{Node: node, Value: n.Value}, nil
		}
		if n.Value == "nil" {
			return &ast.Nil{Node: node}, nil
		}
		return &ast.Binding{Node: node, Name: n.Value}, nil
	}
	return nil, d.errorf(n, "unsupported scalar `%s` (%s)", n.Value, n.ShortTag())
}

func (d *decoder) form(form string, key, v *yaml.Node) (ast.Expr, error) {
	node := ast.Node{At: d.pos(key)}
	switch form {
	case "num":
		if v.Kind != yaml.ScalarNode || v.Value == "" {
			return nil, d.errorf(v, "num must be a literal")
		}
		return &ast.NumLit{Node: node, Lit: v.Value}, nil

	case "str":
		if v.Kind != yaml.ScalarNode {
			return nil, d.errorf(v, "str must be a string")
		}
		return &ast.StrLit{Node: node, Value: v.Value}, nil

	case "bool":
		if v.ShortTag() != "!!bool" {
			return nil, d.errorf(v, "bool must be true or false")
		}
		var b bool
		if err := v.Decode(&b); err != nil {
			return nil, d.errorf(v, "%v", err)
		}
		return &ast.Bool{Node: node, Value: b}, nil

	case "nil":
		return &ast.Nil{Node: node}, nil

	case "ref":
		name, err := d.name(v, "ref")
		if err != nil {
			return nil, err
		}
		return &ast.Binding{Node: node, Name: name}, nil

	case "sym":
		name, err := d.name(v, "sym")
		if err != nil {
			return nil, err
		}
		return &ast.Symbol{Node: node, Name: name}, nil

	case "call":
		return d.call(node, v)

	case "block":
		return d.block(node, v)

	case "if":
		parts, err := d.seq(v, "if", 3)
		if err != nil {
			return nil, err
		}
		return &ast.If{Node: node, Predicate: parts[0], Consequent: parts[1], Alternative: parts[2]}, nil

	case "lambda":
		return d.lambda(node, v)

	case "var":
		fs, err := d.fields(v, "var", "name", "body")
		if err != nil {
			return nil, err
		}
		if fs["name"].value == nil || fs["body"].value == nil {
			return nil, d.errorf(v, "var requires name and body")
		}
		name, err := d.name(fs["name"].value, "var name")
		if err != nil {
			return nil, err
		}
		body, err := d.expr(fs["body"].value)
		if err != nil {
			return nil, err
		}
		return &ast.VarDef{Node: node, Name: name, Body: body}, nil

	case "assign":
		lhs, rhs, err := d.pair(v, "assign", "lhs", "rhs")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Node: node, Lhs: lhs, Rhs: rhs}, nil

	case "as", "transmute":
		fs, err := d.fields(v, form, "expr", "type")
		if err != nil {
			return nil, err
		}
		if fs["expr"].value == nil || fs["type"].value == nil {
			return nil, d.errorf(v, "%s requires expr and type", form)
		}
		e, err := d.expr(fs["expr"].value)
		if err != nil {
			return nil, err
		}
		t, err := d.typ(fs["type"].value)
		if err != nil {
			return nil, err
		}
		if form == "as" {
			return &ast.TypeAscript{Node: node, Expr: e, Ascribed: t}, nil
		}
		return &ast.Transmute{Node: node, Expr: e, Target: t}, nil

	case "cons":
		parts, err := d.seq(v, "cons", 2)
		if err != nil {
			return nil, err
		}
		return &ast.Cons{Node: node, Car: parts[0], Cdr: parts[1]}, nil
	}
	return nil, d.errorf(key, "unknown form `%s`", form)
}

func (d *decoder) pair(n *yaml.Node, what, a, b string) (ast.Expr, ast.Expr, error) {
	fs, err := d.fields(n, what, a, b)
	if err != nil {
		return nil, nil, err
	}
	if fs[a].value == nil || fs[b].value == nil {
		return nil, nil, d.errorf(n, "%s requires %s and %s", what, a, b)
	}
	x, err := d.expr(fs[a].value)
	if err != nil {
		return nil, nil, err
	}
	y, err := d.expr(fs[b].value)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// A call is either `{fn, arg}` (arg may be omitted for a nullary call) or a sequence `[fn, args...]`
// applied one argument at a time.
func (d *decoder) call(node ast.Node, v *yaml.Node) (ast.Expr, error) {
	if v.Kind == yaml.SequenceNode {
		parts, err := d.seq(v, "call", -1)
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			return nil, d.errorf(v, "call requires a function")
		}
		if len(parts) == 1 {
			return &ast.Call{Node: node, Func: parts[0]}, nil
		}
		var c ast.Expr = parts[0]
		for _, arg := range parts[1:] {
			c = &ast.Call{Node: node, Func: c, Arg: arg}
		}
		return c, nil
	}

	fs, err := d.fields(v, "call", "fn", "arg")
	if err != nil {
		return nil, err
	}
	if fs["fn"].value == nil {
		return nil, d.errorf(v, "call requires fn")
	}
	c := &ast.Call{Node: node}
	if c.Func, err = d.expr(fs["fn"].value); err != nil {
		return nil, err
	}
	if f, ok := fs["arg"]; ok {
		if c.Arg, err = d.expr(f.value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// A block is either `{defs, exprs}` or a sequence of expressions.
func (d *decoder) block(node ast.Node, v *yaml.Node) (ast.Expr, error) {
	b := &ast.Block{Node: node}
	if v.Kind == yaml.SequenceNode {
		exprs, err := d.seq(v, "block", -1)
		if err != nil {
			return nil, err
		}
		b.Exprs = exprs
		return b, nil
	}

	fs, err := d.fields(v, "block", "defs", "exprs")
	if err != nil {
		return nil, err
	}
	if f, ok := fs["defs"]; ok {
		if b.Defs, err = d.defs(f.value); err != nil {
			return nil, err
		}
	}
	if f, ok := fs["exprs"]; ok {
		if b.Exprs, err = d.seq(f.value, "block exprs", -1); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (d *decoder) lambda(node ast.Node, v *yaml.Node) (ast.Expr, error) {
	fs, err := d.fields(v, "lambda", "param", "type", "body")
	if err != nil {
		return nil, err
	}
	if fs["body"].value == nil {
		return nil, d.errorf(v, "lambda requires body")
	}
	l := &ast.Lambda{Node: node}
	if f, ok := fs["param"]; ok {
		name, err := d.name(f.value, "lambda param")
		if err != nil {
			return nil, err
		}
		l.Param = &ast.Param{Name: name, At: d.pos(f.value)}
	}
	if f, ok := fs["type"]; ok {
		if l.Param == nil {
			return nil, d.errorf(f.key, "lambda type given without param")
		}
		if l.Param.Type, err = d.typ(f.value); err != nil {
			return nil, err
		}
	}
	if l.Body, err = d.expr(fs["body"].value); err != nil {
		return nil, err
	}
	return l, nil
}

// SourceLine returns the line of src containing pos, without its line terminator.
func SourceLine(src []byte, pos ast.Pos) (string, bool) {
	if !pos.IsValid() || len(src) == 0 {
		return "", false
	}
	lines := bytes.Split(src, []byte("\n"))
	if pos.Line > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[pos.Line-1]), "\r"), true
}
