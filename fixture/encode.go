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

package fixture

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// Encode writes m to w. Expressions whose types are at least partially known are written with a
// `type` key, so the output of Encode for an inferred module records every inferred type.
func Encode(w io.Writer, m *ast.Module) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(EncodeNode(m)); err != nil {
		return errors.Wrap(err, "fixture")
	}
	return errors.Wrap(enc.Close(), "fixture")
}

// EncodeNode returns the YAML document node for m.
func EncodeNode(m *ast.Module) *yaml.Node {
	root := mapping(
		str("format"), quoted(FormatVersion),
	)
	if len(m.Externs) > 0 {
		externs := mapping()
		for _, name := range m.ExternNames() {
			externs.Content = append(externs.Content, str(name), str(types.TypeString(m.Externs[name].Type)))
		}
		root.Content = append(root.Content, str("externs"), externs)
	}
	if len(m.Defs) > 0 {
		root.Content = append(root.Content, str("defs"), encodeDefs(m.Defs))
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

func sequence(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: content}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

// Implicit tag of s as a plain scalar.
func plainTag(s string) string {
	return (&yaml.Node{Kind: yaml.ScalarNode, Value: s}).ShortTag()
}

func encodeDefs(defs map[string]*ast.StaticDef) *yaml.Node {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	n := mapping()
	for _, name := range names {
		n.Content = append(n.Content, str(name), encodeExpr(defs[name].Body))
	}
	return n
}

func encodeExpr(e ast.Expr) *yaml.Node {
	t := e.Type()
	if !types.IsPartiallyKnown(t) {
		if n := encodeScalar(e); n != nil {
			return n
		}
	}
	n := encodeForm(e)
	if types.IsPartiallyKnown(t) {
		n.Content = append(n.Content, str("type"), str(types.TypeString(t)))
	}
	return n
}

// The plain scalar for an untyped literal or reference, or nil if it must be written as a form.
func encodeScalar(e ast.Expr) *yaml.Node {
	switch e := e.(type) {
	case *ast.Nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "nil"}
	case *ast.NumLit:
		if tag := plainTag(e.Lit); tag == "!!int" || tag == "!!float" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: e.Lit}
		}
	case *ast.StrLit:
		return quoted(e.Value)
	case *ast.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: boolString(e.Value)}
	case *ast.Binding:
		if e.Name != "nil" && plainTag(e.Name) == "!!str" {
			return str(e.Name)
		}
	}
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func encodeForm(e ast.Expr) *yaml.Node {
	switch e := e.(type) {
	case *ast.Nil:
		return mapping(str("nil"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"})

	case *ast.NumLit:
		return mapping(str("num"), str(e.Lit))

	case *ast.StrLit:
		return mapping(str("str"), quoted(e.Value))

	case *ast.Bool:
		return mapping(str("bool"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: boolString(e.Value)})

	case *ast.Binding:
		return mapping(str("ref"), str(e.Name))

	case *ast.Symbol:
		return mapping(str("sym"), str(e.Name))

	case *ast.Call:
		call := mapping(str("fn"), encodeExpr(e.Func))
		if e.Arg != nil {
			call.Content = append(call.Content, str("arg"), encodeExpr(e.Arg))
		}
		return mapping(str("call"), call)

	case *ast.Block:
		block := mapping()
		if len(e.Defs) > 0 {
			block.Content = append(block.Content, str("defs"), encodeDefs(e.Defs))
		}
		exprs := &yaml.Node{Kind: yaml.SequenceNode}
		for _, sub := range e.Exprs {
			exprs.Content = append(exprs.Content, encodeExpr(sub))
		}
		block.Content = append(block.Content, str("exprs"), exprs)
		return mapping(str("block"), block)

	case *ast.If:
		return mapping(str("if"), &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{
			encodeExpr(e.Predicate), encodeExpr(e.Consequent), encodeExpr(e.Alternative),
		}})

	case *ast.Lambda:
		lambda := mapping()
		if p := e.Param; p != nil {
			lambda.Content = append(lambda.Content, str("param"), str(p.Name))
			if types.IsPartiallyKnown(p.Type) {
				lambda.Content = append(lambda.Content, str("type"), str(types.TypeString(p.Type)))
			}
		}
		lambda.Content = append(lambda.Content, str("body"), encodeExpr(e.Body))
		return mapping(str("lambda"), lambda)

	case *ast.VarDef:
		return mapping(str("var"), mapping(str("name"), str(e.Name), str("body"), encodeExpr(e.Body)))

	case *ast.Assign:
		return mapping(str("assign"), mapping(str("lhs"), encodeExpr(e.Lhs), str("rhs"), encodeExpr(e.Rhs)))

	case *ast.TypeAscript:
		return mapping(str("as"), mapping(str("expr"), encodeExpr(e.Expr), str("type"), str(types.TypeString(e.Ascribed))))

	case *ast.Transmute:
		return mapping(str("transmute"), mapping(str("expr"), encodeExpr(e.Expr), str("type"), str(types.TypeString(e.Target))))

	case *ast.Cons:
		return mapping(str("cons"), sequence(encodeExpr(e.Car), encodeExpr(e.Cdr)))
	}
	panic("unknown expression type: " + e.ExprName())
}
