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

package types

import (
	"errors"
	"strings"
	"unicode"
)

// TypeString returns a string representation of a Type.
//
//   Uninferred:  _
//   Const:       Int64
//   Func:        (-> Int64 Bool)
//   Cons:        (cons Int64 Bool)
func TypeString(t Type) string {
	var sb strings.Builder
	typeString(&sb, t)
	return sb.String()
}

func typeString(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case *Const:
		sb.WriteString(t.Name)
	case *Func:
		sb.WriteString("(-> ")
		typeString(sb, t.Param)
		sb.WriteByte(' ')
		typeString(sb, t.Return)
		sb.WriteByte(')')
	case *Cons:
		sb.WriteString("(cons ")
		typeString(sb, t.Car)
		sb.WriteByte(' ')
		typeString(sb, t.Cdr)
		sb.WriteByte(')')
	default:
		sb.WriteByte('_')
	}
}

// Parse reads a type written in the syntax produced by TypeString.
func Parse(s string) (Type, error) {
	p := typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errors.New("Unexpected trailing input in type " + s)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) word() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '(' || c == ')' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) parse() (Type, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, errors.New("Unexpected end of type " + p.src)
	}
	if p.src[p.pos] != '(' {
		switch w := p.word(); w {
		case "":
			return nil, errors.New("Unexpected `)` in type " + p.src)
		case "_":
			return Unknown, nil
		default:
			return &Const{w}, nil
		}
	}
	p.pos++
	head := p.word()
	if head != "->" && head != "cons" {
		return nil, errors.New("Unknown type constructor `" + head + "` in " + p.src)
	}
	a, err := p.parse()
	if err != nil {
		return nil, err
	}
	b, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != ')' {
		return nil, errors.New("Expected `)` in type " + p.src)
	}
	p.pos++
	if head == "->" {
		return &Func{Param: a, Return: b}, nil
	}
	return &Cons{Car: a, Cdr: b}, nil
}
