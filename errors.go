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
	"fmt"

	"github.com/pkg/errors"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// ErrorKind classifies user-facing inference errors.
type ErrorKind int

const (
	// The expected type and the found type cannot be merged.
	TypeMismatch ErrorKind = iota + 1
	// The branches of a conditional have incompatible types.
	ArmsDiffer
	// A parameter with a non-Nil type was declared where a nullary function is required.
	NonNilNullary
	// An identifier is neither an extern, a static definition, nor a local variable.
	UnresolvedIdentifier
	// A literal cannot take the expected type.
	LiteralMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case ArmsDiffer:
		return "ArmsDiffer"
	case NonNilNullary:
		return "NonNilNullary"
	case UnresolvedIdentifier:
		return "UnresolvedIdentifier"
	case LiteralMismatch:
		return "LiteralMismatch"
	}
	return "ErrorKind(" + fmt.Sprint(int(k)) + ")"
}

// Error is a user-facing inference error. Inference stops at the first Error.
type Error struct {
	Kind ErrorKind
	Pos  ast.Pos
	// Expected holds the expected type, or the consequent's type for ArmsDiffer.
	Expected types.Type
	// Found holds the found type, or the alternative's type for ArmsDiffer.
	Found types.Type
	// Name holds the unresolved identifier, or the literal's syntax for LiteralMismatch.
	Name string
}

// Message returns the error without its position.
func (e *Error) Message() string {
	switch e.Kind {
	case TypeMismatch:
		return "Type mismatch. Expected `" + types.TypeString(e.Expected) + "`, found `" + types.TypeString(e.Found) + "`"
	case ArmsDiffer:
		return "Consequent and alternative have different types. Expected `" + types.TypeString(e.Expected) +
			"` from alternative, found `" + types.TypeString(e.Found) + "`"
	case NonNilNullary:
		return "Non-nil parameter declared for nullary function. Expected `" + types.TypeString(e.Expected) + "`"
	case UnresolvedIdentifier:
		return "Unresolved path `" + e.Name + "`"
	case LiteralMismatch:
		return "Type mismatch. Expected `" + types.TypeString(e.Expected) + "`, found literal `" + e.Name + "`"
	}
	return e.Kind.String()
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Message() }

func mismatch(pos ast.Pos, expected, found types.Type) error {
	return &Error{Kind: TypeMismatch, Pos: pos, Expected: types.OrUnknown(expected), Found: types.OrUnknown(found)}
}

// InternalError reports a violated invariant of the inference engine itself, as opposed to an
// error in the program being inferred.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "ICE: " + e.Msg }

func internalErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&InternalError{fmt.Sprintf(format, args...)})
}

// IsInternal reports whether err is (or wraps) an InternalError.
func IsInternal(err error) bool {
	var ice *InternalError
	return errors.As(err, &ice)
}

// AsError returns the user-facing inference error wrapped by err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
