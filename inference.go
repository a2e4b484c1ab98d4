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

// infer provides bidirectional type inference for a small, statically-typed Lisp with curried
// (single-argument) functions.
//
// Expected types flow down into expressions and resolved types flow back up. Every expression carries
// a mutable type slot which starts Uninferred (or partially known) and is refined in place by merging
// with whatever the context demands. There are no type variables: anything which cannot be decided in
// a pass stays Uninferred.
//
// Identifiers resolve to externs (fixed types), then static definitions (inferred on demand), then
// local variables (innermost first). A static definition is checked out of its scope while its body is
// inferred; a reference encountered while it is checked out is recursive and resolves to Uninferred.
//
// Mutually-recursive static definitions are not guaranteed to be fully resolved.
package infer

import (
	"io"
	"log/slog"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/types"
)

// DefaultEntry is the name of the static definition where inference starts.
const DefaultEntry = "main"

// DefaultEntryType returns the type required of the entry definition: `(-> Nil Int64)`.
func DefaultEntryType() types.Type { return types.NewFunc(types.Nil, types.Int64) }

type options struct {
	entry     string
	entryType types.Type
	log       *slog.Logger
}

// Option configures Infer.
type Option func(*options)

// WithLogger sets the logger for debug traces of check-outs and fixed-point rounds, and warnings
// about mutually-recursive definitions. Logs are discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithEntry sets the definition where inference starts, and the type required of it.
func WithEntry(name string, t types.Type) Option {
	return func(o *options) {
		o.entry, o.entryType = name, types.OrUnknown(t)
	}
}

// Infer the types of every expression reachable from the entry definition of m (`main`, with type
// `(-> Nil Int64)`, unless configured otherwise). Types are refined in place.
//
// The first error aborts inference. User errors are returned as *Error; violated invariants of the
// engine itself are returned as *InternalError. Definitions are returned to m in either case.
//
// m must not be accessed concurrently with Infer.
func Infer(m *ast.Module, opts ...Option) error {
	o := options{
		entry:     DefaultEntry,
		entryType: DefaultEntryType(),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	for _, group := range Analyze(m, o.entry).Recursive {
		if len(group) > 1 {
			o.log.Warn("mutually-recursive static definitions may be left partially inferred", "group", group)
		}
	}

	ti := newInferer(m, o.log)
	err := ti.inferEntry(o.entry, o.entryType)
	if relErr := ti.release(m); err == nil {
		err = relErr
	}
	return err
}

func (ti *Inferer) inferEntry(name string, t types.Type) error {
	h, ok := ti.statics.HeightOf(name)
	if !ok {
		return internalErrorf("no `%s` definition", name)
	}
	def, _ := ti.statics.GetAt(name, h)
	if def == nil {
		return internalErrorf("`%s` definition is checked out before inference", name)
	}

	ti.statics.SetAt(name, h, nil)
	_, err := ti.inferStaticDef(def, t)
	ti.statics.SetAt(name, h, def)
	return err
}
