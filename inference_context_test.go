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
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/construct"
	"github.com/wdamron/infer/types"
)

func testInferer(m *ast.Module) *Inferer {
	return newInferer(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInfererOwnsDefinitions(t *testing.T) {
	m := construct.Main(construct.Lambda0(construct.Num("1")))
	m.Declare("now", construct.TThunk(types.Int64))

	ti := testInferer(m)
	assert.Nil(t, m.Defs)
	assert.Nil(t, m.Externs)
	require.NoError(t, ti.release(m))
	assert.Equal(t, []string{"main"}, m.DefNames())
	assert.Equal(t, []string{"now"}, m.ExternNames())
}

func TestCheckedOutDefinitionIsUninferred(t *testing.T) {
	m := construct.Main(construct.Lambda0(construct.Num("1")))
	ti := testInferer(m)

	h, ok := ti.statics.HeightOf("main")
	require.True(t, ok)
	ti.statics.SetAt("main", h, nil)

	typ, err := ti.inferStatic("main", h, DefaultEntryType())
	require.NoError(t, err)
	assert.False(t, types.IsPartiallyKnown(typ))

	err = ti.release(m)
	assert.True(t, IsInternal(err))
	assert.Empty(t, m.Defs, "a definition left checked out cannot be returned")
}

func TestStaticsDoNotSeeLocals(t *testing.T) {
	m := construct.Module([]*ast.StaticDef{construct.Def("g", construct.Var("x"))}, nil)
	ti := testInferer(m)
	ti.pushVar("x", types.Int64)

	h, _ := ti.statics.HeightOf("g")
	_, err := ti.inferStatic("g", h, types.Unknown)
	e, ok := AsError(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, UnresolvedIdentifier, e.Kind)

	assert.Len(t, ti.vars, 1, "the caller's locals are restored")
	def, _ := ti.statics.GetAt("g", h)
	assert.NotNil(t, def, "the definition is checked back in after an error")
}

func TestUnbalancedScopes(t *testing.T) {
	m := construct.Main(construct.Lambda0(construct.Num("1")))
	ti := testInferer(m)
	_, err := ti.popStatics()
	assert.True(t, IsInternal(err), "the module layer is never popped by a block")

	ti.pushStatics(map[string]*ast.StaticDef{"k": construct.Def("k", construct.Num("1"))})
	ti.pushVar("x", types.Bool)
	err = ti.release(m)
	assert.True(t, IsInternal(err))
	assert.Equal(t, []string{"main"}, m.DefNames())
}

func TestPopStaticsRejectsCheckedOut(t *testing.T) {
	ti := testInferer(construct.Main(construct.Lambda0(construct.Num("1"))))
	ti.pushStatics(map[string]*ast.StaticDef{"k": nil})
	_, err := ti.popStatics()
	assert.True(t, IsInternal(err))

	ti.pushStatics(nil)
	defs, err := ti.popStatics()
	require.NoError(t, err)
	assert.Nil(t, defs)
}
