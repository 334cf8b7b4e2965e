package lift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/lifterrors"
)

func TestVerifyPostconditionsAcceptsCleanOutput(t *testing.T) {
	addY := bindTo("addY", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("y", tb.Int())))
	innerLet := letExpr([]core.Binding{addY}, apply(ident("addY", tb.Fun(tb.Int(), tb.Int())), intLit(5)))
	top := letExpr([]core.Binding{bindTo("y", tb.Int(), intLit(10))}, innerLet)
	m := oneBindingModule("top", tb.Int(), top)

	result := TransformDefault(m)
	assert.NotPanics(t, func() { verifyPostconditions(result) })
}

func TestVerifyPostconditionsCatchesFreeVariable(t *testing.T) {
	// A malformed module: a top-level lambda whose body references a
	// name no enclosing binder introduces.
	m := oneBindingModule("bad", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("stray", tb.Int())))

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok)
		rep, ok := lifterrors.AsReport(err)
		require.True(t, ok)
		assert.Equal(t, lifterrors.LIFT005, rep.Code)
	}()
	verifyPostconditions(m)
}

func TestVerifyPostconditionsCatchesLambdaValuedInnerBinding(t *testing.T) {
	sc := bindTo("sc", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("x", tb.Int())))
	body := letExpr([]core.Binding{sc}, apply(ident("sc", tb.Fun(tb.Int(), tb.Int())), intLit(1)))
	m := oneBindingModule("top", tb.Int(), body)

	assert.Panics(t, func() { verifyPostconditions(m) })
}

func TestVerifyPostconditionsCatchesEmptyLet(t *testing.T) {
	empty := &core.Let{Bindings: nil, Body: intLit(5)}
	m := oneBindingModule("top", tb.Int(), empty)

	assert.Panics(t, func() { verifyPostconditions(m) })
}
