package lift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/namesupply"
	"github.com/sunholo/lambdalift/internal/walk"
)

// countSupercombinatorWrappers counts the `let sc = \v... -> rhs in sc
// v...` wrapper shape Abstract introduces for each binding that
// captured at least one free variable, identifying them by the
// SupercombinatorHint prefix on the wrapper's own binding name.
func countSupercombinatorWrappers(e core.Expr) int {
	count := 0
	walk.Inspect(e, func(n core.Expr) bool {
		let, ok := n.(*core.Let)
		if ok && len(let.Bindings) == 1 && strings.HasPrefix(string(let.Bindings[0].Name.Name), DefaultOptions().SupercombinatorHint) {
			count++
		}
		return true
	})
	return count
}

func TestAbstractLeavesClosedLambdaUnchanged(t *testing.T) {
	// f = \x -> x
	m := oneBindingModule("f", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("x", tb.Int())))

	result := Abstract(m, namesupply.New(), DefaultOptions())

	_, isLambda := result.Bindings[0].Expression.(*core.Lambda)
	assert.True(t, isLambda, "a closed lambda must not be wrapped")
}

func TestAbstractWrapsSingleCapture(t *testing.T) {
	// top = let y = 1 in let inner = \x -> y in inner 2
	inner := bindTo("inner", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("y", tb.Int())))
	body := letExpr([]core.Binding{inner}, apply(ident("inner", tb.Fun(tb.Int(), tb.Int())), intLit(2)))
	top := letExpr([]core.Binding{bindTo("y", tb.Int(), intLit(1))}, body)

	m := oneBindingModule("top", tb.Int(), top)
	result := Abstract(m, namesupply.New(), DefaultOptions())

	rewritten := result.Bindings[0].Expression.(*core.Let).Body.(*core.Let)
	innerExpr := rewritten.Bindings[0].Expression

	sc, ok := innerExpr.(*core.Let)
	require.True(t, ok, "a capturing binding must be rewritten to a nested let")
	require.Len(t, sc.Bindings, 1)

	scLambda, ok := sc.Bindings[0].Expression.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, "y", string(scLambda.Param.Name), "captured variable becomes the leading parameter")

	fn, args := flattenArgs(sc.Body)
	scIdent, ok := fn.(*core.Identifier)
	require.True(t, ok)
	assert.Equal(t, sc.Bindings[0].Name.Name, scIdent.Id.Name)
	require.Len(t, args, 1)
	argIdent, ok := args[0].(*core.Identifier)
	require.True(t, ok)
	assert.Equal(t, "y", string(argIdent.Id.Name))
}

func TestAbstractOrdersMultipleCapturesByName(t *testing.T) {
	// top = let b = 2 in let a = 1 in let inner = \x -> b a in inner
	// (captures a and b, referenced in reverse-alphabetical order in
	// the source text, but bound in outer lets so they are genuinely
	// free with respect to "inner").
	innerBody := apply(ident("b", tb.Fun(tb.Int(), tb.Int())), ident("a", tb.Int()))
	inner := bindTo("inner", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), innerBody))
	innerLet := letExpr([]core.Binding{inner}, ident("inner", tb.Fun(tb.Int(), tb.Int())))
	aLet := letExpr([]core.Binding{bindTo("a", tb.Int(), intLit(1))}, innerLet)
	bLet := letExpr([]core.Binding{bindTo("b", tb.Fun(tb.Int(), tb.Int()), lam("z", tb.Int(), ident("z", tb.Int())))}, aLet)

	m := oneBindingModule("top", tb.Fun(tb.Int(), tb.Int()), bLet)
	result := Abstract(m, namesupply.New(), DefaultOptions())

	rewritten := result.Bindings[0].Expression.(*core.Let).Body.(*core.Let).Body.(*core.Let)
	sc := rewritten.Bindings[0].Expression.(*core.Let)

	outer := sc.Bindings[0].Expression.(*core.Lambda)
	innerLambda := outer.Body.(*core.Lambda)
	assert.Equal(t, "a", string(outer.Param.Name), "sorted order puts 'a' outermost")
	assert.Equal(t, "b", string(innerLambda.Param.Name))

	_, args := flattenArgs(sc.Body)
	require.Len(t, args, 2)
	assert.Equal(t, "a", string(args[0].(*core.Identifier).Id.Name), "args[0] is applied first, matching the outermost parameter")
	assert.Equal(t, "b", string(args[1].(*core.Identifier).Id.Name))
}

func TestAbstractIgnoresTopLevelReferences(t *testing.T) {
	// Two independent top-level bindings; "g" referencing "f" does not
	// count as a free-variable capture, since top-level names are never
	// entered into scope.
	f := bindTo("f", tb.Int(), intLit(1))
	g := bindTo("g", tb.Int(), ident("f", tb.Int()))
	m := &core.Module{Name: "Main", Bindings: []core.Binding{f, g}}

	result := Abstract(m, namesupply.New(), DefaultOptions())

	gExpr := result.Bindings[1].Expression
	_, isLet := gExpr.(*core.Let)
	assert.False(t, isLet, "a reference to a sibling top-level binding must not be abstracted")
}

func TestAbstractPanicsOnUntypedParam(t *testing.T) {
	m := oneBindingModule("f", nil, &core.Lambda{Param: badID(), Body: intLit(1)})
	assert.Panics(t, func() { Abstract(m, namesupply.New(), DefaultOptions()) })
}

// TestAbstractMutuallyReferentialLocalBindings exercises spec.md §1's
// S1 scenario: a local binding f defines a nested local binding g that
// calls f back and also calls the top-level name add, while f's body
// calls g. Both f and g capture free variables (f captures itself and the
// enclosing localTest; g captures f and its enclosing fx) and so both
// must be rewritten into their own supercombinator wrapper, and the
// cross-reference between them must not be mistaken for an escaping
// free variable by the rest of the pipeline.
func TestAbstractMutuallyReferentialLocalBindings(t *testing.T) {
	addTyp := tb.Fun(tb.Int(), tb.Int(), tb.Int())
	add := bindTo("add", addTyp, lam("a", tb.Int(), lam("b", tb.Int(), ident("a", tb.Int()))))

	fTyp := tb.Fun(tb.Int(), tb.Int())
	gTyp := tb.Int()

	// g y = add fx (f y)
	addApp := apply(ident("add", addTyp), ident("fx", tb.Int()), apply(ident("f", fTyp), ident("y", tb.Int())))
	g := bindTo("g", gTyp, lam("y", tb.Int(), addApp))
	// f fx = let g = ... in g localTest
	gLet := letExpr([]core.Binding{g}, apply(ident("g", gTyp), ident("localTest", tb.Int())))
	f := bindTo("f", fTyp, lam("fx", tb.Int(), gLet))
	// test2 tx = let localTest = 2 in let f = ... in f tx
	fLet := letExpr([]core.Binding{f}, apply(ident("f", fTyp), ident("tx", tb.Int())))
	outerLet := letExpr([]core.Binding{bindTo("localTest", tb.Int(), intLit(2))}, fLet)
	test2 := bindTo("test2", tb.Fun(tb.Int(), tb.Int()), lam("tx", tb.Int(), outerLet))

	m := &core.Module{Name: "Main", Bindings: []core.Binding{add, test2}}

	var result *core.Module
	require.NotPanics(t, func() {
		result = Abstract(m, namesupply.New(), DefaultOptions())
	})

	wrapped := countSupercombinatorWrappers(result.Bindings[1].Expression)
	assert.Equal(t, 2, wrapped, "exactly f and g must each be rewritten into their own supercombinator wrapper")

	require.NotPanics(t, func() {
		Transform(m, DefaultOptions())
	}, "a lifted binding calling a sibling local binding that in turn calls it back must not be reported as an escaping free variable")
}
