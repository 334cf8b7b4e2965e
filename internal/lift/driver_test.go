package lift

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/walk"
)

// moduleDiff compares two modules via their source-form rendering, the
// same projection internal/core's json_test.go uses for Expr, rather
// than comparing the trees structurally.
func moduleDiff(t *testing.T, want, got *core.Module) {
	t.Helper()
	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Errorf("module mismatch (-want +got):\n%s", diff)
	}
}

// TestTransformEndToEnd exercises the full pipeline on the canonical
// example from spec.md §1: a local function capturing an enclosing
// binding is abstracted over that capture and then hoisted to the top
// level.
func TestTransformEndToEnd(t *testing.T) {
	// top = let y = 10 in let addY = \x -> y in addY 5
	addY := bindTo("addY", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("y", tb.Int())))
	innerLet := letExpr([]core.Binding{addY}, apply(ident("addY", tb.Fun(tb.Int(), tb.Int())), intLit(5)))
	top := letExpr([]core.Binding{bindTo("y", tb.Int(), intLit(10))}, innerLet)
	m := oneBindingModule("top", tb.Int(), top)

	result := Transform(m, DefaultOptions())

	require.Len(t, result.Bindings, 2)
	assert.Equal(t, core.Name("top"), result.Bindings[0].Name.Name)

	lifted := result.Bindings[1]
	lambda, ok := lifted.Expression.(*core.Lambda)
	require.True(t, ok, "the lifted supercombinator must be a lambda")
	assert.Equal(t, core.Name("y"), lambda.Param.Name, "the captured variable leads as an explicit parameter")

	inner, ok := lambda.Body.(*core.Lambda)
	require.True(t, ok)
	assert.Equal(t, core.Name("x"), inner.Param.Name)

	// No Let anywhere in the result should have an empty Bindings list.
	assertNoEmptyLets(t, result)
}

func TestTransformDefaultMatchesTransform(t *testing.T) {
	m := oneBindingModule("f", tb.Fun(tb.Int(), tb.Int()), lam("x", tb.Int(), ident("x", tb.Int())))
	moduleDiff(t, Transform(m, DefaultOptions()), TransformDefault(m))
}

// TestTransformSelfRecursiveLocalBinding exercises spec.md §4.2's S4
// scenario: a local binding go recurses on itself inside a case split,
// with its base case referring to an enclosing parameter n. The
// self-reference must not prevent Transform from lifting go to the top
// level, and n must survive as one of the lifted binding's leading
// parameters.
func TestTransformSelfRecursiveLocalBinding(t *testing.T) {
	decTyp := tb.Fun(tb.Int(), tb.Int())
	dec := bindTo("dec", decTyp, lam("m", tb.Int(), ident("m", tb.Int())))

	goTyp := tb.Fun(tb.Int(), tb.Int())
	// go k = case k of { 0 -> n; _ -> go (dec k) }
	caseExpr := &core.Case{
		Scrutinee: ident("k", tb.Int()),
		Alts: []core.Alt{
			{Pattern: &core.LiteralPattern{Kind: core.IntLit, Value: 0}, Body: ident("n", tb.Int())},
			{Pattern: &core.WildcardPattern{}, Body: apply(ident("go", goTyp), apply(ident("dec", decTyp), ident("k", tb.Int())))},
		},
	}
	goBinding := bindTo("go", goTyp, lam("k", tb.Int(), caseExpr))
	// loop n = let go = ... in go n
	loopBody := letExpr([]core.Binding{goBinding}, apply(ident("go", goTyp), ident("n", tb.Int())))
	loop := bindTo("loop", tb.Fun(tb.Int(), tb.Int()), lam("n", tb.Int(), loopBody))

	m := &core.Module{Name: "Main", Bindings: []core.Binding{dec, loop}}

	var result *core.Module
	require.NotPanics(t, func() {
		result = Transform(m, DefaultOptions())
	})

	require.Len(t, result.Bindings, 3, "dec, loop, and the lifted go supercombinator")
	lifted := result.Bindings[2]

	outer, ok := lifted.Expression.(*core.Lambda)
	require.True(t, ok, "the lifted self-recursive binding must be a lambda")
	mid, ok := outer.Body.(*core.Lambda)
	require.True(t, ok)
	assert.Contains(t, []core.Name{outer.Param.Name, mid.Param.Name}, core.Name("n"),
		"the enclosing loop's parameter n must survive as one of the lifted binding's leading parameters")

	assertNoEmptyLets(t, result)
}

func assertNoEmptyLets(t *testing.T, m *core.Module) {
	t.Helper()
	walk.InspectModule(m, func(e core.Expr) bool {
		if let, ok := e.(*core.Let); ok {
			assert.NotEmpty(t, let.Bindings, "Let must not have an empty Bindings list")
		}
		return true
	})
}
