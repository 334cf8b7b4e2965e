package lift

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/id"
	"github.com/sunholo/lambdalift/internal/lifterrors"
)

// verifyPostconditions re-checks spec.md §8 properties 2–4 against a
// fully transformed module, independently of the bookkeeping Abstract
// and LiftLambdas used to produce it. A violation here means the
// pipeline itself has a bug, not that the input was malformed, so it
// panics with LIFT005 rather than returning an error.
//
// Property 2 permits a lambda's body to reference any top-level name of
// the transformed module, not just its own parameters — a lifted
// supercombinator calling a sibling top-level function is not a free
// variable. topLevel carries every top-level binder name into the check
// so such calls are not mistaken for escaped captures.
func verifyPostconditions(m *core.Module) {
	topLevel := make(map[core.Name]bool, len(m.Bindings))
	for _, b := range m.Bindings {
		topLevel[b.Name.Name] = true
	}
	for _, b := range m.Bindings {
		checkExpr(b.Expression, topLevel)
	}
}

func checkExpr(e core.Expr, bound map[core.Name]bool) {
	switch v := e.(type) {
	case *core.Identifier, *core.Literal:

	case *core.Apply:
		checkExpr(v.Func, bound)
		checkExpr(v.Arg, bound)

	case *core.Lambda:
		if free := freeVarsOf(v.Body, union(bound, v.Param.Name)); len(free) > 0 {
			lifterrors.Invariant(lifterrors.LIFT005, "lambda bound at %s still has free variables after transform: %v", v.Param.Name, names(free))
		}
		checkExpr(v.Body, union(bound, v.Param.Name))

	case *core.Let:
		if len(v.Bindings) == 0 {
			lifterrors.Invariant(lifterrors.LIFT005, "empty let survived the transform pipeline")
		}
		inner := bound
		for _, lb := range v.Bindings {
			if _, isLambda := lb.Expression.(*core.Lambda); isLambda {
				lifterrors.Invariant(lifterrors.LIFT005, "binding %q is still lambda-valued inside a non-top-level let", lb.Name.Name)
			}
			inner = union(inner, lb.Name.Name)
		}
		for _, lb := range v.Bindings {
			checkExpr(lb.Expression, inner)
		}
		checkExpr(v.Body, inner)

	case *core.Case:
		checkExpr(v.Scrutinee, bound)
		for _, alt := range v.Alts {
			inner := bound
			core.PatternVars(alt.Pattern, func(bv id.Id) {
				inner = union(inner, bv.Name)
			})
			checkExpr(alt.Body, inner)
		}
	}
}

// freeVarsOf collects the names referenced in e that are not in bound,
// walking independently of scopeTracker so this check cannot share a
// bug with the code it verifies.
func freeVarsOf(e core.Expr, bound map[core.Name]bool) map[core.Name]bool {
	free := make(map[core.Name]bool)
	var visit func(e core.Expr, bound map[core.Name]bool)
	visit = func(e core.Expr, bound map[core.Name]bool) {
		switch v := e.(type) {
		case *core.Identifier:
			if !bound[v.Id.Name] {
				free[v.Id.Name] = true
			}
		case *core.Literal:
		case *core.Apply:
			visit(v.Func, bound)
			visit(v.Arg, bound)
		case *core.Lambda:
			visit(v.Body, union(bound, v.Param.Name))
		case *core.Let:
			inner := bound
			for _, b := range v.Bindings {
				inner = union(inner, b.Name.Name)
			}
			for _, b := range v.Bindings {
				visit(b.Expression, inner)
			}
			visit(v.Body, inner)
		case *core.Case:
			visit(v.Scrutinee, bound)
			for _, a := range v.Alts {
				inner := bound
				core.PatternVars(a.Pattern, func(bv id.Id) {
					inner = union(inner, bv.Name)
				})
				visit(a.Body, inner)
			}
		}
	}
	visit(e, bound)
	return free
}

func union(bound map[core.Name]bool, name core.Name) map[core.Name]bool {
	out := make(map[core.Name]bool, len(bound)+1)
	for k, v := range bound {
		out[k] = v
	}
	out[name] = true
	return out
}

func names(s map[core.Name]bool) []core.Name {
	out := make([]core.Name, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}
