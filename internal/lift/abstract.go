// Package lift implements the two-stage lambda-lifting transformation
// of spec.md: free-variable abstraction (this file) followed by
// lifting (lifter.go).
package lift

import (
	"sort"

	"github.com/sunholo/lambdalift/internal/ast"
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/id"
	"github.com/sunholo/lambdalift/internal/lifterrors"
	"github.com/sunholo/lambdalift/internal/namesupply"
	"github.com/sunholo/lambdalift/internal/types"
)

// freeSet accumulates the full Id (name and type) of every free
// occurrence found so far, keyed by name. Using a map naturally
// deduplicates repeated references to the same free variable.
type freeSet map[core.Name]id.Id

func (f freeSet) merge(other freeSet) {
	for k, v := range other {
		f[k] = v
	}
}

// abstractor carries the state shared across one call to Abstract: the
// name supply used to mint supercombinator names, and the options that
// control capture ordering and naming.
type abstractor struct {
	ns   *namesupply.Supply
	opts Options
}

// Abstract performs the free-variable abstraction pass of spec.md
// §4.2 over every top-level binding of m, using ns to mint fresh
// supercombinator names. It returns a new Module; m is not mutated.
func Abstract(m *core.Module, ns *namesupply.Supply, opts Options) *core.Module {
	a := &abstractor{ns: ns, opts: opts}
	bindings := make([]core.Binding, len(m.Bindings))
	for i, b := range m.Bindings {
		// Each top-level binding is analyzed independently, starting
		// from empty scope and free sets: top-level names are never
		// entered into scope, so references to sibling top-level
		// bindings are simply ignored by the Identifier case below,
		// matching spec.md §4.2 ("Top-level names are not in scope,
		// so they are ignored").
		expr := a.abstractExpr(newScopeTracker(), make(freeSet), b.Expression)
		bindings[i] = core.Binding{Name: b.Name, Expression: expr}
	}
	return &core.Module{Name: m.Name, Bindings: bindings}
}

// abstractExpr recursively analyzes expr, recording free occurrences
// into free and rewriting every Let binding's RHS to abstract over its
// own captured free variables, per spec.md §4.2's per-form algorithm.
func (a *abstractor) abstractExpr(scope scopeTracker, free freeSet, expr core.Expr) core.Expr {
	switch e := expr.(type) {
	case *core.Identifier:
		if scope.Count(e.Id.Name) > 0 {
			free[e.Id.Name] = e.Id
		}
		return e

	case *core.Literal:
		return e

	case *core.Apply:
		fn := a.abstractExpr(scope, free, e.Func)
		arg := a.abstractExpr(scope, free, e.Arg)
		return &core.Apply{ExprNode: e.ExprNode, Func: fn, Arg: arg}

	case *core.Lambda:
		requireTyped(e.Param)
		scope.Enter(e.Param.Name)
		body := a.abstractExpr(scope, free, e.Body)
		scope.Exit(e.Param.Name)
		delete(free, e.Param.Name)
		return &core.Lambda{ExprNode: e.ExprNode, Param: e.Param, Body: body}

	case *core.Let:
		for _, b := range e.Bindings {
			scope.Enter(b.Name.Name)
		}

		bindings := make([]core.Binding, len(e.Bindings))
		for i, b := range e.Bindings {
			requireTyped(b.Name)
			free2 := make(freeSet)
			rhs := a.abstractExpr(scope, free2, b.Expression)
			free.merge(free2)
			bindings[i] = core.Binding{
				Name:       b.Name,
				Expression: a.abstract(free2, b.Name.Typ, e.ExprNode.Pos, rhs),
			}
		}

		body := a.abstractExpr(scope, free, e.Body)

		for _, b := range e.Bindings {
			scope.Exit(b.Name.Name)
			delete(free, b.Name.Name)
		}

		return &core.Let{ExprNode: e.ExprNode, Bindings: bindings, Body: body}

	case *core.Case:
		scrutinee := a.abstractExpr(scope, free, e.Scrutinee)
		alts := make([]core.Alt, len(e.Alts))
		for i, alt := range e.Alts {
			names := patternNames(alt.Pattern)
			scope.EnterPatternBatch(names)
			body := a.abstractExpr(scope, free, alt.Body)
			scope.ExitPatternBatch(names)
			for _, n := range names {
				delete(free, n)
			}
			alts[i] = core.Alt{Pattern: alt.Pattern, Body: body}
		}
		return &core.Case{ExprNode: e.ExprNode, Scrutinee: scrutinee, Alts: alts}

	default:
		lifterrors.Invariant(lifterrors.LIFT002, "abstract: unrecognized expression form %T", expr)
		return nil
	}
}

// abstract applies the abstraction rewrite of spec.md §4.2 to a single
// binding's already-processed RHS: if it captured any free variables,
// wrap it as `let sc = \v1 ... vk. rhs in sc v1 ... vk`. If it captured
// nothing, rhs is returned unchanged.
func (a *abstractor) abstract(captured freeSet, rhsType types.Type, pos ast.Pos, rhs core.Expr) core.Expr {
	if len(captured) == 0 {
		return rhs
	}
	if rhsType == nil {
		lifterrors.Invariant(lifterrors.LIFT004, "abstract: binding has no type, cannot build supercombinator arrow type")
	}
	vars := captureList(captured, a.opts.DeterministicOrder)
	return buildSupercombinator(a.ns, a.opts.SupercombinatorHint, pos, vars, rhs, rhsType)
}

// captureList materializes a freeSet's values as a slice. When sorted
// is true the slice is ordered by name, giving reproducible output;
// when false the order follows Go's randomized map iteration, mirroring
// spec.md §9's observation that the reference implementation's
// unordered map made capture order nondeterministic. Either way, the
// same slice is used to build both the parameter list and the call
// site, so the rewrite is self-consistent regardless of the setting
// (see DESIGN.md, "Capture ordering").
func captureList(captured freeSet, sorted bool) []id.Id {
	vars := make([]id.Id, 0, len(captured))
	for _, v := range captured {
		vars = append(vars, v)
	}
	if sorted {
		sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	}
	return vars
}

// buildSupercombinator constructs
//
//	let sc = \v1 ... vk. rhs in sc v1 ... vk
//
// with sc typed v1.Type -> ... -> vk.Type -> rhsType. The parameter
// nest is built by folding from the end of vars backward (so vars[0]
// ends up the outermost, first-consumed parameter) while the
// application is built by folding from the start forward (so vars[0]
// is applied first); these are mirror-image folds of the same slice,
// so the n-th entry of vars is always both the n-th-applied argument
// and the n-th parameter counting from the outside in. See DESIGN.md
// for why this symmetry matters.
func buildSupercombinator(ns *namesupply.Supply, hint string, pos ast.Pos, vars []id.Id, rhs core.Expr, rhsType types.Type) core.Expr {
	node := core.ExprNode{Pos: pos}

	lambdaBody := rhs
	lambdaType := rhsType
	for i := len(vars) - 1; i >= 0; i-- {
		v := vars[i]
		lambdaBody = &core.Lambda{ExprNode: node, Param: v, Body: lambdaBody}
		lambdaType = types.FunctionType(v.GetType(), lambdaType)
	}

	scId := id.New(ns.FromStr(hint), lambdaType, nil)

	args := make([]core.Expr, len(vars))
	for i, v := range vars {
		args[i] = &core.Identifier{ExprNode: node, Id: v}
	}
	call := core.MultiApply(pos, &core.Identifier{ExprNode: node, Id: scId}, args...)

	return &core.Let{
		ExprNode: node,
		Bindings: []core.Binding{{Name: scId, Expression: lambdaBody}},
		Body:     call,
	}
}

func patternNames(p core.Pattern) []core.Name {
	var names []core.Name
	core.PatternVars(p, func(bound id.Id) {
		names = append(names, bound.Name)
	})
	return names
}

func requireTyped(i id.Id) {
	if i.Typ == nil {
		lifterrors.Invariant(lifterrors.LIFT004, "identifier %q has no type", i.Name)
	}
}
