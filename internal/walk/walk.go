// Package walk implements the generic core-AST traversal of spec.md
// §4.1: a read-only Inspect and a mutating, node-replacing Rewrite.
// Both dispatch on the same fixed shape of children (Apply, Lambda,
// Let, Case) that every pass in internal/lift needs to recurse through;
// Identifier and Literal are leaves.
package walk

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/id"
)

// Inspect walks expr depth-first, calling fn on each node before
// descending into its children. If fn returns false, Inspect does not
// descend into that node's children (mirroring go/ast.Inspect).
func Inspect(expr core.Expr, fn func(core.Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	switch e := expr.(type) {
	case *core.Identifier, *core.Literal:
		// leaves
	case *core.Apply:
		Inspect(e.Func, fn)
		Inspect(e.Arg, fn)
	case *core.Lambda:
		Inspect(e.Body, fn)
	case *core.Let:
		for _, b := range e.Bindings {
			Inspect(b.Expression, fn)
		}
		Inspect(e.Body, fn)
	case *core.Case:
		Inspect(e.Scrutinee, fn)
		for _, a := range e.Alts {
			Inspect(a.Body, fn)
		}
	}
}

// InspectModule walks every top-level binding's expression.
func InspectModule(m *core.Module, fn func(core.Expr) bool) {
	for _, b := range m.Bindings {
		Inspect(b.Expression, fn)
	}
}

// RewriteFunc rewrites a single node after its children have already
// been rewritten.
type RewriteFunc func(core.Expr) core.Expr

// Rewrite performs a post-order rewrite of expr: every child is
// rewritten first, then fn is applied to the node with its
// already-rewritten children. This ordering is what lets the lambda
// lifter (spec.md §4.3) "process the lambda body first so nested
// lifted bindings propagate outward" simply by being the fn passed
// here.
func Rewrite(expr core.Expr, fn RewriteFunc) core.Expr {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *core.Identifier, *core.Literal:
		return fn(expr)
	case *core.Apply:
		newExpr := &core.Apply{
			ExprNode: e.ExprNode,
			Func:     Rewrite(e.Func, fn),
			Arg:      Rewrite(e.Arg, fn),
		}
		return fn(newExpr)
	case *core.Lambda:
		newExpr := &core.Lambda{
			ExprNode: e.ExprNode,
			Param:    e.Param,
			Body:     Rewrite(e.Body, fn),
		}
		return fn(newExpr)
	case *core.Let:
		bindings := make([]core.Binding, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = core.Binding{Name: b.Name, Expression: Rewrite(b.Expression, fn)}
		}
		newExpr := &core.Let{
			ExprNode: e.ExprNode,
			Bindings: bindings,
			Body:     Rewrite(e.Body, fn),
		}
		return fn(newExpr)
	case *core.Case:
		alts := make([]core.Alt, len(e.Alts))
		for i, a := range e.Alts {
			alts[i] = core.Alt{Pattern: a.Pattern, Body: Rewrite(a.Body, fn)}
		}
		newExpr := &core.Case{
			ExprNode:  e.ExprNode,
			Scrutinee: Rewrite(e.Scrutinee, fn),
			Alts:      alts,
		}
		return fn(newExpr)
	default:
		return fn(expr)
	}
}

// RewriteModule rewrites every top-level binding's expression,
// returning a new Module; m is not mutated. Top-level bindings are never
// themselves removed or re-homed by Rewrite; only expressions strictly
// inside them are rewritten, matching spec.md §4.3's "top-level
// bindings are not themselves lifted again".
func RewriteModule(m *core.Module, fn RewriteFunc) *core.Module {
	bindings := make([]core.Binding, len(m.Bindings))
	for i, b := range m.Bindings {
		bindings[i] = core.Binding{Name: b.Name, Expression: Rewrite(b.Expression, fn)}
	}
	return &core.Module{Name: m.Name, Bindings: bindings}
}

// CollectNames returns every Id.Name referenced by an Identifier, bound
// by a Lambda parameter, a Let binding, or a Case pattern, anywhere in
// expr. It is used to seed a name supply's collision set (spec.md §6:
// "must never collide with names already in the module").
func CollectNames(expr core.Expr) []core.Name {
	var names []core.Name
	Inspect(expr, func(e core.Expr) bool {
		switch n := e.(type) {
		case *core.Identifier:
			names = append(names, n.Id.Name)
		case *core.Lambda:
			names = append(names, n.Param.Name)
		case *core.Let:
			for _, b := range n.Bindings {
				names = append(names, b.Name.Name)
			}
		case *core.Case:
			for _, a := range n.Alts {
				core.PatternVars(a.Pattern, func(bound id.Id) {
					names = append(names, bound.Name)
				})
			}
		}
		return true
	})
	return names
}

// CollectModuleNames returns every name CollectNames would find across
// every top-level binding, plus each top-level binding's own name.
func CollectModuleNames(m *core.Module) []core.Name {
	var names []core.Name
	for _, b := range m.Bindings {
		names = append(names, b.Name.Name)
		names = append(names, CollectNames(b.Expression)...)
	}
	return names
}
