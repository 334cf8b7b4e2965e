package lift

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/walk"
)

// LiftLambdas hoists every Lambda-valued Let binding to the top level
// of m, per spec.md §4.3. It assumes m has already been through
// Abstract, so every such Lambda is closed (no free variables) and
// therefore safe to relocate.
//
// walk.Rewrite's post-order traversal does the heavy lifting here: a
// nested Let's bindings are rewritten (and lifted out, if applicable)
// before the enclosing node is rebuilt, so a lift performed deep inside
// a tree is already reflected by the time an outer Let is visited.
func LiftLambdas(m *core.Module) *core.Module {
	var lifted []core.Binding

	step := func(expr core.Expr) core.Expr {
		let, ok := expr.(*core.Let)
		if !ok {
			return expr
		}

		var kept []core.Binding
		for _, b := range let.Bindings {
			if _, isLambda := b.Expression.(*core.Lambda); isLambda {
				lifted = append(lifted, b)
			} else {
				kept = append(kept, b)
			}
		}

		if len(kept) == 0 {
			return let.Body
		}
		return &core.Let{ExprNode: let.ExprNode, Bindings: kept, Body: let.Body}
	}

	bindings := make([]core.Binding, 0, len(m.Bindings))
	for _, b := range m.Bindings {
		bindings = append(bindings, core.Binding{
			Name:       b.Name,
			Expression: walk.Rewrite(b.Expression, step),
		})
	}

	// Top-level bindings that are themselves Lambdas are already at the
	// top level; they are not candidates for lifting, only their bodies
	// are. Bindings collected out of nested Lets are appended after the
	// original top-level bindings, in the order they were found.
	bindings = append(bindings, lifted...)

	return &core.Module{Name: m.Name, Bindings: bindings}
}
