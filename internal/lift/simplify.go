package lift

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/walk"
)

// SimplifyEmptyLets removes any Let node left with zero bindings,
// replacing it with its body. LiftLambdas already replaces a Let whose
// bindings were all lifted by its body, so on LiftLambdas' output this
// pass finds nothing to remove; it also removes empty Lets that were
// present in its own input. Kept as its own pass, separate from
// LiftLambdas, so it can be tested
// and reasoned about independently (spec.md §8 property 4, "no Let
// node has an empty Bindings list").
func SimplifyEmptyLets(m *core.Module) *core.Module {
	step := func(expr core.Expr) core.Expr {
		let, ok := expr.(*core.Let)
		if !ok {
			return expr
		}
		if len(let.Bindings) == 0 {
			return let.Body
		}
		return let
	}
	return walk.RewriteModule(m, step)
}
