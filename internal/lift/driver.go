package lift

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/namesupply"
)

// Transform runs the full lambda-lifting pipeline of spec.md §6 over
// m: abstract every local binding's free variables into explicit
// leading parameters, lift the now-closed Lambda bindings to the top
// level, then clean up any Let left with no bindings. m is not
// mutated; the result is a new Module.
func Transform(m *core.Module, opts Options) *core.Module {
	ns := namesupply.NewFromModule(m)
	abstracted := Abstract(m, ns, opts)
	lifted := LiftLambdas(abstracted)
	result := SimplifyEmptyLets(lifted)
	verifyPostconditions(result)
	return result
}

// TransformDefault runs Transform with DefaultOptions.
func TransformDefault(m *core.Module) *core.Module {
	return Transform(m, DefaultOptions())
}
