package lift

import (
	"github.com/sunholo/lambdalift/internal/ast"
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/id"
	"github.com/sunholo/lambdalift/internal/types"
)

var tb = types.NewBuilder()

func ident(name string, t types.Type) *core.Identifier {
	return &core.Identifier{Id: id.New(core.Name(name), t, nil)}
}

func intLit(n int) *core.Literal {
	return &core.Literal{Kind: core.IntLit, Value: n, Typ: tb.Int()}
}

func lam(param string, t types.Type, body core.Expr) *core.Lambda {
	return &core.Lambda{Param: id.New(core.Name(param), t, nil), Body: body}
}

func letExpr(bindings []core.Binding, body core.Expr) *core.Let {
	return &core.Let{Bindings: bindings, Body: body}
}

func bindTo(name string, t types.Type, expr core.Expr) core.Binding {
	return core.Binding{Name: id.New(core.Name(name), t, nil), Expression: expr}
}

func apply(fn core.Expr, args ...core.Expr) core.Expr {
	return core.MultiApply(ast.Pos{}, fn, args...)
}

func oneBindingModule(name string, t types.Type, expr core.Expr) *core.Module {
	return &core.Module{Name: "Main", Bindings: []core.Binding{bindTo(name, t, expr)}}
}

// badID returns an Id with no type attached, for exercising the
// LIFT004 invariant.
func badID() id.Id {
	return id.Id{Name: "bad"}
}

// flattenArgs unwraps a left-associated Apply chain back into its
// function and argument list, in application order.
func flattenArgs(e core.Expr) (core.Expr, []core.Expr) {
	var rev []core.Expr
	cur := e
	for {
		app, ok := cur.(*core.Apply)
		if !ok {
			break
		}
		rev = append(rev, app.Arg)
		cur = app.Func
	}
	args := make([]core.Expr, len(rev))
	for i, a := range rev {
		args[len(rev)-1-i] = a
	}
	return cur, args
}
