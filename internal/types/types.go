// Package types implements the small arrow-typed type system the
// lambda lifter needs: enough to keep every synthesized supercombinator
// correctly typed without re-implementing a full checker.
package types

import (
	"fmt"
	"strings"
)

// Type is satisfied by every member of the type language.
type Type interface {
	String() string
	Equals(Type) bool
	Substitute(map[string]Type) Type
}

// TVar is a type variable, used only as a placeholder during
// construction (see NewVar) and never expected to survive into a
// finished program.
type TVar struct {
	Name string
}

func (t *TVar) String() string { return t.Name }

func (t *TVar) Equals(other Type) bool {
	o, ok := other.(*TVar)
	return ok && o.Name == t.Name
}

func (t *TVar) Substitute(subs map[string]Type) Type {
	if sub, ok := subs[t.Name]; ok {
		return sub
	}
	return t
}

// NewVar creates a fresh type variable with the given name.
func NewVar(name string) Type {
	return &TVar{Name: name}
}

// TCon is a nullary type constructor such as Int, Bool, or a
// user-defined data type name.
type TCon struct {
	Name string
}

func (t *TCon) String() string { return t.Name }

func (t *TCon) Equals(other Type) bool {
	o, ok := other.(*TCon)
	return ok && o.Name == t.Name
}

func (t *TCon) Substitute(map[string]Type) Type { return t }

// TApp is a type application, e.g. List Int.
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t *TApp) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s %s", t.Constructor.String(), strings.Join(parts, " "))
}

func (t *TApp) Equals(other Type) bool {
	o, ok := other.(*TApp)
	if !ok || len(t.Args) != len(o.Args) || !t.Constructor.Equals(o.Constructor) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *TApp) Substitute(subs map[string]Type) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(subs)
	}
	return &TApp{Constructor: t.Constructor.Substitute(subs), Args: args}
}

// TFunc is a single-argument function arrow. Multi-argument functions
// are modeled, as in the core expression language, by nesting: `a -> b
// -> c` is TFunc{a, TFunc{b, c}}. This mirrors spec.md's
// `function_type_(arg, ret)` builder, which associates to the right.
type TFunc struct {
	Param  Type
	Result Type
}

func (t *TFunc) String() string {
	paramStr := t.Param.String()
	if _, ok := t.Param.(*TFunc); ok {
		paramStr = "(" + paramStr + ")"
	}
	return fmt.Sprintf("%s -> %s", paramStr, t.Result.String())
}

func (t *TFunc) Equals(other Type) bool {
	o, ok := other.(*TFunc)
	return ok && t.Param.Equals(o.Param) && t.Result.Equals(o.Result)
}

func (t *TFunc) Substitute(subs map[string]Type) Type {
	return &TFunc{Param: t.Param.Substitute(subs), Result: t.Result.Substitute(subs)}
}

// FunctionType builds the arrow type `arg -> ret`, matching spec.md
// §6's `function_type_(arg, ret)` collaborator contract.
func FunctionType(arg, ret Type) Type {
	return &TFunc{Param: arg, Result: ret}
}

// Constraint is a type class constraint attached to an Id, e.g. Num a.
type Constraint struct {
	Class string
	Type  Type
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s[%s]", c.Class, c.Type.String())
}

// Equals compares two constraints structurally.
func (c Constraint) Equals(other Constraint) bool {
	return c.Class == other.Class && c.Type.Equals(other.Type)
}
