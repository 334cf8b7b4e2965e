// Package core implements the typed core expression language the
// lambda lifter transforms: the sum of Identifier, Apply, Lambda, Let,
// Case, and Literal forms described in spec.md §3.
package core

import (
	"fmt"
	"strings"

	"github.com/sunholo/lambdalift/internal/ast"
	"github.com/sunholo/lambdalift/internal/id"
	"github.com/sunholo/lambdalift/internal/types"
)

// Name is re-exported for convenience so callers outside internal/id
// rarely need to import it directly just to name a binder.
type Name = id.Name

// ExprNode is embedded by every Expr implementation to provide the
// shared position bookkeeping, following the teacher's CoreNode idiom.
type ExprNode struct {
	Pos ast.Pos
}

func (n ExprNode) Span() ast.Pos { return n.Pos }

// Expr is the base interface for every core expression form.
type Expr interface {
	Span() ast.Pos
	String() string
	coreExpr()
}

// Identifier is a variable reference.
type Identifier struct {
	ExprNode
	Id id.Id
}

func (e *Identifier) coreExpr()      {}
func (e *Identifier) String() string { return string(e.Id.Name) }

// LitKind enumerates the literal forms spec.md §3 names:
// "integer/float/string/char".
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	CharLit
)

func (k LitKind) String() string {
	switch k {
	case IntLit:
		return "Int"
	case FloatLit:
		return "Float"
	case StringLit:
		return "String"
	case CharLit:
		return "Char"
	default:
		return "?"
	}
}

// Literal is a constant value of a known type.
type Literal struct {
	ExprNode
	Kind  LitKind
	Value interface{}
	Typ   types.Type
}

func (e *Literal) coreExpr()      {}
func (e *Literal) String() string { return fmt.Sprintf("%v", e.Value) }

// Apply is a single-argument function application. Multi-argument
// calls are represented as a left-associated chain of Apply nodes, per
// spec.md §3.
type Apply struct {
	ExprNode
	Func Expr
	Arg  Expr
}

func (e *Apply) coreExpr() {}
func (e *Apply) String() string {
	return fmt.Sprintf("(%s %s)", e.Func, e.Arg)
}

// MultiApply builds a left-associated chain fn(args[0])(args[1])...
// from a function expression and its arguments, in application order
// (args[0] consumed first). Used by the abstractor to build the
// `sc v1 v2 ... vk` call site of spec.md §4.2.
func MultiApply(pos ast.Pos, fn Expr, args ...Expr) Expr {
	result := fn
	for _, a := range args {
		result = &Apply{ExprNode: ExprNode{Pos: pos}, Func: result, Arg: a}
	}
	return result
}

// Lambda is a single-parameter anonymous function. Multi-argument
// functions are nested lambdas, per spec.md §3.
type Lambda struct {
	ExprNode
	Param id.Id
	Body  Expr
}

func (e *Lambda) coreExpr() {}
func (e *Lambda) String() string {
	return fmt.Sprintf("(\\%s -> %s)", e.Param.Name, e.Body)
}

// Binding pairs a bound name with the expression that defines it.
type Binding struct {
	Name       id.Id
	Expression Expr
}

func (b Binding) String() string {
	return fmt.Sprintf("%s = %s", b.Name.Name, b.Expression)
}

// Let is a (possibly mutually recursive) group of local bindings,
// per spec.md §3.
type Let struct {
	ExprNode
	Bindings []Binding
	Body     Expr
}

func (e *Let) coreExpr() {}
func (e *Let) String() string {
	parts := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		parts[i] = b.String()
	}
	return fmt.Sprintf("let %s in %s", strings.Join(parts, "; "), e.Body)
}

// Alt is one arm of a Case expression: a pattern and the expression to
// evaluate when it matches.
type Alt struct {
	Pattern Pattern
	Body    Expr
}

// Case is a pattern match over a scrutinee, per spec.md §3.
type Case struct {
	ExprNode
	Scrutinee Expr
	Alts      []Alt
}

func (e *Case) coreExpr() {}
func (e *Case) String() string {
	parts := make([]string, len(e.Alts))
	for i, a := range e.Alts {
		parts[i] = fmt.Sprintf("%s -> %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("case %s of { %s }", e.Scrutinee, strings.Join(parts, "; "))
}

// Pattern is the pattern language used by Case alts, per spec.md §3:
// Identifier(T), Constructor(tag, [T]), and non-binding wildcards and
// literals.
type Pattern interface {
	String() string
	patternNode()
}

// IdentifierPattern binds the scrutinee (or a component of it) to a
// name.
type IdentifierPattern struct {
	Id id.Id
}

func (p *IdentifierPattern) patternNode()   {}
func (p *IdentifierPattern) String() string { return string(p.Id.Name) }

// ConstructorPattern matches a data constructor, binding each of its
// fields to the corresponding Id.
type ConstructorPattern struct {
	Tag  string
	Args []id.Id
}

func (p *ConstructorPattern) patternNode() {}
func (p *ConstructorPattern) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = string(a.Name)
	}
	return fmt.Sprintf("%s(%s)", p.Tag, strings.Join(parts, ", "))
}

// LiteralPattern matches a constant exactly; it binds nothing.
type LiteralPattern struct {
	Kind  LitKind
	Value interface{}
}

func (p *LiteralPattern) patternNode()   {}
func (p *LiteralPattern) String() string { return fmt.Sprintf("%v", p.Value) }

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct{}

func (p *WildcardPattern) patternNode()   {}
func (p *WildcardPattern) String() string { return "_" }

// PatternVars calls f once for every Id a pattern binds, in the order
// they appear. Constructor patterns may repeat a binder position (e.g.
// Constructor(_, [x, x])); PatternVars reports every occurrence, and
// callers that need multiset scope counting (spec.md §4.2) rely on
// that to increment once per occurrence.
func PatternVars(p Pattern, f func(id.Id)) {
	switch pt := p.(type) {
	case *IdentifierPattern:
		f(pt.Id)
	case *ConstructorPattern:
		for _, a := range pt.Args {
			f(a)
		}
	case *LiteralPattern, *WildcardPattern:
		// binds nothing
	}
}

// Module is the top-level container: a flat list of supercombinator
// candidates, per spec.md §3. The lifter appends newly hoisted
// bindings to this list.
type Module struct {
	Name     string
	Bindings []Binding
}

func (m *Module) String() string {
	parts := make([]string, len(m.Bindings))
	for i, b := range m.Bindings {
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}
