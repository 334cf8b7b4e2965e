package core

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/lambdalift/internal/ast"
	"github.com/sunholo/lambdalift/internal/id"
	"github.com/sunholo/lambdalift/internal/types"
)

// posJSON is ast.Pos's wire form, included on every expression envelope
// so a dumped tree still carries diagnostics.
type posJSON struct {
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	File   string `json:"file,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

func toPosJSON(p ast.Pos) posJSON {
	return posJSON{Line: p.Line, Column: p.Column, File: p.File, Offset: p.Offset}
}

func (p posJSON) toPos() ast.Pos {
	return ast.Pos{Line: p.Line, Column: p.Column, File: p.File, Offset: p.Offset}
}

// bindingJSON is Binding's wire form.
type bindingJSON struct {
	Name       id.Id           `json:"name"`
	Expression json.RawMessage `json:"expression"`
}

// altJSON is Alt's wire form.
type altJSON struct {
	Pattern json.RawMessage `json:"pattern"`
	Body    json.RawMessage `json:"body"`
}

// exprEnvelope is the single flat wire shape every Expr variant
// marshals to and unmarshals from, following the tagged, omitempty
// convention of internal/iface/json.go.
type exprEnvelope struct {
	Tag string  `json:"tag"`
	Pos posJSON `json:"pos,omitempty"`

	// Identifier
	Id *id.Id `json:"id,omitempty"`

	// Literal
	Kind  string          `json:"kind,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Type  json.RawMessage `json:"type,omitempty"`

	// Apply
	Func json.RawMessage `json:"func,omitempty"`
	Arg  json.RawMessage `json:"arg,omitempty"`

	// Lambda
	Param *id.Id          `json:"param,omitempty"`
	Body  json.RawMessage `json:"body,omitempty"`

	// Let
	Bindings []bindingJSON   `json:"bindings,omitempty"`
	LetBody  json.RawMessage `json:"let_body,omitempty"`

	// Case
	Scrutinee json.RawMessage `json:"scrutinee,omitempty"`
	Alts      []altJSON       `json:"alts,omitempty"`
}

func marshalExpr(e Expr) ([]byte, error) {
	switch v := e.(type) {
	case *Identifier:
		return json.Marshal(exprEnvelope{Tag: "Identifier", Pos: toPosJSON(v.Pos), Id: &v.Id})

	case *Literal:
		typJSON, err := types.MarshalType(v.Typ)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(exprEnvelope{Tag: "Literal", Pos: toPosJSON(v.Pos), Kind: v.Kind.String(), Value: valJSON, Type: typJSON})

	case *Apply:
		fn, err := marshalExpr(v.Func)
		if err != nil {
			return nil, err
		}
		arg, err := marshalExpr(v.Arg)
		if err != nil {
			return nil, err
		}
		return json.Marshal(exprEnvelope{Tag: "Apply", Pos: toPosJSON(v.Pos), Func: fn, Arg: arg})

	case *Lambda:
		body, err := marshalExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return json.Marshal(exprEnvelope{Tag: "Lambda", Pos: toPosJSON(v.Pos), Param: &v.Param, Body: body})

	case *Let:
		bindings := make([]bindingJSON, len(v.Bindings))
		for i, b := range v.Bindings {
			rhs, err := marshalExpr(b.Expression)
			if err != nil {
				return nil, err
			}
			bindings[i] = bindingJSON{Name: b.Name, Expression: rhs}
		}
		body, err := marshalExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return json.Marshal(exprEnvelope{Tag: "Let", Pos: toPosJSON(v.Pos), Bindings: bindings, LetBody: body})

	case *Case:
		scrutinee, err := marshalExpr(v.Scrutinee)
		if err != nil {
			return nil, err
		}
		alts := make([]altJSON, len(v.Alts))
		for i, a := range v.Alts {
			pat, err := marshalPattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := marshalExpr(a.Body)
			if err != nil {
				return nil, err
			}
			alts[i] = altJSON{Pattern: pat, Body: body}
		}
		return json.Marshal(exprEnvelope{Tag: "Case", Pos: toPosJSON(v.Pos), Scrutinee: scrutinee, Alts: alts})

	default:
		return nil, fmt.Errorf("core: unrecognized expression form %T", e)
	}
}

// MarshalExpr encodes e as compact tagged JSON. Use json.Indent on the
// result if a human-readable form is wanted; the CLI's `dump`
// subcommand prints a module's source rendering (String) instead.
func MarshalExpr(e Expr) ([]byte, error) {
	return marshalExpr(e)
}

// UnmarshalExpr decodes an Expr previously produced by MarshalExpr.
func UnmarshalExpr(data []byte) (Expr, error) {
	var env exprEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	node := ExprNode{Pos: env.Pos.toPos()}

	switch env.Tag {
	case "Identifier":
		if env.Id == nil {
			return nil, fmt.Errorf("core: Identifier envelope missing id")
		}
		return &Identifier{ExprNode: node, Id: *env.Id}, nil

	case "Literal":
		kind, err := litKindFromString(env.Kind)
		if err != nil {
			return nil, err
		}
		t, err := types.UnmarshalType(env.Type)
		if err != nil {
			return nil, err
		}
		var value interface{}
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &value); err != nil {
				return nil, err
			}
		}
		return &Literal{ExprNode: node, Kind: kind, Value: value, Typ: t}, nil

	case "Apply":
		fn, err := UnmarshalExpr(env.Func)
		if err != nil {
			return nil, err
		}
		arg, err := UnmarshalExpr(env.Arg)
		if err != nil {
			return nil, err
		}
		return &Apply{ExprNode: node, Func: fn, Arg: arg}, nil

	case "Lambda":
		if env.Param == nil {
			return nil, fmt.Errorf("core: Lambda envelope missing param")
		}
		body, err := UnmarshalExpr(env.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{ExprNode: node, Param: *env.Param, Body: body}, nil

	case "Let":
		bindings := make([]Binding, len(env.Bindings))
		for i, b := range env.Bindings {
			rhs, err := UnmarshalExpr(b.Expression)
			if err != nil {
				return nil, err
			}
			bindings[i] = Binding{Name: b.Name, Expression: rhs}
		}
		body, err := UnmarshalExpr(env.LetBody)
		if err != nil {
			return nil, err
		}
		return &Let{ExprNode: node, Bindings: bindings, Body: body}, nil

	case "Case":
		scrutinee, err := UnmarshalExpr(env.Scrutinee)
		if err != nil {
			return nil, err
		}
		alts := make([]Alt, len(env.Alts))
		for i, a := range env.Alts {
			pat, err := UnmarshalPattern(a.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := UnmarshalExpr(a.Body)
			if err != nil {
				return nil, err
			}
			alts[i] = Alt{Pattern: pat, Body: body}
		}
		return &Case{ExprNode: node, Scrutinee: scrutinee, Alts: alts}, nil

	default:
		return nil, fmt.Errorf("core: unknown expression tag %q", env.Tag)
	}
}

func litKindFromString(s string) (LitKind, error) {
	switch s {
	case "Int":
		return IntLit, nil
	case "Float":
		return FloatLit, nil
	case "String":
		return StringLit, nil
	case "Char":
		return CharLit, nil
	default:
		return 0, fmt.Errorf("core: unknown literal kind %q", s)
	}
}

// patternEnvelope is the flat wire shape for every Pattern variant.
type patternEnvelope struct {
	Tag     string          `json:"tag"`
	Id      *id.Id          `json:"id,omitempty"`
	CtorTag string          `json:"constructor_tag,omitempty"`
	Args    []id.Id         `json:"args,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

func marshalPattern(p Pattern) ([]byte, error) {
	switch v := p.(type) {
	case *IdentifierPattern:
		return json.Marshal(patternEnvelope{Tag: "IdentifierPattern", Id: &v.Id})
	case *ConstructorPattern:
		return json.Marshal(patternEnvelope{Tag: "ConstructorPattern", CtorTag: v.Tag, Args: v.Args})
	case *LiteralPattern:
		val, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(patternEnvelope{Tag: "LiteralPattern", Kind: v.Kind.String(), Value: val})
	case *WildcardPattern:
		return json.Marshal(patternEnvelope{Tag: "WildcardPattern"})
	default:
		return nil, fmt.Errorf("core: unrecognized pattern form %T", p)
	}
}

// UnmarshalPattern decodes a Pattern previously produced by
// marshalPattern.
func UnmarshalPattern(data []byte) (Pattern, error) {
	var env patternEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Tag {
	case "IdentifierPattern":
		if env.Id == nil {
			return nil, fmt.Errorf("core: IdentifierPattern envelope missing id")
		}
		return &IdentifierPattern{Id: *env.Id}, nil
	case "ConstructorPattern":
		return &ConstructorPattern{Tag: env.CtorTag, Args: env.Args}, nil
	case "LiteralPattern":
		kind, err := litKindFromString(env.Kind)
		if err != nil {
			return nil, err
		}
		var value interface{}
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &value); err != nil {
				return nil, err
			}
		}
		return &LiteralPattern{Kind: kind, Value: value}, nil
	case "WildcardPattern":
		return &WildcardPattern{}, nil
	default:
		return nil, fmt.Errorf("core: unknown pattern tag %q", env.Tag)
	}
}

// moduleJSON is Module's wire form.
type moduleJSON struct {
	Name     string        `json:"name"`
	Bindings []bindingJSON `json:"bindings"`
}

// MarshalModule encodes m as indented, tagged JSON suitable for the
// CLI's `dump` subcommand or for round-tripping through a file.
func MarshalModule(m *Module) ([]byte, error) {
	bindings := make([]bindingJSON, len(m.Bindings))
	for i, b := range m.Bindings {
		rhs, err := marshalExpr(b.Expression)
		if err != nil {
			return nil, err
		}
		bindings[i] = bindingJSON{Name: b.Name, Expression: rhs}
	}
	return json.MarshalIndent(moduleJSON{Name: m.Name, Bindings: bindings}, "", "  ")
}

// UnmarshalModule decodes a Module previously produced by
// MarshalModule.
func UnmarshalModule(data []byte) (*Module, error) {
	var mj moduleJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return nil, err
	}
	bindings := make([]Binding, len(mj.Bindings))
	for i, b := range mj.Bindings {
		rhs, err := UnmarshalExpr(b.Expression)
		if err != nil {
			return nil, err
		}
		bindings[i] = Binding{Name: b.Name, Expression: rhs}
	}
	return &Module{Name: mj.Name, Bindings: bindings}, nil
}
