package types

import (
	"encoding/json"
	"fmt"
)

// typeJSON is the tagged-union wire form every Type encodes to and
// decodes from, mirroring the teacher's normalized-JSON convention of
// a flat struct with omitempty fields rather than one struct per
// variant (internal/iface/json.go).
type typeJSON struct {
	Tag         string     `json:"tag"`
	Name        string     `json:"name,omitempty"`
	Constructor *typeJSON  `json:"constructor,omitempty"`
	Args        []typeJSON `json:"args,omitempty"`
	Param       *typeJSON  `json:"param,omitempty"`
	Result      *typeJSON  `json:"result,omitempty"`
}

func toTypeJSON(t Type) *typeJSON {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *TVar:
		return &typeJSON{Tag: "TVar", Name: v.Name}
	case *TCon:
		return &typeJSON{Tag: "TCon", Name: v.Name}
	case *TApp:
		args := make([]typeJSON, len(v.Args))
		for i, a := range v.Args {
			args[i] = *toTypeJSON(a)
		}
		return &typeJSON{Tag: "TApp", Constructor: toTypeJSON(v.Constructor), Args: args}
	case *TFunc:
		return &typeJSON{Tag: "TFunc", Param: toTypeJSON(v.Param), Result: toTypeJSON(v.Result)}
	default:
		panic(fmt.Sprintf("types.toTypeJSON: unrecognized Type implementation %T", t))
	}
}

func fromTypeJSON(j *typeJSON) (Type, error) {
	if j == nil {
		return nil, nil
	}
	switch j.Tag {
	case "TVar":
		return &TVar{Name: j.Name}, nil
	case "TCon":
		return &TCon{Name: j.Name}, nil
	case "TApp":
		con, err := fromTypeJSON(j.Constructor)
		if err != nil {
			return nil, err
		}
		args := make([]Type, len(j.Args))
		for i := range j.Args {
			a, err := fromTypeJSON(&j.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &TApp{Constructor: con, Args: args}, nil
	case "TFunc":
		param, err := fromTypeJSON(j.Param)
		if err != nil {
			return nil, err
		}
		result, err := fromTypeJSON(j.Result)
		if err != nil {
			return nil, err
		}
		return &TFunc{Param: param, Result: result}, nil
	default:
		return nil, fmt.Errorf("types: unknown type tag %q", j.Tag)
	}
}

// MarshalType encodes a Type (which may be nil) as tagged JSON.
func MarshalType(t Type) ([]byte, error) {
	return json.Marshal(toTypeJSON(t))
}

// UnmarshalType decodes a Type previously produced by MarshalType.
func UnmarshalType(data []byte) (Type, error) {
	var j *typeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return fromTypeJSON(j)
}

// constraintJSON is Constraint's wire form.
type constraintJSON struct {
	Class string   `json:"class"`
	Type  typeJSON `json:"type"`
}

// MarshalConstraints encodes a Constraint slice as JSON.
func MarshalConstraints(cs []Constraint) ([]byte, error) {
	out := make([]constraintJSON, len(cs))
	for i, c := range cs {
		out[i] = constraintJSON{Class: c.Class, Type: *toTypeJSON(c.Type)}
	}
	return json.Marshal(out)
}

// UnmarshalConstraints decodes a Constraint slice previously produced
// by MarshalConstraints.
func UnmarshalConstraints(data []byte) ([]Constraint, error) {
	var raw []constraintJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Constraint, len(raw))
	for i, r := range raw {
		t, err := fromTypeJSON(&r.Type)
		if err != nil {
			return nil, err
		}
		out[i] = Constraint{Class: r.Class, Type: t}
	}
	return out, nil
}
