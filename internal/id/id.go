// Package id defines the typed identifier that parameterizes the core
// AST for this pass: T = Id, per spec.md §3.
package id

import (
	"fmt"
	"strings"

	"github.com/sunholo/lambdalift/internal/types"
)

// Name is a globally unique identifier name, produced upstream by the
// renamer. The lifter never needs to compare names for alpha-equivalence
// modulo renaming: uniqueness is an input precondition (spec.md §3).
type Name string

// Id is the identifier carried at every binding and reference site:
// a name, its (always-known) type, and any type class constraints it
// carries. This is T in spec.md §3.
type Id struct {
	Name        Name
	Typ         types.Type
	Constraints []types.Constraint
}

// New constructs an Id, matching spec.md §6's "construction from
// (name, type, constraints)".
func New(name Name, typ types.Type, constraints []types.Constraint) Id {
	return Id{Name: name, Typ: typ, Constraints: constraints}
}

// GetType returns the Id's type. spec.md §3 requires this to be total:
// every Id entering the pass must already carry a type.
func (i Id) GetType() types.Type {
	return i.Typ
}

// Clone returns a copy of the Id with its own constraint slice, so that
// mutating the clone's constraints never aliases the original.
func (i Id) Clone() Id {
	cs := make([]types.Constraint, len(i.Constraints))
	copy(cs, i.Constraints)
	return Id{Name: i.Name, Typ: i.Typ, Constraints: cs}
}

// WithType returns a copy of i with its type replaced; the receiver is
// left unchanged.
func (i Id) WithType(t types.Type) Id {
	return Id{Name: i.Name, Typ: t, Constraints: i.Constraints}
}

func (i Id) String() string {
	if len(i.Constraints) == 0 {
		return fmt.Sprintf("%s : %s", i.Name, typString(i.Typ))
	}
	parts := make([]string, len(i.Constraints))
	for idx, c := range i.Constraints {
		parts[idx] = c.String()
	}
	return fmt.Sprintf("%s : (%s) %s", i.Name, strings.Join(parts, ", "), typString(i.Typ))
}

func typString(t types.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
