// Package namesupply implements the NameSupply collaborator contract
// of spec.md §6: FromStr(hint) -> Name, producing a globally unique
// name whose printable form contains the hint and which never
// collides with a name already present in the module being
// transformed.
package namesupply

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/walk"
)

// Supply mints fresh, collision-free names. It is single-threaded and
// process-local (spec.md §5): a Supply instance is scoped to one call
// to Transform and is never shared across goroutines.
type Supply struct {
	used    map[core.Name]struct{}
	counter uint64
}

// New creates an empty Supply with no reserved names.
func New() *Supply {
	return &Supply{used: make(map[core.Name]struct{})}
}

// NewFromModule creates a Supply seeded with every name already present
// in m, so that freshly minted names are guaranteed distinct from
// anything the renamer already produced.
func NewFromModule(m *core.Module) *Supply {
	s := New()
	for _, n := range walk.CollectModuleNames(m) {
		s.used[n] = struct{}{}
	}
	return s
}

// Reserve marks name as taken, so future FromStr calls will skip past
// it. Useful when a caller mints a name outside the supply (e.g. a
// hand-written test fixture) and wants later fresh names to avoid it.
func (s *Supply) Reserve(name core.Name) {
	s.used[name] = struct{}{}
}

// FromStr returns a fresh Name whose printable form contains hint and
// which has not been returned before and does not collide with any
// name reserved via Reserve or NewFromModule.
//
// hint is normalized to Unicode NFC first: a hint may be taken from
// surface-syntax identifier text (the lifter itself passes its
// configured supercombinator hint, "#sc" by default), and normalizing
// at the point of minting keeps
// the printable form stable regardless of how the source text was
// encoded, following the same rationale as the lexer's own NFC
// normalization of source text.
func (s *Supply) FromStr(hint string) core.Name {
	normalized := string(norm.NFC.Bytes([]byte(hint)))
	for {
		s.counter++
		candidate := core.Name(fmt.Sprintf("%s$%d", normalized, s.counter))
		if _, taken := s.used[candidate]; !taken {
			s.used[candidate] = struct{}{}
			return candidate
		}
	}
}
