package lift

import (
	"github.com/sunholo/lambdalift/internal/core"
	"github.com/sunholo/lambdalift/internal/lifterrors"
)

// scopeTracker is the "scope" of spec.md §4.2: a mapping from Name to
// a nonnegative count of how many enclosing binders currently
// introduce that name. It is a multiset so that a single Constructor
// pattern binding the same position twice (e.g. Constructor(_, [x,
// x])) does not underflow on pop.
type scopeTracker map[core.Name]int

func newScopeTracker() scopeTracker {
	return make(scopeTracker)
}

// Count reports how many enclosing binders currently hold name.
func (s scopeTracker) Count(name core.Name) int {
	return s[name]
}

// Enter introduces a single binder (a Lambda parameter or one Let
// binding's name). It panics with LIFT001 if name is already in scope,
// since the renamer's global-uniqueness precondition rules out
// legitimate shadowing at this point in the pipeline (spec.md §9).
func (s scopeTracker) Enter(name core.Name) {
	if s[name] > 0 {
		lifterrors.Invariant(lifterrors.LIFT001, "name %q is already in scope (shadowing violates the no-shadowing precondition)", name)
	}
	s[name]++
}

// Exit removes one binder for name. It panics with LIFT003 if the
// count would go negative, indicating a mismatched Enter/Exit pair.
func (s scopeTracker) Exit(name core.Name) {
	if s[name] <= 0 {
		lifterrors.Invariant(lifterrors.LIFT003, "scope count for %q went negative on exit", name)
	}
	s[name]--
}

// EnterPatternBatch introduces every name a single pattern binds,
// tolerating repeats of the same name within names (the multiset
// contract), while still rejecting a name that was already in scope
// before this pattern started binding it.
func (s scopeTracker) EnterPatternBatch(names []core.Name) {
	seen := make(map[core.Name]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			if s[n] > 0 {
				lifterrors.Invariant(lifterrors.LIFT001, "pattern binder %q is already in scope (shadowing violates the no-shadowing precondition)", n)
			}
		}
		s[n]++
	}
}

// ExitPatternBatch reverses EnterPatternBatch.
func (s scopeTracker) ExitPatternBatch(names []core.Name) {
	for _, n := range names {
		s.Exit(n)
	}
}
