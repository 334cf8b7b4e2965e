// Package lifterrors provides the structured error taxonomy for
// invariant violations the lambda lifter can detect in its input or
// its own output, per spec.md §7: "a reference to a name with no scope
// count when one is expected, a negative scope count, or a missing
// type on an Id" are programmer errors, not recoverable conditions.
package lifterrors

// Error code constants, grouped by the invariant they guard.
const (
	// LIFT001 indicates a binder shadows a name already in scope,
	// violating the renamer's global-uniqueness precondition
	// (spec.md §3, §9 "Open question").
	LIFT001 = "LIFT001"

	// LIFT002 indicates the traversal reached a core expression form
	// outside the fixed Identifier/Literal/Apply/Lambda/Let/Case set —
	// malformed input that should have been rejected earlier in the
	// pipeline, before reaching the lifter.
	LIFT002 = "LIFT002"

	// LIFT003 indicates a scope count went negative on pop, meaning a
	// push/pop pair was mismatched.
	LIFT003 = "LIFT003"

	// LIFT004 indicates an Id reached the lifter with no type
	// attached, violating spec.md §3's "Id.get_type() is total".
	LIFT004 = "LIFT004"

	// LIFT005 indicates the lifter's own output violated one of its
	// postconditions (spec.md §3): a Lambda with a free variable, an
	// inner Let with a Lambda-valued binding, or an empty Let.
	LIFT005 = "LIFT005"
)

// ErrorInfo describes one error code, mirroring the teacher's
// internal/errors.ErrorInfo registry shape.
type ErrorInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every code to its description.
var Registry = map[string]ErrorInfo{
	LIFT001: {LIFT001, "lift", "scope", "Shadowed binder violates global-uniqueness precondition"},
	LIFT002: {LIFT002, "lift", "shape", "Unrecognized core expression form"},
	LIFT003: {LIFT003, "lift", "scope", "Scope count went negative"},
	LIFT004: {LIFT004, "lift", "type", "Id missing a type"},
	LIFT005: {LIFT005, "lift", "postcondition", "Lifter output violated a postcondition"},
}

// Lookup returns the ErrorInfo for a code.
func Lookup(code string) (ErrorInfo, bool) {
	info, ok := Registry[code]
	return info, ok
}
