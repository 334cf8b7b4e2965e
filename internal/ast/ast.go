// Package ast carries the minimal source-position information that the
// lambda lifter threads through the core AST for diagnostics. The
// surface syntax tree itself is out of scope for this module; only the
// position type survives into the core representation the lifter
// consumes.
package ast

import "fmt"

// Pos identifies a single point in a source file.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

// String renders a position as "file:line:col".
func (p Pos) String() string {
	if p.File == "" && p.Line == 0 && p.Column == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
