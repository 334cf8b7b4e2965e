package types

// Builder provides a fluent API for constructing types, used by the
// tests (the JSON decoder in json.go builds its types directly),
// mirroring the teacher's
// internal/types/builder.go. It eliminates verbose nested struct
// literals when hand-building a core module.
type Builder struct{}

// NewBuilder creates a new type builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Int returns the Int type.
func (b *Builder) Int() Type { return &TCon{Name: "Int"} }

// Float returns the Float type.
func (b *Builder) Float() Type { return &TCon{Name: "Float"} }

// String returns the String type.
func (b *Builder) String() Type { return &TCon{Name: "String"} }

// Char returns the Char type.
func (b *Builder) Char() Type { return &TCon{Name: "Char"} }

// Bool returns the Bool type.
func (b *Builder) Bool() Type { return &TCon{Name: "Bool"} }

// Unit returns the unit type.
func (b *Builder) Unit() Type { return &TCon{Name: "()"} }

// Var creates a type variable.
func (b *Builder) Var(name string) Type { return &TVar{Name: name} }

// Con creates a named type constructor.
func (b *Builder) Con(name string) Type { return &TCon{Name: name} }

// App applies a type constructor to arguments.
func (b *Builder) App(con string, args ...Type) Type {
	if len(args) == 0 {
		return &TCon{Name: con}
	}
	return &TApp{Constructor: &TCon{Name: con}, Args: args}
}

// Fun builds a curried function type from a return type back through
// its parameters, right-associating exactly like spec.md's
// FunctionType: Fun(ret, p1, p2, p3) == p1 -> p2 -> p3 -> ret.
func (b *Builder) Fun(ret Type, params ...Type) Type {
	result := ret
	for i := len(params) - 1; i >= 0; i-- {
		result = FunctionType(params[i], result)
	}
	return result
}
