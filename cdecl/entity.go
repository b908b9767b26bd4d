package cdecl

import "go/token"

// EntityKind identifies what kind of declaration an entity is.  It must be
// one of the enumerated kinds below.
type EntityKind int

// Enumeration of entity kinds
const (
	EntityTypedef        EntityKind = iota // typedef name
	EntityVariable                         // global variable
	EntityFunction                         // function declaration or definition
	EntityEnumValue                        // enumeration constant
	EntityParameter                        // function parameter
	EntityCompoundMember                   // struct or union member
	EntityTag                              // tagged struct/union/enum with no declarator
)

// String returns the name of the entity kind as it is displayed in
// diagnostics.
func (ek EntityKind) String() string {
	switch ek {
	case EntityTypedef:
		return "typedef"
	case EntityVariable:
		return "variable"
	case EntityFunction:
		return "function"
	case EntityEnumValue:
		return "enum value"
	case EntityParameter:
		return "parameter"
	case EntityCompoundMember:
		return "member"
	case EntityTag:
		return "tag"
	default:
		return "entity"
	}
}

// Entity is a single declaration of the translation unit or of one of its
// nested scopes (parameters, members, enum values).  Entities are built once
// by a front end and are never modified afterward.
type Entity struct {
	// Kind is the kind of declaration this entity represents.
	Kind EntityKind

	// Name is the declared name.  It is empty for anonymous parameters and
	// members.
	Name string

	// Type is the declared type of the entity.  For enum values it is the
	// enumeration the value belongs to.
	Type Type

	// Params is the list of parameters of a function entity.  It is the same
	// list as the one stored on its function type.
	Params []*Entity

	// HasBody indicates whether a function entity was defined with a body.
	HasBody bool

	// Value is the explicit initializer of an enum value, if any.
	Value Expr

	// Pos is where the entity is declared.  It may be the zero position for
	// entities that are not built from source text.
	Pos token.Position
}

// IsAnonymous returns whether the entity was declared without a name.
func (e *Entity) IsAnonymous() bool {
	return e.Name == ""
}

// FuncType returns the function type of a function entity or nil if the
// entity's type is not a function type.
func (e *Entity) FuncType() *FunctionType {
	ft, _ := e.Type.(*FunctionType)
	return ft
}
