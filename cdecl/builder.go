package cdecl

// The constructors below are shorthands for building declaration trees by hand.
// Front ends that convert a real AST use the struct literals directly.

// NewAtomic returns a new atomic type of the given kind.
func NewAtomic(kind AtomicKind) *AtomicType {
	return &AtomicType{Kind: kind}
}

// NewPointer returns a new pointer to elem.
func NewPointer(elem Type) *PointerType {
	return &PointerType{Elem: elem}
}

// NewMember returns a new compound member.
func NewMember(name string, typ Type) *Entity {
	return &Entity{Kind: EntityCompoundMember, Name: name, Type: typ}
}

// NewParam returns a new function parameter.  The name may be empty.
func NewParam(name string, typ Type) *Entity {
	return &Entity{Kind: EntityParameter, Name: name, Type: typ}
}

// NewTypedef returns a new typedef entity.
func NewTypedef(name string, typ Type) *Entity {
	return &Entity{Kind: EntityTypedef, Name: name, Type: typ}
}

// NewVariable returns a new global variable entity.
func NewVariable(name string, typ Type) *Entity {
	return &Entity{Kind: EntityVariable, Name: name, Type: typ}
}

// NewFunction returns a new function entity whose type is built from the given
// parameters and result type.
func NewFunction(name string, result Type, variadic bool, params ...*Entity) *Entity {
	return &Entity{
		Kind:   EntityFunction,
		Name:   name,
		Type:   &FunctionType{Params: params, Result: result, Variadic: variadic},
		Params: params,
	}
}

// NewEnum returns a new enumeration with the given tag.  Values are added with
// AddValue so that each value refers back to its enumeration.
func NewEnum(tag string) *EnumType {
	return &EnumType{Tag: tag}
}

// AddValue appends an enumeration constant.  The value expression may be nil.
func (et *EnumType) AddValue(name string, value Expr) *Entity {
	ent := &Entity{Kind: EntityEnumValue, Name: name, Type: et, Value: value}
	et.Values = append(et.Values, ent)
	return ent
}
