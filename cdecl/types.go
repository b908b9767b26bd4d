package cdecl

import (
	"fmt"
	"strings"
)

// Type is the interface for all C type descriptors.  Types are compared by
// identity: two entities share a type only when they refer to the same type
// value, which is how anonymous compounds are tied to their typedef names.
// All implementations are pointer types.
type Type interface {
	// Repr returns the C spelling of the type.  It is used for diagnostics and
	// is not meant to be parsed.
	Repr() string

	isType()
}

// AtomicKind is the kind of a scalar C type.
type AtomicKind int

// Enumeration of atomic kinds.  The kinds from Int128 onward can be produced
// by a front end but have no foreign representation.
const (
	Char AtomicKind = iota
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Float
	Double
	LongDouble
	Bool

	Int128
	UInt128
	Float128
)

var atomicSpellings = map[AtomicKind]string{
	Char:       "char",
	SChar:      "signed char",
	UChar:      "unsigned char",
	Short:      "short",
	UShort:     "unsigned short",
	Int:        "int",
	UInt:       "unsigned int",
	Long:       "long",
	ULong:      "unsigned long",
	LongLong:   "long long",
	ULongLong:  "unsigned long long",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
	Bool:       "_Bool",
	Int128:     "__int128",
	UInt128:    "unsigned __int128",
	Float128:   "_Float128",
}

// String returns the C spelling of the atomic kind.
func (ak AtomicKind) String() string {
	if s, ok := atomicSpellings[ak]; ok {
		return s
	}

	return fmt.Sprintf("atomic(%d)", int(ak))
}

// -----------------------------------------------------------------------------

// AtomicType is a scalar built-in type.
type AtomicType struct {
	Kind AtomicKind
}

func (at *AtomicType) Repr() string {
	return at.Kind.String()
}

// PointerType is a pointer to another type.
type PointerType struct {
	Elem Type
}

func (pt *PointerType) Repr() string {
	return pt.Elem.Repr() + "*"
}

// CompoundType is a struct or union type.
type CompoundType struct {
	// Union indicates whether the compound is a union: all of its members
	// start at the same storage offset.
	Union bool

	// Tag is the struct or union tag.  It is empty for anonymous compounds.
	Tag string

	// Members are the compound's members in declaration order.
	Members []*Entity
}

func (ct *CompoundType) Repr() string {
	keyword := "struct"
	if ct.Union {
		keyword = "union"
	}

	if ct.Tag == "" {
		return keyword + " <anonymous>"
	}

	return keyword + " " + ct.Tag
}

// EnumType is an enumeration.
type EnumType struct {
	// Tag is the enum tag.  It is empty for anonymous enumerations.
	Tag string

	// Values are the enumeration constants in source order.
	Values []*Entity
}

func (et *EnumType) Repr() string {
	if et.Tag == "" {
		return "enum <anonymous>"
	}

	return "enum " + et.Tag
}

// TypedefType is a reference to a type through a typedef name.
type TypedefType struct {
	// Decl is the typedef entity being referred to.  It may be nil if the
	// front end could not resolve the name.
	Decl *Entity
}

func (tt *TypedefType) Repr() string {
	if tt.Decl == nil {
		return "<unresolved typedef>"
	}

	return tt.Decl.Name
}

// FunctionType is the type of a function or of the target of a function
// pointer.
type FunctionType struct {
	Params   []*Entity
	Result   Type
	Variadic bool
}

func (ft *FunctionType) Repr() string {
	params := make([]string, len(ft.Params))
	for i, param := range ft.Params {
		params[i] = param.Type.Repr()
	}

	if ft.Variadic {
		params = append(params, "...")
	}

	return fmt.Sprintf("%s (%s)", ft.Result.Repr(), strings.Join(params, ", "))
}

// VoidType is the C `void` type.
type VoidType struct{}

func (vt *VoidType) Repr() string {
	return "void"
}

// ComplexType is a `_Complex` or `_Imaginary` floating type.
type ComplexType struct {
	Imaginary bool
}

func (ct *ComplexType) Repr() string {
	if ct.Imaginary {
		return "_Imaginary"
	}

	return "_Complex"
}

// ArrayType is a C array type.  A negative length denotes an array of unknown
// size.
type ArrayType struct {
	Elem Type
	Len  int64
}

func (at *ArrayType) Repr() string {
	if at.Len < 0 {
		return at.Elem.Repr() + "[]"
	}

	return fmt.Sprintf("%s[%d]", at.Elem.Repr(), at.Len)
}

// OtherType is a type the model does not represent, such as vector or decimal
// floating types.
type OtherType struct {
	Desc string
}

func (ot *OtherType) Repr() string {
	return ot.Desc
}

func (*AtomicType) isType()   {}
func (*PointerType) isType()  {}
func (*CompoundType) isType() {}
func (*EnumType) isType()     {}
func (*TypedefType) isType()  {}
func (*FunctionType) isType() {}
func (*VoidType) isType()     {}
func (*ComplexType) isType()  {}
func (*ArrayType) isType()    {}
func (*OtherType) isType()    {}

// -----------------------------------------------------------------------------

// SkipTypedefs follows typedef references until it reaches a type that is not
// a typedef reference or a typedef that cannot be resolved.
func SkipTypedefs(typ Type) Type {
	for {
		tt, ok := typ.(*TypedefType)
		if !ok || tt.Decl == nil || tt.Decl.Type == nil {
			return typ
		}

		typ = tt.Decl.Type
	}
}

// IsVoid returns whether a type is `void`, possibly through typedef names.
func IsVoid(typ Type) bool {
	_, ok := SkipTypedefs(typ).(*VoidType)
	return ok
}
