package cdecl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipTypedefs(t *testing.T) {
	base := NewAtomic(Int)
	inner := NewTypedef("inner_t", base)
	outer := NewTypedef("outer_t", &TypedefType{Decl: inner})

	assert.Same(t, base, SkipTypedefs(&TypedefType{Decl: outer}))
	assert.Same(t, base, SkipTypedefs(base))

	unresolved := &TypedefType{}
	assert.Same(t, unresolved, SkipTypedefs(unresolved))
}

func TestIsVoid(t *testing.T) {
	void := &VoidType{}
	alias := NewTypedef("nothing_t", void)

	assert.True(t, IsVoid(void))
	assert.True(t, IsVoid(&TypedefType{Decl: alias}))
	assert.False(t, IsVoid(NewPointer(void)))
	assert.False(t, IsVoid(NewAtomic(Int)))
}

func TestRepr(t *testing.T) {
	point := &CompoundType{Tag: "point", Members: []*Entity{NewMember("x", NewAtomic(Int))}}
	fn := &FunctionType{
		Params:   []*Entity{NewParam("fmt", NewPointer(NewAtomic(Char)))},
		Result:   NewAtomic(Int),
		Variadic: true,
	}

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"atomic", NewAtomic(ULongLong), "unsigned long long"},
		{"pointer", NewPointer(point), "struct point*"},
		{"anonymous union", &CompoundType{Union: true}, "union <anonymous>"},
		{"enum", NewEnum("color"), "enum color"},
		{"function", fn, "int (char*, ...)"},
		{"array", &ArrayType{Elem: NewAtomic(Char), Len: 16}, "char[16]"},
		{"unsized array", &ArrayType{Elem: NewAtomic(Char), Len: -1}, "char[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Repr())
		})
	}
}

func TestAddValue(t *testing.T) {
	color := NewEnum("color")
	red := color.AddValue("RED", nil)
	green := color.AddValue("GREEN", &IntegerLiteral{Text: "5"})

	assert.Equal(t, []*Entity{red, green}, color.Values)
	assert.Same(t, color, green.Type)
	assert.Equal(t, EntityEnumValue, red.Kind)
	assert.Equal(t, "-5", (&UnaryExpr{Op: OpNegate, Operand: green.Value}).Repr())
}

func TestUnitCount(t *testing.T) {
	unit := &TranslationUnit{Entities: []*Entity{
		NewTypedef("a", NewAtomic(Int)),
		NewVariable("b", NewAtomic(Int)),
		NewTypedef("c", NewAtomic(Int)),
	}}

	assert.Equal(t, 2, unit.Count(EntityTypedef))
	assert.Equal(t, 1, unit.Count(EntityVariable))
	assert.Equal(t, 0, unit.Count(EntityFunction))
	assert.Len(t, unit.Scope(), 3)
}
