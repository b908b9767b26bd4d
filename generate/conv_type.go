package generate

import (
	"fmt"
	"regexp"
	"strings"

	"wrapgen/cdecl"
)

// placeholderObject is used for compounds and enums with no usable name.
const placeholderObject = "object"

// placeholderPointer is used for every type with no Nim equivalent.
const placeholderPointer = "pointer"

// convType converts a C type into a Nim type expression.
func (g *Generator) convType(typ cdecl.Type) (string, error) {
	return g.convTypeExcept(typ, nil)
}

// convTypeExcept converts a type without letting the given typedef name it.
// It is used for the right-hand side of a typedef so that a typedef of an
// anonymous compound is not declared in terms of itself.
func (g *Generator) convTypeExcept(typ cdecl.Type, except *cdecl.Entity) (string, error) {
	switch v := typ.(type) {
	case *cdecl.AtomicType:
		return convAtomicType(v.Kind, false)
	case *cdecl.PointerType:
		return g.convPointerType(v)
	case *cdecl.CompoundType:
		return g.convNamedType(v, v.Tag, except), nil
	case *cdecl.EnumType:
		return g.convNamedType(v, v.Tag, except), nil
	case *cdecl.TypedefType:
		if v.Decl != nil && v.Decl.Name != "" {
			return v.Decl.Name, nil
		}

		return placeholderObject, nil
	case *cdecl.FunctionType:
		return g.convFuncType(v)
	}

	// void, complex, arrays and anything unknown
	return placeholderPointer, nil
}

func (g *Generator) convPointerType(pt *cdecl.PointerType) (string, error) {
	if at, ok := pt.Elem.(*cdecl.AtomicType); ok {
		return convAtomicType(at.Kind, true)
	}

	elem, err := g.convType(pt.Elem)
	if err != nil {
		return "", err
	}

	return "ref " + elem, nil
}

// convNamedType names a compound or enum type: by its first typedef, then by
// its tag.  A tag is only a name when no typedef names the type, since the
// body is otherwise declared under the typedef.
func (g *Generator) convNamedType(typ cdecl.Type, tag string, except *cdecl.Entity) string {
	if td := g.findTypedefExcept(typ, except); td != nil {
		return td.Name
	}

	if tag != "" && g.findTypedef(typ) == nil {
		return tag
	}

	return placeholderObject
}

func (g *Generator) convFuncType(ft *cdecl.FunctionType) (string, error) {
	params := make([]string, len(ft.Params))
	for i, param := range ft.Params {
		ptyp, err := g.convType(param.Type)
		if err != nil {
			return "", err
		}

		name := param.Name
		if param.IsAnonymous() {
			name = fmt.Sprintf("%s_%d", identFromType(ptyp), i)
		}

		params[i] = name + ": " + ptyp
	}

	result, err := g.convType(ft.Result)
	if err != nil {
		return "", err
	}

	text := fmt.Sprintf("proc (%s): %s", strings.Join(params, ", "), result)
	if ft.Variadic {
		text += " {.varargs.}"
	}

	return text, nil
}

// -----------------------------------------------------------------------------

// convAtomicType converts an atomic type.  Pointers to the character types are
// converted to `cstring` with a comment recording the original C type; all
// other atomics are converted to their plain name even behind a pointer.
func convAtomicType(kind cdecl.AtomicKind, isPointer bool) (string, error) {
	switch kind {
	case cdecl.Char:
		if isPointer {
			return "cstring #[ cchar* ]#", nil
		}
		return "cchar", nil
	case cdecl.SChar:
		if isPointer {
			return "cstring #[ cschar* ]#", nil
		}
		return "cschar", nil
	case cdecl.UChar:
		if isPointer {
			return "cstring #[ cuchar* ]#", nil
		}
		return "cuchar", nil
	case cdecl.Short:
		return "cshort", nil
	case cdecl.UShort:
		return "cushort", nil
	case cdecl.Int:
		return "cint", nil
	case cdecl.UInt:
		return "cuint", nil
	case cdecl.Long:
		return "clong", nil
	case cdecl.ULong:
		return "culong", nil
	case cdecl.LongLong:
		return "clonglong", nil
	case cdecl.ULongLong:
		return "culonglong", nil
	case cdecl.Float:
		return "cfloat", nil
	case cdecl.Double:
		return "cdouble", nil
	case cdecl.LongDouble:
		return "clongdouble", nil
	case cdecl.Bool:
		return "bool", nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedAtomic, kind)
}

var (
	nimComment  = regexp.MustCompile(`#\[.*?\]#`)
	nonIdentRun = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// identFromType turns a rendered type into an identifier prefix for unnamed
// function type parameters.
func identFromType(text string) string {
	text = nimComment.ReplaceAllString(text, "")
	text = strings.Trim(nonIdentRun.ReplaceAllString(text, "_"), "_")

	if text == "" {
		return "param"
	}

	return text
}
