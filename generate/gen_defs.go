package generate

import (
	"fmt"
	"strings"

	"wrapgen/cdecl"
)

// genTypedef generates the alias line of a typedef.  Every typedef is declared
// as a distinct type over the type it names.
func (g *Generator) genTypedef(sb *strings.Builder, ent *cdecl.Entity) error {
	typ, err := g.convTypeExcept(ent.Type, ent)
	if err != nil {
		return err
	}

	fmt.Fprintf(sb, "type %s = distinct %s\n", ent.Name, typ)
	return nil
}

// genTypeBody generates the body of a typedef which names a compound or enum
// directly.  Typedefs of any other type have no body.
func (g *Generator) genTypeBody(sb *strings.Builder, ent *cdecl.Entity) error {
	switch v := ent.Type.(type) {
	case *cdecl.CompoundType:
		return g.genCompound(sb, ent.Name, v)
	case *cdecl.EnumType:
		return g.genEnum(sb, ent.Name, v)
	}

	return nil
}

// genTagBody generates the body of a tagged compound or enum that is defined
// on its own.  If a typedef names the same type, the body is generated under
// the typedef's name instead.
func (g *Generator) genTagBody(sb *strings.Builder, ent *cdecl.Entity) error {
	if g.findTypedef(ent.Type) != nil {
		return nil
	}

	switch v := ent.Type.(type) {
	case *cdecl.CompoundType:
		if v.Tag != "" {
			return g.genCompound(sb, v.Tag, v)
		}
	case *cdecl.EnumType:
		if v.Tag != "" {
			return g.genEnum(sb, v.Tag, v)
		}
	}

	return nil
}

func (g *Generator) genCompound(sb *strings.Builder, name string, ct *cdecl.CompoundType) error {
	pragma := ""
	if ct.Union {
		pragma = " {.union.}"
	}

	fmt.Fprintf(sb, "type %s%s = object\n", name, pragma)

	for i, member := range ct.Members {
		typ, err := g.convType(member.Type)
		if err != nil {
			return err
		}

		// anonymous members are nested structs or unions
		memberName := member.Name
		if member.IsAnonymous() {
			memberName = fmt.Sprintf("anon%d", i)
		}

		fmt.Fprintf(sb, "  %s: %s\n", memberName, typ)
	}

	sb.WriteString("\n")
	return nil
}

func (g *Generator) genEnum(sb *strings.Builder, name string, et *cdecl.EnumType) error {
	fmt.Fprintf(sb, "type %s = enum\n", name)

	entries := make([]string, len(et.Values))
	for i, value := range et.Values {
		entries[i] = "  " + value.Name

		if value.Value != nil {
			expr, err := g.convExpr(value.Value)
			if err != nil {
				return err
			}

			entries[i] += " = " + expr
		}
	}

	sb.WriteString(strings.Join(entries, ",\n"))
	sb.WriteString("\n")
	return nil
}

// genVariable generates a global variable.  The variable is assumed to be
// defined by the native library so no initializer is generated.
func (g *Generator) genVariable(sb *strings.Builder, ent *cdecl.Entity) error {
	typ, err := g.convType(ent.Type)
	if err != nil {
		return err
	}

	fmt.Fprintf(sb, "var %s: %s\n", ent.Name, typ)
	return nil
}

// genFunction generates the foreign declaration of a function.  Function
// bodies are never converted: a warning is reported for each of them.
func (g *Generator) genFunction(sb *strings.Builder, ent *cdecl.Entity) error {
	if ent.HasBody {
		g.rep.ReportWarning(fmt.Sprintf("can't convert function bodies (at %s)", ent.Name))
	}

	ft, ok := cdecl.SkipTypedefs(ent.Type).(*cdecl.FunctionType)
	if !ok {
		return fmt.Errorf("%w: function has non-function type `%s`", ErrMalformedDecl, reprOf(ent.Type))
	}

	params := ent.Params
	if params == nil {
		params = ft.Params
	}

	paramTexts := make([]string, len(params))
	for i, param := range params {
		typ, err := g.convType(param.Type)
		if err != nil {
			return err
		}

		name := param.Name
		if param.IsAnonymous() {
			name = fmt.Sprintf("param%d", i)
		}

		paramTexts[i] = name + ": " + typ
	}

	fmt.Fprintf(sb, "proc %s*(%s)", ent.Name, strings.Join(paramTexts, ", "))

	if ft.Result != nil && !cdecl.IsVoid(ft.Result) {
		result, err := g.convType(cdecl.SkipTypedefs(ft.Result))
		if err != nil {
			return err
		}

		sb.WriteString(": " + result)
	}

	fmt.Fprintf(sb, " {.importc: \"%s\"", ent.Name)
	if ft.Variadic {
		sb.WriteString(", varargs")
	}
	sb.WriteString(".}\n")

	return nil
}

func reprOf(typ cdecl.Type) string {
	if typ == nil {
		return "<none>"
	}

	return typ.Repr()
}
