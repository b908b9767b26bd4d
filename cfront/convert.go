package cfront

import (
	"fmt"
	gotoken "go/token"
	"strings"

	"wrapgen/cdecl"

	"modernc.org/cc/v4"
	"modernc.org/token"
)

// converter converts the top-level declarations of a cc AST into a
// translation unit.  Each C compound and enum type is converted exactly once
// so that type identity carries over to the converted types.
type converter struct {
	unit *cdecl.TranslationUnit

	// declared holds the entities already declared, keyed by their kind and
	// name, so that redeclarations are merged into the first declaration.
	declared map[string]*cdecl.Entity

	// typedefs maps typedef declarators to their entities.
	typedefs map[*cc.Declarator]*cdecl.Entity

	// types holds the converted compounds and enums.  Tagged types are keyed
	// by tag; anonymous types by their first field or enumerator, which is
	// shared by every copy cc makes of the type.
	types map[any]cdecl.Type

	// filled records the converted types whose members or values have been
	// converted.
	filled map[cdecl.Type]bool

	// tagged records the types for which a tag entity exists.
	tagged map[cdecl.Type]bool
}

// Convert converts the top-level declarations of ast.  Declarations from
// pseudo files, such as the predefined macros and builtins, are left out.
func Convert(ast *cc.AST) *cdecl.TranslationUnit {
	c := &converter{
		unit:     &cdecl.TranslationUnit{},
		declared: make(map[string]*cdecl.Entity),
		typedefs: make(map[*cc.Declarator]*cdecl.Entity),
		types:    make(map[any]cdecl.Type),
		filled:   make(map[cdecl.Type]bool),
		tagged:   make(map[cdecl.Type]bool),
	}

	for l := ast.TranslationUnit; l != nil; l = l.TranslationUnit {
		ed := l.ExternalDeclaration
		switch ed.Case {
		case cc.ExternalDeclarationFuncDef:
			fd := ed.FunctionDefinition
			if !isPseudoFile(position(fd)) {
				c.declarator(fd.Declarator, true)
			}
		case cc.ExternalDeclarationDecl:
			c.declaration(ed.Declaration)
		}
	}

	return c.unit
}

func (c *converter) declaration(n *cc.Declaration) {
	if n.Case != cc.DeclarationDecl || isPseudoFile(position(n)) {
		return
	}

	// a tagged type named in the specifiers gets a tag entity so that its
	// body can be generated even when no typedef names it
	if n.DeclarationSpecifiers != nil {
		c.tag(n.DeclarationSpecifiers.Type(), position(n))
	}

	for l := n.InitDeclaratorList; l != nil; l = l.InitDeclaratorList {
		c.declarator(l.InitDeclarator.Declarator, false)
	}
}

// tag adds a tag entity for a tagged compound or enum type.
func (c *converter) tag(t cc.Type, pos gotoken.Position) {
	if t == nil || t.Typedef() != nil {
		return
	}

	var tok cc.Token
	switch x := t.(type) {
	case *cc.StructType:
		tok = x.Tag()
	case *cc.UnionType:
		tok = x.Tag()
	case *cc.EnumType:
		tok = x.Tag()
	default:
		return
	}

	tag := tok.SrcStr()

	if tag == "" {
		return
	}

	typ := c.convType(t, nil)
	if !c.tagged[typ] {
		c.tagged[typ] = true
		c.unit.Entities = append(c.unit.Entities, &cdecl.Entity{Kind: cdecl.EntityTag, Name: tag, Type: typ, Pos: pos})
	}
}

func (c *converter) declarator(d *cc.Declarator, hasBody bool) {
	name := d.Name()
	if name == "" {
		return
	}

	if d.IsTypename() {
		if c.merge("typedef "+name, false) {
			return
		}

		ent := c.typedefEntity(d)
		c.declared["typedef "+name] = ent
		c.unit.Entities = append(c.unit.Entities, ent)
		return
	}

	if ft, ok := d.Type().(*cc.FunctionType); ok {
		if c.merge("func "+name, hasBody) {
			return
		}

		params := c.params(ft)
		ent := &cdecl.Entity{
			Kind:    cdecl.EntityFunction,
			Name:    name,
			Type:    &cdecl.FunctionType{Params: params, Result: c.convType(ft.Result(), nil), Variadic: ft.IsVariadic()},
			Params:  params,
			HasBody: hasBody,
			Pos:     position(d),
		}

		c.declared["func "+name] = ent
		c.unit.Entities = append(c.unit.Entities, ent)
		return
	}

	if c.merge("var "+name, false) {
		return
	}

	ent := &cdecl.Entity{Kind: cdecl.EntityVariable, Name: name, Type: c.convType(d.Type(), nil), Pos: position(d)}
	c.declared["var "+name] = ent
	c.unit.Entities = append(c.unit.Entities, ent)
}

// merge merges a redeclaration into the existing declaration of the same name
// and returns whether there was one.
func (c *converter) merge(key string, hasBody bool) bool {
	prev, ok := c.declared[key]
	if ok && hasBody {
		prev.HasBody = true
	}

	return ok
}

// typedefEntity returns the entity of a typedef declarator.  Typedefs which
// are not declared in the converted files, such as builtin ones, get an
// entity that is not part of the translation unit.
func (c *converter) typedefEntity(d *cc.Declarator) *cdecl.Entity {
	if ent, ok := c.typedefs[d]; ok {
		return ent
	}

	ent := &cdecl.Entity{Kind: cdecl.EntityTypedef, Name: d.Name(), Pos: position(d)}
	c.typedefs[d] = ent
	ent.Type = c.convType(d.Type(), d)
	return ent
}

func (c *converter) params(ft *cc.FunctionType) []*cdecl.Entity {
	ps := ft.Parameters()

	// f(void)
	if len(ps) == 1 && ps[0].Type().Kind() == cc.Void {
		return nil
	}

	params := make([]*cdecl.Entity, 0, len(ps))
	for _, p := range ps {
		var name string
		if p.Declarator != nil {
			name = p.Declarator.Name()
		}

		params = append(params, &cdecl.Entity{Kind: cdecl.EntityParameter, Name: name, Type: c.convType(p.Type(), nil)})
	}

	return params
}

// -----------------------------------------------------------------------------

var atomicKinds = map[cc.Kind]cdecl.AtomicKind{
	cc.Char:       cdecl.Char,
	cc.SChar:      cdecl.SChar,
	cc.UChar:      cdecl.UChar,
	cc.Short:      cdecl.Short,
	cc.UShort:     cdecl.UShort,
	cc.Int:        cdecl.Int,
	cc.UInt:       cdecl.UInt,
	cc.Long:       cdecl.Long,
	cc.ULong:      cdecl.ULong,
	cc.LongLong:   cdecl.LongLong,
	cc.ULongLong:  cdecl.ULongLong,
	cc.Float:      cdecl.Float,
	cc.Double:     cdecl.Double,
	cc.LongDouble: cdecl.LongDouble,
	cc.Bool:       cdecl.Bool,
	cc.Int128:     cdecl.Int128,
	cc.UInt128:    cdecl.UInt128,
	cc.Float128:   cdecl.Float128,
}

// convType converts a cc type.  A type named through a typedef is converted
// into a reference to that typedef unless the typedef is self, the typedef
// whose own type is being converted.
func (c *converter) convType(t cc.Type, self *cc.Declarator) cdecl.Type {
	if t == nil {
		return &cdecl.VoidType{}
	}

	if td := t.Typedef(); td != nil && td != self {
		return &cdecl.TypedefType{Decl: c.typedefEntity(td)}
	}

	switch x := t.(type) {
	case *cc.PointerType:
		return &cdecl.PointerType{Elem: c.convType(x.Elem(), nil)}
	case *cc.StructType:
		tag := x.Tag()
		return c.compound(x, false, tag.SrcStr(), x.NumFields(), x.FieldByIndex)
	case *cc.UnionType:
		tag := x.Tag()
		return c.compound(x, true, tag.SrcStr(), x.NumFields(), x.FieldByIndex)
	case *cc.EnumType:
		return c.enum(x)
	case *cc.FunctionType:
		return &cdecl.FunctionType{Params: c.params(x), Result: c.convType(x.Result(), nil), Variadic: x.IsVariadic()}
	case *cc.ArrayType:
		return &cdecl.ArrayType{Elem: c.convType(x.Elem(), nil), Len: x.Len()}
	}

	if ak, ok := atomicKinds[t.Kind()]; ok {
		return &cdecl.AtomicType{Kind: ak}
	}

	switch {
	case t.Kind() == cc.Void:
		return &cdecl.VoidType{}
	case cc.IsComplexType(t):
		return &cdecl.ComplexType{}
	}

	return &cdecl.OtherType{Desc: fmt.Sprint(t)}
}

func (c *converter) compound(t cc.Type, union bool, tag string, numFields int, field func(int) *cc.Field) cdecl.Type {
	var key any = t
	switch {
	case tag != "":
		// struct and union tags share a namespace
		key = "struct " + tag
	case numFields > 0:
		key = field(0)
	}

	ct, ok := c.types[key].(*cdecl.CompoundType)
	if !ok {
		ct = &cdecl.CompoundType{Union: union, Tag: tag}
		c.types[key] = ct
	}

	if !c.filled[ct] && !t.IsIncomplete() {
		c.filled[ct] = true

		for i := 0; i < numFields; i++ {
			f := field(i)
			ct.Members = append(ct.Members, &cdecl.Entity{
				Kind: cdecl.EntityCompoundMember,
				Name: f.Name(),
				Type: c.convType(f.Type(), nil),
			})
		}
	}

	return ct
}

func (c *converter) enum(t *cc.EnumType) cdecl.Type {
	tok := t.Tag()
	tag := tok.SrcStr()
	enumerators := t.Enumerators()

	var key any = t
	switch {
	case tag != "":
		key = "enum " + tag
	case len(enumerators) > 0:
		key = enumerators[0]
	}

	et, ok := c.types[key].(*cdecl.EnumType)
	if !ok {
		et = &cdecl.EnumType{Tag: tag}
		c.types[key] = et
	}

	if !c.filled[et] && len(enumerators) > 0 {
		c.filled[et] = true

		for _, en := range enumerators {
			var value cdecl.Expr
			if en.ConstantExpression != nil {
				value = convExpr(en.ConstantExpression)
			}

			et.AddValue(en.Token.SrcStr(), value)
		}
	}

	return et
}

// convExpr converts an enumerator initializer.  Parentheses are dropped.
func convExpr(n cc.ExpressionNode) cdecl.Expr {
	for {
		switch x := n.(type) {
		case *cc.PrimaryExpression:
			switch x.Case {
			case cc.PrimaryExpressionInt:
				return &cdecl.IntegerLiteral{Text: x.Token.SrcStr()}
			case cc.PrimaryExpressionExpr:
				n = x.ExpressionList
				continue
			}
		case *cc.ConstantExpression:
			n = x.ConditionalExpression
			continue
		case *cc.ExpressionList:
			if x.ExpressionList == nil {
				n = x.AssignmentExpression
				continue
			}
		case *cc.UnaryExpression:
			switch x.Case {
			case cc.UnaryExpressionMinus:
				return &cdecl.UnaryExpr{Op: cdecl.OpNegate, Operand: convExpr(x.CastExpression)}
			case cc.UnaryExpressionNot:
				return &cdecl.UnaryExpr{Op: cdecl.OpNot, Operand: convExpr(x.CastExpression)}
			case cc.UnaryExpressionCpl:
				return &cdecl.UnaryExpr{Op: cdecl.OpComplement, Operand: convExpr(x.CastExpression)}
			case cc.UnaryExpressionPlus:
				return &cdecl.UnaryExpr{Op: cdecl.OpPlus, Operand: convExpr(x.CastExpression)}
			}
		}

		return &cdecl.OpaqueExpr{Desc: strings.TrimSpace(cc.NodeSource(n))}
	}
}

// position returns where a node starts.  cc reports positions with its own
// token package.
func position(n interface{ Position() token.Position }) gotoken.Position {
	pos := n.Position()
	return gotoken.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// isPseudoFile returns whether a position is in one of the sources that do not
// come from a file: `<predefined>`, `<builtin>` and `<command-line>`.
func isPseudoFile(pos gotoken.Position) bool {
	return strings.HasPrefix(pos.Filename, "<")
}
