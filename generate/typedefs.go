package generate

import "wrapgen/cdecl"

// buildTypedefTable indexes the typedefs of the translation unit by the type
// object they declare.  Lookups are by identity: a structurally identical type
// declared separately never matches.
func (g *Generator) buildTypedefTable() {
	g.typedefs = make(map[cdecl.Type][]*cdecl.Entity)

	for _, ent := range g.unit.Scope() {
		if ent.Kind == cdecl.EntityTypedef && ent.Type != nil {
			g.typedefs[ent.Type] = append(g.typedefs[ent.Type], ent)
		}
	}
}

// findTypedef returns the first typedef in scope order whose declared type is
// typ, or nil if there is none.
func (g *Generator) findTypedef(typ cdecl.Type) *cdecl.Entity {
	return g.findTypedefExcept(typ, nil)
}

// findTypedefExcept is findTypedef ignoring one typedef entity.
func (g *Generator) findTypedefExcept(typ cdecl.Type, except *cdecl.Entity) *cdecl.Entity {
	for _, ent := range g.typedefs[typ] {
		if ent != except {
			return ent
		}
	}

	return nil
}
