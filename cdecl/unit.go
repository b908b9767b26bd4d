package cdecl

// TranslationUnit is the set of top-level declarations resulting from parsing
// one source file and its includes.
type TranslationUnit struct {
	// Name is the path of the primary source file.
	Name string

	// Entities are the top-level entities in declaration order.  This order is
	// stable and is the only ordering information available to consumers.
	Entities []*Entity
}

// Scope returns the flat, ordered list of top-level entities.
func (tu *TranslationUnit) Scope() []*Entity {
	return tu.Entities
}

// Count returns the number of top-level entities of the given kind.
func (tu *TranslationUnit) Count(kind EntityKind) int {
	n := 0
	for _, ent := range tu.Entities {
		if ent.Kind == kind {
			n++
		}
	}

	return n
}
