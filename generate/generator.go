package generate

import (
	"fmt"
	"io"
	"strings"

	"wrapgen/cdecl"

	"github.com/rs/zerolog"
)

// Reporter receives the diagnostics produced during generation.  It is kept
// separate from the output stream.
type Reporter interface {
	// ReportWarning reports a non-fatal problem.  Generation continues.
	ReportWarning(msg string)

	// ReportError reports a declaration that was skipped because it could not
	// be rendered.
	ReportError(err error)
}

// Options configures a generator.
type Options struct {
	// Policy is the error policy of the generator.  The default is
	// AbortOnError.
	Policy ErrorPolicy

	// Logger receives debug traces of generation.  No traces are produced if
	// it is nil.
	Logger *zerolog.Logger
}

// Generator is responsible for converting a translation unit into a Nim
// binding module.  A generator is bound to a single translation unit and
// output stream: independent units must use independent generators.
type Generator struct {
	// unit is the translation unit being converted.
	unit *cdecl.TranslationUnit

	// out is the stream the binding module is written to.  The generator never
	// closes it.
	out io.Writer

	// rep is where warnings and skipped declarations are reported.
	rep Reporter

	// policy is the error policy of the generator.
	policy ErrorPolicy

	// log is the debug logger.
	log zerolog.Logger

	// typedefs maps each type to the typedef entities declared with exactly
	// that type object, in scope order.
	typedefs map[cdecl.Type][]*cdecl.Entity

	// skipped is the number of declarations dropped under SkipOnError.
	skipped int
}

// NewGenerator creates a new generator for the given translation unit.
func NewGenerator(unit *cdecl.TranslationUnit, out io.Writer, rep Reporter, opts Options) *Generator {
	g := &Generator{
		unit:   unit,
		out:    out,
		rep:    rep,
		policy: opts.Policy,
		log:    zerolog.Nop(),
	}

	if opts.Logger != nil {
		g.log = *opts.Logger
	}

	if g.rep == nil {
		g.rep = discardReporter{}
	}

	return g
}

// fileHeader is the first line of every generated module.
const fileHeader = "# WARNING: Automatically generated file\n"

// Generate writes the binding module.  Declarations are emitted in four passes
// over the translation unit: typedef aliases, compound and enum bodies, global
// variables and functions.  Every name a declaration refers to is thus
// introduced before it is used.
func (g *Generator) Generate() error {
	g.buildTypedefTable()

	if err := g.write(fileHeader); err != nil {
		return err
	}

	passes := []struct {
		name string
		kind cdecl.EntityKind
		gen  func(*strings.Builder, *cdecl.Entity) error
	}{
		{"typedefs", cdecl.EntityTypedef, g.genTypedef},
		{"bodies", cdecl.EntityTypedef, g.genTypeBody},
		{"tags", cdecl.EntityTag, g.genTagBody},
		{"variables", cdecl.EntityVariable, g.genVariable},
		{"functions", cdecl.EntityFunction, g.genFunction},
	}

	for _, pass := range passes {
		g.log.Debug().
			Str("unit", g.unit.Name).
			Str("pass", pass.name).
			Int("entities", g.unit.Count(pass.kind)).
			Msg("running pass")

		for _, ent := range g.unit.Scope() {
			if ent.Kind != pass.kind {
				continue
			}

			if err := g.emit(ent, pass.gen); err != nil {
				return err
			}
		}
	}

	return nil
}

// Skipped returns the number of declarations that were left out of the output
// because they could not be rendered.
func (g *Generator) Skipped() int {
	return g.skipped
}

// emit renders a single declaration and writes it out.  The declaration is
// rendered in full before anything is written so that a failing declaration
// never leaves partial text in the output.
func (g *Generator) emit(ent *cdecl.Entity, gen func(*strings.Builder, *cdecl.Entity) error) error {
	var sb strings.Builder
	if err := gen(&sb, ent); err != nil {
		de := &DeclError{Entity: ent, Err: err}

		if g.policy == SkipOnError {
			g.rep.ReportError(de)
			g.skipped++
			return nil
		}

		return de
	}

	return g.write(sb.String())
}

func (g *Generator) write(text string) error {
	if _, err := io.WriteString(g.out, text); err != nil {
		return fmt.Errorf("writing bindings for %s: %w", g.unit.Name, err)
	}

	return nil
}

// -----------------------------------------------------------------------------

type discardReporter struct{}

func (discardReporter) ReportWarning(string) {}
func (discardReporter) ReportError(error)    {}
