package cfront

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"wrapgen/cdecl"

	"github.com/rs/zerolog"
	"modernc.org/cc/v4"
)

// ErrNoHeader is returned by Load when no header is given.
var ErrNoHeader = errors.New("no header specified")

// Options configures how a header is preprocessed and parsed.
type Options struct {
	// Header is the path of the header to load.
	Header string

	// IncludeDirs are searched for included files before the host's system
	// include directories, like `-I` options.
	IncludeDirs []string

	// Defines are predefined macros in `NAME` or `NAME=VALUE` form, like `-D`
	// options.
	Defines []string

	// TargetOS and TargetArch select the target platform using Go's names for
	// them.  The host platform is used if they are empty.
	TargetOS, TargetArch string

	// Logger receives debug traces.  It may be nil.
	Logger *zerolog.Logger
}

// Load preprocesses, parses and type checks a header and converts its
// top-level declarations.  It uses the host C compiler to discover the
// predefined macros and system include paths of the target.
func Load(opts Options) (*cdecl.TranslationUnit, error) {
	if opts.Header == "" {
		return nil, ErrNoHeader
	}

	goos, goarch := opts.TargetOS, opts.TargetArch
	if goos == "" {
		goos = runtime.GOOS
	}
	if goarch == "" {
		goarch = runtime.GOARCH
	}

	cfg, err := cc.NewConfig(goos, goarch)
	if err != nil {
		return nil, fmt.Errorf("configuring C front end for %s/%s: %w", goos, goarch, err)
	}
	cfg.Header = true

	// the directory of the including file is searched first for the quote
	// form, then the user directories, then the host directories
	cfg.IncludePaths = append(append([]string{""}, opts.IncludeDirs...), cfg.IncludePaths...)
	cfg.SysIncludePaths = append(append([]string(nil), opts.IncludeDirs...), cfg.SysIncludePaths...)

	sources := []cc.Source{
		{Name: "<predefined>", Value: cfg.Predefined},
		{Name: "<builtin>", Value: cc.Builtin},
	}
	if defs := buildDefines(opts.Defines); defs != "" {
		sources = append(sources, cc.Source{Name: "<command-line>", Value: defs})
	}
	sources = append(sources, cc.Source{Name: opts.Header, FS: cfg.FS})

	ast, err := Translate(cfg, sources)
	if err != nil {
		return nil, err
	}

	unit := Convert(ast)
	unit.Name = opts.Header

	if opts.Logger != nil {
		opts.Logger.Debug().
			Str("header", opts.Header).
			Str("target", goos+"/"+goarch).
			Int("entities", len(unit.Entities)).
			Msg("converted declarations")
	}

	return unit, nil
}

// Translate preprocesses, parses and type checks the given sources.  The last
// source is the one being translated.
func Translate(cfg *cc.Config, sources []cc.Source) (*cc.AST, error) {
	ast, err := cc.Translate(cfg, sources)
	if err != nil {
		name := "<input>"
		if len(sources) > 0 {
			name = sources[len(sources)-1].Name
		}

		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	return ast, nil
}

// buildDefines turns `-D` style definitions into preprocessor directives.
func buildDefines(defines []string) string {
	var sb strings.Builder
	for _, def := range defines {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			value = "1"
		}

		fmt.Fprintf(&sb, "#define %s %s\n", strings.TrimSpace(name), value)
	}

	return sb.String()
}
