package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"wrapgen/cdecl"
	"wrapgen/cfront"
	"wrapgen/common"
	"wrapgen/config"
	"wrapgen/generate"
	"wrapgen/report"

	"github.com/rs/zerolog"
)

// runner generates bindings with the settings of one configuration.  Its run
// method may be called from multiple goroutines.
type runner struct {
	cfg *config.Config
	rep *report.Reporter
	log *zerolog.Logger

	// load converts a header into a translation unit.
	load func(cfront.Options) (*cdecl.TranslationUnit, error)

	// stdout receives the modules whose output is the standard output.
	stdout io.Writer

	// m guards stdout and the totals below.
	m *sync.Mutex

	// outputs and written are the number of modules and bytes written.
	outputs int
	written uint64
}

func newRunnerWith(cfg *config.Config, rep *report.Reporter, log *zerolog.Logger, stdout io.Writer) *runner {
	return &runner{
		cfg:    cfg,
		rep:    rep,
		log:    log,
		load:   cfront.Load,
		stdout: stdout,
		m:      &sync.Mutex{},
	}
}

// run generates the bindings of the header at path and writes them to output.
// A module is only written once it has been generated in full.
func (r *runner) run(header, output string) error {
	if err := checkOutput(output); err != nil {
		return fmt.Errorf("writing bindings for %s to %s: %w", header, output, err)
	}

	unit, err := r.load(cfront.Options{
		Header:      header,
		IncludeDirs: r.cfg.IncludePaths(),
		Defines:     r.cfg.Defines,
		TargetOS:    r.cfg.TargetOS,
		TargetArch:  r.cfg.TargetArch,
		Logger:      r.log,
	})
	if err != nil {
		return err
	}

	policy := generate.AbortOnError
	if r.cfg.KeepGoing {
		policy = generate.SkipOnError
	}

	var buf bytes.Buffer
	g := generate.NewGenerator(unit, &buf, r.rep, generate.Options{Policy: policy, Logger: r.log})
	if err := g.Generate(); err != nil {
		return fmt.Errorf("generating bindings for %s: %w", header, err)
	}

	if n := g.Skipped(); n > 0 {
		r.rep.ReportInfo(fmt.Sprintf("skipped %d declarations of %s", n, header))
	}

	return r.write(output, buf.Bytes())
}

// reportFailure reports a binding that could not be generated.  Without
// keep-going the failure ends the run.
func (r *runner) reportFailure(err error) {
	if r.cfg.KeepGoing {
		r.rep.ReportError(err)
	} else {
		r.rep.ReportFatal("Fatal:", err)
	}
}

// write writes a generated module to path or to the standard output.
func (r *runner) write(path string, data []byte) error {
	if common.IsStdout(path) {
		r.m.Lock()
		defer r.m.Unlock()

		if _, err := r.stdout.Write(data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}

		r.m.Lock()
		defer r.m.Unlock()
	}

	r.outputs++
	r.written += uint64(len(data))
	return nil
}
