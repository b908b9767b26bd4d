package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"wrapgen/cdecl"
	"wrapgen/cfront"
	"wrapgen/config"
	"wrapgen/generate"
	"wrapgen/report"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answerModule = "# WARNING: Automatically generated file\nvar answer: cint\n"

// newTestRunner returns a runner that loads the given units by header name
// instead of parsing headers.
func newTestRunner(cfg *config.Config, units map[string]*cdecl.TranslationUnit) (*runner, *bytes.Buffer) {
	var stdout bytes.Buffer
	log := zerolog.Nop()

	r := newRunnerWith(cfg, report.NewReporter(&bytes.Buffer{}, report.LogLevelSilent), &log, &stdout)
	r.load = func(opts cfront.Options) (*cdecl.TranslationUnit, error) {
		unit, ok := units[opts.Header]
		if !ok {
			return nil, fmt.Errorf("parsing %s: no such file", opts.Header)
		}

		return unit, nil
	}

	return r, &stdout
}

func testUnits() map[string]*cdecl.TranslationUnit {
	return map[string]*cdecl.TranslationUnit{
		"answer.h": {Name: "answer.h", Entities: []*cdecl.Entity{cdecl.NewVariable("answer", cdecl.NewAtomic(cdecl.Int))}},
		"wide.h":   {Name: "wide.h", Entities: []*cdecl.Entity{cdecl.NewVariable("wide", cdecl.NewAtomic(cdecl.Int128))}},
	}
}

func TestRunStdout(t *testing.T) {
	r, stdout := newTestRunner(config.DefaultConfig(), testUnits())

	require.NoError(t, r.run("answer.h", "-"))
	assert.Equal(t, answerModule, stdout.String())
	assert.Equal(t, 1, r.outputs)
	assert.Equal(t, uint64(len(answerModule)), r.written)
}

func TestRunFile(t *testing.T) {
	r, stdout := newTestRunner(config.DefaultConfig(), testUnits())
	path := filepath.Join(t.TempDir(), "gen", "answer.nim")

	require.NoError(t, r.run("answer.h", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, answerModule, string(data))
	assert.Empty(t, stdout.String())
}

func TestRunAbort(t *testing.T) {
	r, _ := newTestRunner(config.DefaultConfig(), testUnits())
	path := filepath.Join(t.TempDir(), "wide.nim")

	err := r.run("wide.h", path)
	assert.ErrorIs(t, err, generate.ErrUnsupportedAtomic)
	assert.ErrorContains(t, err, "generating bindings for wide.h")

	// nothing is written for a module that failed part way
	assert.NoFileExists(t, path)
	assert.Zero(t, r.outputs)
}

func TestRunKeepGoing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.KeepGoing = true
	r, stdout := newTestRunner(cfg, testUnits())

	require.NoError(t, r.run("wide.h", "-"))
	assert.Equal(t, "# WARNING: Automatically generated file\n", stdout.String())
	assert.Equal(t, 1, r.rep.ErrorCount())
}

func TestRunLoadError(t *testing.T) {
	r, _ := newTestRunner(config.DefaultConfig(), testUnits())
	assert.ErrorContains(t, r.run("missing.h", "-"), "missing.h")
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, checkOutput("-"))
	assert.NoError(t, checkOutput(""))
	assert.ErrorIs(t, checkOutput(dir), errNoOutput)

	nested := filepath.Join(dir, "a", "b", "out.nim")
	require.NoError(t, checkOutput(nested))
	assert.DirExists(t, filepath.Dir(nested))
}

func TestBuildAll(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.KeepGoing = true
	cfg.Bindings = []*config.Binding{
		{Header: "answer.h", Output: filepath.Join(dir, "answer.nim")},
		{Header: "missing.h", Output: filepath.Join(dir, "missing.nim")},
		{Header: "wide.h", Output: filepath.Join(dir, "wide.nim")},
	}

	r, _ := newTestRunner(cfg, testUnits())
	buildAll(r, cfg)

	assert.Equal(t, 2, r.outputs)
	assert.Equal(t, 2, r.rep.ErrorCount())
	assert.FileExists(t, filepath.Join(dir, "answer.nim"))
	assert.FileExists(t, filepath.Join(dir, "wide.nim"))
	assert.NoFileExists(t, filepath.Join(dir, "missing.nim"))
}

func TestBuildAllAbort(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Bindings = []*config.Binding{
		{Header: "wide.h", Output: filepath.Join(dir, "wide.nim")},
	}

	r, _ := newTestRunner(cfg, testUnits())

	var diag bytes.Buffer
	r.rep = report.NewReporter(&diag, report.LogLevelError)
	buildAll(r, cfg)

	assert.Zero(t, r.outputs)
	assert.True(t, r.rep.AnyErrors())
	assert.Contains(t, diag.String(), "Fatal:")
	assert.Contains(t, diag.String(), "variable `wide`")
}

func TestBuildAllKeepGoingIsNotFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.KeepGoing = true
	cfg.Bindings = []*config.Binding{{Header: "missing.h", Output: "-"}}

	r, _ := newTestRunner(cfg, testUnits())

	var diag bytes.Buffer
	r.rep = report.NewReporter(&diag, report.LogLevelError)
	buildAll(r, cfg)

	assert.Equal(t, 1, r.rep.ErrorCount())
	assert.Contains(t, diag.String(), "Error:")
	assert.NotContains(t, diag.String(), "Fatal:")
}
