package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"wrapgen/common"
	"wrapgen/report"

	"github.com/pelletier/go-toml"
)

// ErrNoBindings is returned when a build is requested from a configuration
// that lists no bindings.
var ErrNoBindings = errors.New("no bindings specified")

// Binding is a single header to generate bindings for.
type Binding struct {
	Header string `toml:"header"`
	Output string `toml:"output,omitempty"`
}

// Config is the configuration of a wrapgen run.  It is usually loaded from a
// `wrapgen.toml` file.
type Config struct {
	IncludeDirs []string   `toml:"include-dirs,omitempty"`
	Defines     []string   `toml:"defines,omitempty"`
	TargetOS    string     `toml:"target-os,omitempty"`
	TargetArch  string     `toml:"target-arch,omitempty"`
	KeepGoing   bool       `toml:"keep-going"`
	LogLevel    string     `toml:"log-level,omitempty"`
	Bindings    []*Binding `toml:"bindings"`

	// Root is the directory relative paths in the configuration are resolved
	// against: the directory containing the configuration file.
	Root string `toml:"-"`
}

// DefaultConfig returns the configuration used when no configuration file is
// given.  It targets the host platform.
func DefaultConfig() *Config {
	return &Config{
		TargetOS:   runtime.GOOS,
		TargetArch: runtime.GOARCH,
		LogLevel:   "verbose",
		Root:       ".",
	}
}

// fillDefaults sets the values left empty by a configuration file.  The host
// platform is only used when no target is given at all.
func (c *Config) fillDefaults() {
	def := DefaultConfig()

	if c.TargetOS == "" && c.TargetArch == "" {
		c.TargetOS, c.TargetArch = def.TargetOS, def.TargetArch
	}

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// LoadConfig loads the configuration file at path.  Unset values are taken
// from DefaultConfig and environment overrides are applied on top of the file.
func LoadConfig(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Root = filepath.Dir(path)
	cfg.fillDefaults()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable and fills in the default
// output path of every binding that does not name one.
func (c *Config) Validate() error {
	if _, err := report.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	if (c.TargetOS == "") != (c.TargetArch == "") {
		return errors.New("target-os and target-arch must be specified together")
	}

	outputs := make(map[string]string)
	for i, b := range c.Bindings {
		if b.Header == "" {
			return fmt.Errorf("binding %d is missing a header", i)
		}

		if b.Output == "" {
			b.Output = common.DefaultOutputPath(b.Header)
		}

		if !common.IsStdout(b.Output) {
			if prev, ok := outputs[b.Output]; ok {
				return fmt.Errorf("bindings for %s and %s both write to %s", prev, b.Header, b.Output)
			}

			outputs[b.Output] = b.Header
		}
	}

	return nil
}

// RequireBindings returns ErrNoBindings if the configuration lists no
// bindings.
func (c *Config) RequireBindings() error {
	if len(c.Bindings) == 0 {
		return ErrNoBindings
	}

	return nil
}

// ResolvePath resolves a path from the configuration against its root.
// Absolute paths and the standard output marker are returned unchanged.
func (c *Config) ResolvePath(path string) string {
	if filepath.IsAbs(path) || common.IsStdout(path) || c.Root == "" {
		return path
	}

	return filepath.Join(c.Root, path)
}

// IncludePaths returns the include directories resolved against the root.
func (c *Config) IncludePaths() []string {
	paths := make([]string, len(c.IncludeDirs))
	for i, dir := range c.IncludeDirs {
		paths[i] = c.ResolvePath(dir)
	}

	return paths
}

// FindConfig searches dir and its parents for a configuration file and returns
// its path.  The returned error wraps os.ErrNotExist if there is none.
func FindConfig(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(abs, common.ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found in %s or its parents: %w", common.ConfigFileName, dir, os.ErrNotExist)
		}

		abs = parent
	}
}
