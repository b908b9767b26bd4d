package config

import (
	"wrapgen/common"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds the values that can be overridden from the environment,
// e.g. WRAPGEN_INCLUDE_DIRS=include,vendor/include.
type envOverrides struct {
	IncludeDirs []string `env:"INCLUDE_DIRS"`
	Defines     []string `env:"DEFINES"`
	TargetOS    string   `env:"TARGET_OS"`
	TargetArch  string   `env:"TARGET_ARCH"`
	KeepGoing   bool     `env:"KEEP_GOING"`
	LogLevel    string   `env:"LOG_LEVEL"`
}

// ApplyEnv overrides configuration values with the WRAPGEN_ environment
// variables that are set.
func (c *Config) ApplyEnv() error {
	ov := envOverrides{
		IncludeDirs: c.IncludeDirs,
		Defines:     c.Defines,
		TargetOS:    c.TargetOS,
		TargetArch:  c.TargetArch,
		KeepGoing:   c.KeepGoing,
		LogLevel:    c.LogLevel,
	}

	if err := env.ParseWithOptions(&ov, env.Options{Prefix: common.EnvPrefix}); err != nil {
		return err
	}

	c.IncludeDirs = ov.IncludeDirs
	c.Defines = ov.Defines
	c.TargetOS = ov.TargetOS
	c.TargetArch = ov.TargetArch
	c.KeepGoing = ov.KeepGoing
	c.LogLevel = ov.LogLevel
	return nil
}
