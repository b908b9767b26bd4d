package common

const (
	// WrapgenVersion is the current version of the binding generator.
	WrapgenVersion = "0.3.0"

	// ConfigFileName is the name of the configuration file searched for in the
	// working directory when no explicit path is given.
	ConfigFileName = "wrapgen.toml"

	// EnvPrefix prefixes every environment variable that overrides a
	// configuration value.
	EnvPrefix = "WRAPGEN_"

	// OutputExtension is the extension given to generated binding modules when
	// no output path is specified.
	OutputExtension = ".nim"
)
