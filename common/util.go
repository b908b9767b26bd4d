package common

import (
	"path/filepath"
	"strings"
)

// DefaultOutputPath derives the path of the generated module from the path of
// the header it binds: `include/foo.h` becomes `include/foo.nim`.
func DefaultOutputPath(headerPath string) string {
	ext := filepath.Ext(headerPath)
	return strings.TrimSuffix(headerPath, ext) + OutputExtension
}

// IsStdout reports whether an output path designates the standard output.
func IsStdout(path string) bool {
	return path == "" || path == "-"
}
