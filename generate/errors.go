package generate

import (
	"errors"
	"fmt"

	"wrapgen/cdecl"
)

// Errors returned by the renderers.  They are always wrapped in a DeclError
// naming the declaration that could not be rendered.
var (
	ErrUnsupportedAtomic = errors.New("unsupported atomic type")
	ErrUnsupportedExpr   = errors.New("unsupported expression")
	ErrMalformedDecl     = errors.New("malformed declaration")
)

// DeclError is an error that occurred while rendering a single top-level
// declaration.
type DeclError struct {
	Entity *cdecl.Entity
	Err    error
}

func (de *DeclError) Error() string {
	if de.Entity.Pos.IsValid() {
		return fmt.Sprintf("%s: %s `%s`: %s", de.Entity.Pos, de.Entity.Kind, de.Entity.Name, de.Err)
	}

	return fmt.Sprintf("%s `%s`: %s", de.Entity.Kind, de.Entity.Name, de.Err)
}

func (de *DeclError) Unwrap() error {
	return de.Err
}

// ErrorPolicy determines what the generator does when a declaration cannot be
// rendered.
type ErrorPolicy int

// Enumeration of error policies
const (
	// AbortOnError stops generation at the first declaration that fails.
	AbortOnError ErrorPolicy = iota

	// SkipOnError reports the failing declaration and moves on to the next.
	// Nothing of the failing declaration is written.
	SkipOnError
)

func (ep ErrorPolicy) String() string {
	if ep == SkipOnError {
		return "skip"
	}

	return "abort"
}
