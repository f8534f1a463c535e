package tplengine

import (
	"errors"
	"fmt"
	"regexp"
)

// UndefinedPropertyError reports a template referencing a key that the active
// property mapping does not define. Surfacing this instead of rendering a
// blank keeps template/property mismatches visible.
type UndefinedPropertyError struct {
	Template string
	Key      string
	Err      error
}

func (e *UndefinedPropertyError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("template %q references undefined property %q", e.Template, e.Key)
	}
	return fmt.Sprintf("template %q references an undefined property: %v", e.Template, e.Err)
}

func (e *UndefinedPropertyError) Unwrap() error {
	return e.Err
}

// IsUndefinedProperty reports whether err wraps an UndefinedPropertyError.
func IsUndefinedProperty(err error) bool {
	var target *UndefinedPropertyError
	return errors.As(err, &target)
}

// text/template reports missing keys as `map has no entry for key "name"`.
var missingKeyRe = regexp.MustCompile(`map has no entry for key "([^"]+)"`)

// classifyExecError converts a template execution failure into an
// UndefinedPropertyError when it was caused by a missing key.
func classifyExecError(name string, err error) error {
	if err == nil {
		return nil
	}
	if m := missingKeyRe.FindStringSubmatch(err.Error()); m != nil {
		return &UndefinedPropertyError{Template: name, Key: m[1], Err: err}
	}
	return fmt.Errorf("template execution error in %q: %w", name, err)
}
