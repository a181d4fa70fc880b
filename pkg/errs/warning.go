/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import "fmt"

// Warning is a non-fatal diagnostic: an unknown bytecode version, an
// unrecognized opcode skipped at load time, a pop on an empty stack, or a
// missing structured decoder needed to validate a text-format header.
// Unlike Error, a Warning never stops anything; it's only ever written to a
// Diagnostics sink.
type Warning struct {
	Message string
}

// NewWarning is a handy way to create a Warning.
func NewWarning(format string, a ...any) Warning {
	return Warning{Message: fmt.Sprintf(format, a...)}
}

// String fulfills fmt.Stringer.
func (w Warning) String() string {
	return "warning: " + w.Message
}
