/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import (
	"fmt"
)

//
// The Error interface
//

// Error is a Hollicode error: anything that can be reported to the host and
// carries a process exit code.
type Error interface {
	error
	ExitCode() int
}

//
// LoadError
//

// LoadError is a fatal error raised while loading bytecode: an unreadable
// file, a malformed structured (.hlcj) payload, or a missing header or
// instructions array. Per spec, loading failures are always fatal -- unlike
// the warnings raised for unknown opcodes or bytecode versions.
type LoadError struct {
	// Message contains a user-friendly error message.
	Message string

	// Path is the bytecode file being loaded, if any.
	Path string
}

// NewLoadError is a handy way to create a LoadError.
func NewLoadError(path, format string, a ...any) *LoadError {
	return &LoadError{
		Message: fmt.Sprintf(format, a...),
		Path:    path,
	}
}

// Error converts the LoadError to a string. Fulfills the error interface.
func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%v: %v", e.Path, e.Message)
}

// ExitCode fulfills the Error interface.
func (e *LoadError) ExitCode() int {
	return StatusCodeLoadError
}

//
// ExecutionError
//

// ExecutionError is a fatal error raised while a run was in progress: ip < 0,
// an unrecognized opcode reached the dispatcher, RET restored a non-integer,
// CALL hit a Nil method with no functionCall callback, or goToOption was
// called out of range.
type ExecutionError struct {
	// Message contains a message explaining what happened.
	Message string

	// IP is the instruction pointer at the time of the error, for
	// diagnostics. Negative if not meaningful.
	IP int
}

// NewExecutionError is a handy way to create an ExecutionError.
func NewExecutionError(ip int, format string, a ...any) *ExecutionError {
	return &ExecutionError{
		Message: fmt.Sprintf(format, a...),
		IP:      ip,
	}
}

// Error converts the ExecutionError to a string. Fulfills the error interface.
func (e *ExecutionError) Error() string {
	if e.IP < 0 {
		return fmt.Sprintf("execution error: %v", e.Message)
	}
	return fmt.Sprintf("execution error at ip=%v: %v", e.IP, e.Message)
}

// ExitCode fulfills the Error interface.
func (e *ExecutionError) ExitCode() int {
	return StatusCodeExecutionError
}

//
// ToolError
//

// ToolError is an error that happened when running the hollicode tool that
// doesn't fit any of the other error types. Could be, e.g., an error opening
// some file.
type ToolError struct {
	// Message contains a message explaining what went wrong.
	Message string
}

// NewToolError is a handy way to create a ToolError.
func NewToolError(format string, a ...any) *ToolError {
	return &ToolError{
		Message: fmt.Sprintf(format, a...),
	}
}

// Error converts the ToolError to a string. Fulfills the error interface.
func (e *ToolError) Error() string {
	return e.Message
}

// ExitCode fulfills the Error interface.
func (e *ToolError) ExitCode() int {
	return StatusCodeToolError
}

//
// TestSuite
//

// TestSuite is an error that happened when running the Hollicode golden test
// suite (i.e. when testing Hollicode itself).
type TestSuite struct {
	// TestCase contains the path to the test case that failed.
	TestCase string

	// Message contains a message explaining how the test failed.
	Message string
}

// NewTestSuite is a handy way to create a TestSuite error.
func NewTestSuite(testCase, format string, a ...any) *TestSuite {
	return &TestSuite{
		TestCase: testCase,
		Message:  fmt.Sprintf(format, a...),
	}
}

// Error converts the TestSuite to a string. Fulfills the error interface.
func (e *TestSuite) Error() string {
	return fmt.Sprintf("%v: %v", e.TestCase, e.Message)
}

// ExitCode fulfills the Error interface.
func (e *TestSuite) ExitCode() int {
	return StatusCodeTestSuiteError
}

//
// UsageError
//

// UsageError is an error that happened because the hollicode tool was called
// in the wrong way (like incorrect command-line arguments).
type UsageError struct {
	// Message contains a message explaining what happened.
	Message string
}

// NewUsageError is a handy way to create a UsageError.
func NewUsageError(format string, a ...any) *UsageError {
	return &UsageError{
		Message: fmt.Sprintf(format, a...),
	}
}

// Error converts the UsageError to a string. Fulfills the error interface.
func (e *UsageError) Error() string {
	return "Usage error: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *UsageError) ExitCode() int {
	return StatusCodeUsageError
}

//
// InternalError
//

// InternalError reports some unexpected issue with the VM itself -- like
// finding it in a state it wasn't expected to be in. It's always a bug.
type InternalError struct {
	// Message contains some message to contextualize the situation in which
	// the error happened.
	Message string
}

// NewInternalError is a handy way to create an InternalError.
func NewInternalError(format string, a ...any) *InternalError {
	return &InternalError{
		Message: fmt.Sprintf(format, a...),
	}
}

// Error converts the InternalError to a string. Fulfills the error interface.
func (e *InternalError) Error() string {
	return "Internal error: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *InternalError) ExitCode() int {
	return StatusCodeInternalError
}
