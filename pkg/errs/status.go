/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

const (
	// StatusCodeSuccess indicates a successful execution.
	StatusCodeSuccess = 0

	// StatusCodeLoadError indicates a fatal error while loading bytecode
	// (unreadable file, malformed structured input, missing header or
	// instructions array).
	StatusCodeLoadError = 1

	// StatusCodeExecutionError indicates a fatal error raised while a script
	// was running.
	StatusCodeExecutionError = 2

	// StatusCodeTestSuiteError indicates a failure while running Hollicode's
	// own golden test suite.
	StatusCodeTestSuiteError = 3

	// StatusCodeToolError indicates a miscellaneous failure of the hollicode
	// tool itself (e.g. a file could not be opened).
	StatusCodeToolError = 4

	// StatusCodeUsageError indicates the hollicode tool was invoked
	// incorrectly (bad arguments, unknown flags).
	StatusCodeUsageError = 50

	// StatusCodeInternalError indicates a bug in the VM itself.
	StatusCodeInternalError = 125
)
