/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package errs

import (
	"errors"
	"fmt"
	"os"
)

// ReportAndExit reports the error err to the end user and exits with the
// appropriate status code. It's fine if err is nil, we handle this case here.
func ReportAndExit(err error) {
	usageErr := &UsageError{}
	loadErr := &LoadError{}
	execErr := &ExecutionError{}
	toolErr := &ToolError{}
	testSuiteErr := &TestSuite{}
	internalErr := &InternalError{}

	switch {
	case err == nil:
		os.Exit(StatusCodeSuccess)

	case errors.As(err, &usageErr):
		fmt.Printf("Usage: %v\n", usageErr)
		os.Exit(StatusCodeUsageError)

	case errors.As(err, &loadErr):
		fmt.Printf("%v\n", loadErr)
		os.Exit(StatusCodeLoadError)

	case errors.As(err, &execErr):
		fmt.Printf("%v\n", execErr)
		os.Exit(StatusCodeExecutionError)

	case errors.As(err, &toolErr):
		fmt.Printf("%v\n", toolErr)
		os.Exit(StatusCodeToolError)

	case errors.As(err, &testSuiteErr):
		fmt.Printf("%v\n", testSuiteErr)
		os.Exit(StatusCodeTestSuiteError)

	case errors.As(err, &internalErr):
		fmt.Printf("%v\n", internalErr)
		os.Exit(StatusCodeInternalError)

	default:
		fmt.Printf("Internal error: unexpected error of type %T: %v\n", err, err)
		os.Exit(StatusCodeInternalError)
	}
}
