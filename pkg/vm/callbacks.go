/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"github.com/spindlebink/hollicode/pkg/value"
)

// Callbacks holds the four host hooks the VM invokes synchronously as it
// runs. All four are optional; an absent callback is silently skipped
// (CALL with an absent FunctionCall and a Nil method is the one exception --
// that's always fatal).
type Callbacks struct {
	// Echo is invoked once per ECHO instruction, with the popped value.
	Echo func(vm *VM, v value.Value)

	// Option is invoked once per OPT instruction, with the popped
	// arguments (arg 0 is the last one pushed by the compiler).
	Option func(vm *VM, args []value.Value)

	// Wait is invoked once per WAIT instruction.
	Wait func(vm *VM)

	// FunctionCall is invoked by CALL instead of calling the method
	// directly, when set.
	FunctionCall func(vm *VM, fn value.Value, args []value.Value) (value.Value, error)
}
