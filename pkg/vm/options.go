/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/value"
)

// pendingOption is one entry recorded by OPT: the instruction pointer OPT
// was executed at, and the arguments it was given.
type pendingOption struct {
	ipAtOpt int
	args    []value.Value
}

// optionRegistry is the ordered set of pending choices awaiting host
// selection: a resumption point is recorded, and something else picks one --
// simplified here to a single flat, 1-based-to-the-host list.
type optionRegistry struct {
	entries []pendingOption
}

// record appends a new pending option and returns its 1-based index.
func (r *optionRegistry) record(ipAtOpt int, args []value.Value) int {
	r.entries = append(r.entries, pendingOption{ipAtOpt: ipAtOpt, args: args})
	return len(r.entries)
}

// clear empties the registry, as goToOption does once it has consumed a
// choice.
func (r *optionRegistry) clear() {
	r.entries = nil
}

// len returns how many options are currently pending.
func (r *optionRegistry) len() int {
	return len(r.entries)
}

// GoToOption resumes execution at the option the host picked:
//
//  1. k must be a valid 1-based index into the pending option registry.
//  2. The current ip is pushed onto the traceback, so a RET inside the
//     chosen branch returns control here.
//  3. ip is set to the option's ipAtOpt+2, skipping past the OPT
//     instruction and the single JMP the compiler emits immediately after
//     it to guard the option body.
//  4. The entire option registry is cleared.
//
// The host is expected to call Run again after GoToOption to actually
// resume execution.
func (vm *VM) GoToOption(k int) error {
	if k < 1 || k > vm.options.len() {
		return errs.NewExecutionError(vm.ip, "goToOption: index %d out of range (have %d pending option(s))", k, vm.options.len())
	}

	chosen := vm.options.entries[k-1]

	vm.traceback.push(vm.ip)
	vm.ip = chosen.ipAtOpt + 2
	vm.options.clear()

	return nil
}
