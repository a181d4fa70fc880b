/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package vm implements the Hollicode virtual machine: the stack-based
// interpreter that executes a bytecode.Program, suspending at WAIT and
// end-of-program, and resuming via the host-driven GoToOption/Push/Run API.
//
// A VM is not safe for concurrent use by multiple goroutines; the intended
// concurrency model is one VM per goroutine, with independent VM instances
// sharing nothing.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/value"
)

// VM is a Hollicode Virtual Machine: a struct wrapping an operand stack and
// the program being executed, with host-tunable fields set before the run
// starts. Output goes through four optional Callbacks rather than a single
// writer, plus a separate Diagnostics sink for non-fatal Warnings.
type VM struct {
	// Variables is host-writable; GETV reads from it.
	Variables map[string]value.Value

	// Functions is host-writable; resolved by host-supplied code when no
	// FunctionCall callback is set.
	Functions map[string]value.Function

	// Callbacks holds the four optional host hooks.
	Callbacks Callbacks

	// YieldAtFunctionCall, when true, makes CALL set the yield flag in
	// addition to invoking the callback/function.
	YieldAtFunctionCall bool

	// IgnoreTextBytecodeHeader skips header parsing/validation when
	// loading ".hlct" sources.
	IgnoreTextBytecodeHeader bool

	// Diagnostics receives non-fatal Warnings (unknown opcode, unknown
	// bytecode version, stack underflow, ...). Defaults to os.Stderr.
	Diagnostics io.Writer

	// DebugTraceExecution, when true, makes Run print a stack/instruction
	// trace as it executes.
	DebugTraceExecution bool

	program   *bytecode.Program
	ip        int
	stack     stack
	traceback traceback
	options   optionRegistry
	yield     bool
}

// New returns a new, empty Virtual Machine. A program must be loaded with
// Load or LoadFile before Run is called.
func New() *VM {
	return &VM{
		Variables:   make(map[string]value.Value),
		Functions:   make(map[string]value.Function),
		Diagnostics: os.Stderr,
	}
}

// Load installs program into the VM, resetting all execution state (ip,
// operand stack, traceback, pending options, yield flag). Variables,
// Functions and Callbacks are left untouched, so a host may configure them
// either before or after Load.
func (vm *VM) Load(program *bytecode.Program) {
	vm.program = program
	vm.ip = 0
	vm.stack = stack{}
	vm.traceback = traceback{}
	vm.options = optionRegistry{}
	vm.yield = false
}

// LoadFile reads path from disk, infers its bytecode mode from the
// extension (overridden by modeOverride when non-nil), and loads it. Load
// warnings are forwarded to vm.Diagnostics.
func (vm *VM) LoadFile(path string, modeOverride *bytecode.Mode) *errs.LoadError {
	program, err := bytecode.LoadFile(path, modeOverride, vm.IgnoreTextBytecodeHeader, vm.warn)
	if err != nil {
		return err
	}
	vm.Load(program)
	return nil
}

// LoadSource loads program source already in memory, per the given mode.
func (vm *VM) LoadSource(src string, mode bytecode.Mode) *errs.LoadError {
	program, err := bytecode.Load(src, mode, vm.IgnoreTextBytecodeHeader, vm.warn)
	if err != nil {
		return err
	}
	vm.Load(program)
	return nil
}

// Push pushes a value onto the VM's operand stack. Exposed so the host can
// seed arguments before calling Run.
func (vm *VM) Push(v value.Value) {
	vm.stack.push(v)
}

// IP returns the VM's current 1-based instruction pointer, as seen at the
// host boundary, even though the VM stores instructions 0-indexed
// internally.
func (vm *VM) IP() int {
	return vm.ip + 1
}

// Yielded reports whether the VM is currently suspended (either from WAIT,
// end-of-program, or a CALL with YieldAtFunctionCall set).
func (vm *VM) Yielded() bool {
	return vm.yield
}

// Finished reports whether execution has run off the end of the program --
// as opposed to merely being suspended at a WAIT with more instructions
// still ahead.
func (vm *VM) Finished() bool {
	return vm.program == nil || vm.ip >= len(vm.program.Instructions)
}

// PendingOptionCount reports how many options are currently registered,
// awaiting a GoToOption call.
func (vm *VM) PendingOptionCount() int {
	return vm.options.len()
}

// Run executes instructions until the VM yields. It does not auto-resume:
// call Push/GoToOption as needed, then call Run again to continue.
func (vm *VM) Run() error {
	vm.yield = false
	for !vm.yield {
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

// step dispatches exactly one instruction. Handlers are responsible for
// advancing ip themselves -- step never auto-advances, which is what lets
// control-flow opcodes set ip freely.
func (vm *VM) step() error {
	if vm.ip >= len(vm.program.Instructions) {
		vm.yield = true
		return nil
	}
	if vm.ip < 0 {
		return errs.NewExecutionError(vm.ip, "instruction pointer went negative")
	}

	inst := vm.program.Instructions[vm.ip]

	if vm.DebugTraceExecution {
		vm.traceExecution(inst)
	}

	handler := dispatchTable[inst.Op]
	if handler == nil {
		return errs.NewExecutionError(vm.ip, "unrecognized opcode %v", inst.Op)
	}

	return handler(vm, inst.Arg)
}

func (vm *VM) traceExecution(inst bytecode.Instruction) {
	fmt.Fprintf(vm.Diagnostics, "stack: %v\n", vm.stack.data)
	fmt.Fprintln(vm.Diagnostics, vm.program.DisassembleInstruction(vm.ip, inst))
}

// warn reports a non-fatal Warning to vm.Diagnostics.
func (vm *VM) warn(w errs.Warning) {
	if vm.Diagnostics == nil {
		return
	}
	fmt.Fprintln(vm.Diagnostics, w.String())
}

// pop pops the top of the operand stack. Underflow is a Warning, not a
// fatal error: popping an empty stack emits a diagnostic and returns Nil.
func (vm *VM) pop() value.Value {
	v, ok := vm.stack.pop()
	if !ok {
		vm.warn(errs.NewWarning("pop on empty operand stack at ip=%d, returning Nil", vm.ip))
	}
	return v
}

// peek returns the top of the operand stack without removing it. Underflow
// behaves like pop: a Warning, and Nil.
func (vm *VM) peek() value.Value {
	v, ok := vm.stack.peek()
	if !ok {
		vm.warn(errs.NewWarning("peek on empty operand stack at ip=%d, returning Nil", vm.ip))
	}
	return v
}

// adv advances the instruction pointer by d (default 1 for most handlers).
func (vm *VM) adv(d int) {
	vm.ip += d
}
