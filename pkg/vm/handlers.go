/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/value"
)

// handlerFunc implements one opcode's semantics. Handlers are responsible
// for advancing vm.ip themselves; the dispatcher never auto-advances.
type handlerFunc func(vm *VM, arg any) error

// dispatchTable is a dense, opcode-indexed table, built once at package
// init, rather than a map lookup on every instruction.
var dispatchTable [bytecode.NumOpCodes]handlerFunc

func init() {
	dispatchTable[bytecode.OpRet] = handleRet
	dispatchTable[bytecode.OpPop] = handlePop
	dispatchTable[bytecode.OpJmp] = handleJmp
	dispatchTable[bytecode.OpFjmp] = handleFjmp
	dispatchTable[bytecode.OpTjmp] = handleTjmp
	dispatchTable[bytecode.OpStr] = handleStr
	dispatchTable[bytecode.OpNum] = handleNum
	dispatchTable[bytecode.OpBool] = handleBool
	dispatchTable[bytecode.OpNil] = handleNil
	dispatchTable[bytecode.OpGetv] = handleGetv
	dispatchTable[bytecode.OpLook] = handleLook
	dispatchTable[bytecode.OpNot] = handleNot
	dispatchTable[bytecode.OpNeg] = handleNeg
	dispatchTable[bytecode.OpBop] = handleBop
	dispatchTable[bytecode.OpCall] = handleCall
	dispatchTable[bytecode.OpEcho] = handleEcho
	dispatchTable[bytecode.OpOpt] = handleOpt
	dispatchTable[bytecode.OpWait] = handleWait
}

// RET: if traceback non-empty, pop r and set ip = r; otherwise move ip to
// the end of the program and yield, so the program is finished.
func handleRet(vm *VM, _ any) error {
	r, ok := vm.traceback.pop()
	if !ok {
		vm.ip = len(vm.program.Instructions)
		vm.yield = true
		return nil
	}
	vm.ip = r
	if vm.ip >= len(vm.program.Instructions) {
		vm.yield = true
	}
	return nil
}

// POP: discard the top of stack.
func handlePop(vm *VM, _ any) error {
	vm.pop()
	vm.adv(1)
	return nil
}

// JMP d: unconditional relative jump.
func handleJmp(vm *VM, arg any) error {
	d, err := argInt(vm, arg)
	if err != nil {
		return err
	}
	vm.adv(d)
	return nil
}

// FJMP d: jump if the top of stack is Nil or falsy, leaving the value on
// the stack either way.
func handleFjmp(vm *VM, arg any) error {
	d, err := argInt(vm, arg)
	if err != nil {
		return err
	}
	top := vm.peek()
	if !top.Truthy() {
		vm.adv(d)
	} else {
		vm.adv(1)
	}
	return nil
}

// TJMP d: push the return address (the instruction immediately after this
// one) onto the traceback, then jump -- used to enter subroutines so a
// later RET resumes right after the call site.
func handleTjmp(vm *VM, arg any) error {
	d, err := argInt(vm, arg)
	if err != nil {
		return err
	}
	vm.traceback.push(vm.ip + 1)
	vm.adv(d)
	return nil
}

// STR: push a string literal.
func handleStr(vm *VM, arg any) error {
	s, ok := arg.(string)
	if !ok {
		return errs.NewExecutionError(vm.ip, "STR argument must be a string, got %T", arg)
	}
	vm.stack.push(value.String(s))
	vm.adv(1)
	return nil
}

// NUM: push a number literal.
func handleNum(vm *VM, arg any) error {
	n, ok := arg.(float64)
	if !ok {
		return errs.NewExecutionError(vm.ip, "NUM argument must be a number, got %T", arg)
	}
	vm.stack.push(value.Number(n))
	vm.adv(1)
	return nil
}

// BOOL: push a boolean literal.
func handleBool(vm *VM, arg any) error {
	b, ok := arg.(bool)
	if !ok {
		return errs.NewExecutionError(vm.ip, "BOOL argument must be a bool, got %T", arg)
	}
	vm.stack.push(value.Bool(b))
	vm.adv(1)
	return nil
}

// NIL: push Nil.
func handleNil(vm *VM, _ any) error {
	vm.stack.push(value.Nil())
	vm.adv(1)
	return nil
}

// GETV name: push variables[name] if present, else push Nil.
func handleGetv(vm *VM, arg any) error {
	name, ok := arg.(string)
	if !ok {
		return errs.NewExecutionError(vm.ip, "GETV argument must be a string, got %T", arg)
	}
	if v, ok := vm.Variables[name]; ok {
		vm.stack.push(v)
	} else {
		vm.stack.push(value.Nil())
	}
	vm.adv(1)
	return nil
}

// LOOK: pop parent, pop child, push parent[child] (object indexing). As
// with BOP, the pop order is fixed to the stack top down, so the key is
// pushed first and the object is pushed last.
func handleLook(vm *VM, _ any) error {
	parent := vm.pop()
	child := vm.pop()

	if parent.Kind() != value.KindObject {
		return errs.NewExecutionError(vm.ip, "LOOK: expected an object, got %v", parent.Kind())
	}
	if child.Kind() != value.KindString {
		return errs.NewExecutionError(vm.ip, "LOOK: expected a string key, got %v", child.Kind())
	}

	result, ok := parent.AsObject()[child.AsString()]
	if !ok {
		result = value.Nil()
	}
	vm.stack.push(result)
	vm.adv(1)
	return nil
}

// NOT: replace the top with its logical negation. Nil and falsy -> true,
// else false.
func handleNot(vm *VM, _ any) error {
	top := vm.pop()
	vm.stack.push(value.Bool(!top.Truthy()))
	vm.adv(1)
	return nil
}

// NEG: replace the top with its arithmetic negation.
func handleNeg(vm *VM, _ any) error {
	top := vm.pop()
	if top.Kind() != value.KindNumber {
		return errs.NewExecutionError(vm.ip, "NEG: expected a number, got %v", top.Kind())
	}
	vm.stack.push(value.Number(-top.AsNumber()))
	vm.adv(1)
	return nil
}

// BOP op: pop left, pop right, push op(left, right). Pop order is fixed:
// arguments are popped from the stack top in the order the compiler pushed
// them, so "left" (arg 0) is the last one pushed and is popped first.
func handleBop(vm *VM, arg any) error {
	operator, ok := arg.(bytecode.Operator)
	if !ok {
		return errs.NewExecutionError(vm.ip, "BOP argument must be a parsed operator, got %T", arg)
	}

	left := vm.pop()
	right := vm.pop()

	result, err := applyOperator(vm.ip, operator, left, right)
	if err != nil {
		return err
	}

	vm.stack.push(result)
	vm.adv(1)
	return nil
}

// CALL n: pop the callable, pop n arguments (first popped is arg 0), and
// invoke it either via Callbacks.FunctionCall (if set) or directly.
func handleCall(vm *VM, arg any) error {
	n, err := argInt(vm, arg)
	if err != nil {
		return err
	}

	method := vm.pop()

	args := make([]value.Value, n)
	for i := 0; i < n; i++ {
		args[i] = vm.pop()
	}

	if vm.YieldAtFunctionCall {
		vm.yield = true
	}

	if vm.Callbacks.FunctionCall != nil {
		result, callErr := vm.Callbacks.FunctionCall(vm, method, args)
		if callErr != nil {
			return errs.NewExecutionError(vm.ip, "function call failed: %v", callErr)
		}
		vm.stack.push(result)
	} else {
		if method.Kind() == value.KindNil {
			return errs.NewExecutionError(vm.ip, "CALL: method is Nil and no functionCall callback is set")
		}
		if method.Kind() != value.KindFunction {
			return errs.NewExecutionError(vm.ip, "CALL: expected a function, got %v", method.Kind())
		}
		result, callErr := method.AsFunction()(args)
		if callErr != nil {
			return errs.NewExecutionError(vm.ip, "function call failed: %v", callErr)
		}
		vm.stack.push(result)
	}

	vm.adv(1)
	return nil
}

// ECHO: pop the top and hand it to Callbacks.Echo, if set.
func handleEcho(vm *VM, _ any) error {
	top := vm.pop()
	if vm.Callbacks.Echo != nil {
		vm.Callbacks.Echo(vm, top)
	}
	vm.adv(1)
	return nil
}

// OPT n: pop n args (first popped is arg 0), record (ip, args) in the
// option registry, and hand args to Callbacks.Option, if set.
func handleOpt(vm *VM, arg any) error {
	n, err := argInt(vm, arg)
	if err != nil {
		return err
	}

	args := make([]value.Value, n)
	for i := 0; i < n; i++ {
		args[i] = vm.pop()
	}

	vm.options.record(vm.ip, args)

	if vm.Callbacks.Option != nil {
		vm.Callbacks.Option(vm, args)
	}

	vm.adv(1)
	return nil
}

// WAIT: suspend execution, notifying the host via Callbacks.Wait.
func handleWait(vm *VM, _ any) error {
	vm.yield = true
	if vm.Callbacks.Wait != nil {
		vm.Callbacks.Wait(vm)
	}
	vm.adv(1)
	return nil
}

// argInt extracts an already-typed int operand, as both loaders produce for
// jump distances and argument counts.
func argInt(vm *VM, arg any) (int, error) {
	n, ok := arg.(int)
	if !ok {
		return 0, errs.NewExecutionError(vm.ip, "expected an integer argument, got %T", arg)
	}
	return n, nil
}
