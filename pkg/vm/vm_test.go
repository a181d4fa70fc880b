/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"testing"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/value"
)

func TestNewVMIsEmpty(t *testing.T) {
	m := New()
	if m.Variables == nil || m.Functions == nil {
		t.Fatal("New should initialize Variables and Functions")
	}
	if !m.Finished() {
		t.Error("a VM with no loaded program should report Finished")
	}
}

func TestLoadResetsExecutionState(t *testing.T) {
	m := New()
	m.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpNum, Arg: 1.0},
			{Op: bytecode.OpWait},
		},
	})
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.stack.size() != 1 {
		t.Fatalf("stack size after first run = %d, want 1", m.stack.size())
	}

	m.Load(&bytecode.Program{Instructions: []bytecode.Instruction{{Op: bytecode.OpWait}}})
	if m.stack.size() != 0 {
		t.Error("Load should reset the operand stack")
	}
	if m.IP() != 1 {
		t.Errorf("IP() after Load = %d, want 1 (1-based start)", m.IP())
	}
}

func TestFinishedVsYieldedAtWait(t *testing.T) {
	m := New()
	m.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpWait},
			{Op: bytecode.OpStr, Arg: "more"},
			{Op: bytecode.OpEcho},
		},
	})
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !m.Yielded() {
		t.Error("VM should be yielded right after WAIT")
	}
	if m.Finished() {
		t.Error("VM should not be Finished: there are more instructions after WAIT")
	}

	got := echoCapture(m)
	if err := m.Run(); err != nil {
		t.Fatalf("Run (resume): %v", err)
	}
	if !m.Finished() {
		t.Error("VM should be Finished after running off the end of the program")
	}
	if len(*got) != 1 || (*got)[0] != "more" {
		t.Fatalf("echoed values = %v, want [\"more\"]", *got)
	}
}

func TestPushSeedsOperandStack(t *testing.T) {
	m := New()
	m.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{{Op: bytecode.OpEcho}},
	})
	m.Push(value.String("seeded"))
	got := echoCapture(m)

	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(*got) != 1 || (*got)[0] != "seeded" {
		t.Fatalf("echoed values = %v, want [\"seeded\"]", *got)
	}
}

func TestNegativeIPIsExecutionError(t *testing.T) {
	m := New()
	m.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpJmp, Arg: -5},
		},
	})
	if err := m.Run(); err == nil {
		t.Fatal("jumping to a negative instruction pointer should be a fatal error")
	}
}

func TestYieldAtFunctionCall(t *testing.T) {
	fn := value.NewFunction(func(args []value.Value) (value.Value, error) {
		return value.Nil(), nil
	})
	m := New()
	m.YieldAtFunctionCall = true
	m.Variables["fn"] = fn
	m.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpGetv, Arg: "fn"},
			{Op: bytecode.OpCall, Arg: 0},
			{Op: bytecode.OpStr, Arg: "after call"},
			{Op: bytecode.OpEcho},
		},
	})
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !m.Yielded() {
		t.Error("CALL should yield when YieldAtFunctionCall is set")
	}
	if m.Finished() {
		t.Error("VM should not be Finished: more instructions remain after the CALL")
	}
}
