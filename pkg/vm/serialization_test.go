/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"bytes"
	"testing"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/value"
)

func sampleSerializationProgram() *bytecode.Program {
	return &bytecode.Program{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.OpNum, Arg: 1.0},
			{Op: bytecode.OpWait},
			{Op: bytecode.OpStr, Arg: "resumed"},
			{Op: bytecode.OpEcho},
		},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	program := sampleSerializationProgram()

	m := New()
	m.Load(program)
	m.Variables["score"] = value.Number(7)
	m.Variables["name"] = value.String("Hazel")
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored := New()
	restored.Load(program)
	if err := restored.Deserialize(&buf); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if restored.ip != m.ip {
		t.Errorf("restored ip = %d, want %d", restored.ip, m.ip)
	}
	if restored.yield != m.yield {
		t.Errorf("restored yield = %v, want %v", restored.yield, m.yield)
	}
	if restored.stack.size() != m.stack.size() {
		t.Fatalf("restored stack size = %d, want %d", restored.stack.size(), m.stack.size())
	}
	for i, v := range m.stack.data {
		if !value.Equal(v, restored.stack.data[i]) {
			t.Errorf("stack[%d] = %v, want %v", i, restored.stack.data[i], v)
		}
	}
	if !value.Equal(restored.Variables["score"], value.Number(7)) {
		t.Errorf("restored variable score = %v, want 7", restored.Variables["score"])
	}
	if !value.Equal(restored.Variables["name"], value.String("Hazel")) {
		t.Errorf("restored variable name = %v, want Hazel", restored.Variables["name"])
	}

	got := echoCapture(restored)
	if err := restored.Run(); err != nil {
		t.Fatalf("Run after Deserialize: %v", err)
	}
	if len(*got) != 1 || (*got)[0] != "resumed" {
		t.Fatalf("echoed values after resuming restored state = %v, want [\"resumed\"]", *got)
	}
}

func TestDeserializeRejectsMismatchedProgram(t *testing.T) {
	m := New()
	m.Load(sampleSerializationProgram())
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	other := New()
	other.Load(&bytecode.Program{
		Instructions: []bytecode.Instruction{{Op: bytecode.OpWait}},
	})
	if err := other.Deserialize(&buf); err == nil {
		t.Fatal("Deserialize should refuse a state saved against a different program")
	}
}

func TestSerializeFunctionValueIsError(t *testing.T) {
	fn := value.NewFunction(func(args []value.Value) (value.Value, error) {
		return value.Nil(), nil
	})

	m := New()
	m.Load(sampleSerializationProgram())
	m.Variables["fn"] = fn

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err == nil {
		t.Fatal("serializing a VM with a Function-kind variable should fail")
	}
}

func TestDeserializeRejectsCorruptedCRC(t *testing.T) {
	m := New()
	m.Load(sampleSerializationProgram())
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	restored := New()
	restored.Load(sampleSerializationProgram())
	if err := restored.Deserialize(bytes.NewReader(corrupted)); err == nil {
		t.Fatal("Deserialize should detect a corrupted CRC32 footer")
	}
}
