/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package vm

import (
	"testing"

	"github.com/spindlebink/hollicode/pkg/value"
)

func TestStackPushPop(t *testing.T) {
	var s stack
	s.push(value.Number(1))
	s.push(value.Number(2))

	top, ok := s.pop()
	if !ok || top.AsNumber() != 2 {
		t.Fatalf("pop = (%v, %v), want (2, true)", top, ok)
	}
	top, ok = s.pop()
	if !ok || top.AsNumber() != 1 {
		t.Fatalf("pop = (%v, %v), want (1, true)", top, ok)
	}
}

func TestStackPopUnderflow(t *testing.T) {
	var s stack
	v, ok := s.pop()
	if ok {
		t.Fatal("pop on empty stack should report ok=false")
	}
	if !v.IsNil() {
		t.Errorf("pop on empty stack should return Nil, got %v", v)
	}
}

func TestStackPeekUnderflow(t *testing.T) {
	var s stack
	v, ok := s.peek()
	if ok {
		t.Fatal("peek on empty stack should report ok=false")
	}
	if !v.IsNil() {
		t.Errorf("peek on empty stack should return Nil, got %v", v)
	}
}

func TestStackPeekDoesNotRemove(t *testing.T) {
	var s stack
	s.push(value.String("x"))
	if _, ok := s.peek(); !ok {
		t.Fatal("peek should find the pushed value")
	}
	if s.size() != 1 {
		t.Errorf("peek should not remove the value, size = %d, want 1", s.size())
	}
}

func TestTracebackPushPop(t *testing.T) {
	var tb traceback
	tb.push(5)
	tb.push(9)

	ip, ok := tb.pop()
	if !ok || ip != 9 {
		t.Fatalf("pop = (%v, %v), want (9, true)", ip, ok)
	}
	ip, ok = tb.pop()
	if !ok || ip != 5 {
		t.Fatalf("pop = (%v, %v), want (5, true)", ip, ok)
	}
	if _, ok := tb.pop(); ok {
		t.Fatal("pop on empty traceback should report ok=false")
	}
}
