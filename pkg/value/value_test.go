/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero number", Number(0), true},
		{"empty string", String(""), true},
	}

	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Nil(), Nil()) {
		t.Error("Nil should equal Nil")
	}
	if !Equal(Number(1), Number(1)) {
		t.Error("Number(1) should equal Number(1)")
	}
	if Equal(Number(1), Number(2)) {
		t.Error("Number(1) should not equal Number(2)")
	}
	if Equal(Number(0), Bool(false)) {
		t.Error("values of different kinds should never be equal")
	}
	if !Equal(String("a"), String("a")) {
		t.Error(`String("a") should equal String("a")`)
	}
}

func TestEqualObjectIdentity(t *testing.T) {
	fields := map[string]Value{"x": Number(1)}
	a := Object(fields)
	b := Object(fields)
	c := Object(map[string]Value{"x": Number(1)})

	if !Equal(a, b) {
		t.Error("two Objects wrapping the same map should be equal")
	}
	if Equal(a, c) {
		t.Error("two Objects wrapping different maps (even with equal contents) should not be equal")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(3.5), "3.5"},
		{String("hi"), "hi"},
	}

	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("%#v.String() = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestKindZeroValueIsNil(t *testing.T) {
	var v Value
	if v.Kind() != KindNil {
		t.Errorf("zero Value should have Kind() == KindNil, got %v", v.Kind())
	}
	if !v.IsNil() {
		t.Error("zero Value should report IsNil()")
	}
}
