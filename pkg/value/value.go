/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// Package value implements the tagged values the Hollicode VM pushes and
// pops. Nil is a first-class Kind here, not a Go nil, so it survives a
// push/pop round trip through a stack the same way any other value does.
package value

import (
	"fmt"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Function is the opaque host handle a Function value carries. The VM never
// interprets this itself: it either hands it to callbacks.FunctionCall, or
// (when no such callback is set) calls it directly.
type Function func(args []Value) (Value, error)

// Value is a Hollicode runtime value: a tagged union with variants Nil, Bool,
// Number, String, Function and Object.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	fn   Function
	obj  map[string]Value
}

// Nil returns the Nil value.
func Nil() Value {
	return Value{kind: KindNil}
}

// Bool returns a Bool value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a Number value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String returns a String value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// NewFunction returns a Function value wrapping a host-callable handle.
func NewFunction(fn Function) Value {
	return Value{kind: KindFunction, fn: fn}
}

// Object returns an Object value wrapping a name-to-Value mapping. The map is
// not copied; callers should not mutate it after handing it to Object unless
// that shared mutation is intended.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// Kind returns the variant this Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is the Nil value.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// AsBool returns the wrapped bool. Only meaningful when Kind() == KindBool.
func (v Value) AsBool() bool {
	return v.b
}

// AsNumber returns the wrapped float64. Only meaningful when Kind() == KindNumber.
func (v Value) AsNumber() float64 {
	return v.n
}

// AsString returns the wrapped string. Only meaningful when Kind() == KindString.
func (v Value) AsString() string {
	return v.s
}

// AsFunction returns the wrapped host handle. Only meaningful when Kind() == KindFunction.
func (v Value) AsFunction() Function {
	return v.fn
}

// AsObject returns the wrapped field mapping. Only meaningful when Kind() == KindObject.
func (v Value) AsObject() map[string]Value {
	return v.obj
}

// Truthy implements Hollicode's truthiness rule: Nil and the boolean false
// are falsy, everything else (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// Equal reports whether a and b are the same value: same kind, then compare
// payload. Function and Object values are compared by identity of their
// underlying handle/map.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindFunction:
		return sameFunction(a.fn, b.fn)
	case KindObject:
		return sameObject(a.obj, b.obj)
	default:
		return false
	}
}

// String renders v in a user-friendly way, as used by ECHO tracing and error
// messages. Never used for actual program semantics.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	case KindFunction:
		return "<function>"
	case KindObject:
		return fmt.Sprintf("<object %d fields>", len(v.obj))
	default:
		return fmt.Sprintf("<unexpected kind %v>", v.kind)
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%v", n)
}
