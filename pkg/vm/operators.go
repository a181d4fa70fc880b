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

// applyOperator implements BOP's per-operator semantics. A mismatched operand
// pair (e.g. "a" - 1) is a runtime error, not a silently coerced result --
// handlers check tags rather than attempting cross-kind arithmetic.
func applyOperator(ip int, op bytecode.Operator, left, right value.Value) (value.Value, error) {
	switch op {
	case bytecode.OpAnd:
		return value.Bool(left.Truthy() && right.Truthy()), nil
	case bytecode.OpOr:
		return value.Bool(left.Truthy() || right.Truthy()), nil
	case bytecode.OpEq:
		return value.Bool(value.Equal(left, right)), nil
	case bytecode.OpNe:
		return value.Bool(!value.Equal(left, right)), nil
	}

	if op == bytecode.OpAdd && left.Kind() == value.KindString && right.Kind() == value.KindString {
		return value.String(left.AsString() + right.AsString()), nil
	}

	if left.Kind() != value.KindNumber || right.Kind() != value.KindNumber {
		return value.Value{}, errs.NewExecutionError(ip,
			"BOP %v: incompatible operand kinds %v and %v", op, left.Kind(), right.Kind())
	}

	l, r := left.AsNumber(), right.AsNumber()

	switch op {
	case bytecode.OpGt:
		return value.Bool(l > r), nil
	case bytecode.OpLt:
		return value.Bool(l < r), nil
	case bytecode.OpGe:
		return value.Bool(l >= r), nil
	case bytecode.OpLe:
		return value.Bool(l <= r), nil
	case bytecode.OpAdd:
		return value.Number(l + r), nil
	case bytecode.OpSub:
		return value.Number(l - r), nil
	case bytecode.OpMul:
		return value.Number(l * r), nil
	case bytecode.OpDiv:
		if r == 0 {
			return value.Value{}, errs.NewExecutionError(ip, "BOP /: division by zero")
		}
		return value.Number(l / r), nil
	default:
		return value.Value{}, errs.NewExecutionError(ip, "unrecognized operator %v", op)
	}
}
