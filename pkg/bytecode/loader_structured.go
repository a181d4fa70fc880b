/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import (
	"encoding/json"
	"fmt"

	"github.com/spindlebink/hollicode/pkg/errs"
)

// structuredDoc mirrors the shape a ".hlcj" document decodes to: a header
// object and an instructions array whose elements are either a bare opcode
// string or a two-element [opcode, operand] tuple. Whatever actually turns
// bytes into this tree is treated as an external collaborator; this package
// only consumes its output shape. encoding/json fills that
// "decode(string) -> tree" role here.
type structuredDoc struct {
	Header       map[string]any `json:"header"`
	Instructions []any          `json:"instructions"`
}

// LoadStructured parses a ".hlcj" structured-format bytecode program from
// src. warn receives a Warning for every non-fatal problem (unknown opcode,
// unknown bytecode version); warn may be nil.
func LoadStructured(src string, warn func(errs.Warning)) (*Program, *errs.LoadError) {
	if warn == nil {
		warn = func(errs.Warning) {}
	}

	var doc structuredDoc
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		return nil, errs.NewLoadError("", "malformed structured bytecode: %v", err)
	}

	if doc.Header == nil {
		return nil, errs.NewLoadError("", "structured bytecode is missing a header object")
	}
	if doc.Instructions == nil {
		return nil, errs.NewLoadError("", "structured bytecode is missing an instructions array")
	}

	header, err := headerFromFields(doc.Header)
	if err != nil {
		return nil, err
	}
	if !CompatibleVersions[header.BytecodeVersion] {
		warn(errs.NewWarning("unknown bytecode version %q", header.BytecodeVersion))
	}

	instructions := make([]Instruction, 0, len(doc.Instructions))
	for i, raw := range doc.Instructions {
		var mnemonic string
		switch v := raw.(type) {
		case string:
			mnemonic = v
		case []any:
			if len(v) == 2 {
				mnemonic, _ = v[0].(string)
			}
		}
		if _, known := LookupOpCode(mnemonic); mnemonic != "" && !known {
			warn(errs.NewWarning("unrecognized opcode %q, skipping instruction", mnemonic))
			continue
		}

		inst, err := instructionFromElement(raw)
		if err != nil {
			return nil, errs.NewLoadError("", "instruction %d: %v", i, err)
		}
		instructions = append(instructions, inst)
	}

	return &Program{Header: header, Instructions: instructions}, nil
}

// headerFromFields builds a Header from a decoded header object, keeping
// unrecognized fields in Extra so they survive a load-then-reserialize
// round trip.
func headerFromFields(fields map[string]any) (Header, *errs.LoadError) {
	versionAny, ok := fields["bytecodeVersion"]
	if !ok {
		return Header{}, errs.NewLoadError("", "header is missing bytecodeVersion")
	}
	version, ok := versionAny.(string)
	if !ok {
		return Header{}, errs.NewLoadError("", "header bytecodeVersion must be a string")
	}

	extra := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "bytecodeVersion" {
			continue
		}
		extra[k] = v
	}

	return Header{BytecodeVersion: version, Extra: extra}, nil
}

// instructionFromElement interprets one element of the instructions array:
// either a bare opcode string, or a [opcode, operand] tuple.
func instructionFromElement(raw any) (Instruction, error) {
	switch v := raw.(type) {
	case string:
		op, ok := LookupOpCode(v)
		if !ok {
			return Instruction{}, fmt.Errorf("unrecognized opcode %q", v)
		}
		return Instruction{Op: op}, nil

	case []any:
		if len(v) != 2 {
			return Instruction{}, fmt.Errorf("instruction tuple must have exactly 2 elements, got %d", len(v))
		}
		mnemonic, ok := v[0].(string)
		if !ok {
			return Instruction{}, fmt.Errorf("instruction opcode must be a string")
		}
		op, ok := LookupOpCode(mnemonic)
		if !ok {
			return Instruction{}, fmt.Errorf("unrecognized opcode %q", mnemonic)
		}

		arg, err := structuredArg(op, v[1])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Arg: arg}, nil

	default:
		return Instruction{}, fmt.Errorf("instruction element must be a string or a 2-tuple, got %T", raw)
	}
}

// structuredArg adapts a JSON-decoded operand (already typed: float64,
// bool, or string) into the per-opcode Arg representation LoadText also
// produces, so VM handlers don't need to care which loader was used.
func structuredArg(op OpCode, raw any) (any, error) {
	switch op {
	case OpJmp, OpFjmp, OpTjmp, OpCall, OpOpt:
		n, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("opcode %v expects a numeric argument", op)
		}
		return int(n), nil

	case OpBop:
		sym, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("BOP expects a string operator argument")
		}
		operator, ok := LookupOperator(sym)
		if !ok {
			return nil, fmt.Errorf("unrecognized BOP operator %q", sym)
		}
		return operator, nil

	default:
		return raw, nil
	}
}

// parseHeaderLine parses a single structured-format header line, as used by
// the text format's first line. Shares the same JSON-based decoding as the
// structured format proper.
func parseHeaderLine(line string) (Header, *errs.LoadError) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Header{}, errs.NewLoadError("", "malformed header line: %v", err)
	}
	return headerFromFields(fields)
}
