/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of every instruction in p to
// out, one line per instruction, prefixed by its 0-based index.
func (p *Program) Disassemble(out io.Writer) {
	for i, inst := range p.Instructions {
		fmt.Fprintf(out, "%s\n", p.DisassembleInstruction(i, inst))
	}
}

// DisassembleInstruction renders a single instruction at index offset, as
// "%05d OPCODE arg".
func (p *Program) DisassembleInstruction(offset int, inst Instruction) string {
	if inst.Arg == nil {
		return fmt.Sprintf("%05d %s", offset, inst.Op)
	}

	switch a := inst.Arg.(type) {
	case string:
		return fmt.Sprintf("%05d %-5s %q", offset, inst.Op, a)
	case Operator:
		return fmt.Sprintf("%05d %-5s %s", offset, inst.Op, a)
	default:
		return fmt.Sprintf("%05d %-5s %v", offset, inst.Op, a)
	}
}
