/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import (
	"crypto/sha256"
	"fmt"
)

// ProgramHash is a content fingerprint of a Program: its bytecode version
// plus every instruction, in order. Two programs loaded from byte-identical
// sources always produce the same hash; this is what `hollicode
// disassemble --hash` prints, and what tests check re-loading the same bytes
// against to confirm a byte-identical program results.
type ProgramHash [sha256.Size]byte

// String renders the hash as a hex string.
func (h ProgramHash) String() string {
	return fmt.Sprintf("%x", [sha256.Size]byte(h))
}

// Hash computes p's ProgramHash.
func (p *Program) Hash() ProgramHash {
	h := sha256.New()

	fmt.Fprintf(h, "v:%s\n", p.Header.BytecodeVersion)
	for _, inst := range p.Instructions {
		fmt.Fprintf(h, "%s:%v\n", inst.Op, inst.Arg)
	}

	var sum ProgramHash
	copy(sum[:], h.Sum(nil))
	return sum
}
