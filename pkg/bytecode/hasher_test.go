/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import "testing"

func TestHashDeterministic(t *testing.T) {
	src := "{\"bytecodeVersion\":\"0.1.0\"}\nSTR hi\nECHO\nWAIT\n"

	p1, err := LoadText(src, false, nil)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	p2, err := LoadText(src, false, nil)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}

	if p1.Hash() != p2.Hash() {
		t.Error("hashing two programs loaded from byte-identical source should produce equal hashes")
	}
}

func TestHashDiffersOnContent(t *testing.T) {
	a, err := LoadText("{\"bytecodeVersion\":\"0.1.0\"}\nSTR a\nECHO\nWAIT\n", false, nil)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	b, err := LoadText("{\"bytecodeVersion\":\"0.1.0\"}\nSTR b\nECHO\nWAIT\n", false, nil)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}

	if a.Hash() == b.Hash() {
		t.Error("programs differing in instruction content should hash differently")
	}
}

func TestHashStringIsHex(t *testing.T) {
	p, err := LoadText("{\"bytecodeVersion\":\"0.1.0\"}\nWAIT\n", false, nil)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	s := p.Hash().String()
	if len(s) != 64 {
		t.Errorf("hash string length = %d, want 64 (sha256 hex)", len(s))
	}
}
