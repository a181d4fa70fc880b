/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import "testing"

func sampleProgram() *Program {
	return &Program{
		Header: Header{BytecodeVersion: "0.1.0"},
		Instructions: []Instruction{
			{Op: OpStr, Arg: "hello\nworld"},
			{Op: OpEcho},
			{Op: OpNum, Arg: 3.5},
			{Op: OpBool, Arg: true},
			{Op: OpBop, Arg: OpAdd},
			{Op: OpJmp, Arg: -2},
			{Op: OpOpt, Arg: 2},
			{Op: OpWait},
		},
	}
}

func TestEncodeTextRoundTrip(t *testing.T) {
	original := sampleProgram()

	text, err := EncodeText(original)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}

	reloaded, loadErr := LoadText(text, false, nil)
	if loadErr != nil {
		t.Fatalf("LoadText on encoded text: %v", loadErr)
	}

	if reloaded.Hash() != original.Hash() {
		t.Errorf("round-tripping through EncodeText/LoadText changed the program hash")
	}
}

func TestEncodeStructuredRoundTrip(t *testing.T) {
	original := sampleProgram()

	doc, err := EncodeStructured(original)
	if err != nil {
		t.Fatalf("EncodeStructured: %v", err)
	}

	reloaded, loadErr := LoadStructured(doc, nil)
	if loadErr != nil {
		t.Fatalf("LoadStructured on encoded doc: %v", loadErr)
	}

	if reloaded.Hash() != original.Hash() {
		t.Errorf("round-tripping through EncodeStructured/LoadStructured changed the program hash")
	}
}

func TestEncodeTextEscapesStrings(t *testing.T) {
	p := &Program{
		Header:       Header{BytecodeVersion: "0.1.0"},
		Instructions: []Instruction{{Op: OpStr, Arg: "a\nb\tc\\d"}},
	}
	text, err := EncodeText(p)
	if err != nil {
		t.Fatalf("EncodeText: %v", err)
	}
	reloaded, loadErr := LoadText(text, false, nil)
	if loadErr != nil {
		t.Fatalf("LoadText: %v", loadErr)
	}
	got := reloaded.Instructions[0].Arg.(string)
	want := "a\nb\tc\\d"
	if got != want {
		t.Errorf("round-tripped STR argument = %q, want %q", got, want)
	}
}

func TestEncodeStructuredPreservesExtraHeaderFields(t *testing.T) {
	p := &Program{
		Header: Header{
			BytecodeVersion: "0.1.0",
			Extra:           map[string]any{"sourceFile": "story.rmd"},
		},
		Instructions: []Instruction{{Op: OpWait}},
	}
	doc, err := EncodeStructured(p)
	if err != nil {
		t.Fatalf("EncodeStructured: %v", err)
	}
	reloaded, loadErr := LoadStructured(doc, nil)
	if loadErr != nil {
		t.Fatalf("LoadStructured: %v", loadErr)
	}
	if reloaded.Header.Extra["sourceFile"] != "story.rmd" {
		t.Errorf("extra header field did not survive the round trip, got %#v", reloaded.Header.Extra)
	}
}
