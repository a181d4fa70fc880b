/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import "testing"

func TestModeFromExtension(t *testing.T) {
	cases := []struct {
		path     string
		wantMode Mode
		wantOK   bool
	}{
		{"story.hlct", ModeText, true},
		{"story.hlcj", ModeStructured, true},
		{"story.HLCT", ModeText, true},
		{"story.txt", 0, false},
		{"story", 0, false},
	}

	for _, c := range cases {
		mode, ok := ModeFromExtension(c.path)
		if ok != c.wantOK {
			t.Errorf("ModeFromExtension(%q) ok = %v, want %v", c.path, ok, c.wantOK)
			continue
		}
		if ok && mode != c.wantMode {
			t.Errorf("ModeFromExtension(%q) mode = %v, want %v", c.path, mode, c.wantMode)
		}
	}
}

func TestLoadDispatchesOnMode(t *testing.T) {
	text := "{\"bytecodeVersion\":\"0.1.0\"}\nWAIT\n"
	p, err := Load(text, ModeText, false, nil)
	if err != nil {
		t.Fatalf("Load(ModeText): %v", err)
	}
	if len(p.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(p.Instructions))
	}

	structured := `{"header": {"bytecodeVersion": "0.1.0"}, "instructions": ["WAIT"]}`
	p2, err := Load(structured, ModeStructured, false, nil)
	if err != nil {
		t.Fatalf("Load(ModeStructured): %v", err)
	}
	if len(p2.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(p2.Instructions))
	}
}
