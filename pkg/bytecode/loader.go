/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package bytecode

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spindlebink/hollicode/pkg/errs"
)

// Mode selects which bytecode format to parse.
type Mode int

const (
	// ModeText parses the ".hlct" line-oriented format.
	ModeText Mode = iota
	// ModeStructured parses the ".hlcj" format.
	ModeStructured
)

// ModeFromExtension infers a Mode from a file name's extension. ok is false
// for any extension other than ".hlct" or ".hlcj".
func ModeFromExtension(path string) (mode Mode, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hlct":
		return ModeText, true
	case ".hlcj":
		return ModeStructured, true
	default:
		return 0, false
	}
}

// Load parses src according to mode. ignoreHeader only applies to
// ModeText (ModeStructured always has an explicit header object).
func Load(src string, mode Mode, ignoreHeader bool, warn func(errs.Warning)) (*Program, *errs.LoadError) {
	switch mode {
	case ModeText:
		return LoadText(src, ignoreHeader, warn)
	case ModeStructured:
		return LoadStructured(src, warn)
	default:
		return nil, errs.NewLoadError("", "unknown bytecode mode %v", mode)
	}
}

// LoadFile reads path from disk and loads it, inferring the mode from the
// file extension unless mode is explicitly provided via modeOverride.
func LoadFile(path string, modeOverride *Mode, ignoreHeader bool, warn func(errs.Warning)) (*Program, *errs.LoadError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewLoadError(path, "reading bytecode file: %v", err)
	}

	mode := ModeText
	if modeOverride != nil {
		mode = *modeOverride
	} else if inferred, ok := ModeFromExtension(path); ok {
		mode = inferred
	} else {
		return nil, errs.NewLoadError(path, "cannot infer bytecode mode from extension; expected .hlct or .hlcj")
	}

	prog, loadErr := Load(string(data), mode, ignoreHeader, warn)
	if loadErr != nil {
		loadErr.Path = path
	}
	return prog, loadErr
}
