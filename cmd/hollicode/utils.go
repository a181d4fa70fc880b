/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"strconv"
	"strings"

	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/value"
	"github.com/spindlebink/hollicode/pkg/vm"
)

// loadVMExitingOnError creates a VM, loads path into it (inferring the
// bytecode mode from its extension), and exits the process on any load
// error -- the common first step of every command that runs a program.
func loadVMExitingOnError(path string) *vm.VM {
	machine := vm.New()
	if err := machine.LoadFile(path, nil); err != nil {
		errs.ReportAndExit(err)
	}
	return machine
}

// parseVarFlagsExitingOnError turns a list of "name=value" strings (as
// collected by --var) into a Variables map. Values are parsed as numbers or
// booleans when they look like one; everything else is kept as a string.
func parseVarFlagsExitingOnError(assignments []string) map[string]value.Value {
	vars := make(map[string]value.Value, len(assignments))
	for _, assignment := range assignments {
		name, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			errs.ReportAndExit(errs.NewUsageError("--var expects name=value, got %q", assignment))
		}
		vars[name] = parseVarValue(raw)
	}
	return vars
}

func parseVarValue(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Number(n)
	}
	return value.String(raw)
}
