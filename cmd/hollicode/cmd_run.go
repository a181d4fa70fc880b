/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/romutil"
	"github.com/spindlebink/hollicode/pkg/value"
	"github.com/spindlebink/hollicode/pkg/vm"
)

// flagRunTrace is the value of the --trace flag of the `run` command.
var flagRunTrace bool

// flagRunVars is the value of the --var flag of the `run` command.
var flagRunVars []string

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Runs a Hollicode bytecode program",
	Long:  `Runs a Hollicode bytecode program (".hlct" or ".hlcj"), driving echoes and option prompts over stdout/stdin.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		machine := loadVMExitingOnError(args[0])
		machine.DebugTraceExecution = flagRunTrace
		machine.Variables = parseVarFlagsExitingOnError(flagRunVars)

		mouth, ear := romutil.StdMouthAndEar()
		machine.Callbacks.Echo = func(_ *vm.VM, v value.Value) {
			mouth.Say(v.String() + "\n")
			mouth.Flush()
		}
		machine.Callbacks.Option = func(m *vm.VM, args []value.Value) {
			mouth.Say(fmt.Sprintf("%d) %v\n", m.PendingOptionCount(), args))
			mouth.Flush()
		}

		for {
			if err := machine.Run(); err != nil {
				errs.ReportAndExit(err)
			}
			if machine.PendingOptionCount() == 0 {
				if machine.Finished() {
					break
				}
				// A bare WAIT with nothing to choose from: just resume.
				continue
			}

			choice := strings.TrimSpace(ear.Listen())
			k, convErr := strconv.Atoi(choice)
			if convErr != nil {
				errs.ReportAndExit(errs.NewUsageError("invalid option choice %q: %v", choice, convErr))
			}
			if goErr := machine.GoToOption(k); goErr != nil {
				errs.ReportAndExit(goErr)
			}
		}

		errs.ReportAndExit(nil)
	},
}

func init() {
	runCmd.Flags().BoolVarP(&flagRunTrace, "trace", "t", false, "Print a stack/instruction trace as the program runs")
	runCmd.Flags().StringArrayVarP(&flagRunVars, "var", "V", []string{},
		"Set a variable before running (name=value, can be specified multiple times)")
}
