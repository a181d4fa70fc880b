/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "hollicode",
	SilenceUsage: true,
	Short:        "Hollicode runs and inspects interactive-fiction bytecode",
	Long: `Hollicode is a virtual machine for interactive-fiction bytecode:
it runs ".hlct"/".hlcj" programs, converts between the two formats, and
disassembles them. Compiling source into bytecode is someone else's job.`,
}

func init() {
	rootCmd.AddCommand(runCmd, disassembleCmd, buildCmd, testCmd)
}
