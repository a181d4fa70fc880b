/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/errs"
)

// flagDisassembleHash is the value of the --hash flag of the `disassemble`
// command.
var flagDisassembleHash bool

var disassembleCmd = &cobra.Command{
	Use:   "disassemble <file>",
	Short: "Disassembles a Hollicode bytecode program",
	Long:  `Disassembles a Hollicode bytecode program (".hlct" or ".hlcj") into a readable instruction listing.`,
	Args:  cobra.ExactArgs(1),

	Run: func(cmd *cobra.Command, args []string) {
		program, loadErr := bytecode.LoadFile(args[0], nil, false, nil)
		if loadErr != nil {
			errs.ReportAndExit(loadErr)
		}

		fmt.Printf("Disassembling %s\n", args[0])
		fmt.Printf("Bytecode version: %s\n", program.Header.BytecodeVersion)
		fmt.Printf("Total %v instructions\n", program.Len())

		if flagDisassembleHash {
			fmt.Printf("Program hash: %s\n", program.Hash())
		}

		fmt.Println()
		program.Disassemble(os.Stdout)

		errs.ReportAndExit(nil)
	},
}

func init() {
	disassembleCmd.Flags().BoolVar(&flagDisassembleHash, "hash", false, "Print the program's content hash")
}
