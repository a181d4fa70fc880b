/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spindlebink/hollicode/pkg/bytecode"
	"github.com/spindlebink/hollicode/pkg/errs"
)

var buildCmd = &cobra.Command{
	Use:   "build <in> <out>",
	Short: "Converts a bytecode program between the text and structured formats",
	Long: `Converts a bytecode program between the text (".hlct") and structured
(".hlcj") formats. The input and output modes are each inferred from their
file extension.`,
	Args: cobra.ExactArgs(2),

	Run: func(cmd *cobra.Command, args []string) {
		inPath, outPath := args[0], args[1]

		program, loadErr := bytecode.LoadFile(inPath, nil, false, nil)
		if loadErr != nil {
			errs.ReportAndExit(loadErr)
		}

		outMode, ok := bytecode.ModeFromExtension(outPath)
		if !ok {
			errs.ReportAndExit(errs.NewUsageError("cannot infer bytecode format from output file %v", outPath))
		}

		var encoded string
		var encodeErr error
		switch outMode {
		case bytecode.ModeText:
			encoded, encodeErr = bytecode.EncodeText(program)
		case bytecode.ModeStructured:
			encoded, encodeErr = bytecode.EncodeStructured(program)
		}
		if encodeErr != nil {
			errs.ReportAndExit(errs.NewToolError("encoding %v: %v", outPath, encodeErr))
		}

		if err := os.WriteFile(outPath, []byte(encoded), 0644); err != nil {
			errs.ReportAndExit(errs.NewToolError("writing %v: %v", outPath, err))
		}

		errs.ReportAndExit(nil)
	},
}
