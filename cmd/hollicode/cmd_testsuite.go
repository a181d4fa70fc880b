/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package main

import (
	"github.com/spf13/cobra"

	"github.com/spindlebink/hollicode/pkg/errs"
	hctest "github.com/spindlebink/hollicode/pkg/test"
)

// flagTestSuite is the value of the --suite flag of the `test` command.
var flagTestSuite string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Runs the Hollicode golden test suite",
	Long:  `Runs a TOML-described golden test suite (i.e., meant to test Hollicode itself).`,
	Args:  cobra.ExactArgs(0),

	Run: func(cmd *cobra.Command, args []string) {
		err := hctest.ExecuteSuite(flagTestSuite)
		errs.ReportAndExit(err)
	},
}

func init() {
	testCmd.Flags().StringVarP(&flagTestSuite, "suite", "s",
		"./test/suite", "Path to the test suite to run")
}
