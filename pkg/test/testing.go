/******************************************************************************\
* Hollicode                                                                    *
* Copyright 2020-2024 The Hollicode Authors                                    *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package test

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/spindlebink/hollicode/pkg/errs"
	"github.com/spindlebink/hollicode/pkg/romutil"
	"github.com/spindlebink/hollicode/pkg/value"
	"github.com/spindlebink/hollicode/pkg/vm"
)

// config is the structure mirroring a test case TOML file.
type config struct {
	Type          string
	SourceFile    string
	Input         []string
	Output        []string
	ExitCode      int
	ErrorMessages []string

	Steps []step `toml:"step"`
}

// step is the structure mirroring a single step in a test case TOML file.
type step struct {
	Type          string
	SourceFile    string
	Input         []string
	Output        []string
	ExitCode      int
	ErrorMessages []string
}

// ExecuteSuite runs every test.toml found under suitePath.
func ExecuteSuite(suitePath string) errs.Error {
	return romutil.ForEachMatchingFileRecursive(suitePath, regexp.MustCompile("test.toml"),
		func(configPath string) errs.Error {
			return runCase(configPath)
		},
	)
}

// runCase runs the test case defined in configPath.
func runCase(configPath string) errs.Error {
	testPath := path.Dir(configPath)
	testCase := testPath

	testConf, err := readConfig(configPath)
	if err != nil {
		return err
	}
	canonicalizeConfig(testConf)
	if err := validateConfig(testCase, testConf); err != nil {
		return err
	}

	for _, step := range testConf.Steps {
		srcPath := path.Join(testPath, step.SourceFile)
		mouth := &romutil.MemoryMouth{}
		ear := romutil.NewFatefulEar(step.Input)

		runErr := runProgram(srcPath, mouth, ear)

		if runErr != nil {
			if runErr.ExitCode() != step.ExitCode {
				return errs.NewTestSuite(testCase, "expected exit code %v, got %v.", step.ExitCode, runErr.ExitCode())
			}
			for _, expectedErrMsg := range step.ErrorMessages {
				re, reErr := regexp.Compile(expectedErrMsg)
				if reErr != nil {
					return errs.NewTestSuite(testCase, "compiling regexp '%v': %v.", expectedErrMsg, reErr.Error())
				}
				if !re.MatchString(runErr.Error()) {
					return errs.NewTestSuite(testCase, "expected error message '%v', got '%v'.", expectedErrMsg, runErr.Error())
				}
			}
			// The error was expected; outputs don't matter for this step.
			continue
		}

		if len(step.Output) != len(mouth.Outputs) {
			return errs.NewTestSuite(testCase, "got %v outputs, expected %v.", len(mouth.Outputs), len(step.Output))
		}
		for i, actualOutput := range mouth.Outputs {
			if actualOutput != step.Output[i] {
				return errs.NewTestSuite(testCase, "at index %v: expected output '%v', got '%v'.", i, step.Output[i], actualOutput)
			}
		}
	}

	fmt.Printf("Test case passed: %v.\n", testPath)
	return nil
}

// runProgram loads and runs the program at path, feeding echoed values to
// mouth and resolving pending options from ear, until the program finishes
// or hits a fatal error.
func runProgram(path string, mouth romutil.Mouth, ear romutil.Ear) errs.Error {
	machine := vm.New()
	machine.Callbacks.Echo = func(_ *vm.VM, v value.Value) {
		mouth.Say(v.String())
		mouth.Flush()
	}

	if loadErr := machine.LoadFile(path, nil); loadErr != nil {
		return loadErr
	}

	for {
		if runErr := machine.Run(); runErr != nil {
			if e, ok := runErr.(errs.Error); ok {
				return e
			}
			return errs.NewToolError("%v", runErr)
		}
		if machine.PendingOptionCount() == 0 {
			if machine.Finished() {
				return nil
			}
			// A bare WAIT with nothing to choose: just resume.
			continue
		}

		choice := ear.Listen()
		k, convErr := strconv.Atoi(choice)
		if convErr != nil {
			return errs.NewToolError("invalid option choice %q: %v", choice, convErr)
		}
		if goErr := machine.GoToOption(k); goErr != nil {
			if e, ok := goErr.(errs.Error); ok {
				return e
			}
			return errs.NewToolError("%v", goErr)
		}
	}
}

// readConfig reads a test configuration from a TOML file.
func readConfig(path string) (*config, errs.Error) {
	tomlSource, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewTestSuite(path, "%v", err.Error())
	}
	testConf := &config{}
	if err := toml.Unmarshal(tomlSource, testConf); err != nil {
		return nil, errs.NewTestSuite(path, "%v", err.Error())
	}
	return testConf, nil
}

// canonicalizeConfig makes sure testConf is in the canonical form.
// Specifically, it:
//
//   - Makes sure there is at least one element in Steps. (If there is no
//     explicit step defined, we create one with the data from the top-level
//     fields.)
//   - Makes sure all fields in all Steps have values: either the values
//     explicitly set, or the values from the top-level fields, or the
//     default values.
func canonicalizeConfig(testConf *config) {
	if testConf.Type == "" {
		testConf.Type = "run"
	}
	if testConf.SourceFile == "" {
		testConf.SourceFile = "program.hlct"
	}
	if testConf.Input == nil {
		testConf.Input = []string{}
	}
	if testConf.Output == nil {
		testConf.Output = []string{}
	}
	if testConf.ErrorMessages == nil {
		testConf.ErrorMessages = []string{}
	}

	if len(testConf.Steps) == 0 {
		testConf.Steps = append(testConf.Steps, step{
			Type:          testConf.Type,
			SourceFile:    testConf.SourceFile,
			Input:         testConf.Input,
			Output:        testConf.Output,
			ExitCode:      testConf.ExitCode,
			ErrorMessages: testConf.ErrorMessages,
		})
	}

	for i, step := range testConf.Steps {
		if step.Type == "" {
			step.Type = testConf.Type
		}
		if step.SourceFile == "" {
			step.SourceFile = testConf.SourceFile
		}
		if step.Input == nil {
			step.Input = testConf.Input
		}
		if step.Output == nil {
			step.Output = testConf.Output
		}
		if step.ErrorMessages == nil {
			step.ErrorMessages = testConf.ErrorMessages
		}
		if step.ExitCode == 0 && testConf.ExitCode != 0 {
			step.ExitCode = testConf.ExitCode
		}
		testConf.Steps[i] = step
	}
}

// validateConfig validates a test configuration that is already in canonical
// format. Returns nil if the configuration is valid, or an error otherwise.
func validateConfig(testCase string, testConf *config) errs.Error {
	for _, step := range testConf.Steps {
		if step.Type != "run" {
			return errs.NewTestSuite(testCase, "invalid test type '%v'; only 'run' supported for now", step.Type)
		}
	}
	return nil
}
