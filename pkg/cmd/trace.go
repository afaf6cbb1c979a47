// Copyright the go-casm authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sierralang/go-casm/pkg/casm"
	"github.com/sierralang/go-casm/pkg/felt"
)

// traceCmd lowers a named operation, executes it against the given inputs
// with the honest hint resolver, and reports the branch taken plus outputs.
var traceCmd = &cobra.Command{
	Use:   "trace <operation> [input...]",
	Short: "Lower an IR operation and execute it against concrete inputs.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		if err := traceOperation(args[0], args[1:]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func traceOperation(name string, literals []string) error {
	compiled, err := lowerOperation(name)
	if err != nil {
		return err
	}
	//
	inputs := make(map[casm.Cell]felt.Element, len(literals))
	//
	for i, literal := range literals {
		var value felt.Element
		//
		if _, err := value.SetString(literal); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		//
		inputs[casm.Cell(i)] = value
	}
	//
	result, err := compiled.Program.Execute(inputs, casm.StandardHints(), casm.ProgramMemory())
	if err != nil {
		return err
	}
	//
	outputs, err := compiled.OutputsOn(result.Branch, result.Frame)
	if err != nil {
		return err
	}
	//
	fmt.Printf("branch: %s\n", result.Branch)
	//
	for i, values := range outputs {
		var rendered []string
		//
		for _, value := range values {
			rendered = append(rendered, value.String())
		}
		//
		fmt.Printf("output %d: [%s]\n", i, strings.Join(rendered, ", "))
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
