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
	"github.com/sierralang/go-casm/pkg/invocations"
)

// boundedOpName is the one non-EC operation the CLI can lower.
const boundedOpName = "bounded_try_from_felt252"

// lowerCmd compiles a named operation against fresh input cells and prints
// the resulting instruction listing plus branch table.
var lowerCmd = &cobra.Command{
	Use:   "lower <operation>",
	Short: "Lower an IR operation and print its instruction listing.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		compiled, err := lowerOperation(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		printInvocation(compiled)
	},
}

// lowerOperation compiles the named operation with driver-style fresh input
// cells and a placeholder failure continuation.
func lowerOperation(name string) (*invocations.CompiledInvocation, error) {
	inv, err := freshInvocation(name)
	if err != nil {
		return nil, err
	}
	//
	if name == boundedOpName {
		return invocations.BuildBoundedTryFromFelt(inv)
	}
	//
	op, err := invocations.ParseOp(name)
	if err != nil {
		return nil, err
	}
	//
	return invocations.BuildEc(op, inv)
}

// freshInvocation constructs an invocation whose input references use
// sequentially numbered cells, shaped per the operation's IR signature.
func freshInvocation(name string) (*invocations.Invocation, error) {
	arities, ok := operationArities(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q (expected one of: %s)",
			name, strings.Join(operationNames(), ", "))
	}
	//
	var (
		refs []invocations.Reference
		next uint
	)
	//
	for _, arity := range arities {
		ref := make(invocations.Reference, arity)
		//
		for i := range ref {
			ref[i] = casm.Cell(next)
			next++
		}
		//
		refs = append(refs, ref)
	}
	// A placeholder continuation keeps operations with failure branches
	// compilable outside a full program.
	return invocations.NewInvocation(refs...).WithFailureTarget(0), nil
}

func printInvocation(compiled *invocations.CompiledInvocation) {
	fmt.Print(compiled.Program.String())
	fmt.Println()
	//
	for _, branch := range compiled.Branches {
		var outputs []string
		//
		for _, ops := range branch.Outputs {
			var cells []string
			//
			for _, op := range ops {
				cells = append(cells, op.String())
			}
			//
			outputs = append(outputs, "["+strings.Join(cells, ", ")+"]")
		}
		//
		fmt.Printf("%s: %s\n", branch.Name, strings.Join(outputs, " "))
	}
	//
	if rc := compiled.RangeCheck; rc != nil {
		fmt.Printf("range checks: %d (cursor %s)\n", rc.Slots, rc.Cursor)
	}
}

// operationArities gives the cell counts of each input reference of the
// named operation.
func operationArities(name string) ([]int, bool) {
	arities, ok := map[string][]int{
		"ec_point_zero":            {},
		"ec_point_try_new_nz":      {1, 1},
		"ec_point_from_x_nz":       {1, 1},
		"ec_point_unwrap":          {2},
		"ec_point_is_zero":         {2},
		"ec_neg":                   {2},
		"ec_state_init":            {},
		"ec_state_add":             {3, 2},
		"ec_state_add_mul":         {1, 3, 1, 2},
		"ec_state_try_finalize_nz": {3},
		boundedOpName:              {1, 1},
	}[name]
	//
	return arities, ok
}

func operationNames() []string {
	return []string{
		"ec_point_zero", "ec_point_try_new_nz", "ec_point_from_x_nz",
		"ec_point_unwrap", "ec_point_is_zero", "ec_neg", "ec_state_init",
		"ec_state_add", "ec_state_add_mul", "ec_state_try_finalize_nz",
		boundedOpName,
	}
}

func init() {
	rootCmd.AddCommand(lowerCmd)
}
