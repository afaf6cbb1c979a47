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
package casm

import (
	"fmt"
	"strings"

	"github.com/sierralang/go-casm/pkg/felt"
)

// Hint requests nondeterministic advice from the untrusted prover.  The
// requested values are bound to the output cells without any verification:
// constraining them is the responsibility of the assertions that follow.
type Hint struct {
	// Name identifies which advice is being requested.
	Name string
	// Inputs are made visible to the prover.
	Inputs []Operand
	// Outputs receive the unconstrained advice values.
	Outputs []Cell
}

// Bind any labels contained within this instruction using the given label map.
func (p *Hint) Bind(labels []uint) {
	// no-op
}

// Execute the hint by querying the resolver and binding its answers to the
// output cells.
func (p *Hint) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	if hints == nil {
		return 0, fmt.Errorf("no resolver for hint %q", p.Name)
	}
	//
	inputs := make([]felt.Element, len(p.Inputs))
	//
	for i, op := range p.Inputs {
		value, err := frame.Eval(op)
		if err != nil {
			return 0, err
		}
		//
		inputs[i] = value
	}
	//
	outputs, err := hints(p.Name, inputs)
	if err != nil {
		return 0, fmt.Errorf("hint %q: %w", p.Name, err)
	} else if len(outputs) != len(p.Outputs) {
		return 0, fmt.Errorf("hint %q: expected %d values, got %d",
			p.Name, len(p.Outputs), len(outputs))
	}
	//
	for i, cell := range p.Outputs {
		if err := frame.Bind(cell, outputs[i]); err != nil {
			return 0, err
		}
	}
	//
	return pc + 1, nil
}

func (p *Hint) String() string {
	var (
		ins  = make([]string, len(p.Inputs))
		outs = make([]string, len(p.Outputs))
	)
	//
	for i, op := range p.Inputs {
		ins[i] = op.String()
	}
	//
	for i, cell := range p.Outputs {
		outs[i] = cell.String()
	}
	//
	return fmt.Sprintf("hint %s {%s} into {%s}",
		p.Name, strings.Join(ins, ", "), strings.Join(outs, ", "))
}
