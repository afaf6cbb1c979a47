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

import "fmt"

// Jnz is a conditional branch taken when the condition cell is non-zero.
type Jnz struct {
	// Condition cell being tested.
	Cond Cell
	// Target identifies the destination program counter.
	Target uint
}

// Bind any labels contained within this instruction using the given label map.
func (p *Jnz) Bind(labels []uint) {
	p.Target = labels[p.Target]
}

// Execute the conditional branch, returning the destination program counter
// when the condition cell holds a non-zero value.
func (p *Jnz) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	cond, err := frame.Get(p.Cond)
	if err != nil {
		return 0, err
	}
	//
	if !cond.IsZero() {
		return p.Target, nil
	}
	//
	return pc + 1, nil
}

func (p *Jnz) String() string {
	return fmt.Sprintf("jmp %d if %s != 0", p.Target, p.Cond)
}
