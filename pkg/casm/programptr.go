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

	"github.com/sierralang/go-casm/pkg/felt"
)

// ProgramPtr binds a cell to the address of the data embedded immediately
// after the program code.  This is where the globally agreed random curve
// point lives; its coordinates are then read by indirection rather than
// copied.
type ProgramPtr struct {
	Dst Cell
}

// Bind any labels contained within this instruction using the given label map.
func (p *ProgramPtr) Bind(labels []uint) {
	// no-op
}

// Execute by binding the destination cell to the base address of the
// program-embedded data segment.
func (p *ProgramPtr) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	if err := frame.Bind(p.Dst, felt.New(frame.memory.Base())); err != nil {
		return 0, err
	}
	//
	return pc + 1, nil
}

func (p *ProgramPtr) String() string {
	return fmt.Sprintf("assert %s = @program_end", p.Dst)
}
