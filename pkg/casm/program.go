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

	log "github.com/sirupsen/logrus"

	"github.com/sierralang/go-casm/pkg/felt"
)

// FallthroughBranch names the implicit branch taken when execution runs off
// the end of the instruction sequence.
const FallthroughBranch = "Fallthrough"

// Program is a compiled instruction sequence with resolved labels.  Jumps to
// labels defined within the sequence land on their program counter position;
// jumps to undefined labels terminate execution through a named exit branch,
// to be relocated against the enclosing program by the driver.
type Program struct {
	// Code is the instruction sequence.
	Code []Instruction
	// Exits names the exit branches, in the order they were first
	// referenced.  Exit i corresponds to program counter len(Code)+1+i.
	Exits []string
	// Cells is the frame size required to execute this program.
	Cells uint
}

// Result of executing a program to termination.
type Result struct {
	// Branch taken: FallthroughBranch or one of the exit names.
	Branch string
	// Frame in its final state, for reading branch outputs.
	Frame *Frame
}

// Execute the program against the given inputs, hint resolver and program
// memory.  Returns the branch taken and the final frame, or an error if the
// trace is unsatisfiable or the program malformed.
func (p *Program) Execute(inputs map[Cell]felt.Element,
	hints HintResolver, memory Memory) (Result, error) {
	//
	frame := NewFrame(p.Cells, memory)
	//
	for cell, value := range inputs {
		if err := frame.Bind(cell, value); err != nil {
			return Result{}, fmt.Errorf("binding input: %w", err)
		}
	}
	//
	var (
		pc    = uint(0)
		steps = 0
		err   error
	)
	//
	for pc < uint(len(p.Code)) {
		insn := p.Code[pc]
		//
		log.Debugf("pc=%02d: %s", pc, insn)
		//
		if pc, err = insn.Execute(pc, frame, hints); err != nil {
			return Result{}, err
		}
		// Guard against malformed loops: compiled invocations only ever
		// branch forward.
		if steps++; steps > len(p.Code) {
			return Result{}, fmt.Errorf("execution exceeded %d steps", len(p.Code))
		}
	}
	//
	branch, err := p.branchAt(pc)
	if err != nil {
		return Result{}, err
	}
	//
	return Result{Branch: branch, Frame: frame}, nil
}

func (p *Program) branchAt(pc uint) (string, error) {
	var n = uint(len(p.Code))
	//
	if pc == n {
		return FallthroughBranch, nil
	} else if pc > n && pc-n-1 < uint(len(p.Exits)) {
		return p.Exits[pc-n-1], nil
	}
	//
	return "", fmt.Errorf("terminated at invalid program counter %d", pc)
}

func (p *Program) String() string {
	var builder strings.Builder
	//
	for pc, insn := range p.Code {
		builder.WriteString(fmt.Sprintf("%02d: %s\n", pc, insn))
	}
	//
	for i, exit := range p.Exits {
		builder.WriteString(fmt.Sprintf("%02d: <%s>\n", len(p.Code)+1+i, exit))
	}
	//
	return builder.String()
}
