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

// Jmp is an unconditional branch.  Until bound, the target holds a label
// identifier; afterwards it holds the resolved program counter position,
// which may lie past the end of the code when the label is an exit branch.
type Jmp struct {
	Target uint
}

// Bind any labels contained within this instruction using the given label map.
func (p *Jmp) Bind(labels []uint) {
	p.Target = labels[p.Target]
}

// Execute an unconditional branch by returning the destination program
// counter.
func (p *Jmp) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	return p.Target, nil
}

func (p *Jmp) String() string {
	return fmt.Sprintf("jmp %d", p.Target)
}
