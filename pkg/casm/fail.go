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

// Fail is an unconditionally unsatisfiable instruction.  Reaching it marks
// a violated caller contract: the emitted trace cannot be proven, which is
// intentional and distinct from a recoverable branch.
type Fail struct{}

// Bind any labels contained within this instruction using the given label map.
func (p *Fail) Bind(labels []uint) {
	// no-op
}

// Execute the fail instruction, which admits no valid trace.
func (p *Fail) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	return 0, fmt.Errorf("%w: fail instruction reached", ErrUnsatisfiable)
}

func (p *Fail) String() string {
	return "fail"
}
