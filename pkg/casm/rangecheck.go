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
	"math/big"

	"github.com/sierralang/go-casm/pkg/felt"
)

// RangeCheck binds a value into the next slot of the range-check builtin,
// asserting that its canonical representative lies in [0, bound).  The slot
// cursor itself is not mutated at runtime: advancement is tracked statically
// through Advanced operands.
type RangeCheck struct {
	// Cursor cell naming the builtin slot region in use.
	Cursor Cell
	// Value cell being checked.
	Value Cell
	// Bound is the exclusive upper bound asserted by the slot.
	Bound *big.Int
}

// Bind any labels contained within this instruction using the given label map.
func (p *RangeCheck) Bind(labels []uint) {
	// no-op
}

// Execute the range check against the frame.  A value at or above the bound
// admits no valid trace.
func (p *RangeCheck) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	value, err := frame.Get(p.Value)
	if err != nil {
		return 0, err
	}
	//
	if felt.Canonical(&value).Cmp(p.Bound) >= 0 {
		return 0, fmt.Errorf("%w: %s = %s exceeds range bound %s",
			ErrUnsatisfiable, p.Value, value.String(), p.Bound)
	}
	//
	frame.rangeChecks++
	//
	return pc + 1, nil
}

func (p *RangeCheck) String() string {
	return fmt.Sprintf("assert %s = *(%s++) < %s", p.Value, p.Cursor, p.Bound)
}
