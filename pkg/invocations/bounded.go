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
package invocations

import (
	"math/big"

	"github.com/sierralang/go-casm/pkg/casm"
	"github.com/sierralang/go-casm/pkg/felt"
)

// BoundedLimit is the exclusive upper bound of the bounded-integer type:
// values live in [0, 2^248).
var BoundedLimit = new(big.Int).Lsh(big.NewInt(1), 248)

// BuildBoundedTryFromFelt compiles the conversion of a field element into
// the bounded-integer type.  The prover advises which side of the bound the
// value falls on; both paths then prove their claim with one range-check
// slot.  On the failing path the shifted value value - bound is constrained
// under P - bound, which is exactly the statement value >= bound over
// canonical representatives.
func BuildBoundedTryFromFelt(inv *Invocation) (*CompiledInvocation, error) {
	cells, err := inv.TryGetSingleCells(2)
	if err != nil {
		return nil, err
	}
	//
	target, err := inv.FailureTarget()
	if err != nil {
		return nil, err
	}
	//
	var (
		rangeCheck = cells[0]
		value      = cells[1]
		builder    = casm.NewBuilder(inv.InputCells())
		limit      = casm.Imm(felt.FromBig(BoundedLimit))
		shiftBound = new(big.Int).Sub(felt.Modulus(), BoundedLimit)
	)
	//
	isValid := builder.Hint(casm.TestLessThanHint,
		[]casm.Operand{casm.Ref(value), limit}, 1)[0]
	builder.JumpNotZero("IsValidValue", isValid)
	//
	shifted := builder.Sub(casm.Ref(value), limit)
	aux := []casm.Cell{builder.Cell()}
	//
	if err := ValidateUnderLimit(builder, shiftBound, shifted, rangeCheck, aux); err != nil {
		return nil, err
	}
	//
	builder.Jump("Failure")
	//
	builder.Label("IsValidValue")
	aux = []casm.Cell{builder.Cell()}
	//
	if err := ValidateUnderLimit(builder, BoundedLimit, value, rangeCheck, aux); err != nil {
		return nil, err
	}
	//
	compiled, err := finish(builder, []Branch{
		{
			Name: casm.FallthroughBranch,
			Outputs: [][]casm.Operand{
				{casm.Advanced(rangeCheck, 1)},
				{casm.Ref(value)},
			},
		},
		{
			Name:    "Failure",
			Outputs: [][]casm.Operand{{casm.Advanced(rangeCheck, 1)}},
			Target:  &target,
		},
	})
	//
	if err != nil {
		return nil, err
	}
	//
	return compiled.withRangeCheck(rangeCheck, 1), nil
}
