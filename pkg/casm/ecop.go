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

	"github.com/sierralang/go-casm/pkg/curve"
)

// EcOp binds five consecutive input cells of the elliptic-curve accelerator
// builtin, in the fixed order (state_x, state_y, point_x, point_y, scalar),
// and reads back the next two cells as state + scalar*point.  No verification
// instructions are emitted: correctness is the builtin's responsibility, the
// compiler only performs cursor bookkeeping and cell binding.
type EcOp struct {
	// Cursor cell naming the builtin buffer region in use.
	Cursor Cell
	// StateX, StateY hold the current accumulator point.
	StateX Cell
	StateY Cell
	// PointX, PointY hold the point being accumulated.
	PointX Cell
	PointY Cell
	// Scalar multiplies the point.
	Scalar Cell
	// OutX, OutY receive the resulting point.
	OutX Cell
	OutY Cell
}

// Bind any labels contained within this instruction using the given label map.
func (p *EcOp) Bind(labels []uint) {
	// no-op
}

// Execute the accelerator operation.  The builtin rejects inputs which are
// not on the curve, and rejects computations whose intermediate sums pass
// through the point at infinity.
func (p *EcOp) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	values, err := frame.GetAll(p.StateX, p.StateY, p.PointX, p.PointY, p.Scalar)
	if err != nil {
		return 0, err
	}
	//
	var (
		state  = curve.Point{X: values[0], Y: values[1]}
		point  = curve.Point{X: values[2], Y: values[3]}
		scalar = values[4]
	)
	//
	if !state.OnCurve() || !point.OnCurve() {
		return 0, fmt.Errorf("%w: ec_op builtin input not on curve", ErrUnsatisfiable)
	}
	//
	result, err := curve.ScalarMulAdd(state, &scalar, point)
	if err != nil {
		return 0, fmt.Errorf("%w: ec_op builtin: %v", ErrUnsatisfiable, err)
	}
	//
	if err := p.bindResult(frame, result); err != nil {
		return 0, err
	}
	//
	return pc + 1, nil
}

func (p *EcOp) bindResult(frame *Frame, result curve.Point) error {
	if err := frame.Bind(p.OutX, result.X); err != nil {
		return err
	}
	//
	return frame.Bind(p.OutY, result.Y)
}

func (p *EcOp) String() string {
	return fmt.Sprintf("ec_op *(%s) (%s, %s) += %s * (%s, %s) into (%s, %s)",
		p.Cursor, p.StateX, p.StateY, p.Scalar, p.PointX, p.PointY, p.OutX, p.OutY)
}
