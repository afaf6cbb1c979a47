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

// Assert constrains a destination cell to equal the value of its source.
// When the destination is still fresh the constraint deduces its value;
// when it is already bound the constraint verifies it, and a mismatch
// leaves no valid trace.
type Assert struct {
	Dst Cell
	Src Source
}

// Bind any labels contained within this instruction using the given label map.
func (p *Assert) Bind(labels []uint) {
	// no-op
}

// Execute evaluates the source and either deduces or verifies the
// destination cell.
func (p *Assert) Execute(pc uint, frame *Frame, hints HintResolver) (uint, error) {
	value, err := p.eval(frame)
	if err != nil {
		return 0, err
	}
	//
	if frame.IsBound(p.Dst) {
		current, err := frame.Get(p.Dst)
		if err != nil {
			return 0, err
		}
		//
		if !current.Equal(&value) {
			return 0, fmt.Errorf("%w: %s = %s does not hold (%s != %s)",
				ErrUnsatisfiable, p.Dst, p.Src, current.String(), value.String())
		}
		//
		return pc + 1, nil
	}
	//
	if err := frame.Bind(p.Dst, value); err != nil {
		return 0, err
	}
	//
	return pc + 1, nil
}

func (p *Assert) eval(frame *Frame) (felt.Element, error) {
	var value felt.Element
	//
	a, err := frame.Eval(p.Src.A)
	if err != nil {
		return value, err
	}
	//
	if p.Src.Op == CopyOp {
		return a, nil
	}
	//
	b, err := frame.Eval(p.Src.B)
	if err != nil {
		return value, err
	}
	//
	switch p.Src.Op {
	case AddOp:
		value.Add(&a, &b)
	case SubOp:
		value.Sub(&a, &b)
	case MulOp:
		value.Mul(&a, &b)
	case DivOp:
		if b.IsZero() {
			return value, fmt.Errorf("%w: division by zero in %s = %s",
				ErrUnsatisfiable, p.Dst, p.Src)
		}
		//
		b.Inverse(&b)
		value.Mul(&a, &b)
	default:
		panic("unreachable")
	}
	//
	return value, nil
}

func (p *Assert) String() string {
	return fmt.Sprintf("assert %s = %s", p.Dst, p.Src)
}
