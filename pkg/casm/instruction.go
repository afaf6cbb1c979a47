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
	"errors"
	"fmt"
)

// ErrUnsatisfiable signals that no valid trace continues past the current
// instruction.  This is not a runtime error of the compiler: it marks a
// failed assertion, a division by zero, a violated range check or an
// explicit fail instruction, all of which render the trace unprovable.
var ErrUnsatisfiable = errors.New("trace unsatisfiable")

// Instruction is a single operation of the provable stack machine.  Before
// execution, any labels it references must be bound to concrete program
// counter positions.
type Instruction interface {
	// Bind any labels contained within this instruction using the given
	// label map.
	Bind(labels []uint)
	// Execute this instruction at a given program counter position against
	// the given frame, returning the next program counter position.
	Execute(pc uint, frame *Frame, hints HintResolver) (uint, error)
	//
	fmt.Stringer
}

// BinOp identifies the arithmetic operation of an assertion source.
type BinOp uint8

const (
	// CopyOp moves the first operand unchanged.
	CopyOp BinOp = iota
	// AddOp is field addition.
	AddOp
	// SubOp is field subtraction.
	SubOp
	// MulOp is field multiplication.
	MulOp
	// DivOp is field division, i.e. multiplication by the inverse.  A zero
	// divisor admits no valid trace.
	DivOp
)

func (op BinOp) String() string {
	switch op {
	case AddOp:
		return "+"
	case SubOp:
		return "-"
	case MulOp:
		return "*"
	case DivOp:
		return "/"
	default:
		panic("unreachable")
	}
}

// Source is the right-hand side of an assertion: a single operand, or two
// operands combined by a field operation.
type Source struct {
	A  Operand
	Op BinOp
	B  Operand
}

// From constructs a source which copies a single operand.
func From(a Operand) Source {
	return Source{A: a, Op: CopyOp}
}

// Sum constructs a source computing a + b.
func Sum(a Operand, b Operand) Source {
	return Source{A: a, Op: AddOp, B: b}
}

// Difference constructs a source computing a - b.
func Difference(a Operand, b Operand) Source {
	return Source{A: a, Op: SubOp, B: b}
}

// Product constructs a source computing a * b.
func Product(a Operand, b Operand) Source {
	return Source{A: a, Op: MulOp, B: b}
}

// Quotient constructs a source computing a / b.
func Quotient(a Operand, b Operand) Source {
	return Source{A: a, Op: DivOp, B: b}
}

func (s Source) String() string {
	if s.Op == CopyOp {
		return s.A.String()
	}
	//
	return fmt.Sprintf("%s %s %s", s.A, s.Op, s.B)
}
