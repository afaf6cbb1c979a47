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

// Cell identifies a storage cell within an invocation frame.  Cells are
// write-once: an instruction asserting the value of an already bound cell
// verifies it instead of overwriting it.
type Cell uint

func (c Cell) String() string {
	return fmt.Sprintf("v%d", uint(c))
}

type operandKind uint8

const (
	refOperand operandKind = iota
	immOperand
	doubleDerefOperand
	advancedOperand
)

// Operand is a value reference usable as an assertion source or a branch
// output: a plain cell, an immediate constant, an indirect read through a
// pointer held in a cell, or a builtin cursor advanced by a static offset.
type Operand struct {
	kind   operandKind
	cell   Cell
	offset int64
	imm    felt.Element
}

// Ref constructs an operand referencing a cell directly.
func Ref(cell Cell) Operand {
	return Operand{kind: refOperand, cell: cell}
}

// Imm constructs an immediate operand.
func Imm(value felt.Element) Operand {
	return Operand{kind: immOperand, imm: value}
}

// DoubleDeref constructs an operand read indirectly: the cell holds an
// address, and the operand evaluates to memory[address + offset].
func DoubleDeref(cell Cell, offset int64) Operand {
	return Operand{kind: doubleDerefOperand, cell: cell, offset: offset}
}

// Advanced constructs an operand denoting a builtin cursor moved forward by
// a fixed number of slots.  Cursor advancement is static: the compiler
// decides the advance, the trace merely reflects it.
func Advanced(cursor Cell, slots int64) Operand {
	return Operand{kind: advancedOperand, cell: cursor, offset: slots}
}

func (o Operand) String() string {
	switch o.kind {
	case refOperand:
		return o.cell.String()
	case immOperand:
		return o.imm.String()
	case doubleDerefOperand:
		return fmt.Sprintf("[%s+%d]", o.cell, o.offset)
	case advancedOperand:
		return fmt.Sprintf("%s+%d", o.cell, o.offset)
	default:
		panic("unreachable")
	}
}
