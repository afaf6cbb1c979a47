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

// Frame holds the storage cells of a single executing invocation, the
// read-only program memory, and the count of range-check slots consumed so
// far.  Cells are write-once.
type Frame struct {
	cells       []felt.Element
	assigned    []bool
	memory      Memory
	rangeChecks uint
}

// NewFrame constructs a frame with the given number of cells, all fresh.
func NewFrame(cells uint, memory Memory) *Frame {
	return &Frame{
		cells:    make([]felt.Element, cells),
		assigned: make([]bool, cells),
		memory:   memory,
	}
}

// IsBound checks whether the given cell has been assigned a value.
func (p *Frame) IsBound(cell Cell) bool {
	return uint(cell) < uint(len(p.assigned)) && p.assigned[cell]
}

// Bind assigns a value to a fresh cell.  Rebinding a cell, or binding a cell
// outside the frame, indicates a malformed program.
func (p *Frame) Bind(cell Cell, value felt.Element) error {
	if uint(cell) >= uint(len(p.cells)) {
		return fmt.Errorf("cell %s outside frame of size %d", cell, len(p.cells))
	} else if p.assigned[cell] {
		return fmt.Errorf("cell %s already bound", cell)
	}
	//
	p.cells[cell] = value
	p.assigned[cell] = true
	//
	return nil
}

// Get reads the value of a bound cell.
func (p *Frame) Get(cell Cell) (felt.Element, error) {
	if !p.IsBound(cell) {
		return felt.Element{}, fmt.Errorf("cell %s read before being bound", cell)
	}
	//
	return p.cells[cell], nil
}

// GetAll reads the values of several bound cells at once.
func (p *Frame) GetAll(cells ...Cell) ([]felt.Element, error) {
	values := make([]felt.Element, len(cells))
	//
	for i, cell := range cells {
		value, err := p.Get(cell)
		if err != nil {
			return nil, err
		}
		//
		values[i] = value
	}
	//
	return values, nil
}

// Eval computes the value of an operand against this frame.
func (p *Frame) Eval(op Operand) (felt.Element, error) {
	switch op.kind {
	case immOperand:
		return op.imm, nil
	case refOperand:
		return p.Get(op.cell)
	case doubleDerefOperand:
		pointer, err := p.Get(op.cell)
		if err != nil {
			return felt.Element{}, err
		}
		//
		return p.memory.Read(felt.Canonical(&pointer), op.offset)
	case advancedOperand:
		cursor, err := p.Get(op.cell)
		if err != nil {
			return felt.Element{}, err
		}
		//
		offset := felt.New(uint64(op.offset))
		cursor.Add(&cursor, &offset)
		//
		return cursor, nil
	default:
		panic("unreachable")
	}
}

// EvalAll computes the values of a list of operands against this frame.
func (p *Frame) EvalAll(ops []Operand) ([]felt.Element, error) {
	values := make([]felt.Element, len(ops))
	//
	for i, op := range ops {
		value, err := p.Eval(op)
		if err != nil {
			return nil, err
		}
		//
		values[i] = value
	}
	//
	return values, nil
}

// RangeChecks returns the number of range-check builtin slots consumed
// during execution.
func (p *Frame) RangeChecks() uint {
	return p.rangeChecks
}
