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
	"math"
	"math/big"
)

// Builder assembles a labeled instruction graph into a Program.  Labels may
// be referenced before (or entirely without) being defined; labels never
// defined become the program's exit branches.  The builder also allocates
// the frame's storage cells, with input cells reserved up front.
type Builder struct {
	cells uint
	code  []Instruction
	// Maps label names to their identifiers, in order of first use.
	labelIDs map[string]uint
	names    []string
	// Maps label identifiers to program counter positions, with MaxUint
	// marking labels not yet defined.
	labelPCs []uint
	errs     []error
	built    bool
}

// NewBuilder constructs a builder whose first cells are reserved as inputs,
// bound by the caller rather than by instructions.
func NewBuilder(inputs uint) *Builder {
	return &Builder{
		cells:    inputs,
		labelIDs: make(map[string]uint),
	}
}

// Cell allocates a fresh storage cell.
func (p *Builder) Cell() Cell {
	cell := Cell(p.cells)
	p.cells++
	//
	return cell
}

// Label defines the given label at the current position.
func (p *Builder) Label(name string) {
	id := p.labelID(name)
	//
	if p.labelPCs[id] != math.MaxUint {
		p.errs = append(p.errs, fmt.Errorf("label %q defined twice", name))
		return
	}
	//
	p.labelPCs[id] = uint(len(p.code))
}

// Assert emits a constraint binding (or verifying) the destination against
// the given source.
func (p *Builder) Assert(dst Cell, src Source) {
	p.code = append(p.code, &Assert{Dst: dst, Src: src})
}

// Copy allocates a fresh cell bound to the given operand.
func (p *Builder) Copy(src Operand) Cell {
	dst := p.Cell()
	p.Assert(dst, From(src))
	//
	return dst
}

// Add allocates a fresh cell bound to a + b.
func (p *Builder) Add(a Operand, b Operand) Cell {
	dst := p.Cell()
	p.Assert(dst, Sum(a, b))
	//
	return dst
}

// Sub allocates a fresh cell bound to a - b.
func (p *Builder) Sub(a Operand, b Operand) Cell {
	dst := p.Cell()
	p.Assert(dst, Difference(a, b))
	//
	return dst
}

// Mul allocates a fresh cell bound to a * b.
func (p *Builder) Mul(a Operand, b Operand) Cell {
	dst := p.Cell()
	p.Assert(dst, Product(a, b))
	//
	return dst
}

// Div allocates a fresh cell bound to a / b.  The division admits no trace
// when b is zero; callers must branch on the denominator beforehand.
func (p *Builder) Div(a Operand, b Operand) Cell {
	dst := p.Cell()
	p.Assert(dst, Quotient(a, b))
	//
	return dst
}

// Jump emits an unconditional branch to the given label.
func (p *Builder) Jump(name string) {
	p.code = append(p.code, &Jmp{Target: p.labelID(name)})
}

// JumpNotZero emits a branch to the given label, taken when the condition
// cell is non-zero.
func (p *Builder) JumpNotZero(name string, cond Cell) {
	p.code = append(p.code, &Jnz{Cond: cond, Target: p.labelID(name)})
}

// Fail emits an unconditionally unsatisfiable instruction.
func (p *Builder) Fail() {
	p.code = append(p.code, &Fail{})
}

// Hint emits a nondeterministic advice request, allocating one fresh output
// cell per requested value.
func (p *Builder) Hint(name string, inputs []Operand, outputs int) []Cell {
	cells := make([]Cell, outputs)
	//
	for i := range cells {
		cells[i] = p.Cell()
	}
	//
	p.code = append(p.code, &Hint{Name: name, Inputs: inputs, Outputs: cells})
	//
	return cells
}

// RangeCheck emits a range-check builtin use, binding the value to the next
// slot of the given cursor with the given exclusive bound.
func (p *Builder) RangeCheck(cursor Cell, value Cell, bound *big.Int) {
	p.code = append(p.code, &RangeCheck{Cursor: cursor, Value: value, Bound: bound})
}

// EcOp emits an accelerator builtin use, binding the five input cells at the
// given cursor and returning two fresh cells holding the resulting point.
func (p *Builder) EcOp(cursor Cell, stateX, stateY, pointX, pointY, scalar Cell) (Cell, Cell) {
	var (
		outX = p.Cell()
		outY = p.Cell()
	)
	//
	p.code = append(p.code, &EcOp{
		Cursor: cursor,
		StateX: stateX, StateY: stateY,
		PointX: pointX, PointY: pointY,
		Scalar: scalar,
		OutX:   outX, OutY: outY,
	})
	//
	return outX, outY
}

// ProgramPtr allocates a fresh cell bound to the address of the data
// embedded after the program code.
func (p *Builder) ProgramPtr() Cell {
	dst := p.Cell()
	p.code = append(p.code, &ProgramPtr{Dst: dst})
	//
	return dst
}

// Build resolves all labels and returns the finished program.  Labels left
// undefined become exit branches, numbered past the end of the code.
func (p *Builder) Build() (Program, error) {
	if p.built {
		// Binding labels rewrites the instructions in place.
		return Program{}, fmt.Errorf("builder already consumed")
	} else if len(p.errs) > 0 {
		return Program{}, p.errs[0]
	}
	//
	p.built = true
	//
	var (
		labels = make([]uint, len(p.labelPCs))
		exits  []string
	)
	// Assign exit positions to undefined labels, in order of first use.
	for id, pc := range p.labelPCs {
		if pc == math.MaxUint {
			labels[id] = uint(len(p.code)) + 1 + uint(len(exits))
			exits = append(exits, p.names[id])
		} else {
			labels[id] = pc
		}
	}
	//
	for _, insn := range p.code {
		insn.Bind(labels)
	}
	//
	return Program{Code: p.code, Exits: exits, Cells: p.cells}, nil
}

func (p *Builder) labelID(name string) uint {
	if id, ok := p.labelIDs[name]; ok {
		return id
	}
	//
	id := uint(len(p.labelPCs))
	p.labelIDs[name] = id
	p.names = append(p.names, name)
	p.labelPCs = append(p.labelPCs, math.MaxUint)
	//
	return id
}
