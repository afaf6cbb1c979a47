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
	"errors"
	"fmt"

	"github.com/sierralang/go-casm/pkg/casm"
	"github.com/sierralang/go-casm/pkg/felt"
)

// ErrInvalidReference signals malformed input shapes: the wrong number of
// input references, or a reference with the wrong number of cells.  This is
// construction-time misuse by the enclosing driver; it fails the compilation
// of the single offending operation.
var ErrInvalidReference = errors.New("invalid input reference")

// ErrMissingTarget signals an operation with a non-fallthrough branch but no
// failure continuation to relocate it against.
var ErrMissingTarget = errors.New("missing failure continuation")

// StatementID identifies a statement of the enclosing program.  Branches
// which do not fall through are relocated to one of these.
type StatementID uint

// Reference is an input reference expression: the frame cells holding one
// IR-level value.
type Reference []casm.Cell

// TryUnpack checks that the reference holds exactly the given number of
// cells and returns them.
func (r Reference) TryUnpack(n int) ([]casm.Cell, error) {
	if len(r) != n {
		return nil, fmt.Errorf("%w: expected %d cells, found %d", ErrInvalidReference, n, len(r))
	}
	//
	return r, nil
}

// Invocation describes a single IR operation being compiled: its input
// reference expressions plus, where the operation's signature has one, the
// statement its non-fallthrough branch continues at.
type Invocation struct {
	refs   []Reference
	target *StatementID
}

// NewInvocation constructs an invocation over the given input references.
func NewInvocation(refs ...Reference) *Invocation {
	return &Invocation{refs: refs}
}

// WithFailureTarget sets the statement the operation's non-fallthrough
// branch continues at.
func (p *Invocation) WithFailureTarget(id StatementID) *Invocation {
	p.target = &id
	//
	return p
}

// TryGetRefs checks that exactly the given number of input references were
// provided and returns them.
func (p *Invocation) TryGetRefs(n int) ([]Reference, error) {
	if len(p.refs) != n {
		return nil, fmt.Errorf("%w: expected %d references, found %d",
			ErrInvalidReference, n, len(p.refs))
	}
	//
	return p.refs, nil
}

// TryGetSingleCells checks that exactly n references were provided, each a
// single cell, and returns the cells.
func (p *Invocation) TryGetSingleCells(n int) ([]casm.Cell, error) {
	refs, err := p.TryGetRefs(n)
	if err != nil {
		return nil, err
	}
	//
	cells := make([]casm.Cell, n)
	//
	for i, ref := range refs {
		cell, err := ref.TryUnpack(1)
		if err != nil {
			return nil, err
		}
		//
		cells[i] = cell[0]
	}
	//
	return cells, nil
}

// FailureTarget returns the statement the non-fallthrough branch continues
// at, or an error if the driver never supplied one.
func (p *Invocation) FailureTarget() (StatementID, error) {
	if p.target == nil {
		return 0, ErrMissingTarget
	}
	//
	return *p.target, nil
}

// InputCells returns the number of frame cells the driver has bound as
// inputs, which the block builder must reserve before allocating fresh ones.
func (p *Invocation) InputCells() uint {
	var n uint
	//
	for _, ref := range p.refs {
		for _, cell := range ref {
			if uint(cell) >= n {
				n = uint(cell) + 1
			}
		}
	}
	//
	return n
}

// Branch is a named successor of a compiled operation, carrying the output
// locations valid on that path and, for non-fallthrough branches, the
// statement to relocate the exit against.
type Branch struct {
	// Name of the branch; the fallthrough branch is always named first.
	Name string
	// Outputs holds one operand list per IR output value.
	Outputs [][]casm.Operand
	// Target of the relocation, nil for the fallthrough branch.
	Target *StatementID
}

// RangeCheckInfo records, for cost accounting, which cursor named the
// range-check builtin and how many slots the operation consumes on any path.
type RangeCheckInfo struct {
	Cursor casm.Cell
	Slots  uint
}

// CompiledInvocation carries everything the enclosing driver needs: the
// generated instructions, the named output branches, and optional
// cost-accounting metadata.
type CompiledInvocation struct {
	Program    casm.Program
	Branches   []Branch
	RangeCheck *RangeCheckInfo
}

// Branch looks up a branch by name.
func (p *CompiledInvocation) Branch(name string) (*Branch, bool) {
	for i := range p.Branches {
		if p.Branches[i].Name == name {
			return &p.Branches[i], true
		}
	}
	//
	return nil, false
}

// OutputsOn evaluates the output operands of the named branch against a
// final frame, yielding the concrete output values of each IR value.
func (p *CompiledInvocation) OutputsOn(name string, frame *casm.Frame) ([][]felt.Element, error) {
	branch, ok := p.Branch(name)
	if !ok {
		return nil, fmt.Errorf("unknown branch %q", name)
	}
	//
	outputs := make([][]felt.Element, len(branch.Outputs))
	//
	for i, ops := range branch.Outputs {
		values, err := frame.EvalAll(ops)
		if err != nil {
			return nil, err
		}
		//
		outputs[i] = values
	}
	//
	return outputs, nil
}

// finish assembles the compiled invocation from a block builder and the
// operation's branch declarations, checking that every exit the instructions
// can take was declared.
func finish(builder *casm.Builder, branches []Branch) (*CompiledInvocation, error) {
	program, err := builder.Build()
	if err != nil {
		return nil, err
	}
	//
	declared := make(map[string]bool, len(branches))
	//
	for i, branch := range branches {
		if branch.Name == casm.FallthroughBranch && i != 0 {
			return nil, fmt.Errorf("fallthrough branch must be declared first")
		} else if branch.Name != casm.FallthroughBranch && branch.Target == nil {
			return nil, fmt.Errorf("%w: branch %q", ErrMissingTarget, branch.Name)
		}
		//
		declared[branch.Name] = true
	}
	//
	for _, exit := range program.Exits {
		if !declared[exit] {
			return nil, fmt.Errorf("exit %q has no declared branch", exit)
		}
	}
	//
	return &CompiledInvocation{Program: program, Branches: branches}, nil
}

// withRangeCheck attaches cost-accounting metadata.
func (p *CompiledInvocation) withRangeCheck(cursor casm.Cell, slots uint) *CompiledInvocation {
	p.RangeCheck = &RangeCheckInfo{Cursor: cursor, Slots: slots}
	//
	return p
}
