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
	"math/big"
	"testing"

	"github.com/sierralang/go-casm/pkg/curve"
	"github.com/sierralang/go-casm/pkg/felt"
)

func Test_Casm_AssertDeduces(t *testing.T) {
	builder := NewBuilder(2)
	sum := builder.Add(Ref(0), Ref(1))
	product := builder.Mul(Ref(sum), Imm(felt.New(3)))
	//
	result := mustRun(t, builder, inputs(7, 5))
	//
	expectCell(t, result.Frame, product, felt.New(36))
	expectBranch(t, result, FallthroughBranch)
}

func Test_Casm_AssertVerifies(t *testing.T) {
	builder := NewBuilder(2)
	// Input cell 1 is already bound, so this verifies rather than deduces.
	builder.Assert(1, Product(Ref(0), Imm(felt.New(2))))
	program := build(t, builder)
	//
	run(t, program, inputs(4, 8))
	mustFail(t, program, inputs(4, 9))
}

func Test_Casm_DivisionByZero(t *testing.T) {
	builder := NewBuilder(2)
	builder.Div(Ref(0), Ref(1))
	program := build(t, builder)
	//
	run(t, program, inputs(6, 3))
	mustFail(t, program, inputs(6, 0))
}

func Test_Casm_Fail(t *testing.T) {
	builder := NewBuilder(0)
	builder.Fail()
	//
	mustFail(t, build(t, builder), nil)
}

func Test_Casm_Branching(t *testing.T) {
	builder := NewBuilder(1)
	builder.JumpNotZero("NonZero", 0)
	builder.Jump("Done")
	builder.Label("NonZero")
	builder.Copy(Imm(felt.New(1)))
	builder.Label("Done")
	program := build(t, builder)
	//
	expectBranch(t, run(t, program, inputs(0)), FallthroughBranch)
	expectBranch(t, run(t, program, inputs(5)), FallthroughBranch)
}

func Test_Casm_ExitBranches(t *testing.T) {
	builder := NewBuilder(1)
	builder.JumpNotZero("Odd", 0)
	builder.Jump("Even")
	program := build(t, builder)
	// Both labels are undefined, hence exit branches in order of first use.
	expectBranch(t, run(t, program, inputs(1)), "Odd")
	expectBranch(t, run(t, program, inputs(0)), "Even")
}

func Test_Casm_BuilderConsumed(t *testing.T) {
	builder := NewBuilder(0)
	build(t, builder)
	//
	if _, err := builder.Build(); err == nil {
		t.Fatal("expected consumed builder error")
	}
}

func Test_Casm_DuplicateLabel(t *testing.T) {
	builder := NewBuilder(0)
	builder.Label("Here")
	builder.Label("Here")
	//
	if _, err := builder.Build(); err == nil {
		t.Fatal("expected duplicate label error")
	}
}

func Test_Casm_HintResolution(t *testing.T) {
	builder := NewBuilder(1)
	outs := builder.Hint("Triple", []Operand{Ref(0)}, 1)
	// The advice is unconstrained until asserted.
	builder.Assert(outs[0], Product(Ref(0), Imm(felt.New(3))))
	//
	triple := func(name string, in []felt.Element) ([]felt.Element, error) {
		var out felt.Element
		//
		three := felt.New(3)
		out.Mul(&in[0], &three)
		//
		return []felt.Element{out}, nil
	}
	//
	lie := func(name string, in []felt.Element) ([]felt.Element, error) {
		return []felt.Element{felt.New(999)}, nil
	}
	//
	program := build(t, builder)
	//
	if _, err := program.Execute(inputs(14), triple, Memory{}); err != nil {
		t.Fatal(err)
	}
	// A dishonest prover cannot satisfy the constraining assertion.
	if _, err := program.Execute(inputs(14), lie, Memory{}); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
	// No resolver at all is a harness error, not unsatisfiability.
	if _, err := program.Execute(inputs(14), nil, Memory{}); err == nil {
		t.Fatal("expected missing resolver error")
	}
}

func Test_Casm_RangeCheck(t *testing.T) {
	builder := NewBuilder(2)
	builder.RangeCheck(0, 1, big.NewInt(100))
	program := build(t, builder)
	//
	result, err := program.Execute(inputs(0, 99), nil, Memory{})
	if err != nil {
		t.Fatal(err)
	} else if result.Frame.RangeChecks() != 1 {
		t.Fatalf("expected 1 slot consumed, got %d", result.Frame.RangeChecks())
	}
	// The advanced cursor is an operand, not a mutated cell.
	value, err := result.Frame.Eval(Advanced(0, 1))
	if err != nil {
		t.Fatal(err)
	} else if expected := felt.New(1); !value.Equal(&expected) {
		t.Fatalf("expected advanced cursor 1, got %s", value.String())
	}
	//
	if _, err := program.Execute(inputs(0, 100), nil, Memory{}); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
}

func Test_Casm_EcOpBuiltin(t *testing.T) {
	builder := NewBuilder(6)
	outX, outY := builder.EcOp(0, 1, 2, 3, 4, 5)
	program := build(t, builder)
	//
	var (
		g      = curve.Blinding()
		g2     = curve.Double(g)
		scalar = felt.New(5)
	)
	//
	in := map[Cell]felt.Element{
		0: felt.New(0),
		1: g.X, 2: g.Y,
		3: g2.X, 4: g2.Y,
		5: scalar,
	}
	//
	result, err := program.Execute(in, nil, Memory{})
	if err != nil {
		t.Fatal(err)
	}
	//
	expected, err := curve.ScalarMulAdd(g, &scalar, g2)
	if err != nil {
		t.Fatal(err)
	}
	//
	expectCell(t, result.Frame, outX, expected.X)
	expectCell(t, result.Frame, outY, expected.Y)
	// Off-curve inputs are rejected by the builtin.
	in[2] = felt.New(1)
	//
	if _, err := program.Execute(in, nil, Memory{}); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
}

func Test_Casm_ProgramPointer(t *testing.T) {
	builder := NewBuilder(0)
	pointer := builder.ProgramPtr()
	x := builder.Copy(DoubleDeref(pointer, 0))
	y := builder.Copy(DoubleDeref(pointer, 1))
	program := build(t, builder)
	//
	result, err := program.Execute(nil, nil, ProgramMemory())
	if err != nil {
		t.Fatal(err)
	}
	//
	blind := curve.Blinding()
	expectCell(t, result.Frame, x, blind.X)
	expectCell(t, result.Frame, y, blind.Y)
	// Reads outside the embedded segment are malformed.
	builder = NewBuilder(0)
	pointer = builder.ProgramPtr()
	builder.Copy(DoubleDeref(pointer, 2))
	//
	malformed := build(t, builder)
	if _, err := malformed.Execute(nil, nil, ProgramMemory()); err == nil {
		t.Fatal("expected out-of-segment read error")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func build(t *testing.T, builder *Builder) Program {
	program, err := builder.Build()
	if err != nil {
		t.Fatal(err)
	}
	//
	return program
}

func mustRun(t *testing.T, builder *Builder, in map[Cell]felt.Element) Result {
	return run(t, build(t, builder), in)
}

func run(t *testing.T, program Program, in map[Cell]felt.Element) Result {
	result, err := program.Execute(in, nil, Memory{})
	if err != nil {
		t.Fatal(err)
	}
	//
	return result
}

func mustFail(t *testing.T, program Program, in map[Cell]felt.Element) {
	if _, err := program.Execute(in, nil, Memory{}); !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
}

// inputs binds small constants to cells 0, 1, 2, ...
func inputs(values ...uint64) map[Cell]felt.Element {
	in := make(map[Cell]felt.Element, len(values))
	//
	for i, value := range values {
		in[Cell(i)] = felt.New(value)
	}
	//
	return in
}

func expectCell(t *testing.T, frame *Frame, cell Cell, expected felt.Element) {
	actual, err := frame.Get(cell)
	if err != nil {
		t.Fatal(err)
	} else if !actual.Equal(&expected) {
		t.Fatalf("cell %s: expected %s, got %s", cell, expected.String(), actual.String())
	}
}

func expectBranch(t *testing.T, result Result, branch string) {
	if result.Branch != branch {
		t.Fatalf("expected branch %q, got %q", branch, result.Branch)
	}
}
