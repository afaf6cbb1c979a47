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
	"math/big"
	"testing"

	"github.com/sierralang/go-casm/pkg/casm"
	"github.com/sierralang/go-casm/pkg/felt"
)

func Test_RangeCheck_BoundTooLarge(t *testing.T) {
	var (
		builder = casm.NewBuilder(2)
		aux     = []casm.Cell{builder.Cell()}
		bound   = new(big.Int).Lsh(big.NewInt(1), 252)
	)
	//
	err := ValidateUnderLimit(builder, bound, 0, 1, aux)
	if !errors.Is(err, ErrBoundTooLarge) {
		t.Fatalf("expected ErrBoundTooLarge, got %v", err)
	}
	// A non-positive bound is equally unrepresentable.
	if err := ValidateUnderLimit(builder, big.NewInt(0), 0, 1, aux); !errors.Is(err, ErrBoundTooLarge) {
		t.Fatalf("expected ErrBoundTooLarge, got %v", err)
	}
}

func Test_RangeCheck_GranularityBound(t *testing.T) {
	var (
		builder = casm.NewBuilder(2)
		aux     = []casm.Cell{builder.Cell()}
		bound   = new(big.Int).Lsh(big.NewInt(1), 251)
	)
	// The full slot granularity itself is still representable.
	if err := ValidateUnderLimit(builder, bound, 0, 1, aux); err != nil {
		t.Fatal(err)
	}
}

func Test_RangeCheck_MissingAux(t *testing.T) {
	builder := casm.NewBuilder(2)
	//
	err := ValidateUnderLimit(builder, big.NewInt(100), 0, 1, nil)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func Test_RangeCheck_Boundary(t *testing.T) {
	program := rangeCheckProgram(t, big.NewInt(100))
	// Strictly below the bound is satisfiable and consumes one slot.
	result, err := program.Execute(bindCells(felt.New(99), felt.New(10)), nil, casm.Memory{})
	if err != nil {
		t.Fatal(err)
	} else if result.Frame.RangeChecks() != 1 {
		t.Fatalf("expected 1 range-check slot, consumed %d", result.Frame.RangeChecks())
	}
	// The bound itself is excluded.
	if _, err := program.Execute(bindCells(felt.New(100), felt.New(10)), nil, casm.Memory{}); !errors.Is(err, casm.ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
}

// Values wrap modulo the prime, so a "negative" value is a huge canonical
// representative and must fail.
func Test_RangeCheck_WrapAround(t *testing.T) {
	program := rangeCheckProgram(t, big.NewInt(100))
	//
	if _, err := program.Execute(bindCells(felt.MinusOne(), felt.New(10)), nil, casm.Memory{}); !errors.Is(err, casm.ErrUnsatisfiable) {
		t.Fatalf("expected unsatisfiable trace, got %v", err)
	}
}

// rangeCheckProgram compiles a minimal block checking cell 0 against the
// given bound, with the builtin cursor in cell 1.
func rangeCheckProgram(t *testing.T, bound *big.Int) casm.Program {
	var (
		builder = casm.NewBuilder(2)
		aux     = []casm.Cell{builder.Cell()}
	)
	//
	if err := ValidateUnderLimit(builder, bound, 0, 1, aux); err != nil {
		t.Fatal(err)
	}
	//
	program, err := builder.Build()
	if err != nil {
		t.Fatal(err)
	}
	//
	return program
}
