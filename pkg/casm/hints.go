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
	"github.com/sierralang/go-casm/pkg/felt"
)

// Names of the hints understood by the standard resolver.
const (
	// FieldSqrtHint requests, for input v, the canonical square root of
	// either v or NonResidue*v — exactly one of the two is a residue for
	// v != 0.
	FieldSqrtHint = "FieldSqrt"
	// TestLessThanHint requests 1 if the first input's canonical value is
	// below the second's, and 0 otherwise.
	TestLessThanHint = "TestLessThan"
)

// HintResolver supplies nondeterministic advice during execution.  It plays
// the prover's role: nothing it returns is trusted, and a dishonest resolver
// must only ever produce unsatisfiable traces, never wrong results.
type HintResolver func(name string, inputs []felt.Element) ([]felt.Element, error)

// StandardHints resolves hints the way an honest prover would.
func StandardHints() HintResolver {
	return func(name string, inputs []felt.Element) ([]felt.Element, error) {
		switch name {
		case FieldSqrtHint:
			return fieldSqrt(inputs)
		case TestLessThanHint:
			return testLessThan(inputs)
		default:
			return nil, fmt.Errorf("unknown hint")
		}
	}
}

func fieldSqrt(inputs []felt.Element) ([]felt.Element, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("expected 1 input, got %d", len(inputs))
	}
	//
	if root, ok := curve.CanonicalSqrt(&inputs[0]); ok {
		return []felt.Element{root}, nil
	}
	// Not a residue, so NonResidue * v must be one.
	var scaled felt.Element
	//
	nonResidue := curve.NonResidue()
	scaled.Mul(&inputs[0], &nonResidue)
	//
	root, ok := curve.CanonicalSqrt(&scaled)
	if !ok {
		return nil, fmt.Errorf("neither %s nor its scaling is a residue", inputs[0].String())
	}
	//
	return []felt.Element{root}, nil
}

func testLessThan(inputs []felt.Element) ([]felt.Element, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("expected 2 inputs, got %d", len(inputs))
	}
	//
	if felt.Canonical(&inputs[0]).Cmp(felt.Canonical(&inputs[1])) < 0 {
		return []felt.Element{felt.New(1)}, nil
	}
	//
	return []felt.Element{felt.New(0)}, nil
}
