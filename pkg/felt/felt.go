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
package felt

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// Element is a field element of the Stark prime field, with
// P = 2^251 + 17*2^192 + 1.  All comparisons are defined over the canonical
// representative in [0, P).
type Element = fp.Element

// New constructs a field element from a small constant.
func New(value uint64) Element {
	return fp.NewElement(value)
}

// FromString constructs a field element from a decimal literal.  This is
// intended for fixed program constants only, hence a malformed literal is a
// programming error.
func FromString(literal string) Element {
	var e Element
	//
	if _, err := e.SetString(literal); err != nil {
		panic(fmt.Sprintf("malformed field constant %q: %v", literal, err))
	}
	//
	return e
}

// FromBig constructs a field element from a big integer, reducing it modulo
// the field prime.
func FromBig(value *big.Int) Element {
	var e Element
	//
	e.SetBigInt(value)
	//
	return e
}

// Modulus returns the field prime P as a fresh big integer.
func Modulus() *big.Int {
	return fp.Modulus()
}

// Canonical returns the canonical representative of the given element in
// [0, P) as a fresh big integer.
func Canonical(e *Element) *big.Int {
	return e.BigInt(new(big.Int))
}

// One returns the multiplicative identity.
func One() Element {
	var e Element
	//
	e.SetOne()
	//
	return e
}

// MinusOne returns P - 1, the field's additive inverse of one.
func MinusOne() Element {
	var e Element
	//
	e.SetOne()
	e.Neg(&e)
	//
	return e
}

// HalfPrime returns ceil(P/2).  Since 1/2 (mod P) = (P+1)/2, a canonical
// value v satisfies v < 1/2 (mod P) if and only if v < P/2.
func HalfPrime() *big.Int {
	var half big.Int
	//
	half.Add(fp.Modulus(), big.NewInt(1))
	half.Rsh(&half, 1)
	//
	return &half
}
