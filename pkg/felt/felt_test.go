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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Felt_Modulus(t *testing.T) {
	expected, _ := new(big.Int).SetString(
		"3618502788666131213697322783095070105623107215331596699973092056135872020481", 10)
	//
	assert.Zero(t, Modulus().Cmp(expected), "unexpected field prime")
}

func Test_Felt_HalfPrime(t *testing.T) {
	var (
		half    = HalfPrime()
		doubled = new(big.Int).Lsh(half, 1)
	)
	// ceil(P/2) doubles to P + 1 for odd P.
	doubled.Sub(doubled, big.NewInt(1))
	assert.Zero(t, doubled.Cmp(Modulus()), "HalfPrime() is not ceil(P/2)")
	// 1/2 (mod P) is the same value.
	var invTwo, two Element
	//
	two = New(2)
	invTwo.Inverse(&two)
	//
	assert.Zero(t, Canonical(&invTwo).Cmp(half), "HalfPrime() != 1/2 (mod P)")
}

func Test_Felt_MinusOne(t *testing.T) {
	var (
		minusOne = MinusOne()
		one      = One()
		sum      Element
	)
	//
	sum.Add(&minusOne, &one)
	//
	assert.True(t, sum.IsZero(), "-1 + 1 != 0")
}

func Test_Felt_CanonicalRoundTrip(t *testing.T) {
	var (
		value    = FromString("12345678901234567890")
		restored = FromBig(Canonical(&value))
	)
	//
	assert.True(t, restored.Equal(&value), "canonical round trip failed")
}

func Test_Felt_FromStringPanics(t *testing.T) {
	assert.Panics(t, func() { FromString("not a number") })
}
