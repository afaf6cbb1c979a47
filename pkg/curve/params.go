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
package curve

import (
	"github.com/sierralang/go-casm/pkg/felt"
)

// The target curve is the Stark curve, given in short Weierstrass form by
//
//	Y² = X³ + alpha·X + beta
//
// over the Stark prime field.  The curve has odd (prime) order, a fact the
// point-from-x soundness argument depends on.

// Alpha is the linear coefficient of the curve equation.
func Alpha() felt.Element {
	return felt.New(1)
}

// Beta is the constant coefficient of the curve equation.
func Beta() felt.Element {
	return felt.FromString(
		"3141592653589793238462643383279502884197169399375105820974944592307816406665")
}

// NonResidue is a fixed quadratic non-residue of the field, used to prove
// that a value has no square root: for rhs != 0, exactly one of rhs and
// NonResidue*rhs is a square.  This is a property of the specific field
// prime; it must be re-derived before porting to any other field.
func NonResidue() felt.Element {
	return felt.New(3)
}

// Blinding returns the fixed, non-identity curve point embedded in the
// program preamble.  Every accumulator starts offset by this point so that
// the stored coordinates never represent the identity during accumulation.
func Blinding() Point {
	return Point{
		X: felt.FromString(
			"874739451078007766457464989774322083649278607533249481151382481072868806602"),
		Y: felt.FromString(
			"152666792071518830868575557812948353041420400780739481342941381225525861407"),
	}
}
