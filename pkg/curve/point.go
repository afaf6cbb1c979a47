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
	"errors"
	"math/big"

	"github.com/sierralang/go-casm/pkg/felt"
)

// ErrSameX signals an affine addition whose operands share an x coordinate.
// The slope formula is undefined there: the points either coincide
// (doubling) or sum to the point at infinity.
var ErrSameX = errors.New("affine addition with coincident x coordinates")

// Point is an affine curve point.  The all-zero pair is the distinguished
// zero point (the group identity), even though it does not satisfy the curve
// equation; operations special-case it rather than derive it algebraically.
type Point struct {
	X felt.Element
	Y felt.Element
}

// Zero returns the distinguished zero point.
func Zero() Point {
	return Point{}
}

// IsZero checks whether this is the distinguished zero point.  Testing the Y
// coordinate suffices since no point on the curve has y = 0.
func (p *Point) IsZero() bool {
	return p.Y.IsZero()
}

// OnCurve checks whether this point satisfies the curve equation.  The zero
// point is not on the curve.
func (p *Point) OnCurve() bool {
	var lhs felt.Element
	//
	lhs.Square(&p.Y)
	rhs := Rhs(&p.X)
	//
	return lhs.Equal(&rhs)
}

// Neg returns the negation of this point, which mirrors it across the x
// axis.  Negating the zero point is a no-op since its y coordinate is zero.
func (p *Point) Neg() Point {
	var y felt.Element
	//
	y.Neg(&p.Y)
	//
	return Point{X: p.X, Y: y}
}

// Rhs evaluates the right-hand side of the curve equation, x³ + alpha·x +
// beta, at the given x coordinate.
func Rhs(x *felt.Element) felt.Element {
	var (
		x2    felt.Element
		rhs   felt.Element
		alpha = Alpha()
		beta  = Beta()
	)
	//
	x2.Square(x)
	rhs.Mul(&x2, x)
	x2.Mul(&alpha, x)
	rhs.Add(&rhs, &x2)
	rhs.Add(&rhs, &beta)
	//
	return rhs
}

// Lift attempts to lift an x coordinate onto the curve, returning the point
// with the canonical (smaller) root as its y coordinate.  Returns false if
// x³ + alpha·x + beta is not a quadratic residue.
func Lift(x *felt.Element) (Point, bool) {
	rhs := Rhs(x)
	//
	y, ok := CanonicalSqrt(&rhs)
	if !ok {
		return Point{}, false
	}
	//
	return Point{X: *x, Y: y}, true
}

// CanonicalSqrt returns the canonical square root of the given value, that
// is the root whose representative lies below P/2.  Returns false if the
// value is not a quadratic residue.
func CanonicalSqrt(v *felt.Element) (felt.Element, bool) {
	var root felt.Element
	//
	if root.Sqrt(v) == nil {
		return felt.Element{}, false
	}
	//
	var neg felt.Element
	//
	neg.Neg(&root)
	// Pick whichever of the two roots is canonically smaller.
	if neg.Cmp(&root) < 0 {
		root = neg
	}
	//
	return root, true
}

// Add computes the sum of two distinct, non-zero affine points.  Returns
// ErrSameX if the operands share an x coordinate, since the slope formula is
// undefined there.
func Add(p Point, q Point) (Point, error) {
	var numerator, denominator felt.Element
	//
	denominator.Sub(&q.X, &p.X)
	if denominator.IsZero() {
		return Point{}, ErrSameX
	}
	//
	numerator.Sub(&q.Y, &p.Y)
	//
	return chord(p, q.X, numerator, denominator), nil
}

// Double computes the sum of a non-zero affine point with itself using the
// tangent slope.
func Double(p Point) Point {
	var (
		numerator   felt.Element
		denominator felt.Element
		x2          felt.Element
		alpha       = Alpha()
	)
	// numerator = 3*x² + alpha
	x2.Square(&p.X)
	numerator.Double(&x2)
	numerator.Add(&numerator, &x2)
	numerator.Add(&numerator, &alpha)
	// denominator = 2*y, non-zero since y != 0 on the curve
	denominator.Double(&p.Y)
	//
	return chord(p, p.X, numerator, denominator)
}

// ScalarMulAdd computes state + scalar·point using a binary ladder over
// affine coordinates, mirroring the accelerator builtin: any intermediate
// sum that hits the point at infinity is an error rather than a value.
func ScalarMulAdd(state Point, scalar *felt.Element, point Point) (Point, error) {
	var (
		bits    = felt.Canonical(scalar)
		partial = state
		shifted = point
		err     error
	)
	//
	for i := 0; i < bits.BitLen(); i++ {
		if bits.Bit(i) == 1 {
			if partial, err = Add(partial, shifted); err != nil {
				return Point{}, err
			}
		}
		//
		shifted = Double(shifted)
	}
	//
	return partial, nil
}

// chord evaluates the chord (or tangent) formulas at a precomputed slope
// fraction: given (x0, y0), the x coordinate of the other point, and the
// slope numerator and denominator, it returns the third intersection point
// mirrored across the x axis.  The denominator is assumed non-zero.
func chord(p Point, x1 felt.Element, numerator felt.Element, denominator felt.Element) Point {
	var slope, rx, ry felt.Element
	//
	denominator.Inverse(&denominator)
	slope.Mul(&numerator, &denominator)
	// rx = slope² - (x0 + x1)
	rx.Square(&slope)
	rx.Sub(&rx, &p.X)
	rx.Sub(&rx, &x1)
	// ry = slope·(x0 - rx) - y0
	ry.Sub(&p.X, &rx)
	ry.Mul(&ry, &slope)
	ry.Sub(&ry, &p.Y)
	//
	return Point{X: rx, Y: ry}
}

// CanonicalLess reports whether the canonical representative of the given
// element is strictly below the given bound.
func CanonicalLess(e *felt.Element, bound *big.Int) bool {
	return felt.Canonical(e).Cmp(bound) < 0
}
