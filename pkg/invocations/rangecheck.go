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
	"math/big"

	"github.com/sierralang/go-casm/pkg/casm"
)

// ErrBoundTooLarge signals a requested range bound beyond what a single slot
// of the range-check builtin can represent.  This fails construction of the
// offending operation; it is never a trace-time condition.
var ErrBoundTooLarge = errors.New("range bound exceeds builtin slot granularity")

// rcGranularity is the per-slot granularity of the range-check builtin:
// a slot can assert any bound up to 2^251.
var rcGranularity = new(big.Int).Lsh(big.NewInt(1), 251)

// ValidateUnderLimit emits instructions asserting that the canonical value
// of the given cell lies in [0, bound), consuming one slot of the
// range-check builtin named by the cursor.  One auxiliary cell is used to
// stage the checked value.  The emission has no failure branch: a value at
// or above the bound leaves the trace unprovable rather than branching.
func ValidateUnderLimit(builder *casm.Builder, bound *big.Int,
	value casm.Cell, cursor casm.Cell, aux []casm.Cell) error {
	//
	if bound.Sign() <= 0 || bound.Cmp(rcGranularity) > 0 {
		return fmt.Errorf("%w: %s", ErrBoundTooLarge, bound)
	} else if len(aux) < 1 {
		return fmt.Errorf("%w: no auxiliary cell for staging", ErrInvalidReference)
	}
	// Stage the value as a plain cell bound to the builtin slot.
	builder.Assert(aux[0], casm.From(casm.Ref(value)))
	builder.RangeCheck(cursor, aux[0], bound)
	//
	return nil
}
