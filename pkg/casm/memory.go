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
	"math/big"

	"github.com/sierralang/go-casm/pkg/curve"
	"github.com/sierralang/go-casm/pkg/felt"
)

// Memory models the read-only data segment embedded after the program code.
// It is established once at program-assembly time and never mutated; the
// only resident today is the blinding point used by accumulator states.
type Memory struct {
	base  uint64
	words []felt.Element
}

// NewMemory constructs a read-only segment at the given base address.
func NewMemory(base uint64, words ...felt.Element) Memory {
	return Memory{base: base, words: words}
}

// ProgramMemory returns the standard data segment, holding the blinding
// point's coordinates directly after the program code.
func ProgramMemory() Memory {
	blind := curve.Blinding()
	//
	return NewMemory(1, blind.X, blind.Y)
}

// Base returns the segment's base address.
func (m Memory) Base() uint64 {
	return m.base
}

// Read the word at address + offset, where the address is the canonical
// representative of a field element.
func (m Memory) Read(address *big.Int, offset int64) (felt.Element, error) {
	var index big.Int
	//
	index.Sub(address, new(big.Int).SetUint64(m.base))
	index.Add(&index, big.NewInt(offset))
	//
	if !index.IsInt64() || index.Int64() < 0 || index.Int64() >= int64(len(m.words)) {
		return felt.Element{}, fmt.Errorf("memory read outside program segment ([%s+%d])",
			address, offset)
	}
	//
	return m.words[index.Int64()], nil
}
