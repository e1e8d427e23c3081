/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package vector

import (
	"errors"
	"fmt"
)

// Errors reported by Vector.
//
// Methods without the Try prefix panic with these errors (possibly wrapped),
// use errors.Is on the recovered value to tell them apart.
var (
	// ErrOutOfMemory means the allocator failed or the capacity overflows int.
	ErrOutOfMemory = errors.New("vector: out of memory")

	// ErrEmpty means Pop or Top is called on an empty vector.
	ErrEmpty = errors.New("vector: empty vector")

	// ErrCorrupted means size exceeds capacity. It's a bug, never a caller error.
	ErrCorrupted = errors.New("vector: size exceeds capacity")

	// ErrOutOfRange means an index is not in [0, Len()).
	ErrOutOfRange = errors.New("vector: index out of range")

	// ErrIterating means the vector is mutated inside Do, All or Values.
	ErrIterating = errors.New("vector: mutated during iteration")
)

func errOutOfMemory(n int) error {
	return fmt.Errorf("%w: failed to allocate %d elements", ErrOutOfMemory, n)
}

func errOutOfRange(i, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, i, size)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
