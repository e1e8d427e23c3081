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

import "github.com/cloudwego/vector/container/vector/alloc"

// DefaultBaseCapacity is the capacity of a newly initialized vector.
const DefaultBaseCapacity = 16

// Option configures the allocator and base capacity of a Vector.
type Option[T any] struct {
	// Allocator manages the element buffer.
	// alloc.Heap is used if it's nil.
	Allocator alloc.Allocator[T]

	// BaseCapacity is the capacity allocated by Init.
	// The capacity is doubled each time the vector is full,
	// so it's always BaseCapacity * 2^k.
	// DefaultBaseCapacity is used if it's not positive.
	BaseCapacity int
}

// DefaultOption returns the default values of Option.
func DefaultOption[T any]() *Option[T] {
	return &Option[T]{
		Allocator:    alloc.Heap[T]{},
		BaseCapacity: DefaultBaseCapacity,
	}
}
