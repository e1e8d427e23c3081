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

// Package alloc provides the allocator triple used by vector.Vector to manage its element buffer.
//
// An Allocator returns buffers whose len is the requested element count.
// A nil or short buffer reports an allocation failure, which the vector maps to ErrOutOfMemory.
package alloc

import (
	"math"

	"github.com/cloudwego/vector/unsafex"
)

// Allocator allocates, resizes and releases element buffers.
type Allocator[T any] interface {
	// Alloc returns a zeroed buffer with len == n.
	Alloc(n int) []T

	// Realloc returns a buffer with len == n whose first len(buf) elements equal buf.
	// Elements after len(buf) may be stale.
	// buf must not be used after Realloc returns a non-nil buffer.
	Realloc(buf []T, n int) []T

	// Free releases buf. buf must not be used afterward.
	Free(buf []T)
}

var (
	_ Allocator[any]   = Heap[any]{}
	_ Allocator[int64] = Pooled[int64]{}
	_ Allocator[int64] = Dirty[int64]{}
	_ Allocator[int64] = &Arena[int64]{}
)

// MaxBytes is the largest buffer in bytes an allocator of this package returns.
// It's the largest size class of mcache, requests above it fail with nil.
const MaxBytes = min(1<<45, math.MaxInt)

// fits reports whether n elements of T can be allocated.
// Zero-sized T takes no memory, it always fits.
func fits[T any](n int) bool {
	if n <= 0 {
		return false
	}
	sz := unsafex.SizeOf[T]()
	return sz == 0 || n <= MaxBytes/sz
}

// Heap is the default allocator, it's backed by the Go heap.
// Free does nothing and leaves buffers to GC.
type Heap[T any] struct{}

// Alloc implements Allocator.
func (Heap[T]) Alloc(n int) []T {
	if !fits[T](n) {
		return nil
	}
	return make([]T, n)
}

// Realloc implements Allocator.
func (Heap[T]) Realloc(buf []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if n <= cap(buf) {
		return buf[:n]
	}
	if !fits[T](n) {
		return nil
	}
	nbuf := make([]T, n)
	copy(nbuf, buf)
	return nbuf
}

// Free implements Allocator.
func (Heap[T]) Free(buf []T) {}
