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

package alloc

import (
	"github.com/cloudwego/vector/unsafex"
	"github.com/cloudwego/vector/unsafex/malloc"
)

// Arena allocates buffers from a fixed arena managed by malloc.BuddyAllocator.
// The memory is bounded by the arena, Alloc and Realloc return nil once it's exhausted
// or the request exceeds the largest block.
//
// T must NOT contain pointer. Arena is not goroutine safe, neither is the BuddyAllocator.
type Arena[T any] struct {
	b *malloc.BuddyAllocator
}

// NewArena returns an Arena allocating from b.
func NewArena[T any](b *malloc.BuddyAllocator) *Arena[T] {
	return &Arena[T]{b: b}
}

// Alloc implements Allocator.
func (a *Arena[T]) Alloc(n int) []T {
	ret := a.alloc(n)
	clear(ret) // blocks are reused without zeroing
	return ret
}

func (a *Arena[T]) alloc(n int) []T {
	sz, ok := byteSize[T](n)
	if !ok || sz > a.b.MaxAlloc() {
		return nil
	}
	return unsafex.SliceOf[T](a.b.Alloc(sz))
}

// Realloc implements Allocator.
// buf is extended in place if its block is large enough.
func (a *Arena[T]) Realloc(buf []T, n int) []T {
	if n <= cap(buf) {
		if n <= 0 {
			return nil
		}
		return buf[:n]
	}
	ret := a.alloc(n)
	if ret == nil {
		return nil
	}
	copy(ret, buf)
	a.Free(buf)
	return ret
}

// Free implements Allocator.
func (a *Arena[T]) Free(buf []T) {
	if b := unsafex.BytesOf(buf); b != nil {
		a.b.Free(b)
	}
}
