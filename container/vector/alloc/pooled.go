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
	"math/bits"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/cloudwego/vector/unsafex"
)

// Pooled allocates buffers from mcache, the size-classed []byte pools of bytedance/gopkg.
// Free puts buffers back to the pools, so it fits vectors which are created and destroyed frequently.
//
// T must NOT contain pointer, GC does not scan buffers returned by Pooled.
// Free and Realloc only accept buffers returned by Pooled.
type Pooled[T any] struct{}

// Alloc implements Allocator.
func (Pooled[T]) Alloc(n int) []T {
	sz, ok := byteSize[T](n)
	if !ok {
		return nil
	}
	ret := unsafex.SliceOf[T](mcache.Malloc(sz))
	clear(ret) // buffers from pools are dirty
	return ret
}

// Realloc implements Allocator.
func (p Pooled[T]) Realloc(buf []T, n int) []T {
	if n <= cap(buf) {
		if n <= 0 {
			return nil
		}
		return buf[:n]
	}
	sz, ok := byteSize[T](n)
	if !ok {
		return nil
	}
	ret := unsafex.SliceOf[T](mcache.Malloc(sz))
	copy(ret, buf)
	p.Free(buf)
	return ret
}

// Free implements Allocator.
func (Pooled[T]) Free(buf []T) {
	b := unsafex.BytesOf(buf)
	if b == nil {
		return
	}
	// SliceOf rounds cap down to a multiple of the size of T,
	// the size class of mcache is the next power of two.
	if c := cap(b); c&(c-1) != 0 {
		b = unsafe.Slice(unsafe.SliceData(b), 1<<bits.Len(uint(c)))
	}
	mcache.Free(b)
}

// Dirty allocates buffers from the Go heap like Heap, but Realloc skips zeroing the new buffer.
// Only elements copied from the old buffer are initialized, the rest may hold any bits.
//
// T must NOT contain pointer.
type Dirty[T any] struct{}

// Alloc implements Allocator.
func (Dirty[T]) Alloc(n int) []T {
	if !fits[T](n) {
		return nil
	}
	return make([]T, n)
}

// Realloc implements Allocator.
func (Dirty[T]) Realloc(buf []T, n int) []T {
	if n <= cap(buf) {
		if n <= 0 {
			return nil
		}
		return buf[:n]
	}
	sz, ok := byteSize[T](n)
	if !ok {
		return nil
	}
	ret := unsafex.SliceOf[T](dirtmake.Bytes(sz, sz))
	copy(ret, buf)
	return ret
}

// Free implements Allocator.
func (Dirty[T]) Free(buf []T) {}

// byteSize returns the bytes needed by n elements of T.
// It returns false if n is not positive, T is zero-sized, or the result exceeds MaxBytes.
func byteSize[T any](n int) (int, bool) {
	sz := unsafex.SizeOf[T]()
	if n <= 0 || sz == 0 || n > MaxBytes/sz {
		return 0, false
	}
	return n * sz, true
}
