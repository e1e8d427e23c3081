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

// Limit returns an Allocator which fails any request for more than limit elements.
func Limit[T any](a Allocator[T], limit int) Allocator[T] {
	return &limited[T]{a: a, limit: limit}
}

type limited[T any] struct {
	a     Allocator[T]
	limit int
}

func (l *limited[T]) Alloc(n int) []T {
	if n > l.limit {
		return nil
	}
	return l.a.Alloc(n)
}

func (l *limited[T]) Realloc(buf []T, n int) []T {
	if n > l.limit {
		return nil
	}
	return l.a.Realloc(buf, n)
}

func (l *limited[T]) Free(buf []T) { l.a.Free(buf) }

// Counter wraps an Allocator and counts the calls made to it.
// It's not goroutine safe.
type Counter[T any] struct {
	a Allocator[T]

	Allocs   int
	Reallocs int
	Frees    int
}

// Counting returns a Counter wrapping a.
func Counting[T any](a Allocator[T]) *Counter[T] {
	return &Counter[T]{a: a}
}

// Alloc implements Allocator.
func (c *Counter[T]) Alloc(n int) []T {
	c.Allocs++
	return c.a.Alloc(n)
}

// Realloc implements Allocator.
func (c *Counter[T]) Realloc(buf []T, n int) []T {
	c.Reallocs++
	return c.a.Realloc(buf, n)
}

// Free implements Allocator.
func (c *Counter[T]) Free(buf []T) {
	c.Frees++
	c.a.Free(buf)
}

// Reset sets all counters to zero.
func (c *Counter[T]) Reset() {
	c.Allocs, c.Reallocs, c.Frees = 0, 0, 0
}
