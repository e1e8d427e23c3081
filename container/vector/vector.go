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

// Package vector implements Vector, a generic growable array backed by one contiguous buffer.
//
// A Vector can be used in two styles:
//
//	var v vector.Vector[int] // owned by the caller
//	v.Init()
//	defer v.Destroy()
//
//	p := vector.New[int]() // allocated by the package
//	defer p.Free()
//
// Both styles share the same buffer semantics. The zero Vector is also ready to use,
// it allocates the base capacity on the first Push.
//
// A Vector is not goroutine safe.
package vector

import (
	"math"

	"github.com/cloudwego/vector/container/vector/alloc"
	"github.com/cloudwego/vector/unsafex"
)

// Vector is a growable array of T.
//
// elements[:size] are live elements, elements[size:] are reserved slots which may hold stale values.
// The capacity is len(elements), it starts from the base capacity and is doubled on overflow.
// It never shrinks unless Destroy is called.
type Vector[T any] struct {
	elements []T
	size     int

	a    alloc.Allocator[T]
	base int

	iterating int // number of active Do/All/Values
}

// New allocates a Vector and initializes it with the default option.
func New[T any]() *Vector[T] {
	return NewWithOption[T](nil)
}

// NewWithOption allocates a Vector and initializes it with o.
// It panics with ErrOutOfMemory if the initial buffer cannot be allocated.
func NewWithOption[T any](o *Option[T]) *Vector[T] {
	v := &Vector[T]{}
	return v.InitWithOption(o)
}

// Init initializes v with the default option. See InitWithOption.
func (v *Vector[T]) Init() *Vector[T] {
	return v.InitWithOption(nil)
}

// InitWithOption sets size to 0 and allocates a zeroed buffer of the base capacity.
// v must be uninitialized or destroyed, a live buffer is NOT released.
// It panics with ErrOutOfMemory if the allocation fails.
func (v *Vector[T]) InitWithOption(o *Option[T]) *Vector[T] {
	must(v.TryInitWithOption(o))
	return v
}

// TryInit is the same as Init except that it returns the error instead of panicking.
func (v *Vector[T]) TryInit() error {
	return v.TryInitWithOption(nil)
}

// TryInitWithOption is the same as InitWithOption except that it returns the error instead of panicking.
// v is not changed if it fails.
func (v *Vector[T]) TryInitWithOption(o *Option[T]) error {
	if o == nil {
		o = DefaultOption[T]()
	}
	a := o.Allocator
	if a == nil {
		a = alloc.Heap[T]{}
	}
	base := o.BaseCapacity
	if base <= 0 {
		base = DefaultBaseCapacity
	}
	buf := a.Alloc(base)
	if len(buf) < base {
		return errOutOfMemory(base)
	}
	*v = Vector[T]{elements: buf[:base], a: a, base: base}
	return nil
}

func (v *Vector[T]) allocator() alloc.Allocator[T] {
	if v.a == nil {
		v.a = alloc.Heap[T]{}
	}
	return v.a
}

func (v *Vector[T]) baseCapacity() int {
	if v.base <= 0 {
		return DefaultBaseCapacity
	}
	return v.base
}

// resize replaces the buffer with one of capacity n, the old elements are preserved.
func (v *Vector[T]) resize(n int) error {
	var buf []T
	if v.elements == nil {
		buf = v.allocator().Alloc(n)
	} else {
		buf = v.allocator().Realloc(v.elements, n)
	}
	if len(buf) < n {
		return errOutOfMemory(n)
	}
	v.elements = buf[:n]
	return nil
}

// nextCapacity returns the capacity after doubling c until it's >= n.
func (v *Vector[T]) nextCapacity(c, n int) (int, bool) {
	if c == 0 {
		c = v.baseCapacity()
	}
	for c < n {
		if c > math.MaxInt/2 {
			return 0, false
		}
		c *= 2
	}
	return c, true
}

// Grow doubles the capacity, or allocates the base capacity if there's no buffer.
// Push calls it when the vector is full, there's no need to call it directly.
// It panics with ErrOutOfMemory if the allocation fails.
func (v *Vector[T]) Grow() *Vector[T] {
	must(v.TryGrow())
	return v
}

// TryGrow is the same as Grow except that it returns the error instead of panicking.
// v is not changed if it fails.
func (v *Vector[T]) TryGrow() error {
	if v.iterating > 0 {
		return ErrIterating
	}
	c, ok := v.nextCapacity(len(v.elements), len(v.elements)+1)
	if !ok {
		return errOutOfMemory(math.MaxInt)
	}
	return v.resize(c)
}

// Push appends x and returns v for chaining.
func (v *Vector[T]) Push(x T) *Vector[T] {
	must(v.TryPush(x))
	return v
}

// TryPush is the same as Push except that it returns the error instead of panicking.
func (v *Vector[T]) TryPush(x T) error {
	if v.iterating > 0 {
		return ErrIterating
	}
	if v.size > len(v.elements) {
		return ErrCorrupted
	}
	if v.size == len(v.elements) {
		if err := v.TryGrow(); err != nil {
			return err
		}
	}
	v.elements[v.size] = x
	v.size++
	return nil
}

// Pop removes the last element and returns it.
// It panics with ErrEmpty if v is empty.
// The slot of the removed element is not zeroed.
func (v *Vector[T]) Pop() T {
	x, err := v.TryPop()
	must(err)
	return x
}

// TryPop is the same as Pop except that it returns the error instead of panicking.
func (v *Vector[T]) TryPop() (x T, err error) {
	if v.iterating > 0 {
		return x, ErrIterating
	}
	if v.size == 0 {
		return x, ErrEmpty
	}
	v.size--
	return v.elements[v.size], nil
}

// Top returns the last element.
// It panics with ErrEmpty if v is empty.
func (v *Vector[T]) Top() T {
	x, err := v.TryTop()
	must(err)
	return x
}

// TryTop is the same as Top except that it returns the error instead of panicking.
func (v *Vector[T]) TryTop() (x T, err error) {
	if v.size == 0 {
		return x, ErrEmpty
	}
	return v.elements[v.size-1], nil
}

// Extend appends items in order and returns v for chaining.
// The result is the same as calling Push for each item,
// but the buffer is reallocated at most once.
func (v *Vector[T]) Extend(items ...T) *Vector[T] {
	must(v.TryExtend(items...))
	return v
}

// TryExtend is the same as Extend except that it returns the error instead of panicking.
// v is not changed if it fails, none of items is appended.
func (v *Vector[T]) TryExtend(items ...T) error {
	if v.iterating > 0 {
		return ErrIterating
	}
	if v.size > len(v.elements) {
		return ErrCorrupted
	}
	if len(items) == 0 {
		return nil
	}
	if len(items) > math.MaxInt-v.size {
		return errOutOfMemory(math.MaxInt)
	}
	n := v.size + len(items)
	if n > len(v.elements) {
		c, ok := v.nextCapacity(len(v.elements), n)
		if !ok {
			return errOutOfMemory(n)
		}
		if unsafex.Overlaps(v.elements, items) {
			// Realloc may release the buffer items points to
			items = append([]T(nil), items...)
		}
		if err := v.resize(c); err != nil {
			return err
		}
	}
	v.size += copy(v.elements[v.size:], items)
	return nil
}

// Clear removes all elements. The buffer is kept for reuse.
func (v *Vector[T]) Clear() {
	if v.iterating > 0 {
		panic(ErrIterating)
	}
	v.size = 0
}

// Destroy releases the buffer and sets both size and capacity to 0.
// The vector can be initialized again by Init, or reused as a zero Vector.
func (v *Vector[T]) Destroy() {
	if v.iterating > 0 {
		panic(ErrIterating)
	}
	if v.elements != nil {
		v.allocator().Free(v.elements)
	}
	v.elements = nil
	v.size = 0
}

// Free destroys v and drops its allocator.
// It's the counterpart of New, v must not be used afterward.
func (v *Vector[T]) Free() {
	v.Destroy()
	v.a = nil
	v.base = 0
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the capacity.
func (v *Vector[T]) Cap() int {
	return len(v.elements)
}

// Empty reports whether v has no element.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Elements returns the live elements.
// The returned slice shares the buffer with v, and it's valid until the next Push, Extend, Grow or Destroy.
// Appending to it never overwrites the buffer.
func (v *Vector[T]) Elements() []T {
	return v.elements[:v.size:v.size]
}

// At returns the ith element.
// It panics with ErrOutOfRange if i is not in [0, Len()).
func (v *Vector[T]) At(i int) T {
	return *v.Ptr(i)
}

// Ptr returns the pointer of the ith element.
// Use Ptr if you want to modify the element in place.
// It panics with ErrOutOfRange if i is not in [0, Len()).
func (v *Vector[T]) Ptr(i int) *T {
	if uint(i) >= uint(v.size) {
		panic(errOutOfRange(i, v.size))
	}
	return &v.elements[i]
}
