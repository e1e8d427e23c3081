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

import "iter"

// live returns the live elements and marks v as iterating.
// The returned func must be called when the iteration is done.
func (v *Vector[T]) live() ([]T, func()) {
	buf := v.elements[:v.size:v.size]
	v.iterating++
	return buf, func() { v.iterating-- }
}

// Do calls function f on the pointer of each element in index order.
// The range is fixed when Do is called, and Do always runs to the end.
//
// f may modify elements through the pointer,
// but it must not Push, Pop, Extend, Grow, Clear or Destroy v, which panic with ErrIterating.
func (v *Vector[T]) Do(f func(p *T)) {
	buf, done := v.live()
	defer done()
	for i := range buf {
		f(&buf[i])
	}
}

// All returns an iterator over indexes and pointers of elements in index order.
//
//	for i, p := range v.All() {
//		*p += i
//	}
//
// The range is fixed when the loop starts. The same restriction as Do applies to the loop body.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		buf, done := v.live()
		defer done()
		for i := range buf {
			if !yield(i, &buf[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over copies of elements in index order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		buf, done := v.live()
		defer done()
		for _, x := range buf {
			if !yield(x) {
				return
			}
		}
	}
}
