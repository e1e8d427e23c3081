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

package unsafex

import "unsafe"

// SliceOf reinterprets b as a []T without copy.
// len and cap are scaled down by the size of T, trailing bytes are dropped.
// T must NOT contain pointer, and b must be aligned for T.
func SliceOf[T any](b []byte) []T {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 || cap(b) < sz {
		return nil
	}
	p := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	return unsafe.Slice(p, cap(b)/sz)[:len(b)/sz]
}

// BytesOf reinterprets s as a []byte without copy.
// len and cap are scaled up by the size of T.
func BytesOf[T any](s []T) []byte {
	var zero T
	sz := int(unsafe.Sizeof(zero))
	if sz == 0 || cap(s) == 0 {
		return nil
	}
	p := (*byte)(unsafe.Pointer(unsafe.SliceData(s)))
	return unsafe.Slice(p, cap(s)*sz)[:len(s)*sz]
}

// SizeOf returns the size in bytes of T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Overlaps reports whether the backing arrays of a[:cap(a)] and b[:len(b)] share memory.
func Overlaps[T any](a, b []T) bool {
	sz := uintptr(SizeOf[T]())
	if sz == 0 || cap(a) == 0 || len(b) == 0 {
		return false
	}
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return pa < pb+uintptr(len(b))*sz && pb < pa+uintptr(cap(a))*sz
}
