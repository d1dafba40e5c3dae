// Copyright 2024 The ivtree Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ivtree

import "cmp"

// Range is a ready-made Interval[K] implementation: a closed interval
// [Lo, Hi] bounded by a totally ordered key. Most callers that do not
// need to carry extra payload fields on the node itself can store a
// Range directly; callers that do need extra fields can embed Range
// and inherit its Start/End/Intersects/Contains methods.
type Range[K cmp.Ordered] struct {
	Lo, Hi K
}

// NewRange constructs a Range, panicking if lo is greater than hi --
// every element stored in a Tree must satisfy Start() <= End() (I4).
func NewRange[K cmp.Ordered](lo, hi K) Range[K] {
	if lo > hi {
		panic("ivtree: range Lo must not exceed Hi")
	}
	return Range[K]{Lo: lo, Hi: hi}
}

// Start implements Interval[K].
func (r Range[K]) Start() K { return r.Lo }

// End implements Interval[K].
func (r Range[K]) End() K { return r.Hi }

// Intersects reports whether r and other share at least one point,
// treating both as closed intervals.
func (r Range[K]) Intersects(other Range[K]) bool {
	return max(r.Lo, other.Lo) <= min(r.Hi, other.Hi)
}

// Contains reports whether other is entirely within r, inclusive on
// both ends.
func (r Range[K]) Contains(other Range[K]) bool {
	return r.Lo <= other.Lo && other.Hi <= r.Hi
}

// ContainsPoint reports whether k falls within [r.Lo, r.Hi].
func (r Range[K]) ContainsPoint(k K) bool {
	return r.Lo <= k && k <= r.Hi
}

// Equals reports whether r and other have the same Lo and Hi.
func (r Range[K]) Equals(other Range[K]) bool {
	return r.Lo == other.Lo && r.Hi == other.Hi
}
