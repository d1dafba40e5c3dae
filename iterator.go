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

// Iterator is a forward (and backward) in-order cursor over a Tree.
// Its zero value is not meaningful; obtain one from Tree.Begin,
// Tree.End, or Tree.IteratorTo. Equality is pointer identity of the
// current node, so two iterators compare equal with == iff they
// reference the same element or are both End.
//
// A mutating call on the tree (Insert, Erase, Clear, CloneFrom,
// UnlinkLeftmostWithoutRebalance) may reposition outstanding
// in-order iterators that were not pointing at the element removed;
// IteratorTo(e) remains valid for any still-linked e.
type Iterator[K cmp.Ordered, V Interval[K]] struct {
	n *Node[K, V]
}

// Done reports whether it has advanced past the last element (i.e.
// equals the tree's End iterator).
func (it Iterator[K, V]) Done() bool { return it.n.header }

// Value returns the element at the iterator's current position.
// Calling Value on a Done iterator panics, the same as dereferencing
// an end iterator in any other language's container library.
func (it Iterator[K, V]) Value() V {
	if it.n.header {
		panic("ivtree: Value called on a Done Iterator")
	}
	return it.n.Value
}

// Node returns the handle at the iterator's current position, usable
// with Tree.Erase. Calling Node on a Done iterator returns nil.
func (it Iterator[K, V]) Node() *Node[K, V] {
	if it.n.header {
		return nil
	}
	return it.n
}

// Next advances it to the following element in in-order sequence.
// Advancing past the last element reaches Done; advancing further is
// undefined.
func (it *Iterator[K, V]) Next() {
	it.n = it.n.successor()
}

// Prev moves it to the preceding element in in-order sequence.
// Calling Prev on an iterator at the first element reaches the
// header (Done); from there Prev is undefined.
func (it *Iterator[K, V]) Prev() {
	if it.n.header {
		it.n = it.n.right // header.right is the rightmost element
		return
	}
	it.n = it.n.predecessor()
}
