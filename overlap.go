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

// overlapStage names where advance resumes within the current node: 0
// means "just arrived from above, haven't tried the left subtree yet",
// 1 means "left subtree is done, haven't tested this node itself", 2
// means "this node is tested, haven't tried the right subtree yet",
// and 3 means "right subtree is done, time to ascend".
type overlapStage uint8

const (
	stageDescendLeft overlapStage = iota
	stageTestSelf
	stageDescendRight
	stageAscend
)

// OverlapIterator walks every element whose interval intersects a
// fixed query range [qs, qe], in non-decreasing Start order, pruning
// entire subtrees using the maxEnd augmentation instead of visiting
// every element in the tree. Obtain one from Tree.IntervalIntersect.
type OverlapIterator[K cmp.Ordered, V Interval[K]] struct {
	n      *Node[K, V]
	qs, qe K
	stage  overlapStage
}

// Done reports whether the iterator has exhausted every overlapping
// element.
func (it OverlapIterator[K, V]) Done() bool { return it.n.header }

// Value returns the element at the iterator's current position.
// Calling Value on a Done iterator panics.
func (it OverlapIterator[K, V]) Value() V {
	if it.n.header {
		panic("ivtree: Value called on a Done OverlapIterator")
	}
	return it.n.Value
}

// Node returns the handle at the iterator's current position, usable
// with Tree.Erase. Calling Node on a Done iterator returns nil.
func (it OverlapIterator[K, V]) Node() *Node[K, V] {
	if it.n.header {
		return nil
	}
	return it.n
}

// mayIntersectLeft reports whether n's left subtree could contain an
// element overlapping [qs, qe]: every interval in that subtree ends at
// or before its maxEnd, so if that ceiling falls short of qs nothing
// there can reach the query range.
func mayIntersectLeft[K cmp.Ordered, V Interval[K]](n *Node[K, V], qs K) bool {
	return n.left != nil && n.left.maxEnd >= qs
}

// mayIntersectRight reports whether n's right subtree could contain an
// element overlapping [qs, qe]. As on the left, if the subtree's maxEnd
// falls short of qs nothing there can reach the query range. In
// addition, the tree orders by Start, so every element in the right
// subtree starts at or after n itself; if n's own Start already exceeds
// qe, none of them can start at or before qe either.
func mayIntersectRight[K cmp.Ordered, V Interval[K]](n *Node[K, V], qs, qe K) bool {
	return n.right != nil && n.right.maxEnd >= qs && n.Value.Start() <= qe
}

// intersects is the closed-interval overlap test: v and [qs, qe] share
// a point iff v does not end before qs and does not start after qe.
func intersects[K cmp.Ordered, V Interval[K]](v V, qs, qe K) bool {
	return v.Start() <= qe && v.End() >= qs
}

// advance runs the stage machine forward from its current node and
// stage until it lands on an element that intersects [qs, qe], or it
// ascends past the root onto the tree's header (Done).
//
// The four stages mirror a manual, iterative in-order traversal with
// two pruning checks spliced in: stageDescendLeft only follows the
// left child when mayIntersectLeft says the subtree could matter,
// stageDescendRight is the same for the right child, and stageAscend
// walks upward remembering whether it climbed out of a left or right
// child so it knows whether the parent still needs testing
// (stageTestSelf) or can be skipped straight to ascending again
// (stageAscend).
func (it *OverlapIterator[K, V]) advance() {
	for {
		switch it.stage {
		case stageDescendLeft:
			if mayIntersectLeft(it.n, it.qs) {
				it.n = it.n.left
				it.stage = stageDescendLeft
				continue
			}
			it.stage = stageTestSelf
		case stageTestSelf:
			it.stage = stageDescendRight
			if intersects[K, V](it.n.Value, it.qs, it.qe) {
				return
			}
		case stageDescendRight:
			if mayIntersectRight(it.n, it.qs, it.qe) {
				it.n = it.n.right
				it.stage = stageDescendLeft
				continue
			}
			it.stage = stageAscend
		case stageAscend:
			child := it.n
			parent := child.parent
			if parent == nil || parent.header {
				it.n = parent
				return
			}
			it.n = parent
			if child.isLeftChild() {
				it.stage = stageTestSelf
			} else {
				it.stage = stageAscend
			}
		}
	}
}

// Next advances the iterator to the following overlapping element, or
// to Done if none remain. Calling Next on a Done iterator is
// undefined.
func (it *OverlapIterator[K, V]) Next() {
	it.stage = stageDescendRight
	it.advance()
}
