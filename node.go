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

// Interval is the capability a payload type must provide for Tree to
// order and augment it: a totally ordered start and end key. Start
// must never exceed End, and neither may change while the value is
// linked into a tree -- doing so silently violates the tree's binary
// search and maxEnd invariants.
type Interval[K cmp.Ordered] interface {
	Start() K
	End() K
}

type color uint8

const (
	black color = iota
	red
)

// Node is the tree's per-element storage: the payload plus the
// red-black metadata fields. Insert hands back a *Node as a stable
// handle; the caller uses it for Erase and IteratorTo. A Node must
// never be used with a tree other than the one that created it.
//
// A Node with nil parent/left/right is not attached to anything (a
// freshly erased node, or one that has never been inserted).
type Node[K cmp.Ordered, V Interval[K]] struct {
	Value V

	parent, left, right *Node[K, V]
	color                color
	maxEnd               K

	// header marks the per-tree sentinel used as the universal
	// end-of-range position (see Tree.header). It is never a real
	// element and is never returned to callers.
	header bool
}

// isLeftChild reports whether n is the left child of its parent. The
// header is its own special case: it is never anyone's child.
func (n *Node[K, V]) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

// sibling returns n's sibling: the parent's other child.
func (n *Node[K, V]) sibling() *Node[K, V] {
	if n.parent == nil {
		return nil
	}
	if n.isLeftChild() {
		return n.parent.right
	}
	return n.parent.left
}

// nodeColor returns the color of n, treating a nil node (an absent
// child) as black per the red-black invariants.
func nodeColor[K cmp.Ordered, V Interval[K]](n *Node[K, V]) color {
	if n == nil {
		return black
	}
	return n.color
}

// leftmost walks to the minimum node of the subtree rooted at n.
func (n *Node[K, V]) leftmost() *Node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// rightmost walks to the maximum node of the subtree rooted at n.
func (n *Node[K, V]) rightmost() *Node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the node that follows n in an in-order traversal:
// either the minimum of n's right subtree, or the nearest ancestor for
// which n is in the left subtree. Ascending past the root lands on the
// tree's header, which is the correct end-of-range sentinel.
func (n *Node[K, V]) successor() *Node[K, V] {
	if n.right != nil {
		return n.right.leftmost()
	}
	cur, p := n, n.parent
	for p != nil && !p.header && cur == p.right {
		cur, p = p, p.parent
	}
	return p
}

// predecessor is the mirror of successor.
func (n *Node[K, V]) predecessor() *Node[K, V] {
	if n.left != nil {
		return n.left.rightmost()
	}
	cur, p := n, n.parent
	for p != nil && !p.header && cur == p.left {
		cur, p = p, p.parent
	}
	return p
}

// recomputeMaxEnd restores I3 at n from its children's already-correct
// maxEnd values. It assumes left(n) and right(n) satisfy I3 already;
// callers are responsible for working bottom-up.
func recomputeMaxEnd[K cmp.Ordered, V Interval[K]](n *Node[K, V]) {
	m := n.Value.End()
	if n.left != nil {
		m = max(m, n.left.maxEnd)
	}
	if n.right != nil {
		m = max(m, n.right.maxEnd)
	}
	n.maxEnd = m
}

// initMaxEnd sets a freshly created leaf node's maxEnd to its own end,
// since it has no children yet.
func initMaxEnd[K cmp.Ordered, V Interval[K]](n *Node[K, V]) {
	n.maxEnd = n.Value.End()
}

// copyMaxEnd copies the augmentation field from src to dst, used by
// CloneFrom, which preserves structure and therefore does not need to
// recompute anything.
func copyMaxEnd[K cmp.Ordered, V Interval[K]](dst, src *Node[K, V]) {
	dst.maxEnd = src.maxEnd
}

// propagateMaxEnd walks from n up to (but not including) the header,
// recomputing maxEnd at every node visited. It does not stop early
// when a recomputed value matches the prior one.
func propagateMaxEnd[K cmp.Ordered, V Interval[K]](n *Node[K, V]) {
	for n != nil && !n.header {
		recomputeMaxEnd(n)
		n = n.parent
	}
}
