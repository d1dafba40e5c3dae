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

import (
	"cmp"
	"errors"
	"fmt"
)

// Sentinel errors returned by Check. They are not used by Insert/Erase,
// which are total functions over their contract per the package's
// error-handling design: a caller that violates the contract (erasing
// an iterator from a different tree, mutating a linked element's
// Start/End) gets undefined behavior, not an error return.
var (
	ErrBadOrder    = errors.New("ivtree: binary search order violated")
	ErrBadColor    = errors.New("ivtree: red-black color invariant violated")
	ErrBadMaxEnd   = errors.New("ivtree: maxEnd augmentation is stale")
	ErrBadInterval = errors.New("ivtree: Start() > End()")
	ErrBadHeader   = errors.New("ivtree: header bookkeeping is inconsistent")
)

// Tree is an augmented red-black interval tree: an ordered multiset of
// V keyed by Start(), supporting overlap queries via IntervalIntersect.
// The zero value is not usable; construct one with NewTree.
//
// Tree is not safe for concurrent use. See Registry for a
// mutex-guarded wrapper suitable for concurrent readers and a single
// writer at a time.
type Tree[K cmp.Ordered, V Interval[K]] struct {
	header Node[K, V]
	size   int
}

// NewTree constructs an empty Tree.
func NewTree[K cmp.Ordered, V Interval[K]]() *Tree[K, V] {
	t := &Tree[K, V]{}
	t.header.header = true
	return t
}

// root returns the tree's root node, or nil if the tree is empty.
func (t *Tree[K, V]) root() *Node[K, V] {
	return t.header.parent
}

// Size returns the number of elements currently linked into the tree.
func (t *Tree[K, V]) Size() int { return t.size }

// Empty reports whether the tree holds no elements.
func (t *Tree[K, V]) Empty() bool { return t.size == 0 }

// startLess decides BST ordering on Start(); ties go right, which
// keeps Insert stable (a later insertion with an equal start lands
// after earlier ones in in-order position) and preserves the multiset
// semantics I1 requires.
func startLess[K cmp.Ordered, V Interval[K]](a, b V) bool {
	return a.Start() < b.Start()
}

// Insert adds v to the tree and returns a stable handle to its node.
// The caller retains this handle to later call Erase or IteratorTo;
// the tree itself never reallocates or moves a node once inserted.
//
// v must satisfy Start() <= End() (I4); the tree does not check this.
func (t *Tree[K, V]) Insert(v V) *Node[K, V] {
	n := &Node[K, V]{Value: v, color: red}
	initMaxEnd(n)

	if t.root() == nil {
		n.color = black
		n.parent = &t.header
		t.header.parent = n
		t.header.left, t.header.right = n, n
		t.size++
		return n
	}

	cur := t.root()
	for {
		if startLess[K, V](v, cur.Value) {
			if cur.left == nil {
				cur.left = n
				break
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				break
			}
			cur = cur.right
		}
	}
	n.parent = cur

	propagateMaxEnd(n.parent)
	t.insertFixup(n)
	t.size++
	t.fixEnds()
	return n
}

// Erase unlinks n from the tree. n is not destroyed; the caller keeps
// ownership of its storage (and of its Value). Behavior is undefined
// if n does not belong to this tree or is not currently linked.
//
// This never copies a payload between nodes: the physical node
// identified by n is always the one detached, exactly as an intrusive
// container's identity guarantee requires. When n has two children its
// in-order successor is spliced into n's structural position instead.
func (t *Tree[K, V]) Erase(n *Node[K, V]) {
	var fixupStart, fixupParent *Node[K, V]
	var maxEndFrom *Node[K, V]
	var removedColor color

	switch {
	case n.left != nil && n.right != nil:
		y := n.right.leftmost()
		removedColor = y.color
		if y.parent == n {
			y.left = n.left
			n.left.parent = y
			t.transplant(n, y)
			fixupStart, fixupParent = y.right, y
			maxEndFrom = y
		} else {
			z := y.right
			oldYParent := y.parent
			t.transplant(y, z)
			y.right = n.right
			n.right.parent = y
			y.left = n.left
			n.left.parent = y
			t.transplant(n, y)
			fixupStart, fixupParent = z, oldYParent
			maxEndFrom = oldYParent
		}
		y.color = n.color
	default:
		z := n.left
		if z == nil {
			z = n.right
		}
		removedColor = n.color
		fixupParent = n.parent
		maxEndFrom = n.parent
		t.transplant(n, z)
		fixupStart = z
	}

	propagateMaxEnd(maxEndFrom)
	if removedColor == black {
		t.deleteFixup(fixupStart, fixupParent)
	}

	n.parent, n.left, n.right = nil, nil, nil
	t.size--
	t.fixEnds()
}

// fixEnds recomputes the header's leftmost/rightmost bookkeeping from
// scratch in O(h). A from-scratch recompute after every mutation is
// simpler to get right than incremental header maintenance and costs
// no more asymptotically, since Insert/Erase already pay O(h).
func (t *Tree[K, V]) fixEnds() {
	if t.root() == nil {
		t.header.left, t.header.right = nil, nil
		return
	}
	t.header.left = t.root().leftmost()
	t.header.right = t.root().rightmost()
}

// Clear unlinks every element from the tree in O(1); it does not
// invoke any destructor-like hook. Use ClearAndDispose when callers
// need to be notified per unlinked element.
func (t *Tree[K, V]) Clear() {
	t.header = Node[K, V]{header: true}
	t.size = 0
}

// ClearAndDispose unlinks every element, invoking dispose on each
// one's Value before the tree is emptied.
func (t *Tree[K, V]) ClearAndDispose(dispose func(V)) {
	var walk func(*Node[K, V])
	walk = func(n *Node[K, V]) {
		if n == nil {
			return
		}
		walk(n.left)
		walk(n.right)
		dispose(n.Value)
	}
	walk(t.root())
	t.Clear()
}

// UnlinkLeftmostWithoutRebalance removes and returns the leftmost
// element without restoring the red-black balance, for fast bulk
// teardown. The tree's red-black invariants (I2) may be violated
// after this call; the only safe operations until Size reaches zero
// are further calls to UnlinkLeftmostWithoutRebalance. It returns
// false when the tree is already empty.
func (t *Tree[K, V]) UnlinkLeftmostWithoutRebalance() (*Node[K, V], bool) {
	if t.root() == nil {
		return nil, false
	}
	n := t.header.left
	parent := n.parent
	if parent.header {
		t.header.parent = n.right
		if n.right != nil {
			n.right.parent = &t.header
		}
	} else {
		parent.left = n.right
		if n.right != nil {
			n.right.parent = parent
		}
	}
	n.parent, n.left, n.right = nil, nil, nil
	t.size--
	t.fixEnds()
	return n, true
}

// CloneFrom destroys the tree's current contents via dispose (see
// ClearAndDispose) and replaces them with a structural copy of src:
// every node's color and tree shape is preserved exactly (so I2 holds
// without rebalancing) and maxEnd is copied directly rather than
// recomputed (so I3 holds without a second pass). cloner produces a
// fresh V for each of src's elements.
func (t *Tree[K, V]) CloneFrom(src *Tree[K, V], cloner func(V) V, dispose func(V)) {
	t.ClearAndDispose(dispose)
	if src.root() == nil {
		return
	}
	var clone func(n, parent *Node[K, V]) *Node[K, V]
	clone = func(n, parent *Node[K, V]) *Node[K, V] {
		if n == nil {
			return nil
		}
		cp := &Node[K, V]{Value: cloner(n.Value), color: n.color, parent: parent}
		copyMaxEnd(cp, n)
		cp.left = clone(n.left, cp)
		cp.right = clone(n.right, cp)
		return cp
	}
	root := clone(src.root(), &t.header)
	t.header.parent = root
	t.size = src.size
	t.fixEnds()
}

// IteratorTo returns a forward iterator positioned at n. Behavior is
// undefined if n is not currently linked into this tree.
func (t *Tree[K, V]) IteratorTo(n *Node[K, V]) Iterator[K, V] {
	return Iterator[K, V]{n: n}
}

// Begin returns an iterator at the leftmost (minimum Start) element,
// or an iterator equal to End if the tree is empty.
func (t *Tree[K, V]) Begin() Iterator[K, V] {
	if t.root() == nil {
		return t.End()
	}
	return Iterator[K, V]{n: t.header.left}
}

// End returns the universal end-of-range iterator.
func (t *Tree[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{n: &t.header}
}

// IntervalIntersect returns a forward iterator over every element
// whose interval overlaps [qs, qe] (closed on both ends), visited in
// in-order (non-decreasing Start) sequence. If qs > qe the result is
// an empty range, not an error.
func (t *Tree[K, V]) IntervalIntersect(qs, qe K) OverlapIterator[K, V] {
	if t.root() == nil || qs > qe {
		return OverlapIterator[K, V]{n: &t.header, qs: qs, qe: qe}
	}
	it := OverlapIterator[K, V]{n: t.root(), qs: qs, qe: qe, stage: 0}
	it.advance()
	return it
}

// Check re-verifies I1-I5 by recursive descent and returns the first
// violation found, or nil if the tree is internally consistent. It is
// a diagnostic for tests and audit tooling, not part of normal
// operation, and is O(n).
func (t *Tree[K, V]) Check() error {
	if t.root() == nil {
		if t.header.left != nil || t.header.right != nil {
			return fmt.Errorf("%w: empty tree has non-nil header ends", ErrBadHeader)
		}
		return nil
	}
	if t.root().parent != &t.header {
		return fmt.Errorf("%w: root.parent is not the header", ErrBadHeader)
	}
	if t.root().color != black {
		return fmt.Errorf("%w: root is not black", ErrBadColor)
	}
	if _, err := checkSubtree[K, V](t.root(), nil, nil); err != nil {
		return err
	}
	if t.header.left != t.root().leftmost() {
		return fmt.Errorf("%w: header.left is not the true leftmost node", ErrBadHeader)
	}
	if t.header.right != t.root().rightmost() {
		return fmt.Errorf("%w: header.right is not the true rightmost node", ErrBadHeader)
	}
	return nil
}

// checkSubtree validates I1-I4 for the subtree rooted at n, returning
// its black-height so the caller can compare both children's heights.
// lo/hi bound every Start() in this subtree (inclusive); nil means
// unbounded. Bounding the whole subtree, not just each node against
// its immediate parent, is what actually verifies the BST property --
// a node can obey its parent locally yet still land outside an
// ancestor's range if only adjacent pairs are checked.
func checkSubtree[K cmp.Ordered, V Interval[K]](n *Node[K, V], lo, hi *K) (int, error) {
	if n == nil {
		return 1, nil
	}
	if n.Value.Start() > n.Value.End() {
		return 0, fmt.Errorf("%w: node with Start()=%v End()=%v", ErrBadInterval, n.Value.Start(), n.Value.End())
	}
	s := n.Value.Start()
	if lo != nil && s < *lo {
		return 0, fmt.Errorf("%w: node Start()=%v below lower bound %v", ErrBadOrder, s, *lo)
	}
	if hi != nil && s > *hi {
		return 0, fmt.Errorf("%w: node Start()=%v above upper bound %v", ErrBadOrder, s, *hi)
	}
	if n.left != nil && n.left.parent != n {
		return 0, fmt.Errorf("%w: left child's parent pointer is wrong", ErrBadOrder)
	}
	if n.right != nil && n.right.parent != n {
		return 0, fmt.Errorf("%w: right child's parent pointer is wrong", ErrBadOrder)
	}
	if n.color == red {
		if nodeColor(n.left) == red || nodeColor(n.right) == red {
			return 0, fmt.Errorf("%w: red node has a red child", ErrBadColor)
		}
	}
	wantMax := n.Value.End()
	if n.left != nil {
		wantMax = max(wantMax, n.left.maxEnd)
	}
	if n.right != nil {
		wantMax = max(wantMax, n.right.maxEnd)
	}
	if wantMax != n.maxEnd {
		return 0, fmt.Errorf("%w: want %v, have %v", ErrBadMaxEnd, wantMax, n.maxEnd)
	}
	lh, err := checkSubtree[K, V](n.left, lo, &s)
	if err != nil {
		return 0, err
	}
	rh, err := checkSubtree[K, V](n.right, &s, hi)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: unequal black height (%d vs %d)", ErrBadColor, lh, rh)
	}
	height := lh
	if n.color == black {
		height++
	}
	return height, nil
}
