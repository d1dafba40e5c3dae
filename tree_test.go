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
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_EmptyTree(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Size())
	assert.NoError(t, tree.Check())
	assert.True(t, tree.Begin().Done())
	assert.True(t, tree.End().Done())
}

func TestTree_InsertSingle(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	n := tree.Insert(NewRange(3, 7))
	require.NotNil(t, n)
	assert.Equal(t, 1, tree.Size())
	assert.False(t, tree.Empty())
	assert.NoError(t, tree.Check())
	assert.Equal(t, NewRange(3, 7), tree.Begin().Value())
}

func TestTree_InsertManyStaysBalanced(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	for i := 0; i < 200; i++ {
		tree.Insert(NewRange(i, i+1))
		assert.NoError(t, tree.Check())
	}
	assert.Equal(t, 200, tree.Size())
}

func TestTree_InsertDuplicateStartsTieGoesRight(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	first := tree.Insert(NewRange(5, 5))
	second := tree.Insert(NewRange(5, 9))
	require.NoError(t, tree.Check())

	it := tree.Begin()
	require.False(t, it.Done())
	assert.Same(t, first, it.Node())
	it.Next()
	require.False(t, it.Done())
	assert.Same(t, second, it.Node())
}

func TestTree_InOrderSequence(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	values := []int{50, 20, 80, 10, 30, 70, 90, 5, 15, 25, 35}
	for _, v := range values {
		tree.Insert(NewRange(v, v))
	}
	var got []int
	for it := tree.Begin(); !it.Done(); it.Next() {
		got = append(got, it.Value().Start())
	}
	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, got)
}

func TestTree_EraseLeaf(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	tree.Insert(NewRange(5, 5))
	n := tree.Insert(NewRange(10, 10))
	tree.Erase(n)
	assert.Equal(t, 1, tree.Size())
	assert.NoError(t, tree.Check())
}

func TestTree_EraseTwoChildren(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	handles := make(map[int]*Node[int, Range[int]])
	for _, v := range []int{50, 20, 80, 10, 30, 70, 90} {
		handles[v] = tree.Insert(NewRange(v, v))
	}
	tree.Erase(handles[50])
	require.NoError(t, tree.Check())
	assert.Equal(t, 6, tree.Size())

	var got []int
	for it := tree.Begin(); !it.Done(); it.Next() {
		got = append(got, it.Value().Start())
	}
	assert.Equal(t, []int{10, 20, 30, 70, 80, 90}, got)
}

func TestTree_InsertEraseRandomWorkloadStaysConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := NewTree[int, Range[int]]()
	var live []*Node[int, Range[int]]

	for i := 0; i < 2000; i++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			lo := rng.Intn(500)
			hi := lo + rng.Intn(50)
			live = append(live, tree.Insert(NewRange(lo, hi)))
		} else {
			idx := rng.Intn(len(live))
			tree.Erase(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}
		require.NoError(t, tree.Check())
		require.Equal(t, len(live), tree.Size())
	}
}

func TestTree_ClearAndDispose(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	for i := 0; i < 10; i++ {
		tree.Insert(NewRange(i, i))
	}
	var disposed []int
	tree.ClearAndDispose(func(r Range[int]) { disposed = append(disposed, r.Lo) })
	assert.Equal(t, 10, len(disposed))
	assert.Equal(t, 0, tree.Size())
	assert.True(t, tree.Empty())
	assert.NoError(t, tree.Check())
}

func TestTree_UnlinkLeftmostWithoutRebalance(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	for _, v := range []int{5, 1, 9, 0, 3} {
		tree.Insert(NewRange(v, v))
	}
	var got []int
	for {
		n, ok := tree.UnlinkLeftmostWithoutRebalance()
		if !ok {
			break
		}
		got = append(got, n.Value.Start())
	}
	assert.Equal(t, []int{0, 1, 3, 5, 9}, got)
	assert.Equal(t, 0, tree.Size())
	assert.True(t, tree.Empty())
}

func TestTree_CloneFrom(t *testing.T) {
	src := NewTree[int, Range[int]]()
	for _, v := range []int{5, 1, 9, 0, 3, 7} {
		src.Insert(NewRange(v, v))
	}
	dst := NewTree[int, Range[int]]()
	dst.CloneFrom(src, func(r Range[int]) Range[int] { return r }, func(Range[int]) {})

	require.NoError(t, dst.Check())
	assert.Equal(t, src.Size(), dst.Size())

	var srcVals, dstVals []int
	for it := src.Begin(); !it.Done(); it.Next() {
		srcVals = append(srcVals, it.Value().Start())
	}
	for it := dst.Begin(); !it.Done(); it.Next() {
		dstVals = append(dstVals, it.Value().Start())
	}
	assert.Equal(t, srcVals, dstVals)
}

func TestTree_CloneFromReplacesExistingContents(t *testing.T) {
	src := NewTree[int, Range[int]]()
	src.Insert(NewRange(1, 1))

	dst := NewTree[int, Range[int]]()
	dst.Insert(NewRange(99, 99))
	dst.Insert(NewRange(100, 100))

	var disposed int
	dst.CloneFrom(src, func(r Range[int]) Range[int] { return r }, func(Range[int]) { disposed++ })
	assert.Equal(t, 2, disposed)
	assert.Equal(t, 1, dst.Size())
	assert.Equal(t, 1, dst.Begin().Value().Start())
}

func TestTree_IteratorTo(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	n := tree.Insert(NewRange(4, 4))
	tree.Insert(NewRange(1, 1))
	tree.Insert(NewRange(9, 9))

	it := tree.IteratorTo(n)
	assert.Equal(t, 4, it.Value().Start())
	it.Next()
	assert.Equal(t, 9, it.Value().Start())
}

func TestTree_CheckDetectsCorruption(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	tree.Insert(NewRange(1, 1))
	n := tree.Insert(NewRange(2, 2))
	require.NoError(t, tree.Check())

	n.maxEnd = 999
	assert.ErrorIs(t, tree.Check(), ErrBadMaxEnd)
}

