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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterator_ForwardFullWalk(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		tree.Insert(NewRange(v, v))
	}
	var got []int
	for it := tree.Begin(); !it.Done(); it.Next() {
		got = append(got, it.Value().Start())
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got)
}

func TestIterator_BackwardFullWalk(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		tree.Insert(NewRange(v, v))
	}
	it := tree.End()
	var got []int
	for {
		it.Prev()
		if it.Done() {
			break
		}
		got = append(got, it.Value().Start())
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1}, got)
}

func TestIterator_EqualityIsNodeIdentity(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	n := tree.Insert(NewRange(1, 1))
	a := tree.IteratorTo(n)
	b := tree.IteratorTo(n)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, tree.End())
}

func TestIterator_NodeReturnsNilAtEnd(t *testing.T) {
	tree := NewTree[int, Range[int]]()
	tree.Insert(NewRange(1, 1))
	it := tree.End()
	assert.Nil(t, it.Node())
}
