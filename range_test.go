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

func TestRange_NewRange(t *testing.T) {
	assert.NotPanics(t, func() { NewRange(1, 5) })
	assert.NotPanics(t, func() { NewRange(3, 3) })
	assert.Panics(t, func() { NewRange(5, 1) })
}

func TestRange_Intersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range[int]
		expected bool
	}{
		{"disjoint, a before b", NewRange(0, 5), NewRange(10, 15), false},
		{"disjoint, a after b", NewRange(10, 15), NewRange(0, 5), false},
		{"touching at a single point", NewRange(0, 5), NewRange(5, 10), true},
		{"fully overlapping", NewRange(0, 10), NewRange(2, 8), true},
		{"identical", NewRange(1, 1), NewRange(1, 1), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.a.Intersects(test.b))
			assert.Equal(t, test.expected, test.b.Intersects(test.a))
		})
	}
}

func TestRange_Contains(t *testing.T) {
	outer := NewRange(0, 10)
	assert.True(t, outer.Contains(NewRange(2, 8)))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(NewRange(-1, 8)))
	assert.False(t, outer.Contains(NewRange(2, 11)))
}

func TestRange_ContainsPoint(t *testing.T) {
	r := NewRange(5, 10)
	assert.True(t, r.ContainsPoint(5))
	assert.True(t, r.ContainsPoint(10))
	assert.True(t, r.ContainsPoint(7))
	assert.False(t, r.ContainsPoint(4))
	assert.False(t, r.ContainsPoint(11))
}

func TestRange_Equals(t *testing.T) {
	assert.True(t, NewRange(1, 2).Equals(NewRange(1, 2)))
	assert.False(t, NewRange(1, 2).Equals(NewRange(1, 3)))
}
