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

// Package ivtree implements an augmented red-black interval tree: an
// ordered multiset of intervals, keyed by start, that answers overlap
// and stabbing queries in time proportional to the number of results
// plus the height of the tree.
//
// The tree is a conventional left-leaning-free (CLRS-style) red-black
// tree augmented at every node with maxEnd, the largest end endpoint
// anywhere in that node's subtree. maxEnd lets IntervalIntersect prune
// whole subtrees that provably cannot contain a match instead of
// scanning every stored interval.
//
// The container does not allocate or own interval values beyond the
// *Node handle Insert hands back; it only ever mutates the metadata
// fields of nodes it created. It is not safe for concurrent use: all
// mutating operations must be externally synchronized, and any
// mutating call invalidates outstanding overlap iterators.
package ivtree
