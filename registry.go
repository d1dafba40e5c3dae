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
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors returned by Registry, matchable with errors.Is.
var (
	ErrKeyExists    = errors.New("ivtree: key already registered")
	ErrNodeNotFound = errors.New("ivtree: key not registered")
	ErrEmptyTree    = errors.New("ivtree: registry is empty")
)

// Registry is a concurrency-safe, key-addressed wrapper around Tree. A
// Tree only hands back opaque *Node handles; Registry adds a side
// table from an arbitrary comparable key to that handle, so callers
// that want to name their intervals (by ID, by resource name) do not
// have to keep track of *Node pointers themselves.
//
// A Registry is safe for concurrent use by multiple goroutines: one
// writer at a time, any number of concurrent readers. The core Tree it
// wraps stays single-threaded; every access to it below goes through
// the registry's own mutex.
type Registry[K cmp.Ordered, V Interval[K]] struct {
	mu    sync.RWMutex
	tree  *Tree[K, V]
	nodes map[any]*Node[K, V]
}

// NewRegistry constructs an empty Registry.
func NewRegistry[K cmp.Ordered, V Interval[K]]() *Registry[K, V] {
	return &Registry[K, V]{
		tree:  NewTree[K, V](),
		nodes: make(map[any]*Node[K, V]),
	}
}

// Insert adds v under key. It returns ErrKeyExists if key is already
// present; the registry never silently overwrites an existing entry.
func (r *Registry[K, V]) Insert(key any, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[key]; ok {
		return fmt.Errorf("%w: %v", ErrKeyExists, key)
	}
	r.nodes[key] = r.tree.Insert(v)
	return nil
}

// Delete removes the entry stored under key. It returns ErrNodeNotFound
// if key is not present.
func (r *Registry[K, V]) Delete(key any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, key)
	}
	r.tree.Erase(n)
	delete(r.nodes, key)
	return nil
}

// Update replaces the value stored under key with v. Because a
// value's Start/End must never change while linked (I1/I3), Update
// erases the old node and inserts a fresh one rather than mutating in
// place. It returns ErrNodeNotFound if key is not present.
func (r *Registry[K, V]) Update(key any, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.nodes[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNodeNotFound, key)
	}
	r.tree.Erase(old)
	r.nodes[key] = r.tree.Insert(v)
	return nil
}

// ContainsKey reports whether key is currently registered.
func (r *Registry[K, V]) ContainsKey(key any) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nodes[key]
	return ok
}

// Get returns the value registered under key, and whether it was
// found.
func (r *Registry[K, V]) Get(key any) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.Value, true
}

// Size returns the number of entries currently registered.
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Size()
}

// Overlapping returns the values of every entry whose interval
// overlaps [qs, qe], in non-decreasing Start order. It walks the
// tree's own pruned overlap iterator directly; the concurrent fan-out
// below is reserved for AnyOverlapping/AllOverlapping, where
// per-candidate work beyond the tree walk itself can actually benefit
// from it.
func (r *Registry[K, V]) Overlapping(qs, qe K) []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []V
	for it := r.tree.IntervalIntersect(qs, qe); !it.Done(); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// AnyOverlapping reports whether any registered interval overlaps
// [qs, qe], additionally running check concurrently against every
// candidate found by the tree walk. It waits for every check to finish
// (a match does not cancel the others) and then returns true if any
// check reported a match, otherwise false with the first error any
// check returned. check may be nil, in which case AnyOverlapping
// degrades to a plain existence test.
func (r *Registry[K, V]) AnyOverlapping(ctx context.Context, qs, qe K, check func(context.Context, V) (bool, error)) (bool, error) {
	candidates := r.Overlapping(qs, qe)
	if check == nil {
		return len(candidates) > 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	found := make(chan struct{}, 1)
	for _, v := range candidates {
		v := v
		g.Go(func() error {
			ok, err := check(gctx, v)
			if err != nil {
				return err
			}
			if ok {
				select {
				case found <- struct{}{}:
				default:
				}
			}
			return nil
		})
	}

	err := g.Wait()
	select {
	case <-found:
		return true, nil
	default:
	}
	return false, err
}

// AllOverlapping runs check concurrently against every registered
// interval overlapping [qs, qe] and returns their results in the same
// order Overlapping would. Every check is started up front; the first
// error reported by any of them cancels the context passed to the
// others, and AllOverlapping returns that error once all have finished.
func (r *Registry[K, V]) AllOverlapping(ctx context.Context, qs, qe K, check func(context.Context, V) (any, error)) ([]any, error) {
	candidates := r.Overlapping(qs, qe)
	results := make([]any, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range candidates {
		i, v := i, v
		g.Go(func() error {
			out, err := check(gctx, v)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Check re-verifies the underlying tree's invariants; see Tree.Check.
func (r *Registry[K, V]) Check() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.nodes) != r.tree.Size() {
		return fmt.Errorf("ivtree: registry key count %d does not match tree size %d", len(r.nodes), r.tree.Size())
	}
	return r.tree.Check()
}

// Min returns the Start() of the first entry in non-decreasing Start
// order, or ErrEmptyTree if the registry holds nothing.
func (r *Registry[K, V]) Min() (K, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.tree.Empty() {
		var zero K
		return zero, ErrEmptyTree
	}
	return r.tree.Begin().Value().Start(), nil
}

// Max returns the largest maxEnd reached by any entry, or ErrEmptyTree
// if the registry holds nothing. This is the same bound IntervalIntersect
// prunes against internally, exposed here as a cheap O(1) read.
func (r *Registry[K, V]) Max() (K, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.tree.Empty() {
		var zero K
		return zero, ErrEmptyTree
	}
	return r.tree.root().maxEnd, nil
}
