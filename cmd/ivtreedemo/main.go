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

// Command ivtreedemo drives a random insert/erase/query/audit/clone
// workload against an ivtree.Tree, checking its answers against a
// container/list-backed oracle at every step. It exists to exercise
// the tree the way a fuzzer or test would, but interactively and with
// visible logging -- it is not part of the ivtree module's public API
// and must never be imported by it.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"container/list"

	"github.com/gointerval/ivtree"
)

// interval is the demo's payload type: a plain [start, end] range with
// no extra fields, the same shape the original driver's Value struct
// reduces to once its intrusive link fields are stripped away.
type interval struct {
	start, end int
}

func (iv interval) Start() int { return iv.start }
func (iv interval) End() int   { return iv.end }

func (iv interval) intersects(other interval) bool {
	return iv.start <= other.end && other.start <= iv.end
}

type options struct {
	maxLoad         int
	rangeMax        int
	numOps          int
	seed            int64
	printTreeEachOp bool
}

func parseOptions() options {
	var o options
	flag.IntVar(&o.maxLoad, "max-load", 100, "maximum number of elements to keep live at once")
	flag.IntVar(&o.rangeMax, "range-max", 20, "maximum interval endpoint")
	flag.IntVar(&o.numOps, "n-ops", 1000, "number of operations to perform")
	flag.Int64Var(&o.seed, "seed", 0, "random number generator seed (0 picks the current time)")
	flag.BoolVar(&o.printTreeEachOp, "print-tree", false, "print the tree's in-order contents after each operation")
	flag.Parse()
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	return o
}

func main() {
	o := parseOptions()
	log.SetFlags(0)
	log.Printf("----- options: max-load=%d range-max=%d n-ops=%d seed=%d", o.maxLoad, o.rangeMax, o.numOps, o.seed)

	rng := rand.New(rand.NewSource(o.seed))
	tree := ivtree.NewTree[int, interval]()
	oracle := list.New()
	handles := make(map[*list.Element]*ivtree.Node[int, interval])

	log.Print("----- main loop")
	for i := 0; i < o.numOps; i++ {
		switch rng.Intn(5) {
		case 0:
			insertRandom(rng, tree, oracle, handles, o)
		case 1:
			eraseRandom(rng, tree, oracle, handles)
		case 2:
			queryRandom(rng, tree, oracle, o)
		case 3:
			log.Print("checking invariants")
			mustCheck(tree)
		case 4:
			cloneAndCheck(tree)
		}
		if o.printTreeEachOp {
			printTree(tree)
		}
	}

	log.Print("----- clearing oracle")
	for e := oracle.Front(); e != nil; e = oracle.Front() {
		tree.Erase(handles[e])
		delete(handles, e)
		oracle.Remove(e)
	}
	log.Print("----- success")
}

func insertRandom(rng *rand.Rand, tree *ivtree.Tree[int, interval], oracle *list.List, handles map[*list.Element]*ivtree.Node[int, interval], o options) {
	if oracle.Len() >= o.maxLoad {
		return
	}
	e1, e2 := rng.Intn(o.rangeMax+1), rng.Intn(o.rangeMax+1)
	if e1 > e2 {
		e1, e2 = e2, e1
	}
	iv := interval{start: e1, end: e2}
	log.Printf("adding: [%d,%d]", iv.start, iv.end)
	elem := oracle.PushBack(iv)
	handles[elem] = tree.Insert(iv)
}

func eraseRandom(rng *rand.Rand, tree *ivtree.Tree[int, interval], oracle *list.List, handles map[*list.Element]*ivtree.Node[int, interval]) {
	if oracle.Len() == 0 {
		return
	}
	idx := rng.Intn(oracle.Len())
	e := oracle.Front()
	for ; idx > 0; idx-- {
		e = e.Next()
	}
	iv := e.Value.(interval)
	log.Printf("deleting: [%d,%d]", iv.start, iv.end)
	tree.Erase(handles[e])
	delete(handles, e)
	oracle.Remove(e)
}

func queryRandom(rng *rand.Rand, tree *ivtree.Tree[int, interval], oracle *list.List, o options) {
	e1, e2 := rng.Intn(o.rangeMax+1), rng.Intn(o.rangeMax+1)
	if e1 > e2 {
		e1, e2 = e2, e1
	}
	q := interval{start: e1, end: e2}
	log.Printf("checking intersection with: [%d,%d]", q.start, q.end)

	wantCount := 0
	for e := oracle.Front(); e != nil; e = e.Next() {
		if e.Value.(interval).intersects(q) {
			wantCount++
		}
	}

	gotCount := 0
	for it := tree.IntervalIntersect(q.start, q.end); !it.Done(); it.Next() {
		gotCount++
	}

	if gotCount != wantCount {
		log.Fatalf("wrong intersection count for [%d,%d]: tree=%d oracle=%d", q.start, q.end, gotCount, wantCount)
	}
	log.Printf("intersection ok, size = %d / %d", wantCount, oracle.Len())
}

func mustCheck(tree *ivtree.Tree[int, interval]) {
	if err := tree.Check(); err != nil {
		log.Fatalf("invariant check failed: %v", err)
	}
}

func cloneAndCheck(tree *ivtree.Tree[int, interval]) {
	log.Printf("cloning tree of size: %d", tree.Size())
	clone := ivtree.NewTree[int, interval]()
	clone.CloneFrom(tree, func(v interval) interval { return v }, func(interval) {})
	log.Printf("checking invariants on clone of size: %d", clone.Size())
	mustCheck(clone)

	log.Print("destroying clone")
	for {
		if _, ok := clone.UnlinkLeftmostWithoutRebalance(); !ok {
			break
		}
	}
}

func printTree(tree *ivtree.Tree[int, interval]) {
	for it := tree.Begin(); !it.Done(); it.Next() {
		v := it.Value()
		log.Printf("  [%d,%d]", v.Start(), v.End())
	}
}
