// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs the shards of a grid search on a persistent set of
// goroutines.
//
// A parameter grid is split into contiguous index ranges, one per worker.
// Each shard is evaluated independently and owns its own output slot, so the
// only synchronization is the barrier at the end of ForEachShard; the caller
// merges the per-shard results afterwards.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	best := make([][]Candidate, pool.NumShards(n))
//	pool.ForEachShard(n, func(shard, start, end int) {
//	    best[shard] = searchRange(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused by every ForEachShard call until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool after pending shards complete. Calling Close more
// than once is safe; a closed pool runs shards on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// NumShards returns how many shards ForEachShard splits n items into.
func (p *Pool) NumShards(n int) int {
	_, shards := p.split(n)
	return shards
}

// split returns the shard length and shard count for n items. Every shard but
// the last holds exactly chunk items.
func (p *Pool) split(n int) (chunk, shards int) {
	if n <= 0 {
		return 0, 0
	}
	if p.closed.Load() {
		return n, 1
	}
	workers := min(p.numWorkers, n)
	chunk = (n + workers - 1) / workers
	return chunk, (n + chunk - 1) / chunk
}

// ForEachShard splits [0, n) into NumShards(n) contiguous ranges and calls fn
// once per range with the shard index. Blocks until every shard returns.
func (p *Pool) ForEachShard(n int, fn func(shard, start, end int)) {
	chunk, shards := p.split(n)
	switch shards {
	case 0:
		return
	case 1:
		fn(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(shards)
	for i := range shards {
		start := i * chunk
		end := min(start+chunk, n)
		p.workC <- workItem{
			fn:      func() { fn(i, start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}
