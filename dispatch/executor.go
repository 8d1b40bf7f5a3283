// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package dispatch

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// maxShards bounds the number of shards an executor can be configured
// with, preventing a misconfigured caller from spawning more idle-worker
// bookkeeping than any realistic machine can use.
const maxShards = 128

const (
	workerStateIdle    int32 = 0
	workerStateWorking int32 = 1
	workerStateClosed  int32 = 2
)

// executor is the worker pool backing WorkStealingDispatcher.Dispatch.
// It is adapted from the actor runtime's own sharded worker pool: each
// dispatch call is handed to a randomly chosen shard, which reuses idle
// goroutines (two lock-free fast-path slots plus a mutex-guarded overflow
// slice) instead of spawning one goroutine per task. The number of worker
// goroutines has no upper bound: when a shard has no idle worker, submit
// starts a new one.
type executor struct {
	idleWorkerLifetime time.Duration
	numShards          int
	shards             []*execShard
	mutex              sync.RWMutex
	started            atomic.Bool
	stopped            atomic.Bool
	spawnedWorkers     atomic.Int64
}

type execWorker struct {
	workChan  chan func()
	shard     *execShard
	lastUsed  atomic.Int64
	isDeleted atomic.Bool
	state     atomic.Int32
}

type execShard struct {
	ex          *executor
	workerCache sync.Pool
	idleList    []*execWorker
	idle1       atomic.Pointer[execWorker]
	idle2       atomic.Pointer[execWorker]
	mu          sync.Mutex
	stopped     atomic.Bool
}

func newExecutor(numShards int, idleWorkerLifetime time.Duration) *executor {
	if numShards < 1 {
		numShards = 1
	} else if numShards > maxShards {
		numShards = maxShards
	}
	if idleWorkerLifetime <= 0 {
		idleWorkerLifetime = time.Second
	}
	return &executor{numShards: numShards, idleWorkerLifetime: idleWorkerLifetime}
}

// spawnedCount returns the current number of live worker goroutines, for
// diagnostics and tests.
func (e *executor) spawnedCount() int { return int(e.spawnedWorkers.Load()) }

// start allocates the shards and begins the idle-worker cleanup sweep. It
// is safe to call more than once; only the first call has an effect.
func (e *executor) start() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.started.Load() {
		return
	}
	e.shards = make([]*execShard, e.numShards)
	for i := 0; i < e.numShards; i++ {
		e.shards[i] = &execShard{
			ex: e,
			workerCache: sync.Pool{
				New: func() any { return &execWorker{workChan: make(chan func())} },
			},
			idleList: make([]*execWorker, 0, 256),
		}
	}
	e.started.Store(true)
	go e.cleanup()
}

// stop closes every worker's task channel, preventing further submission.
// Tasks already in flight finish; queued-but-unstarted tasks never run
// since there is no separate task queue to drain — each task is handed
// directly to a worker goroutine's channel.
func (e *executor) stop() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if !e.started.Load() || e.stopped.Swap(true) {
		return
	}
	for _, shard := range e.shards {
		shard.mu.Lock()
		shard.stopped.Store(true)
		for _, w := range shard.idleList {
			if !w.isDeleted.Swap(true) {
				w.state.Store(workerStateClosed)
				close(w.workChan)
			}
		}
		shard.idleList = shard.idleList[:0]
		if w := shard.idle1.Swap(nil); w != nil && !w.isDeleted.Swap(true) {
			w.state.Store(workerStateClosed)
			close(w.workChan)
		}
		if w := shard.idle2.Swap(nil); w != nil && !w.isDeleted.Swap(true) {
			w.state.Store(workerStateClosed)
			close(w.workChan)
		}
		shard.mu.Unlock()
	}
}

// submit hands task to an available worker in a randomly chosen shard,
// spawning a new worker goroutine if none is idle. Returns false if the
// executor has not been started or has been stopped, in which case task
// is discarded.
func (e *executor) submit(task func()) bool {
	e.mutex.RLock()
	if !e.started.Load() || e.stopped.Load() {
		e.mutex.RUnlock()
		return false
	}
	shard := e.shards[rand.IntN(e.numShards)]
	e.mutex.RUnlock()
	return shard.acquireWorker(task)
}

func (shard *execShard) acquireWorker(task func()) bool {
	if w := shard.idle1.Swap(nil); w != nil {
		if !w.isDeleted.Load() && w.state.CompareAndSwap(workerStateIdle, workerStateWorking) {
			w.workChan <- task
			return true
		}
		if !w.isDeleted.Load() {
			shard.setIdle(w)
		}
	}

	if w := shard.idle2.Swap(nil); w != nil {
		if !w.isDeleted.Load() && w.state.CompareAndSwap(workerStateIdle, workerStateWorking) {
			w.workChan <- task
			return true
		}
		if !w.isDeleted.Load() {
			shard.setIdle(w)
		}
	}

	shard.mu.Lock()
	if shard.stopped.Load() {
		shard.mu.Unlock()
		return false
	}
	if n := len(shard.idleList); n > 0 {
		w := shard.idleList[n-1]
		shard.idleList[n-1] = nil
		shard.idleList = shard.idleList[:n-1]
		shard.mu.Unlock()
		if !w.isDeleted.Load() && w.state.CompareAndSwap(workerStateIdle, workerStateWorking) {
			w.workChan <- task
			return true
		}
		return false
	}
	shard.mu.Unlock()

	w := shard.workerCache.Get().(*execWorker)
	w.shard = shard
	if w.workChan == nil {
		w.workChan = make(chan func())
	}
	w.state.Store(workerStateWorking)
	w.isDeleted.Store(false)
	go w.run()
	w.workChan <- task
	return true
}

func (w *execWorker) run() {
	shard := w.shard
	shard.ex.spawnedWorkers.Add(1)
	for task := range w.workChan {
		task()
		w.state.Store(workerStateIdle)
		if !shard.setIdle(w) {
			break
		}
	}
	shard.ex.spawnedWorkers.Add(-1)
	shard.workerCache.Put(w)
}

func (shard *execShard) setIdle(w *execWorker) bool {
	w.lastUsed.Store(time.Now().UnixNano())
	if shard.stopped.Load() {
		return false
	}
	if shard.idle1.CompareAndSwap(nil, w) {
		return true
	}
	if shard.idle2.CompareAndSwap(nil, w) {
		return true
	}
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if shard.stopped.Load() {
		return false
	}
	shard.idleList = append(shard.idleList, w)
	return true
}

// cleanup periodically retires idle workers that have sat unused past
// idleWorkerLifetime, bounding the pool's resting goroutine count under
// bursty load. Only a shard whose overflow idle list holds more than 400
// workers is swept, and the two fast-path idle slots are never swept.
// The overflow list is ordered oldest-idle first, so stale workers are
// trimmed from its front.
func (e *executor) cleanup() {
	ticker := time.NewTicker(e.idleWorkerLifetime)
	defer ticker.Stop()
	for range ticker.C {
		if e.stopped.Load() {
			return
		}
		cutoff := time.Now().Add(-e.idleWorkerLifetime).UnixNano()
		for _, shard := range e.shards {
			shard.mu.Lock()
			n := len(shard.idleList)
			if n <= 400 {
				shard.mu.Unlock()
				continue
			}
			expired := 0
			for expired < n && shard.idleList[expired].lastUsed.Load() < cutoff {
				expired++
			}
			stale := append([]*execWorker(nil), shard.idleList[:expired]...)
			kept := copy(shard.idleList, shard.idleList[expired:])
			clear(shard.idleList[kept:])
			shard.idleList = shard.idleList[:kept]
			shard.mu.Unlock()

			for _, w := range stale {
				if !w.isDeleted.Swap(true) {
					w.state.Store(workerStateClosed)
					close(w.workChan)
				}
			}
		}
	}
}
