package foundry

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/TheBitDrifter/bark"
	"golang.org/x/sync/errgroup"
)

// defaultPoolSize sizes the worker pool at one fewer than GOMAXPROCS, so
// a dedicated driver thread still has a core to itself, and never below
// one worker.
func defaultPoolSize() int {
	if Config.workerPoolSize > 0 {
		return Config.workerPoolSize
	}
	n := runtime.GOMAXPROCS(0) - 1
	if n < 1 {
		return 1
	}
	return n
}

// scheduler executes one compiledSchedule's DAG with a bounded worker
// pool: a single driver goroutine holds the ready queue and always hands
// out the lowest-position ready node next, so results are reproducible
// regardless of how the OS happens to schedule goroutines underneath.
type scheduler struct {
	poolSize int
}

func newScheduler() *scheduler {
	return &scheduler{poolSize: defaultPoolSize()}
}

// run drives cs to completion against w, running independent nodes
// concurrently up to poolSize at a time. A system panic is recovered,
// trace-annotated and surfaced as the returned error rather than crashing
// the pool. The other nodes, including successors of the panicked one,
// are still dispatched; run returns the first such error once every node
// has finished.
func (s *scheduler) run(w *World, cs *compiledSchedule) error {
	n := len(cs.nodes)
	if n == 0 {
		return nil
	}

	indeg := append([]int(nil), cs.indeg...)
	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	ready := make([]int, 0, n)
	for i, d := range indeg {
		if d == 0 {
			ready = append(ready, i)
		}
	}
	remaining := n

	g := new(errgroup.Group)
	sem := make(chan struct{}, s.poolSize)

	popReady := func() (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		for len(ready) == 0 && remaining > 0 {
			cond.Wait()
		}
		if len(ready) == 0 {
			return 0, false
		}
		best := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[best] {
				best = i
			}
		}
		v := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		return v, true
	}

	complete := func(v int) {
		mu.Lock()
		remaining--
		for _, to := range cs.adj[v] {
			indeg[to]--
			if indeg[to] == 0 {
				ready = append(ready, to)
			}
		}
		cond.Broadcast()
		mu.Unlock()
	}

	dispatched := 0
	for dispatched < n {
		v, ok := popReady()
		if !ok {
			break
		}
		dispatched++
		sem <- struct{}{}
		node := cs.nodes[v]
		g.Go(func() (err error) {
			defer func() { <-sem; complete(v) }()
			defer func() {
				if r := recover(); r != nil {
					err = bark.AddTrace(fmt.Errorf("foundry: system %q panicked: %v", node.name, r))
				}
			}()
			return runNode(w, node)
		})
	}
	return g.Wait()
}

// runNode materializes node's parameters, runs it, and releases them. A
// materialize failure here means either the order graph let two
// conflicting systems become ready at once, or a Res/ResMut names a
// resource that was never inserted; either way it panics rather than
// returning a normal error (the panic is recovered by run).
func runNode(w *World, node *orderNode) error {
	ctx := &execContext{world: w, local: node.local}
	if !materializeAll(node.sys, ctx) {
		panic(bark.AddTrace(guardUnavailableError{system: node.name, typ: "<declared access>"}))
	}
	defer releaseAll(node.sys)
	node.sys.Run()
	return nil
}
