package foundry

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

type edge struct{ from, to int }

// orderNode is one registered system within a single schedule's graph:
// its declared access (computed once, at registration, from its Params),
// its own local-state store, and its registration index (used both as
// the node id and as the tie-break key for the stable base order).
type orderNode struct {
	name     string
	sys      System
	local    *localStore
	access   *AccessMap
	regIndex int
}

// orderGraph builds one schedule's (Start or Update) system DAG: explicit
// edges from Before/After calls, plus data edges inferred from pairwise
// access-map conflicts.
type orderGraph struct {
	nodes    []*orderNode
	names    *SimpleCache[int]
	explicit []edge
}

func newOrderGraph() *orderGraph {
	return &orderGraph{names: NewSimpleCache[int](MaxComponentTypes)}
}

func systemTypeName(sys System) string {
	return reflect.TypeOf(sys).String()
}

// add registers sys as a new node, rejecting a second registration of the
// same system type within one schedule: the graph has no way to order
// two copies of the same node against each other, so the underlying
// registry rejects the duplicate key outright.
func (g *orderGraph) add(sys System, local *localStore) int {
	name := systemTypeName(sys)
	idx, err := g.names.Register(name, len(g.nodes))
	if err != nil {
		panic(bark.AddTrace(err))
	}
	g.nodes = append(g.nodes, &orderNode{
		name:     name,
		sys:      sys,
		local:    local,
		access:   collectAccess(sys),
		regIndex: idx,
	})
	return idx
}

func (g *orderGraph) addExplicit(from, to int) {
	g.explicit = append(g.explicit, edge{from: from, to: to})
}

// conflicts reports whether a and b's declared access overlaps in a way
// that forbids running them concurrently: either side's global-exclusive
// flag, or any shared type-id where at least one side is Exclusive.
func conflicts(a, b *AccessMap) bool {
	if a.Global || b.Global {
		return true
	}
	for t, mut := range a.Types {
		if other, ok := b.Types[t]; ok {
			if mut == Exclusive || other == Exclusive {
				return true
			}
		}
	}
	return false
}

// dataEdges infers an edge for every conflicting pair, oriented by each
// node's position in the base order (pos, computed from explicit edges
// alone) rather than by raw registration index: an explicit edge that
// reorders two conflicting systems against registration order must be
// respected, not contradicted by a data edge pointing the other way.
func (g *orderGraph) dataEdges(pos []int) []edge {
	var out []edge
	for i := 0; i < len(g.nodes); i++ {
		for j := i + 1; j < len(g.nodes); j++ {
			if !conflicts(g.nodes[i].access, g.nodes[j].access) {
				continue
			}
			if pos[i] < pos[j] {
				out = append(out, edge{from: i, to: j})
			} else {
				out = append(out, edge{from: j, to: i})
			}
		}
	}
	return out
}

// compiledSchedule is a schedule's order graph, already resolved to base
// order: nodes[i] is the i-th highest-priority system, and adj/indeg
// describe dependency edges in that same position space, so the
// scheduler's ready queue can pick the lowest-position ready node without
// ever re-deriving priority from the original registration indices.
type compiledSchedule struct {
	name  string
	nodes []*orderNode
	adj   [][]int
	indeg []int
}

// compile merges explicit and inferred edges and produces the schedule's
// base order: a topological sort that, among several orderings that would
// all satisfy the edges, always makes the same choice by preferring the
// lowest registration index among the currently-runnable nodes, so
// iteration order stays deterministic and reproducible wherever multiple
// valid orders exist.
func (g *orderGraph) compile(scheduleName string) (*compiledSchedule, error) {
	// Step 1: the base order is the stable topological sort of explicit
	// edges alone — data edges must be oriented relative to this order,
	// not derived from it circularly.
	baseOrder, ok := stableTopoSort(len(g.nodes), g.explicit)
	if !ok {
		cyc := findCycle(len(g.nodes), g.explicit)
		names := make([]string, len(cyc))
		for i, n := range cyc {
			names[i] = g.nodes[n].name
		}
		return nil, CycleInOrderingError{Schedule: scheduleName, Cycle: names}
	}

	pos := make([]int, len(baseOrder))
	for i, origIdx := range baseOrder {
		pos[origIdx] = i
	}

	// Step 2: walk conflicting pairs oriented by their base-order
	// position, then merge with the explicit edges that produced that
	// order. Every data edge already points in the base order's forward
	// direction, so the merged set cannot introduce a new cycle and
	// baseOrder remains a valid topological order of the merged graph.
	edges := append(append([]edge(nil), g.explicit...), g.dataEdges(pos)...)

	nodes := make([]*orderNode, len(baseOrder))
	for i, origIdx := range baseOrder {
		nodes[i] = g.nodes[origIdx]
	}

	adj := make([][]int, len(baseOrder))
	indeg := make([]int, len(baseOrder))
	seen := make(map[edge]bool, len(edges))
	for _, e := range edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		u, v := pos[e.from], pos[e.to]
		adj[u] = append(adj[u], v)
		indeg[v]++
	}

	return &compiledSchedule{name: scheduleName, nodes: nodes, adj: adj, indeg: indeg}, nil
}

// stableTopoSort runs Kahn's algorithm, always picking the smallest-index
// zero-indegree node available at each step.
func stableTopoSort(n int, edges []edge) ([]int, bool) {
	adj := make([][]int, n)
	indeg := make([]int, n)
	seen := make(map[edge]bool, len(edges))
	for _, e := range edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		adj[e.from] = append(adj[e.from], e.to)
		indeg[e.to]++
	}

	done := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		pick := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				pick = i
				break
			}
		}
		if pick == -1 {
			return nil, false
		}
		done[pick] = true
		order = append(order, pick)
		for _, to := range adj[pick] {
			indeg[to]--
		}
	}
	return order, true
}

// findCycle locates one cycle among edges for a diagnostic error message;
// only called once stableTopoSort has already confirmed one exists.
func findCycle(n int, edges []edge) []int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.from] = append(adj[e.from], e.to)
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, n)
	var stack []int
	var cycle []int

	var visit func(v int) bool
	visit = func(v int) bool {
		color[v] = gray
		stack = append(stack, v)
		for _, to := range adj[v] {
			if color[to] == gray {
				for i := len(stack) - 1; i >= 0; i-- {
					cycle = append(cycle, stack[i])
					if stack[i] == to {
						break
					}
				}
				return true
			}
			if color[to] == white && visit(to) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[v] = black
		return false
	}

	for v := 0; v < n; v++ {
		if color[v] == white && visit(v) {
			return cycle
		}
	}
	return nil
}
