package foundry

import "testing"

// fakeParam is a minimal Param whose declared access is fixed at
// construction, letting the order-graph tests control conflicts directly
// without going through real resources or queries.
type fakeParam struct {
	id     TypeID
	mut    Mutability
	global bool
}

func (p fakeParam) declareAccess(am *AccessMap) {
	if p.global {
		am.RequireGlobal()
		return
	}
	am.Require(p.id, p.mut)
}
func (p fakeParam) materialize(ctx *execContext) bool { return true }
func (p fakeParam) release()                          {}

// namedFakeSystem is parameterized by a phantom Tag type purely so each
// instantiation gets a distinct reflect.Type, matching how real distinct
// system structs would be registered.
type namedFakeSystem[Tag any] struct {
	params []Param
}

func (s *namedFakeSystem[Tag]) Params() []Param { return s.params }
func (s *namedFakeSystem[Tag]) Run()            {}

type tagA struct{}
type tagB struct{}
type tagC struct{}

func TestOrderGraphInfersDataEdgeFromConflict(t *testing.T) {
	g := newOrderGraph()
	writer := &namedFakeSystem[tagA]{params: []Param{fakeParam{id: 1, mut: Exclusive}}}
	reader := &namedFakeSystem[tagB]{params: []Param{fakeParam{id: 1, mut: Shared}}}

	g.add(writer, nil)
	g.add(reader, nil)

	cs, err := g.compile("Test")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if cs.nodes[0].sys != System(writer) {
		t.Fatalf("writer was registered first and must run first given the inferred conflict edge")
	}
	if len(cs.adj[0]) != 1 || cs.adj[0][0] != 1 {
		t.Fatalf("adj[0] = %v, want a single inferred edge writer->reader", cs.adj[0])
	}
}

func TestOrderGraphIndependentSystemsKeepRegistrationOrder(t *testing.T) {
	g := newOrderGraph()
	a := &namedFakeSystem[tagA]{params: []Param{fakeParam{id: 1, mut: Shared}}}
	b := &namedFakeSystem[tagB]{params: []Param{fakeParam{id: 2, mut: Shared}}}

	g.add(a, nil)
	g.add(b, nil)

	cs, err := g.compile("Test")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if cs.nodes[0].sys != System(a) || cs.nodes[1].sys != System(b) {
		t.Fatalf("non-conflicting systems should still break ties by registration order")
	}
	if len(cs.adj[0]) != 0 {
		t.Fatalf("non-conflicting systems must not have a dependency edge between them")
	}
}

func TestOrderGraphExplicitEdgeOverridesConflictFreeDefault(t *testing.T) {
	g := newOrderGraph()
	a := &namedFakeSystem[tagA]{params: []Param{fakeParam{id: 1, mut: Shared}}}
	b := &namedFakeSystem[tagB]{params: []Param{fakeParam{id: 2, mut: Shared}}}

	ia := g.add(a, nil)
	ib := g.add(b, nil)
	g.addExplicit(ib, ia) // force b before a, despite a being registered first

	cs, err := g.compile("Test")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if cs.nodes[0].sys != System(b) {
		t.Fatalf("explicit edge must be able to override the registration-order default")
	}
}

// TestOrderGraphExplicitEdgeReordersConflictingSystems registers a and b
// (both Exclusive on the same type, so they genuinely conflict) with a
// registered before b, then adds an explicit edge forcing b before a.
// Data-edge inference must follow that reordering — not the raw
// registration index — or the merged edge set contains a 2-node cycle
// and a valid configuration is rejected with a spurious ordering error.
func TestOrderGraphExplicitEdgeReordersConflictingSystems(t *testing.T) {
	g := newOrderGraph()
	a := &namedFakeSystem[tagA]{params: []Param{fakeParam{id: 1, mut: Exclusive}}}
	b := &namedFakeSystem[tagB]{params: []Param{fakeParam{id: 1, mut: Exclusive}}}

	ia := g.add(a, nil)
	ib := g.add(b, nil)
	g.addExplicit(ib, ia) // force b before a, despite a being registered first and conflicting

	cs, err := g.compile("Test")
	if err != nil {
		t.Fatalf("compile: %v (a conflicting pair reordered by an explicit edge must still build)", err)
	}
	if cs.nodes[0].sys != System(b) || cs.nodes[1].sys != System(a) {
		t.Fatalf("base order = [%v %v], want [b a] per the explicit edge", cs.nodes[0].name, cs.nodes[1].name)
	}
	if len(cs.adj[0]) != 1 || cs.adj[0][0] != 1 {
		t.Fatalf("adj[0] = %v, want a single edge b->a", cs.adj[0])
	}
}

func TestOrderGraphGlobalConflictsWithEverything(t *testing.T) {
	g := newOrderGraph()
	excl := &namedFakeSystem[tagA]{params: []Param{fakeParam{global: true}}}
	other := &namedFakeSystem[tagB]{params: []Param{fakeParam{id: 7, mut: Shared}}}

	g.add(excl, nil)
	g.add(other, nil)

	cs, err := g.compile("Test")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(cs.adj[0]) != 1 {
		t.Fatalf("a global-exclusive system must get a dependency edge against every other system")
	}
}

func TestOrderGraphCycleIsRejected(t *testing.T) {
	g := newOrderGraph()
	a := &namedFakeSystem[tagA]{params: nil}
	b := &namedFakeSystem[tagB]{params: nil}
	c := &namedFakeSystem[tagC]{params: nil}

	ia := g.add(a, nil)
	ib := g.add(b, nil)
	ic := g.add(c, nil)
	g.addExplicit(ia, ib)
	g.addExplicit(ib, ic)
	g.addExplicit(ic, ia)

	_, err := g.compile("Test")
	if err == nil {
		t.Fatalf("a 3-cycle of explicit edges must be rejected")
	}
	cycleErr, ok := err.(CycleInOrderingError)
	if !ok {
		t.Fatalf("error type = %T, want CycleInOrderingError", err)
	}
	if len(cycleErr.Cycle) == 0 {
		t.Fatalf("CycleInOrderingError should name the cycle's systems")
	}
}

func TestOrderGraphRejectsDuplicateSystemType(t *testing.T) {
	g := newOrderGraph()
	a1 := &namedFakeSystem[tagA]{}
	a2 := &namedFakeSystem[tagA]{}
	g.add(a1, nil)

	defer func() {
		if recover() == nil {
			t.Fatalf("registering the same system type twice in one schedule must panic")
		}
	}()
	g.add(a2, nil)
}
