package foundry

// factory implements the factory pattern for foundry's construction
// surface: a package-level singleton that starts every world build.
type factory struct{}

// Factory is the global factory instance for creating foundry worlds.
var Factory factory

// NewWorldBuilder starts assembly of a new world: register resources and
// systems against it, then call Build to compile both schedules.
func (f factory) NewWorldBuilder() *WorldBuilder {
	w := &World{
		types:     newTypeRegistry(),
		entities:  newEntityTable(),
		resources: newResourceStore(),
		dataLock:  newTypeRWLock(),
		sched:     newScheduler(),
	}
	w.archetypes = newArchetypeRegistry(w.types, Config.chunkSizeBytes)
	return &WorldBuilder{
		world:  w,
		graphs: map[Schedule]*orderGraph{Start: newOrderGraph(), Update: newOrderGraph()},
	}
}

// FactoryNewCache creates a new SimpleCache with the specified capacity,
// for callers outside this package who want the same small registry
// foundry itself uses for the order graph's system lookup.
func FactoryNewCache[T any](cap int) *SimpleCache[T] {
	return NewSimpleCache[T](cap)
}

// WorldBuilder accumulates resources and systems before a single Build
// call compiles them into a runnable World.
type WorldBuilder struct {
	world  *World
	graphs map[Schedule]*orderGraph
}

// World exposes the builder's in-progress World so callers can insert
// resources and construct systems (which typically take *World in their
// own constructors to resolve component/resource type ids) before Build.
func (b *WorldBuilder) World() *World { return b.world }

// SystemHandle names one system's node within a schedule's order graph,
// returned by AddSystem so callers can chain Before/After to add explicit
// ordering edges.
type SystemHandle struct {
	graph *orderGraph
	idx   int
}

// AddSystem registers sys to run under sched, giving it its own
// system-local state store. The returned handle's Before/After add
// explicit ordering edges against other systems in the same schedule.
func (b *WorldBuilder) AddSystem(sched Schedule, sys System) SystemHandle {
	g := b.graphs[sched]
	ls := newLocalStore(b.world.types)
	idx := g.add(sys, ls)
	return SystemHandle{graph: g, idx: idx}
}

// After adds an explicit edge making h run only once other has finished.
func (h SystemHandle) After(other SystemHandle) SystemHandle {
	h.graph.addExplicit(other.idx, h.idx)
	return h
}

// Before adds an explicit edge making other run only once h has finished.
func (h SystemHandle) Before(other SystemHandle) SystemHandle {
	h.graph.addExplicit(h.idx, other.idx)
	return h
}

// Build compiles every schedule's order graph into a runnable World,
// failing with CycleInOrderingError if any schedule's explicit and
// inferred edges together form a cycle.
func (b *WorldBuilder) Build() (*World, error) {
	compiled := make(map[Schedule]*compiledSchedule, len(b.graphs))
	for sched, g := range b.graphs {
		cs, err := g.compile(sched.String())
		if err != nil {
			return nil, err
		}
		compiled[sched] = cs
	}
	b.world.schedules = compiled
	return b.world, nil
}
