package foundry

import "fmt"

// World owns every piece of one simulation's state: the type registry,
// archetype storage, the entity table, named resources, the shared
// per-type RW lock arbitrating all of it, and the compiled schedules a
// WorldBuilder produced. It is built once via WorldBuilder.Build and then
// driven by repeated ExecuteIteration calls.
type World struct {
	types      *typeRegistry
	archetypes *archetypeRegistry
	entities   *entityTable
	resources  *resourceStore
	dataLock   *typeRWLock
	sched      *scheduler
	schedules  map[Schedule]*compiledSchedule
}

// Schedule names one of the world's two fixed run points: Start runs
// once, Update runs once per simulation tick.
type Schedule uint8

const (
	Start Schedule = iota
	Update
)

func (s Schedule) String() string {
	switch s {
	case Start:
		return "Start"
	case Update:
		return "Update"
	default:
		return "unknown"
	}
}

// ExecuteIteration runs every system registered against sched to
// completion, respecting the schedule's order graph and running
// independent systems concurrently across the worker pool.
func (w *World) ExecuteIteration(sched Schedule) error {
	cs, ok := w.schedules[sched]
	if !ok {
		return fmt.Errorf("foundry: schedule %s was never built", sched)
	}
	return w.sched.run(w, cs)
}

// Contains reports whether e is a currently-live entity handle.
func (w *World) Contains(e Entity) bool {
	_, ok := w.entities.locationOf(e)
	return ok
}

// CreateEntity allocates a fresh entity with no components, placed in the
// world's empty archetype.
func CreateEntity(w *World) Entity {
	e := w.entities.alloc(location{})
	root, _ := w.archetypes.getOrCreate(nil)
	slot := root.createEntity(e)
	w.entities.setLocation(e, location{archetype: root.id, slot: slot})
	return e
}

// DestroyEntity destroys every component e carries and returns its index
// to the free list. Destroying an already-unknown entity is a no-op
// error, not a panic — callers routinely race destruction against other
// bookkeeping.
func DestroyEntity(w *World, e Entity) error {
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return UnknownEntityError{Entity: e}
	}
	a := w.archetypes.byIDOf(loc.archetype)
	moved := a.destroyEntity(loc.slot)
	w.entities.release(e)
	if moved.Valid() {
		w.entities.setLocation(moved, loc)
	}
	return nil
}

// AddComponent moves e into the archetype for its current component set
// plus T, leaving every other component's bytes untouched. Returns
// ComponentAlreadyPresentError if e already carries T.
func AddComponent[T any](w *World, e Entity, value T) error {
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return UnknownEntityError{Entity: e}
	}
	src := w.archetypes.byIDOf(loc.archetype)
	desc := descriptorOf[T](w.types)
	if src.layout.has(desc.id) {
		return ComponentAlreadyPresentError{TypeName: desc.name, Entity: e}
	}

	dst, _ := w.archetypes.getOrCreate(src.layout.plusOne(desc.id))
	dstSlot := src.moveSharedInto(dst, loc.slot, e)
	*(*T)(dst.get(dstSlot, desc.id)) = value

	moved := src.removeSlotWithoutDestroy(loc.slot)
	w.entities.setLocation(e, location{archetype: dst.id, slot: dstSlot})
	if moved.Valid() {
		w.entities.setLocation(moved, loc)
	}
	return nil
}

// RemoveComponent moves e into the archetype for its current component
// set minus T, returning the removed value. Returns UnknownComponentError
// if e does not carry T.
func RemoveComponent[T any](w *World, e Entity) (T, error) {
	var removed T
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return removed, UnknownEntityError{Entity: e}
	}
	src := w.archetypes.byIDOf(loc.archetype)
	desc := descriptorOf[T](w.types)
	if !src.layout.has(desc.id) {
		return removed, UnknownComponentError{TypeName: desc.name, Entity: e}
	}

	slotPtr := (*T)(src.get(loc.slot, desc.id))
	removed = *slotPtr
	desc.destroy(src.get(loc.slot, desc.id))
	dst, _ := w.archetypes.getOrCreate(src.layout.minusOne(desc.id))
	dstSlot := src.moveSharedInto(dst, loc.slot, e)

	moved := src.removeSlotWithoutDestroy(loc.slot)
	w.entities.setLocation(e, location{archetype: dst.id, slot: dstSlot})
	if moved.Valid() {
		w.entities.setLocation(moved, loc)
	}
	return removed, nil
}

// GetComponent returns a pointer to e's value of type T, or false if e is
// unknown or does not carry T.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return nil, false
	}
	a := w.archetypes.byIDOf(loc.archetype)
	desc := descriptorOf[T](w.types)
	if !a.layout.has(desc.id) {
		return nil, false
	}
	return (*T)(a.get(loc.slot, desc.id)), true
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return false
	}
	return w.archetypes.byIDOf(loc.archetype).layout.has(descriptorOf[T](w.types).id)
}
