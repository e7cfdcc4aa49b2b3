package foundry

import "reflect"

// Query1 iterates every entity whose archetype carries component A,
// yielding a pointer to A per entity. It doubles as a system Param: a
// system with a Query1[...] field automatically declares A's access and
// re-plans/re-acquires it each invocation (see system.go).
type Query1[A any] struct {
	w      *World
	mutA   Mutability
	idA    TypeID
	cursor queryCursor
	guard  *Guard
}

// NewQuery1 builds a standalone Query1 (outside of a system's declared
// parameters) for ad-hoc iteration, e.g. from test code or from an
// exclusive-world system body.
func NewQuery1[A any](w *World, mutA Mutability) *Query1[A] {
	return &Query1[A]{w: w, mutA: mutA, idA: typeIDFor(w.types, reflect.TypeFor[A]())}
}

func (q *Query1[A]) declareAccess(am *AccessMap) { am.Require(q.idA, q.mutA) }

func (q *Query1[A]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA}))
	return true
}

func (q *Query1[A]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

// Next, Entity and Get give stateful forward iteration: `for q.Next() {
// a := q.Get(); ... }`.
func (q *Query1[A]) Next() bool     { return q.cursor.next() }
func (q *Query1[A]) Entity() Entity { return q.cursor.entity() }
func (q *Query1[A]) Get() *A {
	return (*A)(q.cursor.cur.get(q.cursor.slot, q.idA))
}

// GetEntity is the query's pointwise access: consult the entity table,
// then materialize the item from the located archetype/slot.
func (q *Query1[A]) GetEntity(e Entity) (*A, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) {
		return nil, false
	}
	return (*A)(a.get(slot, q.idA)), true
}

// Query2 is the two-component form of Query1.
type Query2[A, B any] struct {
	w          *World
	mutA, mutB Mutability
	idA, idB   TypeID
	cursor     queryCursor
	guard      *Guard
}

func NewQuery2[A, B any](w *World, mutA, mutB Mutability) *Query2[A, B] {
	return &Query2[A, B]{
		w: w, mutA: mutA, mutB: mutB,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
	}
}

func (q *Query2[A, B]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
}

func (q *Query2[A, B]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB}))
	return true
}

func (q *Query2[A, B]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query2[A, B]) Next() bool     { return q.cursor.next() }
func (q *Query2[A, B]) Entity() Entity { return q.cursor.entity() }
func (q *Query2[A, B]) Get() (*A, *B) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB))
}

func (q *Query2[A, B]) GetEntity(e Entity) (*A, *B, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) {
		return nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), true
}

// Query3 is the three-component form.
type Query3[A, B, C any] struct {
	w               *World
	mutA, mutB, mutC Mutability
	idA, idB, idC    TypeID
	cursor           queryCursor
	guard            *Guard
}

func NewQuery3[A, B, C any](w *World, mutA, mutB, mutC Mutability) *Query3[A, B, C] {
	return &Query3[A, B, C]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
	}
}

func (q *Query3[A, B, C]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
}

func (q *Query3[A, B, C]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC}))
	return true
}

func (q *Query3[A, B, C]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query3[A, B, C]) Next() bool     { return q.cursor.next() }
func (q *Query3[A, B, C]) Entity() Entity { return q.cursor.entity() }
func (q *Query3[A, B, C]) Get() (*A, *B, *C) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)), (*C)(c.cur.get(c.slot, q.idC))
}

func (q *Query3[A, B, C]) GetEntity(e Entity) (*A, *B, *C, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) {
		return nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)), true
}

// Query4 is the four-component form.
type Query4[A, B, C, D any] struct {
	w                     *World
	mutA, mutB, mutC, mutD Mutability
	idA, idB, idC, idD     TypeID
	cursor                 queryCursor
	guard                  *Guard
}

func NewQuery4[A, B, C, D any](w *World, mutA, mutB, mutC, mutD Mutability) *Query4[A, B, C, D] {
	return &Query4[A, B, C, D]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC, mutD: mutD,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
		idD: typeIDFor(w.types, reflect.TypeFor[D]()),
	}
}

func (q *Query4[A, B, C, D]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
	am.Require(q.idD, q.mutD)
}

func (q *Query4[A, B, C, D]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC, q.idD}))
	return true
}

func (q *Query4[A, B, C, D]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query4[A, B, C, D]) Next() bool     { return q.cursor.next() }
func (q *Query4[A, B, C, D]) Entity() Entity { return q.cursor.entity() }
func (q *Query4[A, B, C, D]) Get() (*A, *B, *C, *D) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)),
		(*C)(c.cur.get(c.slot, q.idC)), (*D)(c.cur.get(c.slot, q.idD))
}

func (q *Query4[A, B, C, D]) GetEntity(e Entity) (*A, *B, *C, *D, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) || !a.layout.has(q.idD) {
		return nil, nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)), (*D)(a.get(slot, q.idD)), true
}
