package foundry

// Code in this file mechanically extends query.go's Query1..Query4 up to
// arity 8. Same shape throughout: declareAccess, materialize, release,
// Next, Entity, Get, GetEntity.

import "reflect"

type Query5[A, B, C, D, E any] struct {
	w                            *World
	mutA, mutB, mutC, mutD, mutE Mutability
	idA, idB, idC, idD, idE      TypeID
	cursor                       queryCursor
	guard                        *Guard
}

func NewQuery5[A, B, C, D, E any](w *World, mutA, mutB, mutC, mutD, mutE Mutability) *Query5[A, B, C, D, E] {
	return &Query5[A, B, C, D, E]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC, mutD: mutD, mutE: mutE,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
		idD: typeIDFor(w.types, reflect.TypeFor[D]()),
		idE: typeIDFor(w.types, reflect.TypeFor[E]()),
	}
}

func (q *Query5[A, B, C, D, E]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
	am.Require(q.idD, q.mutD)
	am.Require(q.idE, q.mutE)
}

func (q *Query5[A, B, C, D, E]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC, q.idD, q.idE}))
	return true
}

func (q *Query5[A, B, C, D, E]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query5[A, B, C, D, E]) Next() bool     { return q.cursor.next() }
func (q *Query5[A, B, C, D, E]) Entity() Entity { return q.cursor.entity() }
func (q *Query5[A, B, C, D, E]) Get() (*A, *B, *C, *D, *E) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)),
		(*C)(c.cur.get(c.slot, q.idC)), (*D)(c.cur.get(c.slot, q.idD)), (*E)(c.cur.get(c.slot, q.idE))
}

func (q *Query5[A, B, C, D, E]) GetEntity(e Entity) (*A, *B, *C, *D, *E, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) || !a.layout.has(q.idD) || !a.layout.has(q.idE) {
		return nil, nil, nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)),
		(*D)(a.get(slot, q.idD)), (*E)(a.get(slot, q.idE)), true
}

type Query6[A, B, C, D, E, F any] struct {
	w                                  *World
	mutA, mutB, mutC, mutD, mutE, mutF Mutability
	idA, idB, idC, idD, idE, idF       TypeID
	cursor                             queryCursor
	guard                              *Guard
}

func NewQuery6[A, B, C, D, E, F any](w *World, mutA, mutB, mutC, mutD, mutE, mutF Mutability) *Query6[A, B, C, D, E, F] {
	return &Query6[A, B, C, D, E, F]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC, mutD: mutD, mutE: mutE, mutF: mutF,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
		idD: typeIDFor(w.types, reflect.TypeFor[D]()),
		idE: typeIDFor(w.types, reflect.TypeFor[E]()),
		idF: typeIDFor(w.types, reflect.TypeFor[F]()),
	}
}

func (q *Query6[A, B, C, D, E, F]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
	am.Require(q.idD, q.mutD)
	am.Require(q.idE, q.mutE)
	am.Require(q.idF, q.mutF)
}

func (q *Query6[A, B, C, D, E, F]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC, q.idD, q.idE, q.idF}))
	return true
}

func (q *Query6[A, B, C, D, E, F]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query6[A, B, C, D, E, F]) Next() bool     { return q.cursor.next() }
func (q *Query6[A, B, C, D, E, F]) Entity() Entity { return q.cursor.entity() }
func (q *Query6[A, B, C, D, E, F]) Get() (*A, *B, *C, *D, *E, *F) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)), (*C)(c.cur.get(c.slot, q.idC)),
		(*D)(c.cur.get(c.slot, q.idD)), (*E)(c.cur.get(c.slot, q.idE)), (*F)(c.cur.get(c.slot, q.idF))
}

func (q *Query6[A, B, C, D, E, F]) GetEntity(e Entity) (*A, *B, *C, *D, *E, *F, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) || !a.layout.has(q.idD) || !a.layout.has(q.idE) || !a.layout.has(q.idF) {
		return nil, nil, nil, nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)),
		(*D)(a.get(slot, q.idD)), (*E)(a.get(slot, q.idE)), (*F)(a.get(slot, q.idF)), true
}

type Query7[A, B, C, D, E, F, G any] struct {
	w                                        *World
	mutA, mutB, mutC, mutD, mutE, mutF, mutG Mutability
	idA, idB, idC, idD, idE, idF, idG        TypeID
	cursor                                   queryCursor
	guard                                    *Guard
}

func NewQuery7[A, B, C, D, E, F, G any](w *World, mutA, mutB, mutC, mutD, mutE, mutF, mutG Mutability) *Query7[A, B, C, D, E, F, G] {
	return &Query7[A, B, C, D, E, F, G]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC, mutD: mutD, mutE: mutE, mutF: mutF, mutG: mutG,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
		idD: typeIDFor(w.types, reflect.TypeFor[D]()),
		idE: typeIDFor(w.types, reflect.TypeFor[E]()),
		idF: typeIDFor(w.types, reflect.TypeFor[F]()),
		idG: typeIDFor(w.types, reflect.TypeFor[G]()),
	}
}

func (q *Query7[A, B, C, D, E, F, G]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
	am.Require(q.idD, q.mutD)
	am.Require(q.idE, q.mutE)
	am.Require(q.idF, q.mutF)
	am.Require(q.idG, q.mutG)
}

func (q *Query7[A, B, C, D, E, F, G]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC, q.idD, q.idE, q.idF, q.idG}))
	return true
}

func (q *Query7[A, B, C, D, E, F, G]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query7[A, B, C, D, E, F, G]) Next() bool     { return q.cursor.next() }
func (q *Query7[A, B, C, D, E, F, G]) Entity() Entity { return q.cursor.entity() }
func (q *Query7[A, B, C, D, E, F, G]) Get() (*A, *B, *C, *D, *E, *F, *G) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)), (*C)(c.cur.get(c.slot, q.idC)),
		(*D)(c.cur.get(c.slot, q.idD)), (*E)(c.cur.get(c.slot, q.idE)), (*F)(c.cur.get(c.slot, q.idF)),
		(*G)(c.cur.get(c.slot, q.idG))
}

func (q *Query7[A, B, C, D, E, F, G]) GetEntity(e Entity) (*A, *B, *C, *D, *E, *F, *G, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) || !a.layout.has(q.idD) ||
		!a.layout.has(q.idE) || !a.layout.has(q.idF) || !a.layout.has(q.idG) {
		return nil, nil, nil, nil, nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)),
		(*D)(a.get(slot, q.idD)), (*E)(a.get(slot, q.idE)), (*F)(a.get(slot, q.idF)),
		(*G)(a.get(slot, q.idG)), true
}

type Query8[A, B, C, D, E, F, G, H any] struct {
	w                                              *World
	mutA, mutB, mutC, mutD, mutE, mutF, mutG, mutH Mutability
	idA, idB, idC, idD, idE, idF, idG, idH         TypeID
	cursor                                         queryCursor
	guard                                          *Guard
}

func NewQuery8[A, B, C, D, E, F, G, H any](w *World, mutA, mutB, mutC, mutD, mutE, mutF, mutG, mutH Mutability) *Query8[A, B, C, D, E, F, G, H] {
	return &Query8[A, B, C, D, E, F, G, H]{
		w: w, mutA: mutA, mutB: mutB, mutC: mutC, mutD: mutD, mutE: mutE, mutF: mutF, mutG: mutG, mutH: mutH,
		idA: typeIDFor(w.types, reflect.TypeFor[A]()),
		idB: typeIDFor(w.types, reflect.TypeFor[B]()),
		idC: typeIDFor(w.types, reflect.TypeFor[C]()),
		idD: typeIDFor(w.types, reflect.TypeFor[D]()),
		idE: typeIDFor(w.types, reflect.TypeFor[E]()),
		idF: typeIDFor(w.types, reflect.TypeFor[F]()),
		idG: typeIDFor(w.types, reflect.TypeFor[G]()),
		idH: typeIDFor(w.types, reflect.TypeFor[H]()),
	}
}

func (q *Query8[A, B, C, D, E, F, G, H]) declareAccess(am *AccessMap) {
	am.Require(q.idA, q.mutA)
	am.Require(q.idB, q.mutB)
	am.Require(q.idC, q.mutC)
	am.Require(q.idD, q.mutD)
	am.Require(q.idE, q.mutE)
	am.Require(q.idF, q.mutF)
	am.Require(q.idG, q.mutG)
	am.Require(q.idH, q.mutH)
}

func (q *Query8[A, B, C, D, E, F, G, H]) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	q.declareAccess(am)
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	q.guard = g
	q.cursor = newQueryCursor(ctx.world.archetypes, planArchetypes(ctx.world.archetypes, []TypeID{q.idA, q.idB, q.idC, q.idD, q.idE, q.idF, q.idG, q.idH}))
	return true
}

func (q *Query8[A, B, C, D, E, F, G, H]) release() {
	if q.guard != nil {
		q.guard.Release()
		q.guard = nil
	}
	q.cursor.reset()
}

func (q *Query8[A, B, C, D, E, F, G, H]) Next() bool     { return q.cursor.next() }
func (q *Query8[A, B, C, D, E, F, G, H]) Entity() Entity { return q.cursor.entity() }
func (q *Query8[A, B, C, D, E, F, G, H]) Get() (*A, *B, *C, *D, *E, *F, *G, *H) {
	c := q.cursor
	return (*A)(c.cur.get(c.slot, q.idA)), (*B)(c.cur.get(c.slot, q.idB)), (*C)(c.cur.get(c.slot, q.idC)),
		(*D)(c.cur.get(c.slot, q.idD)), (*E)(c.cur.get(c.slot, q.idE)), (*F)(c.cur.get(c.slot, q.idF)),
		(*G)(c.cur.get(c.slot, q.idG)), (*H)(c.cur.get(c.slot, q.idH))
}

func (q *Query8[A, B, C, D, E, F, G, H]) GetEntity(e Entity) (*A, *B, *C, *D, *E, *F, *G, *H, bool) {
	a, slot, ok := locate(q.w, e)
	if !ok || !a.layout.has(q.idA) || !a.layout.has(q.idB) || !a.layout.has(q.idC) || !a.layout.has(q.idD) ||
		!a.layout.has(q.idE) || !a.layout.has(q.idF) || !a.layout.has(q.idG) || !a.layout.has(q.idH) {
		return nil, nil, nil, nil, nil, nil, nil, nil, false
	}
	return (*A)(a.get(slot, q.idA)), (*B)(a.get(slot, q.idB)), (*C)(a.get(slot, q.idC)),
		(*D)(a.get(slot, q.idD)), (*E)(a.get(slot, q.idE)), (*F)(a.get(slot, q.idF)),
		(*G)(a.get(slot, q.idG)), (*H)(a.get(slot, q.idH)), true
}
