package foundry

import "unsafe"

// archetypeID is the registry-assigned identity of one archetype.
type archetypeID uint32

// archetype owns component memory for every entity that carries exactly
// its set of component types. Chunks are appended lazily; a trailing
// chunk is released once it holds no live entities (see
// maybeDropEmptyTrailingChunk). Archetypes themselves are never
// destroyed once created.
type archetype struct {
	id     archetypeID
	layout *archetypeLayout
	chunks []*chunk
	count  int // total live entities across all chunks
}

func newArchetypeStore(id archetypeID, layout *archetypeLayout) *archetype {
	return &archetype{id: id, layout: layout}
}

func (a *archetype) Occupied() int   { return a.count }
func (a *archetype) ChunkCount() int { return len(a.chunks) }

func (a *archetype) slotOf(idx int) (*chunk, int) {
	n := a.layout.chunkCapacity
	ci := idx / n
	return a.chunks[ci], idx % n
}

// createEntity appends a new slot for e, allocating a chunk if the last
// one is full, and returns the archetype-relative slot index.
func (a *archetype) createEntity(e Entity) int {
	n := a.layout.chunkCapacity
	if a.count == len(a.chunks)*n {
		a.chunks = append(a.chunks, newChunk(a.layout))
	}
	slot := a.count
	c, inChunk := a.slotOf(slot)
	c.setEntity(inChunk, e)
	c.count++
	a.count++
	return slot
}

// destroyEntity destroys the slot's components via their destructors,
// then performs swap-with-last: the last live slot's bytes are copied
// into the vacated slot and the count shrinks by one. It returns the
// entity that was moved (Null if the destroyed slot was already last).
func (a *archetype) destroyEntity(slot int) Entity {
	c, inChunk := a.slotOf(slot)
	destroyRecord(a.layout, c, inChunk)

	last := a.count - 1
	var moved Entity
	if slot != last {
		lastChunk, lastInChunk := a.slotOf(last)
		copyRecord(a.layout, c, inChunk, lastChunk, lastInChunk)
		moved = *c.entityPtr(inChunk)
	}
	lastChunk, lastInChunk := a.slotOf(last)
	lastChunk.count--
	a.count--
	_ = lastInChunk
	a.maybeDropEmptyTrailingChunk()
	return moved
}

// maybeDropEmptyTrailingChunk releases the trailing chunk once it holds
// no live entities. Archetypes never shrink their entity count below
// zero chunks, but an emptied trailing chunk is cheap to release since
// nothing has moved into it yet.
func (a *archetype) maybeDropEmptyTrailingChunk() {
	n := a.layout.chunkCapacity
	for len(a.chunks) > 0 && a.count <= (len(a.chunks)-1)*n {
		a.chunks = a.chunks[:len(a.chunks)-1]
	}
}

// entityAt returns the Entity stored at archetype-relative slot.
func (a *archetype) entityAt(slot int) Entity {
	c, inChunk := a.slotOf(slot)
	return *c.entityPtr(inChunk)
}

// get returns a pointer to the component of type id at slot, or nil if
// this archetype does not carry that component.
func (a *archetype) get(slot int, id TypeID) unsafe.Pointer {
	fi, ok := a.layout.indexOf(id)
	if !ok {
		return nil
	}
	c, inChunk := a.slotOf(slot)
	return c.fieldPtr(a.layout, fi, inChunk)
}

// moveSharedInto copies every component dst's layout and src's layout
// have in common, plus the entity slot, from (src, srcSlot) into a fresh
// slot of dst, returning the new slot index. Used by addComponent and
// removeComponent to migrate an entity across archetypes.
func (a *archetype) moveSharedInto(dst *archetype, srcSlot int, e Entity) int {
	dstSlot := dst.createEntity(e)
	dstChunk, dstInChunk := dst.slotOf(dstSlot)
	srcChunk, srcInChunk := a.slotOf(srcSlot)
	for fi, d := range a.layout.descs {
		dfi, ok := dst.layout.indexOf(d.id)
		if !ok {
			continue
		}
		srcPtr := srcChunk.fieldPtr(a.layout, fi, srcInChunk)
		dstPtr := dstChunk.fieldPtr(dst.layout, dfi, dstInChunk)
		memcopy(dstPtr, srcPtr, d.size)
	}
	return dstSlot
}

// removeSlotWithoutDestroy performs swap-with-last on slot without
// running any destructors — used once the slot's components have
// already been moved elsewhere (add/remove component migration), so the
// vacated bytes must not be double-destroyed.
func (a *archetype) removeSlotWithoutDestroy(slot int) Entity {
	last := a.count - 1
	var moved Entity
	if slot != last {
		c, inChunk := a.slotOf(slot)
		lastChunk, lastInChunk := a.slotOf(last)
		copyRecord(a.layout, c, inChunk, lastChunk, lastInChunk)
		moved = *c.entityPtr(inChunk)
	}
	lastChunk, _ := a.slotOf(last)
	lastChunk.count--
	a.count--
	a.maybeDropEmptyTrailingChunk()
	return moved
}

// iterSlots calls visit(slot) for every live slot in ascending order.
func (a *archetype) iterSlots(visit func(slot int)) {
	for i := 0; i < a.count; i++ {
		visit(i)
	}
}
