package foundry

import "testing"

type testPosition struct{ X, Y float64 }
type testVelocity struct{ X, Y float64 }

func TestArchetypeCreateAndGet(t *testing.T) {
	reg := newTypeRegistry()
	posID := descriptorOf[testPosition](reg).id
	velID := descriptorOf[testVelocity](reg).id
	layout := buildLayout(reg, []TypeID{posID, velID}, defaultChunkSizeBytes)
	a := newArchetypeStore(0, layout)

	e := Entity{index: 1, generation: 1}
	slot := a.createEntity(e)

	pos := (*testPosition)(a.get(slot, posID))
	*pos = testPosition{X: 1, Y: 2}
	vel := (*testVelocity)(a.get(slot, velID))
	*vel = testVelocity{X: 3, Y: 4}

	gotPos := (*testPosition)(a.get(slot, posID))
	if *gotPos != (testPosition{X: 1, Y: 2}) {
		t.Fatalf("got position %+v", *gotPos)
	}
	if a.entityAt(slot) != e {
		t.Fatalf("entityAt(%d) = %v, want %v", slot, a.entityAt(slot), e)
	}
	if a.Occupied() != 1 {
		t.Fatalf("Occupied() = %d, want 1", a.Occupied())
	}
}

func TestArchetypeDestroySwapsLast(t *testing.T) {
	reg := newTypeRegistry()
	posID := descriptorOf[testPosition](reg).id
	layout := buildLayout(reg, []TypeID{posID}, defaultChunkSizeBytes)
	a := newArchetypeStore(0, layout)

	e0 := Entity{index: 0, generation: 1}
	e1 := Entity{index: 1, generation: 1}
	e2 := Entity{index: 2, generation: 1}
	s0 := a.createEntity(e0)
	_ = a.createEntity(e1)
	_ = a.createEntity(e2)

	*(*testPosition)(a.get(s0, posID)) = testPosition{X: 0, Y: 0}
	*(*testPosition)(a.get(1, posID)) = testPosition{X: 1, Y: 1}
	*(*testPosition)(a.get(2, posID)) = testPosition{X: 2, Y: 2}

	moved := a.destroyEntity(s0)
	if moved != e2 {
		t.Fatalf("destroyEntity moved %v, want the last entity %v", moved, e2)
	}
	if a.Occupied() != 2 {
		t.Fatalf("Occupied() after destroy = %d, want 2", a.Occupied())
	}
	if got := *(*testPosition)(a.get(0, posID)); got != (testPosition{X: 2, Y: 2}) {
		t.Fatalf("slot 0 after swap-with-last = %+v, want the old last entity's value", got)
	}
	if a.entityAt(0) != e2 {
		t.Fatalf("entityAt(0) after swap = %v, want %v", a.entityAt(0), e2)
	}
}

func TestArchetypeMultiChunkAndTrailingRelease(t *testing.T) {
	reg := newTypeRegistry()
	posID := descriptorOf[testPosition](reg).id
	// force a tiny chunk capacity so a handful of entities spans several chunks
	layout := buildLayout(reg, []TypeID{posID}, 64)
	if layout.chunkCapacity >= 8 {
		t.Fatalf("test assumes a small chunk capacity, got %d", layout.chunkCapacity)
	}
	a := newArchetypeStore(0, layout)

	var entities []Entity
	for i := 0; i < layout.chunkCapacity*3; i++ {
		e := Entity{index: uint32(i), generation: 1}
		a.createEntity(e)
		entities = append(entities, e)
	}
	if a.ChunkCount() != 3 {
		t.Fatalf("ChunkCount() = %d, want 3", a.ChunkCount())
	}

	for a.Occupied() > 0 {
		a.destroyEntity(0)
	}
	if a.ChunkCount() != 0 {
		t.Fatalf("ChunkCount() after emptying = %d, want 0 (trailing chunks released)", a.ChunkCount())
	}
}

func TestArchetypeMoveSharedInto(t *testing.T) {
	reg := newTypeRegistry()
	posID := descriptorOf[testPosition](reg).id
	velID := descriptorOf[testVelocity](reg).id

	src := newArchetypeStore(0, buildLayout(reg, []TypeID{posID}, defaultChunkSizeBytes))
	dst := newArchetypeStore(1, buildLayout(reg, []TypeID{posID, velID}, defaultChunkSizeBytes))

	e := Entity{index: 5, generation: 1}
	slot := src.createEntity(e)
	*(*testPosition)(src.get(slot, posID)) = testPosition{X: 9, Y: 9}

	dstSlot := src.moveSharedInto(dst, slot, e)
	if got := *(*testPosition)(dst.get(dstSlot, posID)); got != (testPosition{X: 9, Y: 9}) {
		t.Fatalf("moved position = %+v, want {9 9}", got)
	}
	if dst.entityAt(dstSlot) != e {
		t.Fatalf("moved entity handle = %v, want %v", dst.entityAt(dstSlot), e)
	}
}
