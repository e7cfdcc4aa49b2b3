package foundry

import "testing"

func TestEntityTableAllocAndRelease(t *testing.T) {
	tab := newEntityTable()

	a := tab.alloc(location{archetype: 1, slot: 0})
	b := tab.alloc(location{archetype: 1, slot: 1})

	if a.index == b.index {
		t.Fatalf("expected distinct indices, got %d and %d", a.index, b.index)
	}
	if !tab.isCurrent(a) || !tab.isCurrent(b) {
		t.Fatalf("freshly allocated entities should be current")
	}

	tab.release(a)
	if tab.isCurrent(a) {
		t.Fatalf("released entity should no longer be current")
	}

	c := tab.alloc(location{archetype: 2, slot: 0})
	if c.index != a.index {
		t.Fatalf("expected index reuse, got new index %d instead of freed %d", c.index, a.index)
	}
	if c.generation == a.generation {
		t.Fatalf("reused index must bump generation: old %d, new %d", a.generation, c.generation)
	}
	if tab.isCurrent(a) {
		t.Fatalf("stale handle into a reused index must stay stale")
	}
}

func TestEntityValid(t *testing.T) {
	if Null.Valid() {
		t.Fatalf("Null must not be valid")
	}
	e := Entity{index: 1, generation: 1}
	if !e.Valid() {
		t.Fatalf("non-zero entity must be valid")
	}
}

func TestEntityLocationOf(t *testing.T) {
	tab := newEntityTable()
	e := tab.alloc(location{archetype: 3, slot: 7})

	loc, ok := tab.locationOf(e)
	if !ok || loc.archetype != 3 || loc.slot != 7 {
		t.Fatalf("locationOf = %+v, %v; want {3 7}, true", loc, ok)
	}

	tab.setLocation(e, location{archetype: 3, slot: 9})
	loc, ok = tab.locationOf(e)
	if !ok || loc.slot != 9 {
		t.Fatalf("locationOf after setLocation = %+v; want slot 9", loc)
	}

	if _, ok := tab.locationOf(Entity{index: 99, generation: 1}); ok {
		t.Fatalf("locationOf on an unknown index must fail")
	}
}
