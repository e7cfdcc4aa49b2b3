package foundry

import "testing"

func newTestWorld(t *testing.T) *World {
	t.Helper()
	b := Factory.NewWorldBuilder()
	w, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return w
}

func TestQuery2IteratesMatchingEntities(t *testing.T) {
	w := newTestWorld(t)

	both := CreateEntity(w)
	if err := AddComponent(w, both, testPosition{X: 1}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if err := AddComponent(w, both, testVelocity{X: 2}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	posOnly := CreateEntity(w)
	if err := AddComponent(w, posOnly, testPosition{X: 9}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	q := NewQuery2[testPosition, testVelocity](w, Exclusive, Shared)
	if !q.materialize(&execContext{world: w}) {
		t.Fatalf("materialize should succeed on an uncontended query")
	}
	defer q.release()

	seen := map[Entity]bool{}
	count := 0
	for q.Next() {
		count++
		seen[q.Entity()] = true
		pos, vel := q.Get()
		pos.X += vel.X
	}
	if count != 1 {
		t.Fatalf("iterated %d entities, want 1 (only the one with both components)", count)
	}
	if !seen[both] {
		t.Fatalf("expected to visit %v", both)
	}

	gotPos, ok := GetComponent[testPosition](w, both)
	if !ok || gotPos.X != 3 {
		t.Fatalf("position after mutation through the query = %+v, want X=3", gotPos)
	}
}

func TestQueryGetEntityPointwise(t *testing.T) {
	w := newTestWorld(t)
	e := CreateEntity(w)
	if err := AddComponent(w, e, testPosition{X: 4, Y: 5}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	q := NewQuery1[testPosition](w, Shared)
	pos, ok := q.GetEntity(e)
	if !ok || pos.X != 4 || pos.Y != 5 {
		t.Fatalf("GetEntity = %+v, %v; want {4 5}, true", pos, ok)
	}

	other := CreateEntity(w)
	if _, ok := q.GetEntity(other); ok {
		t.Fatalf("GetEntity must fail for an entity missing the component")
	}
}

func TestQueryConflictingAcquisitionFails(t *testing.T) {
	w := newTestWorld(t)
	e := CreateEntity(w)
	if err := AddComponent(w, e, testPosition{}); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}

	writer := NewQuery1[testPosition](w, Exclusive)
	if !writer.materialize(&execContext{world: w}) {
		t.Fatalf("writer materialize should succeed")
	}
	defer writer.release()

	reader := NewQuery1[testPosition](w, Shared)
	if reader.materialize(&execContext{world: w}) {
		t.Fatalf("a shared read must fail while an exclusive query holds the same type")
	}
}
