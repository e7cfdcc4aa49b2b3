package foundry

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/kamstrup/intmap"
)

// archetypeSet is a small append-only set of archetype ids: a slice for
// stable-order iteration (query planning walks it to intersect against
// other components) paired with an intmap for O(1) membership tests,
// grounded on plus3-ooftn's use of kamstrup/intmap for its own per-entity
// index rather than a generic map[uint32]struct{}.
type archetypeSet struct {
	ids    []archetypeID
	lookup *intmap.Map[uint32, struct{}]
}

func newArchetypeSet() *archetypeSet {
	return &archetypeSet{lookup: intmap.New[uint32, struct{}](8)}
}

func (s *archetypeSet) add(id archetypeID) {
	if _, ok := s.lookup.Get(uint32(id)); ok {
		return
	}
	s.lookup.Put(uint32(id), struct{}{})
	s.ids = append(s.ids, id)
}

func (s *archetypeSet) contains(id archetypeID) bool {
	_, ok := s.lookup.Get(uint32(id))
	return ok
}

func (s *archetypeSet) len() int { return len(s.ids) }

// archetypeRegistry owns every archetype for one world, indexed by id, by
// component-type set (for get_or_create), and per-component-type (for
// query planning's "archetypes containing this component" lookup).
type archetypeRegistry struct {
	byID     []*archetype
	byMask   map[mask.Mask256]archetypeID
	byType   []*archetypeSet // indexed by TypeID
	registry *typeRegistry
	chunkBudget int
}

func newArchetypeRegistry(reg *typeRegistry, chunkBudget int) *archetypeRegistry {
	return &archetypeRegistry{
		byMask:      make(map[mask.Mask256]archetypeID),
		byType:      make([]*archetypeSet, 0, MaxComponentTypes),
		registry:    reg,
		chunkBudget: chunkBudget,
	}
}

func maskOf(ids []TypeID) mask.Mask256 {
	var m mask.Mask256
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}

// getOrCreate returns the archetype for the exact (unordered) set of
// component types, creating it if this is the first time the set has
// been requested.
func (r *archetypeRegistry) getOrCreate(typeIDs []TypeID) (*archetype, bool) {
	m := maskOf(typeIDs)
	if id, ok := r.byMask[m]; ok {
		return r.byID[id], false
	}
	layout := buildLayout(r.registry, typeIDs, r.chunkBudget)
	id := archetypeID(len(r.byID))
	a := newArchetypeStore(id, layout)
	r.byID = append(r.byID, a)
	r.byMask[m] = id

	for _, tid := range layout.typeIDs {
		r.ensureTypeSlot(tid)
		r.byType[tid].add(id)
	}
	return a, true
}

func (r *archetypeRegistry) ensureTypeSlot(id TypeID) {
	for TypeID(len(r.byType)) <= id {
		r.byType = append(r.byType, newArchetypeSet())
	}
}

func (r *archetypeRegistry) byIDOf(id archetypeID) *archetype {
	return r.byID[id]
}

// byIDsPair returns two distinct archetypes; callers must never pass
// equal ids (use byIDOf for that case).
func (r *archetypeRegistry) byIDsPair(a, b archetypeID) (*archetype, *archetype) {
	if a == b {
		panic(bark.AddTrace(archetypeMismatchError{operation: "byIDsPair", detail: "ids must differ"}))
	}
	return r.byID[a], r.byID[b]
}

// idsContaining returns the set of archetype ids that carry component
// type id. For a type no archetype carries yet it returns a fresh,
// empty (non-nil) set, so callers can treat "no archetype has this
// component yet" and "empty after intersection" identically.
func (r *archetypeRegistry) idsContaining(id TypeID) *archetypeSet {
	if int(id) >= len(r.byType) {
		return newArchetypeSet()
	}
	return r.byType[id]
}

func (r *archetypeRegistry) all() []*archetype {
	return r.byID
}
