package foundry

import (
	"sort"
	"sync"

	"github.com/TheBitDrifter/mask"
)

// Mutability is the access a system (or query item) declares for a
// single type-id: either it only reads the data, or it needs to mutate
// it.
type Mutability uint8

const (
	Shared Mutability = iota
	Exclusive
)

// dominates reports whether m should win over other when the same
// type-id is requested twice within one access map (exclusive always
// wins over shared).
func (m Mutability) dominates(other Mutability) bool {
	return m == Exclusive && other == Shared
}

// AccessMap is the per-type access a system (or a query's item list)
// declares before it ever runs. A system that needs global-exclusive
// access sets Global instead of populating Types.
type AccessMap struct {
	Types  map[TypeID]Mutability
	Global bool
}

func NewAccessMap() *AccessMap {
	return &AccessMap{Types: make(map[TypeID]Mutability, 4)}
}

// Require merges a declared (type, mutability) pair into the map;
// exclusive dominates shared for the same type, matching §4.3's "any
// mutable usage dominates a shared usage of the same type".
func (a *AccessMap) Require(id TypeID, mut Mutability) {
	if existing, ok := a.Types[id]; ok {
		if mut.dominates(existing) {
			a.Types[id] = mut
		}
		return
	}
	a.Types[id] = mut
}

func (a *AccessMap) RequireGlobal() {
	a.Global = true
}

// sortedEntries returns the access map's (type, mutability) pairs sorted
// by type-id, establishing the deterministic acquisition order required
// by §4.5 to avoid livelock between overlapping composite requests.
func (a *AccessMap) sortedEntries() []struct {
	Type TypeID
	Mut  Mutability
} {
	out := make([]struct {
		Type TypeID
		Mut  Mutability
	}, 0, len(a.Types))
	for t, m := range a.Types {
		out = append(out, struct {
			Type TypeID
			Mut  Mutability
		}{t, m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

type lockMode uint8

const (
	modePerType lockMode = iota
	modeGlobalExclusive
)

// typeRWLock coarsely arbitrates concurrent per-type-id data access
// without touching the underlying bytes. It never blocks: every request
// either succeeds immediately or fails immediately. Nothing retries a
// failed request; the scheduler orders conflicting systems ahead of time
// and treats a failure at materialization as a bug (see runNode).
type typeRWLock struct {
	mu       sync.Mutex
	mode     lockMode
	readers  [MaxComponentTypes]int32
	writers  [MaxComponentTypes]bool
	occupied mask.Mask256
}

func newTypeRWLock() *typeRWLock {
	return &typeRWLock{mode: modePerType}
}

func (l *typeRWLock) tryReadLocked(id TypeID) bool {
	if l.mode != modePerType || l.writers[id] {
		return false
	}
	l.readers[id]++
	l.occupied.Mark(uint32(id))
	return true
}

func (l *typeRWLock) tryWriteLocked(id TypeID) bool {
	if l.mode != modePerType || l.writers[id] || l.readers[id] > 0 {
		return false
	}
	l.writers[id] = true
	l.occupied.Mark(uint32(id))
	return true
}

func (l *typeRWLock) tryGlobalLocked() bool {
	if l.mode != modePerType || !l.occupied.IsEmpty() {
		return false
	}
	l.mode = modeGlobalExclusive
	return true
}

func (l *typeRWLock) releaseReadLocked(id TypeID) {
	l.readers[id]--
	if l.readers[id] <= 0 {
		l.readers[id] = 0
		l.occupied.Unmark(uint32(id))
	}
}

func (l *typeRWLock) releaseWriteLocked(id TypeID) {
	l.writers[id] = false
	l.occupied.Unmark(uint32(id))
}

func (l *typeRWLock) releaseGlobalLocked() {
	l.mode = modePerType
}

// Guard tracks exactly what a single composite acquisition holds so
// Release gives all of it back, and nothing else.
type Guard struct {
	lock    *typeRWLock
	reads   []TypeID
	writes  []TypeID
	isGlobal bool
	released bool
}

// TryAcquire attempts to acquire every guard named by am in one
// atomic-from-outside step, in type-id-sorted order. On the first
// failure it releases everything already acquired and returns (nil,
// false) without waiting. A query's materialize passes that failure up
// as false, and the scheduler's runNode turns it into a panic.
func (l *typeRWLock) TryAcquire(am *AccessMap) (*Guard, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if am.Global {
		if !l.tryGlobalLocked() {
			return nil, false
		}
		return &Guard{lock: l, isGlobal: true}, true
	}

	entries := am.sortedEntries()
	g := &Guard{lock: l}
	for _, e := range entries {
		var ok bool
		if e.Mut == Exclusive {
			ok = l.tryWriteLocked(e.Type)
		} else {
			ok = l.tryReadLocked(e.Type)
		}
		if !ok {
			g.releaseAllLocked()
			return nil, false
		}
		if e.Mut == Exclusive {
			g.writes = append(g.writes, e.Type)
		} else {
			g.reads = append(g.reads, e.Type)
		}
	}
	return g, true
}

// releaseAllLocked gives back everything g holds; caller must already
// hold g.lock.mu.
func (g *Guard) releaseAllLocked() {
	for _, t := range g.reads {
		g.lock.releaseReadLocked(t)
	}
	for _, t := range g.writes {
		g.lock.releaseWriteLocked(t)
	}
	if g.isGlobal {
		g.lock.releaseGlobalLocked()
	}
	g.reads, g.writes, g.isGlobal = nil, nil, false
}

// Release returns every guard g holds. Safe to call once; a second call
// is a no-op since a double-release would otherwise under-count another
// caller's legitimate hold.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.lock.mu.Lock()
	g.releaseAllLocked()
	g.lock.mu.Unlock()
	g.released = true
}
