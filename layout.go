package foundry

import "sort"

// archetypeLayout describes how one archetype's chunks are organized:
// how many entities fit per chunk, and at what byte offset each
// component's array (and the Entity array) begins within a chunk.
//
// Component alignment is not left to chance: each array's start offset
// is rounded up to the component type's natural alignment, so arrays
// that follow an odd-sized predecessor do not begin on an unaligned
// byte. This can make a chunk's true footprint a few bytes larger than
// the nominal budget; that is the accepted cost of closing the
// alignment gap rather than leaving it unproven.
type archetypeLayout struct {
	typeIDs          []TypeID
	descs            []typeDescriptor
	chunkCapacity    int     // N: entities per chunk
	entityArrayBytes uintptr // N * sizeof(Entity), aligned start of field 0
	fieldOffsets     []uintptr
	chunkBytes       uintptr // total bytes a chunk buffer must hold
}

func sortedTypeIDs(ids []TypeID) []TypeID {
	out := append([]TypeID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// buildLayout computes a chunk layout for the given (already deduplicated)
// set of component types. chunkBudget is the nominal chunk size in bytes
// (spec: 12288).
func buildLayout(reg *typeRegistry, typeIDs []TypeID, chunkBudget int) *archetypeLayout {
	sorted := sortedTypeIDs(typeIDs)
	descs := make([]typeDescriptor, len(sorted))
	for i, id := range sorted {
		descs[i] = reg.byTypeID(id)
	}

	var entitySize uintptr = entitySizeBytes
	recordSize := entitySize
	for _, d := range descs {
		recordSize += d.size
	}
	n := 1
	if recordSize > 0 {
		n = int(uintptr(chunkBudget) / recordSize)
		if n < 1 {
			n = 1
		}
	}

	entityArrayBytes := alignUp(uintptr(n)*entitySize, entityAlign)
	offset := entityArrayBytes
	fieldOffsets := make([]uintptr, len(descs))
	for i, d := range descs {
		offset = alignUp(offset, d.align)
		fieldOffsets[i] = offset
		offset += uintptr(n) * d.size
	}

	return &archetypeLayout{
		typeIDs:          sorted,
		descs:            descs,
		chunkCapacity:    n,
		entityArrayBytes: entityArrayBytes,
		fieldOffsets:     fieldOffsets,
		chunkBytes:       offset,
	}
}

func (l *archetypeLayout) indexOf(id TypeID) (int, bool) {
	// typeIDs is small (a handful of components per archetype) and
	// sorted; linear scan beats a map for this size.
	for i, t := range l.typeIDs {
		if t == id {
			return i, true
		}
	}
	return -1, false
}

func (l *archetypeLayout) has(id TypeID) bool {
	_, ok := l.indexOf(id)
	return ok
}

// sameSet reports whether l covers exactly the given set of type ids.
func (l *archetypeLayout) sameSet(ids []TypeID) bool {
	if len(ids) != len(l.typeIDs) {
		return false
	}
	sorted := sortedTypeIDs(ids)
	for i, id := range sorted {
		if l.typeIDs[i] != id {
			return false
		}
	}
	return true
}

// plusOne returns the sorted type-id set of l with id added (id must not
// already be present).
func (l *archetypeLayout) plusOne(id TypeID) []TypeID {
	out := make([]TypeID, 0, len(l.typeIDs)+1)
	out = append(out, l.typeIDs...)
	out = append(out, id)
	return out
}

// minusOne returns the sorted type-id set of l with id removed (id must
// be present).
func (l *archetypeLayout) minusOne(id TypeID) []TypeID {
	out := make([]TypeID, 0, len(l.typeIDs)-1)
	for _, t := range l.typeIDs {
		if t != id {
			out = append(out, t)
		}
	}
	return out
}
