package foundry

import "reflect"

// planArchetypes picks the component type whose "archetypes containing
// it" set is smallest, then keeps only the candidates from that set
// which also carry every other requested type. An empty result is a
// valid, empty plan — never an error.
func planArchetypes(reg *archetypeRegistry, ids []TypeID) []archetypeID {
	if len(ids) == 0 {
		all := reg.all()
		out := make([]archetypeID, len(all))
		for i, a := range all {
			out[i] = a.id
		}
		return out
	}

	rarest := ids[0]
	rarestSet := reg.idsContaining(rarest)
	for _, id := range ids[1:] {
		s := reg.idsContaining(id)
		if s.len() < rarestSet.len() {
			rarest, rarestSet = id, s
		}
	}

	out := make([]archetypeID, 0, rarestSet.len())
	for _, candidate := range rarestSet.ids {
		a := reg.byIDOf(candidate)
		matches := true
		for _, id := range ids {
			if !a.layout.has(id) {
				matches = false
				break
			}
		}
		if matches {
			out = append(out, candidate)
		}
	}
	return out
}

// queryCursor is the shared "walk every slot of every planned archetype"
// iteration state, embedded by each QueryN so the arity-specific files
// only have to implement Get's typed field access.
type queryCursor struct {
	reg     *archetypeRegistry
	plan    []archetypeID
	archIdx int
	slot    int
	cur     *archetype
	started bool
}

func newQueryCursor(reg *archetypeRegistry, plan []archetypeID) queryCursor {
	return queryCursor{reg: reg, plan: plan, slot: -1}
}

// next advances to the next live slot, skipping over exhausted or empty
// archetypes in the plan. Returns false once every planned archetype has
// been walked.
func (c *queryCursor) next() bool {
	for {
		if c.cur == nil {
			if c.archIdx >= len(c.plan) {
				return false
			}
			c.cur = c.reg.byIDOf(c.plan[c.archIdx])
			c.slot = -1
		}
		c.slot++
		if c.slot < c.cur.count {
			return true
		}
		c.archIdx++
		c.cur = nil
	}
}

func (c *queryCursor) reset() {
	c.archIdx, c.slot, c.cur, c.started = 0, -1, nil, false
}

func (c *queryCursor) entity() Entity {
	return c.cur.entityAt(c.slot)
}

// locate finds the (archetype, slot) for a single entity, used by the
// query's pointwise Get(entity) access.
func locate(w *World, e Entity) (*archetype, int, bool) {
	loc, ok := w.entities.locationOf(e)
	if !ok {
		return nil, 0, false
	}
	return w.archetypes.byIDOf(loc.archetype), loc.slot, true
}

func typeIDFor(reg *typeRegistry, t reflect.Type) TypeID {
	return reg.descriptorFor(t).id
}
