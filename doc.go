/*
Package foundry is an archetype-based Entity-Component-System runtime core
for games and simulations. Entities that carry the same set of component
types are stored together in one archetype's chunked, structure-of-arrays
memory, so iterating a query over many entities stays cache-friendly.

Core Concepts:

  - Entity: an opaque, generational handle to a row of component data.
  - Component: a plain Go value type stored inside its archetype's chunks.
  - Archetype: the set of entities sharing exactly one component-type set.
  - Query: a typed view (Query1..Query8) over every archetype that carries
    a requested set of component types.
  - System: user code that declares its Params (queries, resources,
    system-local state, or exclusive world access) once and is then run
    by the scheduler once per schedule iteration.

Basic Usage:

	builder := foundry.Factory.NewWorldBuilder()
	w := builder.World()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	e := foundry.CreateEntity(w)
	foundry.AddComponent(w, e, Position{})
	foundry.AddComponent(w, e, Velocity{X: 1})

	type MovementSystem struct {
		Moving *foundry.Query2[Position, Velocity]
	}

	func NewMovementSystem(w *foundry.World) *MovementSystem {
		return &MovementSystem{
			Moving: foundry.NewQuery2[Position, Velocity](w, foundry.Exclusive, foundry.Shared),
		}
	}

	func (s *MovementSystem) Params() []foundry.Param { return []foundry.Param{s.Moving} }

	func (s *MovementSystem) Run() {
		for s.Moving.Next() {
			pos, vel := s.Moving.Get()
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}

	builder.AddSystem(foundry.Update, NewMovementSystem(w))
	world, err := builder.Build()
	if err != nil {
		panic(err)
	}
	if err := world.ExecuteIteration(foundry.Update); err != nil {
		panic(err)
	}

foundry is a standalone library; it makes no assumptions about rendering,
input, or any other engine layer above it.
*/
package foundry
