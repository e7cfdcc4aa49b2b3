// Profiling:
// go build ./cmd/profile
// go tool pprof -http=":8000" -nodefraction=0.001 ./profile mem.pprof
package main

import (
	"github.com/grovegame/foundry"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type moveSystem struct {
	q *foundry.Query2[position, velocity]
}

func newMoveSystem(w *foundry.World) *moveSystem {
	return &moveSystem{q: foundry.NewQuery2[position, velocity](w, foundry.Exclusive, foundry.Shared)}
}

func (s *moveSystem) Params() []foundry.Param { return []foundry.Param{s.q} }

func (s *moveSystem) Run() {
	for s.q.Next() {
		pos, vel := s.q.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}
}

func main() {
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(50, 10000, 1000)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		builder := foundry.Factory.NewWorldBuilder()
		w := builder.World()
		builder.AddSystem(foundry.Update, newMoveSystem(w))
		world, err := builder.Build()
		if err != nil {
			panic(err)
		}

		for e := 0; e < numEntities; e++ {
			ent := foundry.CreateEntity(world)
			_ = foundry.AddComponent(world, ent, position{})
			_ = foundry.AddComponent(world, ent, velocity{X: 1, Y: 1})
		}

		for range iters {
			if err := world.ExecuteIteration(foundry.Update); err != nil {
				panic(err)
			}
		}
	}
}
