package foundry

import "testing"

type CounterA int
type CounterB int

type incASystem struct {
	r  *ResMut[CounterA]
	by int
}

func newIncASystem(w *World, by int) *incASystem {
	return &incASystem{r: NewResMut[CounterA](w), by: by}
}
func (s *incASystem) Params() []Param { return []Param{s.r} }
func (s *incASystem) Run()            { *s.r.Get() += CounterA(s.by) }

// incASystem2 is a distinct system type that also writes CounterA, so it
// and incASystem form a genuine registration-order conflict rather than
// two instances of the same system type (the order graph rejects
// registering one system type twice in a schedule, see ordergraph_test.go).
type incASystem2 struct {
	r  *ResMut[CounterA]
	by int
}

func newIncASystem2(w *World, by int) *incASystem2 {
	return &incASystem2{r: NewResMut[CounterA](w), by: by}
}
func (s *incASystem2) Params() []Param { return []Param{s.r} }
func (s *incASystem2) Run()            { *s.r.Get() += CounterA(s.by) }

type incBSystem struct {
	r  *ResMut[CounterB]
	by int
}

func newIncBSystem(w *World, by int) *incBSystem {
	return &incBSystem{r: NewResMut[CounterB](w), by: by}
}
func (s *incBSystem) Params() []Param { return []Param{s.r} }
func (s *incBSystem) Run()            { *s.r.Get() += CounterB(s.by) }

func TestSchedulerRunsIndependentSystemsToCompletion(t *testing.T) {
	b := Factory.NewWorldBuilder()
	w := b.World()
	InsertResource(w, CounterA(0))
	InsertResource(w, CounterB(0))

	b.AddSystem(Update, newIncASystem(w, 1))
	b.AddSystem(Update, newIncASystem2(w, 2)) // distinct type, same resource: must serialize, not race
	b.AddSystem(Update, newIncBSystem(w, 10))

	world, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := world.ExecuteIteration(Update); err != nil {
		t.Fatalf("ExecuteIteration: %v", err)
	}

	a := resourcePtr[CounterA](world)
	if *a != 3 {
		t.Fatalf("CounterA = %d, want 3 (1+2, serialized by the conflict edge)", *a)
	}
	bb := resourcePtr[CounterB](world)
	if *bb != 10 {
		t.Fatalf("CounterB = %d, want 10", *bb)
	}
}

type panicSystem struct{}

func (panicSystem) Params() []Param { return nil }
func (panicSystem) Run()            { panic("boom") }

func TestSchedulerRecoversSystemPanic(t *testing.T) {
	b := Factory.NewWorldBuilder()
	b.AddSystem(Update, panicSystem{})
	world, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	err = world.ExecuteIteration(Update)
	if err == nil {
		t.Fatalf("expected ExecuteIteration to surface the panic as an error")
	}
}

func TestSchedulerEmptyScheduleIsANoOp(t *testing.T) {
	b := Factory.NewWorldBuilder()
	world, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := world.ExecuteIteration(Start); err != nil {
		t.Fatalf("an empty schedule must succeed trivially, got %v", err)
	}
}
