package foundry

import "fmt"

// UnknownEntityError is returned by DestroyEntity, AddComponent and
// RemoveComponent when given a stale or never-valid handle. The
// bool-returning lookups (GetComponent, HasComponent, Contains) report
// the same case as false. Neither path panics.
type UnknownEntityError struct {
	Entity Entity
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity: %v", e.Entity)
}

// UnknownComponentError is returned by RemoveComponent when the entity's
// archetype does not carry the requested component type. GetComponent
// reports the same case as false.
type UnknownComponentError struct {
	TypeName string
	Entity   Entity
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("entity %v has no component %s", e.Entity, e.TypeName)
}

// ComponentAlreadyPresentError is returned by AddComponent when the
// entity already carries that component type. The entity is left
// unchanged and the passed value is not stored; the error does not
// carry the value.
type ComponentAlreadyPresentError struct {
	TypeName string
	Entity   Entity
}

func (e ComponentAlreadyPresentError) Error() string {
	return fmt.Sprintf("entity %v already has component %s", e.Entity, e.TypeName)
}

// CycleInOrderingError is returned by Build when a schedule's explicit
// edges combined with inferred data edges form a cycle.
type CycleInOrderingError struct {
	Schedule string
	Cycle    []string
}

func (e CycleInOrderingError) Error() string {
	return fmt.Sprintf("schedule %s: ordering cycle among systems %v", e.Schedule, e.Cycle)
}

var errTooManyComponentTypes = fmt.Errorf("foundry: more than %d component types registered", MaxComponentTypes)

// archetypeMismatch panics: this is the ArchetypeMismatch error kind. It
// is only ever reached from code paths the archetype registry and query
// planner have already proven correct, so a mismatch here is a bug in
// foundry itself, not a caller error.
type archetypeMismatchError struct {
	operation string
	detail    string
}

func (e archetypeMismatchError) Error() string {
	return fmt.Sprintf("foundry: archetype mismatch during %s: %s", e.operation, e.detail)
}

// guardUnavailableError panics: this is the GuardUnavailable error kind.
// The scheduler proves acquirability by DAG construction before a system
// is ever dispatched, so reaching this is a bug — the RW lock's guarantee
// was violated, or a system was run outside the scheduler's DAG.
type guardUnavailableError struct {
	system string
	typ    string
}

func (e guardUnavailableError) Error() string {
	return fmt.Sprintf("foundry: system %q could not acquire guard for %s at materialization", e.system, e.typ)
}
