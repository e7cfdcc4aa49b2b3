package foundry

// Param is one declared piece of a system's input: a shared or exclusive
// resource, a query, a system-local value, or the exclusive-world handle.
// A system exposes its Params() once at registration so the order graph
// can compute data edges before anything runs; the scheduler then
// materializes and releases them once per invocation.
type Param interface {
	declareAccess(am *AccessMap)
	materialize(ctx *execContext) bool
	release()
}

// execContext is what a single system invocation threads through to its
// Params' materialize: the world to acquire guards against, and the
// invoking system's own local-state store.
type execContext struct {
	world *World
	local *localStore
}

// System is user code: Params lists what it needs (built once, at
// construction, typically by embedding Res/ResMut/Query/Local/Exclusive
// fields and returning them), Run does the work using those same fields'
// Get accessors.
type System interface {
	Params() []Param
	Run()
}

// collectAccess merges every Param's declared access into one AccessMap:
// a system's total access is exactly the union of its parameters'
// access, nothing implicit added.
func collectAccess(sys System) *AccessMap {
	am := NewAccessMap()
	for _, p := range sys.Params() {
		p.declareAccess(am)
	}
	return am
}

// materializeAll attempts to materialize every Param of sys against ctx.
// All-or-nothing: on the first failure, every Param already materialized
// this call is released before returning false, so a system never sees a
// partially-filled parameter set.
func materializeAll(sys System, ctx *execContext) bool {
	params := sys.Params()
	for i, p := range params {
		if !p.materialize(ctx) {
			for j := 0; j < i; j++ {
				params[j].release()
			}
			return false
		}
	}
	return true
}

func releaseAll(sys System) {
	for _, p := range sys.Params() {
		p.release()
	}
}

// Res is shared (read-only) access to the singleton resource of type R.
type Res[R any] struct {
	id  TypeID
	ptr *R
}

func NewRes[R any](w *World) *Res[R] {
	return &Res[R]{id: resourceTypeID[R](w)}
}

func (r *Res[R]) declareAccess(am *AccessMap) { am.Require(r.id, Shared) }

func (r *Res[R]) materialize(ctx *execContext) bool {
	ptr := resourcePtr[R](ctx.world)
	if ptr == nil {
		return false
	}
	r.ptr = ptr
	return true
}

func (r *Res[R]) release() { r.ptr = nil }

func (r *Res[R]) Get() *R { return r.ptr }

// ResMut is exclusive (read-write) access to the singleton resource of
// type R.
type ResMut[R any] struct {
	id  TypeID
	ptr *R
}

func NewResMut[R any](w *World) *ResMut[R] {
	return &ResMut[R]{id: resourceTypeID[R](w)}
}

func (r *ResMut[R]) declareAccess(am *AccessMap) { am.Require(r.id, Exclusive) }

func (r *ResMut[R]) materialize(ctx *execContext) bool {
	ptr := resourcePtr[R](ctx.world)
	if ptr == nil {
		return false
	}
	r.ptr = ptr
	return true
}

func (r *ResMut[R]) release() { r.ptr = nil }

func (r *ResMut[R]) Get() *R { return r.ptr }

// Local is state scoped to one system instance: lazily default-constructed
// on first materialize, persisting across invocations of that system.
// It never touches the world's RW lock, so declareAccess is a no-op.
type Local[S any] struct {
	ptr *S
}

func NewLocal[S any]() *Local[S] { return &Local[S]{} }

func (l *Local[S]) declareAccess(am *AccessMap) {}

func (l *Local[S]) materialize(ctx *execContext) bool {
	l.ptr = localPtr[S](ctx.local)
	return true
}

func (l *Local[S]) release() {}

func (l *Local[S]) Get() *S { return l.ptr }

// Exclusive is the escape hatch: a system taking this parameter holds the
// world's global-exclusive lock for the duration of its Run, so it can
// structurally mutate the world (add/remove entities, register new
// component types) without racing any other system. No other system may
// be scheduled concurrently with one that holds Exclusive.
type Exclusive struct {
	w     *World
	guard *Guard
}

func NewExclusive(w *World) *Exclusive { return &Exclusive{w: w} }

func (e *Exclusive) declareAccess(am *AccessMap) { am.RequireGlobal() }

func (e *Exclusive) materialize(ctx *execContext) bool {
	am := NewAccessMap()
	am.RequireGlobal()
	g, ok := ctx.world.dataLock.TryAcquire(am)
	if !ok {
		return false
	}
	e.guard = g
	return true
}

func (e *Exclusive) release() {
	if e.guard != nil {
		e.guard.Release()
		e.guard = nil
	}
}

func (e *Exclusive) World() *World { return e.w }
