package bridge

// Script is the lifecycle contract a guest script implements. The host
// calls Init exactly once per module instance, after setting an initial
// current entity, and Update once per simulation tick. dt is the elapsed
// time in seconds since the previous tick, host-computed and not
// validated here: numeric policy belongs to each script.
type Script interface {
	Init(env *Env)
	Update(env *Env, dt float32)
}

// Env carries the current-entity cell and the cached handle for one guest
// instance. The host (or the WASM export layer acting for it) sets the
// current entity before each lifecycle call; scripts only ever read it
// through [Env.Self].
type Env struct {
	table    *Table
	current  EntityID
	cached   *EntityHandle
	cachedID EntityID
}

// NewEnv builds an Env over a validated host table.
func NewEnv(table *Table) (*Env, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Env{table: table}, nil
}

// SetCurrentEntity unconditionally overwrites the current entity id.
// Any value is accepted, including ids with no live host entity; an
// incorrect id surfaces only when a field is accessed, as whatever the
// host functions do with an unknown id.
func (e *Env) SetCurrentEntity(id EntityID) { e.current = id }

// CurrentEntity returns the id the host designated last, or 0 if the
// host never set one.
func (e *Env) CurrentEntity() EntityID { return e.current }

// Self returns the handle for the current entity. The handle is memoized
// and rebuilt only when the current id has changed since it was built, so
// repeated calls within one entity context return the same pointer. The
// id check runs on every call: if the host switches entities mid-call,
// the very next Self picks it up.
func (e *Env) Self() *EntityHandle {
	if e.cached == nil || e.cachedID != e.current {
		e.cached = e.table.Bind(e.current)
		e.cachedID = e.current
	}
	return e.cached
}
