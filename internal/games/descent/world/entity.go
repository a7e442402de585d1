package world

// Kind tags what an entity is. Behavior dispatches on it instead of on types.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindPlatform
	KindStealthZone
	KindVolcano
	KindKillzone
	kindCount
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlatform:
		return "platform"
	case KindStealthZone:
		return "stealth-zone"
	case KindVolcano:
		return "volcano"
	case KindKillzone:
		return "killzone"
	default:
		return "unknown"
	}
}

// Handle identifies an entity in a Registry. A handle goes stale once its
// entity is despawned, even if the slot is reused. The zero Handle is never
// issued.
type Handle struct {
	index uint32
	gen   uint32
}

// NoHandle is the zero handle.
var NoHandle Handle

// Valid reports whether h was ever issued by a registry.
func (h Handle) Valid() bool { return h.gen != 0 }

// Entity is one simulated object. Kind-specific state hangs off the optional
// Enemy and Volcano pointers.
type Entity struct {
	Handle   Handle
	Kind     Kind
	Pos      Vec2 // Top-left corner
	Size     Vec2
	Anchored bool // Moves with its group while scrolling

	// Last border strip the entity was seen in; crossings are edge-triggered.
	Edge Edge

	Enemy   *EnemyState
	Volcano *VolcanoState
}

// Box returns the entity's bounds.
func (e *Entity) Box() Box {
	return Box{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Center returns the middle of the entity's bounds.
func (e *Entity) Center() Vec2 {
	return e.Box().Center()
}

type slot struct {
	gen    uint32
	alive  bool
	entity Entity
}

// Registry is a generational arena of entities. Iteration order is slot
// order, which keeps every pass over the world deterministic.
type Registry struct {
	slots []*slot
	free  []uint32
	count int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Spawn allocates a new entity and returns it. The pointer stays valid until
// the entity is despawned.
func (r *Registry) Spawn(kind Kind, pos, size Vec2) *Entity {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, &slot{})
	}

	s := r.slots[idx]
	s.gen++
	s.alive = true
	s.entity = Entity{
		Handle: Handle{index: idx, gen: s.gen},
		Kind:   kind,
		Pos:    pos,
		Size:   size,
	}
	r.count++
	return &s.entity
}

// Get returns the live entity for h, or nil when h is stale.
func (r *Registry) Get(h Handle) *Entity {
	if !h.Valid() || int(h.index) >= len(r.slots) {
		return nil
	}
	s := r.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil
	}
	return &s.entity
}

// Alive reports whether h still refers to a live entity.
func (r *Registry) Alive(h Handle) bool {
	return r.Get(h) != nil
}

// Despawn removes the entity. It returns false for stale handles.
func (r *Registry) Despawn(h Handle) bool {
	if r.Get(h) == nil {
		return false
	}
	s := r.slots[h.index]
	s.alive = false
	s.entity = Entity{}
	r.free = append(r.free, h.index)
	r.count--
	return true
}

// Each calls fn for every live entity of the given kind. Entities despawned
// during the walk are skipped; entities spawned during it are only visited
// when they reuse a freed slot ahead of the cursor.
func (r *Registry) Each(kind Kind, fn func(*Entity)) {
	n := len(r.slots)
	for i := 0; i < n; i++ {
		s := r.slots[i]
		if s.alive && s.entity.Kind == kind {
			fn(&s.entity)
		}
	}
}

// Count returns the number of live entities of a kind.
func (r *Registry) Count(kind Kind) int {
	c := 0
	r.Each(kind, func(*Entity) { c++ })
	return c
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.count
}
