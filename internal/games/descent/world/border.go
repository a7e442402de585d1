package world

// Edge names a border trigger strip.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
)

// String returns the strip name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Outcome is what a border crossing did to an entity.
type Outcome uint8

const (
	OutcomeNone    Outcome = iota
	OutcomeWrapped         // Player moved to the opposite side
	OutcomeDied            // Player fell off the bottom
	OutcomeStruck          // Enemy crossed for the first time and survives
	OutcomeDespawn         // Enemy crossed again and must be removed
)

// Border is the rectangle entities may occupy. Anything whose position
// leaves it is inside one of the trigger strips.
type Border struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// EdgeAt returns the strip containing pos. The bottom strip wins over the
// side strips at the corners.
func (b Border) EdgeAt(pos Vec2) Edge {
	switch {
	case pos.Y > b.MaxY:
		return EdgeBottom
	case pos.X < b.MinX:
		return EdgeLeft
	case pos.X > b.MaxX:
		return EdgeRight
	default:
		return EdgeNone
	}
}

// Wrap returns pos moved to the side opposite the crossed edge and clamped
// into the rectangle.
func (b Border) Wrap(pos Vec2, edge Edge) Vec2 {
	switch edge {
	case EdgeLeft:
		pos.X = b.MaxX
	case EdgeRight:
		pos.X = b.MinX
	}
	pos.X = clampF(pos.X, b.MinX, b.MaxX)
	pos.Y = clampF(pos.Y, b.MinY, b.MaxY)
	return pos
}

// Resolve applies the border policy to e. Crossings are edge-triggered: an
// entity that stays inside a strip triggers it once, on entry.
//
// Players wrap horizontally and die at the bottom. Enemies get one free
// crossing of any strip; the next one despawns them.
func (b Border) Resolve(e *Entity) Outcome {
	edge := b.EdgeAt(e.Pos)
	prev := e.Edge
	e.Edge = edge
	if edge == EdgeNone || edge == prev {
		return OutcomeNone
	}

	switch e.Kind {
	case KindPlayer:
		if edge == EdgeBottom {
			return OutcomeDied
		}
		e.Pos = b.Wrap(e.Pos, edge)
		e.Edge = EdgeNone
		return OutcomeWrapped
	case KindEnemy:
		if e.Enemy == nil {
			return OutcomeNone
		}
		if e.Enemy.BorderStrike {
			return OutcomeDespawn
		}
		e.Enemy.BorderStrike = true
		return OutcomeStruck
	}
	return OutcomeNone
}
