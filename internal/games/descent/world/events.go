package world

// Signal is an ordered observer list for one event type. Handlers run
// synchronously on the tick path in subscription order.
type Signal[T any] struct {
	handlers []func(T)
}

// Subscribe adds a handler.
func (s *Signal[T]) Subscribe(fn func(T)) {
	s.handlers = append(s.handlers, fn)
}

// Emit calls every handler with ev.
func (s *Signal[T]) Emit(ev T) {
	for _, fn := range s.handlers {
		fn(ev)
	}
}

// Len returns the number of subscribed handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// LevelChanged is emitted once per level transition.
type LevelChanged struct {
	Level int
	Score int
}

// ThemeChanged is emitted when the deferred background swap for a level runs.
type ThemeChanged struct {
	Theme int
}

// StealthChanged is emitted when the player's stealth flag flips.
type StealthChanged struct {
	Hidden bool
}

// PlayerDamaged is emitted after the player loses HP.
type PlayerDamaged struct {
	Amount int
	HP     int
	Source Kind
}

// Cause says how a run ended.
type Cause string

const (
	CauseNone   Cause = ""
	CauseFell   Cause = "fell"
	CauseKilled Cause = "killed"
)

// PlayerDied is emitted once when the player dies.
type PlayerDied struct {
	Cause Cause
}

// Events groups the world's signals.
type Events struct {
	LevelChanged   Signal[LevelChanged]
	ThemeChanged   Signal[ThemeChanged]
	StealthChanged Signal[StealthChanged]
	PlayerDamaged  Signal[PlayerDamaged]
	PlayerDied     Signal[PlayerDied]
	GameOver       Signal[PlayerDied]
}
