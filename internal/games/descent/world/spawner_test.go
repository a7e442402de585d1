package world

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
)

type fakeInstance struct {
	pos       Vec2
	destroyed bool
}

func (f *fakeInstance) SetPosition(pos Vec2) { f.pos = pos }
func (f *fakeInstance) Destroy()             { f.destroyed = true }

type fakeInstancer struct {
	sizes map[int]int
	made  []*fakeInstance
	picks []int
}

func (f *fakeInstancer) PoolSize(level int) int { return f.sizes[level] }

func (f *fakeInstancer) Instantiate(level, index int, pos Vec2) (Instance, error) {
	if index >= f.sizes[level] {
		return nil, ErrNoTemplate
	}
	inst := &fakeInstance{pos: pos}
	f.made = append(f.made, inst)
	f.picks = append(f.picks, index)
	return inst, nil
}

func (f *fakeInstancer) live() int {
	n := 0
	for _, m := range f.made {
		if !m.destroyed {
			n++
		}
	}
	return n
}

func newTestSpawner(cfg SpawnerConfig, inst Instancer) *Spawner {
	return NewSpawner(cfg, inst, rand.New(rand.NewSource(1)), log.New(io.Discard))
}

func TestSpawnerInitialFill(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 3}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)

	want := int(math.Ceil(24.0/8.0)) + 2
	if s.Len() != want {
		t.Fatalf("Len() = %d after fill, expected %d", s.Len(), want)
	}

	groups := s.Groups()
	if groups[0].Pos.Y != 16 {
		t.Errorf("oldest group at y=%v, expected 16", groups[0].Pos.Y)
	}
	for i := 1; i < len(groups); i++ {
		if d := groups[i-1].Pos.Y - groups[i].Pos.Y; d != 8 {
			t.Errorf("groups %d and %d are %v apart, expected 8", i-1, i, d)
		}
		if groups[i].ID <= groups[i-1].ID {
			t.Errorf("group IDs not ordered by spawn time")
		}
	}
}

func TestSpawnerForcedStartGroup(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 5}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(4)

	if inst.picks[0] != 4 {
		t.Errorf("first group used pool index %d, expected forced 4", inst.picks[0])
	}

	s.SpawnForced(2)
	s.Advance(0.8)
	if last := inst.picks[len(inst.picks)-1]; last != 2 {
		t.Errorf("next spawn used pool index %d, expected forced 2", last)
	}
}

func TestSpawnerGroupBound(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		interval float64
		viewport float64
	}{
		{"slow", 3, 8, 24},
		{"fast", 40, 8, 24},
		{"uneven", 7.5, 5, 23},
		{"interval larger than viewport", 20, 30, 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst := &fakeInstancer{sizes: map[int]int{0: 2}}
			s := newTestSpawner(SpawnerConfig{Speed: tc.speed, Interval: tc.interval, Viewport: tc.viewport}, inst)
			s.Fill(-1)

			limit := int(math.Ceil(tc.viewport/tc.interval)) + 2
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 5000; i++ {
				s.Advance(rng.Float64() * 0.1)
				if s.Len() > limit {
					t.Fatalf("tick %d: %d live groups, limit %d", i, s.Len(), limit)
				}
				if p := s.Progress(); p < 0 || p >= tc.interval {
					t.Fatalf("tick %d: progress %v outside [0, %v)", i, p, tc.interval)
				}
			}
			if inst.live() != s.Len() {
				t.Errorf("%d instances alive, spawner holds %d", inst.live(), s.Len())
			}
			if _, retired := s.Stats(); retired == 0 {
				t.Errorf("no group was ever retired")
			}
		})
	}
}

func TestSpawnerLargeStepStaysNormalized(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 1}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)

	// 10 seconds at 10 cells/s is more than twelve intervals in one call.
	s.Advance(10)

	if p := s.Progress(); p < 0 || p >= 8 {
		t.Errorf("progress %v outside [0, 8)", p)
	}
	if s.Len() > s.Capacity() {
		t.Errorf("Len() = %d, capacity %d", s.Len(), s.Capacity())
	}
	spawned, retired := s.Stats()
	if spawned-retired != s.Len() {
		t.Errorf("spawned %d - retired %d != live %d", spawned, retired, s.Len())
	}
}

func TestSpawnerProgressKeepsRemainder(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 1}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)
	before := len(inst.made)

	s.Advance(0.5) // 5 cells
	if len(inst.made) != before {
		t.Fatalf("spawned before reaching the interval")
	}
	s.Advance(0.5) // 10 cells total
	if len(inst.made) != before+1 {
		t.Fatalf("expected one spawn after crossing the interval")
	}
	if p := s.Progress(); math.Abs(p-2) > 1e-9 {
		t.Errorf("Progress() = %v, expected remainder 2", p)
	}
}

func TestSpawnerEmptyPoolIsNoop(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 0}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)
	s.Advance(5)

	if s.Len() != 0 {
		t.Errorf("Len() = %d with an empty pool, expected 0", s.Len())
	}
	if p := s.Progress(); p < 0 || p >= 8 {
		t.Errorf("progress %v outside [0, 8)", p)
	}
}

func TestSpawnerAbsentEntryIsNoop(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 2}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)
	n := s.Len()

	s.SpawnForced(9)
	s.Advance(0.8)

	if s.Len() != n-1 {
		t.Errorf("Len() = %d, expected %d (retired one, spawn skipped)", s.Len(), n-1)
	}
}

func TestSpawnerStop(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 1}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)
	before := s.Groups()

	s.Stop()
	s.Advance(3)

	after := s.Groups()
	for i := range before {
		if before[i].Pos != after[i].Pos {
			t.Errorf("group %d moved after Stop", i)
		}
	}
}

func TestSpawnerUsesLevelPool(t *testing.T) {
	inst := &fakeInstancer{sizes: map[int]int{0: 1, 1: 1}}
	s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
	s.Fill(-1)
	s.SetLevel(1)
	s.Advance(0.8)

	groups := s.Groups()
	if got := groups[len(groups)-1].Level; got != 1 {
		t.Errorf("newest group level = %d, expected 1", got)
	}
}

func TestSpawnerSetSpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"faster", 20, 20},
		{"zero", 0, 0},
		{"negative clamps to zero", -5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst := &fakeInstancer{sizes: map[int]int{0: 1}}
			s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: 8, Viewport: 24}, inst)
			s.Fill(-1)
			s.SetSpeed(tc.speed)
			if s.Speed() != tc.want {
				t.Fatalf("Speed() = %v, expected %v", s.Speed(), tc.want)
			}

			head := s.Groups()[0].Pos.Y
			s.Advance(0.1)
			if got := s.Groups()[0].Pos.Y - head; math.Abs(got-tc.want*0.1) > 1e-9 {
				t.Errorf("head moved %v, expected %v", got, tc.want*0.1)
			}
		})
	}
}

func TestSpawnerNonPositiveIntervalIsIdle(t *testing.T) {
	for _, interval := range []float64{0, -8} {
		inst := &fakeInstancer{sizes: map[int]int{0: 1}}
		s := newTestSpawner(SpawnerConfig{Speed: 10, Interval: interval, Viewport: 24}, inst)
		s.Fill(-1)
		s.Advance(1)
		s.Advance(1)
		if s.Len() != 0 || len(inst.made) != 0 {
			t.Errorf("interval %v: %d groups, %d instances; expected an idle spawner", interval, s.Len(), len(inst.made))
		}
		if s.Progress() != 0 {
			t.Errorf("interval %v: progress = %v, expected 0", interval, s.Progress())
		}
	}
}
