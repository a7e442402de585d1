package world

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/descent/internal/config"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"chase", ModeChase, false},
		{"wander-wait", ModeWanderWait, false},
		{"patrol-horizontal", ModePatrol, false},
		{"orbit", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tc.in, err)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseMode(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestNewVariantFromConfig(t *testing.T) {
	cfg := config.DefaultDescentConfig()
	v, err := NewVariant("brute", cfg.Enemies["brute"])
	if err != nil {
		t.Fatalf("NewVariant() error = %v", err)
	}
	if v.Mode != ModeChase || v.Damage != 3 {
		t.Errorf("brute = %+v, expected chase with damage 3", v)
	}
}

func TestChaseStopsWhenHidden(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := &Variant{Mode: ModeChase, Speed: 5, WanderSpeed: 2, WaitTime: 0.5}
	s := newEnemyState(v, false)

	vel := s.Velocity(Vec2{}, Vec2{X: 10}, false, 0.1, rng)
	if vel.X != 5 || vel.Y != 0 {
		t.Fatalf("chase velocity %+v, expected {5 0}", vel)
	}

	s.OnPlayerHidden()
	for i := 0; i < 4; i++ {
		if vel := s.Velocity(Vec2{}, Vec2{X: 10}, true, 0.1, rng); vel != (Vec2{}) {
			t.Fatalf("step %d: moving while waiting: %+v", i, vel)
		}
	}

	// The wait runs out after about 0.5s; the enemy then wanders at wander
	// speed.
	vel = Vec2{}
	for i := 0; i < 5 && vel == (Vec2{}); i++ {
		vel = s.Velocity(Vec2{}, Vec2{X: 10}, true, 0.1, rng)
	}
	if l := vel.Len(); l < 1.999 || l > 2.001 {
		t.Errorf("wander speed %v, expected 2", l)
	}
}

func TestWanderWaitNeverChases(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := &Variant{Mode: ModeWanderWait, Speed: 50, WanderSpeed: 1, WaitTime: 0.2}
	s := newEnemyState(v, false)

	if !s.Waiting() {
		t.Fatalf("wander-wait enemy should start waiting")
	}
	for i := 0; i < 20; i++ {
		vel := s.Velocity(Vec2{}, Vec2{X: 10}, false, 0.1, rng)
		if vel.Len() > 1.001 {
			t.Fatalf("step %d: speed %v exceeds wander speed", i, vel.Len())
		}
	}
}

func TestPatrolMovesHorizontally(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := &Variant{Mode: ModePatrol, Speed: 12}
	s := newEnemyState(v, true)
	s.dir = -1

	vel := s.Velocity(Vec2{}, Vec2{X: 10, Y: 10}, false, 0.1, rng)
	if vel.X != -12 || vel.Y != 0 {
		t.Errorf("patrol velocity %+v, expected {-12 0}", vel)
	}
}
