package world

import "testing"

var testBorder = Border{MinX: -300, MaxX: 300, MinY: -500, MaxY: 500}

func TestBorderPlayerWrap(t *testing.T) {
	tests := []struct {
		name  string
		pos   Vec2
		wantX float64
		want  Outcome
	}{
		{"left edge", Vec2{X: -301, Y: 0}, 300, OutcomeWrapped},
		{"right edge", Vec2{X: 301, Y: 10}, -300, OutcomeWrapped},
		{"far left", Vec2{X: -1000, Y: 0}, 300, OutcomeWrapped},
		{"inside", Vec2{X: 12, Y: 0}, 12, OutcomeNone},
		{"on the line", Vec2{X: 300, Y: 0}, 300, OutcomeNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := &Entity{Kind: KindPlayer, Pos: tc.pos}
			if got := testBorder.Resolve(e); got != tc.want {
				t.Errorf("Resolve() = %v, expected %v", got, tc.want)
			}
			if e.Pos.X != tc.wantX {
				t.Errorf("x = %v, expected %v", e.Pos.X, tc.wantX)
			}
			if e.Pos.Y != tc.pos.Y {
				t.Errorf("y changed from %v to %v", tc.pos.Y, e.Pos.Y)
			}
		})
	}
}

func TestBorderWrapClampsIntoRect(t *testing.T) {
	got := testBorder.Wrap(Vec2{X: -301, Y: 900}, EdgeLeft)
	if got.X != 300 || got.Y != 500 {
		t.Errorf("Wrap() = %+v, expected {300 500}", got)
	}
}

func TestBorderPlayerBottomDies(t *testing.T) {
	e := &Entity{Kind: KindPlayer, Pos: Vec2{X: 0, Y: 501}}
	if got := testBorder.Resolve(e); got != OutcomeDied {
		t.Errorf("Resolve() = %v, expected OutcomeDied", got)
	}
}

func TestBorderEnemyTwoStrikes(t *testing.T) {
	v := &Variant{Name: "grunt", Mode: ModeChase}
	e := &Entity{Kind: KindEnemy, Pos: Vec2{X: 0, Y: 501}, Enemy: newEnemyState(v, false)}

	if got := testBorder.Resolve(e); got != OutcomeStruck {
		t.Fatalf("first crossing = %v, expected OutcomeStruck", got)
	}
	if !e.Enemy.BorderStrike {
		t.Fatalf("strike flag not set")
	}

	// Staying in the strip is not a new crossing.
	if got := testBorder.Resolve(e); got != OutcomeNone {
		t.Fatalf("staying in strip = %v, expected OutcomeNone", got)
	}

	e.Pos = Vec2{X: 0, Y: 0}
	if got := testBorder.Resolve(e); got != OutcomeNone {
		t.Fatalf("back inside = %v, expected OutcomeNone", got)
	}

	e.Pos = Vec2{X: 350, Y: 0}
	if got := testBorder.Resolve(e); got != OutcomeDespawn {
		t.Errorf("second crossing = %v, expected OutcomeDespawn", got)
	}
}

func TestBorderEdgeAt(t *testing.T) {
	tests := []struct {
		pos  Vec2
		want Edge
	}{
		{Vec2{X: 0, Y: 0}, EdgeNone},
		{Vec2{X: -301, Y: 0}, EdgeLeft},
		{Vec2{X: 301, Y: 0}, EdgeRight},
		{Vec2{X: 0, Y: 501}, EdgeBottom},
		{Vec2{X: -301, Y: 501}, EdgeBottom},
		{Vec2{X: 0, Y: -900}, EdgeNone},
	}
	for _, tc := range tests {
		if got := testBorder.EdgeAt(tc.pos); got != tc.want {
			t.Errorf("EdgeAt(%+v) = %v, expected %v", tc.pos, got, tc.want)
		}
	}
}
