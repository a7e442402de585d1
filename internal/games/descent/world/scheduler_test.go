package world

import "testing"

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler(10)
	var got []string
	s.After(0.2, func() { got = append(got, "b") })
	s.After(0.1, func() { got = append(got, "a") })
	s.After(0.2, func() { got = append(got, "c") })

	for i := 0; i < 3; i++ {
		s.Advance()
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("ran %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler(10)
	fired := false
	id := s.After(0.1, func() { fired = true })

	if !s.Pending(id) {
		t.Fatalf("event not pending after scheduling")
	}
	if !s.Cancel(id) {
		t.Fatalf("Cancel() = false for a pending event")
	}
	if s.Cancel(id) {
		t.Errorf("second Cancel() = true")
	}
	s.Advance()
	if fired {
		t.Errorf("cancelled event fired")
	}
}

func TestSchedulerMinimumDelay(t *testing.T) {
	s := NewScheduler(60)
	fired := 0
	s.After(0, func() { fired++ })
	if fired != 0 {
		t.Fatalf("event fired synchronously")
	}
	s.Advance()
	if fired != 1 {
		t.Errorf("zero-delay event fired %d times after one tick, expected 1", fired)
	}
}

func TestSchedulerTicks(t *testing.T) {
	s := NewScheduler(60)
	tests := []struct {
		seconds float64
		want    int64
	}{
		{0, 1},
		{1.0 / 60, 1},
		{0.5, 30},
		{0.7, 42},
		{2, 120},
	}
	for _, tc := range tests {
		if got := s.Ticks(tc.seconds); got != tc.want {
			t.Errorf("Ticks(%v) = %d, expected %d", tc.seconds, got, tc.want)
		}
	}
}

func TestSchedulerCallbackSchedulesLater(t *testing.T) {
	s := NewScheduler(10)
	var ticks []int64
	var again func()
	again = func() {
		ticks = append(ticks, s.Now())
		if len(ticks) < 3 {
			s.AfterTicks(1, again)
		}
	}
	s.AfterTicks(1, again)

	for i := 0; i < 5; i++ {
		s.Advance()
	}
	if len(ticks) != 3 || ticks[0] != 1 || ticks[2] != 3 {
		t.Errorf("ran at ticks %v, expected [1 2 3]", ticks)
	}
}
