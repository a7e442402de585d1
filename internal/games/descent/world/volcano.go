package world

// VolcanoState tracks one volcano's eruption cycle.
type VolcanoState struct {
	Erupting bool
	Armed    bool // Damage area active

	next, arm, end EventID
}

// scheduleEruption queues the first eruption one interval from now. The
// cycle then repeats until the volcano is despawned.
func (w *World) scheduleEruption(h Handle) {
	e := w.reg.Get(h)
	if e == nil || e.Volcano == nil || w.cfg.Volcano.Interval <= 0 {
		return
	}
	e.Volcano.next = w.sched.After(w.cfg.Volcano.Interval, func() { w.erupt(h) })
}

func (w *World) erupt(h Handle) {
	e := w.reg.Get(h)
	if e == nil {
		return
	}
	vc := w.cfg.Volcano
	st := e.Volcano

	// A new eruption supersedes one still running: its arm and end must not
	// touch this cycle.
	w.sched.Cancel(st.arm)
	w.sched.Cancel(st.end)
	st.Erupting = true
	st.Armed = false

	st.arm = w.sched.After(vc.ActivateDelay, func() {
		if e := w.reg.Get(h); e != nil {
			e.Volcano.arm = 0
			e.Volcano.Armed = e.Volcano.Erupting
		}
	})
	st.end = w.sched.After(vc.Duration, func() {
		if e := w.reg.Get(h); e != nil {
			e.Volcano.end = 0
			e.Volcano.Erupting = false
			e.Volcano.Armed = false
			w.sched.Cancel(e.Volcano.arm)
		}
	})
	st.next = w.sched.After(vc.Interval, func() { w.erupt(h) })
}

// cancelVolcano drops every pending event of a volcano.
func (w *World) cancelVolcano(st *VolcanoState) {
	w.sched.Cancel(st.next)
	w.sched.Cancel(st.arm)
	w.sched.Cancel(st.end)
}

// EruptionBox returns the damage column above a volcano.
func (w *World) EruptionBox(e *Entity) Box {
	reach := w.cfg.Volcano.Reach
	return Box{X: e.Pos.X, Y: e.Pos.Y - reach, W: e.Size.X, H: reach + e.Size.Y}
}
