package world

import "github.com/vovakirdan/descent/internal/config"

// Player is the survival state of the player entity. Position lives on the
// entity itself.
type Player struct {
	Handle Handle
	HP     int
	MaxHP  int
	Hidden bool
	Dead   bool
	Cause  Cause

	stats     config.PlayerConfig
	zone      Handle // Stealth zone that last hid the player
	dashing   bool
	dashEnd   EventID
	dashReady int64 // Scheduler tick at which the next dash is allowed
}

func newPlayer(h Handle, stats config.PlayerConfig) Player {
	return Player{Handle: h, HP: stats.HP, MaxHP: stats.HP, stats: stats}
}

// TakeDamage removes up to n HP and returns the amount actually lost.
// Hidden or dead players take nothing.
func (p *Player) TakeDamage(n int) int {
	if n <= 0 || p.Hidden || p.Dead {
		return 0
	}
	if n > p.HP {
		n = p.HP
	}
	p.HP -= n
	return n
}

// EnterStealth hides the player. It reports whether the flag changed.
func (p *Player) EnterStealth(zone Handle) bool {
	changed := !p.Hidden
	p.Hidden = true
	p.zone = zone
	return changed
}

// ExitStealth reveals the player. The last zone event wins, so leaving any
// zone clears the flag even while another still overlaps. It reports
// whether the flag changed.
func (p *Player) ExitStealth() bool {
	changed := p.Hidden
	p.Hidden = false
	p.zone = NoHandle
	return changed
}

// Dashing reports whether a dash is in progress.
func (p *Player) Dashing() bool {
	return p.dashing
}

// Dash starts a dash unless the player is dead or the cooldown has not
// elapsed. A dash triggered while another is still running replaces its
// pending end.
func (p *Player) Dash(s *Scheduler) bool {
	if p.Dead || s.Now() < p.dashReady || p.stats.DashDuration <= 0 {
		return false
	}
	s.Cancel(p.dashEnd)
	p.dashing = true
	p.dashEnd = s.After(p.stats.DashDuration, func() {
		p.dashing = false
		p.dashEnd = 0
	})
	p.dashReady = s.Now() + s.Ticks(p.stats.DashCooldown)
	return true
}

// Speed returns the horizontal movement speed, including any dash boost.
func (p *Player) Speed() float64 {
	if p.dashing && p.stats.DashMultiplier > 0 {
		return p.stats.Speed * p.stats.DashMultiplier
	}
	return p.stats.Speed
}
