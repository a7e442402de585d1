package descent

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/games/descent/world"
)

// Visual characters for rendering
const (
	PlayerChar       = '@'
	DeadChar         = 'X'
	PlatformChar     = '█'
	StealthChar      = '░'
	KillzoneChar     = '×'
	VolcanoChar      = '▲'
	WarmupChar       = '╎'
	EruptionChar     = '▓'
	DefaultEnemyChar = 'e'
)

// themes are the platform colors per level; the swap trails the level
// change by the configured theme delay.
var themes = []core.Color{core.ColorCyan, core.ColorGreen, core.ColorOrange, core.ColorMagenta}

// Render draws the HUD and the playfield.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	g.drawWorld(dst)
	g.drawHUD(dst)

	switch {
	case g.world.Over():
		st := g.State()
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Level: %d  |  R to restart", st.Score, st.Level))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.levelFlash > 0:
		dst.DrawTextCentered(hudRows+1, fmt.Sprintf("~ LEVEL %d ~", g.world.Level()))
	}
}

func (g *Game) drawWorld(dst *core.Screen) {
	theme := themes[g.world.Theme()%len(themes)]

	g.world.Each(world.KindStealthZone, func(e *world.Entity) {
		dst.DrawRect(cellRect(e.Box()), StealthChar, core.ColorGray)
	})
	g.world.Each(world.KindKillzone, func(e *world.Entity) {
		dst.DrawRect(cellRect(e.Box()), KillzoneChar, core.ColorRed)
	})
	g.world.Each(world.KindPlatform, func(e *world.Entity) {
		dst.DrawRect(cellRect(e.Box()), PlatformChar, theme)
	})
	g.world.Each(world.KindVolcano, func(e *world.Entity) {
		st := e.Volcano
		if st.Erupting {
			col := g.world.EruptionBox(e)
			col.H -= e.Size.Y
			if st.Armed {
				dst.DrawRect(cellRect(col), EruptionChar, core.ColorBrightRed)
			} else {
				dst.DrawRect(cellRect(col), WarmupChar, core.ColorYellow)
			}
		}
		x, y := cell(e.Pos)
		dst.SetColored(x, y, VolcanoChar, core.ColorOrange)
	})
	g.world.Each(world.KindEnemy, func(e *world.Entity) {
		x, y := cell(e.Pos)
		dst.SetColored(x, y, g.enemyGlyph(e), enemyColor(e.Enemy))
	})

	p := g.world.Player()
	pe := g.world.PlayerEntity()
	x, y := cell(pe.Pos)
	switch {
	case p.Dead:
		dst.SetColored(x, y, DeadChar, core.ColorRed)
	case p.Hidden:
		dst.SetColored(x, y, PlayerChar, core.ColorGray)
	case p.Dashing():
		dst.SetColored(x, y, PlayerChar, core.ColorBrightYellow)
	default:
		dst.SetColored(x, y, PlayerChar, core.ColorWhite)
	}
}

func (g *Game) enemyGlyph(e *world.Entity) rune {
	if v, ok := g.cfg.Enemies[e.Enemy.Variant.Name]; ok && v.Glyph != "" {
		return []rune(v.Glyph)[0]
	}
	return DefaultEnemyChar
}

func enemyColor(st *world.EnemyState) core.Color {
	switch {
	case st.Variant.Mode == world.ModePatrol:
		return core.ColorBlue
	case st.Waiting():
		return core.ColorYellow
	case st.BorderStrike:
		return core.ColorMagenta
	default:
		return core.ColorBrightRed
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	p := g.world.Player()
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ', core.ColorDefault)

	x := 1
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}
	put(strings.ToUpper(g.title), core.ColorBrightCyan)
	put(fmt.Sprintf("  Score: %d  Level: %d  ", g.world.Score(), g.world.Level()), core.ColorDefault)
	put("HP ", core.ColorDefault)
	put(hpBar(p.HP, p.MaxHP), core.ColorRed)
	if p.Hidden {
		put("  HIDDEN", core.ColorGray)
	}
	if p.Dashing() {
		put("  DASH", core.ColorBrightYellow)
	}
}

func hpBar(hp, max int) string {
	if max <= 0 {
		return ""
	}
	if hp < 0 {
		hp = 0
	}
	return strings.Repeat("♥", hp) + strings.Repeat("·", core.Max(0, max-hp))
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// cell maps a world position to screen coordinates below the HUD.
func cell(p world.Vec2) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y)) + hudRows
}

// cellRect maps a world box to the screen cells it covers.
func cellRect(b world.Box) core.Rect {
	x0, y0 := cell(world.Vec2{X: b.X, Y: b.Y})
	x1 := int(math.Ceil(b.X + b.W))
	y1 := int(math.Ceil(b.Y+b.H)) + hudRows
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}
