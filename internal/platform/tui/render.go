package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/telisar/stardrift/internal/core"
	"github.com/telisar/stardrift/internal/sim"
)

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 2

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// obstacleGlyph returns the fill rune and color for an obstacle kind.
func obstacleGlyph(kind sim.ObstacleKind) (rune, core.Color) {
	switch kind {
	case sim.ObstacleAsteroid:
		return '●', core.ColorGray
	case sim.ObstacleDebris:
		return '▪', core.ColorGray
	case sim.ObstacleEnemy:
		return '◆', core.ColorBrightRed
	case sim.ObstacleMeteor:
		return '◉', core.ColorOrange
	case sim.ObstacleBlackhole:
		return '◍', core.ColorMagenta
	case sim.ObstacleLaser:
		return '═', core.ColorRed
	default:
		return '?', core.ColorWhite
	}
}

// powerUpGlyph returns the display rune for a power-up kind.
func powerUpGlyph(kind sim.PowerUpKind) rune {
	switch kind {
	case sim.PowerUpShield:
		return 'S'
	case sim.PowerUpBoost:
		return '»'
	case sim.PowerUpBonus:
		return '$'
	case sim.PowerUpMultishot:
		return '*'
	case sim.PowerUpTimeFreeze:
		return '❄'
	case sim.PowerUpMagnet:
		return 'U'
	case sim.PowerUpInvisibility:
		return '○'
	default:
		return '?'
	}
}

// rarityColor maps a rarity tier to its display color.
func rarityColor(r sim.Rarity) core.Color {
	switch r {
	case sim.RarityRare:
		return core.ColorBrightBlue
	case sim.RarityEpic:
		return core.ColorBrightMagenta
	case sim.RarityLegendary:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// drawGame renders one frame: HUD rows on top, the projected playfield
// below, and any overlay. Screen-shake offsets apply to the craft's drawn
// position only; the simulation's collision box is untouched.
func drawGame(screen *core.Screen, g *sim.Sim, snap sim.Snapshot, feedCode string, paused bool) {
	screen.Clear()
	drawHUD(screen, snap, feedCode)

	fieldW, fieldH := g.Playfield()
	viewH := screen.Height() - hudRows
	if viewH < 1 || screen.Width() < 1 {
		return
	}
	scaleX := float64(screen.Width()) / fieldW
	scaleY := float64(viewH) / fieldH

	project := func(wx, wy float64) (int, int) {
		return int(wx * scaleX), hudRows + int(wy*scaleY)
	}

	craft, obstacles, powerUps := g.Entities()

	for _, o := range obstacles {
		glyph, color := obstacleGlyph(o.Kind)
		x0, y0 := project(o.Pos.X, o.Pos.Y)
		x1, y1 := project(o.Pos.X+o.Size, o.Pos.Y+o.Size)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				screen.SetCell(x, y, glyph, color)
			}
		}
	}

	for _, p := range powerUps {
		x, y := project(p.Pos.X+p.Size/2, p.Pos.Y+p.Size/2)
		screen.SetCell(x, y, powerUpGlyph(p.Kind), rarityColor(p.Rarity))
	}

	drawCraft(screen, craft, project)

	switch {
	case snap.State == sim.StateGameOver:
		drawGameOverOverlay(screen, snap)
	case paused:
		drawCenteredBox(screen, []string{"PAUSED", "p resume · b menu · q quit"})
	}
}

// drawCraft draws the craft as a small wedge, tinted by its status.
func drawCraft(screen *core.Screen, craft sim.Craft, project func(float64, float64) (int, int)) {
	color := core.ColorBrightCyan
	switch {
	case craft.Invisible:
		color = core.ColorGray
	case craft.Shield:
		color = core.ColorBrightGreen
	case craft.Boost:
		color = core.ColorBrightYellow
	}

	x, y := project(craft.Pos.X+craft.ShakeX, craft.Pos.Y+craft.ShakeY+craft.Height/2)
	screen.SetCell(x, y, '▶', color)
	screen.SetCell(x-1, y, '=', color)
	if craft.Shield {
		screen.SetCell(x+1, y, ')', core.ColorBrightGreen)
	}
}

// drawHUD fills the reserved top rows: score line, then status bars.
func drawHUD(screen *core.Screen, snap sim.Snapshot, feedCode string) {
	line1 := fmt.Sprintf(" SCORE %d  BEST %d  LVL %.2f (%d%%)", snap.Score, snap.HighScore, snap.Level, int(snap.LevelProgress))
	if snap.NewHighScore {
		line1 += "  ★ NEW BEST"
	}
	if feedCode != "" {
		line1 += "  FEED " + feedCode
	}
	screen.DrawTextColored(0, 0, line1, core.ColorBrightWhite)

	line2 := fmt.Sprintf(" HP %s %d/%d  EN %d/%d%s",
		bar(snap.Health, snap.MaxHealth, 10), snap.Health, snap.MaxHealth,
		snap.Energy, snap.MaxEnergy, effectTags(snap))
	color := core.ColorGreen
	if snap.Health <= snap.MaxHealth/4 {
		color = core.ColorBrightRed
	}
	screen.DrawTextColored(0, 1, line2, color)
}

// effectTags lists active effects with their remaining seconds.
func effectTags(snap sim.Snapshot) string {
	var b strings.Builder
	add := func(name string, e sim.EffectStatus) {
		if e.Active {
			fmt.Fprintf(&b, "  %s %.0fs", name, e.Remaining/1000)
		}
	}
	add("SHLD", snap.Shield)
	add("BOOST", snap.Boost)
	add("INVIS", snap.Invisibility)
	add("MULTI", snap.Multishot)
	add("MAGNT", snap.Magnet)
	add("FREEZ", snap.TimeFreeze)
	return b.String()
}

// bar renders a fixed-width fill bar.
func bar(value, max, width int) string {
	if max <= 0 {
		return strings.Repeat("░", width)
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// drawGameOverOverlay draws the terminal screen box.
func drawGameOverOverlay(screen *core.Screen, snap sim.Snapshot) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("score %d · distance %.0f", snap.Score, snap.Distance),
	}
	if snap.NewHighScore {
		lines = append(lines, "★ new high score ★")
	}
	lines = append(lines, "r restart · b menu · q quit")
	drawCenteredBox(screen, lines)
}

// drawCenteredBox draws a bordered box with the given lines in the middle
// of the screen.
func drawCenteredBox(screen *core.Screen, lines []string) {
	boxW := 0
	for _, l := range lines {
		if len([]rune(l)) > boxW {
			boxW = len([]rune(l))
		}
	}
	boxW += 4
	boxH := len(lines) + 2
	x0 := (screen.Width() - boxW) / 2
	y0 := (screen.Height() - boxH) / 2

	screen.DrawRect(core.NewRect(x0, y0, boxW, boxH), ' ')
	screen.DrawBox(core.NewRect(x0, y0, boxW, boxH))
	for i, l := range lines {
		screen.DrawText(x0+(boxW-len([]rune(l)))/2, y0+1+i, l)
	}
}
