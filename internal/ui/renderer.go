package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/darkidle/internal/combat"
	"github.com/samdwyer/darkidle/internal/economy"
	"github.com/samdwyer/darkidle/internal/entity"
	"github.com/samdwyer/darkidle/internal/game"
	"github.com/samdwyer/darkidle/internal/gamedata"
)

// Canvas is the drawing surface the renderer needs. *Screen implements it.
type Canvas interface {
	SetGrapheme(x, y int, cluster []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

const barWidth = 20

// Renderer handles drawing the game to the screen.
type Renderer struct {
	canvas  Canvas
	catalog *gamedata.ItemRegistry
	width   int
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas, catalog *gamedata.ItemRegistry) *Renderer {
	return &Renderer{canvas: canvas, catalog: catalog}
}

var (
	styleText   = tcell.StyleDefault.Foreground(colorBone)
	styleDim    = tcell.StyleDefault.Foreground(colorAsh)
	styleTitle  = tcell.StyleDefault.Foreground(colorBlood).Bold(true)
	styleHeader = tcell.StyleDefault.Foreground(colorBone).Background(colorBruise).Bold(true)
	styleBoss   = tcell.StyleDefault.Foreground(colorBone).Background(colorWine).Bold(true)
	styleReady  = tcell.StyleDefault.Foreground(colorHealth).Bold(true)
	styleLocked = tcell.StyleDefault.Foreground(colorAsh)
)

// Render draws the whole session. status is shown in the title bar.
func (r *Renderer) Render(s game.Session, status string) {
	r.canvas.Clear()
	var height int
	r.width, height = r.canvas.Size()

	stats := s.Stats(r.catalog)

	y := 0
	x := r.text(0, y, " DARK IDLE ", styleHeader)
	x = r.text(x+1, y, fmt.Sprintf("Stage %d", s.Stage), styleTitle)
	if s.Enemy != nil && s.Enemy.IsBoss {
		x = r.text(x+2, y, "Boss!", styleBoss)
	} else {
		x = r.text(x+2, y, fmt.Sprintf("Boss in %d", combat.BossEvery-s.StageProgress()), styleDim)
	}
	x = r.text(x+2, y, fmt.Sprintf("Kills %d", s.TotalKills), styleDim)
	if status != "" {
		r.text(x+2, y, status, styleDim)
	}
	y += 2

	y = r.drawEnemy(y, s.Enemy)
	y = r.drawHero(y, s.Hero, stats)
	y = r.drawResources(y+1, s.Resources)
	y = r.drawCrafting(y+1, s)
	r.drawLog(y+1, height-2, s.Log)

	r.text(0, height-1, fmt.Sprintf("[space] strike  [h] heal (%s souls)  [1-%d] craft  [R] reset  [q] quit",
		Format(s.Settings.HealCostSouls), len(s.Items)), styleDim)

	r.canvas.Show()
}

func (r *Renderer) drawEnemy(y int, e *entity.Enemy) int {
	if e == nil {
		r.text(0, y, "Enemy  the corridor is quiet...", styleDim)
		return y + 2
	}
	x := r.text(0, y, "Enemy  ", styleDim)
	x = r.text(x, y, e.Name, styleText.Bold(true))
	if e.IsBoss {
		x = r.text(x+1, y, " BOSS ", styleBoss)
	}
	r.text(x+2, y, fmt.Sprintf("DPS %d", e.DPS), styleDim)
	r.bar(7, y+1, e.HP, e.MaxHP)
	return y + 3
}

func (r *Renderer) drawHero(y int, h entity.Hero, stats combat.Stats) int {
	x := r.text(0, y, "You    ", styleDim)
	x = r.text(x, y, "The Protagonist", styleText.Bold(true))
	r.text(x+2, y, fmt.Sprintf("DPS %d  APS %.1f  DR %d  SG %.1f/s",
		int(math.Floor(stats.DPS)), stats.APS, stats.DR, stats.SoulsPerSec), styleDim)
	r.bar(7, y+1, h.HP, stats.MaxHP)
	return y + 2
}

func (r *Renderer) bar(x, y, hp, maxHP int) {
	pct := 0
	if maxHP > 0 {
		pct = max(0, hp*100/maxHP)
	}
	filled := min(barWidth, pct*barWidth/100)
	fill := tcell.StyleDefault.Foreground(barColor(pct))
	x = r.text(x, y, strings.Repeat("█", filled), fill)
	x = r.text(x, y, strings.Repeat("░", barWidth-filled), styleDim)
	r.text(x+1, y, fmt.Sprintf("HP %d / %d", hp, maxHP), styleText)
}

func (r *Renderer) drawResources(y int, res entity.Resources) int {
	icons := map[gamedata.Resource]string{
		gamedata.Souls:   "🕯️",
		gamedata.Bones:   "🦴",
		gamedata.Gloom:   "🌑",
		gamedata.Crystal: "💎",
	}
	x := 0
	for _, kind := range gamedata.ResourceKinds {
		label := fmt.Sprintf("%s %s %s", icons[kind], title(string(kind)), Format(res.Get(kind)))
		x = r.text(x, y, label, styleText) + 3
	}
	return y + 1
}

func (r *Renderer) drawCrafting(y int, s game.Session) int {
	r.text(0, y, "Crafting", styleTitle)
	y++
	for i, it := range s.Items {
		def := r.catalog.GetByID(it.ID)
		if def == nil {
			continue
		}
		x := r.text(1, y, fmt.Sprintf("%d %-30s Lv.%d/%d", i+1, def.Name, it.Level, def.Max), styleText)

		switch {
		case it.Level >= def.Max:
			r.text(x+2, y, "MAX", styleDim)
		case economy.Craftable(r.catalog, s.Resources, it):
			x = r.text(x+2, y, costString(economy.CostFor(r.catalog, it.ID, it.Level)), styleText)
			r.text(x+2, y, "Ready", styleReady)
		default:
			x = r.text(x+2, y, costString(economy.CostFor(r.catalog, it.ID, it.Level)), styleLocked)
			r.text(x+2, y, "Locked", styleLocked)
		}
		y++
	}
	return y
}

func (r *Renderer) drawLog(y, bottom int, log []string) {
	r.text(0, y, "Log", styleTitle)
	y++
	for i, line := range log {
		if y >= bottom {
			return
		}
		style := styleText
		if i > 0 {
			style = styleDim
		}
		r.text(1, y, line, style)
		y++
	}
}

// text draws s from x, clipped to the canvas width, and returns the column
// after the last cell drawn.
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if x+w > r.width {
			break
		}
		r.canvas.SetGrapheme(x, y, g.Runes(), style)
		x += w
	}
	return x
}

// costString lists a cost in resource order, e.g. "14 bones, 7 gloom".
func costString(cost entity.Resources) string {
	var parts []string
	for _, kind := range gamedata.ResourceKinds {
		if n, ok := cost[kind]; ok {
			parts = append(parts, Format(n)+" "+string(kind))
		}
	}
	return strings.Join(parts, ", ")
}

// title upper-cases the first letter of an ASCII word.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
