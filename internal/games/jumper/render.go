package jumper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Visual characters for rendering
const (
	NormalChar    = '═'
	MovingChar    = '─'
	BreakableChar = '┄'
	SpringChar    = '▀'
	SpringCoil    = '╨'
	CoinChar      = '●'
	BodyChar      = '█'
	HeadChar      = '▄'
	LegChar       = '╹'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH))
		return
	}

	g.level.Draw(dst, g.camera.Y, g.colors)
	g.drawPlayer(dst)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if !g.player.Alive() {
		g.drawCenteredMessage(dst, fmt.Sprintf("GAME OVER  %d m", g.score),
			"Press R to restart, Q to quit")
	}
}

// drawPlayer renders the player, split across the edges while wrapping.
//
//	▄█▄
//	╹ ╹
func (g *Game) drawPlayer(dst *core.Screen) {
	p := g.player
	top := g.camera.ToScreen(p.Y)
	left := int(math.Floor(p.X))
	w, h := int(math.Round(p.W)), int(math.Round(p.H))

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r := BodyChar
			switch {
			case dy == 0 && dx != w/2:
				r = HeadChar
			case dy == h-1 && h > 1 && p.State() == StateFalling:
				// Legs out while falling, tucked while rising
				if dx == w/2 {
					r = ' '
				} else {
					r = LegChar
				}
			}
			if r == ' ' {
				continue
			}
			x := core.WrapInt(left+dx, dst.Width())
			dst.SetColored(x, top+dy, r, p.Color)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	height := fmt.Sprintf(" %d m ", g.score)
	dst.DrawTextColored(1, 0, height, g.colors.HUD)

	best := fmt.Sprintf(" Best: %d m ", g.best)
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, g.colors.HUD)

	if g.player.Coins > 0 {
		coins := fmt.Sprintf(" %d coins ", g.player.Coins)
		dst.DrawTextColored(1, dst.Height()-1, coins, g.colors.Coin)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := len([]rune(title))
	subLen := len([]rune(subtitle))

	boxW := min(max(titleLen, subLen)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(max(boxX+(boxW-subLen)/2, boxX+1), boxY+3, subtitle)
}
