package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/simulation"
	"github.com/foumildo44/vampire-survivor/pkg/systems"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	floorColor     = color.RGBA{R: 38, G: 52, B: 38, A: 255}
	obstacleAColor = color.RGBA{R: 22, G: 70, B: 30, A: 255}
	obstacleBColor = color.RGBA{R: 70, G: 62, B: 48, A: 255}

	playerColor     = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	dashingColor    = color.RGBA{R: 230, G: 245, B: 255, A: 255}
	deadColor       = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	enemyColor      = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	eliteColor      = color.RGBA{R: 240, G: 140, B: 40, A: 255}
	bossColor       = color.RGBA{R: 170, G: 60, B: 220, A: 255}
	projectileColor = color.RGBA{R: 255, G: 220, B: 80, A: 255}
	xpColor         = color.RGBA{R: 80, G: 230, B: 120, A: 255}
	goldColor       = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	healthColor     = color.RGBA{R: 255, G: 110, B: 160, A: 255}

	hudTextColor  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	barBackColor  = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	barFillColor  = color.RGBA{R: 210, G: 40, B: 40, A: 255}
	overlayColor  = color.RGBA{A: 180}
	lineHeight    = 16.0
	hudMargin     = 10.0
	hudBarWidth   = float32(200)
	hudBarHeight  = float32(10)
	enemyBarWidth = float32(TileSize)
)

// camera 以玩家为中心的视口
type camera struct {
	X, Y float64
}

func newCamera(snap simulation.Snapshot) camera {
	for _, r := range snap.Records {
		if r.Kind == systems.RenderPlayer {
			return camera{X: r.X, Y: r.Y}
		}
	}
	return camera{}
}

// toScreen 世界坐标转屏幕坐标
func (c camera) toScreen(x, y float64) (float32, float32) {
	sx := (x-c.X)*TileSize + ScreenWidth/2
	sy := (y-c.Y)*TileSize + ScreenHeight/2
	return float32(sx), float32(sy)
}

// renderTerrain 把竞技场预渲染成一张图片
func renderTerrain(a *arena.Arena) *ebiten.Image {
	img := ebiten.NewImage(a.Width*TileSize, a.Height*TileSize)
	img.Fill(floorColor)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			var clr color.Color
			switch a.Cell(x, y) {
			case types.CellObstacleA:
				clr = obstacleAColor
			case types.CellObstacleB:
				clr = obstacleBColor
			default:
				continue
			}
			vector.DrawFilledRect(img, float32(x*TileSize), float32(y*TileSize), TileSize, TileSize, clr, false)
		}
	}
	return img
}

func (a *App) drawTerrain(screen *ebiten.Image, cam camera) {
	ox, oy := cam.toScreen(0, 0)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(ox), float64(oy))
	screen.DrawImage(a.terrain, op)
}

func (a *App) drawChains(screen *ebiten.Image, cam camera, chains []systems.ChainLine) {
	for _, chain := range chains {
		i := math.Max(0, math.Min(1, chain.Intensity))
		clr := color.RGBA{R: uint8(140 * i), G: uint8(200 * i), B: uint8(255 * i), A: uint8(255 * i)}
		for k := 1; k < len(chain.Points); k++ {
			x0, y0 := cam.toScreen(chain.Points[k-1][0], chain.Points[k-1][1])
			x1, y1 := cam.toScreen(chain.Points[k][0], chain.Points[k][1])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
		}
	}
}

func (a *App) drawRecords(screen *ebiten.Image, cam camera, records []systems.RenderRecord) {
	for _, r := range records {
		x, y := cam.toScreen(r.X, r.Y)
		if x < -TileSize*4 || y < -TileSize*4 || x > ScreenWidth+TileSize*4 || y > ScreenHeight+TileSize*4 {
			continue
		}
		clr, radius := recordStyle(r)
		vector.DrawFilledCircle(screen, x, y, radius, clr, true)

		if r.Kind == systems.RenderPlayer {
			fx := x + float32(math.Cos(r.Facing))*radius*1.6
			fy := y + float32(math.Sin(r.Facing))*radius*1.6
			vector.StrokeLine(screen, x, y, fx, fy, 2, clr, true)
		}
		if r.Kind == systems.RenderEnemy && r.MaxHealth > 0 && r.Health < r.MaxHealth {
			top := y - radius - 5
			vector.DrawFilledRect(screen, x-enemyBarWidth/2, top, enemyBarWidth, 3, barBackColor, false)
			vector.DrawFilledRect(screen, x-enemyBarWidth/2, top, enemyBarWidth*float32(r.Health/r.MaxHealth), 3, barFillColor, false)
		}
	}
}

// recordStyle 返回渲染记录的颜色和屏幕半径
func recordStyle(r systems.RenderRecord) (color.Color, float32) {
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	switch r.Kind {
	case systems.RenderPlayer:
		switch r.State {
		case "dead":
			return deadColor, TileSize * 0.4
		case "dashing":
			return dashingColor, TileSize * 0.4
		}
		return playerColor, TileSize * 0.4
	case systems.RenderEnemy:
		radius := float32(TileSize * 0.35 * scale)
		switch {
		case r.Boss:
			return bossColor, radius
		case r.Elite != "":
			return eliteColor, radius
		}
		return enemyColor, radius
	case systems.RenderProjectile:
		return projectileColor, TileSize * 0.2
	case systems.RenderDrop:
		switch r.State {
		case types.DropCurrency.String():
			return goldColor, TileSize * 0.18
		case types.DropHealth.String():
			return healthColor, TileSize * 0.18
		}
		return xpColor, TileSize * 0.15
	}
	return color.White, TileSize * 0.2
}

func (a *App) drawHUD(screen *ebiten.Image, snap simulation.Snapshot) {
	hud := snap.HUD
	x, y := float32(hudMargin), float32(hudMargin)
	vector.DrawFilledRect(screen, x, y, hudBarWidth, hudBarHeight, barBackColor, false)
	if hud.MaxHealth > 0 {
		fill := float32(math.Max(0, hud.Health/hud.MaxHealth))
		vector.DrawFilledRect(screen, x, y, hudBarWidth*fill, hudBarHeight, barFillColor, false)
	}

	lines := hudLines(hud)
	for i, line := range lines {
		a.drawText(screen, line, hudMargin, hudMargin+float64(hudBarHeight)+4+float64(i)*lineHeight, hudTextColor)
	}
}

// hudLines 生成 HUD 文本行
func hudLines(hud systems.HUD) []string {
	wave := fmt.Sprintf("Wave %d  next in %.0fs", hud.Wave, math.Ceil(hud.BreakRemaining))
	if hud.WaveActive {
		wave = fmt.Sprintf("Wave %d  enemies %d", hud.Wave, hud.EnemiesAlive)
	}
	dash := "Dash: cooling down"
	if hud.DashReady {
		dash = "Dash: ready (Space)"
	}
	minutes := int(hud.Elapsed) / 60
	seconds := int(hud.Elapsed) % 60
	return []string{
		fmt.Sprintf("HP %.0f/%.0f", math.Max(0, hud.Health), hud.MaxHealth),
		fmt.Sprintf("Level %d  XP %.0f/%.0f", hud.Level, hud.XP, hud.XPToNext),
		wave,
		fmt.Sprintf("Kills %d  Gold %d  Time %02d:%02d", hud.Kills, hud.Gold, minutes, seconds),
		dash,
	}
}

func (a *App) drawNotices(screen *ebiten.Image) {
	lines := a.notices.lines()
	for i, line := range lines {
		y := ScreenHeight - hudMargin - float64(len(lines)-i)*lineHeight
		a.drawText(screen, line, hudMargin, y, hudTextColor)
	}
}

func (a *App) drawUpgradeChoice(screen *ebiten.Image, snap simulation.Snapshot) {
	lines := []string{fmt.Sprintf("LEVEL %d - choose an upgrade", snap.HUD.Level), ""}
	for i, opt := range snap.PendingUpgrade {
		lines = append(lines, fmt.Sprintf("[%d] %s (%s)", i+1, opt.Title, opt.Rarity))
	}
	a.drawCentered(screen, lines)
}

func (a *App) drawGameOver(screen *ebiten.Image, snap simulation.Snapshot) {
	a.drawCentered(screen, []string{
		"GAME OVER",
		fmt.Sprintf("Wave %d  Kills %d  Gold %d", snap.HUD.Wave, snap.HUD.Kills, snap.HUD.Gold),
		"",
		"Press R to start a new run",
	})
}

// drawCentered 在屏幕中央绘制带半透明底板的多行文字
func (a *App) drawCentered(screen *ebiten.Image, lines []string) {
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, text.Advance(line, a.face))
	}
	height := float64(len(lines)) * lineHeight
	left := (ScreenWidth - width) / 2
	top := (ScreenHeight - height) / 2

	vector.DrawFilledRect(screen, float32(left-20), float32(top-20), float32(width+40), float32(height+40), overlayColor, false)
	for i, line := range lines {
		lx := (ScreenWidth - text.Advance(line, a.face)) / 2
		a.drawText(screen, line, lx, top+float64(i)*lineHeight, hudTextColor)
	}
}

// drawText 绘制文本
func (a *App) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, a.face, opts)
}
