package main

import (
	"fmt"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// view 预览状态：当前群系、种子和视口左上角
type view struct {
	biomes []string
	cfg    *config.BiomesConfig
	index  int
	seed   int64
	arena  *arena.Arena
	offX   int
	offY   int
}

func newView(cfg *config.BiomesConfig, biome string, seed int64) (*view, error) {
	v := &view{biomes: cfg.Names(), cfg: cfg, seed: seed}
	v.index = -1
	for i, name := range v.biomes {
		if name == biome {
			v.index = i
		}
	}
	if v.index < 0 {
		return nil, fmt.Errorf("unknown biome %q (available: %v)", biome, v.biomes)
	}
	v.regenerate()
	return v, nil
}

func (v *view) biome() string {
	return v.biomes[v.index]
}

func (v *view) regenerate() {
	b, _ := v.cfg.GetBiome(v.biome())
	v.arena = arena.GenerateWithOptions(arena.OptionsFromBiome(b), utils.NewSeededRandom(v.seed))
}

// nextBiome 切换到下一个群系（同一种子）
func (v *view) nextBiome() {
	v.index = (v.index + 1) % len(v.biomes)
	v.regenerate()
}

// nextSeed 换一个种子重新生成
func (v *view) nextSeed() {
	v.seed++
	v.regenerate()
}

// scroll 移动视口并限制在地图范围内
func (v *view) scroll(dx, dy, width, height int) {
	v.offX = clamp(v.offX+dx, 0, max(0, v.arena.Width-width))
	v.offY = clamp(v.offY+dy, 0, max(0, v.arena.Height-height))
}

// status 状态栏文本
func (v *view) status() string {
	total := v.arena.Width * v.arena.Height
	open := v.arena.CountOpen()
	return fmt.Sprintf("biome=%s seed=%d %dx%d open=%d (%.0f%%)  [b]iome [n]ext seed arrows scroll [q]uit",
		v.biome(), v.seed, v.arena.Width, v.arena.Height, open, 100*float64(open)/float64(total))
}

// cellGlyph 返回格子的字符与样式，出生点单独标记
func cellGlyph(a *arena.Arena, x, y int) (rune, tcell.Style) {
	sx, sy := a.SpawnPoint()
	if x == int(sx) && y == int(sy) {
		return '@', tcell.StyleDefault.Foreground(tcell.ColorAqua)
	}
	switch a.Cell(x, y) {
	case types.CellObstacleA:
		return arena.RuneObstacleA, tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case types.CellObstacleB:
		return arena.RuneObstacleB, tcell.StyleDefault.Foreground(tcell.ColorOlive)
	}
	return arena.RuneOpen, tcell.StyleDefault.Foreground(tcell.ColorGray)
}

func (v *view) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	mapHeight := height - 1

	for y := 0; y < mapHeight && v.offY+y < v.arena.Height; y++ {
		for x := 0; x < width && v.offX+x < v.arena.Width; x++ {
			r, style := cellGlyph(v.arena, v.offX+x, v.offY+y)
			screen.SetContent(x, y, r, nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for x, r := range []rune(v.status()) {
		if x >= width {
			break
		}
		screen.SetContent(x, height-1, r, nil, statusStyle)
	}
	screen.Show()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
