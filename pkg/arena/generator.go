package arena

import (
	"log"

	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// 默认生成参数
const (
	DefaultSmoothingPasses = 5
	DefaultSafeZoneRadius  = 6
	DefaultObstacleBChance = 0.3
)

// GenerateOptions 生成参数
type GenerateOptions struct {
	Width           int
	Height          int
	Density         float64 // 初始障碍概率
	SmoothingPasses int     // 平滑次数
	SafeZoneRadius  int     // 中心安全区半径（方形，格）
	ObstacleBChance float64 // 障碍转为次样式的概率
}

// OptionsFromBiome 从群系配置构建生成参数
func OptionsFromBiome(biome *config.BiomeConfig) GenerateOptions {
	return GenerateOptions{
		Width:           biome.Width,
		Height:          biome.Height,
		Density:         biome.Density,
		SmoothingPasses: biome.SmoothingPasses,
		SafeZoneRadius:  biome.SafeZoneRadius,
		ObstacleBChance: biome.ObstacleBChance,
	}
}

// Generate 使用默认平滑次数、安全区和次样式概率生成竞技场
//
// 生成不会失败：密度为 0 得到全空地（边界除外），密度为 1 得到全障碍（安全区除外）。
func Generate(width, height int, density float64, rng utils.Random) *Arena {
	return GenerateWithOptions(GenerateOptions{
		Width:           width,
		Height:          height,
		Density:         density,
		SmoothingPasses: DefaultSmoothingPasses,
		SafeZoneRadius:  DefaultSafeZoneRadius,
		ObstacleBChance: DefaultObstacleBChance,
	}, rng)
}

// GenerateWithOptions 按完整参数生成竞技场
//
// 步骤：
//  1. 边界格为障碍，内部格以 Density 概率为障碍
//  2. 元胞自动机平滑：每次读取上一轮快照，8 邻域障碍数 > 4 变障碍、< 4 变空地、== 4 不变；
//     内部没有任何障碍时不平滑
//  3. 强制中心安全区为空地
//  4. 每个障碍格以 ObstacleBChance 概率转为 CellObstacleB
func GenerateWithOptions(opts GenerateOptions, rng utils.Random) *Arena {
	w, h := opts.Width, opts.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	a := newArena(w, h)
	interiorSolid := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.isBorder(x, y) {
				a.set(x, y, types.CellObstacleA)
			} else if utils.Chance(rng, opts.Density) {
				a.set(x, y, types.CellObstacleA)
				interiorSolid++
			}
		}
	}

	// 内部没有噪声障碍时跳过平滑，否则边界会把四个内角填成障碍
	if interiorSolid > 0 {
		for i := 0; i < opts.SmoothingPasses; i++ {
			a.smooth()
		}
	}

	a.clearSafeZone(opts.SafeZoneRadius)

	for i, c := range a.cells {
		if c.IsSolid() && utils.Chance(rng, opts.ObstacleBChance) {
			a.cells[i] = types.CellObstacleB
		}
	}

	log.Printf("[ArenaGenerator] Generated %dx%d arena (density=%.2f, open=%d)", w, h, opts.Density, a.CountOpen())
	return a
}

func (a *Arena) isBorder(x, y int) bool {
	return x == 0 || y == 0 || x == a.Width-1 || y == a.Height-1
}

// smooth 执行一轮平滑，只读取本轮开始前的快照
func (a *Arena) smooth() {
	snapshot := &Arena{Width: a.Width, Height: a.Height, cells: append([]types.CellType(nil), a.cells...)}

	for y := 1; y < a.Height-1; y++ {
		for x := 1; x < a.Width-1; x++ {
			n := snapshot.solidNeighbors(x, y)
			if n > 4 {
				a.set(x, y, types.CellObstacleA)
			} else if n < 4 {
				a.set(x, y, types.CellOpen)
			}
		}
	}
}

// solidNeighbors 统计 8 邻域中的障碍数量，越界计为障碍
func (a *Arena) solidNeighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if a.IsSolid(x+dx, y+dy) {
				count++
			}
		}
	}
	return count
}

// clearSafeZone 把中心 (Width/2, Height/2) 周围半径 r 内的格子强制为空地
// 安全区不会覆盖边界
func (a *Arena) clearSafeZone(r int) {
	cx, cy := a.Width/2, a.Height/2
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !a.InBounds(x, y) || a.isBorder(x, y) {
				continue
			}
			a.set(x, y, types.CellOpen)
		}
	}
}

// InSafeZone 判断格子是否位于半径 r 的中心安全区内（不含边界）
func (a *Arena) InSafeZone(x, y, r int) bool {
	cx, cy := a.Width/2, a.Height/2
	if a.isBorder(x, y) {
		return false
	}
	return x >= cx-r && x <= cx+r && y >= cy-r && y <= cy+r
}
