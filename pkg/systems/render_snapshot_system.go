package systems

import (
	"sort"

	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
)

// RenderKind 渲染记录的实体类别
type RenderKind string

const (
	RenderPlayer     RenderKind = "player"
	RenderEnemy      RenderKind = "enemy"
	RenderProjectile RenderKind = "projectile"
	RenderDrop       RenderKind = "drop"
)

// RenderRecord 一条渲染记录
type RenderRecord struct {
	ID   ecs.EntityID `json:"id"`
	Kind RenderKind   `json:"kind"`
	X    float64      `json:"x"`
	Y    float64      `json:"y"`

	// Depth 深度排序键（y 坐标）
	Depth float64 `json:"depth"`
	// State 视觉状态标签：敌人为类型名，掉落物为种类，玩家为 idle/moving/dashing/dead
	State string `json:"state"`

	Health    float64 `json:"health,omitempty"`
	MaxHealth float64 `json:"maxHealth,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Facing    float64 `json:"facing,omitempty"`
	Elite     string  `json:"elite,omitempty"`
	Boss      bool    `json:"boss,omitempty"`
}

// ChainLine 闪电链折线
type ChainLine struct {
	Points    [][2]float64 `json:"points"`
	Intensity float64      `json:"intensity"` // 1 → 0 随生命周期衰减
}

// HUD 界面数值
type HUD struct {
	Health         float64 `json:"health"`
	MaxHealth      float64 `json:"maxHealth"`
	Level          int     `json:"level"`
	XP             float64 `json:"xp"`
	XPToNext       float64 `json:"xpToNext"`
	Wave           int     `json:"wave"`
	WaveActive     bool    `json:"waveActive"`
	BreakRemaining float64 `json:"breakRemaining"`
	Kills          int     `json:"kills"`
	Elapsed        float64 `json:"elapsed"`
	Gold           int     `json:"gold"`
	EnemiesAlive   int     `json:"enemiesAlive"`
	DashReady      bool    `json:"dashReady"`
}

// Snapshot 每帧输出给宿主的渲染数据
type Snapshot struct {
	Records []RenderRecord `json:"records"`
	Chains  []ChainLine    `json:"chains"`
	HUD     HUD            `json:"hud"`
}

// RenderSnapshotSystem 从实体仓库生成渲染快照
//
// 排序规则：飞行道具总是最后绘制；其余按 y 再按 x 升序（近似深度），
// 相同坐标保持实体ID顺序。
type RenderSnapshotSystem struct {
	store  *entities.Store
	player *PlayerSystem
}

// NewRenderSnapshotSystem 创建渲染快照系统
// player 用于读取当前移动意图以区分 idle/moving，可为 nil
func NewRenderSnapshotSystem(store *entities.Store, player *PlayerSystem) *RenderSnapshotSystem {
	return &RenderSnapshotSystem{store: store, player: player}
}

// Build 生成快照，HUD 由调用方填充统计数据后传入
func (s *RenderSnapshotSystem) Build(hud HUD) Snapshot {
	em := s.store.EntityManager()
	records := make([]RenderRecord, 0, em.EntityCount())

	if rec, ok := s.playerRecord(&hud); ok {
		records = append(records, rec)
	}

	for _, id := range s.store.Enemies() {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		pos, _ := s.store.Position(id)
		health, _ := s.store.Health(id)
		rec := RenderRecord{
			ID:        id,
			Kind:      RenderEnemy,
			X:         pos.X,
			Y:         pos.Y,
			Depth:     pos.Y,
			State:     enemy.Archetype.String(),
			Health:    health.Current,
			MaxHealth: health.Max,
			Scale:     enemy.Scale,
			Boss:      enemy.Tier.IsBoss(),
		}
		if enemy.Tier.IsElite() {
			rec.Elite = enemy.Tier.Elite.String()
		}
		records = append(records, rec)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.DropComponent, *components.PositionComponent](em) {
		drop, _ := ecs.GetComponent[*components.DropComponent](em, id)
		if drop.Collected || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := s.store.Position(id)
		records = append(records, RenderRecord{
			ID:    id,
			Kind:  RenderDrop,
			X:     pos.X,
			Y:     pos.Y,
			Depth: pos.Y,
			State: drop.Kind.String(),
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](em) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Spent || em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := s.store.Position(id)
		records = append(records, RenderRecord{
			ID:    id,
			Kind:  RenderProjectile,
			X:     pos.X,
			Y:     pos.Y,
			Depth: pos.Y,
			State: proj.Weapon.String(),
		})
	}

	SortRenderRecords(records)

	return Snapshot{
		Records: records,
		Chains:  s.chainLines(),
		HUD:     hud,
	}
}

func (s *RenderSnapshotSystem) playerRecord(hud *HUD) (RenderRecord, bool) {
	em := s.store.EntityManager()
	id := s.store.Player()
	pos, ok := s.store.Position(id)
	if !ok {
		return RenderRecord{}, false
	}
	health, _ := s.store.Health(id)
	pc, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	dash, _ := ecs.GetComponent[*components.DashComponent](em, id)

	state := "idle"
	switch {
	case health.Dead:
		state = "dead"
	case dash.IsDashing:
		state = "dashing"
	case s.player != nil && (s.player.Intent().X != 0 || s.player.Intent().Y != 0):
		state = "moving"
	}

	hud.Health, hud.MaxHealth = health.Current, health.Max
	hud.Level, hud.XP, hud.XPToNext = pc.Level, pc.XP, pc.XPToNext
	hud.DashReady = !dash.IsDashing && dash.CooldownTimer <= 0

	return RenderRecord{
		ID:        id,
		Kind:      RenderPlayer,
		X:         pos.X,
		Y:         pos.Y,
		Depth:     pos.Y,
		State:     state,
		Health:    health.Current,
		MaxHealth: health.Max,
		Scale:     1,
		Facing:    pc.Facing,
	}, true
}

func (s *RenderSnapshotSystem) chainLines() []ChainLine {
	em := s.store.EntityManager()
	lines := make([]ChainLine, 0)
	for _, id := range ecs.GetEntitiesWith2[*components.ChainEffectComponent, *components.LifetimeComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		chain, _ := ecs.GetComponent[*components.ChainEffectComponent](em, id)
		lt, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)

		points := make([][2]float64, len(chain.Waypoints))
		for i, wp := range chain.Waypoints {
			points[i] = [2]float64{wp.X, wp.Y}
		}
		intensity := 1.0
		if lt.MaxLifetime > 0 {
			intensity = 1 - lt.CurrentLifetime/lt.MaxLifetime
		}
		lines = append(lines, ChainLine{Points: points, Intensity: intensity})
	}
	return lines
}

// SortRenderRecords 按渲染顺序排序：飞行道具最后，其余按 y、x 升序
func SortRenderRecords(records []RenderRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		ap, bp := a.Kind == RenderProjectile, b.Kind == RenderProjectile
		if ap != bp {
			return bp
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
