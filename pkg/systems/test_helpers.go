package systems

import (
	"math"

	"github.com/foumildo44/vampire-survivor/pkg/arena"
	"github.com/foumildo44/vampire-survivor/pkg/components"
	"github.com/foumildo44/vampire-survivor/pkg/config"
	"github.com/foumildo44/vampire-survivor/pkg/ecs"
	"github.com/foumildo44/vampire-survivor/pkg/entities"
	"github.com/foumildo44/vampire-survivor/pkg/events"
	"github.com/foumildo44/vampire-survivor/pkg/types"
	"github.com/foumildo44/vampire-survivor/pkg/utils"
)

// testWorld 测试用的最小模拟环境
// 40×40 竞技场（边界为障碍，内部全空地），玩家位于中心 (20.5, 20.5)
type testWorld struct {
	cfg      *config.GameConfig
	arena    *arena.Arena
	store    *entities.Store
	bus      *events.Bus
	rng      *utils.SequenceRandom
	resolver *CombatResolver
	player   ecs.EntityID
}

// newTestWorld 创建测试环境，values 为随机源循环返回的序列（默认 0.5：掉落无散布、概率判定失败）
func newTestWorld(values ...float64) *testWorld {
	return newTestWorldWithArena(arena.Generate(40, 40, 0, utils.NewSeededRandom(1)), values...)
}

func newTestWorldWithArena(a *arena.Arena, values ...float64) *testWorld {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	cfg := config.DefaultGameConfig()
	rng := &utils.SequenceRandom{Values: values}
	store := entities.NewStore(ecs.NewEntityManager(), cfg, rng)
	bus := events.NewBus()

	w := &testWorld{
		cfg:      cfg,
		arena:    a,
		store:    store,
		bus:      bus,
		rng:      rng,
		resolver: NewCombatResolver(store, a, bus, rng),
	}
	w.player = store.CreatePlayer(a.SpawnPoint())
	return w
}

func (w *testWorld) em() *ecs.EntityManager {
	return w.store.EntityManager()
}

func (w *testWorld) spawn(archetype types.EnemyArchetype, tier components.EnemyTier, x, y float64) ecs.EntityID {
	id, ok := w.store.CreateEnemy(archetype, tier, x, y)
	if !ok {
		panic("CreateEnemy failed for " + archetype.String())
	}
	return id
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	h, _ := w.store.Health(id)
	return h
}

func (w *testWorld) playerComponent() *components.PlayerComponent {
	pc, _ := ecs.GetComponent[*components.PlayerComponent](w.em(), w.player)
	return pc
}

func (w *testWorld) weapons() *components.WeaponsComponent {
	wc, _ := ecs.GetComponent[*components.WeaponsComponent](w.em(), w.player)
	return wc
}

// dropsOf 统计未拾取的指定种类掉落物
func (w *testWorld) dropsOf(kind types.DropKind) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.DropComponent](w.em()) {
		if d, _ := ecs.GetComponent[*components.DropComponent](w.em(), id); d.Kind == kind && !d.Collected {
			n++
		}
	}
	return n
}

func (w *testWorld) projectiles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em())
}

func (w *testWorld) eventsOfType(t events.Type) []events.Event {
	var out []events.Event
	for _, e := range w.bus.Drain() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
