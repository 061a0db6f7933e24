package config

// DefaultGameConfig 返回与 data/*.yaml 一致的内置配置
// 供测试和不带数据目录的工具使用；每次调用返回新的副本
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Biomes:   DefaultBiomes(),
		Enemies:  DefaultEnemyStats(),
		Waves:    DefaultWaves(),
		Player:   DefaultPlayer(),
		Upgrades: DefaultUpgrades(),
	}
}

// DefaultBiomes 默认群系：forest / snow / cursed
func DefaultBiomes() *BiomesConfig {
	biome := func(density float64, enemies ...EnemyWeight) BiomeConfig {
		return BiomeConfig{
			Width:           80,
			Height:          80,
			Density:         density,
			SmoothingPasses: 5,
			SafeZoneRadius:  6,
			ObstacleBChance: 0.3,
			Enemies:         enemies,
		}
	}
	return &BiomesConfig{
		Default: "forest",
		Biomes: map[string]BiomeConfig{
			"forest": biome(0.38, EnemyWeight{"skeleton", 70}, EnemyWeight{"zombie", 30}),
			"snow":   biome(0.35, EnemyWeight{"zombie", 50}, EnemyWeight{"lizard", 50}),
			"cursed": biome(0.40, EnemyWeight{"lizard", 60}, EnemyWeight{"demon", 40}),
		},
	}
}

// DefaultEnemyStats 默认敌人属性
func DefaultEnemyStats() *EnemyStatsConfig {
	return &EnemyStatsConfig{
		Enemies: map[string]EnemyStats{
			"skeleton": {Health: 20, Speed: 2.2, Scale: 1.3, XP: 10},
			"zombie":   {Health: 40, Speed: 1.5, Scale: 1.5, XP: 20},
			"lizard":   {Health: 60, Speed: 3.0, Scale: 1.0, XP: 30},
			"demon":    {Health: 100, Speed: 1.8, Scale: 1.9, XP: 50},
			"boss":     {Health: 500, Speed: 1.5, Scale: 1.2, XP: 200},
		},
		Elites: map[string]EliteConfig{
			"swift":     {Weight: 1, StatMultipliers: StatMultipliers{Health: 1.5, Speed: 2.0, Scale: 1.1, XP: 3}},
			"tank":      {Weight: 1, StatMultipliers: StatMultipliers{Health: 3.0, Speed: 0.7, Scale: 1.3, XP: 4}},
			"explosive": {Weight: 1, StatMultipliers: StatMultipliers{Health: 2.0, Speed: 1.2, Scale: 1.2, XP: 5}},
		},
		Boss:          StatMultipliers{Health: 5, Speed: 0.8, Scale: 1.5, XP: 10},
		Explosion:     ExplosionConfig{Radius: 3.0, Damage: 50},
		ContactDamage: ContactConfig{Range: 0.5, Normal: 10, Elite: 15, Boss: 20},
		Drops: DropTableConfig{
			GoldChance:      0.1,
			GoldValue:       10,
			EliteGoldValue:  25,
			BossGoldCount:   5,
			BossGoldValue:   50,
			BossGoldScatter: 1.0,
			HealthChance:    0,
			HealthValue:     20,
		},
	}
}

// DefaultWaves 默认波次调参
func DefaultWaves() *WaveConfig {
	return &WaveConfig{
		BreakDuration:      15,
		TargetBase:         10,
		TargetPerWave:      3,
		DifficultyBase:     1,
		DifficultyPerWave:  0.15,
		EliteChanceBase:    0.1,
		EliteChancePerWave: 0.02,
		EliteChanceCap:     0.4,
		SpawnIntervalStart: 2.0,
		SpawnIntervalDecay: 30,
		SpawnIntervalFloor: 0.3,
		SpawnDistanceMin:   8,
		SpawnDistanceMax:   15,
		BossInterval:       5,
		BossDistance:       12,
		XPRewardPerWave:    50,
		GoldRewardPerWave:  25,
	}
}

// DefaultPlayer 默认玩家属性与武器
func DefaultPlayer() *PlayerConfig {
	return &PlayerConfig{
		MaxHealth:      100,
		Speed:          6.0,
		XPToNext:       50,
		XPGrowth:       1.5,
		CritChance:     0,
		CritMultiplier: 2,
		Fireball: FireballConfig{
			Cooldown:  0.6,
			Range:     20,
			Speed:     30,
			Lifetime:  5,
			Damage:    10,
			HitRadius: 0.8,
			Stagger:   0.1,
		},
		Slash: SlashConfig{
			Cooldown:       1.5,
			CooldownFactor: 0.85,
			BaseRange:      3.0,
			RangePerLevel:  0.5,
			Damage:         25,
			Knockback:      1.5,
			UpgradeDelay:   0.1,
		},
		Lightning: LightningConfig{
			Cooldown:         2.0,
			CooldownFactor:   0.9,
			Damage:           30,
			ChainCount:       3,
			FirstRange:       15,
			HopRange:         5,
			Decay:            0.8,
			LevelDamageBonus: 0.2,
			LevelChainBonus:  0.5,
			EffectLifetime:   0.3,
		},
		Dash: DashConfig{Cooldown: 3.0, Duration: 0.2, Speed: 15},
		Pickup: PickupConfig{
			MagnetRadius:  3.0,
			CollectRadius: 0.5,
			Attraction:    5,
			DropLifetime:  30,
			DropScatter:   0.25,
		},
	}
}

// DefaultUpgrades 默认升级池
func DefaultUpgrades() *UpgradeConfig {
	return &UpgradeConfig{
		OptionsPerLevel: 3,
		RarityWeights: map[string]float64{
			"common":    50,
			"rare":      30,
			"epic":      15,
			"legendary": 5,
		},
		Upgrades: []UpgradeEntry{
			{ID: "heal", Title: "Potion of Life", Rarity: "common", Value: 0.5},
			{ID: "speed", Title: "Wind Boots", Rarity: "common", Value: 1.1},
			{ID: "maxhp", Title: "Titan Heart", Rarity: "common", Value: 20},
			{ID: "damage", Title: "Brute Force", Rarity: "rare", Value: 0.2},
			{ID: "attack_speed", Title: "Dexterity", Rarity: "rare", Value: 0.85},
			{ID: "slash", Title: "Spectral Blade", Rarity: "epic"},
			{ID: "lightning", Title: "Chain Lightning", Rarity: "epic"},
			{ID: "multishot", Title: "Multi-Cannon", Rarity: "legendary", Value: 1},
			{ID: "super_lightning", Title: "Thunderstorm", Rarity: "legendary"},
		},
	}
}
