package components

// PositionComponent 存储实体的世界坐标（连续坐标，1.0 = 一个格子）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的速度（单位/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
