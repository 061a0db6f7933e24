package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LedgerData 持久化的账本数据
type LedgerData struct {
	Balance        int `yaml:"balance"`        // 当前余额
	LifetimeEarned int `yaml:"lifetimeEarned"` // 累计获得
	Runs           int `yaml:"runs"`           // 已完成的对局数
}

// 存储路径常量
const (
	ledgerObject   = "ledger"
	ledgerProperty = "currency"
)

// GdataLedger 基于 gdata 的持久化金币账本
//
// Deposit 只修改内存并标记为脏，Save 时才写入存储，
// 避免在每次拾取时触发磁盘写入。
type GdataLedger struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存记账）
	data         LedgerData
	dirty        bool
}

// NewGdataLedger 创建持久化账本并尝试加载已保存的数据
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *GdataLedger: 账本实例（加载失败时使用空账本）
func NewGdataLedger(gdataManager *gdata.Manager) *GdataLedger {
	l := &GdataLedger{gdataManager: gdataManager}
	if err := l.Load(); err != nil {
		// 加载失败不是致命错误，使用空账本
		log.Printf("[GdataLedger] Warning: Failed to load ledger: %v (starting empty)", err)
	}
	return l
}

// OpenGdataLedger 按应用名打开 gdata 存储并创建账本
// gdata 初始化失败时返回降级模式的账本
func OpenGdataLedger(appName string) *GdataLedger {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GdataLedger] Warning: gdata unavailable: %v (ledger will not persist)", err)
		manager = nil
	}
	return NewGdataLedger(manager)
}

// Load 从 gdata 加载账本
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (l *GdataLedger) Load() error {
	l.data = LedgerData{}
	l.dirty = false

	// 降级模式：无法持久化
	if l.gdataManager == nil {
		return nil
	}
	if !l.gdataManager.ObjectPropExists(ledgerObject, ledgerProperty) {
		return nil
	}

	raw, err := l.gdataManager.LoadObjectProp(ledgerObject, ledgerProperty)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	var loaded LedgerData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal ledger: %w", err)
	}

	l.data = loaded
	log.Printf("[GdataLedger] Ledger loaded (balance=%d)", l.data.Balance)
	return nil
}

// Save 把账本写入 gdata（仅在有改动时）
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (l *GdataLedger) Save() error {
	if l.gdataManager == nil || !l.dirty {
		return nil
	}

	raw, err := yaml.Marshal(&l.data)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := l.gdataManager.SaveObjectProp(ledgerObject, ledgerProperty, raw); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	l.dirty = false
	log.Printf("[GdataLedger] Ledger saved (balance=%d)", l.data.Balance)
	return nil
}

// Deposit 存入金币
func (l *GdataLedger) Deposit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("deposit %d: %w", amount, ErrNegativeAmount)
	}
	l.data.Balance += amount
	l.data.LifetimeEarned += amount
	l.dirty = true
	return nil
}

// Balance 返回当前余额
func (l *GdataLedger) Balance() int {
	return l.data.Balance
}

// RecordRun 记录一局结束并立即保存
func (l *GdataLedger) RecordRun() error {
	l.data.Runs++
	l.dirty = true
	return l.Save()
}

// Data 返回账本数据副本
func (l *GdataLedger) Data() LedgerData {
	return l.data
}
