package game

import (
	"errors"
	"fmt"
)

//go:generate go tool mockgen -destination=./mocks/ledger_mock.go -package=mocks . CurrencyLedger

// ErrNegativeAmount 存入负数金额
var ErrNegativeAmount = errors.New("currency amount cannot be negative")

// CurrencyLedger 金币账本端口
//
// 模拟核心只在拾取金币和波次奖励时调用 Deposit，持久化由实现方负责。
type CurrencyLedger interface {
	Deposit(amount int) error
	Balance() int
}

// MemoryLedger 仅在内存中记账
type MemoryLedger struct {
	balance int
}

// NewMemoryLedger 创建内存账本
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Deposit 存入金币
func (l *MemoryLedger) Deposit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("deposit %d: %w", amount, ErrNegativeAmount)
	}
	l.balance += amount
	return nil
}

// Balance 返回当前余额
func (l *MemoryLedger) Balance() int {
	return l.balance
}
