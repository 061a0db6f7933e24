package events

//go:generate go tool mockgen -destination=./mocks/sink_mock.go -package=mocks . Sink

// Sink 是系统发布通知的端口
type Sink interface {
	Emit(e Event)
}

// Listener 订阅者接口
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc 函数适配器
type ListenerFunc func(e Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Bus 事件总线
//
// Emit 同步分发给订阅者，同时把事件缓存到本 tick 的队列中，
// 宿主可以在每帧末尾调用 Drain 一次性取走（例如通过网络推送）。
type Bus struct {
	listeners map[Type][]Listener
	pending   []Event
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe 订阅指定类型的事件
func (b *Bus) Subscribe(t Type, l Listener) {
	b.listeners[t] = append(b.listeners[t], l)
}

// Emit 发布事件
func (b *Bus) Emit(e Event) {
	b.pending = append(b.pending, e)
	for _, l := range b.listeners[e.Type] {
		l.OnEvent(e)
	}
}

// Drain 取走并清空缓存的事件（按发布顺序）
func (b *Bus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

// Pending 返回缓存事件数量
func (b *Bus) Pending() int {
	return len(b.pending)
}

// Discard 是丢弃一切事件的 Sink
type Discard struct{}

// Emit 丢弃事件
func (Discard) Emit(Event) {}
