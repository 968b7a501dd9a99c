package pokerdealer

import (
	"time"

	"github.com/weedbox/pokerdealer/blind"
)

type EngineCallbacks struct {
	OnStateUpdated func(state *GameState)
	OnErrorUpdated func(msg Message, err error)
	OnHandEnded    func(summary HandSummary)
}

func NewEngineCallbacks() *EngineCallbacks {
	return &EngineCallbacks{
		OnStateUpdated: func(*GameState) {},
		OnErrorUpdated: func(Message, error) {},
		OnHandEnded:    func(HandSummary) {},
	}
}

type EngineOptions struct {
	ClockInterval time.Duration // 盲注計時器檢查間隔
	ReadyTimeout  int           // 自動開下一手前等待玩家準備的秒數
	QueueSize     int           // 訊息佇列長度
}

func NewEngineOptions() *EngineOptions {
	return &EngineOptions{
		ClockInterval: blind.DefaultTickInterval,
		ReadyTimeout:  10,
		QueueSize:     1024,
	}
}

type EngineOpt func(*Engine)

func WithStore(store Store) EngineOpt {
	return func(e *Engine) {
		e.store = store
	}
}

// WithState restores a previously saved state.
func WithState(state *GameState) EngineOpt {
	return func(e *Engine) {
		if state != nil {
			e.state = state
		}
	}
}

func WithCallbacks(callbacks *EngineCallbacks) EngineOpt {
	return func(e *Engine) {
		if callbacks.OnStateUpdated != nil {
			e.onStateUpdated = callbacks.OnStateUpdated
		}
		if callbacks.OnErrorUpdated != nil {
			e.onErrorUpdated = callbacks.OnErrorUpdated
		}
		if callbacks.OnHandEnded != nil {
			e.onHandEnded = callbacks.OnHandEnded
		}
	}
}

// WithNow replaces the wall clock used for state timestamps and the blind clocks.
func WithNow(now func() time.Time) EngineOpt {
	return func(e *Engine) {
		e.now = now
	}
}
