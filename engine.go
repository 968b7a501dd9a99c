package pokerdealer

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/weedbox/pokerdealer/blind"
	"github.com/weedbox/pokerdealer/open_game_manager"
)

var (
	ErrEngineClosed     = errors.New("engine: closed")
	ErrTableNotWaiting  = errors.New("engine: table is not waiting for players")
	ErrClockUnavailable = errors.New("engine: tournament has no blind level")
)

// OpenGameSenderID marks hands opened automatically once every participant is ready.
const OpenGameSenderID = "open_game_manager"

// Store persists snapshots and archives finished hands.
type Store interface {
	SaveSnapshot(state *GameState) error
	AppendHandHistory(summary HandSummary) error
}

type ClockStatus struct {
	TournamentID     string      `json:"tournament_id"`
	LevelIndex       int         `json:"level_index"`
	Level            blind.Level `json:"level"`
	RemainingSeconds int64       `json:"remaining_seconds"`
	IsPaused         bool        `json:"is_paused"`
	IsStopped        bool        `json:"is_stopped"`
	IsRunning        bool        `json:"is_running"` // 計時器是否在執行
}

type request struct {
	msg  Message
	done chan error
}

/*
Engine 持有唯一的權威狀態
  - 所有訊息經由 incoming 依序處理，一次只處理一個
  - 盲注計時器只會送出訊息，不會直接修改狀態
*/
type Engine struct {
	mu             sync.RWMutex
	options        *EngineOptions
	state          *GameState
	store          Store
	now            func() time.Time
	incoming       chan *request
	closed         chan struct{}
	closeOnce      sync.Once
	clocks         *blind.ClockManager
	gatesMu        sync.Mutex
	gates          map[string]open_game_manager.OpenGameManager
	onStateUpdated func(*GameState)
	onErrorUpdated func(Message, error)
	onHandEnded    func(HandSummary)
}

func NewEngine(options *EngineOptions, opts ...EngineOpt) *Engine {
	if options == nil {
		options = NewEngineOptions()
	}

	callbacks := NewEngineCallbacks()
	e := &Engine{
		options:        options,
		state:          NewGameState(),
		now:            time.Now,
		closed:         make(chan struct{}),
		gates:          make(map[string]open_game_manager.OpenGameManager),
		onStateUpdated: callbacks.OnStateUpdated,
		onErrorUpdated: callbacks.OnErrorUpdated,
		onHandEnded:    callbacks.OnHandEnded,
	}

	for _, opt := range opts {
		opt(e)
	}

	queueSize := options.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}
	e.incoming = make(chan *request, queueSize)

	e.clocks = blind.NewClockManager(
		e.readClock,
		e.onClockExpired,
		blind.WithTickInterval(options.ClockInterval),
		blind.WithNow(e.now),
	)

	go e.run()

	e.resumeClocks()

	return e
}

// Close stops the run loop, every blind clock and every readiness gate.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.closed)
		e.clocks.StopAll()

		e.gatesMu.Lock()
		gates := e.gates
		e.gates = make(map[string]open_game_manager.OpenGameManager)
		e.gatesMu.Unlock()

		for _, gate := range gates {
			gate.Stop()
		}
	})
}

// Dispatch enqueues a message and waits until it has been handled.
func (e *Engine) Dispatch(msg Message) error {
	req := &request{
		msg:  msg,
		done: make(chan error, 1),
	}

	select {
	case e.incoming <- req:
	case <-e.closed:
		return ErrEngineClosed
	}

	select {
	case err := <-req.done:
		return err
	case <-e.closed:
		return ErrEngineClosed
	}
}

// Submit enqueues a message without waiting for the result.
func (e *Engine) Submit(msg Message) error {
	select {
	case e.incoming <- &request{msg: msg}:
		return nil
	case <-e.closed:
		return ErrEngineClosed
	}
}

// GetState returns a copy of the current state.
func (e *Engine) GetState() *GameState {
	state, err := e.current().Clone()
	if err != nil {
		logrus.Errorf("failed to clone state: %v", err)
		return NewGameState()
	}
	return state
}

func (e *Engine) Snapshot() ([]byte, error) {
	return e.current().Snapshot()
}

func (e *Engine) ClockStatus(tournamentID string) (ClockStatus, error) {
	state := e.current()
	t, exist := state.Tournaments[tournamentID]
	if !exist {
		return ClockStatus{}, ErrTournamentNotFound
	}

	level, ok := t.CurrentLevel()
	if !ok {
		return ClockStatus{}, ErrClockUnavailable
	}

	snapshot := t.ClockSnapshot()
	status := ClockStatus{
		TournamentID:     t.ID,
		LevelIndex:       t.CurrentLevelIndex,
		Level:            level,
		RemainingSeconds: int64(snapshot.Remaining(e.now()) / time.Second),
		IsPaused:         t.IsPaused(),
		IsStopped:        snapshot.Stopped,
	}

	if c, exist := e.clocks.Get(tournamentID); exist {
		status.IsRunning = c.IsRunning()
	}

	return status, nil
}

// PlayerReady reports a participant ready for the next automatically opened hand.
func (e *Engine) PlayerReady(tableID string, playerID string) error {
	e.gatesMu.Lock()
	gate, exist := e.gates[tableID]
	e.gatesMu.Unlock()

	if !exist {
		return ErrTableNotWaiting
	}

	return gate.Ready(playerID)
}

func (e *Engine) current() *GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) run() {
	for {
		select {
		case req := <-e.incoming:
			err := e.handle(req.msg)
			if req.done != nil {
				req.done <- err
			}
		case <-e.closed:
			return
		}
	}
}

func (e *Engine) handle(msg Message) error {
	next, effects, err := Reduce(e.current(), msg, e.now())
	if err != nil {
		e.emitErrorEvent(msg, err)
		return err
	}

	e.mu.Lock()
	e.state = next
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.SaveSnapshot(next); err != nil {
			logrus.WithField("action", msg.Type).Errorf("failed to save snapshot: %v", err)
		}
	}

	e.applyEffects(effects)
	e.emitEvent(msg, next)

	return nil
}

func (e *Engine) applyEffects(effects []Effect) {
	for _, effect := range effects {
		switch effect.Kind {
		case EffectKind_StartBlindClock:
			e.clocks.Start(effect.TournamentID)
		case EffectKind_StopBlindClock:
			e.clocks.Stop(effect.TournamentID)
		case EffectKind_HandEnded:
			if effect.Hand == nil {
				continue
			}
			if e.store != nil {
				if err := e.store.AppendHandHistory(*effect.Hand); err != nil {
					logrus.WithField("table_id", effect.TableID).Errorf("failed to archive hand: %v", err)
				}
			}
			e.emitHandEnded(*effect.Hand)
			e.openNextHand(effect.TableID)
		case EffectKind_TableClosed:
			e.closeGate(effect.TableID)
		case EffectKind_PlayerEliminated:
			logrus.WithFields(logrus.Fields{
				"table_id":      effect.TableID,
				"tournament_id": effect.TournamentID,
				"player_id":     effect.PlayerID,
			}).Info("player eliminated")
		}
	}
}

func (e *Engine) resumeClocks() {
	for id, t := range e.current().Tournaments {
		if t.IsStarted && !t.ClockStopped {
			e.clocks.Start(id)
		}
	}
}

func (e *Engine) readClock(tournamentID string) (blind.ClockSnapshot, bool) {
	t, exist := e.current().Tournaments[tournamentID]
	if !exist {
		return blind.ClockSnapshot{}, false
	}
	return t.ClockSnapshot(), true
}

func (e *Engine) onClockExpired(tournamentID string, levelIndex int) {
	msg := NewMessage(ActionKind_AutoAdvanceBlindLevel, ClockSenderID, Payload{
		TournamentID: tournamentID,
		LevelIndex:   levelIndex,
	})

	if err := e.Submit(msg); err != nil {
		logrus.WithField("tournament_id", tournamentID).Warnf("failed to submit blind level advance: %v", err)
	}
}

/*
openNextHand 自動開下一手
  - 只處理 AutoStartNextHand 的桌
  - 所有參與者準備 (或逾時) 後先移動按鈕，再送出 START_HAND
*/
func (e *Engine) openNextHand(tableID string) {
	state := e.current()
	table, exist := state.Tables[tableID]
	if !exist || !table.AutoStartNextHand {
		return
	}

	participants := make(map[string]int)
	for _, p := range state.TablePlayers(tableID) {
		if hasChips(p) {
			participants[p.ID] = p.Seat
		}
	}

	if len(participants) < 2 {
		return
	}

	var gate open_game_manager.OpenGameManager
	gate = open_game_manager.NewOpenGameManager(open_game_manager.OpenGameOption{
		TableID: tableID,
		Timeout: e.options.ReadyTimeout,
		OnOpenGameReady: func(s open_game_manager.OpenGameState) {
			e.gatesMu.Lock()
			if e.gates[s.TableID] == gate {
				delete(e.gates, s.TableID)
			}
			e.gatesMu.Unlock()

			if err := e.Submit(NewMessage(ActionKind_MoveDealerButton, OpenGameSenderID, Payload{TableID: s.TableID})); err != nil {
				logrus.WithField("table_id", s.TableID).Warnf("failed to move dealer button: %v", err)
				return
			}

			if err := e.Submit(NewMessage(ActionKind_StartHand, OpenGameSenderID, Payload{TableID: s.TableID})); err != nil {
				logrus.WithField("table_id", s.TableID).Warnf("failed to open next hand: %v", err)
			}
		},
	})

	e.closeGate(tableID)

	e.gatesMu.Lock()
	e.gates[tableID] = gate
	e.gatesMu.Unlock()

	if err := gate.Setup(table.HandCount+1, participants); err != nil {
		logrus.WithField("table_id", tableID).Warnf("failed to wait for players: %v", err)
	}
}

func (e *Engine) closeGate(tableID string) {
	e.gatesMu.Lock()
	gate, exist := e.gates[tableID]
	delete(e.gates, tableID)
	e.gatesMu.Unlock()

	if exist {
		gate.Stop()
	}
}
