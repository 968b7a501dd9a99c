package pokerdealer

import (
	"errors"
	"time"
)

var (
	ErrUnknownAction           = errors.New("table: unknown action")
	ErrInvalidPayload          = errors.New("table: invalid payload")
	ErrTableNotFound           = errors.New("table: table not found")
	ErrTableAlreadyExists      = errors.New("table: table already exists")
	ErrPlayerNotFound          = errors.New("table: player not found")
	ErrPlayerAlreadySeated     = errors.New("table: player already seated")
	ErrPlayerInHand            = errors.New("table: player has chips committed to the hand in progress")
	ErrInvalidSeat             = errors.New("table: invalid seat")
	ErrSeatTaken               = errors.New("table: seat is taken")
	ErrHandInProgress          = errors.New("table: hand in progress")
	ErrHandNotInProgress       = errors.New("table: hand not in progress")
	ErrNotEnoughPlayers        = errors.New("table: not enough players")
	ErrNotPlayerTurn           = errors.New("table: not player's turn")
	ErrInvalidAction           = errors.New("table: invalid action")
	ErrInvalidAmount           = errors.New("table: invalid amount")
	ErrActionPending           = errors.New("table: action still pending in current round")
	ErrNotShowdown             = errors.New("table: hand is not at showdown")
	ErrDistributionInProgress  = errors.New("table: pot distribution in progress")
	ErrNoDistribution          = errors.New("table: no pot distribution in progress")
	ErrPartialAward            = errors.New("table: partial award before showdown")
	ErrTournamentNotFound      = errors.New("tournament: tournament not found")
	ErrTournamentAlreadyExists = errors.New("tournament: tournament already exists")
	ErrTournamentStarted       = errors.New("tournament: tournament already started")
	ErrTournamentNotStarted    = errors.New("tournament: tournament not started")
	ErrBlindLevelIsBreak       = errors.New("tournament: current blind level is a break")
	ErrBlindLevelInUse         = errors.New("tournament: blind level in use")
	ErrClockPaused             = errors.New("tournament: blind clock is paused")
	ErrClockNotPaused          = errors.New("tournament: blind clock is not paused")
	ErrStaleBlindLevel         = errors.New("tournament: stale blind level")
)

type EffectKind string

const (
	EffectKind_StartBlindClock  EffectKind = "StartBlindClock"
	EffectKind_StopBlindClock   EffectKind = "StopBlindClock"
	EffectKind_HandEnded        EffectKind = "HandEnded"
	EffectKind_TableClosed      EffectKind = "TableClosed"
	EffectKind_PlayerEliminated EffectKind = "PlayerEliminated"
)

// Effect is a side effect requested by a state transition and executed by the engine.
type Effect struct {
	Kind         EffectKind   `json:"kind"`
	TournamentID string       `json:"tournament_id,omitempty"`
	TableID      string       `json:"table_id,omitempty"`
	PlayerID     string       `json:"player_id,omitempty"`
	Hand         *HandSummary `json:"hand,omitempty"`
}

type reduction struct {
	state   *GameState
	now     time.Time
	effects []Effect
}

type handlerFunc func(*reduction, Payload) error

/*
Reduce 處理單一訊息
  - 先複製狀態，處理器只會修改複本
  - 失敗時回傳原本的狀態與錯誤，不產生任何副作用
*/
func Reduce(state *GameState, msg Message, now time.Time) (*GameState, []Effect, error) {
	handlers := map[ActionKind]handlerFunc{
		// Hand
		ActionKind_StartHand:           handleStartHand,
		ActionKind_Fold:                handleFold,
		ActionKind_Check:               handleCheck,
		ActionKind_Call:                handleCall,
		ActionKind_Bet:                 handleBet,
		ActionKind_Raise:               handleRaise,
		ActionKind_AllIn:               handleAllIn,
		ActionKind_AdvanceBettingRound: handleAdvanceBettingRound,
		ActionKind_MoveDealerButton:    handleMoveDealerButton,
		ActionKind_ResetHand:           handleResetHand,

		// Pot Distribution
		ActionKind_StartPotDistribution:   handleStartPotDistribution,
		ActionKind_TogglePotWinner:        handleTogglePotWinner,
		ActionKind_DeliverCurrentPot:      handleDeliverCurrentPot,
		ActionKind_DeliverAllEligiblePots: handleDeliverAllEligiblePots,
		ActionKind_AwardPot:               handleAwardPot,

		// Tournament
		ActionKind_CreateTournament:      handleCreateTournament,
		ActionKind_UpdateBlindStructure:  handleUpdateBlindStructure,
		ActionKind_EditBlindLevel:        handleEditBlindLevel,
		ActionKind_InsertBlindLevel:      handleInsertBlindLevel,
		ActionKind_RemoveBlindLevel:      handleRemoveBlindLevel,
		ActionKind_StartTournament:       handleStartTournament,
		ActionKind_StopTournament:        handleStopTournament,
		ActionKind_PauseBlindClock:       handlePauseBlindClock,
		ActionKind_ResumeBlindClock:      handleResumeBlindClock,
		ActionKind_AdvanceBlindLevel:     handleAdvanceBlindLevel,
		ActionKind_AutoAdvanceBlindLevel: handleAutoAdvanceBlindLevel,

		// Table & Player
		ActionKind_CreateTable:  handleCreateTable,
		ActionKind_CloseTable:   handleCloseTable,
		ActionKind_SeatPlayer:   handleSeatPlayer,
		ActionKind_RemovePlayer: handleRemovePlayer,
		ActionKind_AddChips:     handleAddChips,
	}

	handler, ok := handlers[msg.Type]
	if !ok {
		return state, nil, ErrUnknownAction
	}

	if state == nil {
		state = NewGameState()
	}

	next, err := state.Clone()
	if err != nil {
		return state, nil, err
	}

	r := &reduction{
		state:   next,
		now:     now,
		effects: make([]Effect, 0),
	}

	if err := handler(r, msg.Payload); err != nil {
		return state, nil, err
	}

	next.RefreshUpdateAt(now)

	return next, r.effects, nil
}

func (r *reduction) emit(effect Effect) {
	r.effects = append(r.effects, effect)
}

func (r *reduction) table(tableID string) (*TableState, error) {
	table, exist := r.state.Tables[tableID]
	if !exist {
		return nil, ErrTableNotFound
	}
	return table, nil
}

func (r *reduction) tournament(tournamentID string) (*Tournament, error) {
	t, exist := r.state.Tournaments[tournamentID]
	if !exist {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

func (r *reduction) player(playerID string) (*Player, error) {
	p, exist := r.state.Players[playerID]
	if !exist {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// tablePlayer resolves a player that must be seated at the given table.
func (r *reduction) tablePlayer(table *TableState, playerID string) (*Player, error) {
	p, err := r.player(playerID)
	if err != nil {
		return nil, err
	}

	if p.TableID != table.ID {
		return nil, ErrPlayerNotFound
	}

	return p, nil
}
