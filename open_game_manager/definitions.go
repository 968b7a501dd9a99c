package open_game_manager

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound   = errors.New("open_game_manager: participant not found")
	ErrNotEnoughParticipants = errors.New("open_game_manager: not enough participants")
)

// OpenGameManager gates the next hand of a table until every participant is ready.
type OpenGameManager interface {
	Ready(participantID string) error
	Setup(handCount int, participants map[string]int) error
	Stop()
	GetState() OpenGameState
}

type openGameManager struct {
	mu              sync.Mutex
	onOpenGameReady func(state OpenGameState)
	rg              *syncsaga.ReadyGroup
	state           *OpenGameState
}

type OpenGameOption struct {
	TableID         string
	Timeout         int // 等待準備秒數，逾時自動準備
	OnOpenGameReady func(state OpenGameState)
}

type OpenGameState struct {
	TableID      string                          `json:"table_id"`
	Timeout      int                             `json:"timeout"`
	HandCount    int                             `json:"hand_count"`
	Participants map[string]*OpenGameParticipant `json:"participants"` // key: player_id, value: participant
}

type OpenGameParticipant struct {
	ID      string `json:"id"`
	Seat    int    `json:"seat"`
	IsReady bool   `json:"is_ready"`
}
