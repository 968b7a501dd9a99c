package pokerdealer

import (
	"encoding/json"

	"github.com/weedbox/pokerdealer/blind"
)

type ActionKind string

const (
	// Hand
	ActionKind_StartHand           ActionKind = "START_HAND"
	ActionKind_Fold                ActionKind = "FOLD"
	ActionKind_Check               ActionKind = "CHECK"
	ActionKind_Call                ActionKind = "CALL"
	ActionKind_Bet                 ActionKind = "BET"
	ActionKind_Raise               ActionKind = "RAISE"
	ActionKind_AllIn               ActionKind = "ALL_IN"
	ActionKind_AdvanceBettingRound ActionKind = "ADVANCE_BETTING_ROUND"
	ActionKind_MoveDealerButton    ActionKind = "MOVE_DEALER_BUTTON"
	ActionKind_ResetHand           ActionKind = "RESET_HAND"

	// Pot Distribution
	ActionKind_StartPotDistribution   ActionKind = "START_POT_DISTRIBUTION"
	ActionKind_TogglePotWinner        ActionKind = "TOGGLE_POT_WINNER"
	ActionKind_DeliverCurrentPot      ActionKind = "DELIVER_CURRENT_POT"
	ActionKind_DeliverAllEligiblePots ActionKind = "DELIVER_ALL_ELIGIBLE_POTS"
	ActionKind_AwardPot               ActionKind = "AWARD_POT"

	// Tournament
	ActionKind_CreateTournament      ActionKind = "CREATE_TOURNAMENT"
	ActionKind_UpdateBlindStructure  ActionKind = "UPDATE_BLIND_STRUCTURE"
	ActionKind_EditBlindLevel        ActionKind = "EDIT_BLIND_LEVEL"
	ActionKind_InsertBlindLevel      ActionKind = "INSERT_BLIND_LEVEL"
	ActionKind_RemoveBlindLevel      ActionKind = "REMOVE_BLIND_LEVEL"
	ActionKind_StartTournament       ActionKind = "START_TOURNAMENT"
	ActionKind_StopTournament        ActionKind = "STOP_TOURNAMENT"
	ActionKind_PauseBlindClock       ActionKind = "PAUSE_BLIND_CLOCK"
	ActionKind_ResumeBlindClock      ActionKind = "RESUME_BLIND_CLOCK"
	ActionKind_AdvanceBlindLevel     ActionKind = "ADVANCE_BLIND_LEVEL"
	ActionKind_AutoAdvanceBlindLevel ActionKind = "AUTO_ADVANCE_BLIND_LEVEL"

	// Table & Player
	ActionKind_CreateTable  ActionKind = "CREATE_TABLE"
	ActionKind_CloseTable   ActionKind = "CLOSE_TABLE"
	ActionKind_SeatPlayer   ActionKind = "SEAT_PLAYER"
	ActionKind_RemovePlayer ActionKind = "REMOVE_PLAYER"
	ActionKind_AddChips     ActionKind = "ADD_CHIPS"
)

// ClockSenderID marks messages produced by the blind clock.
const ClockSenderID = "blind_clock"

type Message struct {
	Type     ActionKind `json:"type"`
	Payload  Payload    `json:"payload"`
	SenderID string     `json:"sender_id"`
}

// Payload carries the kind-specific fields; unused fields stay zero.
type Payload struct {
	TableID      string             `json:"table_id,omitempty"`
	TournamentID string             `json:"tournament_id,omitempty"`
	PlayerID     string             `json:"player_id,omitempty"`
	Amount       int64              `json:"amount,omitempty"`      // 下注、加注至、派發或加購籌碼量
	Seat         *int               `json:"seat,omitempty"`        // 指定 Dealer 座位
	LevelIndex   int                `json:"level_index,omitempty"` // 盲注等級索引值
	Level        *blind.Level       `json:"level,omitempty"`
	Blinds       *HandBlinds        `json:"blinds,omitempty"` // 無賽事的桌使用
	Structure    *StructureSetting  `json:"structure,omitempty"`
	Tournament   *TournamentSetting `json:"tournament,omitempty"`
	Table        *TableSetting      `json:"table,omitempty"`
	Player       *PlayerSetting     `json:"player,omitempty"`
}

type StructureSetting struct {
	Intervals []blind.Interval `json:"intervals"`
	Options   blind.Options    `json:"options"`
}

type TournamentSetting struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Intervals []blind.Interval `json:"intervals"`
	Options   blind.Options    `json:"options"`
}

type TableSetting struct {
	ID                string `json:"id"`
	TournamentID      string `json:"tournament_id"`
	Name              string `json:"name"`
	MaxSeats          int    `json:"max_seats"`
	AutoStartNextHand bool   `json:"auto_start_next_hand"`
}

type PlayerSetting struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TableID string `json:"table_id"`
	Seat    int    `json:"seat"`
	Chips   int64  `json:"chips"`
}

func NewMessage(kind ActionKind, senderID string, payload Payload) Message {
	return Message{
		Type:     kind,
		Payload:  payload,
		SenderID: senderID,
	}
}

func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, err
	}

	if msg.Type == "" {
		return msg, ErrUnknownAction
	}

	return msg, nil
}

func SeatOf(seat int) *int {
	return &seat
}
