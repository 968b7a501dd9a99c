package pokerdealer

import (
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/pokerdealer/pot"
)

// BetAction is one entry of the per-hand wagering log.
type BetAction struct {
	PlayerID  string `json:"player_id"`
	Kind      string `json:"kind"`      // 動作種類，餘額歸零時為 allin
	Amount    int64  `json:"amount"`    // 本次動作投入的籌碼量
	Round     Round  `json:"round"`     // 發生的下注回合
	Timestamp int64  `json:"timestamp"` // 發生時間 (Seconds)
}

type PlayerStatistics struct {
	ActionTimes  int    `json:"action_times"`  // 每手下注動作總次數
	RaiseTimes   int    `json:"raise_times"`   // 每手加注總次數
	CallTimes    int    `json:"call_times"`    // 每手跟注總次數
	CheckTimes   int    `json:"check_times"`   // 每手過牌總次數
	IsFold       bool   `json:"is_fold"`       // 每手是否蓋牌
	FoldRound    Round  `json:"fold_round"`    // 每手蓋牌回合
	TotalWagered int64  `json:"total_wagered"` // 每手總投入 (含盲注與前注)
	LastAction   string `json:"last_action"`
}

type HandSummary struct {
	TableID      string                      `json:"table_id"`
	TournamentID string                      `json:"tournament_id"`
	HandNumber   int                         `json:"hand_number"`
	Blinds       HandBlinds                  `json:"blinds"`
	Aborted      bool                        `json:"aborted"` // 本手被中止並退回籌碼
	Actions      []BetAction                 `json:"actions"`
	Awards       []pot.Award                 `json:"awards"`
	Statistics   map[string]PlayerStatistics `json:"statistics"`
	EndedAt      int64                       `json:"ended_at"`
}

func NewHandSummary(table *TableState, now time.Time, aborted bool) HandSummary {
	actions := make([]BetAction, len(table.BetActions))
	copy(actions, table.BetActions)

	awards := make([]pot.Award, len(table.Awards))
	copy(awards, table.Awards)

	return HandSummary{
		TableID:      table.ID,
		TournamentID: table.TournamentID,
		HandNumber:   table.HandCount,
		Blinds:       table.Blinds,
		Aborted:      aborted,
		Actions:      actions,
		Awards:       awards,
		Statistics:   Summarize(actions),
		EndedAt:      now.Unix(),
	}
}

func (r *reduction) logAction(table *TableState, playerID string, kind string, amount int64) {
	table.BetActions = append(table.BetActions, BetAction{
		PlayerID:  playerID,
		Kind:      kind,
		Amount:    amount,
		Round:     table.Round,
		Timestamp: r.now.Unix(),
	})
}

func isPosting(kind string) bool {
	return funk.ContainsString([]string{
		WagerAction_Ante,
		WagerAction_SmallBlind,
		WagerAction_BigBlind,
	}, kind)
}

/*
Summarize 依下注紀錄統計每位玩家本手的動作
  - 盲注與前注只計入總投入，不算下注動作
*/
func Summarize(actions []BetAction) map[string]PlayerStatistics {
	stats := make(map[string]PlayerStatistics)
	for _, action := range actions {
		s := stats[action.PlayerID]
		s.TotalWagered += action.Amount

		if isPosting(action.Kind) {
			stats[action.PlayerID] = s
			continue
		}

		s.ActionTimes++
		s.LastAction = action.Kind
		switch action.Kind {
		case WagerAction_Raise, WagerAction_Bet:
			s.RaiseTimes++
		case WagerAction_Call:
			s.CallTimes++
		case WagerAction_Check:
			s.CheckTimes++
		case WagerAction_Fold:
			s.IsFold = true
			s.FoldRound = action.Round
		}

		stats[action.PlayerID] = s
	}
	return stats
}

// Wagered sums the chips the ledger recorded for a player.
func Wagered(actions []BetAction, playerID string) int64 {
	total := int64(0)
	for _, action := range actions {
		if action.PlayerID == playerID {
			total += action.Amount
		}
	}
	return total
}
