package pokerdealer

const (
	// General
	UnsetValue = -1

	// Round
	Round_None     Round = "none"
	Round_Preflop  Round = "preflop"
	Round_Flop     Round = "flop"
	Round_Turn     Round = "turn"
	Round_River    Round = "river"
	Round_Showdown Round = "showdown"

	// PlayerStatus
	PlayerStatus_Active     PlayerStatus = "active"      // 本手可行動
	PlayerStatus_Folded     PlayerStatus = "folded"      // 已棄牌
	PlayerStatus_AllIn      PlayerStatus = "allin"       // 已全下
	PlayerStatus_SittingOut PlayerStatus = "sitting_out" // 未參與本手 (含籌碼歸零)

	// Wager Action
	WagerAction_Fold       = "fold"
	WagerAction_Check      = "check"
	WagerAction_Call       = "call"
	WagerAction_Bet        = "bet"
	WagerAction_Raise      = "raise"
	WagerAction_AllIn      = "allin"
	WagerAction_Ante       = "ante"
	WagerAction_SmallBlind = "small_blind"
	WagerAction_BigBlind   = "big_blind"
)

type Round string

type PlayerStatus string

var roundSequence = []Round{
	Round_None,
	Round_Preflop,
	Round_Flop,
	Round_Turn,
	Round_River,
	Round_Showdown,
}

// Next returns the round that follows r; showdown and none have no successor.
func (r Round) Next() Round {
	for idx, round := range roundSequence {
		if round == r && idx+1 < len(roundSequence) && r != Round_None {
			return roundSequence[idx+1]
		}
	}
	return r
}

func (r Round) IsBetting() bool {
	return r == Round_Preflop || r == Round_Flop || r == Round_Turn || r == Round_River
}
