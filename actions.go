package pokerdealer

// WagerOptions describes the wagers open to the player whose turn it is.
type WagerOptions struct {
	Actions    []ActionKind `json:"actions"`
	ToCall     int64        `json:"to_call"`      // 跟注需補的籌碼量
	MinBet     int64        `json:"min_bet"`      // 下注最小量
	MaxBet     int64        `json:"max_bet"`      // 下注最大量 (全下)
	MinRaiseTo int64        `json:"min_raise_to"` // 加注後總下注額下限
	MaxRaiseTo int64        `json:"max_raise_to"` // 加注後總下注額上限 (全下)
}

func (o WagerOptions) Has(kind ActionKind) bool {
	for _, action := range o.Actions {
		if action == kind {
			return true
		}
	}
	return false
}

/*
AllowedActions 列出玩家目前可執行的下注動作
  - 不是該玩家行動時回傳空列表
  - 跟注不足時仍可跟注 (全下)
*/
func (gs *GameState) AllowedActions(tableID string, playerID string) WagerOptions {
	opts := WagerOptions{
		Actions: make([]ActionKind, 0),
	}

	table, exist := gs.Tables[tableID]
	if !exist || !table.IsHandInProgress || !table.Round.IsBetting() {
		return opts
	}

	p, exist := gs.Players[playerID]
	if !exist || p.TableID != tableID || p.Seat != table.CurrentTurnSeat || !isActive(p) {
		return opts
	}

	opts.Actions = append(opts.Actions, ActionKind_Fold)

	opts.ToCall = table.CurrentBet - p.CurrentBet
	if opts.ToCall <= 0 {
		opts.ToCall = 0
		opts.Actions = append(opts.Actions, ActionKind_Check)
	} else {
		opts.Actions = append(opts.Actions, ActionKind_Call)
	}

	if p.Balance <= 0 {
		return opts
	}

	if table.CurrentBet == 0 {
		opts.MinBet = table.Blinds.BigBlind
		if opts.MinBet > p.Balance {
			opts.MinBet = p.Balance
		}
		opts.MaxBet = p.Balance
		opts.Actions = append(opts.Actions, ActionKind_Bet)
	} else if p.Balance > opts.ToCall {
		opts.MaxRaiseTo = p.CurrentBet + p.Balance
		opts.MinRaiseTo = table.CurrentBet + table.MinRaise
		if opts.MinRaiseTo > opts.MaxRaiseTo {
			opts.MinRaiseTo = opts.MaxRaiseTo
		}
		opts.Actions = append(opts.Actions, ActionKind_Raise)
	}

	opts.Actions = append(opts.Actions, ActionKind_AllIn)

	return opts
}
