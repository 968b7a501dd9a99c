package pokerdealer

import (
	"github.com/weedbox/pokerdealer/pot"
)

func handleStartPotDistribution(r *reduction, payload Payload) error {
	table, err := r.showdownTable(payload.TableID)
	if err != nil {
		return err
	}

	if table.Distribution != nil {
		return ErrDistributionInProgress
	}

	if len(table.Pots) == 0 {
		return ErrInvalidAction
	}

	table.Distribution = pot.NewDistribution(table.Pots)
	return nil
}

func handleTogglePotWinner(r *reduction, payload Payload) error {
	table, err := r.showdownTable(payload.TableID)
	if err != nil {
		return err
	}

	if table.Distribution == nil {
		return ErrNoDistribution
	}

	return table.Distribution.ToggleWinner(payload.PlayerID)
}

/*
handleDeliverCurrentPot 派發目前的池給已選取的贏家
  - 底池以 max(0, 底池 - 派發量) 更新
  - 最後一個池派發後清除工作區並結束本手
*/
func handleDeliverCurrentPot(r *reduction, payload Payload) error {
	table, err := r.showdownTable(payload.TableID)
	if err != nil {
		return err
	}

	if table.Distribution == nil {
		return ErrNoDistribution
	}

	for _, winnerID := range table.Distribution.SelectedWinnerIDs {
		if _, err := r.tablePlayer(table, winnerID); err != nil {
			return err
		}
	}

	awards, err := table.Distribution.DeliverCurrent()
	if err != nil {
		return err
	}

	r.credit(table, awards)

	if table.Distribution.IsFinished() {
		table.Distribution = nil
		r.endHand(table, false)
	}

	return nil
}

/*
handleDeliverAllEligiblePots 單一贏家一次領取所有有資格的池
  - 與逐池派發給同一位贏家的總額相同
  - 只有一位有資格者的池退回該玩家
  - 仍有爭議的池留在工作區，本手停留在攤牌
*/
func handleDeliverAllEligiblePots(r *reduction, payload Payload) error {
	table, err := r.showdownTable(payload.TableID)
	if err != nil {
		return err
	}

	if _, err := r.tablePlayer(table, payload.PlayerID); err != nil {
		return err
	}

	remaining := table.Pots
	if table.Distribution != nil {
		remaining = table.Distribution.RemainingPots()
	}

	if pot.EligibleTotal(remaining, payload.PlayerID) == 0 {
		return pot.ErrPlayerNotEligible
	}

	awards, contested := pot.SweepEligible(remaining, payload.PlayerID)
	for _, award := range awards {
		if _, err := r.tablePlayer(table, award.PlayerID); err != nil {
			return err
		}
	}

	r.credit(table, awards)

	if len(contested) > 0 {
		table.Pots = contested
		table.Distribution = pot.NewDistribution(contested)
		return nil
	}

	table.Distribution = nil
	r.endHand(table, false)
	return nil
}

/*
handleAwardPot 不經派發流程直接給獎
  - 攤牌前只能給出整個底池，amount 0 代表整個底池
  - 攤牌時由玩家有資格的池依序取出，amount 0 代表所有有資格的池
  - 底池歸零時結束本手
*/
func handleAwardPot(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if !table.IsHandInProgress {
		return ErrHandNotInProgress
	}

	if table.Distribution != nil {
		return ErrDistributionInProgress
	}

	if payload.Amount < 0 {
		return ErrInvalidAmount
	}

	if _, err := r.tablePlayer(table, payload.PlayerID); err != nil {
		return err
	}

	amount := payload.Amount

	if table.Round == Round_Showdown {
		eligible := pot.EligibleTotal(table.Pots, payload.PlayerID)
		if eligible == 0 {
			return pot.ErrPlayerNotEligible
		}

		if amount == 0 || amount > eligible {
			amount = eligible
		}

		awards, left := pot.Withdraw(table.Pots, payload.PlayerID, amount)
		r.credit(table, awards)
		table.Pots = left
	} else {
		// contributions still back the pot, so it leaves in one piece
		if amount != 0 && amount < table.Pot {
			return ErrPartialAward
		}

		r.credit(table, []pot.Award{
			{
				PlayerID:   payload.PlayerID,
				Amount:     table.Pot,
				PotOrdinal: UnsetValue,
			},
		})
	}

	if table.Pot == 0 {
		r.endHand(table, false)
	}

	return nil
}

func (r *reduction) showdownTable(tableID string) (*TableState, error) {
	table, err := r.table(tableID)
	if err != nil {
		return nil, err
	}

	if !table.IsHandInProgress {
		return nil, ErrNoDistribution
	}

	if table.Round != Round_Showdown {
		return nil, ErrNotShowdown
	}

	return table, nil
}

func (r *reduction) credit(table *TableState, awards []pot.Award) {
	for _, award := range awards {
		p, exist := r.state.Players[award.PlayerID]
		if !exist {
			continue
		}
		p.Balance += award.Amount
	}

	delivered := pot.TotalAwarded(awards)
	table.Pot -= delivered
	if table.Pot < 0 {
		table.Pot = 0
	}

	table.Awards = append(table.Awards, awards...)
}

/*
abortHand 中止進行中的一手並退回籌碼
  - 尚未派發任何籌碼: 退回每位玩家本手投入
  - 已派發部分籌碼: 剩餘的池由有資格的玩家平分
*/
func (r *reduction) abortHand(table *TableState) {
	if pot.TotalAwarded(table.Awards) == 0 {
		players := r.state.HandPlayers(table.ID)
		refunds := make([]pot.Award, 0, len(players))
		for _, p := range players {
			if p.Contribution > 0 {
				refunds = append(refunds, pot.Award{
					PlayerID:   p.ID,
					Amount:     p.Contribution,
					PotOrdinal: UnsetValue,
				})
			}
		}
		r.credit(table, refunds)
	} else {
		remaining := table.Pots
		if table.Distribution != nil {
			remaining = table.Distribution.RemainingPots()
		}
		for _, p := range remaining {
			r.credit(table, pot.Split(p, p.EligiblePlayerIDs))
		}
	}

	table.Distribution = nil
	r.endHand(table, true)
}

/*
endHand 結束本手
  - 下注紀錄交給 HandEnded 後清空
  - 籌碼歸零的參與者改為 sitting_out
*/
func (r *reduction) endHand(table *TableState, aborted bool) {
	summary := NewHandSummary(table, r.now, aborted)
	r.emit(Effect{
		Kind:         EffectKind_HandEnded,
		TournamentID: table.TournamentID,
		TableID:      table.ID,
		Hand:         &summary,
	})

	for _, p := range r.state.TablePlayers(table.ID) {
		participated := p.Status != PlayerStatus_SittingOut

		p.CurrentBet = 0
		p.Contribution = 0
		p.HasActed = false

		if hasChips(p) {
			p.Status = PlayerStatus_Active
			continue
		}

		p.Status = PlayerStatus_SittingOut
		if participated {
			r.emit(Effect{
				Kind:         EffectKind_PlayerEliminated,
				TournamentID: table.TournamentID,
				TableID:      table.ID,
				PlayerID:     p.ID,
			})
		}
	}

	table.IsHandInProgress = false
	table.Round = Round_None
	table.CurrentBet = 0
	table.MinRaise = 0
	table.CurrentTurnSeat = UnsetValue
	table.Pot = 0
	table.Pots = make([]pot.Pot, 0)
	table.Distribution = nil
	table.Awards = make([]pot.Award, 0)
	table.BetActions = make([]BetAction, 0)
}
