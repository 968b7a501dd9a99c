package pokerdealer

import (
	"github.com/weedbox/pokerdealer/blind"
	"github.com/weedbox/pokerdealer/pot"
)

/*
handleStartHand 開始新的一手
  - 參與者: 本桌籌碼 > 0 的玩家，至少兩位
  - 盲注取自賽事目前等級；無賽事的桌使用 payload 或上一手的盲注
  - 依序收前注、小盲、大盲，每次收取都記錄在下注紀錄
*/
func handleStartHand(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if table.IsHandInProgress {
		return ErrHandInProgress
	}

	blinds, levelIndex, err := r.handBlinds(table, payload)
	if err != nil {
		return err
	}

	players := r.state.TablePlayers(table.ID)
	participants := filterPlayers(players, hasChips)
	if len(participants) < 2 {
		return ErrNotEnoughPlayers
	}

	// reset players
	for _, p := range players {
		p.CurrentBet = 0
		p.Contribution = 0
		p.HasActed = false
		if hasChips(p) {
			p.Status = PlayerStatus_Active
		} else {
			p.Status = PlayerStatus_SittingOut
		}
	}

	// reset table
	table.IsHandInProgress = true
	table.HandCount++
	table.Round = Round_Preflop
	table.Blinds = blinds
	table.BlindLevelIndex = levelIndex
	table.Pot = 0
	table.Pots = make([]pot.Pot, 0)
	table.Distribution = nil
	table.Awards = make([]pot.Award, 0)
	table.BetActions = make([]BetAction, 0)

	if dealer := seatOf(participants, table.DealerSeat); dealer == nil {
		table.DealerSeat = nextSeat(participants, table.DealerSeat, hasChips)
	}
	sbSeat, bbSeat := blindSeats(participants, table.DealerSeat)

	// ante is dead money and does not count toward the current bet
	if blinds.Ante > 0 {
		for _, p := range participants {
			r.wager(table, p, blinds.Ante, WagerAction_Ante)
		}
	}

	r.wager(table, seatOf(participants, sbSeat), blinds.SmallBlind, WagerAction_SmallBlind)
	r.wager(table, seatOf(participants, bbSeat), blinds.BigBlind, WagerAction_BigBlind)

	table.CurrentBet = blinds.BigBlind
	table.MinRaise = blinds.BigBlind

	r.passTurn(table, bbSeat)

	return nil
}

func (r *reduction) handBlinds(table *TableState, payload Payload) (HandBlinds, int, error) {
	if table.TournamentID == "" {
		blinds := table.Blinds
		if payload.Blinds != nil {
			blinds = *payload.Blinds
		}

		if blinds.SmallBlind <= 0 || blinds.SmallBlind >= blinds.BigBlind || blinds.Ante < 0 {
			return HandBlinds{}, UnsetValue, blind.ErrInvalidLevel
		}

		return blinds, UnsetValue, nil
	}

	t, err := r.tournament(table.TournamentID)
	if err != nil {
		return HandBlinds{}, UnsetValue, err
	}

	if !t.IsStarted {
		return HandBlinds{}, UnsetValue, ErrTournamentNotStarted
	}

	level, ok := t.CurrentLevel()
	if !ok {
		return HandBlinds{}, UnsetValue, blind.ErrLevelIndexOutOfRange
	}

	if level.IsBreak {
		return HandBlinds{}, UnsetValue, ErrBlindLevelIsBreak
	}

	return HandBlinds{
		SmallBlind: level.SmallBlind,
		BigBlind:   level.BigBlind,
		Ante:       level.Ante,
	}, t.CurrentLevelIndex, nil
}

func handleFold(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	p.Status = PlayerStatus_Folded
	p.HasActed = true
	r.logAction(table, p.ID, WagerAction_Fold, 0)

	r.afterWager(table, p.Seat)
	return nil
}

func handleCheck(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	if p.CurrentBet < table.CurrentBet {
		return ErrInvalidAction
	}

	p.HasActed = true
	r.logAction(table, p.ID, WagerAction_Check, 0)

	r.afterWager(table, p.Seat)
	return nil
}

// handleCall matches the current bet; a short stack calls all-in.
func handleCall(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	toCall := table.CurrentBet - p.CurrentBet
	if toCall <= 0 {
		return ErrInvalidAction
	}

	r.wager(table, p, toCall, WagerAction_Call)
	p.HasActed = true

	r.afterWager(table, p.Seat)
	return nil
}

func handleBet(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	if table.CurrentBet > 0 {
		return ErrInvalidAction
	}

	amount := payload.Amount
	if amount <= 0 || amount > p.Balance {
		return ErrInvalidAmount
	}

	if amount < table.Blinds.BigBlind && amount < p.Balance {
		return ErrInvalidAmount
	}

	r.wager(table, p, amount, WagerAction_Bet)
	p.HasActed = true
	r.raiseBet(table, p)

	r.afterWager(table, p.Seat)
	return nil
}

/*
handleRaise 加注
  - Amount 是加注後的總下注額
  - 加注增量需 >= MinRaise，全下時不受限
*/
func handleRaise(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	if table.CurrentBet == 0 {
		return ErrInvalidAction
	}

	raiseTo := payload.Amount
	if raiseTo <= table.CurrentBet {
		return ErrInvalidAmount
	}

	required := raiseTo - p.CurrentBet
	if required > p.Balance {
		return ErrInvalidAmount
	}

	if raiseTo-table.CurrentBet < table.MinRaise && required < p.Balance {
		return ErrInvalidAmount
	}

	r.wager(table, p, required, WagerAction_Raise)
	p.HasActed = true
	r.raiseBet(table, p)

	r.afterWager(table, p.Seat)
	return nil
}

func handleAllIn(r *reduction, payload Payload) error {
	table, p, err := r.actingPlayer(payload)
	if err != nil {
		return err
	}

	if p.Balance <= 0 {
		return ErrInvalidAction
	}

	r.wager(table, p, p.Balance, WagerAction_AllIn)
	p.HasActed = true
	if p.CurrentBet > table.CurrentBet {
		r.raiseBet(table, p)
	}

	r.afterWager(table, p.Seat)
	return nil
}

/*
handleAdvanceBettingRound 進入下一個下注回合
  - 本回合仍有玩家需要行動時拒絕
  - 進入攤牌時計算主池與邊池
*/
func handleAdvanceBettingRound(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if !table.IsHandInProgress {
		return ErrHandNotInProgress
	}

	if !table.Round.IsBetting() {
		return ErrInvalidAction
	}

	players := r.state.HandPlayers(table.ID)
	if !isActionClosed(table, players) {
		return ErrActionPending
	}

	table.Round = table.Round.Next()
	table.CurrentBet = 0
	table.MinRaise = table.Blinds.BigBlind
	for _, p := range players {
		p.CurrentBet = 0
		p.HasActed = false
	}

	if table.Round == Round_Showdown {
		table.CurrentTurnSeat = UnsetValue
		table.Pots = pot.Calculate(contributionsOf(players))
		return nil
	}

	if len(filterPlayers(players, isActive)) < 2 {
		table.CurrentTurnSeat = UnsetValue
		return nil
	}

	table.CurrentTurnSeat = nextSeat(players, table.DealerSeat, isActive)
	return nil
}

// handleMoveDealerButton moves the button between hands, to an explicit seat or to the next player with chips.
func handleMoveDealerButton(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if table.IsHandInProgress {
		return ErrHandInProgress
	}

	players := r.state.TablePlayers(table.ID)

	if payload.Seat != nil {
		p := seatOf(players, *payload.Seat)
		if p == nil || !hasChips(p) {
			return ErrInvalidSeat
		}
		table.DealerSeat = p.Seat
		return nil
	}

	seat := nextSeat(players, table.DealerSeat, hasChips)
	if seat == UnsetValue {
		return ErrNotEnoughPlayers
	}

	table.DealerSeat = seat
	return nil
}

func handleResetHand(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if !table.IsHandInProgress {
		return ErrHandNotInProgress
	}

	r.abortHand(table)
	return nil
}

func (r *reduction) actingPlayer(payload Payload) (*TableState, *Player, error) {
	table, err := r.table(payload.TableID)
	if err != nil {
		return nil, nil, err
	}

	if !table.IsHandInProgress {
		return nil, nil, ErrHandNotInProgress
	}

	if !table.Round.IsBetting() {
		return nil, nil, ErrInvalidAction
	}

	p, err := r.tablePlayer(table, payload.PlayerID)
	if err != nil {
		return nil, nil, err
	}

	if table.CurrentTurnSeat != p.Seat || !isActive(p) {
		return nil, nil, ErrNotPlayerTurn
	}

	return table, p, nil
}

/*
wager 從玩家身上移動籌碼到底池
  - 金額以玩家餘額為上限
  - 餘額歸零時標記為全下，紀錄也改為全下
*/
func (r *reduction) wager(table *TableState, p *Player, amount int64, kind string) int64 {
	if p == nil {
		return 0
	}

	if amount > p.Balance {
		amount = p.Balance
	}

	if amount <= 0 {
		return 0
	}

	p.Balance -= amount
	p.Contribution += amount
	if kind != WagerAction_Ante {
		p.CurrentBet += amount
	}
	table.Pot += amount

	if p.Balance == 0 {
		p.Status = PlayerStatus_AllIn
		kind = WagerAction_AllIn
	}

	r.logAction(table, p.ID, kind, amount)
	return amount
}

// raiseBet raises the table bet to the player's bet and re-opens action for everyone else.
func (r *reduction) raiseBet(table *TableState, raiser *Player) {
	increment := raiser.CurrentBet - table.CurrentBet
	if increment > table.MinRaise {
		table.MinRaise = increment
	}
	table.CurrentBet = raiser.CurrentBet

	for _, p := range r.state.HandPlayers(table.ID) {
		if p.ID != raiser.ID && isActive(p) {
			p.HasActed = false
		}
	}
}

/*
afterWager 每個動作之後
  - 只剩一位未棄牌玩家時立即結束本手，由該玩家拿走底池
  - 行動結束時清除輪到的座位，否則輪到下一位需要行動的玩家
*/
func (r *reduction) afterWager(table *TableState, fromSeat int) {
	players := r.state.HandPlayers(table.ID)

	live := filterPlayers(players, isLive)
	if len(live) == 1 {
		r.winUncontested(table, live[0])
		return
	}

	r.passTurn(table, fromSeat)
}

func (r *reduction) passTurn(table *TableState, fromSeat int) {
	players := r.state.HandPlayers(table.ID)
	if isActionClosed(table, players) {
		table.CurrentTurnSeat = UnsetValue
		return
	}

	table.CurrentTurnSeat = nextSeat(players, fromSeat, func(p *Player) bool {
		return isActive(p) && (!p.HasActed || p.CurrentBet < table.CurrentBet)
	})
}

func (r *reduction) winUncontested(table *TableState, winner *Player) {
	award := pot.Award{
		PlayerID: winner.ID,
		Amount:   table.Pot,
	}
	winner.Balance += award.Amount
	table.Pot = 0
	table.Awards = append(table.Awards, award)

	r.endHand(table, false)
}

/*
isActionClosed 本回合是否已無人需要行動
  - 所有可行動玩家都已行動且跟上目前下注
  - 或可行動玩家不超過一位且已跟上
*/
func isActionClosed(table *TableState, players []*Player) bool {
	active := filterPlayers(players, isActive)
	for _, p := range active {
		if p.CurrentBet < table.CurrentBet {
			return false
		}
	}

	if len(active) <= 1 {
		return true
	}

	for _, p := range active {
		if !p.HasActed {
			return false
		}
	}

	return true
}

func contributionsOf(players []*Player) []pot.Contribution {
	contributions := make([]pot.Contribution, 0, len(players))
	for _, p := range players {
		contributions = append(contributions, pot.Contribution{
			PlayerID: p.ID,
			Amount:   p.Contribution,
			IsFolded: p.Status == PlayerStatus_Folded,
		})
	}
	return contributions
}
