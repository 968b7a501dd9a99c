package pokerdealer

import (
	"github.com/google/uuid"
	"github.com/weedbox/pokerdealer/pot"
)

const DefaultMaxSeats = 9

func handleCreateTable(r *reduction, payload Payload) error {
	setting := payload.Table
	if setting == nil {
		return ErrInvalidPayload
	}

	id := setting.ID
	if id == "" {
		id = uuid.New().String()
	}

	if _, exist := r.state.Tables[id]; exist {
		return ErrTableAlreadyExists
	}

	if setting.TournamentID != "" {
		if _, err := r.tournament(setting.TournamentID); err != nil {
			return err
		}
	}

	maxSeats := setting.MaxSeats
	if maxSeats <= 0 {
		maxSeats = DefaultMaxSeats
	}

	r.state.Tables[id] = &TableState{
		ID:                id,
		TournamentID:      setting.TournamentID,
		Name:              setting.Name,
		MaxSeats:          maxSeats,
		AutoStartNextHand: setting.AutoStartNextHand,
		Round:             Round_None,
		DealerSeat:        UnsetValue,
		CurrentTurnSeat:   UnsetValue,
		BlindLevelIndex:   UnsetValue,
		Pots:              make([]pot.Pot, 0),
		Awards:            make([]pot.Award, 0),
		BetActions:        make([]BetAction, 0),
	}

	return nil
}

/*
handleCloseTable 關閉桌
  - 進行中的一手會被中止並退回籌碼
  - 分池工作區一併清除，玩家離開座位
*/
func handleCloseTable(r *reduction, payload Payload) error {
	table, err := r.table(payload.TableID)
	if err != nil {
		return err
	}

	if table.IsHandInProgress {
		r.abortHand(table)
	}
	table.Distribution = nil

	for _, p := range r.state.TablePlayers(table.ID) {
		p.TableID = ""
		p.Seat = UnsetValue
		p.Status = PlayerStatus_SittingOut
	}

	delete(r.state.Tables, table.ID)

	r.emit(Effect{
		Kind:         EffectKind_TableClosed,
		TournamentID: table.TournamentID,
		TableID:      table.ID,
	})

	return nil
}

// handleSeatPlayer seats a new player, or an unseated existing one, with the given chips added.
func handleSeatPlayer(r *reduction, payload Payload) error {
	setting := payload.Player
	if setting == nil || setting.Chips < 0 {
		return ErrInvalidPayload
	}

	table, err := r.table(setting.TableID)
	if err != nil {
		return err
	}

	if setting.Seat < 0 || setting.Seat >= table.MaxSeats {
		return ErrInvalidSeat
	}

	if r.state.PlayerAtSeat(table.ID, setting.Seat) != nil {
		return ErrSeatTaken
	}

	id := setting.ID
	if id == "" {
		id = uuid.New().String()
	}

	p, exist := r.state.Players[id]
	if exist && p.TableID != "" {
		return ErrPlayerAlreadySeated
	}

	if !exist {
		p = &Player{
			ID:   id,
			Name: setting.Name,
		}
		r.state.Players[id] = p
	}

	if setting.Name != "" {
		p.Name = setting.Name
	}
	p.TableID = table.ID
	p.Seat = setting.Seat
	p.Balance += setting.Chips
	p.CurrentBet = 0
	p.Contribution = 0
	p.HasActed = false

	// joins the next hand
	p.Status = PlayerStatus_SittingOut
	if hasChips(p) && !table.IsHandInProgress {
		p.Status = PlayerStatus_Active
	}

	return nil
}

func handleRemovePlayer(r *reduction, payload Payload) error {
	p, err := r.player(payload.PlayerID)
	if err != nil {
		return err
	}

	if r.isCommitted(p) {
		return ErrPlayerInHand
	}

	delete(r.state.Players, p.ID)
	return nil
}

// handleAddChips is a rebuy between hands.
func handleAddChips(r *reduction, payload Payload) error {
	p, err := r.player(payload.PlayerID)
	if err != nil {
		return err
	}

	if payload.Amount <= 0 {
		return ErrInvalidAmount
	}

	if r.isCommitted(p) {
		return ErrPlayerInHand
	}

	p.Balance += payload.Amount

	if table, exist := r.state.Tables[p.TableID]; exist && !table.IsHandInProgress {
		p.Status = PlayerStatus_Active
	}

	return nil
}

// isCommitted reports whether the player takes part in, or has chips in, a hand in progress.
func (r *reduction) isCommitted(p *Player) bool {
	table, exist := r.state.Tables[p.TableID]
	if !exist || !table.IsHandInProgress {
		return false
	}

	return p.Status != PlayerStatus_SittingOut || p.Contribution > 0
}
