package pokerdealer

import (
	"github.com/weedbox/pokerdealer/blind"
)

// Table Actions
func (e *Engine) CreateTable(senderID string, setting TableSetting) error {
	return e.Dispatch(NewMessage(ActionKind_CreateTable, senderID, Payload{Table: &setting}))
}

func (e *Engine) CloseTable(senderID, tableID string) error {
	return e.Dispatch(NewMessage(ActionKind_CloseTable, senderID, Payload{TableID: tableID}))
}

func (e *Engine) SeatPlayer(senderID string, setting PlayerSetting) error {
	return e.Dispatch(NewMessage(ActionKind_SeatPlayer, senderID, Payload{Player: &setting}))
}

func (e *Engine) RemovePlayer(senderID, playerID string) error {
	return e.Dispatch(NewMessage(ActionKind_RemovePlayer, senderID, Payload{PlayerID: playerID}))
}

func (e *Engine) AddChips(senderID, playerID string, amount int64) error {
	return e.Dispatch(NewMessage(ActionKind_AddChips, senderID, Payload{PlayerID: playerID, Amount: amount}))
}

// Hand Actions
func (e *Engine) StartHand(senderID, tableID string, blinds *HandBlinds) error {
	return e.Dispatch(NewMessage(ActionKind_StartHand, senderID, Payload{TableID: tableID, Blinds: blinds}))
}

func (e *Engine) AdvanceBettingRound(senderID, tableID string) error {
	return e.Dispatch(NewMessage(ActionKind_AdvanceBettingRound, senderID, Payload{TableID: tableID}))
}

func (e *Engine) MoveDealerButton(senderID, tableID string, seat *int) error {
	return e.Dispatch(NewMessage(ActionKind_MoveDealerButton, senderID, Payload{TableID: tableID, Seat: seat}))
}

func (e *Engine) ResetHand(senderID, tableID string) error {
	return e.Dispatch(NewMessage(ActionKind_ResetHand, senderID, Payload{TableID: tableID}))
}

// Player Wager Actions
func (e *Engine) PlayerFold(tableID, playerID string) error {
	return e.playerAction(ActionKind_Fold, tableID, playerID, 0)
}

func (e *Engine) PlayerCheck(tableID, playerID string) error {
	return e.playerAction(ActionKind_Check, tableID, playerID, 0)
}

func (e *Engine) PlayerCall(tableID, playerID string) error {
	return e.playerAction(ActionKind_Call, tableID, playerID, 0)
}

func (e *Engine) PlayerBet(tableID, playerID string, chips int64) error {
	return e.playerAction(ActionKind_Bet, tableID, playerID, chips)
}

// PlayerRaise raises the player's bet to chipLevel.
func (e *Engine) PlayerRaise(tableID, playerID string, chipLevel int64) error {
	return e.playerAction(ActionKind_Raise, tableID, playerID, chipLevel)
}

func (e *Engine) PlayerAllIn(tableID, playerID string) error {
	return e.playerAction(ActionKind_AllIn, tableID, playerID, 0)
}

func (e *Engine) playerAction(kind ActionKind, tableID, playerID string, amount int64) error {
	return e.Dispatch(NewMessage(kind, playerID, Payload{
		TableID:  tableID,
		PlayerID: playerID,
		Amount:   amount,
	}))
}

// Pot Distribution Actions
func (e *Engine) StartPotDistribution(senderID, tableID string) error {
	return e.Dispatch(NewMessage(ActionKind_StartPotDistribution, senderID, Payload{TableID: tableID}))
}

func (e *Engine) TogglePotWinner(senderID, tableID, playerID string) error {
	return e.Dispatch(NewMessage(ActionKind_TogglePotWinner, senderID, Payload{TableID: tableID, PlayerID: playerID}))
}

func (e *Engine) DeliverCurrentPot(senderID, tableID string) error {
	return e.Dispatch(NewMessage(ActionKind_DeliverCurrentPot, senderID, Payload{TableID: tableID}))
}

func (e *Engine) DeliverAllEligiblePots(senderID, tableID, winnerID string) error {
	return e.Dispatch(NewMessage(ActionKind_DeliverAllEligiblePots, senderID, Payload{TableID: tableID, PlayerID: winnerID}))
}

func (e *Engine) AwardPot(senderID, tableID, playerID string, amount int64) error {
	return e.Dispatch(NewMessage(ActionKind_AwardPot, senderID, Payload{TableID: tableID, PlayerID: playerID, Amount: amount}))
}

// Tournament Actions
func (e *Engine) CreateTournament(senderID string, setting TournamentSetting) error {
	return e.Dispatch(NewMessage(ActionKind_CreateTournament, senderID, Payload{Tournament: &setting}))
}

func (e *Engine) UpdateBlindStructure(senderID, tournamentID string, structure StructureSetting) error {
	return e.Dispatch(NewMessage(ActionKind_UpdateBlindStructure, senderID, Payload{TournamentID: tournamentID, Structure: &structure}))
}

func (e *Engine) EditBlindLevel(senderID, tournamentID string, levelIndex int, level blind.Level) error {
	return e.Dispatch(NewMessage(ActionKind_EditBlindLevel, senderID, Payload{TournamentID: tournamentID, LevelIndex: levelIndex, Level: &level}))
}

func (e *Engine) InsertBlindLevel(senderID, tournamentID string, levelIndex int, level blind.Level) error {
	return e.Dispatch(NewMessage(ActionKind_InsertBlindLevel, senderID, Payload{TournamentID: tournamentID, LevelIndex: levelIndex, Level: &level}))
}

func (e *Engine) RemoveBlindLevel(senderID, tournamentID string, levelIndex int) error {
	return e.Dispatch(NewMessage(ActionKind_RemoveBlindLevel, senderID, Payload{TournamentID: tournamentID, LevelIndex: levelIndex}))
}

func (e *Engine) StartTournament(senderID, tournamentID string) error {
	return e.tournamentAction(ActionKind_StartTournament, senderID, tournamentID)
}

func (e *Engine) StopTournament(senderID, tournamentID string) error {
	return e.tournamentAction(ActionKind_StopTournament, senderID, tournamentID)
}

func (e *Engine) PauseBlindClock(senderID, tournamentID string) error {
	return e.tournamentAction(ActionKind_PauseBlindClock, senderID, tournamentID)
}

func (e *Engine) ResumeBlindClock(senderID, tournamentID string) error {
	return e.tournamentAction(ActionKind_ResumeBlindClock, senderID, tournamentID)
}

func (e *Engine) AdvanceBlindLevel(senderID, tournamentID string) error {
	return e.tournamentAction(ActionKind_AdvanceBlindLevel, senderID, tournamentID)
}

func (e *Engine) tournamentAction(kind ActionKind, senderID, tournamentID string) error {
	return e.Dispatch(NewMessage(kind, senderID, Payload{TournamentID: tournamentID}))
}
