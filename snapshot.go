package pokerdealer

import (
	"encoding/json"

	"github.com/weedbox/pokerdealer/blind"
	"github.com/weedbox/pokerdealer/pot"
)

/*
LoadGameState 由快照還原狀態
  - 舊版快照缺少的欄位使用預設值，不視為錯誤
*/
func LoadGameState(data []byte) (*GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, err
	}

	if gs.Tournaments == nil {
		gs.Tournaments = make(map[string]*Tournament)
	}

	if gs.Tables == nil {
		gs.Tables = make(map[string]*TableState)
	}

	if gs.Players == nil {
		gs.Players = make(map[string]*Player)
	}

	return &gs, nil
}

func (gs *GameState) Snapshot() ([]byte, error) {
	return json.Marshal(gs)
}

func (t *TableState) UnmarshalJSON(data []byte) error {
	type tableState TableState
	decoded := tableState{
		Round:           Round_None,
		DealerSeat:      UnsetValue,
		CurrentTurnSeat: UnsetValue,
		BlindLevelIndex: UnsetValue,
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*t = TableState(decoded)

	if t.Round == "" {
		t.Round = Round_None
	}

	if t.Pots == nil {
		t.Pots = make([]pot.Pot, 0)
	}

	if t.Awards == nil {
		t.Awards = make([]pot.Award, 0)
	}

	if t.BetActions == nil {
		t.BetActions = make([]BetAction, 0)
	}

	return nil
}

func (p *Player) UnmarshalJSON(data []byte) error {
	type player Player
	decoded := player{
		Seat: UnsetValue,
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*p = Player(decoded)

	if p.Status == "" {
		p.Status = PlayerStatus_SittingOut
		if hasChips(p) {
			p.Status = PlayerStatus_Active
		}
	}

	return nil
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	type tournament Tournament
	decoded := tournament{
		PausedAt: UnsetValue,
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*t = Tournament(decoded)

	if t.Structure.Levels == nil {
		t.Structure.Levels = make([]blind.Level, 0)
	}

	return nil
}
