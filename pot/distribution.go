package pot

import (
	"errors"

	"github.com/thoas/go-funk"
)

var (
	ErrNoWinnerSelected     = errors.New("pot: no winner selected")
	ErrPlayerNotEligible    = errors.New("pot: player is not eligible for current pot")
	ErrDistributionFinished = errors.New("pot: all pots delivered")
)

type Award struct {
	PlayerID   string `json:"player_id"`
	Amount     int64  `json:"amount"`
	PotOrdinal int    `json:"pot_ordinal"`
}

// Distribution is the per-table workspace used while an operator awards pots one by one.
type Distribution struct {
	Pots              []Pot    `json:"pots"`
	CurrentIndex      int      `json:"current_index"`
	SelectedWinnerIDs []string `json:"selected_winner_ids"` // 依選取順序排列
}

func NewDistribution(pots []Pot) *Distribution {
	copied := make([]Pot, len(pots))
	copy(copied, pots)
	return &Distribution{
		Pots:              copied,
		CurrentIndex:      0,
		SelectedWinnerIDs: make([]string, 0),
	}
}

func (d *Distribution) IsFinished() bool {
	return d.CurrentIndex >= len(d.Pots)
}

func (d *Distribution) CurrentPot() (Pot, bool) {
	if d.IsFinished() {
		return Pot{}, false
	}
	return d.Pots[d.CurrentIndex], true
}

// RemainingPots returns the pots not yet delivered.
func (d *Distribution) RemainingPots() []Pot {
	if d.IsFinished() {
		return []Pot{}
	}
	return d.Pots[d.CurrentIndex:]
}

/*
ToggleWinner 切換目前池的贏家
  - 已選取的玩家再選一次會取消
*/
func (d *Distribution) ToggleWinner(playerID string) error {
	current, ok := d.CurrentPot()
	if !ok {
		return ErrDistributionFinished
	}

	if funk.ContainsString(d.SelectedWinnerIDs, playerID) {
		d.SelectedWinnerIDs = funk.FilterString(d.SelectedWinnerIDs, func(id string) bool {
			return id != playerID
		})
		return nil
	}

	if !current.IsEligible(playerID) {
		return ErrPlayerNotEligible
	}

	d.SelectedWinnerIDs = append(d.SelectedWinnerIDs, playerID)
	return nil
}

// DeliverCurrent splits the current pot among the selected winners and moves to the next pot.
func (d *Distribution) DeliverCurrent() ([]Award, error) {
	current, ok := d.CurrentPot()
	if !ok {
		return nil, ErrDistributionFinished
	}

	if len(d.SelectedWinnerIDs) == 0 {
		return nil, ErrNoWinnerSelected
	}

	awards := Split(current, d.SelectedWinnerIDs)
	d.CurrentIndex++
	d.SelectedWinnerIDs = make([]string, 0)
	return awards, nil
}

/*
Split 平分一個池
  - 每人 floor(amount / n)
  - 餘數全部給最早被選取的贏家
*/
func Split(p Pot, winnerIDs []string) []Award {
	if len(winnerIDs) == 0 {
		return []Award{}
	}

	share := p.Amount / int64(len(winnerIDs))
	remainder := p.Amount % int64(len(winnerIDs))

	awards := make([]Award, 0, len(winnerIDs))
	for idx, winnerID := range winnerIDs {
		amount := share
		if idx == 0 {
			amount += remainder
		}
		awards = append(awards, Award{
			PlayerID:   winnerID,
			Amount:     amount,
			PotOrdinal: p.Ordinal,
		})
	}
	return awards
}

/*
SweepEligible 單一贏家一次領取所有有資格的池
  - 贏家沒有資格且只有一位有資格者的池，直接退回該玩家
  - 仍有爭議的池留在 contested 由操作者逐池處理
*/
func SweepEligible(pots []Pot, winnerID string) (awards []Award, contested []Pot) {
	awards = make([]Award, 0)
	contested = make([]Pot, 0)
	for _, p := range pots {
		switch {
		case p.IsEligible(winnerID):
			awards = append(awards, Award{PlayerID: winnerID, Amount: p.Amount, PotOrdinal: p.Ordinal})
		case len(p.EligiblePlayerIDs) == 1:
			awards = append(awards, Award{PlayerID: p.EligiblePlayerIDs[0], Amount: p.Amount, PotOrdinal: p.Ordinal})
		default:
			contested = append(contested, p)
		}
	}
	return awards, contested
}

/*
Withdraw 由玩家有資格的池依序取出籌碼
  - 由主池開始取，取完的池移除
  - 每個池各自記錄一筆 Award
*/
func Withdraw(pots []Pot, playerID string, amount int64) (awards []Award, left []Pot) {
	awards = make([]Award, 0)
	left = make([]Pot, 0, len(pots))
	for _, p := range pots {
		if amount > 0 && p.IsEligible(playerID) {
			taken := p.Amount
			if taken > amount {
				taken = amount
			}
			amount -= taken
			p.Amount -= taken
			awards = append(awards, Award{PlayerID: playerID, Amount: taken, PotOrdinal: p.Ordinal})
		}

		if p.Amount > 0 {
			left = append(left, p)
		}
	}
	return awards, left
}

func TotalAwarded(awards []Award) int64 {
	total := int64(0)
	for _, a := range awards {
		total += a.Amount
	}
	return total
}
