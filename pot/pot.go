package pot

import (
	"sort"

	"github.com/thoas/go-funk"
)

// Contribution is a player's total chips put into the hand.
type Contribution struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
	IsFolded bool   `json:"is_folded"`
}

type Pot struct {
	Ordinal           int      `json:"ordinal"`             // 0: 主池, 1..n: 邊池
	Amount            int64    `json:"amount"`              // 籌碼量
	EligiblePlayerIDs []string `json:"eligible_player_ids"` // 有資格贏得此池的玩家
}

func (p Pot) IsEligible(playerID string) bool {
	return funk.ContainsString(p.EligiblePlayerIDs, playerID)
}

/*
Calculate 依每位玩家本手總投入計算主池與邊池
  - 以不重複且非零的投入量由小到大分層
  - 每層金額 = (本層 - 上一層) * 投入量 >= 本層的人數
  - 資格 = 未棄牌且投入量 >= 本層
  - 每層各自成為一個池；沒有人有資格的層併入前一個池
*/
func Calculate(contributions []Contribution) []Pot {
	levels := distinctLevels(contributions)
	if len(levels) == 0 {
		return []Pot{}
	}

	pots := make([]Pot, 0, len(levels))
	carry := int64(0)
	prev := int64(0)
	for _, level := range levels {
		contributors := 0
		eligible := make([]string, 0)
		for _, c := range contributions {
			if c.Amount < level {
				continue
			}
			contributors++
			if !c.IsFolded {
				eligible = append(eligible, c.PlayerID)
			}
		}

		amount := (level - prev) * int64(contributors)
		prev = level

		if len(eligible) == 0 {
			if len(pots) > 0 {
				pots[len(pots)-1].Amount += amount
			} else {
				carry += amount
			}
			continue
		}

		pots = append(pots, Pot{
			Amount:            amount + carry,
			EligiblePlayerIDs: eligible,
		})
		carry = 0
	}

	if carry > 0 {
		pots = append(pots, Pot{
			Amount:            carry,
			EligiblePlayerIDs: activePlayerIDs(contributions),
		})
	}

	for idx := range pots {
		pots[idx].Ordinal = idx
	}

	return pots
}

func Total(pots []Pot) int64 {
	total := int64(0)
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

// EligibleTotal sums every pot the player can win.
func EligibleTotal(pots []Pot, playerID string) int64 {
	total := int64(0)
	for _, p := range pots {
		if p.IsEligible(playerID) {
			total += p.Amount
		}
	}
	return total
}

func distinctLevels(contributions []Contribution) []int64 {
	seen := make(map[int64]bool)
	levels := make([]int64, 0)
	for _, c := range contributions {
		if c.Amount <= 0 || seen[c.Amount] {
			continue
		}
		seen[c.Amount] = true
		levels = append(levels, c.Amount)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

func activePlayerIDs(contributions []Contribution) []string {
	ids := make([]string, 0)
	for _, c := range contributions {
		if !c.IsFolded {
			ids = append(ids, c.PlayerID)
		}
	}
	return ids
}
