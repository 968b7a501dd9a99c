package pokerdealer

import (
	"github.com/thoas/go-funk"
)

/*
nextSeat 依座位順序尋找下一個符合條件的座位
  - players 需依座位排序
  - 從 fromSeat 之後開始找，找不到則從頭繞回
  - 沒有任何符合條件的玩家回傳 UnsetValue
*/
func nextSeat(players []*Player, fromSeat int, match func(*Player) bool) int {
	candidates := funk.Filter(players, match).([]*Player)
	if len(candidates) == 0 {
		return UnsetValue
	}

	for _, p := range candidates {
		if p.Seat > fromSeat {
			return p.Seat
		}
	}

	return candidates[0].Seat
}

func seatOf(players []*Player, seat int) *Player {
	for _, p := range players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

func isActive(p *Player) bool {
	return p.Status == PlayerStatus_Active
}

func hasChips(p *Player) bool {
	return p.Balance > 0
}

func isLive(p *Player) bool {
	return p.Status == PlayerStatus_Active || p.Status == PlayerStatus_AllIn
}

func filterPlayers(players []*Player, match func(*Player) bool) []*Player {
	return funk.Filter(players, match).([]*Player)
}

// blindSeats picks the small and big blind seats; heads-up the dealer posts the small blind.
func blindSeats(participants []*Player, dealerSeat int) (sbSeat int, bbSeat int) {
	if len(participants) == 2 {
		sbSeat = dealerSeat
	} else {
		sbSeat = nextSeat(participants, dealerSeat, hasChips)
	}
	bbSeat = nextSeat(participants, sbSeat, hasChips)
	return sbSeat, bbSeat
}
