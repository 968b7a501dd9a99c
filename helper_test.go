package pokerdealer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1700000000, 0)

const testTableID = "table 1"

func apply(t *testing.T, state *GameState, kind ActionKind, payload Payload) *GameState {
	t.Helper()
	next, _, err := Reduce(state, NewMessage(kind, "dealer", payload), testNow)
	require.NoError(t, err, "action %s", kind)
	return next
}

func applyWithEffects(t *testing.T, state *GameState, kind ActionKind, payload Payload) (*GameState, []Effect) {
	t.Helper()
	next, effects, err := Reduce(state, NewMessage(kind, "dealer", payload), testNow)
	require.NoError(t, err, "action %s", kind)
	return next, effects
}

func reject(t *testing.T, state *GameState, kind ActionKind, payload Payload) error {
	t.Helper()
	next, effects, err := Reduce(state, NewMessage(kind, "dealer", payload), testNow)
	require.Error(t, err, "action %s", kind)
	require.Same(t, state, next)
	require.Nil(t, effects)
	return err
}

func playerID(seat int) string {
	return fmt.Sprintf("player %d", seat)
}

// newCashTable seats one player per chip amount at seats 0..n-1.
func newCashTable(t *testing.T, chips ...int64) *GameState {
	t.Helper()
	state := apply(t, NewGameState(), ActionKind_CreateTable, Payload{
		Table: &TableSetting{
			ID:       testTableID,
			Name:     "cash",
			MaxSeats: 9,
		},
	})

	for seat, amount := range chips {
		state = apply(t, state, ActionKind_SeatPlayer, Payload{
			Player: &PlayerSetting{
				ID:      playerID(seat),
				Name:    playerID(seat),
				TableID: testTableID,
				Seat:    seat,
				Chips:   amount,
			},
		})
	}

	return state
}

func startCashHand(t *testing.T, state *GameState, sb, bb, ante int64) *GameState {
	t.Helper()
	return apply(t, state, ActionKind_StartHand, Payload{
		TableID: testTableID,
		Blinds: &HandBlinds{
			SmallBlind: sb,
			BigBlind:   bb,
			Ante:       ante,
		},
	})
}

func wager(t *testing.T, state *GameState, kind ActionKind, seat int, amount int64) *GameState {
	t.Helper()
	return apply(t, state, kind, Payload{
		TableID:  testTableID,
		PlayerID: playerID(seat),
		Amount:   amount,
	})
}

func advance(t *testing.T, state *GameState) *GameState {
	t.Helper()
	return apply(t, state, ActionKind_AdvanceBettingRound, Payload{TableID: testTableID})
}

func findEffect(effects []Effect, kind EffectKind) *Effect {
	for idx := range effects {
		if effects[idx].Kind == kind {
			return &effects[idx]
		}
	}
	return nil
}

func countEffects(effects []Effect, kind EffectKind) int {
	count := 0
	for _, effect := range effects {
		if effect.Kind == kind {
			count++
		}
	}
	return count
}
