package pokerdealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateTable(t *testing.T) {
	state := apply(t, NewGameState(), ActionKind_CreateTable, Payload{
		Table: &TableSetting{Name: "unnamed"},
	})
	require.Len(t, state.Tables, 1)
	for id, table := range state.Tables {
		assert.NotEmpty(t, id)
		assert.Equal(t, DefaultMaxSeats, table.MaxSeats)
		assert.Equal(t, UnsetValue, table.DealerSeat)
		assert.Equal(t, Round_None, table.Round)
	}

	state = newCashTable(t)
	assert.ErrorIs(t, reject(t, state, ActionKind_CreateTable, Payload{Table: &TableSetting{ID: testTableID}}), ErrTableAlreadyExists)
	assert.ErrorIs(t, reject(t, state, ActionKind_CreateTable, Payload{}), ErrInvalidPayload)
	assert.ErrorIs(t, reject(t, state, ActionKind_CloseTable, Payload{TableID: "missing"}), ErrTableNotFound)
}

func Test_SeatPlayer(t *testing.T) {
	state := newCashTable(t, 1000, 1000)

	seat := func(id string, tableID string, seatNo int) error {
		return reject(t, state, ActionKind_SeatPlayer, Payload{
			Player: &PlayerSetting{ID: id, TableID: tableID, Seat: seatNo, Chips: 1000},
		})
	}

	assert.ErrorIs(t, seat("newcomer", testTableID, 0), ErrSeatTaken)
	assert.ErrorIs(t, seat("newcomer", testTableID, 9), ErrInvalidSeat)
	assert.ErrorIs(t, seat("newcomer", testTableID, -1), ErrInvalidSeat)
	assert.ErrorIs(t, seat("newcomer", "missing", 3), ErrTableNotFound)
	assert.ErrorIs(t, seat(playerID(0), testTableID, 3), ErrPlayerAlreadySeated)
	assert.ErrorIs(t, reject(t, state, ActionKind_SeatPlayer, Payload{
		Player: &PlayerSetting{ID: "newcomer", TableID: testTableID, Seat: 3, Chips: -5},
	}), ErrInvalidPayload)

	state = startCashHand(t, state, 10, 20, 0)
	state = apply(t, state, ActionKind_SeatPlayer, Payload{
		Player: &PlayerSetting{ID: "newcomer", TableID: testTableID, Seat: 3, Chips: 500},
	})

	// joins the next hand
	newcomer := state.Players["newcomer"]
	assert.Equal(t, PlayerStatus_SittingOut, newcomer.Status)
	assert.Equal(t, int64(500), newcomer.Balance)
	assert.NotContains(t, state.HandPlayers(testTableID), newcomer)
}

func Test_RemovePlayer(t *testing.T) {
	state := newCashTable(t, 1000, 1000, 1000)
	state = startCashHand(t, state, 10, 20, 0)

	assert.ErrorIs(t, reject(t, state, ActionKind_RemovePlayer, Payload{PlayerID: playerID(0)}), ErrPlayerInHand)
	assert.ErrorIs(t, reject(t, state, ActionKind_RemovePlayer, Payload{PlayerID: "missing"}), ErrPlayerNotFound)

	// a folded player still has chips in the pot
	state = wager(t, state, ActionKind_Fold, 0, 0)
	state = wager(t, state, ActionKind_Fold, 1, 0)
	require.False(t, state.Tables[testTableID].IsHandInProgress)

	state = apply(t, state, ActionKind_RemovePlayer, Payload{PlayerID: playerID(0)})
	assert.NotContains(t, state.Players, playerID(0))
	assert.Len(t, state.TablePlayers(testTableID), 2)
}

func Test_AddChips(t *testing.T) {
	state := newCashTable(t, 1000, 0)
	assert.Equal(t, PlayerStatus_SittingOut, state.Players[playerID(1)].Status)

	assert.ErrorIs(t, reject(t, state, ActionKind_AddChips, Payload{PlayerID: playerID(1)}), ErrInvalidAmount)

	state = apply(t, state, ActionKind_AddChips, Payload{PlayerID: playerID(1), Amount: 800})
	assert.Equal(t, int64(800), state.Players[playerID(1)].Balance)
	assert.Equal(t, PlayerStatus_Active, state.Players[playerID(1)].Status)

	state = startCashHand(t, state, 10, 20, 0)
	assert.ErrorIs(t, reject(t, state, ActionKind_AddChips, Payload{PlayerID: playerID(1), Amount: 100}), ErrPlayerInHand)
	assert.Equal(t, int64(1800), state.TotalChips())
}
