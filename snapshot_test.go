package pokerdealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadGameState_FillsMissingFields(t *testing.T) {
	data := []byte(`{
		"tables": {
			"table 1": {"id": "table 1", "name": "legacy", "max_seats": 6}
		},
		"players": {
			"player 0": {"id": "player 0", "table_id": "table 1", "seat": 0, "balance": 100},
			"player 1": {"id": "player 1", "table_id": "table 1", "seat": 1}
		},
		"tournaments": {
			"tournament 1": {"id": "tournament 1", "is_started": true}
		}
	}`)

	state, err := LoadGameState(data)
	require.NoError(t, err)

	table := state.Tables[testTableID]
	require.NotNil(t, table)
	assert.Equal(t, Round_None, table.Round)
	assert.Equal(t, UnsetValue, table.DealerSeat)
	assert.Equal(t, UnsetValue, table.CurrentTurnSeat)
	assert.Equal(t, UnsetValue, table.BlindLevelIndex)
	assert.NotNil(t, table.Pots)
	assert.NotNil(t, table.BetActions)

	assert.Equal(t, PlayerStatus_Active, state.Players[playerID(0)].Status)
	assert.Equal(t, PlayerStatus_SittingOut, state.Players[playerID(1)].Status)
	assert.Equal(t, 1, state.Players[playerID(1)].Seat)

	tournament := state.Tournaments["tournament 1"]
	require.NotNil(t, tournament)
	assert.False(t, tournament.IsPaused())
	assert.NotNil(t, tournament.Structure.Levels)

	empty, err := LoadGameState([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Tables)
	assert.NotNil(t, empty.Players)
	assert.NotNil(t, empty.Tournaments)

	_, err = LoadGameState([]byte(`{"tables": [`))
	assert.Error(t, err)
}

func Test_Clone_IsIndependent(t *testing.T) {
	state := allInShowdown(t)
	state = apply(t, state, ActionKind_StartPotDistribution, Payload{TableID: testTableID})

	cloned, err := state.Clone()
	require.NoError(t, err)
	assert.Equal(t, state, cloned)

	cloned.Players[playerID(0)].Balance = 99999
	cloned.Tables[testTableID].Distribution.SelectedWinnerIDs = append(cloned.Tables[testTableID].Distribution.SelectedWinnerIDs, playerID(0))
	assert.Equal(t, int64(0), state.Players[playerID(0)].Balance)
	assert.Empty(t, state.Tables[testTableID].Distribution.SelectedWinnerIDs)

	data, err := state.Snapshot()
	require.NoError(t, err)
	restored, err := LoadGameState(data)
	require.NoError(t, err)
	assert.Equal(t, state, restored)
}
