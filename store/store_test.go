package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerdealer"
	"github.com/weedbox/pokerdealer/pot"
)

var _ pokerdealer.Store = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "dealer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func Test_Snapshot(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadSnapshot()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	state := pokerdealer.NewGameState()
	state.Tables["table 1"] = &pokerdealer.TableState{
		ID:              "table 1",
		MaxSeats:        6,
		Round:           pokerdealer.Round_None,
		DealerSeat:      pokerdealer.UnsetValue,
		CurrentTurnSeat: pokerdealer.UnsetValue,
		BlindLevelIndex: pokerdealer.UnsetValue,
		Pots:            make([]pot.Pot, 0),
		Awards:          make([]pot.Award, 0),
		BetActions:      make([]pokerdealer.BetAction, 0),
	}
	state.UpdateSerial = 5
	require.NoError(t, s.SaveSnapshot(state))

	loaded, err := s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	// an older snapshot never replaces a newer one
	stale := pokerdealer.NewGameState()
	stale.UpdateSerial = 3
	require.NoError(t, s.SaveSnapshot(stale))

	loaded, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(5), loaded.UpdateSerial)
	assert.Contains(t, loaded.Tables, "table 1")
}

func Test_HandHistory(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.AppendHandHistory(pokerdealer.HandSummary{
			TableID:    "table 1",
			HandNumber: i,
			Blinds:     pokerdealer.HandBlinds{SmallBlind: 10, BigBlind: 20},
			Awards:     []pot.Award{{PlayerID: "player 1", Amount: 30}},
			EndedAt:    int64(1700000000 + i),
		}))
	}
	require.NoError(t, s.AppendHandHistory(pokerdealer.HandSummary{TableID: "table 2", HandNumber: 1, Aborted: true}))

	hands, err := s.HandHistory("table 1", 2)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, 3, hands[0].HandNumber)
	assert.Equal(t, 2, hands[1].HandNumber)
	assert.Equal(t, int64(30), hands[0].Awards[0].Amount)

	hands, err = s.HandHistory("table 2", 0)
	require.NoError(t, err)
	require.Len(t, hands, 1)
	assert.True(t, hands[0].Aborted)

	hands, err = s.HandHistory("missing", 10)
	require.NoError(t, err)
	assert.Empty(t, hands)
}
