package pokerdealer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerdealer/blind"
)

type memoryStore struct {
	mu        sync.Mutex
	snapshots int
	last      *GameState
	hands     []HandSummary
}

func (s *memoryStore) SaveSnapshot(state *GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots++
	s.last = state
	return nil
}

func (s *memoryStore) AppendHandHistory(summary HandSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands = append(s.hands, summary)
	return nil
}

// fakeClock is a wall clock that only moves when told to.
type fakeClock struct {
	offset int64
}

func (c *fakeClock) Now() time.Time {
	return testNow.Add(time.Duration(atomic.LoadInt64(&c.offset)))
}

func (c *fakeClock) Forward(d time.Duration) {
	atomic.AddInt64(&c.offset, int64(d))
}

func newTestEngine(t *testing.T, opts ...EngineOpt) *Engine {
	t.Helper()
	options := NewEngineOptions()
	options.ClockInterval = 10 * time.Millisecond
	options.ReadyTimeout = 10

	e := NewEngine(options, opts...)
	t.Cleanup(e.Close)
	return e
}

func seatHeadsUp(t *testing.T, e *Engine, autoStart bool) {
	t.Helper()
	require.NoError(t, e.CreateTable("dealer", TableSetting{ID: testTableID, AutoStartNextHand: autoStart}))
	for seat := 0; seat < 2; seat++ {
		require.NoError(t, e.SeatPlayer("dealer", PlayerSetting{
			ID:      playerID(seat),
			TableID: testTableID,
			Seat:    seat,
			Chips:   1000,
		}))
	}
}

func Test_Engine_BlindClockAdvancesOnce(t *testing.T) {
	clock := &fakeClock{}
	e := newTestEngine(t, WithNow(clock.Now))

	require.NoError(t, e.CreateTournament("dealer", TournamentSetting{
		ID: testTournamentID,
		Intervals: []blind.Interval{
			{StartingSmallBlind: 100, Increment: 100, LevelDuration: 1, NumberOfLevels: 3},
		},
	}))
	require.NoError(t, e.StartTournament("dealer", testTournamentID))

	status, err := e.ClockStatus(testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), status.RemainingSeconds)
	assert.True(t, status.IsRunning)

	clock.Forward(61 * time.Second)

	assert.Eventually(t, func() bool {
		return e.GetState().Tournaments[testTournamentID].CurrentLevelIndex == 1
	}, 2*time.Second, 10*time.Millisecond)

	// the new level starts now, so nothing else expires
	time.Sleep(100 * time.Millisecond)
	tournament := e.GetState().Tournaments[testTournamentID]
	assert.Equal(t, 1, tournament.CurrentLevelIndex)
	assert.Equal(t, clock.Now().Unix(), tournament.LevelStartedAt)

	require.NoError(t, e.StopTournament("dealer", testTournamentID))
	status, err = e.ClockStatus(testTournamentID)
	require.NoError(t, err)
	assert.True(t, status.IsStopped)
	assert.False(t, status.IsRunning)

	_, err = e.ClockStatus("missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func Test_Engine_PausedClockDoesNotAdvance(t *testing.T) {
	clock := &fakeClock{}
	e := newTestEngine(t, WithNow(clock.Now))

	require.NoError(t, e.CreateTournament("dealer", TournamentSetting{
		ID:        testTournamentID,
		Intervals: []blind.Interval{{StartingSmallBlind: 100, Increment: 100, LevelDuration: 1, NumberOfLevels: 3}},
	}))
	require.NoError(t, e.StartTournament("dealer", testTournamentID))
	require.NoError(t, e.PauseBlindClock("dealer", testTournamentID))

	clock.Forward(5 * time.Minute)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, e.GetState().Tournaments[testTournamentID].CurrentLevelIndex)

	status, err := e.ClockStatus(testTournamentID)
	require.NoError(t, err)
	assert.True(t, status.IsPaused)
	assert.Equal(t, int64(60), status.RemainingSeconds)

	require.NoError(t, e.ResumeBlindClock("dealer", testTournamentID))
	status, err = e.ClockStatus(testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), status.RemainingSeconds)
}

func Test_Engine_DispatchReportsErrors(t *testing.T) {
	rejected := make(chan error, 1)
	callbacks := NewEngineCallbacks()
	callbacks.OnErrorUpdated = func(msg Message, err error) {
		select {
		case rejected <- err:
		default:
		}
	}

	e := newTestEngine(t, WithCallbacks(callbacks))
	seatHeadsUp(t, e, false)

	before := e.GetState()
	err := e.CreateTable("dealer", TableSetting{ID: testTableID})
	assert.ErrorIs(t, err, ErrTableAlreadyExists)

	select {
	case got := <-rejected:
		assert.ErrorIs(t, got, ErrTableAlreadyExists)
	default:
		t.Fatal("error callback was not called")
	}

	assert.Equal(t, before.UpdateSerial, e.GetState().UpdateSerial)

	// a rejected action leaves the published state untouched
	assert.ErrorIs(t, e.PlayerCheck(testTableID, playerID(0)), ErrHandNotInProgress)
	assert.Equal(t, before, e.GetState())
}

func Test_Engine_PersistsSnapshotsAndHands(t *testing.T) {
	store := &memoryStore{}
	var ended []HandSummary
	var endedMu sync.Mutex

	e := newTestEngine(t, WithStore(store))
	e.OnHandEnded(func(summary HandSummary) {
		endedMu.Lock()
		ended = append(ended, summary)
		endedMu.Unlock()
	})

	seatHeadsUp(t, e, false)
	require.NoError(t, e.StartHand("dealer", testTableID, &HandBlinds{SmallBlind: 10, BigBlind: 20}))

	// heads-up the dealer posts the small blind and acts first
	require.NoError(t, e.PlayerFold(testTableID, playerID(0)))

	store.mu.Lock()
	assert.Equal(t, 5, store.snapshots)
	require.Len(t, store.hands, 1)
	assert.Equal(t, 1, store.hands[0].HandNumber)
	assert.Equal(t, int64(1010), store.last.Players[playerID(1)].Balance)
	store.mu.Unlock()

	endedMu.Lock()
	assert.Len(t, ended, 1)
	endedMu.Unlock()

	state := e.GetState()
	assert.Equal(t, int64(990), state.Players[playerID(0)].Balance)
	assert.Equal(t, int64(2000), state.TotalChips())

	data, err := e.Snapshot()
	require.NoError(t, err)
	restored, err := LoadGameState(data)
	require.NoError(t, err)

	resumed := newTestEngine(t, WithState(restored))
	assert.Equal(t, state, resumed.GetState())
}

func Test_Engine_AutoStartNextHand(t *testing.T) {
	e := newTestEngine(t)
	seatHeadsUp(t, e, true)

	assert.ErrorIs(t, e.PlayerReady(testTableID, playerID(0)), ErrTableNotWaiting)

	require.NoError(t, e.StartHand("dealer", testTableID, &HandBlinds{SmallBlind: 10, BigBlind: 20}))
	firstDealer := e.GetState().Tables[testTableID].DealerSeat
	require.NoError(t, e.PlayerFold(testTableID, playerID(0)))

	require.NoError(t, e.PlayerReady(testTableID, playerID(0)))
	assert.Error(t, e.PlayerReady(testTableID, "stranger"))
	require.NoError(t, e.PlayerReady(testTableID, playerID(1)))

	assert.Eventually(t, func() bool {
		table := e.GetState().Tables[testTableID]
		return table.HandCount == 2 && table.IsHandInProgress
	}, 2*time.Second, 10*time.Millisecond)

	state := e.GetState()
	table := state.Tables[testTableID]
	assert.Equal(t, HandBlinds{SmallBlind: 10, BigBlind: 20}, table.Blinds)
	assert.Equal(t, int64(30), table.Pot)

	// the button rotates, so the blinds swap heads-up
	assert.NotEqual(t, firstDealer, table.DealerSeat)
	dealer := state.PlayerAtSeat(testTableID, table.DealerSeat)
	require.NotNil(t, dealer)
	assert.Equal(t, int64(10), dealer.CurrentBet)
	assert.Equal(t, int64(20), state.PlayerAtSeat(testTableID, firstDealer).CurrentBet)
}

func Test_Engine_ManagerFlow(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateTable("dealer", TableSetting{ID: testTableID}))
	chips := []int64{500, 1000, 1000}
	for seat, amount := range chips {
		require.NoError(t, e.SeatPlayer("dealer", PlayerSetting{ID: playerID(seat), TableID: testTableID, Seat: seat, Chips: amount}))
	}

	require.NoError(t, e.StartHand("dealer", testTableID, &HandBlinds{SmallBlind: 10, BigBlind: 20}))
	require.NoError(t, e.PlayerAllIn(testTableID, playerID(0)))
	require.NoError(t, e.PlayerCall(testTableID, playerID(1)))
	require.NoError(t, e.PlayerRaise(testTableID, playerID(2), 1000))
	require.NoError(t, e.PlayerCall(testTableID, playerID(1)))
	for i := 0; i < 4; i++ {
		require.NoError(t, e.AdvanceBettingRound("dealer", testTableID))
	}

	require.NoError(t, e.StartPotDistribution("dealer", testTableID))
	require.NoError(t, e.TogglePotWinner("dealer", testTableID, playerID(0)))
	require.NoError(t, e.DeliverCurrentPot("dealer", testTableID))
	require.NoError(t, e.DeliverAllEligiblePots("dealer", testTableID, playerID(2)))

	state := e.GetState()
	assert.False(t, state.Tables[testTableID].IsHandInProgress)
	assert.Equal(t, int64(1500), state.Players[playerID(0)].Balance)
	assert.Equal(t, int64(1000), state.Players[playerID(2)].Balance)
	assert.Equal(t, int64(0), state.Players[playerID(1)].Balance)

	require.NoError(t, e.MoveDealerButton("dealer", testTableID, SeatOf(2)))
	require.NoError(t, e.RemovePlayer("dealer", playerID(1)))
	require.NoError(t, e.AddChips("dealer", playerID(2), 500))
	require.NoError(t, e.CloseTable("dealer", testTableID))

	state = e.GetState()
	assert.Empty(t, state.Tables)
	assert.Equal(t, int64(1500), state.Players[playerID(2)].Balance)

	e.Close()
	assert.ErrorIs(t, e.CreateTable("dealer", TableSetting{ID: "late"}), ErrEngineClosed)
}
