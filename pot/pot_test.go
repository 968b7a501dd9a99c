package pot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_AllInSideways(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 500},
		{PlayerID: "B", Amount: 1000},
		{PlayerID: "C", Amount: 1000},
	})

	require.Len(t, pots, 2)

	assert.Equal(t, 0, pots[0].Ordinal)
	assert.Equal(t, int64(1500), pots[0].Amount)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, pots[0].EligiblePlayerIDs)

	assert.Equal(t, 1, pots[1].Ordinal)
	assert.Equal(t, int64(1000), pots[1].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[1].EligiblePlayerIDs)
}

func TestCalculate_FoldedChipsStayInPot(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 300, IsFolded: true},
		{PlayerID: "B", Amount: 1000},
		{PlayerID: "C", Amount: 1000},
	})

	// each threshold keeps its own pot even when the eligible sets match
	require.Len(t, pots, 2)
	assert.Equal(t, int64(900), pots[0].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[0].EligiblePlayerIDs)
	assert.Equal(t, int64(1400), pots[1].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[1].EligiblePlayerIDs)
	assert.Equal(t, 1, pots[1].Ordinal)
}

func TestCalculate_TopTierFolded(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 200},
		{PlayerID: "B", Amount: 600, IsFolded: true},
		{PlayerID: "C", Amount: 400},
	})

	// nobody left in the hand reached 600, so B's excess joins the previous pot
	require.Len(t, pots, 2)
	assert.Equal(t, int64(600), pots[0].Amount)
	assert.Equal(t, int64(600), pots[1].Amount)
	assert.Equal(t, []string{"C"}, pots[1].EligiblePlayerIDs)
	assert.Equal(t, int64(1200), Total(pots))
}

func TestCalculate_Empty(t *testing.T) {
	assert.Empty(t, Calculate(nil))
	assert.Empty(t, Calculate([]Contribution{{PlayerID: "A"}}))
}

func TestCalculate_Conservation(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 500; round++ {
		n := 2 + r.Intn(8)
		contributions := make([]Contribution, 0, n)
		total := int64(0)
		activeCount := 0
		for i := 0; i < n; i++ {
			amount := int64(r.Intn(20)) * 50
			folded := r.Intn(3) == 0
			if i == n-1 && activeCount == 0 {
				folded = false
				amount += 50
			}
			if !folded {
				activeCount++
			}
			contributions = append(contributions, Contribution{
				PlayerID: string(rune('A' + i)),
				Amount:   amount,
				IsFolded: folded,
			})
			total += amount
		}

		pots := Calculate(contributions)
		assert.Equal(t, total, Total(pots))
		for _, p := range pots {
			assert.GreaterOrEqual(t, p.Amount, int64(0))
			if p.Amount > 0 {
				assert.NotEmpty(t, p.EligiblePlayerIDs)
			}
		}
	}
}

func TestSplit_RemainderToEarliestSelected(t *testing.T) {
	awards := Split(Pot{Ordinal: 1, Amount: 1001}, []string{"C", "A", "B"})

	require.Len(t, awards, 3)
	assert.Equal(t, Award{PlayerID: "C", Amount: 335, PotOrdinal: 1}, awards[0])
	assert.Equal(t, Award{PlayerID: "A", Amount: 333, PotOrdinal: 1}, awards[1])
	assert.Equal(t, Award{PlayerID: "B", Amount: 333, PotOrdinal: 1}, awards[2])
	assert.Equal(t, int64(1001), TotalAwarded(awards))
}

func TestDistribution_ToggleAndDeliver(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 500},
		{PlayerID: "B", Amount: 1000},
		{PlayerID: "C", Amount: 1000},
	})
	d := NewDistribution(pots)

	_, err := d.DeliverCurrent()
	assert.ErrorIs(t, err, ErrNoWinnerSelected)

	// toggle is idempotent
	assert.NoError(t, d.ToggleWinner("A"))
	assert.NoError(t, d.ToggleWinner("A"))
	assert.Empty(t, d.SelectedWinnerIDs)

	assert.NoError(t, d.ToggleWinner("A"))
	awards, err := d.DeliverCurrent()
	require.NoError(t, err)
	assert.Equal(t, int64(1500), TotalAwarded(awards))

	// A is not eligible for the side pot
	assert.ErrorIs(t, d.ToggleWinner("A"), ErrPlayerNotEligible)
	assert.NoError(t, d.ToggleWinner("B"))
	assert.NoError(t, d.ToggleWinner("C"))
	awards, err = d.DeliverCurrent()
	require.NoError(t, err)
	assert.Equal(t, []Award{
		{PlayerID: "B", Amount: 500, PotOrdinal: 1},
		{PlayerID: "C", Amount: 500, PotOrdinal: 1},
	}, awards)

	assert.True(t, d.IsFinished())
	_, err = d.DeliverCurrent()
	assert.ErrorIs(t, err, ErrDistributionFinished)
}

func TestSweepEligible_MatchesManualTotal(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 200},
		{PlayerID: "B", Amount: 700},
		{PlayerID: "C", Amount: 700},
		{PlayerID: "D", Amount: 1500},
	})

	for _, winnerID := range []string{"A", "B", "D"} {
		manual := int64(0)
		d := NewDistribution(pots)
		for !d.IsFinished() {
			current, _ := d.CurrentPot()
			if !current.IsEligible(winnerID) {
				d.CurrentIndex++
				continue
			}
			require.NoError(t, d.ToggleWinner(winnerID))
			awards, err := d.DeliverCurrent()
			require.NoError(t, err)
			manual += TotalAwarded(awards)
		}

		awards, _ := SweepEligible(pots, winnerID)
		swept := int64(0)
		for _, a := range awards {
			if a.PlayerID == winnerID {
				swept += a.Amount
			}
		}
		assert.Equal(t, manual, swept, winnerID)
		assert.Equal(t, EligibleTotal(pots, winnerID), swept, winnerID)
	}
}

func TestSweepEligible_ContestedPotsRemain(t *testing.T) {
	pots := Calculate([]Contribution{
		{PlayerID: "A", Amount: 200},
		{PlayerID: "B", Amount: 700},
		{PlayerID: "C", Amount: 700},
	})

	awards, contested := SweepEligible(pots, "A")
	assert.Equal(t, int64(600), TotalAwarded(awards))
	require.Len(t, contested, 1)
	assert.Equal(t, int64(1000), contested[0].Amount)

	// D's uncalled excess goes back to D
	pots = Calculate([]Contribution{
		{PlayerID: "A", Amount: 200},
		{PlayerID: "D", Amount: 900},
	})
	awards, contested = SweepEligible(pots, "A")
	assert.Empty(t, contested)
	assert.Equal(t, []Award{
		{PlayerID: "A", Amount: 400, PotOrdinal: 0},
		{PlayerID: "D", Amount: 700, PotOrdinal: 1},
	}, awards)
}

func TestWithdraw_TakesEligiblePotsInOrder(t *testing.T) {
	pots := []Pot{
		{Ordinal: 0, Amount: 1200, EligiblePlayerIDs: []string{"A", "B", "C"}},
		{Ordinal: 1, Amount: 900, EligiblePlayerIDs: []string{"B", "C"}},
		{Ordinal: 2, Amount: 800, EligiblePlayerIDs: []string{"A", "C"}},
	}

	awards, left := Withdraw(pots, "A", 1500)
	require.Len(t, awards, 2)
	assert.Equal(t, Award{PlayerID: "A", Amount: 1200, PotOrdinal: 0}, awards[0])
	assert.Equal(t, Award{PlayerID: "A", Amount: 300, PotOrdinal: 2}, awards[1])

	require.Len(t, left, 2)
	assert.Equal(t, 1, left[0].Ordinal)
	assert.Equal(t, int64(900), left[0].Amount)
	assert.Equal(t, int64(500), left[1].Amount)
	assert.Equal(t, Total(pots)-TotalAwarded(awards), Total(left))

	// the input pots are untouched
	assert.Equal(t, int64(1200), pots[0].Amount)
}
