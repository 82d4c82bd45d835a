package algorithm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/kbandit/algorithm"
	"github.com/sw965/kbandit/mathx/randx"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestUCB1ColdStart(t *testing.T) {
	for _, c := range []float64{0.0, 0.5, 1.0} {
		u, err := algorithm.NewUCB1(3, c)
		require.NoError(t, err)
		for want, step := range []int{7, 0, 123} {
			sel, err := u.SelectArm(step)
			require.NoError(t, err)
			assert.Equal(t, algorithm.Selection{Arm: want, Pulls: 1}, sel)
			require.NoError(t, u.Update(sel.Arm, 0.0, step))
		}
	}
}

func TestUCB1ColdStartPicksLowestUnpulled(t *testing.T) {
	u, err := algorithm.NewUCB1(4, 1.0)
	require.NoError(t, err)
	require.NoError(t, u.Update(0, 1.0, 0))
	require.NoError(t, u.Update(2, 1.0, 1))

	sel, err := u.SelectArm(2)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Arm)
}

func TestUCB1Bound(t *testing.T) {
	u, err := algorithm.NewUCB1(2, 1.0)
	require.NoError(t, err)

	// arm 0: mean 0.6 from 5 pulls; arm 1: mean 0.5 from 1 pull
	for i := 0; i < 5; i++ {
		require.NoError(t, u.Update(0, 0.6, i))
	}
	require.NoError(t, u.Update(1, 0.5, 5))

	step := 6
	b0 := 0.6 + math.Sqrt(2*math.Log(float64(step+1))/5)
	b1 := 0.5 + math.Sqrt(2*math.Log(float64(step+1))/1)
	require.Greater(t, b1, b0)

	sel, err := u.SelectArm(step)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Arm)
}

func TestUCB1TieBreaksToLowestIndex(t *testing.T) {
	u, err := algorithm.NewUCB1(3, 0.0)
	require.NoError(t, err)
	require.NoError(t, u.Update(0, 0.2, 0))
	require.NoError(t, u.Update(1, 0.9, 1))
	require.NoError(t, u.Update(2, 0.9, 2))

	for step := 3; step < 10; step++ {
		sel, err := u.SelectArm(step)
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Arm)
	}
}

func TestUCB2Tau(t *testing.T) {
	u, err := algorithm.NewUCB2(1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, u.Tau(0))
	assert.Equal(t, 1.5, u.Tau(1))
	assert.Equal(t, 2.25, u.Tau(2))
	assert.Equal(t, 1, u.EpochLength(0))
	assert.Equal(t, 1, u.EpochLength(1))
	assert.Equal(t, 2, u.EpochLength(2))
}

func TestUCB2PullCounts(t *testing.T) {
	u, err := algorithm.NewUCB2(1, 0.5)
	require.NoError(t, err)

	sel, err := u.SelectArm(0)
	require.NoError(t, err)
	assert.Equal(t, algorithm.Selection{Arm: 0, Pulls: 1}, sel)
	assert.Equal(t, []int{1}, u.Epochs())
	require.NoError(t, u.Update(0, 1.0, 0))

	sel, err = u.SelectArm(1)
	require.NoError(t, err)
	assert.Equal(t, algorithm.Selection{Arm: 0, Pulls: 1}, sel)
	assert.Equal(t, []int{2}, u.Epochs())
	require.NoError(t, u.Update(0, 1.0, 1))

	sel, err = u.SelectArm(2)
	require.NoError(t, err)
	assert.Equal(t, algorithm.Selection{Arm: 0, Pulls: 2}, sel)
}

func TestUCB2ColdStart(t *testing.T) {
	u, err := algorithm.NewUCB2(3, 0.1)
	require.NoError(t, err)
	for want := 0; want < 3; want++ {
		sel, err := u.SelectArm(want)
		require.NoError(t, err)
		assert.Equal(t, want, sel.Arm)
		assert.Equal(t, 1, sel.Pulls)
		require.NoError(t, u.Update(sel.Arm, 0.5, want))
	}
	assert.Equal(t, []int{1, 1, 1}, u.Epochs())
}

func TestUCB2BonusShrinksWithEpochs(t *testing.T) {
	u, err := algorithm.NewUCB2(2, 0.5)
	require.NoError(t, err)

	for step := 0; step < 2; step++ {
		sel, err := u.SelectArm(step)
		require.NoError(t, err)
		require.NoError(t, u.Update(sel.Arm, 0.5, step))
	}

	// Equal means and epochs: the tie goes to arm 0.
	sel, err := u.SelectArm(100)
	require.NoError(t, err)
	require.Equal(t, 0, sel.Arm)
	require.NoError(t, u.Update(0, 0.5, 100))
	assert.Equal(t, []int{2, 1}, u.Epochs())

	// Arm 0 is now in a later epoch, so its bonus is smaller.
	sel, err = u.SelectArm(101)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Arm)
}

func TestUCB2Reset(t *testing.T) {
	u, err := algorithm.NewUCB2(2, 0.3)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		sel, err := u.SelectArm(i)
		require.NoError(t, err)
		require.NoError(t, u.Update(sel.Arm, 1.0, i))
	}
	u.Reset()
	assert.Equal(t, []int{0, 0}, u.Epochs())
	assert.Equal(t, []int{0, 0}, u.Counts())
}

func TestSoftmaxUniformAtHighTemperature(t *testing.T) {
	k := 4
	s, err := algorithm.NewSoftmax(k, 1e9, randx.New(2024))
	require.NoError(t, err)
	for i, r := range []float64{0.0, 1.0, 5.0, 10.0} {
		require.NoError(t, s.Update(i, r, i))
	}

	n := 40000
	obs := make([]float64, k)
	for i := 0; i < n; i++ {
		sel, err := s.SelectArm(k + i)
		require.NoError(t, err)
		obs[sel.Arm]++
	}
	for _, p := range s.Probabilities() {
		assert.InDelta(t, 0.25, p, 1e-6)
	}

	exp := make([]float64, k)
	for i := range exp {
		exp[i] = float64(n) / float64(k)
	}
	x := stat.ChiSquare(obs, exp)
	pValue := distuv.ChiSquared{K: float64(k - 1)}.Survival(x)
	assert.Greater(t, pValue, 0.001, "chi2=%v obs=%v", x, obs)
}

func TestSoftmaxPrefersBestAtLowTemperature(t *testing.T) {
	s, err := algorithm.NewSoftmax(3, 0.01, randx.New(8))
	require.NoError(t, err)
	require.NoError(t, s.Update(0, 0.1, 0))
	require.NoError(t, s.Update(1, 0.9, 1))
	require.NoError(t, s.Update(2, 0.2, 2))

	for i := 0; i < 100; i++ {
		sel, err := s.SelectArm(3 + i)
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Arm)
	}
}

func TestSoftmaxLargeValuesStayFinite(t *testing.T) {
	s, err := algorithm.NewSoftmax(3, 0.001, randx.New(8))
	require.NoError(t, err)
	require.NoError(t, s.Update(0, 1000.0, 0))
	require.NoError(t, s.Update(1, 999.0, 1))
	require.NoError(t, s.Update(2, -1000.0, 2))

	sel, err := s.SelectArm(3)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Arm)
	probs := s.Probabilities()
	for _, p := range probs {
		assert.False(t, math.IsNaN(p))
	}
	assert.InDelta(t, 1.0, probs[0], 1e-12)
}

func TestSoftmaxTinyTemperature(t *testing.T) {
	s, err := algorithm.NewSoftmax(2, 1e-308, randx.New(8))
	require.NoError(t, err)
	require.NoError(t, s.Update(0, 1.0, 0))
	require.NoError(t, s.Update(1, 2.0, 1))

	for i := 0; i < 10; i++ {
		sel, err := s.SelectArm(2 + i)
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Arm)
	}
	assert.Equal(t, []float64{0, 1}, s.Probabilities())
}

func TestGradientSingleStep(t *testing.T) {
	g, err := algorithm.NewGradient(2, 0.1, randx.New(1))
	require.NoError(t, err)

	_, err = g.SelectArm(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, g.Probabilities())

	require.NoError(t, g.Update(0, 1.0, 0))
	assert.Equal(t, 1.0, g.Baseline())
	// reward equals the freshly updated baseline, so no preference moves
	assert.Equal(t, []float64{0.0, 0.0}, g.Preferences())
	assert.Equal(t, []int{1, 0}, g.Counts())
	assert.Equal(t, []float64{1.0, 0.0}, g.Values())
}

func TestGradientPreferenceUpdate(t *testing.T) {
	g, err := algorithm.NewGradient(2, 0.1, randx.New(1))
	require.NoError(t, err)
	require.NoError(t, g.Update(0, 1.0, 0))

	_, err = g.SelectArm(1)
	require.NoError(t, err)
	probs := g.Probabilities()

	// baseline: 1 + (3-1)/2 = 2, advantage: 3-2 = 1
	require.NoError(t, g.Update(1, 3.0, 1))
	assert.Equal(t, 2.0, g.Baseline())
	hs := g.Preferences()
	assert.InDelta(t, 0.1*1.0*(0.0-probs[0]), hs[0], 1e-15)
	assert.InDelta(t, 0.1*1.0*(1.0-probs[1]), hs[1], 1e-15)
	assert.InDelta(t, 0.0, hs[0]+hs[1], 1e-15)
}

func TestGradientUsesSelectionTimeProbabilities(t *testing.T) {
	g, err := algorithm.NewGradient(2, 1.0, randx.New(4))
	require.NoError(t, err)
	require.NoError(t, g.Update(0, 0.0, 0))
	require.NoError(t, g.Update(1, 2.0, 1))

	// probs still hold the uniform distribution because SelectArm has not run.
	assert.Equal(t, []float64{0.5, 0.5}, g.Probabilities())
	hs := g.Preferences()
	assert.InDelta(t, -0.5, hs[0], 1e-15)
	assert.InDelta(t, 0.5, hs[1], 1e-15)
}

func TestGradientLearnsBestArm(t *testing.T) {
	g, err := algorithm.NewGradient(3, 0.1, randx.New(12))
	require.NoError(t, err)
	means := []float64{0.2, 1.0, 0.4}
	for step := 0; step < 2000; step++ {
		sel, err := g.SelectArm(step)
		require.NoError(t, err)
		require.NoError(t, g.Update(sel.Arm, means[sel.Arm], step))
	}
	hs := g.Preferences()
	assert.Greater(t, hs[1], hs[0])
	assert.Greater(t, hs[1], hs[2])
}

func TestEpsilonGreedy(t *testing.T) {
	greedy, err := algorithm.NewEpsilonGreedy(3, 0.0, randx.New(1))
	require.NoError(t, err)
	require.NoError(t, greedy.Update(0, 0.3, 0))
	require.NoError(t, greedy.Update(1, 0.8, 1))
	require.NoError(t, greedy.Update(2, 0.8, 2))
	for i := 0; i < 20; i++ {
		sel, err := greedy.SelectArm(3 + i)
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Arm)
	}

	random, err := algorithm.NewEpsilonGreedy(3, 1.0, randx.New(1))
	require.NoError(t, err)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		sel, err := random.SelectArm(i)
		require.NoError(t, err)
		seen[sel.Arm] = true
	}
	assert.Len(t, seen, 3)
}
