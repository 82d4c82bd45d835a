package experiment

import (
	"gonum.org/v1/gonum/stat"
)

// Result holds per-policy statistics averaged over runs.
// Per-step slices are indexed [policy][step] and per-arm slices [policy][arm].
type Result struct {
	Labels       []string
	Steps        int
	Runs         int
	OptimalArm   int
	OptimalValue float64

	// Rewards is the mean reward obtained at each step.
	Rewards [][]float64
	// OptimalSelections is the percentage of runs that pulled the optimal arm at each step.
	OptimalSelections [][]float64
	// Regret is the cumulative regret up to and including each step.
	Regret [][]float64

	// ArmCounts is the mean number of pulls of each arm at the end of a run.
	ArmCounts [][]float64
	// ArmRewards is the mean estimated reward of each arm at the end of a run.
	ArmRewards [][]float64
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func newResult(n, k, steps, runs int) *Result {
	return &Result{
		Labels:            make([]string, n),
		Steps:             steps,
		Runs:              runs,
		Rewards:           newMatrix(n, steps),
		OptimalSelections: newMatrix(n, steps),
		Regret:            newMatrix(n, steps),
		ArmCounts:         newMatrix(n, k),
		ArmRewards:        newMatrix(n, k),
	}
}

type SummaryRow struct {
	Label               string
	MeanReward          float64
	FinalRegret         float64
	FinalOptimalPercent float64
}

// Summary reduces every policy to its mean reward over all steps and its
// final regret and optimal-selection percentage.
func (r *Result) Summary() []SummaryRow {
	rows := make([]SummaryRow, len(r.Labels))
	last := r.Steps - 1
	for i, label := range r.Labels {
		rows[i] = SummaryRow{
			Label:               label,
			MeanReward:          stat.Mean(r.Rewards[i], nil),
			FinalRegret:         r.Regret[i][last],
			FinalOptimalPercent: r.OptimalSelections[i][last],
		}
	}
	return rows
}
