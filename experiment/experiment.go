// Package experiment drives bandit policies against a fixed arm set and
// collects the per-step statistics a plotting front end consumes.
package experiment

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/algorithm"
	"github.com/sw965/kbandit/arm"
	"gonum.org/v1/gonum/floats"
)

// Runner compares Policies on Arms, averaging Runs independent trials of Steps pulls each.
//
// Every policy is Reset before each trial. The arm set is shared and fixed.
// A Runner is sequential. Give every concurrently running Runner its own arms and policies.
type Runner struct {
	Arms     arm.Arms
	Policies []algorithm.Policy
	Steps    int
	Runs     int
	Logger   *slog.Logger
}

func (r *Runner) Validate() error {
	k := len(r.Arms)
	if k == 0 {
		return errors.Wrap(kbandit.ErrInvalidParameter, "runner has no arms")
	}
	if len(r.Policies) == 0 {
		return errors.Wrap(kbandit.ErrInvalidParameter, "runner has no policies")
	}
	for i, p := range r.Policies {
		if p == nil {
			return errors.Wrapf(kbandit.ErrInvalidParameter, "policy %d is nil", i)
		}
		if p.K() != k {
			return errors.Wrapf(kbandit.ErrInvalidParameter, "policy %s has k=%d but there are %d arms", p.Label(), p.K(), k)
		}
	}
	if r.Steps <= 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "steps=%d must be > 0", r.Steps)
	}
	if r.Runs <= 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "runs=%d must be > 0", r.Runs)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// trial holds the statistics of one policy over one run.
type trial struct {
	rewards []float64
	optimal []float64
	regret  []float64
}

func newTrial(steps int) trial {
	return trial{
		rewards: make([]float64, steps),
		optimal: make([]float64, steps),
		regret:  make([]float64, steps),
	}
}

// play runs one trial. UCB2 epochs may ask for more pulls than steps remain,
// so they are truncated at the horizon.
func (r *Runner) play(p algorithm.Policy, optArm int, optValue float64, tr trial) error {
	for t := 0; t < r.Steps; {
		sel, err := p.SelectArm(t)
		if err != nil {
			return errors.Wrapf(err, "%s select at step %d", p.Label(), t)
		}
		if sel.Arm < 0 || sel.Arm >= len(r.Arms) {
			return errors.Wrapf(kbandit.ErrInvalidArmIndex, "%s selected arm=%d", p.Label(), sel.Arm)
		}
		if sel.Pulls < 1 {
			return errors.Wrapf(kbandit.ErrInvalidParameter, "%s asked for %d pulls", p.Label(), sel.Pulls)
		}

		a := r.Arms[sel.Arm]
		for j := 0; j < sel.Pulls && t < r.Steps; j++ {
			reward := a.Pull()
			if err := p.Update(sel.Arm, reward, t); err != nil {
				return errors.Wrapf(err, "%s update at step %d", p.Label(), t)
			}
			tr.rewards[t] = reward
			if sel.Arm == optArm {
				tr.optimal[t] = 1.0
			} else {
				tr.optimal[t] = 0.0
			}
			tr.regret[t] = optValue - reward
			t++
		}
	}
	return nil
}

func (r *Runner) Run() (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	log := r.logger()
	n, k := len(r.Policies), len(r.Arms)
	optArm, optValue := r.Arms.Optimal()
	res := newResult(n, k, r.Steps, r.Runs)
	res.OptimalArm, res.OptimalValue = optArm, optValue
	for i, p := range r.Policies {
		res.Labels[i] = p.Label()
	}

	log.Info("experiment started",
		slog.Int("arms", k),
		slog.Int("policies", n),
		slog.Int("steps", r.Steps),
		slog.Int("runs", r.Runs),
		slog.Int("optimal_arm", optArm),
		slog.Float64("optimal_value", optValue),
	)

	start := time.Now()
	tr := newTrial(r.Steps)
	regret := make([]float64, r.Steps)
	for run := 0; run < r.Runs; run++ {
		for i, p := range r.Policies {
			p.Reset()
			if err := r.play(p, optArm, optValue, tr); err != nil {
				return nil, errors.Wrapf(err, "run %d", run)
			}
			floats.Add(res.Rewards[i], tr.rewards)
			floats.Add(res.OptimalSelections[i], tr.optimal)
			floats.Add(res.Regret[i], floats.CumSum(regret, tr.regret))

			counts := p.Counts()
			for j, c := range counts {
				res.ArmCounts[i][j] += float64(c)
			}
			floats.Add(res.ArmRewards[i], p.Values())
		}
		log.Debug("run finished", slog.Int("run", run))
	}

	scale := 1.0 / float64(r.Runs)
	for i := range r.Policies {
		floats.Scale(scale, res.Rewards[i])
		floats.Scale(100.0*scale, res.OptimalSelections[i])
		floats.Scale(scale, res.Regret[i])
		floats.Scale(scale, res.ArmCounts[i])
		floats.Scale(scale, res.ArmRewards[i])
	}

	log.Info("experiment finished", slog.Duration("elapsed", time.Since(start)))
	for _, row := range res.Summary() {
		log.Debug("policy summary",
			slog.String("policy", row.Label),
			slog.Float64("mean_reward", row.MeanReward),
			slog.Float64("final_regret", row.FinalRegret),
			slog.Float64("optimal_percent", row.FinalOptimalPercent),
		)
	}
	return res, nil
}
