package types

import "math"

// BonusKey is the Info entry added by BonusWrapper to every step result.
const BonusKey = "exploration_bonus"

// UncertaintyEstimator measures how uncertain a (state, action) pair
// still is after the transitions observed so far.
type UncertaintyEstimator interface {
	Update(state State, action Action, nextState State, reward float64)
	Measure(state State, action Action) float64
}

// CounterEstimator counts visits and reports 1/sqrt(n) uncertainty.
type CounterEstimator struct {
	visits map[string]float64
}

var _ UncertaintyEstimator = &CounterEstimator{}

func NewCounterEstimator() *CounterEstimator {
	return &CounterEstimator{
		visits: make(map[string]float64),
	}
}

func (c *CounterEstimator) key(state State, action Action) string {
	return state.Hash() + "|" + action.Hash()
}

func (c *CounterEstimator) Update(state State, action Action, _ State, _ float64) {
	c.visits[c.key(state, action)] += 1
}

func (c *CounterEstimator) Measure(state State, action Action) float64 {
	n := c.visits[c.key(state, action)]
	if n == 0 {
		return 1
	}
	return 1 / math.Sqrt(n)
}

// BonusWrapper augments the Info of every step result with an
// exploration bonus computed by an uncertainty estimator. The wrapped
// environment's rewards are untouched; consumers decide whether to add
// the bonus.
type BonusWrapper struct {
	env       Environment
	estimator UncertaintyEstimator
	scale     float64
	prev      State
}

var _ Environment = &BonusWrapper{}

func NewBonusWrapper(env Environment, estimator UncertaintyEstimator, scale float64) *BonusWrapper {
	return &BonusWrapper{
		env:       env,
		estimator: estimator,
		scale:     scale,
	}
}

func (b *BonusWrapper) Reset() State {
	b.prev = b.env.Reset()
	return b.prev
}

func (b *BonusWrapper) Step(action Action) StepResult {
	result := b.env.Step(action)
	bonus := 0.0
	if b.prev != nil {
		b.estimator.Update(b.prev, action, result.State, result.Reward)
		bonus = b.scale * b.estimator.Measure(b.prev, action)
	}
	b.prev = result.State
	if result.Info == nil {
		result.Info = make(map[string]float64)
	}
	result.Info[BonusKey] = bonus
	return result
}
