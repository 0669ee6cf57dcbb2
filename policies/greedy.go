// Package policies provides action-selection policies backed by solved
// Q tables from the dynprog solvers.
package policies

import (
	"time"

	"github.com/zeu5/tabular-rl/types"
	"golang.org/x/exp/rand"
)

// Greedy follows the argmax of a solved Q table. The table is either
// stationary with shape (S,A), as produced by value iteration, or
// time-indexed with shape (H,S,A), as produced by backward induction.
// States and actions must implement the tabular interfaces.
type Greedy struct {
	q          []float64
	horizon    int
	numStates  int
	numActions int
	epsilon    float64
	rand       *rand.Rand
}

var _ types.Policy = &Greedy{}

// NewGreedy wraps a stationary Q table of length numStates*numActions.
func NewGreedy(q []float64, numStates, numActions int) *Greedy {
	return &Greedy{
		q:          q,
		horizon:    0,
		numStates:  numStates,
		numActions: numActions,
	}
}

// NewFiniteHorizonGreedy wraps a time-indexed Q table of length
// horizon*numStates*numActions. Steps beyond the horizon reuse the last
// time index.
func NewFiniteHorizonGreedy(q []float64, horizon, numStates, numActions int) *Greedy {
	return &Greedy{
		q:          q,
		horizon:    horizon,
		numStates:  numStates,
		numActions: numActions,
	}
}

// WithEpsilon makes the policy explore: with probability epsilon a
// uniformly random action is taken instead of the greedy one.
func (g *Greedy) WithEpsilon(epsilon float64, seed uint64) *Greedy {
	g.epsilon = epsilon
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g.rand = rand.New(rand.NewSource(seed))
	return g
}

func (g *Greedy) Reset() {
}

func (g *Greedy) UpdateIteration(_ int, _ *types.Trace) {
}

func (g *Greedy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if g.rand != nil && g.rand.Float64() < g.epsilon {
		return actions[g.rand.Intn(len(actions))], true
	}
	tState, ok := state.(types.TabularState)
	if !ok {
		return nil, false
	}
	base := tState.Index() * g.numActions
	if g.horizon > 0 {
		h := step
		if h > g.horizon-1 {
			h = g.horizon - 1
		}
		base = (h*g.numStates + tState.Index()) * g.numActions
	}

	var best types.Action
	bestVal := 0.0
	for _, action := range actions {
		tAction, ok := action.(types.TabularAction)
		if !ok {
			return nil, false
		}
		val := g.q[base+tAction.Index()]
		if best == nil || val > bestVal {
			best = action
			bestVal = val
		}
	}
	return best, best != nil
}

func (g *Greedy) Update(_ int, _ types.State, _ types.Action, _ types.StepResult) {}
