// Package dynprog implements exact dynamic-programming solvers for
// tabular MDPs: backward induction for the finite-horizon setting and
// value iteration for the discounted infinite-horizon setting.
package dynprog

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrShapeMismatch indicates inconsistent reward/transition dimensions
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidParameter indicates an out-of-range solver parameter
	ErrInvalidParameter = errors.New("invalid parameter")
)

// tolerance when checking that transition rows sum to one
const stochasticTol = 1e-8

// MDP is a dense tabular model with S states and A actions.
// Rewards and transitions are stored as flat row-major buffers so that
// the solver loops run over contiguous memory.
type MDP struct {
	NumStates  int
	NumActions int

	// rewards has length S*A, rewards[s*A+a] = R(s,a)
	rewards []float64
	// transitions has length S*A*S, transitions[(s*A+a)*S+ns] = P(ns|s,a)
	transitions []float64
}

// NewMDP validates the buffers and wraps them in an MDP.
// The caller keeps ownership of the slices; the solvers never write to them.
func NewMDP(numStates, numActions int, rewards, transitions []float64) (*MDP, error) {
	if numStates < 1 || numActions < 1 {
		return nil, fmt.Errorf("%w: need at least one state and one action, got S=%d A=%d", ErrInvalidParameter, numStates, numActions)
	}
	if len(rewards) != numStates*numActions {
		return nil, fmt.Errorf("%w: reward matrix has length %d, want %d", ErrShapeMismatch, len(rewards), numStates*numActions)
	}
	if len(transitions) != numStates*numActions*numStates {
		return nil, fmt.Errorf("%w: transition tensor has length %d, want %d", ErrShapeMismatch, len(transitions), numStates*numActions*numStates)
	}
	for s := 0; s < numStates; s++ {
		for a := 0; a < numActions; a++ {
			row := transitions[(s*numActions+a)*numStates : (s*numActions+a+1)*numStates]
			sum := 0.0
			for _, p := range row {
				if p < 0 || p > 1 {
					return nil, fmt.Errorf("%w: transition probability %f out of [0,1] at state %d action %d", ErrInvalidParameter, p, s, a)
				}
				sum += p
			}
			if math.Abs(sum-1) > stochasticTol {
				return nil, fmt.Errorf("%w: transition row sums to %f at state %d action %d", ErrInvalidParameter, sum, s, a)
			}
		}
	}
	return &MDP{
		NumStates:   numStates,
		NumActions:  numActions,
		rewards:     rewards,
		transitions: transitions,
	}, nil
}

// NewMDPFromDense builds an MDP from nested slices, R of shape (S,A) and
// P of shape (S,A,S). Used by callers that receive the model in nested
// form, e.g. decoded from JSON.
func NewMDPFromDense(r [][]float64, p [][][]float64) (*MDP, error) {
	numStates := len(r)
	if numStates == 0 {
		return nil, fmt.Errorf("%w: empty reward matrix", ErrShapeMismatch)
	}
	numActions := len(r[0])
	rewards := make([]float64, 0, numStates*numActions)
	for s, row := range r {
		if len(row) != numActions {
			return nil, fmt.Errorf("%w: reward row %d has %d actions, want %d", ErrShapeMismatch, s, len(row), numActions)
		}
		rewards = append(rewards, row...)
	}
	if len(p) != numStates {
		return nil, fmt.Errorf("%w: transition tensor has %d states, want %d", ErrShapeMismatch, len(p), numStates)
	}
	transitions := make([]float64, 0, numStates*numActions*numStates)
	for s, actions := range p {
		if len(actions) != numActions {
			return nil, fmt.Errorf("%w: transition tensor state %d has %d actions, want %d", ErrShapeMismatch, s, len(actions), numActions)
		}
		for a, row := range actions {
			if len(row) != numStates {
				return nil, fmt.Errorf("%w: transition row (%d,%d) has length %d, want %d", ErrShapeMismatch, s, a, len(row), numStates)
			}
			transitions = append(transitions, row...)
		}
	}
	return NewMDP(numStates, numActions, rewards, transitions)
}

// Reward returns R(s,a).
func (m *MDP) Reward(s, a int) float64 {
	return m.rewards[s*m.NumActions+a]
}

// TransitionRow returns the slice P(.|s,a) of length NumStates.
// The slice aliases the model buffer and must not be modified.
func (m *MDP) TransitionRow(s, a int) []float64 {
	start := (s*m.NumActions + a) * m.NumStates
	return m.transitions[start : start+m.NumStates]
}
