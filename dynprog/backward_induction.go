package dynprog

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BackwardInduction computes the exact optimal finite-horizon value
// functions by recursing backward from the terminal step. Q has length
// horizon*S*A and V has length horizon*S, both row-major, so
// Q[(h*S+s)*A+a] and V[h*S+s] hold the step-h values.
//
// At the terminal step h = horizon-1 there is no continuation term, so
// Q[horizon-1,s,a] == R(s,a). When vmax is finite it caps V after the
// action maximum; Q is never clamped and may exceed vmax.
func BackwardInduction(m *MDP, horizon int, gamma, vmax float64) ([]float64, []float64, error) {
	if horizon < 1 {
		return nil, nil, fmt.Errorf("%w: horizon must be at least 1, got %d", ErrInvalidParameter, horizon)
	}
	if gamma < 0 || gamma > 1 {
		return nil, nil, fmt.Errorf("%w: gamma must be in [0,1], got %f", ErrInvalidParameter, gamma)
	}

	numStates, numActions := m.NumStates, m.NumActions
	q := make([]float64, horizon*numStates*numActions)
	v := make([]float64, horizon*numStates)
	for h := horizon - 1; h >= 0; h-- {
		var nextV []float64
		if h < horizon-1 {
			nextV = v[(h+1)*numStates : (h+2)*numStates]
		}
		for s := 0; s < numStates; s++ {
			maxQ := math.Inf(-1)
			for a := 0; a < numActions; a++ {
				qa := m.Reward(s, a)
				if nextV != nil {
					qa += gamma * floats.Dot(m.TransitionRow(s, a), nextV)
				}
				if qa > maxQ {
					maxQ = qa
				}
				q[(h*numStates+s)*numActions+a] = qa
			}
			if maxQ > vmax {
				maxQ = vmax
			}
			v[h*numStates+s] = maxQ
		}
	}
	return q, v, nil
}
