package dynprog

import (
	"fmt"
	"math"
)

// ValueIteration computes the epsilon-optimal Q and V functions for the
// discounted infinite-horizon problem by iterating the Bellman operator
// to a fixed point. Q has length S*A (row-major), V has length S.
//
// The loop stops when the elementwise maximum absolute difference
// between consecutive iterates is at most epsilon. There is no iteration
// cap: termination relies on the operator being a gamma-contraction,
// which is why gamma must be strictly below one.
func ValueIteration(m *MDP, gamma, epsilon float64) ([]float64, []float64, error) {
	if gamma < 0 || gamma >= 1 {
		return nil, nil, fmt.Errorf("%w: gamma must be in [0,1) for value iteration, got %f", ErrInvalidParameter, gamma)
	}
	if epsilon <= 0 {
		return nil, nil, fmt.Errorf("%w: epsilon must be positive, got %f", ErrInvalidParameter, epsilon)
	}

	q := make([]float64, m.NumStates*m.NumActions)
	prev := make([]float64, len(q))
	for i := range prev {
		prev[i] = math.Inf(1)
	}
	for maxAbsDiff(q, prev) > epsilon {
		copy(prev, q)
		q = BellmanOperator(q, m, gamma)
	}

	// per-row reduction rather than a vectorized max, to stay
	// deterministic across backends
	v := make([]float64, m.NumStates)
	for s := 0; s < m.NumStates; s++ {
		row := q[s*m.NumActions : (s+1)*m.NumActions]
		maxQ := row[0]
		for _, qa := range row[1:] {
			if qa > maxQ {
				maxQ = qa
			}
		}
		v[s] = maxQ
	}
	return q, v, nil
}

func maxAbsDiff(a, b []float64) float64 {
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}
