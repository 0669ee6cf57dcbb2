package dynprog

import "gonum.org/v1/gonum/floats"

// BellmanOperator applies one step of the Bellman optimality update to q
// and returns a freshly allocated result:
//
//	V[s]     = max_a q[s,a]
//	Tq[s,a]  = R(s,a) + gamma * sum_ns P(ns|s,a) * V[ns]
//
// q has length NumStates*NumActions in row-major order and is not
// modified. Dimensions are a caller contract; a q of the wrong length
// panics on the first out-of-range index.
func BellmanOperator(q []float64, m *MDP, gamma float64) []float64 {
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

	tq := make([]float64, m.NumStates*m.NumActions)
	for s := 0; s < m.NumStates; s++ {
		for a := 0; a < m.NumActions; a++ {
			tq[s*m.NumActions+a] = m.Reward(s, a) + gamma*floats.Dot(m.TransitionRow(s, a), v)
		}
	}
	return tq
}
