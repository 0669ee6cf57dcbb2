package chain

import (
	"math"
	"testing"

	"github.com/zeu5/tabular-rl/dynprog"
)

func TestChainModel(t *testing.T) {
	c, err := NewChain(3, 0.2, 1)
	if err != nil {
		t.Fatalf("failed to build chain: %s", err)
	}
	m := c.Model()
	if m.NumStates != 3 || m.NumActions != 2 {
		t.Fatalf("model is %dx%d, want 3x2", m.NumStates, m.NumActions)
	}

	// forward from the start advances with probability 0.8
	row := m.TransitionRow(0, ActionForward.Index())
	if row[1] != 0.8 || row[0] != 0.2 {
		t.Errorf("forward transition from 0 = %v, want [0.2 0.8 0]", row)
	}
	// slipping pays the bail reward
	if r := m.Reward(0, ActionForward.Index()); math.Abs(r-0.2*0.05) > 1e-12 {
		t.Errorf("forward reward from 0 = %f, want %f", r, 0.2*0.05)
	}

	// forward at the far end pays off
	wantEnd := 0.8*1.0 + 0.2*0.05
	if r := m.Reward(2, ActionForward.Index()); math.Abs(r-wantEnd) > 1e-12 {
		t.Errorf("forward reward at the end = %f, want %f", r, wantEnd)
	}

	// bail always returns to the start
	for s := 0; s < 3; s++ {
		row := m.TransitionRow(s, ActionBail.Index())
		if row[0] != 1 {
			t.Errorf("bail transition from %d = %v, want mass on state 0", s, row)
		}
	}
}

func TestChainSteps(t *testing.T) {
	c, err := NewChain(4, 0, 1)
	if err != nil {
		t.Fatalf("failed to build chain: %s", err)
	}
	c.Reset()
	res := c.Step(ActionForward)
	if res.State.(Link).Pos != 1 || res.Reward != 0 {
		t.Errorf("forward step gave state %s reward %f, want 1 and 0", res.State.Hash(), res.Reward)
	}
	res = c.Step(ActionBail)
	if res.State.(Link).Pos != 0 || res.Reward != bailReward {
		t.Errorf("bail step gave state %s reward %f, want 0 and %f", res.State.Hash(), res.Reward, bailReward)
	}
}

func TestChainOptimalPolicyGoesForward(t *testing.T) {
	c, err := NewChain(5, 0, 1)
	if err != nil {
		t.Fatalf("failed to build chain: %s", err)
	}
	m := c.Model()
	q, _, err := dynprog.ValueIteration(m, 0.9, 1e-8)
	if err != nil {
		t.Fatalf("value iteration failed: %s", err)
	}
	for s := 0; s < m.NumStates; s++ {
		fwd := q[s*m.NumActions+ActionForward.Index()]
		bail := q[s*m.NumActions+ActionBail.Index()]
		if fwd <= bail {
			t.Errorf("state %d prefers bail (%f) over forward (%f)", s, bail, fwd)
		}
	}
}
