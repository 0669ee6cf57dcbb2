package types

import (
	"fmt"
	"math"
	"testing"
)

// toggle environment: two states, the single action flips between them
// and pays 1 when landing in state 1
type toggleState struct {
	pos int
}

func (s toggleState) Hash() string {
	return fmt.Sprintf("%d", s.pos)
}

func (s toggleState) Actions() []Action {
	return []Action{toggleAction{}}
}

type toggleAction struct{}

func (toggleAction) Hash() string {
	return "flip"
}

type toggleEnv struct {
	cur int
}

func (e *toggleEnv) Reset() State {
	e.cur = 0
	return toggleState{pos: 0}
}

func (e *toggleEnv) Step(Action) StepResult {
	e.cur = 1 - e.cur
	reward := 0.0
	if e.cur == 1 {
		reward = 1
	}
	return StepResult{
		State:  toggleState{pos: e.cur},
		Reward: reward,
	}
}

func TestAgentCollectsTraces(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes:    3,
		Horizon:     4,
		Policy:      NewRandomPolicyWithSeed(1),
		Environment: &toggleEnv{},
	})
	agent.Run()
	traces := agent.Traces()
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}
	for i, trace := range traces {
		if trace.Len() != 4 {
			t.Errorf("trace %d has %d steps, want the full horizon 4", i, trace.Len())
		}
		// the toggle pays on every odd step
		if trace.Return() != 2 {
			t.Errorf("trace %d return = %f, want 2", i, trace.Return())
		}
	}
}

func TestTracePrefix(t *testing.T) {
	trace := NewTrace()
	s := toggleState{pos: 0}
	trace.Append(s, toggleAction{}, StepResult{State: toggleState{pos: 1}, Reward: 1})
	trace.Append(toggleState{pos: 1}, toggleAction{}, StepResult{State: s, Reward: 0})

	prefix, ok := trace.GetPrefix(1)
	if !ok || prefix.Len() != 1 {
		t.Fatalf("prefix of length 1 not returned")
	}
	if prefix.Return() != 1 {
		t.Errorf("prefix return = %f, want 1", prefix.Return())
	}
	if _, ok := trace.GetPrefix(5); ok {
		t.Errorf("out of range prefix should not be returned")
	}
}

func TestStateCoverage(t *testing.T) {
	agent := NewAgent(&AgentConfig{
		Episodes:    3,
		Horizon:     4,
		Policy:      NewRandomPolicyWithSeed(1),
		Environment: &toggleEnv{},
	})
	agent.Run()
	covered := StateCoverage()(agent.Traces()).([]int)
	if len(covered) != 3 {
		t.Fatalf("got %d coverage points, want 3", len(covered))
	}
	for i, c := range covered {
		if c != 2 {
			t.Errorf("coverage after episode %d = %d, want 2", i, c)
		}
	}
}

func TestBonusWrapperAddsDecayingBonus(t *testing.T) {
	env := NewBonusWrapper(&toggleEnv{}, NewCounterEstimator(), 1.0)
	env.Reset()

	// first visit of (state 0, flip)
	res := env.Step(toggleAction{})
	if res.Info[BonusKey] != 1 {
		t.Errorf("first visit bonus = %f, want 1", res.Info[BonusKey])
	}
	// rewards pass through untouched
	if res.Reward != 1 {
		t.Errorf("wrapped reward = %f, want 1", res.Reward)
	}

	// (state 1, flip) once, then (state 0, flip) again
	env.Step(toggleAction{})
	res = env.Step(toggleAction{})
	want := 1 / math.Sqrt(2)
	if math.Abs(res.Info[BonusKey]-want) > 1e-12 {
		t.Errorf("second visit bonus = %f, want %f", res.Info[BonusKey], want)
	}
}
