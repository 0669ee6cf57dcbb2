package types

import "github.com/zeu5/tabular-rl/dynprog"

// StepResult is the outcome of one environment transition.
type StepResult struct {
	State  State
	Reward float64
	Done   bool
	// Info carries auxiliary per-step quantities, e.g. exploration
	// bonuses added by wrappers
	Info map[string]float64
}

// Environment that an agent interacts with episode by episode.
type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step applies an action and advances the environment
	Step(Action) StepResult
}

// State of the environment that policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
}

// An Action that a policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// TabularState is implemented by states of finite environments that know
// their row in the dense model.
type TabularState interface {
	State
	Index() int
}

// TabularAction is implemented by actions of finite environments that
// know their column in the dense model.
type TabularAction interface {
	Action
	Index() int
}

// FiniteEnvironment is an environment whose dynamics are materialized as
// dense reward/transition arrays, making it solvable by the dynprog
// package. Sample simulates a transition without advancing the
// environment state.
type FiniteEnvironment interface {
	Environment
	Model() *dynprog.MDP
	Sample(State, Action) StepResult
}
