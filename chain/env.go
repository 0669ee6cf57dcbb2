// Package chain implements the classic chain MDP: a line of states
// where one action walks toward a rewarding far end and the other
// returns to the start for a small immediate reward.
package chain

import (
	"fmt"
	"time"

	"github.com/zeu5/tabular-rl/dynprog"
	"github.com/zeu5/tabular-rl/types"
	"golang.org/x/exp/rand"
)

const (
	// small reward for bailing out to the start
	bailReward = 0.05
	// reward for the forward action at the far end
	endReward = 1.0
)

type Chain struct {
	length   int
	failProb float64
	cur      int
	rand     *rand.Rand
	model    *dynprog.MDP
}

var (
	_ types.Environment       = &Chain{}
	_ types.FiniteEnvironment = &Chain{}
)

// NewChain builds a chain of the given length. With probability
// failProb the forward action slips and behaves like the bail action.
func NewChain(length int, failProb float64, seed uint64) (*Chain, error) {
	if length < 2 {
		return nil, fmt.Errorf("chain length must be at least 2, got %d", length)
	}
	if failProb < 0 || failProb > 1 {
		return nil, fmt.Errorf("fail probability %f out of [0,1]", failProb)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	c := &Chain{
		length:   length,
		failProb: failProb,
		rand:     rand.New(rand.NewSource(seed)),
	}
	model, err := c.buildModel()
	if err != nil {
		return nil, err
	}
	c.model = model
	return c, nil
}

// forward/bail outcomes from state s, with the realized reward
func (c *Chain) forward(s int) (int, float64) {
	if s == c.length-1 {
		return s, endReward
	}
	return s + 1, 0
}

func (c *Chain) bail(int) (int, float64) {
	return 0, bailReward
}

func (c *Chain) buildModel() (*dynprog.MDP, error) {
	numStates, numActions := c.length, 2
	rewards := make([]float64, numStates*numActions)
	transitions := make([]float64, numStates*numActions*numStates)
	for s := 0; s < numStates; s++ {
		fwdNext, fwdReward := c.forward(s)
		bailNext, bailRwd := c.bail(s)

		rewards[s*numActions+ActionForward.index] = (1-c.failProb)*fwdReward + c.failProb*bailRwd
		fwdRow := transitions[(s*numActions+ActionForward.index)*numStates : (s*numActions+ActionForward.index+1)*numStates]
		fwdRow[fwdNext] += 1 - c.failProb
		fwdRow[bailNext] += c.failProb

		rewards[s*numActions+ActionBail.index] = bailRwd
		bailRow := transitions[(s*numActions+ActionBail.index)*numStates : (s*numActions+ActionBail.index+1)*numStates]
		bailRow[bailNext] = 1
	}
	return dynprog.NewMDP(numStates, numActions, rewards, transitions)
}

func (c *Chain) Model() *dynprog.MDP {
	return c.model
}

func (c *Chain) Reset() types.State {
	c.cur = 0
	return Link{Pos: 0}
}

func (c *Chain) Step(a types.Action) types.StepResult {
	result := c.sampleFrom(c.cur, a)
	c.cur = result.State.(Link).Pos
	return result
}

func (c *Chain) Sample(state types.State, action types.Action) types.StepResult {
	return c.sampleFrom(state.(Link).Pos, action)
}

func (c *Chain) sampleFrom(s int, a types.Action) types.StepResult {
	action := a.(*ChainAction)
	var next int
	var reward float64
	if action == ActionForward && c.rand.Float64() >= c.failProb {
		next, reward = c.forward(s)
	} else {
		next, reward = c.bail(s)
	}
	return types.StepResult{
		State:  Link{Pos: next},
		Reward: reward,
	}
}

// Link is a position on the chain.
type Link struct {
	Pos int
}

var (
	_ types.State        = Link{}
	_ types.TabularState = Link{}
)

func (l Link) Hash() string {
	return fmt.Sprintf("%d", l.Pos)
}

func (l Link) Index() int {
	return l.Pos
}

func (l Link) Actions() []types.Action {
	return AllActions
}

type ChainAction struct {
	Name  string
	index int
}

var (
	_ types.Action        = &ChainAction{}
	_ types.TabularAction = &ChainAction{}
)

func (a *ChainAction) Hash() string {
	return a.Name
}

func (a *ChainAction) Index() int {
	return a.index
}

var (
	ActionForward = &ChainAction{Name: "Forward", index: 0}
	ActionBail    = &ChainAction{Name: "Bail", index: 1}

	AllActions = []types.Action{ActionForward, ActionBail}
)
