// Package grid implements a grid-world environment whose dynamics are
// materialized as dense reward/transition arrays, so it can be solved
// exactly by the dynprog package as well as explored episode by episode.
package grid

import (
	"fmt"
	"time"

	"github.com/zeu5/tabular-rl/dynprog"
	"github.com/zeu5/tabular-rl/types"
	"golang.org/x/exp/rand"
)

type Config struct {
	Height int
	Width  int
	Start  Position
	Goal   Position
	// Walls are impassable cells, moving into one keeps the agent in place
	Walls []Position
	// SuccessProb is the probability that a move succeeds, otherwise
	// the agent stays in place. Defaults to 1 (deterministic).
	SuccessProb float64
	// StepReward is collected on every move, GoalReward on entering the goal
	StepReward float64
	GoalReward float64
	Seed       uint64
}

type GridWorld struct {
	config Config
	walls  map[int]bool
	cur    Position
	rand   *rand.Rand
	model  *dynprog.MDP
}

var (
	_ types.Environment       = &GridWorld{}
	_ types.FiniteEnvironment = &GridWorld{}
)

func NewGridWorld(config Config) (*GridWorld, error) {
	if config.Height < 1 || config.Width < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", config.Height, config.Width)
	}
	if !config.Start.inside(config.Height, config.Width) || !config.Goal.inside(config.Height, config.Width) {
		return nil, fmt.Errorf("start %s or goal %s outside the %dx%d grid", config.Start.Hash(), config.Goal.Hash(), config.Height, config.Width)
	}
	if config.SuccessProb == 0 {
		config.SuccessProb = 1
	}
	if config.SuccessProb < 0 || config.SuccessProb > 1 {
		return nil, fmt.Errorf("success probability %f out of [0,1]", config.SuccessProb)
	}
	if config.GoalReward == 0 {
		config.GoalReward = 1
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := &GridWorld{
		config: config,
		walls:  make(map[int]bool),
		cur:    config.Start,
		rand:   rand.New(rand.NewSource(seed)),
	}
	for _, w := range config.Walls {
		g.walls[g.index(w)] = true
	}
	model, err := g.buildModel()
	if err != nil {
		return nil, err
	}
	g.model = model
	return g, nil
}

func (g *GridWorld) index(p Position) int {
	return p.I*g.config.Width + p.J
}

func (g *GridWorld) position(index int) Position {
	return Position{I: index / g.config.Width, J: index % g.config.Width, width: g.config.Width}
}

// target is the cell reached from p when move succeeds
func (g *GridWorld) target(p Position, m *Move) Position {
	if p.Eq(g.config.Goal) {
		// the goal is absorbing
		return p
	}
	next := Position{I: p.I + m.di, J: p.J + m.dj, width: g.config.Width}
	if !next.inside(g.config.Height, g.config.Width) || g.walls[g.index(next)] {
		return p
	}
	return next
}

func (g *GridWorld) reward(from Position, to Position) float64 {
	r := g.config.StepReward
	if !from.Eq(g.config.Goal) && to.Eq(g.config.Goal) {
		r += g.config.GoalReward
	}
	return r
}

// buildModel lays out the dense R (S,A) and P (S,A,S) buffers. State
// indices are row-major cell positions, action indices follow AllMoves.
func (g *GridWorld) buildModel() (*dynprog.MDP, error) {
	numStates := g.config.Height * g.config.Width
	numActions := len(AllMoves)
	rewards := make([]float64, numStates*numActions)
	transitions := make([]float64, numStates*numActions*numStates)
	p := g.config.SuccessProb
	for s := 0; s < numStates; s++ {
		from := g.position(s)
		for a, action := range AllMoves {
			move := action.(*Move)
			to := g.target(from, move)
			rewards[s*numActions+a] = p*g.reward(from, to) + (1-p)*g.reward(from, from)
			row := transitions[(s*numActions+a)*numStates : (s*numActions+a+1)*numStates]
			row[g.index(to)] += p
			row[s] += 1 - p
		}
	}
	return dynprog.NewMDP(numStates, numActions, rewards, transitions)
}

func (g *GridWorld) Model() *dynprog.MDP {
	return g.model
}

func (g *GridWorld) Reset() types.State {
	g.cur = g.config.Start
	g.cur.width = g.config.Width
	return g.cur
}

func (g *GridWorld) Step(a types.Action) types.StepResult {
	result := g.sampleFrom(g.cur, a)
	g.cur = result.State.(Position)
	return result
}

// Sample simulates a transition from the given state without moving the
// environment.
func (g *GridWorld) Sample(state types.State, action types.Action) types.StepResult {
	return g.sampleFrom(state.(Position), action)
}

func (g *GridWorld) sampleFrom(from Position, a types.Action) types.StepResult {
	move := a.(*Move)
	next := from
	if g.rand.Float64() < g.config.SuccessProb {
		next = g.target(from, move)
	}
	return types.StepResult{
		State:  next,
		Reward: g.reward(from, next),
		Done:   next.Eq(g.config.Goal),
	}
}

type Position struct {
	I int
	J int

	width int
}

var (
	_ types.State        = Position{}
	_ types.TabularState = Position{}
)

func (p Position) inside(height, width int) bool {
	return p.I >= 0 && p.I < height && p.J >= 0 && p.J < width
}

func (p Position) Hash() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

func (p Position) Eq(other Position) bool {
	return p.I == other.I && p.J == other.J
}

func (p Position) Index() int {
	return p.I*p.width + p.J
}

func (p Position) Actions() []types.Action {
	return AllMoves
}

type Move struct {
	Direction string

	index int
	di    int
	dj    int
}

var (
	_ types.Action        = &Move{}
	_ types.TabularAction = &Move{}
)

func (m *Move) Hash() string {
	return m.Direction
}

func (m *Move) Index() int {
	return m.index
}

var (
	MoveUp    = &Move{Direction: "Up", index: 0, di: 1}
	MoveDown  = &Move{Direction: "Down", index: 1, di: -1}
	MoveLeft  = &Move{Direction: "Left", index: 2, dj: -1}
	MoveRight = &Move{Direction: "Right", index: 3, dj: 1}

	AllMoves = []types.Action{
		MoveUp,
		MoveDown,
		MoveLeft,
		MoveRight,
	}
)
