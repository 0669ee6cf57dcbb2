package policies

import (
	"time"

	"github.com/zeu5/tabular-rl/types"
	"golang.org/x/exp/rand"
)

// BonusGreedy is an epsilon-greedy tabular Q-learning policy with a
// visit-count exploration bonus added to the observed reward. It needs
// no solved model and works on any environment.
type BonusGreedy struct {
	qTable   map[string]map[string]float64
	visits   map[string]map[string]float64
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &BonusGreedy{}

func NewBonusGreedy(alpha, discount, epsilon float64) *BonusGreedy {
	return &BonusGreedy{
		qTable:   make(map[string]map[string]float64),
		visits:   make(map[string]map[string]float64),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (b *BonusGreedy) Reset() {
	b.qTable = make(map[string]map[string]float64)
	b.visits = make(map[string]map[string]float64)
}

func (b *BonusGreedy) UpdateIteration(_ int, _ *types.Trace) {
}

func (b *BonusGreedy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if b.rand.Float64() < b.epsilon {
		return actions[b.rand.Intn(len(actions))], true
	}
	stateHash := state.Hash()
	var best types.Action
	bestVal := 0.0
	for _, action := range actions {
		val := 0.0
		if row, ok := b.qTable[stateHash]; ok {
			val = row[action.Hash()]
		}
		if best == nil || val > bestVal {
			best = action
			bestVal = val
		}
	}
	return best, best != nil
}

func (b *BonusGreedy) Update(step int, state types.State, action types.Action, result types.StepResult) {
	stateHash := state.Hash()
	actionHash := action.Hash()
	nextStateHash := result.State.Hash()

	if _, ok := b.visits[stateHash]; !ok {
		b.visits[stateHash] = make(map[string]float64)
	}
	t := b.visits[stateHash][actionHash] + 1
	b.visits[stateHash][actionHash] = t

	nextVal := 0.0
	for _, val := range b.qTable[nextStateHash] {
		if val > nextVal {
			nextVal = val
		}
	}
	if _, ok := b.qTable[stateHash]; !ok {
		b.qTable[stateHash] = make(map[string]float64)
	}
	curVal := b.qTable[stateHash][actionHash]
	newVal := (1-b.alpha)*curVal + b.alpha*(result.Reward+1/t+b.discount*nextVal)
	b.qTable[stateHash][actionHash] = newVal
}
