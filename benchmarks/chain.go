package benchmarks

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-rl/chain"
	"github.com/zeu5/tabular-rl/dynprog"
	"github.com/zeu5/tabular-rl/policies"
	"github.com/zeu5/tabular-rl/types"
	"github.com/zeu5/tabular-rl/util"
)

// ChainBenchmark solves the chain MDP by value iteration and compares
// the stationary greedy policy against a random baseline.
func ChainBenchmark(episodes, horizon int, saveFile string, length int, failProb, gamma, epsilon float64, workers int) error {
	solveEnv, err := chain.NewChain(length, failProb, 1)
	if err != nil {
		return err
	}
	model := solveEnv.Model()
	q, v, err := dynprog.ValueIteration(model, gamma, epsilon)
	if err != nil {
		return err
	}
	fmt.Printf("Converged value at the start of the chain: %.4f\n", v[0])
	if err := util.WriteValues(path.Join(saveFile, "chain_values.txt"), v); err != nil {
		return err
	}

	randomEnv, err := chain.NewChain(length, failProb, 2)
	if err != nil {
		return err
	}
	epsEnv, err := chain.NewChain(length, failProb, 3)
	if err != nil {
		return err
	}

	c := types.NewComparison(types.EpisodeReturn(), types.ReturnPlotter(saveFile))
	c.AddExperiment(types.NewExperiment("Greedy", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewGreedy(q, model.NumStates, model.NumActions),
		Environment: solveEnv,
	}))
	c.AddExperiment(types.NewExperiment("EpsGreedy", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewGreedy(q, model.NumStates, model.NumActions).WithEpsilon(0.1, 4),
		Environment: epsEnv,
	}))
	c.AddExperiment(types.NewExperiment("Random", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      types.NewRandomPolicy(),
		Environment: randomEnv,
	}))
	if workers > 1 {
		c.RunParallel(workers)
	} else {
		c.Run()
	}
	return nil
}

func ChainCommand() *cobra.Command {
	var length int
	var failProb float64
	var gamma float64
	var epsilon float64
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Solve the chain MDP by value iteration and compare policies on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ChainBenchmark(episodes, horizon, saveFile, length, failProb, gamma, epsilon, workers)
		},
	}
	cmd.PersistentFlags().IntVar(&length, "length", 10, "Number of states in the chain")
	cmd.PersistentFlags().Float64Var(&failProb, "fail-prob", 0.1, "Probability that the forward action slips")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", 0.9, "Discount factor")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", 1e-6, "Convergence tolerance")
	return cmd
}
