package benchmarks

import (
	"fmt"
	"math"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-rl/dynprog"
	"github.com/zeu5/tabular-rl/grid"
	"github.com/zeu5/tabular-rl/policies"
	"github.com/zeu5/tabular-rl/types"
	"github.com/zeu5/tabular-rl/util"
)

// GridBenchmark solves a grid world by backward induction and compares
// the resulting greedy policy against random and bonus-driven baselines.
func GridBenchmark(episodes, horizon int, saveFile string, height, width int, gamma, successProb float64, workers int) error {
	config := grid.Config{
		Height:      height,
		Width:       width,
		Start:       grid.Position{I: 0, J: 0},
		Goal:        grid.Position{I: height - 1, J: width - 1},
		SuccessProb: successProb,
	}

	// each experiment gets its own environment instance
	newEnv := func(seed uint64) (*grid.GridWorld, error) {
		c := config
		c.Seed = seed
		return grid.NewGridWorld(c)
	}
	solveEnv, err := newEnv(1)
	if err != nil {
		return err
	}
	model := solveEnv.Model()
	q, v, err := dynprog.BackwardInduction(model, horizon, gamma, math.Inf(1))
	if err != nil {
		return err
	}
	start := config.Start.I*width + config.Start.J
	fmt.Printf("Optimal value from start: %.4f\n", v[start])
	if err := util.WriteValues(path.Join(saveFile, "grid_values.txt"), v[:model.NumStates]); err != nil {
		return err
	}

	randomEnv, err := newEnv(2)
	if err != nil {
		return err
	}
	bonusEnv, err := newEnv(3)
	if err != nil {
		return err
	}

	c := types.NewComparison(types.EpisodeReturn(), types.ReturnPlotter(saveFile))
	c.AddAnalysis(types.StateCoverage(), types.CoveragePlotter(saveFile))
	c.AddExperiment(types.NewExperiment("Greedy", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewFiniteHorizonGreedy(q, horizon, model.NumStates, model.NumActions),
		Environment: solveEnv,
	}))
	c.AddExperiment(types.NewExperiment("Random", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      types.NewRandomPolicy(),
		Environment: randomEnv,
	}))
	c.AddExperiment(types.NewExperiment("Bonus", &types.AgentConfig{
		Episodes:    episodes,
		Horizon:     horizon,
		Policy:      policies.NewBonusGreedy(0.3, gamma, 0.1),
		Environment: types.NewBonusWrapper(bonusEnv, types.NewCounterEstimator(), 1.0),
	}))
	if workers > 1 {
		c.RunParallel(workers)
	} else {
		c.Run()
	}
	return nil
}

func GridCommand() *cobra.Command {
	var height int
	var width int
	var gamma float64
	var successProb float64
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Solve a grid world exactly and compare policies on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return GridBenchmark(episodes, horizon, saveFile, height, width, gamma, successProb, workers)
		},
	}
	cmd.PersistentFlags().IntVar(&height, "height", 8, "Height of the grid")
	cmd.PersistentFlags().IntVar(&width, "width", 8, "Width of the grid")
	cmd.PersistentFlags().Float64Var(&gamma, "gamma", 1.0, "Discount factor")
	cmd.PersistentFlags().Float64Var(&successProb, "success-prob", 0.9, "Probability that a move succeeds")
	return cmd
}
