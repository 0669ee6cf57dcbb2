package benchmarks

import "github.com/spf13/cobra"

var (
	episodes int
	horizon  int
	saveFile string
	workers  int
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "tabular-rl",
		Short: "Dynamic-programming solvers and experiments for tabular MDPs",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 100, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&workers, "workers", 1, "Number of experiments to run in parallel")
	// adding the subcommands here
	rootCommand.AddCommand(GridCommand())
	rootCommand.AddCommand(ChainCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}
