package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-rl/server"
)

func ServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver service",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.NewSolverServer(port)
			errCh := make(chan error, 1)
			go func() {
				errCh <- s.Start()
			}()
			fmt.Printf("Solver service listening on localhost:%d\n", port)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			select {
			case err := <-errCh:
				return err
			case <-sigCh:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.Stop(ctx)
		},
	}
	cmd.PersistentFlags().IntVarP(&port, "port", "p", 7074, "Port to listen on")
	return cmd
}
