// Command solve runs the CFR+ solver against three-card Kuhn poker or
// rock-paper-scissors, standard toy games for sanity-checking a CFR
// implementation, and reports the converged average strategy at each
// information set.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/lox/holdem-engine/cfr"
	"github.com/lox/holdem-engine/internal/xlog"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train    TrainCmd    `cmd:"" help:"run CFR+ training against Kuhn poker and print the converged strategy"`
	Parallel ParallelCmd `cmd:"" help:"run several independent Kuhn poker CFR+ replicas concurrently and merge them"`
	RPS      RPSCmd      `cmd:"" help:"run CFR+ training against rock-paper-scissors and print the converged strategy"`
}

type TrainCmd struct {
	Iterations    int `help:"number of CFR+ iterations" default:"100000"`
	ProgressEvery int `help:"log convergence progress every N iterations (0 disables)" default:"10000"`
}

type ParallelCmd struct {
	Iterations int `help:"iterations per replica" default:"25000"`
	Replicas   int `help:"number of concurrent replicas" default:"4"`
}

type RPSCmd struct {
	Iterations int `help:"number of CFR+ iterations" default:"10000"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solve"),
		kong.Description("CFR+ toy-game solver"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "train":
		err = cli.Train.Run(context.Background())
	case "parallel":
		err = cli.Parallel.Run(context.Background())
	case "rps":
		err = cli.RPS.Run(context.Background())
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
}

func setupLogger(debug bool) {
	log.Logger = xlog.Setup(debug)
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	_ = ctx
	solver := cfr.NewSolver()
	start := time.Now()

	remaining := cmd.Iterations
	batch := cmd.ProgressEvery
	if batch <= 0 {
		batch = cmd.Iterations
	}
	for remaining > 0 {
		n := batch
		if n > remaining {
			n = remaining
		}
		solver.Train(newKuhnGame(), n)
		remaining -= n
		if cmd.ProgressEvery > 0 {
			log.Info().
				Int("iteration", solver.Iteration()).
				Int("infosets", solver.InfoSetCount()).
				Float64("regret_convergence_proxy", solver.RegretConvergenceProxy()).
				Msg("progress")
		}
	}

	log.Info().Dur("duration", time.Since(start)).Msg("training completed")
	printStrategy(solver)
	return nil
}

func (cmd *ParallelCmd) Run(ctx context.Context) error {
	solver := cfr.NewSolver()
	start := time.Now()

	runs, err := solver.TrainParallel(ctx, func() cfr.Game { return newKuhnGame() }, cmd.Replicas, cmd.Iterations)
	if err != nil {
		return err
	}
	for _, run := range runs {
		log.Info().Str("run_id", run.ID.String()).Int("iterations", run.Iterations).Float64("proxy", run.Proxy).Msg("replica finished")
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("total_iterations", solver.Iteration()).
		Int("infosets", solver.InfoSetCount()).
		Float64("merged_regret_convergence_proxy", solver.RegretConvergenceProxy()).
		Msg("parallel training completed")
	printStrategy(solver)
	return nil
}

func (cmd *RPSCmd) Run(ctx context.Context) error {
	_ = ctx
	solver := cfr.NewSolver()
	start := time.Now()

	solver.Train(newRPSGame(), cmd.Iterations)

	log.Info().
		Dur("duration", time.Since(start)).
		Int("iteration", solver.Iteration()).
		Int("infosets", solver.InfoSetCount()).
		Float64("regret_convergence_proxy", solver.RegretConvergenceProxy()).
		Msg("training completed")
	printRPSStrategy(solver)
	return nil
}

func printRPSStrategy(solver *cfr.Solver) {
	fmt.Println()
	fmt.Printf("%-6s %-8s %-8s %-8s\n", "infoset", rpsMoveNames[0], rpsMoveNames[1], rpsMoveNames[2])
	for _, key := range rpsInfoSets {
		strat := solver.AverageStrategy(key, 3)
		fmt.Printf("%-6s %-8.3f %-8.3f %-8.3f\n", key, strat[0], strat[1], strat[2])
	}
}

// kuhnInfoSets enumerates every reachable (card, history) pair so the demo
// can print a full strategy table without needing to track visited keys
// during training.
var kuhnInfoSets = []string{
	"A:", "B:", "C:",
	"A:p", "B:p", "C:p",
	"A:b", "B:b", "C:b",
	"A:pb", "B:pb", "C:pb",
}

func printStrategy(solver *cfr.Solver) {
	fmt.Println()
	fmt.Printf("%-6s %-8s %-8s\n", "infoset", "pass", "bet")
	for _, key := range kuhnInfoSets {
		strat := solver.AverageStrategy(key, 2)
		fmt.Printf("%-6s %-8.3f %-8.3f\n", key, strat[0], strat[1])
	}
}
