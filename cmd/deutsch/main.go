// Command deutsch runs Deutsch-Jozsa against a constant or balanced oracle
// and reports which one it was handed.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/internal/cli"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal("deutsch failed", "err", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := cli.Flags("deutsch")
	kind := fs.String("type", "", "oracle type: balanced or constant")
	n := fs.Int("n", 1, "number of input qubits")
	output := fs.Int("output", 0, "constant oracle output, 0 or 1")

	env, err := cli.Load("deutsch", fs, args, stderr)
	if err != nil {
		return err
	}

	oracle, err := qsim.ParseOracleType(*kind)
	if err != nil {
		return err
	}
	if fs.Changed("output") && oracle != qsim.OracleConstant {
		return fmt.Errorf("--output only applies to a constant oracle: %w", qsim.ErrInvalidOracle)
	}

	circuit, err := qsim.DeutschJozsa(*n, oracle, *output)
	if err != nil {
		return err
	}

	sim, err := qsim.NewSimulator(ctx, env.Config)
	if err != nil {
		return err
	}
	defer sim.Close()

	fmt.Fprintln(stdout, circuit)

	job, err := sim.Run(ctx, circuit, qsim.WithSnapshots(env.Verbose))
	if err != nil {
		return err
	}

	result, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	env.Debug(result, sim.Metrics())

	fmt.Fprintln(stdout, result.GetCounts())

	verdict := "BALANCED"
	if qsim.IsConstant(result.GetCounts(), *n) {
		verdict = "CONSTANT"
	}
	fmt.Fprintf(stdout, "Function is %s\n", verdict)

	return nil
}
