// Command simon recovers the hidden period s of a two-to-one function with
// Simon's algorithm.
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
		log.Fatal("simon failed", "err", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := cli.Flags("simon")
	secret := fs.String("s", "", "hidden bitstring, e.g. 110")

	env, err := cli.Load("simon", fs, args, stderr)
	if err != nil {
		return err
	}

	circuit, err := qsim.SimonCircuit(*secret)
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

	fmt.Fprint(stdout, result.Outcomes)
	fmt.Fprintln(stdout, result.GetCounts())

	solutions, err := qsim.SolveGF2(result.GetCounts().Keys(), len(*secret))
	if err != nil {
		return err
	}
	for _, s := range solutions {
		fmt.Fprintf(stdout, "s = %s\n", s)
	}

	return nil
}
