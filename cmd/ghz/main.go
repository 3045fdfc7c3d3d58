// Command ghz prepares the three-qubit GHZ state, samples it on the local
// simulator and prints the circuit, the result and the measured counts.
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
		log.Fatal("ghz failed", "err", err)
	}
}

func ghz() *qsim.Circuit {
	return qsim.NewCircuit(3, 3, qsim.WithName("ghz")).
		Barrier().
		H(0).
		CX(0, 1).
		CX(1, 2).
		Barrier().
		Measure([]int{0, 1, 2}, []int{0, 1, 2})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := cli.Flags("ghz")
	histogram := fs.Bool("histogram", false, "print a bar per outcome after the counts")
	showQASM := fs.Bool("qasm", false, "print the circuit as OpenQASM 2.0")
	export := fs.String("export", "", "write the result to a .json or .msgpack file")

	env, err := cli.Load("ghz", fs, args, stderr)
	if err != nil {
		return err
	}

	sim, err := qsim.NewSimulator(ctx, env.Config)
	if err != nil {
		return err
	}
	defer sim.Close()

	circuit := ghz()
	if err := circuit.Err(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, circuit)

	if *showQASM {
		src, err := circuit.QASM()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, src)
	}

	job, err := sim.Run(ctx, circuit, qsim.WithSnapshots(env.Verbose))
	if err != nil {
		return err
	}
	env.Log.Debug("job submitted", "id", job.ID())

	result, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	env.Debug(result, sim.Metrics())

	fmt.Fprintln(stdout, result)
	fmt.Fprintln(stdout, result.GetCounts())

	if *histogram {
		if err := result.Histogram(stdout); err != nil {
			return err
		}
	}

	if *export != "" {
		if err := result.ExportFile(*export); err != nil {
			return err
		}
		env.Log.Info("result exported", "path", *export)
	}

	return nil
}
