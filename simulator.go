package qsim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	SimulatorName    = "qsim_simulator"
	SimulatorVersion = "0.1.0"
)

// Backend executes circuits.
type Backend interface {
	Name() string
	Version() string
	Run(ctx context.Context, circuit *Circuit, opts ...RunOption) (*Job, error)
}

// RunOptions tune a single execution.
type RunOptions struct {
	Shots     int
	Seed      uint64
	Memory    bool
	Snapshots bool
}

type RunOption func(*RunOptions)

// WithShots sets how many times the circuit is sampled.
func WithShots(shots int) RunOption {
	return func(o *RunOptions) {
		o.Shots = shots
	}
}

// WithSeed fixes the sampler seed. Zero picks a random seed.
func WithSeed(seed uint64) RunOption {
	return func(o *RunOptions) {
		o.Seed = seed
	}
}

// WithMemory keeps the bitstring of every shot in Result.Memory.
func WithMemory(keep bool) RunOption {
	return func(o *RunOptions) {
		o.Memory = keep
	}
}

// WithSnapshots records the statevector at every barrier.
func WithSnapshots(keep bool) RunOption {
	return func(o *RunOptions) {
		o.Snapshots = keep
	}
}

/*
Simulator is an ideal, noiseless statevector backend. Each Run becomes a task
on the simulator's worker pool: the state is evolved through the circuit,
the measured register's outcome distribution is read off the amplitudes and
then sampled once per shot.
*/
type Simulator struct {
	config *Config
	pool   *Pool
}

// NewSimulator validates the configuration and starts the worker pool.
func NewSimulator(ctx context.Context, config *Config) (*Simulator, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, opError("simulator", err)
	}

	return &Simulator{
		config: config,
		pool:   NewPool(ctx, config),
	}, nil
}

func (s *Simulator) Name() string      { return SimulatorName }
func (s *Simulator) Version() string   { return SimulatorVersion }
func (s *Simulator) Metrics() *Metrics { return s.pool.Metrics() }

// Close stops the pool; jobs still queued fail with ErrBackendClosed.
func (s *Simulator) Close() {
	s.pool.Close()
}

// Run compiles the circuit and schedules it. The returned job is already
// queued; call Result on it to block for the outcome.
func (s *Simulator) Run(ctx context.Context, circuit *Circuit, opts ...RunOption) (*Job, error) {
	if err := circuit.Compile(); err != nil {
		return nil, err
	}
	if circuit.NumQubits() > s.config.MaxQubits {
		return nil, fmt.Errorf("run: %w: %d > %d",
			ErrTooManyQubits, circuit.NumQubits(), s.config.MaxQubits)
	}

	options := RunOptions{
		Shots: s.config.Shots,
		Seed:  s.config.Seed,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Shots < 1 {
		return nil, fmt.Errorf("run: %w: shots must be positive, got %d", ErrInvalidConfig, options.Shots)
	}
	if options.Seed == 0 {
		options.Seed = rand.Uint64()
	}

	prog := snapshotProgram(circuit)

	job := newJob(uuid.NewString(), s.Name())
	errnie.Info("submitting job %s: %d qubits, %d shots", job.ID(), circuit.NumQubits(), options.Shots)

	value := s.pool.Schedule(job.ID(), func(taskCtx context.Context) (any, error) {
		execCtx, cancel := context.WithCancel(taskCtx)
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("job %s: %w", job.ID(), err)
		}

		job.setStatus(StatusRunning)
		return s.execute(execCtx, job.ID(), prog, options)
	})

	go func() {
		v := <-value
		switch {
		case v.Error == nil:
			job.resolve(v.Value.(*Result), nil, StatusDone)
		case ctx.Err() != nil:
			job.resolve(nil, v.Error, StatusCancelled)
		default:
			job.resolve(nil, v.Error, StatusError)
		}
	}()

	return job, nil
}

// program is the part of a circuit a worker needs, copied at submission so
// the caller may keep building the circuit while the job runs.
type program struct {
	header       Header
	initial      []Basis
	instructions []Instruction
	measured     map[int]int
}

func snapshotProgram(circuit *Circuit) program {
	return program{
		header: Header{
			Name:      circuit.Name(),
			NumQubits: circuit.NumQubits(),
			NumClbits: circuit.NumClbits(),
		},
		initial:      circuit.Initial(),
		instructions: circuit.Instructions(),
		measured:     circuit.Measurements(),
	}
}

func (s *Simulator) execute(ctx context.Context, jobID string, prog program, options RunOptions) (*Result, error) {
	start := time.Now()

	qubits := make([]*Qubit, len(prog.initial))
	for i, b := range prog.initial {
		qubits[i] = QubitFromBasis(b)
	}
	state := NewStateVector(qubits)

	var snapshots []Snapshot
	for i, in := range prog.instructions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("job %s: %w", jobID, err)
		}
		if in.Kind == OpBarrier && options.Snapshots {
			snapshots = append(snapshots, Snapshot{Instruction: i, State: state.String()})
		}
		state.Apply(in)
	}

	outcomes := Outcomes(state.Distribution(prog.measured, prog.header.NumClbits))
	counts, memory, err := sample(ctx, outcomes, options)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}

	return &Result{
		BackendName:    s.Name(),
		BackendVersion: s.Version(),
		JobID:          jobID,
		Success:        true,
		Status:         StatusDone,
		Date:           start,
		TimeTaken:      time.Since(start),
		Shots:          options.Shots,
		Seed:           options.Seed,
		Header:         prog.header,
		Counts:    counts,
		Outcomes:  outcomes,
		Memory:    memory,
		Snapshots: snapshots,
	}, nil
}

// sample draws options.Shots outcomes from the exact distribution.
func sample(ctx context.Context, outcomes Outcomes, options RunOptions) (Counts, []string, error) {
	keys := outcomes.Keys()
	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = outcomes[k]
	}
	floats.Scale(1/floats.Sum(weights), weights)

	src := rand.NewPCG(options.Seed, options.Seed^0x9e3779b97f4a7c15)
	dist := distuv.NewCategorical(weights, src)

	counts := make(Counts, len(keys))
	var memory []string
	if options.Memory {
		memory = make([]string, 0, options.Shots)
	}

	for shot := 0; shot < options.Shots; shot++ {
		if shot%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		bits := keys[int(dist.Rand())]
		counts[bits]++
		if options.Memory {
			memory = append(memory, bits)
		}
	}

	return counts, memory, nil
}
