package qsim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/stat/distuv"
)

const testTimeout = 5 * time.Second

func runCircuit(sim *Simulator, c *Circuit, opts ...RunOption) (*Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	job, err := sim.Run(ctx, c, opts...)
	if err != nil {
		return nil, err
	}
	return job.Wait(ctx)
}

func TestSimulatorGHZ(t *testing.T) {
	Convey("Given a simulator and the GHZ circuit", t, func() {
		sim, err := NewSimulator(context.Background(), NewConfig())
		So(err, ShouldBeNil)

		Reset(func() {
			sim.Close()
		})

		Convey("When sampling 1024 shots", func() {
			result, err := runCircuit(sim, ghzCircuit(), WithShots(1024), WithSeed(7))
			So(err, ShouldBeNil)
			counts := result.GetCounts()

			Convey("Only all-zeros and all-ones should be observed", func() {
				for k := range counts {
					So(k, ShouldBeIn, "000", "111")
				}
			})

			Convey("Counts should sum to the shot count", func() {
				So(counts.Total(), ShouldEqual, 1024)
				So(result.Shots, ShouldEqual, 1024)
			})

			Convey("The split should be fair within three standard deviations", func() {
				sigma := distuv.Binomial{N: 1024, P: 0.5}.StdDev()
				So(math.Abs(float64(counts["000"])-512), ShouldBeLessThanOrEqualTo, 3*sigma)
				So(math.Abs(float64(counts["111"])-512), ShouldBeLessThanOrEqualTo, 3*sigma)
			})

			Convey("The exact outcomes should be half and half", func() {
				So(len(result.Outcomes), ShouldEqual, 2)
				So(result.Outcomes["000"], ShouldAlmostEqual, 0.5, 1e-12)
				So(result.Outcomes["111"], ShouldAlmostEqual, 0.5, 1e-12)
			})

			Convey("The result should describe the run", func() {
				So(result.Success, ShouldBeTrue)
				So(result.Status, ShouldEqual, StatusDone)
				So(result.BackendName, ShouldEqual, SimulatorName)
				So(result.Header.Name, ShouldEqual, "ghz")
				So(result.Header.NumQubits, ShouldEqual, 3)
				So(result.Seed, ShouldEqual, uint64(7))
				So(result.JobID, ShouldNotBeEmpty)
			})
		})

		Convey("The same seed should reproduce the same counts", func() {
			a, err := runCircuit(sim, ghzCircuit(), WithSeed(42))
			So(err, ShouldBeNil)
			b, err := runCircuit(sim, ghzCircuit(), WithSeed(42))
			So(err, ShouldBeNil)
			So(a.Counts, ShouldResemble, b.Counts)
		})

		Convey("Memory should list every shot", func() {
			result, err := runCircuit(sim, ghzCircuit(), WithShots(50), WithMemory(true))
			So(err, ShouldBeNil)
			So(len(result.Memory), ShouldEqual, 50)

			tally := make(Counts)
			for _, bits := range result.Memory {
				tally[bits]++
			}
			So(tally, ShouldResemble, result.Counts)
		})

		Convey("Snapshots should be taken at each barrier", func() {
			result, err := runCircuit(sim, ghzCircuit(), WithSnapshots(true))
			So(err, ShouldBeNil)
			So(len(result.Snapshots), ShouldEqual, 2)
			So(result.Snapshots[0].State, ShouldEqual, "1|000⟩")
			So(result.Snapshots[1].State, ShouldContainSubstring, "|111⟩")
		})
	})
}

func TestSimulatorCircuits(t *testing.T) {
	Convey("Given a simulator", t, func() {
		sim, err := NewSimulator(context.Background(), NewConfig())
		So(err, ShouldBeNil)

		Reset(func() {
			sim.Close()
		})

		Convey("A deterministic circuit should always give one outcome", func() {
			c := NewCircuit(2, 2).X(1).MeasureAll()
			result, err := runCircuit(sim, c, WithShots(100))
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, Counts{"10": 100})
		})

		Convey("Unmeasured classical bits should read 0", func() {
			c := NewCircuit(1, 3).X(0).Measure([]int{0}, []int{1})
			result, err := runCircuit(sim, c, WithShots(10))
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, Counts{"010": 10})
		})

		Convey("Initial states should be prepared before the first gate", func() {
			c := NewCircuit(1, 1, WithInitialState(Minus)).H(0).MeasureAll()
			result, err := runCircuit(sim, c, WithShots(10))
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, Counts{"1": 10})
		})

		Convey("An invalid circuit should be rejected before scheduling", func() {
			_, err := sim.Run(context.Background(), NewCircuit(1, 1).H(0))
			So(errors.Is(err, ErrNoMeasurements), ShouldBeTrue)
		})

		Convey("Zero shots should be rejected", func() {
			_, err := sim.Run(context.Background(), ghzCircuit(), WithShots(0))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A cancelled context should cancel the job", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			job, err := sim.Run(ctx, ghzCircuit())
			So(err, ShouldBeNil)

			_, err = job.Result()
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(job.Status(), ShouldEqual, StatusCancelled)
		})

		Convey("Running after Close should fail the job", func() {
			sim.Close()

			job, err := sim.Run(context.Background(), ghzCircuit())
			So(err, ShouldBeNil)

			_, err = job.Result()
			So(errors.Is(err, ErrBackendClosed), ShouldBeTrue)
			So(job.Status(), ShouldEqual, StatusError)
		})
	})

	Convey("Given a single-worker simulator whose worker is busy", t, func() {
		cfg := NewConfig()
		cfg.Workers = 1
		sim, err := NewSimulator(context.Background(), cfg)
		So(err, ShouldBeNil)

		release := make(chan struct{})
		busy := sim.pool.Schedule("busy", func(context.Context) (any, error) {
			<-release
			return nil, nil
		})

		Reset(func() {
			select {
			case <-release:
			default:
				close(release)
			}
			sim.Close()
		})

		Convey("Building on a circuit after Run should not change the queued job", func() {
			c := NewCircuit(2, 2, WithName("before")).X(0).Measure([]int{0}, []int{0})

			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			job, err := sim.Run(ctx, c, WithShots(20))
			So(err, ShouldBeNil)

			c.X(1).Measure([]int{1}, []int{1})
			So(c.Err(), ShouldBeNil)

			close(release)
			<-busy

			result, err := job.Wait(ctx)
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, Counts{"01": 20})
			So(result.Header.Name, ShouldEqual, "before")
		})
	})

	Convey("Given a simulator limited to two qubits", t, func() {
		cfg := NewConfig()
		cfg.MaxQubits = 2

		sim, err := NewSimulator(context.Background(), cfg)
		So(err, ShouldBeNil)
		defer sim.Close()

		_, err = sim.Run(context.Background(), ghzCircuit())
		So(errors.Is(err, ErrTooManyQubits), ShouldBeTrue)
	})

	Convey("Given an invalid configuration", t, func() {
		cfg := NewConfig()
		cfg.Workers = 0

		_, err := NewSimulator(context.Background(), cfg)
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})
}
