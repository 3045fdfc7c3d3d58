package qsim

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Counts maps a classical bitstring to how many shots produced it.
type Counts map[string]int

// Keys returns the observed bitstrings in ascending order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total is the number of shots the counts were gathered over.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Ratio is the fraction of shots that measured bits.
func (c Counts) Ratio(bits string) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[bits]) / float64(total)
}

// MostFrequent returns the most common outcome, lowest bitstring on ties.
func (c Counts) MostFrequent() string {
	best := ""
	for _, k := range c.Keys() {
		if best == "" || c[k] > c[best] {
			best = k
		}
	}
	return best
}

func (c Counts) String() string {
	parts := make([]string, 0, len(c))
	for _, k := range c.Keys() {
		parts = append(parts, fmt.Sprintf("%q: %d", k, c[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Outcomes is the exact probability of each bitstring before sampling.
type Outcomes map[string]float64

func (o Outcomes) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o Outcomes) String() string {
	var sb strings.Builder
	sb.WriteString("Outcomes with probability:\n")
	for _, k := range o.Keys() {
		fmt.Fprintf(&sb, "%s [p=%.6g]\n", k, o[k])
	}
	return sb.String()
}

// Header describes the experiment a result belongs to.
type Header struct {
	Name      string `json:"name" msgpack:"name"`
	NumQubits int    `json:"n_qubits" msgpack:"n_qubits"`
	NumClbits int    `json:"memory_slots" msgpack:"memory_slots"`
}

// Snapshot is the register state as it stood at a barrier.
type Snapshot struct {
	Instruction int    `json:"instruction" msgpack:"instruction"`
	State       string `json:"state" msgpack:"state"`
}

/*
Result is what a finished job hands back: backend and job identity, the
experiment header, exact outcome probabilities and the sampled counts.
*/
type Result struct {
	BackendName    string        `json:"backend_name" msgpack:"backend_name"`
	BackendVersion string        `json:"backend_version" msgpack:"backend_version"`
	JobID          string        `json:"job_id" msgpack:"job_id"`
	Success        bool          `json:"success" msgpack:"success"`
	Status         JobStatus     `json:"status" msgpack:"status"`
	Date           time.Time     `json:"date" msgpack:"date"`
	TimeTaken      time.Duration `json:"time_taken" msgpack:"time_taken"`
	Shots          int           `json:"shots" msgpack:"shots"`
	Seed           uint64        `json:"seed_simulator" msgpack:"seed_simulator"`
	Header         Header        `json:"header" msgpack:"header"`
	Counts         Counts        `json:"counts" msgpack:"counts"`
	Outcomes       Outcomes      `json:"outcomes" msgpack:"outcomes"`
	Memory         []string      `json:"memory,omitempty" msgpack:"memory,omitempty"`
	Snapshots      []Snapshot    `json:"snapshots,omitempty" msgpack:"snapshots,omitempty"`
}

// GetCounts returns the sampled counts.
func (r *Result) GetCounts() Counts {
	return r.Counts
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"Result(backend_name=%q, backend_version=%q, job_id=%q, success=%t, "+
			"results=[ExperimentResult(shots=%d, success=%t, seed_simulator=%d, "+
			"data=ExperimentResultData(counts=%s), "+
			"header=Header(name=%q, n_qubits=%d, memory_slots=%d))], "+
			"date=%s, status=%s, time_taken=%s)",
		r.BackendName, r.BackendVersion, r.JobID, r.Success,
		r.Shots, r.Success, r.Seed,
		r.Counts,
		r.Header.Name, r.Header.NumQubits, r.Header.NumClbits,
		r.Date.Format(time.RFC3339), r.Status, r.TimeTaken,
	)
}
