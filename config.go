package qsim

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys understood by LoadConfig.
const (
	KeyShots             = "shots"
	KeySeed              = "seed"
	KeyWorkers           = "workers"
	KeyMaxQubits         = "max_qubits"
	KeySchedulingTimeout = "scheduling_timeout"
	KeyJobTimeout        = "job_timeout"
	KeyResultTTL         = "result_ttl"
)

type Config struct {
	Shots             int
	Seed              uint64
	Workers           int
	MaxQubits         int
	SchedulingTimeout time.Duration
	JobTimeout        time.Duration
	ResultTTL         time.Duration
}

func NewConfig() *Config {
	return &Config{
		Shots:             1024,
		Workers:           2,
		MaxQubits:         24,
		SchedulingTimeout: 10 * time.Second,
		JobTimeout:        time.Minute,
		ResultTTL:         10 * time.Minute,
	}
}

// SetDefaults registers NewConfig's values so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	def := NewConfig()
	v.SetDefault(KeyShots, def.Shots)
	v.SetDefault(KeySeed, def.Seed)
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyMaxQubits, def.MaxQubits)
	v.SetDefault(KeySchedulingTimeout, def.SchedulingTimeout)
	v.SetDefault(KeyJobTimeout, def.JobTimeout)
	v.SetDefault(KeyResultTTL, def.ResultTTL)
}

// LoadConfig builds a Config from viper, which may be fed by flags or a
// config file. The result is validated.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Shots:             v.GetInt(KeyShots),
		Seed:              v.GetUint64(KeySeed),
		Workers:           v.GetInt(KeyWorkers),
		MaxQubits:         v.GetInt(KeyMaxQubits),
		SchedulingTimeout: v.GetDuration(KeySchedulingTimeout),
		JobTimeout:        v.GetDuration(KeyJobTimeout),
		ResultTTL:         v.GetDuration(KeyResultTTL),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Shots < 1:
		return fmt.Errorf("config: %w: shots must be positive, got %d", ErrInvalidConfig, c.Shots)
	case c.Workers < 1:
		return fmt.Errorf("config: %w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxQubits < 1 || c.MaxQubits > 30:
		return fmt.Errorf("config: %w: max_qubits must be in [1,30], got %d", ErrInvalidConfig, c.MaxQubits)
	case c.SchedulingTimeout <= 0 || c.JobTimeout <= 0:
		return fmt.Errorf("config: %w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}
