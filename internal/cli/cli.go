// Package cli holds the flag, config and logger setup shared by the commands.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
)

const (
	KeyConfig   = "config"
	KeyVerbose  = "verbose"
	KeyLogLevel = "log-level"
)

// Env is what every command starts from once its flags are parsed.
type Env struct {
	Viper   *viper.Viper
	Config  *qsim.Config
	Log     *log.Logger
	Verbose bool
}

// Flags returns a flag set carrying the options every command accepts.
func Flags(name string) *pflag.FlagSet {
	def := qsim.NewConfig()

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Int(qsim.KeyShots, def.Shots, "number of shots to sample")
	fs.Uint64(qsim.KeySeed, def.Seed, "sampler seed, 0 picks one at random")
	fs.Int(qsim.KeyWorkers, def.Workers, "simulator worker goroutines")
	fs.String(KeyConfig, "", "optional config file (yaml, json or toml)")
	fs.Bool(KeyVerbose, false, "debug logging and state snapshots at barriers")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	return fs
}

// Load parses args into fs and builds the Env for the named command. Flags
// win over the config file.
func Load(name string, fs *pflag.FlagSet, args []string, stderr io.Writer) (*Env, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	verbose := v.GetBool(KeyVerbose)
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(stderr, log.Options{
		Prefix: name,
		Level:  level,
	})

	cfg, err := qsim.LoadConfig(v)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", "config", spew.Sdump(cfg))

	return &Env{
		Viper:   v,
		Config:  cfg,
		Log:     logger,
		Verbose: verbose,
	}, nil
}

// Debug logs every snapshot and the pool metrics of a finished run.
func (e *Env) Debug(result *qsim.Result, metrics *qsim.Metrics) {
	if !e.Verbose {
		return
	}
	for _, snap := range result.Snapshots {
		e.Log.Debug("snapshot", "instruction", snap.Instruction, "state", snap.State)
	}
	e.Log.Debug("pool metrics", "metrics", spew.Sdump(metrics.ExportMetrics()))
}
