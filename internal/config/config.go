package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Simulation SimulationConfig
	Storage    StorageConfig
	Log        LogConfig
	Output     OutputConfig
}

type SimulationConfig struct {
	Rounds int
	Seed   int    // 0 picks a random seed
	Roster string // optional YAML roster path
}

type StorageConfig struct {
	DataDir string
	Record  bool
}

type LogConfig struct {
	Level string
}

type OutputConfig struct {
	NoColor bool
}

func defaults() Config {
	return Config{
		Simulation: SimulationConfig{
			Rounds: 3,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/cmdroute/config.json and then applies CMDROUTE_*
// environment overrides. A missing file yields the defaults.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

func validate(cfg Config) error {
	if cfg.Simulation.Rounds <= 0 {
		return fmt.Errorf("invalid config: simulation.rounds must be positive, got %d", cfg.Simulation.Rounds)
	}
	level := strings.ToLower(cfg.Log.Level)
	for _, l := range logLevels {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("invalid config: log.level must be one of %s, got %q",
		strings.Join(logLevels, ", "), cfg.Log.Level)
}
