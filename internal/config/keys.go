package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "simulation.rounds", typ: kInt, env: "CMDROUTE_SIMULATION_ROUNDS",
		apply:   func(cfg *Config, v any) { cfg.Simulation.Rounds = v.(int) },
		extract: func(cfg Config) any { return cfg.Simulation.Rounds },
	},
	{
		key: "simulation.seed", typ: kInt, env: "CMDROUTE_SIMULATION_SEED",
		apply:   func(cfg *Config, v any) { cfg.Simulation.Seed = v.(int) },
		extract: func(cfg Config) any { return cfg.Simulation.Seed },
	},
	{
		key: "simulation.roster", typ: kString, env: "CMDROUTE_SIMULATION_ROSTER",
		apply:   func(cfg *Config, v any) { cfg.Simulation.Roster = v.(string) },
		extract: func(cfg Config) any { return cfg.Simulation.Roster },
	},
	{
		key: "storage.data_dir", typ: kString, env: "CMDROUTE_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.record", typ: kBool, env: "CMDROUTE_STORAGE_RECORD",
		apply:   func(cfg *Config, v any) { cfg.Storage.Record = v.(bool) },
		extract: func(cfg Config) any { return cfg.Storage.Record },
	},
	{
		key: "log.level", typ: kString, env: "CMDROUTE_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "output.no_color", typ: kBool, env: "CMDROUTE_NO_COLOR",
		apply:   func(cfg *Config, v any) { cfg.Output.NoColor = v.(bool) },
		extract: func(cfg Config) any { return cfg.Output.NoColor },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kBool:
			v, ok, err := b.GetBool(s.key)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[WARN] %v. Using default value.\n", err)
				continue
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
