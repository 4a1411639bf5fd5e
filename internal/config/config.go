package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/NamanBalaji/swarmsim/internal/errors"
	"github.com/NamanBalaji/swarmsim/pkg/strategy"
)

const configFileName = "swarmsim"

// Config holds the configuration options for the application.
type Config struct {
	Rounds   int             `yaml:"rounds,omitempty"`
	Seed     int64           `yaml:"seed,omitempty"`
	Runs     int             `yaml:"runs,omitempty"`
	Parallel int             `yaml:"parallel,omitempty"`
	DBPath   string          `yaml:"dbPath,omitempty"`
	Swarm    *SwarmConfig    `yaml:"swarm,omitempty"`
	Peers    []PeerGroup     `yaml:"peers,omitempty"`
	Strategy *StrategyConfig `yaml:"strategy,omitempty"`
}

// SwarmConfig describes the shared file and the peers' capacities.
type SwarmConfig struct {
	Pieces         int `yaml:"pieces,omitempty"`
	BlocksPerPiece int `yaml:"blocksPerPiece,omitempty"`
	MaxRequests    int `yaml:"maxRequests,omitempty"`
	MinUpload      int `yaml:"minUpload,omitempty"`
	MaxUpload      int `yaml:"maxUpload,omitempty"`
	SeedUpload     int `yaml:"seedUpload,omitempty"`
}

// PeerGroup adds Count peers running Strategy.
type PeerGroup struct {
	Strategy string `yaml:"strategy"`
	Count    int    `yaml:"count"`
}

// StrategyConfig holds the allocator tuning.
type StrategyConfig struct {
	Alpha                  float64 `yaml:"alpha,omitempty"`
	Gamma                  float64 `yaml:"gamma,omitempty"`
	ReciprocationThreshold int     `yaml:"reciprocationThreshold,omitempty"`
	Generosity             float64 `yaml:"generosity,omitempty"`
	OptimisticShare        float64 `yaml:"optimisticShare,omitempty"`
	BootstrapRounds        int     `yaml:"bootstrapRounds,omitempty"`
	RegularSlots           int     `yaml:"regularSlots,omitempty"`
	FallbackSlots          int     `yaml:"fallbackSlots,omitempty"`
	OptimisticInterval     int     `yaml:"optimisticInterval,omitempty"`
	Lookback               int     `yaml:"lookback,omitempty"`
	PropShareReserve       float64 `yaml:"propShareReserve,omitempty"`
}

// Params converts the tuning into allocator parameters.
func (s *StrategyConfig) Params() strategy.Params {
	return strategy.Params{
		Alpha:                  s.Alpha,
		Gamma:                  s.Gamma,
		ReciprocationThreshold: s.ReciprocationThreshold,
		Generosity:             s.Generosity,
		OptimisticShare:        s.OptimisticShare,
		BootstrapRounds:        s.BootstrapRounds,
		RegularSlots:           s.RegularSlots,
		FallbackSlots:          s.FallbackSlots,
		OptimisticInterval:     s.OptimisticInterval,
		Lookback:               s.Lookback,
		PropShareReserve:       s.PropShareReserve,
	}
}

// GetConfig reads the configuration file from the XDG config directory.
// If the configuration file does not exist, it returns the default configuration.
func GetConfig() (*Config, error) {
	return Load(filepath.Join(xdg.ConfigHome, configFileName))
}

// Load reads the configuration file at path, falling back to defaults for
// a missing file, an empty file or any unset field.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &defaults, nil
		}

		return nil, err
	}

	if len(b) == 0 {
		return &defaults, nil
	}

	var cfg Config

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Errorf("failed to parse %s: %w", path, err))
	}

	swarmCfg := zeroOr(cfg.Swarm, defaults.Swarm)
	strategyCfg := zeroOr(cfg.Strategy, defaults.Strategy)

	return &Config{
		Rounds:   zeroOr(cfg.Rounds, defaults.Rounds),
		Seed:     zeroOr(cfg.Seed, defaults.Seed),
		Runs:     zeroOr(cfg.Runs, defaults.Runs),
		Parallel: zeroOr(cfg.Parallel, defaults.Parallel),
		DBPath:   zeroOr(cfg.DBPath, defaults.DBPath),
		Swarm: &SwarmConfig{
			Pieces:         zeroOr(swarmCfg.Pieces, defaults.Swarm.Pieces),
			BlocksPerPiece: zeroOr(swarmCfg.BlocksPerPiece, defaults.Swarm.BlocksPerPiece),
			MaxRequests:    zeroOr(swarmCfg.MaxRequests, defaults.Swarm.MaxRequests),
			MinUpload:      zeroOr(swarmCfg.MinUpload, defaults.Swarm.MinUpload),
			MaxUpload:      zeroOr(swarmCfg.MaxUpload, defaults.Swarm.MaxUpload),
			SeedUpload:     zeroOr(swarmCfg.SeedUpload, defaults.Swarm.SeedUpload),
		},
		Peers: zeroOr(cfg.Peers, defaults.Peers),
		Strategy: &StrategyConfig{
			Alpha:                  zeroOr(strategyCfg.Alpha, defaults.Strategy.Alpha),
			Gamma:                  zeroOr(strategyCfg.Gamma, defaults.Strategy.Gamma),
			ReciprocationThreshold: zeroOr(strategyCfg.ReciprocationThreshold, defaults.Strategy.ReciprocationThreshold),
			Generosity:             zeroOr(strategyCfg.Generosity, defaults.Strategy.Generosity),
			OptimisticShare:        zeroOr(strategyCfg.OptimisticShare, defaults.Strategy.OptimisticShare),
			BootstrapRounds:        zeroOr(strategyCfg.BootstrapRounds, defaults.Strategy.BootstrapRounds),
			RegularSlots:           zeroOr(strategyCfg.RegularSlots, defaults.Strategy.RegularSlots),
			FallbackSlots:          zeroOr(strategyCfg.FallbackSlots, defaults.Strategy.FallbackSlots),
			OptimisticInterval:     zeroOr(strategyCfg.OptimisticInterval, defaults.Strategy.OptimisticInterval),
			Lookback:               zeroOr(strategyCfg.Lookback, defaults.Strategy.Lookback),
			PropShareReserve:       zeroOr(strategyCfg.PropShareReserve, defaults.Strategy.PropShareReserve),
		},
	}, nil
}

func DefaultConfig() Config {
	return Config{
		Rounds:   maxRounds,
		Seed:     seed,
		Runs:     runs,
		Parallel: parallel,
		DBPath:   dbPath,
		Swarm: &SwarmConfig{
			Pieces:         pieces,
			BlocksPerPiece: blocksPerPiece,
			MaxRequests:    maxRequests,
			MinUpload:      minUpload,
			MaxUpload:      maxUpload,
			SeedUpload:     seedUpload,
		},
		Peers: defaultPeers(),
		Strategy: &StrategyConfig{
			Alpha:                  alpha,
			Gamma:                  gamma,
			ReciprocationThreshold: reciprocationThreshold,
			Generosity:             generosity,
			OptimisticShare:        optimisticShare,
			BootstrapRounds:        bootstrapRounds,
			RegularSlots:           regularSlots,
			FallbackSlots:          fallbackSlots,
			OptimisticInterval:     optimisticInterval,
			Lookback:               lookback,
			PropShareReserve:       propShareReserve,
		},
	}
}

// Validate reports the first setting that cannot drive a simulation.
func (c *Config) Validate() error {
	if c.Swarm == nil || c.Strategy == nil {
		return errors.NewConfigError(errors.New("swarm and strategy sections are required"))
	}

	s, st := c.Swarm, c.Strategy
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Rounds > 0, "rounds must be positive"},
		{c.Runs > 0, "runs must be positive"},
		{c.Parallel > 0, "parallel must be positive"},
		{s.Pieces > 0, "swarm.pieces must be positive"},
		{s.BlocksPerPiece > 0, "swarm.blocksPerPiece must be positive"},
		{s.MaxRequests > 0, "swarm.maxRequests must be positive"},
		{s.MinUpload > 0, "swarm.minUpload must be positive"},
		{s.MinUpload <= s.MaxUpload, "swarm.minUpload must not exceed swarm.maxUpload"},
		{s.SeedUpload > 0, "swarm.seedUpload must be positive"},
		{st.Alpha > 0, "strategy.alpha must be positive"},
		{st.Gamma > 0 && st.Gamma < 1, "strategy.gamma must be in (0, 1)"},
		{st.ReciprocationThreshold > 0, "strategy.reciprocationThreshold must be positive"},
		{st.Generosity > 0, "strategy.generosity must be positive"},
		{st.OptimisticShare > 0 && st.OptimisticShare <= 1, "strategy.optimisticShare must be in (0, 1]"},
		{st.BootstrapRounds >= 0, "strategy.bootstrapRounds must not be negative"},
		{st.RegularSlots > 0, "strategy.regularSlots must be positive"},
		{st.FallbackSlots > 0, "strategy.fallbackSlots must be positive"},
		{st.OptimisticInterval > 0, "strategy.optimisticInterval must be positive"},
		{st.Lookback > 0, "strategy.lookback must be positive"},
		{st.PropShareReserve > 0 && st.PropShareReserve <= 1, "strategy.propShareReserve must be in (0, 1]"},
		{len(c.Peers) > 0, "at least one peer group is required"},
	}

	for _, check := range checks {
		if !check.ok {
			return errors.NewConfigError(errors.New(check.msg))
		}
	}

	total := 0
	for _, g := range c.Peers {
		if _, err := strategy.ParseKind(g.Strategy); err != nil {
			return errors.NewConfigError(err)
		}
		if g.Count <= 0 {
			return errors.NewConfigError(fmt.Errorf("peer group %q: count must be positive", g.Strategy))
		}
		total += g.Count
	}

	if total < 2 {
		return errors.NewConfigError(errors.New("a swarm needs at least two peers"))
	}

	return nil
}

// zeroOr returns def if v is the zero value for its type.
func zeroOr[T any](v, def T) T {
	if reflect.ValueOf(v).IsZero() {
		return def
	}

	return v
}
