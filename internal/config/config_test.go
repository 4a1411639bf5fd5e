package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adrg/xdg"

	cfg "github.com/NamanBalaji/swarmsim/internal/config"
	"github.com/NamanBalaji/swarmsim/internal/errors"
	"github.com/NamanBalaji/swarmsim/pkg/strategy"
)

func withTempConfigHome(t *testing.T) (restore func(), dir string, file string) {
	t.Helper()
	orig := xdg.ConfigHome
	dir = t.TempDir()
	xdg.ConfigHome = dir
	restore = func() { xdg.ConfigHome = orig }
	file = filepath.Join(dir, "swarmsim")
	return
}

func TestGetConfig_Table(t *testing.T) {
	restore, _, cfgFile := withTempConfigHome(t)
	defer restore()

	def := cfg.DefaultConfig()

	tests := []struct {
		name      string
		preWrite  bool
		contents  string
		expectErr bool
		check     func(t *testing.T, got *cfg.Config, def cfg.Config)
	}{
		{
			name:     "missing_file_returns_defaults",
			preWrite: false,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:     "empty_file_returns_defaults",
			preWrite: true,
			contents: "",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:      "invalid_yaml_returns_error",
			preWrite:  true,
			contents:  "rounds: [not, a, number",
			expectErr: true,
			check:     func(t *testing.T, _ *cfg.Config, _ cfg.Config) {},
		},
		{
			name:     "no_sections_uses_defaults_for_nested",
			preWrite: true,
			contents: "rounds: 50\n",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Rounds != 50 {
					t.Fatalf("rounds not applied, got %d", got.Rounds)
				}
				if !reflect.DeepEqual(*got.Swarm, *def.Swarm) {
					t.Fatalf("swarm defaults not applied\nwant: %#v\ngot:  %#v", *def.Swarm, *got.Swarm)
				}
				if !reflect.DeepEqual(*got.Strategy, *def.Strategy) {
					t.Fatalf("strategy defaults not applied\nwant: %#v\ngot:  %#v", *def.Strategy, *got.Strategy)
				}
				if !reflect.DeepEqual(got.Peers, def.Peers) {
					t.Fatalf("peer defaults not applied\nwant: %#v\ngot:  %#v", def.Peers, got.Peers)
				}
			},
		},
		{
			name:     "partial_override_and_fallback",
			preWrite: true,
			contents: `
seed: 42
swarm:
  pieces: 10
  maxUpload: 80
peers:
  - strategy: tourney
    count: 3
  - strategy: seed
    count: 1
strategy:
  alpha: 0.3
  bootstrapRounds: 5
`,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Seed != 42 {
					t.Fatalf("want seed=42 got %d", got.Seed)
				}
				if got.Swarm.Pieces != 10 || got.Swarm.MaxUpload != 80 {
					t.Fatalf("swarm overrides not applied: %#v", *got.Swarm)
				}
				if got.Swarm.BlocksPerPiece != def.Swarm.BlocksPerPiece {
					t.Fatalf("want swarm.blocksPerPiece default %d got %d", def.Swarm.BlocksPerPiece, got.Swarm.BlocksPerPiece)
				}
				if got.Swarm.MinUpload != def.Swarm.MinUpload {
					t.Fatalf("want swarm.minUpload default %d got %d", def.Swarm.MinUpload, got.Swarm.MinUpload)
				}
				if len(got.Peers) != 2 || got.Peers[0].Strategy != "tourney" || got.Peers[0].Count != 3 {
					t.Fatalf("peers override not applied: %#v", got.Peers)
				}
				if got.Strategy.Alpha != 0.3 || got.Strategy.BootstrapRounds != 5 {
					t.Fatalf("strategy overrides not applied: %#v", *got.Strategy)
				}
				if got.Strategy.Gamma != def.Strategy.Gamma {
					t.Fatalf("want strategy.gamma default %v got %v", def.Strategy.Gamma, got.Strategy.Gamma)
				}
				if got.Rounds != def.Rounds {
					t.Fatalf("want rounds default %d got %d", def.Rounds, got.Rounds)
				}
			},
		},
		{
			name:     "explicit_zero_values_fall_back_to_defaults",
			preWrite: true,
			contents: `
rounds: 0
swarm:
  pieces: 0
  blocksPerPiece: 0
strategy:
  generosity: 0
  optimisticShare: 0
`,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.Rounds != def.Rounds {
					t.Fatalf("rounds zero should fallback. want %d got %d", def.Rounds, got.Rounds)
				}
				if got.Swarm.Pieces != def.Swarm.Pieces {
					t.Fatalf("swarm.pieces zero should fallback. want %d got %d", def.Swarm.Pieces, got.Swarm.Pieces)
				}
				if got.Swarm.BlocksPerPiece != def.Swarm.BlocksPerPiece {
					t.Fatalf("swarm.blocksPerPiece zero should fallback. want %d got %d", def.Swarm.BlocksPerPiece, got.Swarm.BlocksPerPiece)
				}
				if got.Strategy.Generosity != def.Strategy.Generosity {
					t.Fatalf("strategy.generosity zero should fallback. want %v got %v", def.Strategy.Generosity, got.Strategy.Generosity)
				}
				if got.Strategy.OptimisticShare != def.Strategy.OptimisticShare {
					t.Fatalf("strategy.optimisticShare zero should fallback. want %v got %v", def.Strategy.OptimisticShare, got.Strategy.OptimisticShare)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// clean start each subtest
			_ = os.Remove(cfgFile)
			if tc.preWrite {
				if err := os.WriteFile(cfgFile, []byte(tc.contents), 0o600); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}
			got, err := cfg.GetConfig()
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetConfig error: %v", err)
			}
			tc.check(t, got, def)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte("runs: 7\nparallel: 2\n"), 0o600); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	got, err := cfg.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Runs != 7 || got.Parallel != 2 {
		t.Fatalf("want runs=7 parallel=2, got runs=%d parallel=%d", got.Runs, got.Parallel)
	}
}

func TestDefaultConfig_NonNilPointers(t *testing.T) {
	d := cfg.DefaultConfig()
	if d.Swarm == nil {
		t.Fatalf("DefaultConfig.Swarm is nil")
	}
	if d.Strategy == nil {
		t.Fatalf("DefaultConfig.Strategy is nil")
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got %v", err)
	}
}

func TestStrategyConfig_ParamsMatchDefaults(t *testing.T) {
	d := cfg.DefaultConfig()
	if got, want := d.Strategy.Params(), strategy.DefaultParams(); got != want {
		t.Fatalf("default strategy params drifted\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *cfg.Config)
	}{
		{"min_upload_above_max", func(c *cfg.Config) { c.Swarm.MinUpload = c.Swarm.MaxUpload + 1 }},
		{"gamma_out_of_range", func(c *cfg.Config) { c.Strategy.Gamma = 1 }},
		{"optimistic_share_too_large", func(c *cfg.Config) { c.Strategy.OptimisticShare = 1.5 }},
		{"unknown_strategy", func(c *cfg.Config) { c.Peers = []cfg.PeerGroup{{Strategy: "bittyrant", Count: 2}} }},
		{"non_positive_count", func(c *cfg.Config) { c.Peers = []cfg.PeerGroup{{Strategy: "tourney", Count: 0}} }},
		{"single_peer", func(c *cfg.Config) { c.Peers = []cfg.PeerGroup{{Strategy: "tourney", Count: 1}} }},
		{"no_peers", func(c *cfg.Config) { c.Peers = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg.DefaultConfig()
			swarmCopy, strategyCopy := *c.Swarm, *c.Strategy
			c.Swarm, c.Strategy = &swarmCopy, &strategyCopy

			tc.mutate(&c)

			err := c.Validate()
			if err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !errors.IsConfigError(err) {
				t.Fatalf("expected CONFIG error, got %v", err)
			}
		})
	}
}
