package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/NamanBalaji/swarmsim/internal/config"
	"github.com/NamanBalaji/swarmsim/internal/engine"
	"github.com/NamanBalaji/swarmsim/internal/logger"
	"github.com/NamanBalaji/swarmsim/internal/report"
	"github.com/NamanBalaji/swarmsim/internal/repository"
)

const reportWidth = 100

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: $XDG_CONFIG_HOME/swarmsim)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	runs := flag.Int("runs", 0, "Number of runs (overrides config)")
	seed := flag.Int64("seed", 0, "Seed of the first run (overrides config)")
	dbPath := flag.String("db", "", "Run database path (overrides config)")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting home directory: %v\n", err)
	}

	err = logger.InitLogging(*debug, filepath.Join(homeDir, ".swarmsim", "swarmsim.log"))
	if err != nil {
		log.Fatalf("Warning: Failed to initialize logging: %v\n", err)
	}
	defer logger.Close()

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.GetConfig()
	}
	if err != nil {
		log.Fatalf("Error loading config: %v\n", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "runs":
			cfg.Runs = *runs
		case "seed":
			cfg.Seed = *seed
		case "db":
			cfg.DBPath = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v\n", err)
	}

	repo, err := repository.NewBboltRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Error creating repository: %v\n", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	results, err := engine.RunBatch(ctx, cfg, cfg.Runs, repo.Save)
	if err != nil {
		logger.Errorf("Batch failed: %v", err)
		log.Fatalf("Error running simulations: %v\n", err)
	}

	for _, res := range results {
		fmt.Println(report.Run(res, reportWidth))
	}

	logger.Infof("Stored %d runs in %s", len(results), cfg.DBPath)
}
