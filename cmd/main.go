package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/NamanBalaji/swarmsim/internal/config"
	"github.com/NamanBalaji/swarmsim/internal/report"
	"github.com/NamanBalaji/swarmsim/internal/repository"
)

// Lists the runs stored by swarmsim, or shows one of them in full.
func main() {
	dbPath := flag.String("db", "", "Run database path (default: from config)")
	show := flag.String("show", "", "ID of a run to render")
	remove := flag.String("delete", "", "ID of a run to delete")
	flag.Parse()

	path := *dbPath
	if path == "" {
		cfg, err := config.GetConfig()
		if err != nil {
			log.Fatalf("Error loading config: %v\n", err)
		}
		path = cfg.DBPath
	}

	repo, err := repository.NewBboltRepository(path)
	if err != nil {
		log.Fatalf("Error opening repository: %v\n", err)
	}
	defer repo.Close()

	switch {
	case *show != "":
		id, err := uuid.Parse(*show)
		if err != nil {
			log.Fatalf("Invalid run ID %q: %v\n", *show, err)
		}

		res, err := repo.Find(id)
		if err != nil {
			log.Fatalf("Error finding run: %v\n", err)
		}

		fmt.Print(report.Run(res, 100))

	case *remove != "":
		id, err := uuid.Parse(*remove)
		if err != nil {
			log.Fatalf("Invalid run ID %q: %v\n", *remove, err)
		}

		if err := repo.Delete(id); err != nil {
			log.Fatalf("Error deleting run: %v\n", err)
		}

		fmt.Printf("Deleted run %s\n", id)

	default:
		runs, err := repo.FindAll()
		if err != nil {
			log.Fatalf("Error listing runs: %v\n", err)
		}

		fmt.Print(report.List(runs))
	}
}
