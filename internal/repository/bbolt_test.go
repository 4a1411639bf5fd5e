package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/swarmsim/internal/engine"
	"github.com/NamanBalaji/swarmsim/internal/errors"
	"github.com/NamanBalaji/swarmsim/internal/repository"
	"github.com/NamanBalaji/swarmsim/internal/status"
	"github.com/NamanBalaji/swarmsim/pkg/strategy"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

func newRepo(t *testing.T) *repository.BboltRepository {
	t.Helper()

	repo, err := repository.NewBboltRepository(filepath.Join(t.TempDir(), "runs", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func sampleRun(seed int64, started time.Time) *engine.Result {
	return &engine.Result{
		ID:     uuid.New(),
		Seed:   seed,
		Status: status.Completed,
		Rounds: 2,
		Pieces: 1,
		Peers: []engine.PeerResult{
			{ID: "seed-00", Strategy: strategy.KindSeed, Capacity: 4, CompletedAt: 0, Uploaded: 4},
			{ID: "tourney-01", Strategy: strategy.KindTourney, Capacity: 3, CompletedAt: 1, Downloaded: 4},
		},
		Ledger: [][]swarm.Download{
			{{From: "seed-00", To: "tourney-01", Blocks: 2}},
			{{From: "seed-00", To: "tourney-01", Blocks: 2}},
		},
		StartedAt:  started,
		FinishedAt: started.Add(time.Millisecond),
	}
}

func TestNewBboltRepository_OpenError(t *testing.T) {
	dir := t.TempDir()
	_, err := repository.NewBboltRepository(dir)
	if err == nil {
		t.Fatalf("Expected error when opening DB on directory path, got nil")
	}
	if !errors.IsStorageError(err) {
		t.Errorf("Expected storage error, got %v", err)
	}
}

func TestSaveNilRun(t *testing.T) {
	repo := newRepo(t)

	if err := repo.Save(nil); err == nil || !errors.IsStorageError(err) {
		t.Errorf("Expected storage error saving nil run, got %v", err)
	}

	if err := repo.Save(&engine.Result{}); err == nil {
		t.Errorf("Expected error saving run without ID, got nil")
	}
}

func TestSaveFind(t *testing.T) {
	repo := newRepo(t)
	run := sampleRun(7, time.Now().UTC())

	if err := repo.Save(run); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := repo.Find(run.ID)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}

	if got.Seed != 7 || got.Rounds != 2 || len(got.Peers) != 2 || len(got.Ledger) != 2 {
		t.Errorf("Find returned wrong data: %+v", got)
	}
	if got.Peers[1].Strategy != strategy.KindTourney || got.Peers[1].CompletedAt != 1 {
		t.Errorf("Peer results not restored: %+v", got.Peers)
	}
	if got.Ledger[0][0] != (swarm.Download{From: "seed-00", To: "tourney-01", Blocks: 2}) {
		t.Errorf("Ledger not restored: %+v", got.Ledger)
	}

	_, err = repo.Find(uuid.New())
	if !errors.Is(err, errors.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}

	_, err = repo.Find(uuid.Nil)
	if err == nil {
		t.Errorf("Expected error finding Nil ID, got nil")
	}
}

func TestSaveFindAllDelete(t *testing.T) {
	repo := newRepo(t)

	list, err := repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d items", len(list))
	}

	now := time.Now().UTC()
	later := sampleRun(2, now.Add(time.Second))
	earlier := sampleRun(1, now)
	for _, run := range []*engine.Result{later, earlier} {
		if err := repo.Save(run); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	list, err = repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(list) != 2 || list[0].ID != earlier.ID || list[1].ID != later.ID {
		t.Errorf("FindAll returned wrong data: %+v", list)
	}

	if err := repo.Delete(uuid.Nil); err == nil {
		t.Errorf("Expected error deleting Nil ID, got nil")
	}

	if err := repo.Delete(uuid.New()); !errors.Is(err, errors.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound deleting non-existent ID, got %v", err)
	}

	if err := repo.Delete(earlier.ID); err != nil {
		t.Errorf("Delete error for existing ID: %v", err)
	}

	list, err = repo.FindAll()
	if err != nil {
		t.Fatalf("FindAll error after delete: %v", err)
	}
	if len(list) != 1 || list[0].ID != later.ID {
		t.Errorf("Expected only the later run after delete, got %+v", list)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	run := sampleRun(3, time.Now().UTC())
	if err := repo.Save(run); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	repo, err = repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen repository: %v", err)
	}
	defer repo.Close()

	if _, err := repo.Find(run.ID); err != nil {
		t.Errorf("Run lost after reopen: %v", err)
	}
}

func TestCloseBehavior(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := repository.NewBboltRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if err := repo.Save(sampleRun(1, time.Now())); err == nil {
		t.Errorf("Expected error Save after Close, got nil")
	}
	if _, err := repo.FindAll(); err == nil {
		t.Errorf("Expected error FindAll after Close, got nil")
	}
	if err := repo.Delete(uuid.New()); err == nil {
		t.Errorf("Expected error Delete after Close, got nil")
	}
}
