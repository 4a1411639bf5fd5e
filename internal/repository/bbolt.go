package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/NamanBalaji/swarmsim/internal/engine"
	"github.com/NamanBalaji/swarmsim/internal/errors"
)

const (
	runsBucket     = "runs"
	metadataBucket = "metadata"
	schemaVersion  = 1
)

// BboltRepository implements Repository on a single bbolt file.
type BboltRepository struct {
	db *bbolt.DB
}

var _ Repository = (*BboltRepository)(nil)

// NewBboltRepository opens (or creates) the database at dbPath.
func NewBboltRepository(dbPath string) (*BboltRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewStorageError(fmt.Errorf("failed to create database directory: %w", err))
		}
	}

	options := &bbolt.Options{
		Timeout: 1 * time.Second,
	}

	db, err := bbolt.Open(dbPath, 0o600, options)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Errorf("failed to open database: %w", err))
	}

	repo := &BboltRepository{
		db: db,
	}

	if err := repo.initialize(); err != nil {
		db.Close()
		return nil, errors.NewStorageError(err)
	}

	return repo, nil
}

// initialize sets up buckets and schema
func (r *BboltRepository) initialize() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		if err != nil {
			return fmt.Errorf("failed to create runs bucket: %w", err)
		}

		metadata, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		versionBytes := []byte(fmt.Sprintf("%d", schemaVersion))
		if err := metadata.Put([]byte("schema_version"), versionBytes); err != nil {
			return fmt.Errorf("failed to store schema version: %w", err)
		}

		return nil
	})
}

// Save persists a finished run, replacing any run with the same ID.
func (r *BboltRepository) Save(run *engine.Result) error {
	if run == nil {
		return errors.NewStorageError(errors.New("cannot save nil run"))
	}
	if run.ID == uuid.Nil {
		return errors.NewStorageError(errors.New("run ID cannot be empty"))
	}

	data, err := json.Marshal(run)
	if err != nil {
		return errors.NewStorageError(fmt.Errorf("failed to marshal run: %w", err))
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		return bucket.Put([]byte(run.ID.String()), data)
	})
	if err != nil {
		return errors.NewStorageError(fmt.Errorf("failed to save run: %w", err))
	}

	return nil
}

// Find retrieves a run by ID.
func (r *BboltRepository) Find(id uuid.UUID) (*engine.Result, error) {
	if id == uuid.Nil {
		return nil, errors.NewStorageError(errors.New("run ID cannot be empty"))
	}

	var data []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		// bbolt memory is only valid inside the transaction
		if v := bucket.Get([]byte(id.String())); v != nil {
			data = append([]byte(nil), v...)
		}

		return nil
	})
	if err != nil {
		return nil, errors.NewStorageError(err)
	}

	if data == nil {
		return nil, errors.NewStorageError(fmt.Errorf("%w: %s", errors.ErrRunNotFound, id))
	}

	run := &engine.Result{}
	if err := json.Unmarshal(data, run); err != nil {
		return nil, errors.NewStorageError(fmt.Errorf("failed to unmarshal run: %w", err))
	}

	return run, nil
}

// FindAll retrieves every stored run, oldest first.
func (r *BboltRepository) FindAll() ([]*engine.Result, error) {
	var runs []*engine.Result

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		return bucket.ForEach(func(_, v []byte) error {
			run := &engine.Result{}
			if err := json.Unmarshal(v, run); err != nil {
				return fmt.Errorf("failed to unmarshal run: %w", err)
			}

			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, errors.NewStorageError(err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.Before(runs[j].StartedAt)
		}
		return runs[i].Seed < runs[j].Seed
	})

	return runs, nil
}

// Delete removes a run.
func (r *BboltRepository) Delete(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.NewStorageError(errors.New("run ID cannot be empty"))
	}

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(runsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", runsBucket)
		}

		if bucket.Get([]byte(id.String())) == nil {
			return fmt.Errorf("%w: %s", errors.ErrRunNotFound, id)
		}

		return bucket.Delete([]byte(id.String()))
	})
	if err != nil {
		return errors.NewStorageError(err)
	}

	return nil
}

// Close closes the database
func (r *BboltRepository) Close() error {
	return r.db.Close()
}
