package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/swarmsim/internal/status"
	"github.com/NamanBalaji/swarmsim/pkg/strategy"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// PeerResult summarizes one peer after a run.
type PeerResult struct {
	ID       swarm.PeerID  `json:"id"`
	Strategy strategy.Kind `json:"strategy"`
	Capacity int           `json:"capacity"`
	// CompletedAt is the round the peer finished the file, or -1.
	CompletedAt int `json:"completedAt"`
	Uploaded    int `json:"uploaded"`
	Downloaded  int `json:"downloaded"`
}

// Result is the record of a finished simulation run.
type Result struct {
	ID         uuid.UUID          `json:"id"`
	Seed       int64              `json:"seed"`
	Status     status.Status      `json:"status"`
	Rounds     int                `json:"rounds"`
	Pieces     int                `json:"pieces"`
	Peers      []PeerResult       `json:"peers"`
	Ledger     [][]swarm.Download `json:"ledger"`
	Error      string             `json:"error,omitempty"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
}

// Completed returns how many peers finished the file.
func (r *Result) Completed() int {
	n := 0
	for _, p := range r.Peers {
		if p.CompletedAt >= 0 {
			n++
		}
	}

	return n
}
