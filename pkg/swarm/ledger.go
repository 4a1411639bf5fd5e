package swarm

import "fmt"

// History is the read-only view of the download ledger handed to strategies.
// Only rounds strictly before CurrentRound are final and visible.
type History interface {
	CurrentRound() int
	Downloads(round int) []Download
}

// Ledger is the append-only, round-indexed record of completed transfers.
// It is owned by the round engine; index i holds the downloads of round i.
type Ledger struct {
	rounds [][]Download
}

// NewLedger creates an empty ledger positioned at round 0.
func NewLedger() *Ledger {
	return &Ledger{}
}

// LedgerFromRounds rebuilds a ledger from previously recorded rounds.
func LedgerFromRounds(rounds [][]Download) (*Ledger, error) {
	l := NewLedger()
	for _, downloads := range rounds {
		if err := l.Append(downloads); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// CurrentRound returns the index of the round in progress.
func (l *Ledger) CurrentRound() int {
	return len(l.rounds)
}

// Downloads returns the downloads recorded for a finished round. Indices
// outside [0, CurrentRound()) yield nil.
func (l *Ledger) Downloads(round int) []Download {
	if round < 0 || round >= len(l.rounds) {
		return nil
	}

	return l.rounds[round]
}

// Append finalizes the current round with the given downloads and advances
// the round counter.
func (l *Ledger) Append(downloads []Download) error {
	finalized := make([]Download, 0, len(downloads))
	for _, d := range downloads {
		switch {
		case d.From == "" || d.To == "":
			return fmt.Errorf("round %d: %w", len(l.rounds), ErrMissingEndpoint)
		case d.From == d.To:
			return fmt.Errorf("round %d: %s: %w", len(l.rounds), d.From, ErrSelfTransfer)
		case d.Blocks <= 0:
			return fmt.Errorf("round %d: %s -> %s: %w", len(l.rounds), d.From, d.To, ErrInvalidBlocks)
		}
		finalized = append(finalized, d)
	}

	l.rounds = append(l.rounds, finalized)
	return nil
}

// Rounds returns a copy of every finalized round.
func (l *Ledger) Rounds() [][]Download {
	out := make([][]Download, len(l.rounds))
	for i, downloads := range l.rounds {
		out[i] = append([]Download(nil), downloads...)
	}

	return out
}
