package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/swarmsim/internal/config"
	"github.com/NamanBalaji/swarmsim/internal/errors"
	"github.com/NamanBalaji/swarmsim/internal/logger"
	"github.com/NamanBalaji/swarmsim/internal/status"
	"github.com/NamanBalaji/swarmsim/pkg/strategy"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

type peerState struct {
	agent    *strategy.Peer
	held     []int
	complete *swarm.PieceSet
	capacity int
	doneAt   int
}

// Engine plays one simulation: it advances rounds, hands every peer a fresh
// availability snapshot and the ledger, resolves uploads into downloads and
// appends them to the ledger. An Engine is not safe for concurrent use;
// independent runs use independent engines.
type Engine struct {
	cfg    *config.Config
	seed   int64
	peers  []*peerState
	byID   map[swarm.PeerID]*peerState
	ledger *swarm.Ledger
	status status.Status

	startedAt time.Time
}

// New builds a swarm from cfg. Every random choice of the run derives from seed.
func New(cfg *config.Config, seed int64) (*Engine, error) {
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	params := cfg.Strategy.Params()
	sw := cfg.Swarm

	e := &Engine{
		cfg:    cfg,
		seed:   seed,
		byID:   make(map[swarm.PeerID]*peerState),
		ledger: swarm.NewLedger(),
		status: status.Pending,
	}

	n := 0
	for _, group := range cfg.Peers {
		kind, err := strategy.ParseKind(group.Strategy)
		if err != nil {
			return nil, errors.NewConfigError(err)
		}

		for j := 0; j < group.Count; j++ {
			id := swarm.PeerID(fmt.Sprintf("%s-%02d", kind, n))
			n++

			p := &peerState{
				held:     make([]int, sw.Pieces),
				complete: swarm.NewPieceSet(),
				doneAt:   -1,
			}

			if kind == strategy.KindSeed {
				p.capacity = sw.SeedUpload
				for i := range p.held {
					p.held[i] = sw.BlocksPerPiece
				}
				p.complete = swarm.FullPieceSet(sw.Pieces)
				p.doneAt = 0
			} else {
				p.capacity = sw.MinUpload + rng.Intn(sw.MaxUpload-sw.MinUpload+1)
			}

			conf := strategy.Conf{
				BlocksPerPiece: sw.BlocksPerPiece,
				MaxRequests:    sw.MaxRequests,
				UploadCapacity: p.capacity,
				MinPeerUpload:  sw.MinUpload,
			}

			p.agent, err = strategy.NewPeer(id, kind, conf, params, rand.New(rand.NewSource(rng.Int63())))
			if err != nil {
				return nil, errors.NewConfigError(err)
			}

			e.peers = append(e.peers, p)
			e.byID[id] = p
		}
	}

	return e, nil
}

// Ledger returns the run's download ledger.
func (e *Engine) Ledger() swarm.History {
	return e.ledger
}

// Status returns the run's lifecycle state.
func (e *Engine) Status() status.Status {
	return e.status
}

// Run plays rounds until every peer holds the file, the round limit is hit or
// ctx is cancelled. The returned result is valid even when err is non-nil.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.status = status.Running
	e.startedAt = time.Now()
	logger.Infof("run %d: starting with %d peers", e.seed, len(e.peers))

	for !e.allDone() && e.ledger.CurrentRound() < e.cfg.Rounds {
		round := e.ledger.CurrentRound()

		if err := ctx.Err(); err != nil {
			e.status = status.Cancelled
			err = errors.NewContextError(err, round)
			return e.result(err), err
		}

		if err := e.Step(); err != nil {
			e.status = status.Failed
			err = errors.Categorize(err, round)
			logger.Errorf("run %d: %v", e.seed, err)
			return e.result(err), err
		}
	}

	if e.allDone() {
		e.status = status.Completed
	} else {
		e.status = status.RoundLimit
	}

	logger.Infof("run %d: %s after %d rounds", e.seed, status.String(e.status), e.ledger.CurrentRound())

	return e.result(nil), nil
}

// Step plays a single round.
func (e *Engine) Step() error {
	round := e.ledger.CurrentRound()

	snapshots := make(map[swarm.PeerID]swarm.Availability, len(e.peers))
	incoming := make(map[swarm.PeerID][]swarm.Request, len(e.peers))

	for _, p := range e.peers {
		id := p.agent.ID()
		snapshots[id] = e.neighbours(id)

		p.agent.UpdatePieces(p.held)
		requests := p.agent.Requests(snapshots[id], e.ledger)
		if err := e.validateRequests(round, p, snapshots[id], requests); err != nil {
			return err
		}

		for _, r := range requests {
			incoming[r.Responder] = append(incoming[r.Responder], r)
		}
	}

	var uploads []swarm.Upload
	for _, p := range e.peers {
		id := p.agent.ID()
		granted := p.agent.Uploads(incoming[id], snapshots[id], e.ledger)
		if err := e.validateUploads(round, p, incoming[id], granted); err != nil {
			return err
		}

		uploads = append(uploads, granted...)
	}

	downloads := e.resolve(uploads, incoming)
	if err := e.ledger.Append(downloads); err != nil {
		return errors.NewLedgerError(err, round)
	}

	for _, p := range e.peers {
		if p.doneAt < 0 && p.complete.IsComplete(e.cfg.Swarm.Pieces) {
			p.doneAt = round
			logger.Debugf("run %d round %d: %s completed", e.seed, round, p.agent.ID())
		}
	}

	return nil
}

// neighbours snapshots what every peer other than self holds.
func (e *Engine) neighbours(self swarm.PeerID) swarm.Availability {
	avail := make(swarm.Availability, len(e.peers)-1)
	for _, p := range e.peers {
		if id := p.agent.ID(); id != self {
			avail[id] = p.complete
		}
	}

	return avail
}

// resolve turns uploads into downloads. Each upload serves the receiver's
// requests to the sender in the order they were made, never filling a piece
// past its last block.
func (e *Engine) resolve(uploads []swarm.Upload, incoming map[swarm.PeerID][]swarm.Request) []swarm.Download {
	bpp := e.cfg.Swarm.BlocksPerPiece

	var downloads []swarm.Download
	for _, u := range uploads {
		to := e.byID[u.To]
		budget, delivered := u.Bandwidth, 0

		for _, r := range incoming[u.From] {
			if budget == 0 {
				break
			}
			if r.Requester != u.To {
				continue
			}

			n := min(bpp-to.held[r.Piece], budget)
			if n <= 0 {
				continue
			}

			to.held[r.Piece] += n
			budget -= n
			delivered += n

			if to.held[r.Piece] == bpp {
				_ = to.complete.SetPiece(r.Piece)
			}
		}

		if delivered > 0 {
			downloads = append(downloads, swarm.Download{From: u.From, To: u.To, Blocks: delivered})
		}
	}

	return downloads
}

func (e *Engine) allDone() bool {
	for _, p := range e.peers {
		if p.doneAt < 0 {
			return false
		}
	}

	return true
}

func (e *Engine) result(err error) *Result {
	uploaded := make(map[swarm.PeerID]int)
	downloaded := make(map[swarm.PeerID]int)
	rounds := e.ledger.Rounds()
	for _, downloads := range rounds {
		for _, d := range downloads {
			uploaded[d.From] += d.Blocks
			downloaded[d.To] += d.Blocks
		}
	}

	res := &Result{
		ID:         uuid.New(),
		Seed:       e.seed,
		Status:     e.status,
		Rounds:     e.ledger.CurrentRound(),
		Pieces:     e.cfg.Swarm.Pieces,
		Ledger:     rounds,
		StartedAt:  e.startedAt,
		FinishedAt: time.Now(),
	}

	if err != nil {
		res.Error = err.Error()
	}

	for _, p := range e.peers {
		id := p.agent.ID()
		res.Peers = append(res.Peers, PeerResult{
			ID:          id,
			Strategy:    p.agent.Kind(),
			Capacity:    p.capacity,
			CompletedAt: p.doneAt,
			Uploaded:    uploaded[id],
			Downloaded:  downloaded[id],
		})
	}

	return res
}
