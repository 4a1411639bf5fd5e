package strategy

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Peer is one participant's strategy: a piece selector plus an allocator.
// The engine calls Requests and then Uploads exactly once per round.
type Peer struct {
	id        swarm.PeerID
	kind      Kind
	conf      Conf
	pieces    []int
	selector  *Selector
	allocator Allocator
}

// NewPeer creates a peer running the given allocator variant. rng drives
// every random choice the peer makes.
func NewPeer(id swarm.PeerID, kind Kind, conf Conf, params Params, rng *rand.Rand) (*Peer, error) {
	allocator, err := NewAllocator(kind, id, conf, params, rng)
	if err != nil {
		return nil, err
	}

	return &Peer{
		id:        id,
		kind:      kind,
		conf:      conf,
		selector:  NewSelector(id, conf.BlocksPerPiece, rng),
		allocator: allocator,
	}, nil
}

func (p *Peer) ID() swarm.PeerID {
	return p.id
}

func (p *Peer) Kind() Kind {
	return p.kind
}

func (p *Peer) Conf() Conf {
	return p.conf
}

func (p *Peer) Allocator() Allocator {
	return p.allocator
}

// UpdatePieces replaces the held block count per piece.
func (p *Peer) UpdatePieces(held []int) {
	p.pieces = append(p.pieces[:0], held...)
}

// Requests returns this round's block requests.
func (p *Peer) Requests(avail swarm.Availability, _ swarm.History) []swarm.Request {
	return p.selector.Select(p.pieces, avail, p.conf.MaxRequests)
}

// Uploads answers the requests received this round with bandwidth grants.
func (p *Peer) Uploads(requests []swarm.Request, avail swarm.Availability, h swarm.History) []swarm.Upload {
	round := h.CurrentRound()

	requesters := mapset.NewThreadUnsafeSet[swarm.PeerID]()
	for _, r := range requests {
		if r.Responder == p.id && r.Requester != p.id {
			requesters.Add(r.Requester)
		}
	}

	seen := requesters.Clone()
	for id := range avail {
		seen.Add(id)
	}
	seen.Remove(p.id)

	p.allocator.UpdateBeliefs(round, sortedPeers(seen), h)

	return p.allocator.Allocate(round, requesters, p.conf.UploadCapacity).Uploads(p.id)
}
