package strategy

import (
	"math"
	"sort"

	"github.com/anacrolix/multiless"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Belief is what we currently estimate about one peer.
type Belief struct {
	// Download is the most recent blocks-per-round received from the peer.
	Download float64
	// Bid is the estimated minimum upload needed for the peer to reciprocate.
	Bid float64
	// Streak counts consecutive rounds in which the peer sent us data.
	Streak int
}

// ROI is the expected download per unit of upload. ok is false when the
// belief cannot be ranked.
func (b Belief) ROI() (float64, bool) {
	if b.Bid <= 0 {
		return 0, false
	}

	roi := b.Download / b.Bid
	if roi <= 0 || math.IsNaN(roi) || math.IsInf(roi, 0) {
		return 0, false
	}

	return roi, true
}

// Beliefs is the cross-round memory of a reciprocity allocator. It is owned
// by a single allocator and is not safe for concurrent use.
type Beliefs struct {
	self    swarm.PeerID
	params  Params
	initial float64

	peers         map[swarm.PeerID]*Belief
	lastUnblocked mapset.Set[swarm.PeerID]
}

// NewBeliefs creates empty beliefs. Unknown peers start at one of four equal
// upload slots of the slowest peer in the swarm.
func NewBeliefs(self swarm.PeerID, minPeerUpload int, params Params) *Beliefs {
	return &Beliefs{
		self:          self,
		params:        params,
		initial:       math.Max(1, float64(minPeerUpload)/4),
		peers:         make(map[swarm.PeerID]*Belief),
		lastUnblocked: mapset.NewThreadUnsafeSet[swarm.PeerID](),
	}
}

func (b *Beliefs) ensure(id swarm.PeerID) *Belief {
	belief, ok := b.peers[id]
	if !ok {
		belief = &Belief{Download: b.initial, Bid: b.initial}
		b.peers[id] = belief
	}

	return belief
}

// Get returns a copy of the belief held for id.
func (b *Beliefs) Get(id swarm.PeerID) (Belief, bool) {
	belief, ok := b.peers[id]
	if !ok {
		return Belief{}, false
	}

	return *belief, true
}

// Known returns the number of peers with belief state.
func (b *Beliefs) Known() int {
	return len(b.peers)
}

// LastUnblocked returns the peers funded in the previous round, ascending.
func (b *Beliefs) LastUnblocked() []swarm.PeerID {
	return sortedPeers(b.lastUnblocked)
}

// SetUnblocked records the peers funded this round.
func (b *Beliefs) SetUnblocked(funded mapset.Set[swarm.PeerID]) {
	if funded == nil {
		funded = mapset.NewThreadUnsafeSet[swarm.PeerID]()
	}

	b.lastUnblocked = funded
}

// Update folds the previous round into the beliefs. peers are the ids seen
// this round; anyone who sent us data last round is added as well. It
// returns the blocks received last round grouped by sender.
func (b *Beliefs) Update(round int, peers []swarm.PeerID, h swarm.History) map[swarm.PeerID]int {
	for _, id := range peers {
		if id != b.self {
			b.ensure(id)
		}
	}

	received := swarm.ReceivedIn(h, round-1, b.self)
	for from := range received {
		b.ensure(from)
	}

	for id, belief := range b.peers {
		if blocks := received[id]; blocks > 0 {
			belief.Download = float64(blocks)
			belief.Streak++
		} else {
			belief.Streak = 0
		}
	}

	for _, id := range sortedPeers(b.lastUnblocked) {
		belief := b.ensure(id)
		if received[id] > 0 {
			if belief.Streak >= b.params.ReciprocationThreshold {
				belief.Bid *= 1 - b.params.Gamma
			}
		} else {
			belief.Bid *= 1 + b.params.Alpha
		}

		belief.Bid = math.Max(belief.Bid, minBid)
	}

	return received
}

type candidate struct {
	id  swarm.PeerID
	roi float64
	bid float64
}

// rank orders requesters by ROI, highest first, ties by peer id. Requesters
// without a rankable belief are left out.
func (b *Beliefs) rank(requesters []swarm.PeerID) []candidate {
	candidates := make([]candidate, 0, len(requesters))
	for _, id := range requesters {
		belief, ok := b.peers[id]
		if !ok {
			continue
		}

		roi, ok := belief.ROI()
		if !ok {
			continue
		}

		candidates = append(candidates, candidate{id: id, roi: roi, bid: belief.Bid})
	}

	sort.Slice(candidates, func(i, j int) bool {
		l, r := candidates[i], candidates[j]
		return multiless.New().
			EagerSameLess(l.roi == r.roi, l.roi > r.roi).
			EagerSameLess(l.id == r.id, l.id < r.id).
			Less()
	})

	return candidates
}
