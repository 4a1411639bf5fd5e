package strategy

import (
	"math"
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/internal/logger"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Tourney bootstraps with the reference policy and then switches to ROI
// ranking over learned beliefs. A slice of capacity is always reserved for an
// optimistic unblock, and bids are overshot by Generosity to invite
// reciprocation.
type Tourney struct {
	self       swarm.PeerID
	params     Params
	rand       *rand.Rand
	beliefs    *Beliefs
	optimistic *optimisticSlot
	bootstrap  *reciprocators
}

// NewTourney creates a bootstrap-then-ROI allocator for self.
func NewTourney(self swarm.PeerID, conf Conf, params Params, rng *rand.Rand) *Tourney {
	optimistic := &optimisticSlot{}

	return &Tourney{
		self:       self,
		params:     params,
		rand:       rng,
		beliefs:    NewBeliefs(self, conf.MinPeerUpload, params),
		optimistic: optimistic,
		bootstrap: &reciprocators{
			self:       self,
			params:     params,
			rand:       rng,
			optimistic: optimistic,
			fallback:   true,
		},
	}
}

// Beliefs exposes the learned per-peer state.
func (t *Tourney) Beliefs() *Beliefs {
	return t.beliefs
}

func (t *Tourney) UpdateBeliefs(round int, peers []swarm.PeerID, h swarm.History) {
	t.beliefs.Update(round, peers, h)
	t.bootstrap.observe(h)
}

func (t *Tourney) Allocate(round int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation {
	ids := sortedPeers(requesters)
	if len(ids) == 0 || capacity <= 0 {
		t.beliefs.SetUnblocked(nil)
		return nil
	}

	var alloc Allocation
	if round < t.params.BootstrapRounds {
		alloc = t.bootstrap.allocate(round, ids, capacity)
	} else {
		alloc = t.allocateByROI(round, ids, capacity)
	}

	t.beliefs.SetUnblocked(alloc.Peers())
	logger.Debugf("%s round %d: funded %d of %d requesters with %d/%d", t.self, round, len(alloc), len(ids), alloc.Total(), capacity)

	return alloc
}

func (t *Tourney) allocateByROI(round int, requesters []swarm.PeerID, capacity int) Allocation {
	optimisticBW := max(1, int(math.Round(float64(capacity)*t.params.OptimisticShare)))
	optimisticBW = min(optimisticBW, capacity)

	alloc, leftover := greedy(t.beliefs.rank(requesters), capacity-optimisticBW, t.params.Generosity)
	if leftover > 0 && len(alloc) > 0 {
		alloc[0].Bandwidth += leftover
	}

	funded := alloc.Peers()
	opt, ok := t.optimistic.review(round, t.params.OptimisticInterval, without(requesters, funded), t.rand)

	switch {
	case ok && containsPeer(requesters, opt) && !funded.Contains(opt):
		alloc = append(alloc, Grant{Peer: opt, Bandwidth: optimisticBW})
	case len(alloc) > 0:
		alloc[0].Bandwidth += optimisticBW
	}

	return alloc
}
