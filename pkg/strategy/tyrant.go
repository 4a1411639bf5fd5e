package strategy

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/internal/logger"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Tyrant funds requesters in ROI order with exactly their believed bid until
// capacity runs out. It never explores and never overshoots.
type Tyrant struct {
	self    swarm.PeerID
	beliefs *Beliefs
}

// NewTyrant creates a rank-and-greedy ROI allocator for self.
func NewTyrant(self swarm.PeerID, conf Conf, params Params) *Tyrant {
	return &Tyrant{
		self:    self,
		beliefs: NewBeliefs(self, conf.MinPeerUpload, params),
	}
}

// Beliefs exposes the learned per-peer state.
func (t *Tyrant) Beliefs() *Beliefs {
	return t.beliefs
}

func (t *Tyrant) UpdateBeliefs(round int, peers []swarm.PeerID, h swarm.History) {
	t.beliefs.Update(round, peers, h)
}

func (t *Tyrant) Allocate(round int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation {
	ids := sortedPeers(requesters)
	if len(ids) == 0 || capacity <= 0 {
		t.beliefs.SetUnblocked(nil)
		return nil
	}

	alloc, _ := greedy(t.beliefs.rank(ids), capacity, 1)
	t.beliefs.SetUnblocked(alloc.Peers())
	logger.Debugf("%s round %d: funded %d of %d requesters", t.self, round, len(alloc), len(ids))

	return alloc
}
