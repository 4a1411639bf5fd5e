package strategy

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// PropShare splits a reserved share of capacity in proportion to what each
// requester sent us last round and gives the rest to one random requester.
type PropShare struct {
	self   swarm.PeerID
	params Params
	rand   *rand.Rand

	contributions map[swarm.PeerID]int
}

// NewPropShare creates a proportional-share allocator for self.
func NewPropShare(self swarm.PeerID, params Params, rng *rand.Rand) *PropShare {
	return &PropShare{
		self:          self,
		params:        params,
		rand:          rng,
		contributions: make(map[swarm.PeerID]int),
	}
}

func (p *PropShare) UpdateBeliefs(round int, _ []swarm.PeerID, h swarm.History) {
	p.contributions = swarm.ReceivedIn(h, round-1, p.self)
}

func (p *PropShare) Allocate(_ int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation {
	ids := sortedPeers(requesters)
	if len(ids) == 0 || capacity <= 0 {
		return nil
	}

	reserve := int(float64(capacity) * p.params.PropShareReserve)
	optimistic := capacity - reserve

	total := 0
	for _, id := range ids {
		total += p.contributions[id]
	}

	shares := make(map[swarm.PeerID]int, len(ids))
	if total > 0 {
		for _, id := range ids {
			if c := p.contributions[id]; c > 0 {
				shares[id] = int(float64(c) / float64(total) * float64(reserve))
			}
		}
	}

	shares[ids[p.rand.Intn(len(ids))]] += optimistic

	var alloc Allocation
	for _, id := range ids {
		if bw := shares[id]; bw > 0 {
			alloc = append(alloc, Grant{Peer: id, Bandwidth: bw})
		}
	}

	return alloc
}
