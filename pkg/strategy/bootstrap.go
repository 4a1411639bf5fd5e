package strategy

import (
	"math/rand"
	"sort"

	"github.com/anacrolix/multiless"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/internal/logger"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// reciprocators ranks peers by how much they recently gave us. Regular slots
// go to the top givers, one optimistic slot rotates among the rest and
// capacity is split evenly.
type reciprocators struct {
	self       swarm.PeerID
	params     Params
	rand       *rand.Rand
	optimistic *optimisticSlot
	// fallback funds random requesters when nobody else qualifies.
	fallback bool

	recent map[swarm.PeerID]int
}

func (p *reciprocators) observe(h swarm.History) {
	p.recent = swarm.ReceivedOver(h, p.params.Lookback, p.self)
}

// givers returns requesters that sent us data recently, biggest first.
func (p *reciprocators) givers(requesters []swarm.PeerID) []swarm.PeerID {
	var givers []swarm.PeerID
	for _, id := range requesters {
		if p.recent[id] > 0 {
			givers = append(givers, id)
		}
	}

	sort.Slice(givers, func(i, j int) bool {
		l, r := givers[i], givers[j]
		return multiless.New().
			Int64(int64(p.recent[r]), int64(p.recent[l])).
			EagerSameLess(l == r, l < r).
			Less()
	})

	return givers
}

func (p *reciprocators) allocate(round int, requesters []swarm.PeerID, capacity int) Allocation {
	givers := p.givers(requesters)
	regular := givers[:min(len(givers), p.params.RegularSlots)]
	chosen := append([]swarm.PeerID(nil), regular...)

	regularSet := mapset.NewThreadUnsafeSet(regular...)
	remaining := without(requesters, regularSet)
	if opt, ok := p.optimistic.review(round, p.params.OptimisticInterval, remaining, p.rand); ok {
		if containsPeer(requesters, opt) && !regularSet.Contains(opt) {
			chosen = append(chosen, opt)
		}
	}

	if len(chosen) == 0 && p.fallback {
		chosen = sample(requesters, p.params.FallbackSlots, p.rand)
		logger.Debugf("%s round %d: nobody reciprocated yet, funding %d random requesters", p.self, round, len(chosen))
	}

	return splitEvenly(chosen, capacity)
}

// Reference runs the standard reciprocation policy every round: the top
// RegularSlots givers over the last Lookback rounds plus one optimistic
// unblock, with an even split.
type Reference struct {
	policy *reciprocators
}

// NewReference creates a reference allocator for self.
func NewReference(self swarm.PeerID, params Params, rng *rand.Rand) *Reference {
	return &Reference{
		policy: &reciprocators{
			self:       self,
			params:     params,
			rand:       rng,
			optimistic: &optimisticSlot{},
		},
	}
}

func (r *Reference) UpdateBeliefs(_ int, _ []swarm.PeerID, h swarm.History) {
	r.policy.observe(h)
}

func (r *Reference) Allocate(round int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation {
	ids := sortedPeers(requesters)
	if len(ids) == 0 || capacity <= 0 {
		return nil
	}

	return r.policy.allocate(round, ids, capacity)
}

// Seed splits capacity evenly among up to FallbackSlots random requesters.
// It suits peers that already hold the whole file and need nothing back.
type Seed struct {
	params Params
	rand   *rand.Rand
}

// NewSeed creates a seed allocator.
func NewSeed(params Params, rng *rand.Rand) *Seed {
	return &Seed{params: params, rand: rng}
}

func (s *Seed) UpdateBeliefs(int, []swarm.PeerID, swarm.History) {}

func (s *Seed) Allocate(_ int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation {
	ids := sortedPeers(requesters)
	if len(ids) == 0 || capacity <= 0 {
		return nil
	}

	return splitEvenly(sample(ids, s.params.FallbackSlots, s.rand), capacity)
}
