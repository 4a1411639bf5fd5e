package strategy

import (
	"math"
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Grant is a share of upload bandwidth for one peer.
type Grant struct {
	Peer      swarm.PeerID
	Bandwidth int
}

// Allocation is an ordered list of grants. The first grant belongs to the
// top-ranked peer.
type Allocation []Grant

// Total returns the sum of granted bandwidth.
func (a Allocation) Total() int {
	total := 0
	for _, g := range a {
		total += g.Bandwidth
	}

	return total
}

// Map returns the grants keyed by peer.
func (a Allocation) Map() map[swarm.PeerID]int {
	m := make(map[swarm.PeerID]int, len(a))
	for _, g := range a {
		m[g.Peer] += g.Bandwidth
	}

	return m
}

// Peers returns the set of funded peers.
func (a Allocation) Peers() mapset.Set[swarm.PeerID] {
	set := mapset.NewThreadUnsafeSet[swarm.PeerID]()
	for _, g := range a {
		set.Add(g.Peer)
	}

	return set
}

// Uploads converts the grants into upload messages sent by from.
func (a Allocation) Uploads(from swarm.PeerID) []swarm.Upload {
	uploads := make([]swarm.Upload, 0, len(a))
	for _, g := range a {
		if g.Bandwidth <= 0 {
			continue
		}
		uploads = append(uploads, swarm.Upload{From: from, To: g.Peer, Bandwidth: g.Bandwidth})
	}

	return uploads
}

// evenSplit divides n into k near-equal integer shares; the excess goes to
// the last shares.
func evenSplit(n, k int) []int {
	if k <= 0 {
		return nil
	}

	shares := make([]int, k)
	base, excess := n/k, n%k
	for i := range shares {
		shares[i] = base
		if i >= k-excess {
			shares[i]++
		}
	}

	return shares
}

// splitEvenly grants capacity evenly among peers, dropping zero shares.
func splitEvenly(peers []swarm.PeerID, capacity int) Allocation {
	if capacity <= 0 {
		return nil
	}

	var alloc Allocation
	for i, bw := range evenSplit(capacity, len(peers)) {
		if bw > 0 {
			alloc = append(alloc, Grant{Peer: peers[i], Bandwidth: bw})
		}
	}

	return alloc
}

// greedy funds candidates in order with min(bid*generosity, remaining) until
// the budget runs out. It returns the grants and the unspent budget.
func greedy(candidates []candidate, budget int, generosity float64) (Allocation, int) {
	var alloc Allocation
	for _, c := range candidates {
		if budget <= 0 {
			break
		}

		amount := int(math.Min(c.bid*generosity, float64(budget)))
		if amount <= 0 {
			continue
		}

		alloc = append(alloc, Grant{Peer: c.id, Bandwidth: amount})
		budget -= amount
	}

	return alloc, budget
}

// sortedPeers returns the members of set in ascending order.
func sortedPeers(set mapset.Set[swarm.PeerID]) []swarm.PeerID {
	if set == nil {
		return nil
	}

	ids := set.ToSlice()
	swarm.SortPeers(ids)

	return ids
}

// sample picks up to k peers uniformly at random without replacement.
// ids must be in a deterministic order.
func sample(ids []swarm.PeerID, k int, rng *rand.Rand) []swarm.PeerID {
	k = min(k, len(ids))
	picked := make([]swarm.PeerID, 0, k)
	for _, i := range rng.Perm(len(ids))[:k] {
		picked = append(picked, ids[i])
	}

	return picked
}

// without returns ids that are not in excluded, preserving order.
func without(ids []swarm.PeerID, excluded mapset.Set[swarm.PeerID]) []swarm.PeerID {
	var out []swarm.PeerID
	for _, id := range ids {
		if !excluded.Contains(id) {
			out = append(out, id)
		}
	}

	return out
}

func containsPeer(ids []swarm.PeerID, id swarm.PeerID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}

	return false
}
