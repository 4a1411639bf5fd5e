package strategy

import (
	"math/rand"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// optimisticSlot holds the peer currently unblocked for exploration.
type optimisticSlot struct {
	peer     swarm.PeerID
	held     bool
	chosenAt int
}

// review keeps the current pick unless the interval elapsed or the pick is no
// longer among candidates, in which case a new one is drawn uniformly.
// candidates must be in a deterministic order.
func (o *optimisticSlot) review(round, interval int, candidates []swarm.PeerID, rng *rand.Rand) (swarm.PeerID, bool) {
	due := interval <= 0 || round%interval == 0
	if due || !o.held || !containsPeer(candidates, o.peer) {
		if len(candidates) == 0 {
			*o = optimisticSlot{}
			return "", false
		}

		o.peer = candidates[rng.Intn(len(candidates))]
		o.held = true
		o.chosenAt = round
	}

	return o.peer, o.held
}
