package strategy

import (
	"math/rand"
	"sort"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// Selector picks which blocks to request from which neighbours, rarest
// pieces first.
type Selector struct {
	self           swarm.PeerID
	blocksPerPiece int
	rand           *rand.Rand
}

// NewSelector creates a selector for self. rng breaks rarity ties.
func NewSelector(self swarm.PeerID, blocksPerPiece int, rng *rand.Rand) *Selector {
	return &Selector{
		self:           self,
		blocksPerPiece: blocksPerPiece,
		rand:           rng,
	}
}

// Rarity counts, for each needed piece, how many peers in avail hold it.
func Rarity(needed []int, avail swarm.Availability) map[int]int {
	rarity := make(map[int]int, len(needed))
	for _, piece := range needed {
		rarity[piece] = 0
	}

	for _, pieces := range avail {
		for _, piece := range needed {
			if pieces.HasPiece(piece) {
				rarity[piece]++
			}
		}
	}

	return rarity
}

// Select returns at most maxPerPeer requests per neighbour. held[i] is the
// number of blocks of piece i already held; requests start at that offset.
func (s *Selector) Select(held []int, avail swarm.Availability, maxPerPeer int) []swarm.Request {
	needed := swarm.Needed(held, s.blocksPerPiece)
	if len(needed) == 0 || maxPerPeer <= 0 {
		return nil
	}

	rarity := Rarity(needed, avail)

	// Shuffle first so equal-rarity pieces are not ordered by index.
	s.rand.Shuffle(len(needed), func(i, j int) {
		needed[i], needed[j] = needed[j], needed[i]
	})
	sort.SliceStable(needed, func(i, j int) bool {
		return rarity[needed[i]] < rarity[needed[j]]
	})

	var requests []swarm.Request
	for _, id := range avail.Peers() {
		if id == s.self {
			continue
		}

		pieces := avail[id]
		n := 0
		for _, piece := range needed {
			if n == maxPerPeer {
				break
			}
			if !pieces.HasPiece(piece) {
				continue
			}

			requests = append(requests, swarm.Request{
				Requester: s.self,
				Responder: id,
				Piece:     piece,
				Start:     held[piece],
			})
			n++
		}
	}

	return requests
}
