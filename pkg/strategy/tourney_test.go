package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

func testConf(capacity int) Conf {
	return Conf{BlocksPerPiece: 4, MaxRequests: 4, UploadCapacity: capacity, MinPeerUpload: 16}
}

func TestTourney_BootstrapRoundZero(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		tr := NewTourney("me", testConf(12), DefaultParams(), rand.New(rand.NewSource(seed)))
		h := swarm.NewLedger()
		peers := []swarm.PeerID{"a", "b", "c"}

		tr.UpdateBeliefs(0, peers, h)
		alloc := tr.Allocate(0, unblock(peers...), 12)

		require.Len(t, alloc, 1, "seed %d", seed)
		assert.Equal(t, 12, alloc[0].Bandwidth)
		assert.Contains(t, peers, alloc[0].Peer)
		assert.Equal(t, []swarm.PeerID{alloc[0].Peer}, tr.Beliefs().LastUnblocked())
	}
}

func TestTourney_BootstrapRanksRecentGivers(t *testing.T) {
	h := swarm.NewLedger()
	require.NoError(t, h.Append([]swarm.Download{{From: "b", To: "me", Blocks: 5}}))
	require.NoError(t, h.Append([]swarm.Download{
		{From: "d", To: "me", Blocks: 3},
		{From: "c", To: "me", Blocks: 3},
		{From: "a", To: "me", Blocks: 1},
	}))

	tr := NewTourney("me", testConf(12), DefaultParams(), rand.New(rand.NewSource(9)))
	requesters := []swarm.PeerID{"a", "b", "c", "d", "e"}

	tr.UpdateBeliefs(2, requesters, h)
	got := tr.Allocate(2, unblock(requesters...), 12)

	require.Len(t, got, 4)
	assert.Equal(t, Grant{Peer: "b", Bandwidth: 3}, got[0])
	assert.Equal(t, Grant{Peer: "c", Bandwidth: 3}, got[1])
	assert.Equal(t, Grant{Peer: "d", Bandwidth: 3}, got[2])
	assert.Contains(t, []swarm.PeerID{"a", "e"}, got[3].Peer)
	assert.Equal(t, 3, got[3].Bandwidth)
}

func TestTourney_ROITie(t *testing.T) {
	tr := NewTourney("me", testConf(20), DefaultParams(), rand.New(rand.NewSource(1)))
	tr.beliefs.peers["A"] = &Belief{Download: 10, Bid: 5}
	tr.beliefs.peers["B"] = &Belief{Download: 4, Bid: 2}

	alloc := tr.Allocate(10, unblock("B", "A"), 20)

	// A: 7 + leftover 7 + redirected optimistic 3, B: 3.
	assert.Equal(t, Allocation{{Peer: "A", Bandwidth: 17}, {Peer: "B", Bandwidth: 3}}, alloc)
	assert.Equal(t, []swarm.PeerID{"A", "B"}, tr.Beliefs().LastUnblocked())
}

func TestTourney_OptimisticSlice(t *testing.T) {
	tr := NewTourney("me", testConf(20), DefaultParams(), rand.New(rand.NewSource(4)))
	tr.beliefs.peers["A"] = &Belief{Download: 10, Bid: 20}
	tr.beliefs.peers["B"] = &Belief{Download: 1, Bid: 20}

	alloc := tr.Allocate(12, unblock("A", "B"), 20)

	// A alone absorbs the 17 main blocks; B is the only optimistic candidate.
	assert.Equal(t, Allocation{{Peer: "A", Bandwidth: 17}, {Peer: "B", Bandwidth: 3}}, alloc)
}

func TestTourney_EmptyRequesters(t *testing.T) {
	tr := NewTourney("me", testConf(20), DefaultParams(), rand.New(rand.NewSource(1)))
	tr.beliefs.SetUnblocked(unblock("a"))

	assert.Empty(t, tr.Allocate(11, unblock(), 20))
	assert.Empty(t, tr.Beliefs().LastUnblocked())
	assert.Empty(t, tr.Allocate(11, unblock("a"), 0))
}

func TestTyrant_GreedyWithoutOvershoot(t *testing.T) {
	ty := NewTyrant("me", testConf(10), DefaultParams())
	ty.beliefs.peers["a"] = &Belief{Download: 10, Bid: 4}
	ty.beliefs.peers["b"] = &Belief{Download: 9, Bid: 3}
	ty.beliefs.peers["c"] = &Belief{Download: 1, Bid: 5}

	alloc := ty.Allocate(0, unblock("a", "b", "c"), 10)

	assert.Equal(t, Allocation{{Peer: "b", Bandwidth: 3}, {Peer: "a", Bandwidth: 4}, {Peer: "c", Bandwidth: 3}}, alloc)
	assert.Equal(t, []swarm.PeerID{"a", "b", "c"}, ty.Beliefs().LastUnblocked())
}
