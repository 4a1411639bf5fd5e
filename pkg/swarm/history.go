package swarm

import "sort"

// ReceivedIn sums the blocks to received during round, grouped by sender.
// Rounds outside [0, h.CurrentRound()) contribute nothing.
func ReceivedIn(h History, round int, to PeerID) map[PeerID]int {
	received := make(map[PeerID]int)
	if round < 0 || round >= h.CurrentRound() {
		return received
	}

	for _, d := range h.Downloads(round) {
		if d.To == to && d.Blocks > 0 {
			received[d.From] += d.Blocks
		}
	}

	return received
}

// ReceivedOver sums the blocks to received over the last lookback finished
// rounds, grouped by sender. The window is clamped to [0, h.CurrentRound()).
func ReceivedOver(h History, lookback int, to PeerID) map[PeerID]int {
	received := make(map[PeerID]int)
	current := h.CurrentRound()
	for r := max(0, current-lookback); r < current; r++ {
		for from, blocks := range ReceivedIn(h, r, to) {
			received[from] += blocks
		}
	}

	return received
}

// SortPeers orders ids ascending in place.
func SortPeers(ids []PeerID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
