// Package swarm holds the data model shared between strategies and the round
// engine: peer ids, piece sets, requests, uploads and the download ledger.
package swarm

// PeerID names a participant for the lifetime of a simulation.
type PeerID string

// Request asks Responder for blocks of Piece starting at block offset Start.
type Request struct {
	Requester PeerID `json:"requester"`
	Responder PeerID `json:"responder"`
	Piece     int    `json:"piece"`
	Start     int    `json:"start"`
}

// Upload grants To a share of From's upload capacity for the current round.
type Upload struct {
	From      PeerID `json:"from"`
	To        PeerID `json:"to"`
	Bandwidth int    `json:"bandwidth"`
}

// Download records blocks transferred From -> To during one round.
type Download struct {
	From   PeerID `json:"from"`
	To     PeerID `json:"to"`
	Blocks int    `json:"blocks"`
}

// Availability maps each neighbour to the pieces it holds in full.
// A snapshot is only valid for the round it was taken in.
type Availability map[PeerID]*PieceSet

// Peers returns the ids in the snapshot in ascending order.
func (a Availability) Peers() []PeerID {
	ids := make([]PeerID, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}

	SortPeers(ids)

	return ids
}

// Needed returns the indices of pieces whose held block count is below
// blocksPerPiece.
func Needed(held []int, blocksPerPiece int) []int {
	var needed []int
	for i, blocks := range held {
		if blocks < blocksPerPiece {
			needed = append(needed, i)
		}
	}

	return needed
}
