package swarm

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// PieceSet represents which pieces a peer holds in full.
type PieceSet struct {
	bm *roaring.Bitmap
}

// NewPieceSet creates a set holding the given pieces. Negative indices are ignored.
func NewPieceSet(pieces ...int) *PieceSet {
	ps := &PieceSet{bm: roaring.New()}
	for _, p := range pieces {
		if p >= 0 {
			ps.bm.Add(uint32(p))
		}
	}

	return ps
}

// FullPieceSet creates a set holding every piece in [0, numPieces).
func FullPieceSet(numPieces int) *PieceSet {
	ps := &PieceSet{bm: roaring.New()}
	if numPieces > 0 {
		ps.bm.AddRange(0, uint64(numPieces))
	}

	return ps
}

// SetPiece marks a piece as held.
func (ps *PieceSet) SetPiece(index int) error {
	if index < 0 {
		return fmt.Errorf("piece index %d out of range", index)
	}

	ps.bm.Add(uint32(index))
	return nil
}

// HasPiece checks if a piece is held. A nil set holds nothing.
func (ps *PieceSet) HasPiece(index int) bool {
	if ps == nil || index < 0 {
		return false
	}

	return ps.bm.Contains(uint32(index))
}

// Count returns the number of pieces held.
func (ps *PieceSet) Count() int {
	if ps == nil {
		return 0
	}

	return int(ps.bm.GetCardinality())
}

// Pieces returns the held piece indices in ascending order.
func (ps *PieceSet) Pieces() []int {
	if ps == nil {
		return nil
	}

	raw := ps.bm.ToArray()
	pieces := make([]int, len(raw))
	for i, p := range raw {
		pieces[i] = int(p)
	}

	sort.Ints(pieces)
	return pieces
}

// Clone returns an independent copy.
func (ps *PieceSet) Clone() *PieceSet {
	if ps == nil {
		return NewPieceSet()
	}

	return &PieceSet{bm: ps.bm.Clone()}
}

// IsComplete returns true if all pieces in [0, numPieces) are held.
func (ps *PieceSet) IsComplete(numPieces int) bool {
	if numPieces <= 0 {
		return true
	}
	if ps == nil {
		return false
	}

	return ps.bm.Rank(uint32(numPieces-1)) == uint64(numPieces)
}
