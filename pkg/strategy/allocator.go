package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

// ErrUnknownKind is returned for strategy names that have no allocator.
var ErrUnknownKind = errors.New("unknown strategy kind")

// Allocator decides how a peer spends its upload capacity. UpdateBeliefs is
// called once per round before Allocate with the ledger of finished rounds.
type Allocator interface {
	UpdateBeliefs(round int, peers []swarm.PeerID, h swarm.History)
	Allocate(round int, requesters mapset.Set[swarm.PeerID], capacity int) Allocation
}

// Kind selects an allocator variant.
type Kind string

const (
	KindTourney   Kind = "tourney"
	KindTyrant    Kind = "tyrant"
	KindPropShare Kind = "propshare"
	KindReference Kind = "reference"
	KindSeed      Kind = "seed"
)

// Kinds lists every supported variant.
func Kinds() []Kind {
	return []Kind{KindTourney, KindTyrant, KindPropShare, KindReference, KindSeed}
}

// ParseKind resolves a case-insensitive strategy name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// NewAllocator builds the allocator variant for kind.
func NewAllocator(kind Kind, self swarm.PeerID, conf Conf, params Params, rng *rand.Rand) (Allocator, error) {
	switch kind {
	case KindTourney:
		return NewTourney(self, conf, params, rng), nil
	case KindTyrant:
		return NewTyrant(self, conf, params), nil
	case KindPropShare:
		return NewPropShare(self, params, rng), nil
	case KindReference:
		return NewReference(self, params, rng), nil
	case KindSeed:
		return NewSeed(params, rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
