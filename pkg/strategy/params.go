// Package strategy implements per-peer decision making for a round-based
// swarm: rarest-first block requests and reciprocity-driven upload allocation.
package strategy

const (
	defaultAlpha                  = 0.2
	defaultGamma                  = 0.1
	defaultReciprocationThreshold = 3
	defaultGenerosity             = 1.5
	defaultOptimisticShare        = 0.15
	defaultBootstrapRounds        = 10
	defaultRegularSlots           = 3
	defaultFallbackSlots          = 4
	defaultOptimisticInterval     = 3
	defaultLookback               = 2
	defaultPropShareReserve       = 0.9

	// minBid keeps bid estimates strictly positive under repeated decay.
	minBid = 1e-3
)

// Params tunes the allocators. The zero value is not usable; start from
// DefaultParams.
type Params struct {
	// Alpha raises a bid after a funded peer failed to reciprocate.
	Alpha float64
	// Gamma lowers a bid after ReciprocationThreshold consecutive reciprocations.
	Gamma                  float64
	ReciprocationThreshold int
	// Generosity scales the believed minimum bid when funding a peer.
	Generosity      float64
	OptimisticShare float64
	BootstrapRounds int
	RegularSlots    int
	FallbackSlots   int
	// OptimisticInterval is the number of rounds an optimistic pick is held.
	OptimisticInterval int
	// Lookback is the number of finished rounds ranked by the reference policy.
	Lookback         int
	PropShareReserve float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Alpha:                  defaultAlpha,
		Gamma:                  defaultGamma,
		ReciprocationThreshold: defaultReciprocationThreshold,
		Generosity:             defaultGenerosity,
		OptimisticShare:        defaultOptimisticShare,
		BootstrapRounds:        defaultBootstrapRounds,
		RegularSlots:           defaultRegularSlots,
		FallbackSlots:          defaultFallbackSlots,
		OptimisticInterval:     defaultOptimisticInterval,
		Lookback:               defaultLookback,
		PropShareReserve:       defaultPropShareReserve,
	}
}

// Conf carries the per-peer constants fixed at construction.
type Conf struct {
	BlocksPerPiece int
	MaxRequests    int
	UploadCapacity int
	// MinPeerUpload is the swarm-wide minimum upload capacity, used to seed
	// estimates for peers we know nothing about.
	MinPeerUpload int
}
