package swarm

import "errors"

// Sentinel errors returned by ledger validation.
var (
	ErrInvalidBlocks   = errors.New("download must carry a positive block count")
	ErrSelfTransfer    = errors.New("download from a peer to itself")
	ErrMissingEndpoint = errors.New("download is missing a peer id")
)
