package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	maxRounds      = 200
	seed           = 1
	runs           = 1
	parallel       = 4
	pieces         = 64
	blocksPerPiece = 8
	maxRequests    = 4
	minUpload      = 16
	maxUpload      = 64
	seedUpload     = 32

	alpha                  = 0.2
	gamma                  = 0.1
	reciprocationThreshold = 3
	generosity             = 1.5
	optimisticShare        = 0.15
	bootstrapRounds        = 10
	regularSlots           = 3
	fallbackSlots          = 4
	optimisticInterval     = 3
	lookback               = 2
	propShareReserve       = 0.9
)

var dbPath = filepath.Join(xdg.DataHome, configFileName, "runs.db")

func defaultPeers() []PeerGroup {
	return []PeerGroup{
		{Strategy: "seed", Count: 1},
		{Strategy: "tourney", Count: 2},
		{Strategy: "tyrant", Count: 2},
		{Strategy: "propshare", Count: 2},
		{Strategy: "reference", Count: 2},
	}
}
