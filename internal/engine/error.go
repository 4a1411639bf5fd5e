package engine

import (
	"fmt"

	"github.com/NamanBalaji/swarmsim/internal/errors"
	"github.com/NamanBalaji/swarmsim/pkg/swarm"
)

func (e *Engine) validateRequests(round int, p *peerState, avail swarm.Availability, requests []swarm.Request) error {
	self := p.agent.ID()
	bpp := e.cfg.Swarm.BlocksPerPiece

	for _, r := range requests {
		var problem string
		switch {
		case r.Requester != self:
			problem = fmt.Sprintf("requester %s", r.Requester)
		case r.Piece < 0 || r.Piece >= len(p.held):
			problem = fmt.Sprintf("piece %d out of range", r.Piece)
		case p.held[r.Piece] >= bpp:
			problem = fmt.Sprintf("piece %d already held", r.Piece)
		case r.Start != p.held[r.Piece]:
			problem = fmt.Sprintf("piece %d: start %d, next block is %d", r.Piece, r.Start, p.held[r.Piece])
		case !avail[r.Responder].HasPiece(r.Piece):
			problem = fmt.Sprintf("%s does not hold piece %d", r.Responder, r.Piece)
		}

		if problem != "" {
			return errors.NewStrategyError(fmt.Errorf("%w: %s", errors.ErrInvalidRequest, problem), round, string(self))
		}
	}

	return nil
}

func (e *Engine) validateUploads(round int, p *peerState, received []swarm.Request, uploads []swarm.Upload) error {
	self := p.agent.ID()

	requesters := make(map[swarm.PeerID]bool, len(received))
	for _, r := range received {
		requesters[r.Requester] = true
	}

	total := 0
	for _, u := range uploads {
		var err error
		switch {
		case u.From != self:
			err = fmt.Errorf("%w: from %s", errors.ErrForeignUpload, u.From)
		case u.Bandwidth <= 0:
			err = fmt.Errorf("%w: %d to %s", errors.ErrInvalidBandwidth, u.Bandwidth, u.To)
		case !requesters[u.To]:
			err = fmt.Errorf("%w: %s", errors.ErrUnrequestedUpload, u.To)
		}

		if err != nil {
			return errors.NewStrategyError(err, round, string(self))
		}

		total += u.Bandwidth
	}

	if total > p.capacity {
		return errors.WithDetails(
			errors.NewStrategyError(fmt.Errorf("%w: %d > %d", errors.ErrOverAllocated, total, p.capacity), round, string(self)),
			map[string]interface{}{"uploads": len(uploads)},
		)
	}

	return nil
}
