package match

import (
	"errors"
	"fmt"

	"github.com/wricardo/tangosim/game/engine"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNoLegalMove   = errors.New("no legal move")
	ErrInvalidSetup  = errors.New("invalid match setup")
	ErrBadTransition = errors.New("invalid phase transition")

	ErrPieceNotInPool = fmt.Errorf("%w: piece not in pool", engine.ErrInvalidMove)
	ErrUnknownAction  = fmt.Errorf("%w: unknown action type", engine.ErrInvalidMove)
)
