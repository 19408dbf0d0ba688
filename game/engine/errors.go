package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrIllegalPop   = errors.New("illegal pop")
	ErrInvalidRules = errors.New("invalid ruleset")

	ErrOccupied      = fmt.Errorf("%w: position occupied", ErrInvalidMove)
	ErrUnavailable   = fmt.Errorf("%w: position not available", ErrInvalidMove)
	ErrEdgeMismatch  = fmt.Errorf("%w: edges do not match", ErrInvalidMove)
	ErrEnclosed      = fmt.Errorf("%w: position is enclosed", ErrInvalidMove)
	ErrOutOfRange    = fmt.Errorf("%w: destination out of range", ErrInvalidMove)
	ErrNotOwner      = fmt.Errorf("%w: tile belongs to another player", ErrInvalidMove)
	ErrNoTile        = fmt.Errorf("%w: no tile at origin", ErrInvalidMove)
	ErrModeDisallow  = fmt.Errorf("%w: action not allowed by ruleset", ErrInvalidMove)
	ErrUnknownPlayer = fmt.Errorf("%w: unknown player", ErrInvalidMove)
)
