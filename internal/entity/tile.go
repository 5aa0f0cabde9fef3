package entity

import (
	"fmt"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

type Tile uint8

const (
	TileEmpty Tile = iota
	TileCookie
	TileMilk
	// TileWall is reserved, no rule produces it yet.
	TileWall
)

const (
	TeamCookie = "cookie"
	TeamMilk   = "milk"
)

// String returns the glyph used when rendering the board.
func (that Tile) String() string {
	switch that {
	case TileCookie:
		return "🍪"
	case TileMilk:
		return "🥛"
	case TileWall:
		return "⬜"
	default:
		return "⬛"
	}
}

// IsColor reports whether the tile is one of the two playable colors.
func (that Tile) IsColor() bool {
	return that == TileCookie || that == TileMilk
}

// ParseTeam maps a case-sensitive team token to its tile.
func ParseTeam(team string) (Tile, error) {
	switch team {
	case TeamCookie:
		return TileCookie, nil
	case TeamMilk:
		return TileMilk, nil
	default:
		return TileEmpty, fmt.Errorf("%w: unknown team %q", apperror.ErrInvalidInput, team)
	}
}
