package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/puzzlebox/internal/apperror"
)

const (
	BoardWidth = 4
	BoardSize  = BoardWidth * BoardWidth

	noMove = -1
)

type OutcomeKind uint8

const (
	OutcomePending OutcomeKind = iota
	OutcomeWin
	OutcomeDraw
)

// Outcome is derived from the board on every call and never stored.
type Outcome struct {
	Kind   OutcomeKind
	Winner Tile
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

var Diagonals = [2][BoardWidth]int{
	{0, 5, 10, 15},
	{3, 6, 9, 12},
}

// Board is a 4x4 gravity-drop grid stored row-major, row 0 on top.
type Board struct {
	cells      [BoardSize]Tile
	lastPlaced int
	emptyCount int
}

func NewBoard() *Board {
	board := &Board{}
	board.Reset()

	return board
}

// Reset restores the construction state.
func (that *Board) Reset() {
	that.cells = [BoardSize]Tile{}
	that.lastPlaced = noMove
	that.emptyCount = BoardSize
}

// Place drops tile into column; the tile lands on the lowest empty cell.
func (that *Board) Place(tile Tile, column int) error {
	if !tile.IsColor() {
		return fmt.Errorf("%w: tile %d cannot be placed", apperror.ErrInvalidInput, tile)
	}

	if column < 0 || column >= BoardWidth {
		return fmt.Errorf("%w: column %d", apperror.ErrInvalidInput, column)
	}

	for row := BoardWidth - 1; row >= 0; row-- {
		idx := row*BoardWidth + column
		if that.cells[idx] != TileEmpty {
			continue
		}

		that.cells[idx] = tile
		that.lastPlaced = idx
		that.emptyCount--

		return nil
	}

	return fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// CheckWinner inspects the row and column of the last move, then both diagonals.
// The first uniform line wins in that order.
func (that *Board) CheckWinner() Outcome {
	if that.lastPlaced != noMove {
		row := that.lastPlaced / BoardWidth
		col := that.lastPlaced % BoardWidth

		var rowLine, colLine [BoardWidth]int
		for i := 0; i < BoardWidth; i++ {
			rowLine[i] = row*BoardWidth + i
			colLine[i] = i*BoardWidth + col
		}

		if tile, ok := that.uniform(rowLine); ok {
			return Outcome{Kind: OutcomeWin, Winner: tile}
		}

		if tile, ok := that.uniform(colLine); ok {
			return Outcome{Kind: OutcomeWin, Winner: tile}
		}
	}

	for _, diagonal := range Diagonals {
		if tile, ok := that.uniform(diagonal); ok {
			return Outcome{Kind: OutcomeWin, Winner: tile}
		}
	}

	if that.emptyCount == 0 {
		return Outcome{Kind: OutcomeDraw}
	}

	return Outcome{Kind: OutcomePending}
}

func (that *Board) uniform(line [BoardWidth]int) (Tile, bool) {
	first := that.cells[line[0]]
	if first == TileEmpty {
		return TileEmpty, false
	}

	for _, idx := range line[1:] {
		if that.cells[idx] != first {
			return TileEmpty, false
		}
	}

	return first, true
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize]Tile {
	return that.cells
}

// LastPlaced returns the index of the most recent placement, if any.
func (that *Board) LastPlaced() (int, bool) {
	return that.lastPlaced, that.lastPlaced != noMove
}

func (that *Board) EmptyCount() int {
	return that.emptyCount
}

// String renders the walled grid followed by the outcome line, if any.
func (that *Board) String() string {
	var sb strings.Builder

	wall := TileWall.String()
	for row := 0; row < BoardWidth; row++ {
		sb.WriteString(wall)
		for col := 0; col < BoardWidth; col++ {
			sb.WriteString(that.cells[row*BoardWidth+col].String())
		}
		sb.WriteString(wall)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(wall, BoardWidth+2))
	sb.WriteByte('\n')

	switch outcome := that.CheckWinner(); outcome.Kind {
	case OutcomeWin:
		sb.WriteString(outcome.Winner.String())
		sb.WriteString(" wins!\n")
	case OutcomeDraw:
		sb.WriteString("No winner.\n")
	case OutcomePending:
	}

	return sb.String()
}
