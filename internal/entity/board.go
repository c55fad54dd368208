package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Cell is the content of one square of the board.
type Cell string

const (
	EmptyCell Cell = ""
	CellX     Cell = "X"
	CellO     Cell = "O"
)

// Side is the player to move. It is always derived from a board.
type Side string

const (
	PlayerX Side = "X"
	PlayerO Side = "O"
)

const BoardSize = 3

var (
	ErrMalformedBoard = errors.New("malformed board")

	// WinCombos lists every line in the order Winner scans them.
	WinCombos = [8][3]Action{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
		{{0, 0}, {1, 1}, {2, 2}},
	}
)

// Board is the 3x3 grid. It is a value: assigning or passing a Board copies all nine cells.
type Board [BoardSize][BoardSize]Cell

func (that Side) Cell() Cell {
	return Cell(that)
}

func (that Side) Opponent() Side {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// InitialState - returns the board of a game that has not started yet.
func InitialState() Board {
	return Board{}
}

func (that Board) at(action Action) Cell {
	return that[action.Row][action.Col]
}

// Count - returns how many cells hold the given value.
func (that Board) Count(cell Cell) int {
	count := 0
	for _, row := range that {
		for _, c := range row {
			if c == cell {
				count++
			}
		}
	}

	return count
}

func (that Board) EmptyCount() int {
	return that.Count(EmptyCell)
}

// SideToMove - X moves first, so O is to move exactly when X has more marks.
func (that Board) SideToMove() Side {
	if that.Count(CellX) > that.Count(CellO) {
		return PlayerO
	}
	return PlayerX
}

// Winner - returns the side owning the first completed line in WinCombos order.
func (that Board) Winner() (Side, bool) {
	for _, combo := range WinCombos {
		a, b, c := that.at(combo[0]), that.at(combo[1]), that.at(combo[2])
		if a != EmptyCell && a == b && b == c {
			return Side(a), true
		}
	}

	return "", false
}

func (that Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	// the game goes on while any square is free
	return that.EmptyCount() == 0
}

// Utility - +1 when X has won, -1 when O has won, 0 otherwise.
// Only meaningful for terminal boards.
func (that Board) Utility() int {
	winner, ok := that.Winner()
	switch {
	case !ok:
		return 0
	case winner == PlayerX:
		return 1
	default:
		return -1
	}
}

// String - renders the board row-major, one character per cell, '.' for empty.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}

// ParseBoard - reads the form produced by Board.String. '-', '_' and ' ' are also empty,
// '/' and '|' may separate rows, marks are case-insensitive.
func ParseBoard(text string) (Board, error) {
	var cells []Cell

	for _, r := range text {
		switch r {
		case '/', '|':
			continue
		case '.', '-', '_', ' ':
			cells = append(cells, EmptyCell)
		case 'x', 'X':
			cells = append(cells, CellX)
		case 'o', 'O':
			cells = append(cells, CellO)
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", ErrMalformedBoard, r)
		}
	}

	if len(cells) != BoardSize*BoardSize {
		return Board{}, fmt.Errorf("%w: want %d cells, got %d", ErrMalformedBoard, BoardSize*BoardSize, len(cells))
	}

	var board Board
	for i, cell := range cells {
		board[i/BoardSize][i%BoardSize] = cell
	}

	return board, nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "", ".", "-", " ":
		*that = EmptyCell
	case "X":
		*that = CellX
	case "O":
		*that = CellO
	default:
		return fmt.Errorf("%w: unknown cell %q", ErrMalformedBoard, text)
	}

	return nil
}

// UnmarshalJSON accepts both the 3x3 array form and the text form of ParseBoard.
func (that *Board) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
		}

		board, err := ParseBoard(text)
		if err != nil {
			return err
		}

		*that = board
		return nil
	}

	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBoard, err)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: want %d rows, got %d", ErrMalformedBoard, BoardSize, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, i, len(row))
		}
		copy(board[i][:], row)
	}

	*that = board
	return nil
}
