package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// Action identifies the cell a move is placed on.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// LegalActions - returns every empty cell in row-major order.
func (that Board) LegalActions() []Action {
	actions := make([]Action, 0, that.EmptyCount())
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Apply - returns a copy of the board with the side to move placed on the action's cell.
// The receiver is left untouched.
func (that Board) Apply(action Action) (Board, error) {
	if !action.InBounds() {
		return Board{}, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, action)
	}

	if that.at(action) != EmptyCell {
		return Board{}, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.SideToMove().Cell()

	return next, nil
}
