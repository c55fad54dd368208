// Package minimax searches the complete Tic-Tac-Toe game tree for the best move.
//
// Both sides are assumed to play perfectly. Among moves of equal value the search prefers
// the line that ends with more empty cells on the board, which approximates reaching the
// outcome sooner. A search is pure: it keeps no state between calls and never mutates the
// board it is given.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	maxUtility = 1
	minUtility = -1

	// sentinels below and above every real utility and empty count
	negInf = math.MinInt
	posInf = math.MaxInt
)

// Evaluation is the outcome of searching one position.
type Evaluation struct {
	// Utility is the final score reached under optimal play, from X's perspective.
	Utility int
	// Action is the chosen move. It is only set when HasAction is true.
	Action    entity.Action
	HasAction bool
	// EmptyCount is the number of empty cells left on the terminal board of the chosen line.
	EmptyCount int
}

// result is the (utility, action, emptyCount) triple compared at every level of the search.
type result struct {
	utility    int
	action     entity.Action
	hasAction  bool
	emptyCount int
}

// BestMove - returns the optimal action for the side to move, or false when the game is over.
func BestMove(board entity.Board) (entity.Action, bool) {
	if board.IsTerminal() {
		return entity.Action{}, false
	}

	ev := Evaluate(board)

	return ev.Action, ev.HasAction
}

// Evaluate - searches the position and reports its value together with the chosen action.
func Evaluate(board entity.Board) Evaluation {
	var res result

	switch {
	case board.IsTerminal():
		res = leaf(board)
	case board.SideToMove() == entity.PlayerX:
		res = searchMax(board)
	default:
		res = searchMin(board)
	}

	return Evaluation{
		Utility:    res.utility,
		Action:     res.action,
		HasAction:  res.hasAction,
		EmptyCount: res.emptyCount,
	}
}

func leaf(board entity.Board) result {
	return result{utility: board.Utility(), emptyCount: board.EmptyCount()}
}

func searchMax(board entity.Board) result {
	if board.IsTerminal() {
		return leaf(board)
	}

	best := result{utility: negInf, emptyCount: negInf}
	empty := board.EmptyCount()

	for _, action := range board.LegalActions() {
		child := searchMin(successor(board, action))

		switch {
		case child.utility > best.utility:
			best = result{utility: child.utility, action: action, hasAction: true, emptyCount: child.emptyCount}
		case child.utility == best.utility && child.emptyCount > best.emptyCount:
			best = result{utility: best.utility, action: action, hasAction: true, emptyCount: child.emptyCount}
		}

		// a win on the very next ply cannot be improved upon
		if best.utility == maxUtility && empty == best.emptyCount+1 {
			return best
		}
	}

	return best
}

func searchMin(board entity.Board) result {
	if board.IsTerminal() {
		return leaf(board)
	}

	best := result{utility: posInf, emptyCount: negInf}
	empty := board.EmptyCount()

	for _, action := range board.LegalActions() {
		child := searchMax(successor(board, action))

		switch {
		case child.utility < best.utility:
			best = result{utility: child.utility, action: action, hasAction: true, emptyCount: child.emptyCount}
		case child.utility == best.utility && child.emptyCount > best.emptyCount:
			best = result{utility: best.utility, action: action, hasAction: true, emptyCount: child.emptyCount}
		}

		if best.utility == minUtility && empty == best.emptyCount+1 {
			return best
		}
	}

	return best
}

// successor - applies an action taken from board.LegalActions, which can never be rejected.
func successor(board entity.Board, action entity.Action) entity.Board {
	next, err := board.Apply(action)
	if err != nil {
		panic(fmt.Sprintf("legal action %s rejected on %s: %v", action, board, err))
	}

	return next
}
