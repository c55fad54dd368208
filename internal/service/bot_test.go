package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

func newTestBot() BotService {
	logger := newTestLogger()

	return NewBotService(logger, NewAnalysisService(logger, nil))
}

func TestBotService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens the game", func(t *testing.T) {
		// Given: an empty board
		botService := newTestBot()

		// When: the bot moves first
		board, action, err := botService.MakeTurn(ctx, entity.InitialState())

		// Then: it plays X in the top left corner
		require.NoError(t, err)
		assert.Equal(t, entity.Action{Row: 0, Col: 0}, action)
		assert.Equal(t, entity.CellX, board[0][0])
		assert.Equal(t, 8, board.EmptyCount())
	})

	t.Run("Refuses a finished game", func(t *testing.T) {
		botService := newTestBot()

		// Given: a drawn board
		board := mustParse(t, "XOX/XOO/OXX")

		// When: the bot is asked to move
		_, _, err := botService.MakeTurn(ctx, board)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestBotService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("Answers the centre opening with a corner", func(t *testing.T) {
		botService := newTestBot()

		// When: the player opens in the centre
		board, botMove, err := botService.Respond(ctx, entity.InitialState(), entity.Action{Row: 1, Col: 1})

		// Then: the bot answers in a corner with O
		require.NoError(t, err)
		require.NotNil(t, botMove)
		assert.Contains(t, []entity.Action{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}, *botMove)
		assert.Equal(t, entity.CellX, board[1][1])
		assert.Equal(t, entity.CellO, board[botMove.Row][botMove.Col])
	})

	t.Run("No answer when the player wins", func(t *testing.T) {
		botService := newTestBot()

		// Given: X can complete the top row
		board := mustParse(t, "XX./OO./...")

		// When: the player takes the win
		next, botMove, err := botService.Respond(ctx, board, entity.Action{Row: 0, Col: 2})

		// Then: the game is over and the bot stays quiet
		require.NoError(t, err)
		assert.Nil(t, botMove)

		winner, ok := next.Winner()
		require.True(t, ok)
		assert.Equal(t, entity.PlayerX, winner)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		botService := newTestBot()

		// Given: X holds the centre
		board := mustParse(t, ".../.X./...")

		// When: the player plays on the centre again
		next, botMove, err := botService.Respond(ctx, board, entity.Action{Row: 1, Col: 1})

		// Then: ErrInvalidAction is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		assert.Nil(t, botMove)
		assert.Equal(t, board, next)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		botService := newTestBot()

		board := mustParse(t, "XXX/OO./...")

		_, _, err := botService.Respond(ctx, board, entity.Action{Row: 2, Col: 2})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestBotService_Playout(t *testing.T) {
	ctx := context.Background()

	t.Run("Perfect play from the start is a draw", func(t *testing.T) {
		botService := newTestBot()

		// When: the bot plays both sides from the empty board
		moves, board, err := botService.Playout(ctx, entity.InitialState())

		// Then: all nine cells are filled and nobody wins
		require.NoError(t, err)
		assert.Len(t, moves, 9)
		assert.True(t, board.IsTerminal())
		assert.Equal(t, 0, board.Utility())
	})

	t.Run("Finishes a won position at once", func(t *testing.T) {
		botService := newTestBot()

		// Given: X to move with the top row open
		board := mustParse(t, "XX./OO./...")

		// When: playing out
		moves, final, err := botService.Playout(ctx, board)

		// Then: X wins with one move
		require.NoError(t, err)
		assert.Equal(t, []entity.Action{{Row: 0, Col: 2}}, moves)
		assert.Equal(t, 1, final.Utility())
	})

	t.Run("Nothing to play on a finished board", func(t *testing.T) {
		botService := newTestBot()

		moves, final, err := botService.Playout(ctx, mustParse(t, "XOX/XOO/OXX"))

		require.NoError(t, err)
		assert.Empty(t, moves)
		assert.True(t, final.IsTerminal())
	})
}
