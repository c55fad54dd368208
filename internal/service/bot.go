package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/metrics"
)

type BotService interface {
	// MakeTurn plays the best move for the side to move.
	MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error)
	// Respond applies the player's action and, unless that ends the game, answers it.
	// The returned bot move is nil when the player's action finished the game.
	Respond(ctx context.Context, board entity.Board, action entity.Action) (entity.Board, *entity.Action, error)
	// Playout lets the bot play both sides until the game is over.
	Playout(ctx context.Context, board entity.Board) ([]entity.Action, entity.Board, error)
}

type botService struct {
	logger *slog.Logger

	analysisService AnalysisService
}

func NewBotService(logger *slog.Logger, analysisService AnalysisService) BotService {
	return &botService{
		logger:          logger,
		analysisService: analysisService,
	}
}

func (that *botService) MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error) {
	if board.IsTerminal() {
		return board, entity.Action{}, apperror.ErrGameFinished
	}

	analysis, err := that.analysisService.Analyze(ctx, board)
	if err != nil {
		return board, entity.Action{}, fmt.Errorf("failed to analyze board: %w", err)
	}

	if analysis.BestMove == nil {
		return board, entity.Action{}, apperror.ErrNoAvailableMoves
	}

	action := *analysis.BestMove

	next, err := board.Apply(action)
	if err != nil {
		return board, entity.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	metrics.BotMovesTotal.WithLabelValues(string(board.SideToMove())).Inc()

	return next, action, nil
}

func (that *botService) Respond(ctx context.Context, board entity.Board, action entity.Action) (entity.Board, *entity.Action, error) {
	if board.IsTerminal() {
		return board, nil, apperror.ErrGameFinished
	}

	next, err := board.Apply(action)
	if err != nil {
		return board, nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if next.IsTerminal() {
		return next, nil, nil
	}

	reply, botAction, err := that.MakeTurn(ctx, next)
	if err != nil {
		return next, nil, fmt.Errorf("bot failed to respond: %w", err)
	}

	return reply, &botAction, nil
}

func (that *botService) Playout(ctx context.Context, board entity.Board) ([]entity.Action, entity.Board, error) {
	log := that.logger.With("method", "Playout", "board", board.String())

	moves := make([]entity.Action, 0, board.EmptyCount())

	for !board.IsTerminal() {
		next, action, err := that.MakeTurn(ctx, board)
		if err != nil {
			return moves, board, fmt.Errorf("playout stopped after %d moves: %w", len(moves), err)
		}

		moves = append(moves, action)
		board = next
	}

	log.Debug("playout finished", "moves", len(moves), "utility", board.Utility())

	return moves, board, nil
}
