package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
)

type AnalysisService interface {
	Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error)
}

type analysisRepo interface {
	Save(ctx context.Context, analysis *entity.Analysis) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Analysis, error)
}

type analysisService struct {
	logger *slog.Logger

	analysisRepo analysisRepo
}

// NewAnalysisService - a nil repository turns the position cache off.
func NewAnalysisService(logger *slog.Logger, analysisRepo analysisRepo) AnalysisService {
	return &analysisService{
		logger:       logger,
		analysisRepo: analysisRepo,
	}
}

func (that *analysisService) Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error) {
	log := that.logger.With("method", "Analyze", "board", board.String())

	if that.analysisRepo != nil {
		cached, err := that.analysisRepo.GetByBoard(ctx, board)
		switch {
		case err == nil:
			metrics.AnalysesTotal.WithLabelValues(metrics.SourceCache).Inc()
			return cached, nil
		case errors.Is(err, repository.ErrAnalysisNotFound):
		default:
			metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
			log.Error("failed to read cached analysis", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	start := time.Now()
	analysis := analyze(board)
	elapsed := time.Since(start)

	metrics.SearchDuration.Observe(elapsed.Seconds())
	metrics.AnalysesTotal.WithLabelValues(metrics.SourceSearch).Inc()
	log.Debug("position searched", "duration", elapsed, "utility", analysis.Utility)

	if that.analysisRepo != nil {
		if err := that.analysisRepo.Save(ctx, analysis); err != nil {
			metrics.CacheErrorsTotal.WithLabelValues("save").Inc()
			log.Error("failed to cache analysis", "error", err)
		}
	}

	return analysis, nil
}

func analyze(board entity.Board) *entity.Analysis {
	analysis := &entity.Analysis{
		Board:    board,
		Terminal: board.IsTerminal(),
	}

	if winner, ok := board.Winner(); ok {
		analysis.Winner = winner
	}

	// a finished game has no turn
	if analysis.Terminal {
		analysis.Utility = board.Utility()
		return analysis
	}

	ev := minimax.Evaluate(board)
	analysis.Turn = board.SideToMove()
	analysis.Utility = ev.Utility
	if ev.HasAction {
		action := ev.Action
		analysis.BestMove = &action
	}

	return analysis
}
