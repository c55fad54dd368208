package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

const analysisKeyPrefix = "analysis:"

// AnalysisRepository caches solved positions keyed by the board.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *entity.Analysis) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Analysis, error)
	DeleteByBoard(ctx context.Context, board entity.Board) error
}

type dbAnalysis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisRepository - a zero ttl keeps entries forever.
func NewAnalysisRepository(client *redis.Client, ttl time.Duration) AnalysisRepository {
	return &dbAnalysis{
		client: client,
		ttl:    ttl,
	}
}

func analysisKey(board entity.Board) string {
	return analysisKeyPrefix + board.String()
}

func (that *dbAnalysis) Save(ctx context.Context, analysis *entity.Analysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("could not marshal analysis: %w", err)
	}

	err = that.client.Set(ctx, analysisKey(analysis.Board), analysisJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set analysis: %w", err)
	}

	return nil
}

func (that *dbAnalysis) GetByBoard(ctx context.Context, board entity.Board) (*entity.Analysis, error) {
	response, err := that.client.Get(ctx, analysisKey(board)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrAnalysisNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get analysis by board: %w", err)
	}

	var analysis entity.Analysis
	if err = json.Unmarshal([]byte(response), &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &analysis, nil
}

func (that *dbAnalysis) DeleteByBoard(ctx context.Context, board entity.Board) error {
	deleted, err := that.client.Del(ctx, analysisKey(board)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete analysis by board: %w", err)
	}

	if deleted == 0 {
		return ErrAnalysisNotFound
	}

	return nil
}
