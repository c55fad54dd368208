package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/testing/suite"
)

func centreOpening() *entity.Analysis {
	board := entity.Board{
		{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		{entity.EmptyCell, entity.CellX, entity.EmptyCell},
		{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
	}

	return &entity.Analysis{
		Board:    board,
		Turn:     entity.PlayerO,
		Utility:  0,
		BestMove: &entity.Action{Row: 0, Col: 0},
	}
}

func TestAnalysisRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	analysisRepo := NewAnalysisRepository(st.Storage, time.Minute)

	// Given: the analysis of the centre opening
	analysis := centreOpening()

	// When: Save is called
	err := analysisRepo.Save(ctx, analysis)

	// Then: no error should be returned, and the entry expires
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, analysisKey(analysis.Board)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0, "ttl %s", ttl)
}

func TestAnalysisRepository_GetByBoard(t *testing.T) {
	t.Run("GetByBoard_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		analysisRepo := NewAnalysisRepository(st.Storage, 0)

		// Given: a stored analysis
		analysis := centreOpening()

		err := analysisRepo.Save(ctx, analysis)
		require.NoError(t, err)

		// When: GetByBoard is called with the same board
		retrieved, err := analysisRepo.GetByBoard(ctx, analysis.Board)

		// Then: the retrieved analysis should match the saved one
		require.NoError(t, err)
		assert.Equal(t, analysis, retrieved)
	})

	t.Run("GetByBoard_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		analysisRepo := NewAnalysisRepository(st.Storage, 0)

		// When: GetByBoard is called for a board never stored
		retrieved, err := analysisRepo.GetByBoard(ctx, entity.InitialState())

		// Then: an ErrAnalysisNotFound error should be returned
		require.ErrorIs(t, err, ErrAnalysisNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestAnalysisRepository_DeleteByBoard(t *testing.T) {
	t.Run("DeleteByBoard_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		analysisRepo := NewAnalysisRepository(st.Storage, 0)

		// Given: a stored analysis
		analysis := centreOpening()

		err := analysisRepo.Save(ctx, analysis)
		require.NoError(t, err)

		// When: DeleteByBoard is called
		err = analysisRepo.DeleteByBoard(ctx, analysis.Board)

		// Then: no error should be returned and the entry is gone
		require.NoError(t, err)

		_, err = analysisRepo.GetByBoard(ctx, analysis.Board)
		require.ErrorIs(t, err, ErrAnalysisNotFound)
	})

	t.Run("DeleteByBoard_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		analysisRepo := NewAnalysisRepository(st.Storage, 0)

		// When: DeleteByBoard is called for a board never stored
		err := analysisRepo.DeleteByBoard(ctx, entity.InitialState())

		// Then: an ErrAnalysisNotFound error should be returned
		require.ErrorIs(t, err, ErrAnalysisNotFound)
	})
}
