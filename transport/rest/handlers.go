package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const maxBodyBytes = 4 << 10

var errBadRequest = errors.New("bad request")

type Handlers interface {
	AnalyzeHandler(w http.ResponseWriter, r *http.Request)
	MoveHandler(w http.ResponseWriter, r *http.Request)
	PlayoutHandler(w http.ResponseWriter, r *http.Request)
}

type analysisService interface {
	Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error)
}

type botService interface {
	MakeTurn(ctx context.Context, board entity.Board) (entity.Board, entity.Action, error)
	Respond(ctx context.Context, board entity.Board, action entity.Action) (entity.Board, *entity.Action, error)
	Playout(ctx context.Context, board entity.Board) ([]entity.Action, entity.Board, error)
}

type handlers struct {
	logger *slog.Logger

	analysisService analysisService
	botService      botService
}

func NewHandlers(logger *slog.Logger, analysisService analysisService, botService botService) Handlers {
	return &handlers{
		logger:          logger.With("component", "handlers"),
		analysisService: analysisService,
		botService:      botService,
	}
}

type boardRequest struct {
	Board entity.Board `json:"board"`
}

type moveRequest struct {
	Board  entity.Board   `json:"board"`
	Action *entity.Action `json:"action,omitempty"`
}

type moveResponse struct {
	Board      entity.Board     `json:"board"`
	PlayerMove *entity.Action   `json:"player_move,omitempty"`
	BotMove    *entity.Action   `json:"bot_move,omitempty"`
	Analysis   *entity.Analysis `json:"analysis"`
}

type playoutResponse struct {
	Moves   []entity.Action `json:"moves"`
	Board   entity.Board    `json:"board"`
	Winner  entity.Side     `json:"winner,omitempty"`
	Utility int             `json:"utility"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	analysis, err := that.analysisService.Analyze(r.Context(), req.Board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

// MoveHandler - without an action the bot moves from the given board,
// otherwise the player's action is applied and the bot answers it.
func (that *handlers) MoveHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	var (
		board   entity.Board
		botMove *entity.Action
		err     error
	)

	if req.Action == nil {
		var action entity.Action
		board, action, err = that.botService.MakeTurn(ctx, req.Board)
		botMove = &action
	} else {
		board, botMove, err = that.botService.Respond(ctx, req.Board, *req.Action)
	}

	if err != nil {
		that.writeError(w, r, err)
		return
	}

	analysis, err := that.analysisService.Analyze(ctx, board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{
		Board:      board,
		PlayerMove: req.Action,
		BotMove:    botMove,
		Analysis:   analysis,
	})
}

func (that *handlers) PlayoutHandler(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	moves, board, err := that.botService.Playout(r.Context(), req.Board)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	resp := playoutResponse{
		Moves:   moves,
		Board:   board,
		Utility: board.Utility(),
	}
	if winner, ok := board.Winner(); ok {
		resp.Winner = winner
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, entity.ErrMalformedBoard),
		errors.Is(err, apperror.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "request_id", requestIDFrom(r.Context()), "path", r.URL.Path, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
