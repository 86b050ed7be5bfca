package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/game"
)

const defaultHistoryLimit = 10

// GameHandler exposes the round operations over HTTP.
type GameHandler struct {
	service *RoundService
}

// NewGameHandler creates a game handler
func NewGameHandler(service *RoundService) *GameHandler {
	return &GameHandler{service: service}
}

// SpinRequest is the request body for a spin.
type SpinRequest struct {
	Bets []game.Bet `json:"bets"`
}

// BalanceResponse carries the current ledger balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// CommitmentResponse carries the published hash for the next draw.
type CommitmentResponse struct {
	ServerSeedHash string `json:"serverSeedHash"`
}

// Balance handles GET /balance
func (h *GameHandler) Balance(c *gin.Context) {
	OK(c, BalanceResponse{Balance: h.service.Balance()})
}

// Spin handles POST /spin. Malformed bodies are rejected with the same
// code as structurally invalid bets.
func (h *GameHandler) Spin(c *gin.Context) {
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, errors.New(errors.CodeInvalidBet, "invalid request body"))
		return
	}

	result, err := h.service.Spin(c.Request.Context(), req.Bets)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	OK(c, result)
}

// History handles GET /history?limit=N
func (h *GameHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(c, errors.New(errors.CodeInvalidBet, "limit must be an integer"))
			return
		}
		limit = parsed
	}
	OK(c, h.service.History(limit))
}

// Reset handles POST /reset
func (h *GameHandler) Reset(c *gin.Context) {
	balance, err := h.service.Reset(c.Request.Context())
	if err != nil {
		HandleAppError(c, err)
		return
	}
	OK(c, BalanceResponse{Balance: balance})
}

// Commitment handles GET /fairness/commitment
func (h *GameHandler) Commitment(c *gin.Context) {
	OK(c, CommitmentResponse{ServerSeedHash: h.service.CommitmentHash()})
}

// LastRound handles GET /fairness/last-round. Before the first spin of
// a commitment there is nothing to reveal.
func (h *GameHandler) LastRound(c *gin.Context) {
	proof, ok := h.service.LastProof()
	if !ok {
		Error(c, http.StatusNotFound, errors.New(errors.CodeNotFound, "no settled round for the current commitment"))
		return
	}
	OK(c, proof)
}
