package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

type InteractionRequest struct {
	TargetUserID int `json:"target_user_id" binding:"required"`
}

// Discovery returns the ranked candidate pool, already-decided candidates
// excluded.
func (h *MatchHandler) Discovery(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	matches, err := h.matchUseCase.Discovery(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// Selected lists the candidates the caller selected, ranked.
func (h *MatchHandler) Selected(c *gin.Context) {
	h.listByAction(c, domain.ActionSelected)
}

// Accepted lists the candidates the caller accepted, ranked.
func (h *MatchHandler) Accepted(c *gin.Context) {
	h.listByAction(c, domain.ActionAccepted)
}

// Rejected lists the candidates the caller rejected, ranked.
func (h *MatchHandler) Rejected(c *gin.Context) {
	h.listByAction(c, domain.ActionRejected)
}

func (h *MatchHandler) listByAction(c *gin.Context, action domain.InteractionAction) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	matches, err := h.matchUseCase.ListByAction(c.Request.Context(), email, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// Select records a pick from the discovery list.
func (h *MatchHandler) Select(c *gin.Context) {
	email, req, ok := h.bindInteraction(c)
	if !ok {
		return
	}
	if err := h.matchUseCase.Select(c.Request.Context(), email, req.TargetUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user selected"})
}

// Accept moves a selection to accepted.
func (h *MatchHandler) Accept(c *gin.Context) {
	h.respond(c, domain.ActionAccepted, "user accepted")
}

// Reject moves a selection to rejected.
func (h *MatchHandler) Reject(c *gin.Context) {
	h.respond(c, domain.ActionRejected, "user rejected")
}

func (h *MatchHandler) respond(c *gin.Context, action domain.InteractionAction, message string) {
	email, req, ok := h.bindInteraction(c)
	if !ok {
		return
	}
	if err := h.matchUseCase.Respond(c.Request.Context(), email, req.TargetUserID, action); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// Profile returns one candidate scored against the caller, including the
// caller's recorded action on the pair when there is one.
func (h *MatchHandler) Profile(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}
	profile, err := h.matchUseCase.Profile(c.Request.Context(), email, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *MatchHandler) bindInteraction(c *gin.Context) (string, *InteractionRequest, bool) {
	email, ok := currentEmail(c)
	if !ok {
		return "", nil, false
	}
	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return "", nil, false
	}
	return email, &req, true
}
