package api

import (
	"net/http"
	"strconv"

	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"
	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 比赛、赛果与预测接口
type MatchHandler struct {
	matchService      *service.MatchService
	predictionService *service.PredictionService
	scoringService    *service.ScoringService
	logger            *logrus.Logger
}

func NewMatchHandler(
	matchService *service.MatchService,
	predictionService *service.PredictionService,
	scoringService *service.ScoringService,
	logger *logrus.Logger,
) *MatchHandler {
	return &MatchHandler{
		matchService:      matchService,
		predictionService: predictionService,
		scoringService:    scoringService,
		logger:            logger,
	}
}

// StatusRequest PATCH /api/admin/matches/:id/status 的 body
type StatusRequest struct {
	Status        model.MatchStatus `json:"status" binding:"required"`
	TossWinnerID  *uint64           `json:"toss_winner_id"`
	MatchWinnerID *uint64           `json:"match_winner_id"`
}

// ResultRequest 赛果更正 body
type ResultRequest struct {
	TossWinnerID  *uint64 `json:"toss_winner_id"`
	MatchWinnerID *uint64 `json:"match_winner_id"`
}

// ListMatches GET /api/matches?tournament_id=1&status=upcoming&page=1&page_size=20
func (h *MatchHandler) ListMatches(c *gin.Context) {
	var filter repository.MatchFilter
	if raw := c.Query("tournament_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament_id"})
			return
		}
		filter.TournamentID = id
	}
	filter.Status = model.MatchStatus(c.Query("status"))
	page, pageSize := pageParams(c)

	matches, total, err := h.matchService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, h.logger, "ListMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": matches, "total": total})
}

// GetMatch GET /api/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := h.matchService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetMatch", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// CreateMatch POST /api/admin/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req service.MatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	m, err := h.matchService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateMatch", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateMatch PUT /api/admin/matches/:id
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.MatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	m, err := h.matchService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateMatch", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMatch DELETE /api/admin/matches/:id
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.matchService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteMatch", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus PATCH /api/admin/matches/:id/status，置为 completed 时同步计分
func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	change, err := h.matchService.UpdateStatus(c.Request.Context(), id, req.Status, req.TossWinnerID, req.MatchWinnerID)
	if err != nil {
		respondError(c, h.logger, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, change)
}

// ScoreMatch POST /api/admin/matches/:id/score 手动重跑计分（幂等）
func (h *MatchHandler) ScoreMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.scoringService.CalculatePoints(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "ScoreMatch", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CorrectResult POST /api/admin/matches/:id/correction
func (h *MatchHandler) CorrectResult(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	summary, err := h.matchService.CorrectResult(c.Request.Context(), id, req.TossWinnerID, req.MatchWinnerID)
	if err != nil {
		respondError(c, h.logger, "CorrectResult", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListPredictions GET /api/matches/:id/predictions
func (h *MatchHandler) ListPredictions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	list, err := h.predictionService.ListForMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "ListPredictions", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// SubmitPrediction POST /api/matches/:id/predictions
func (h *MatchHandler) SubmitPrediction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, _ := currentUserID(c)
	var req service.PredictionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	p, err := h.predictionService.Submit(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, h.logger, "SubmitPrediction", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// MyPredictions GET /api/me/predictions
func (h *MatchHandler) MyPredictions(c *gin.Context) {
	userID, _ := currentUserID(c)
	list, err := h.predictionService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "MyPredictions", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
