package api

import (
	"net/http"
	"strconv"

	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LeaderboardHandler 排行榜查询
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
	logger             *logrus.Logger
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService, logger *logrus.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService, logger: logger}
}

// GetLeaderboard GET /api/leaderboard?timeframe=this-week&tournament_id=3
// 带 tournament_id 时返回赛事排行
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", string(service.TimeframeAllTime))

	if raw := c.Query("tournament_id"); raw != "" {
		tournamentID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || tournamentID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament_id"})
			return
		}
		h.tournament(c, tournamentID, timeframe)
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), timeframe)
	if err != nil {
		respondError(c, h.logger, "GetLeaderboard", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetTournamentLeaderboard GET /api/tournaments/:id/leaderboard?timeframe=all-time
func (h *LeaderboardHandler) GetTournamentLeaderboard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.tournament(c, id, c.DefaultQuery("timeframe", string(service.TimeframeAllTime)))
}

func (h *LeaderboardHandler) tournament(c *gin.Context, tournamentID uint64, timeframe string) {
	entries, err := h.leaderboardService.GetTournamentLeaderboard(c.Request.Context(), tournamentID, timeframe)
	if err != nil {
		respondError(c, h.logger, "GetTournamentLeaderboard", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
