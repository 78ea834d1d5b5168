package api

import (
	"net/http"

	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler 球队与赛事
type CatalogHandler struct {
	teamService       *service.TeamService
	tournamentService *service.TournamentService
	logger            *logrus.Logger
}

func NewCatalogHandler(teamService *service.TeamService, tournamentService *service.TournamentService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{teamService: teamService, tournamentService: tournamentService, logger: logger}
}

// ListTeams GET /api/teams
func (h *CatalogHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListTeams", err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeam POST /api/admin/teams
func (h *CatalogHandler) CreateTeam(c *gin.Context) {
	var req service.TeamInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	team, err := h.teamService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateTeam", err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

// UpdateTeam PUT /api/admin/teams/:id
func (h *CatalogHandler) UpdateTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.TeamInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	team, err := h.teamService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateTeam", err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// GetTeam GET /api/teams/:id
func (h *CatalogHandler) GetTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	team, err := h.teamService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetTeam", err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// DeleteTeam DELETE /api/admin/teams/:id
func (h *CatalogHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.teamService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteTeam", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTournaments GET /api/tournaments
func (h *CatalogHandler) ListTournaments(c *gin.Context) {
	list, err := h.tournamentService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ListTournaments", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTournament GET /api/tournaments/:id
func (h *CatalogHandler) GetTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.tournamentService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetTournament", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTournament POST /api/admin/tournaments
func (h *CatalogHandler) CreateTournament(c *gin.Context) {
	var req service.TournamentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	t, err := h.tournamentService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "CreateTournament", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTournament PUT /api/admin/tournaments/:id
func (h *CatalogHandler) UpdateTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req service.TournamentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	t, err := h.tournamentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, "UpdateTournament", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTournament DELETE /api/admin/tournaments/:id
func (h *CatalogHandler) DeleteTournament(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.tournamentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "DeleteTournament", err)
		return
	}
	c.Status(http.StatusNoContent)
}
