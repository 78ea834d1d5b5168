package api

import (
	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services 路由依赖的全部服务
type Services struct {
	Users       *service.UserService
	Leaderboard *service.LeaderboardService
	Teams       *service.TeamService
	Tournaments *service.TournamentService
	Matches     *service.MatchService
	Predictions *service.PredictionService
	Scoring     *service.ScoringService
	Tickets     *service.TicketService
	Reconcile   *service.ReconcileService
}

// RegisterRoutes 注册 /api 下全部路由
func RegisterRoutes(r *gin.Engine, svcs Services, logger *logrus.Logger) {
	users := NewUserHandler(svcs.Users, logger)
	leaderboard := NewLeaderboardHandler(svcs.Leaderboard, logger)
	catalog := NewCatalogHandler(svcs.Teams, svcs.Tournaments, logger)
	matches := NewMatchHandler(svcs.Matches, svcs.Predictions, svcs.Scoring, logger)
	tickets := NewTicketHandler(svcs.Tickets, svcs.Reconcile, logger)

	api := r.Group("/api", UserContext(logger))

	// 公开接口
	api.POST("/users/register", users.Register)
	api.GET("/users/verify", users.Verify)
	api.GET("/users/:id", users.GetUser)
	api.GET("/users/:id/ledger", users.GetLedger)
	api.GET("/leaderboard", leaderboard.GetLeaderboard)
	api.GET("/teams", catalog.ListTeams)
	api.GET("/teams/:id", catalog.GetTeam)
	api.GET("/tournaments", catalog.ListTournaments)
	api.GET("/tournaments/:id", catalog.GetTournament)
	api.GET("/tournaments/:id/leaderboard", leaderboard.GetTournamentLeaderboard)
	api.GET("/matches", matches.ListMatches)
	api.GET("/matches/:id", matches.GetMatch)
	api.GET("/matches/:id/predictions", matches.ListPredictions)

	// 需要网关身份
	authed := api.Group("", RequireUser())
	authed.POST("/matches/:id/predictions", matches.SubmitPrediction)
	authed.GET("/me/predictions", matches.MyPredictions)
	authed.POST("/tickets", tickets.OpenTicket)

	// 管理端
	admin := api.Group("/admin", RequireAdmin())
	admin.POST("/teams", catalog.CreateTeam)
	admin.PUT("/teams/:id", catalog.UpdateTeam)
	admin.DELETE("/teams/:id", catalog.DeleteTeam)
	admin.POST("/tournaments", catalog.CreateTournament)
	admin.PUT("/tournaments/:id", catalog.UpdateTournament)
	admin.DELETE("/tournaments/:id", catalog.DeleteTournament)
	admin.POST("/matches", matches.CreateMatch)
	admin.PUT("/matches/:id", matches.UpdateMatch)
	admin.DELETE("/matches/:id", matches.DeleteMatch)
	admin.PATCH("/matches/:id/status", matches.UpdateStatus)
	admin.POST("/matches/:id/score", matches.ScoreMatch)
	admin.POST("/matches/:id/correction", matches.CorrectResult)
	admin.GET("/tickets", tickets.ListTickets)
	admin.PATCH("/tickets/:id", tickets.RespondTicket)
	admin.POST("/reconcile", tickets.Reconcile)
}
