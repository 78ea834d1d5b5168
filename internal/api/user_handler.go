package api

import (
	"net/http"

	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 注册、邮箱验证、用户资料与积分流水
type UserHandler struct {
	userService *service.UserService
	logger      *logrus.Logger
}

func NewUserHandler(userService *service.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	u, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Register", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Verify GET /api/users/verify?token=xxx
func (h *UserHandler) Verify(c *gin.Context) {
	if err := h.userService.Verify(c.Request.Context(), c.Query("token")); err != nil {
		respondError(c, h.logger, "Verify", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// GetUser GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetLedger GET /api/users/:id/ledger?page=1&page_size=20
func (h *UserHandler) GetLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	entries, total, err := h.userService.Ledger(c.Request.Context(), id, page, pageSize)
	if err != nil {
		respondError(c, h.logger, "GetLedger", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "total": total})
}
