package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	headerUserID    = "X-User-ID"
	headerUserRoles = "X-User-Roles"

	ctxUserID    = "user_id"
	ctxUserRoles = "user_roles"

	roleAdmin = "admin"
)

// UserContext 读取网关注入的身份头。登录与签发令牌由网关负责，这里只信任头部
func UserContext(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := strings.TrimSpace(c.GetHeader(headerUserID)); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				logger.WithField("path", c.FullPath()).Warn("[USER_CTX] malformed X-User-ID")
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed X-User-ID"})
				return
			}
			c.Set(ctxUserID, id)
		}

		var roles []string
		for _, r := range strings.Split(c.GetHeader(headerUserRoles), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		c.Set(ctxUserRoles, roles)
		c.Next()
	}
}

// RequireUser 需要网关身份
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing X-User-ID, request must come through gateway with auth context",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin 需要 admin 角色
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !hasRole(c, roleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func hasRole(c *gin.Context, role string) bool {
	roles, _ := c.Get(ctxUserRoles)
	list, _ := roles.([]string)
	for _, r := range list {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
