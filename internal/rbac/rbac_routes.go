package rbac

import (
	"go-shiftswap/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(jwtSecret))
	{
		group.GET("/check", handler.Check)
		group.GET("/permissions", handler.ListPermissions)
	}
}
