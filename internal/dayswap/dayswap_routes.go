package dayswap

import (
	"time"

	"go-shiftswap/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb redis.Cmdable,
	jwtSecret string,
) {
	swaps := r.Group("/day-swaps")
	swaps.Use(middleware.AuthMiddleware(jwtSecret), middleware.ContextLogger(zap.L()))
	{
		swaps.GET("", middleware.RBACAuthorize(rbacService, "dayswap", "read"), handler.GetAll)
		swaps.GET("/:id", middleware.RBACAuthorize(rbacService, "dayswap", "read"), handler.GetByID)
		swaps.POST("",
			middleware.RBACAuthorize(rbacService, "dayswap", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		swaps.DELETE("/:id", middleware.RBACAuthorize(rbacService, "dayswap", "create"), handler.Delete)

		swaps.GET("/approvals/pending", middleware.RBACAuthorize(rbacService, "dayswap", "approve"), handler.ListPendingApprovals)
		swaps.POST("/approvals/:approval_id/decision",
			middleware.RBACAuthorize(rbacService, "dayswap", "approve"),
			middleware.RateLimitByUser(rate.Every(time.Second), 5),
			middleware.Idempotency(rdb),
			handler.Decide,
		)
	}
}
