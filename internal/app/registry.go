package app

import (
	"database/sql"

	"go-shiftswap/internal/approval"
	"go-shiftswap/internal/config"
	"go-shiftswap/internal/dayswap"
	"go-shiftswap/internal/messaging/kafka"
	"go-shiftswap/internal/notification"
	"go-shiftswap/internal/rbac"
	"go-shiftswap/internal/rbac/infra"
	"go-shiftswap/internal/shared/counter"
	"go-shiftswap/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) (*notification.AsyncDispatcher, error) {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	daySwapRepo := dayswap.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	dispatcher := notification.NewAsyncDispatcher(
		notification.NewOutboxDispatcher(outboxRepo, logger),
		cfg.NotifyTimeout,
		logger,
	)
	daySwapService := dayswap.NewService(
		db,
		daySwapRepo,
		approvalRepo,
		shiftRepo,
		counterRepo,
		shift.NewReconciler(logger),
		dispatcher,
		dayswap.Options{
			DefaultChain: cfg.Approval.DefaultChain,
			TxTimeout:    cfg.Database.TxTimeout,
		},
		logger,
	)
	notificationService := notification.NewService(notificationRepo, logger)

	// --- Handlers ---
	daySwapHandler := dayswap.NewHandler(daySwapService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		dayswap.RegisterRoutes(api, daySwapHandler, rbacService, rdb, cfg.JWTSecret)
		notification.RegisterRoutes(api, notificationHandler, cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return dispatcher, nil
}
