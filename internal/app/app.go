package app

import (
	"context"
	"database/sql"

	"go-presence/internal/attendance"
	"go-presence/internal/audit"
	"go-presence/internal/auth"
	"go-presence/internal/config"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/middleware"
	"go-presence/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// BuildApp connects the infrastructure and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := migrate(context.Background(), gormDB, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("database schema ready")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set: sessions are kept in memory and idempotency is disabled")
	}

	router.Use(middleware.ContextLogger(zap.L().Named("http")))

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(connection.PostgresOptions{
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
		Port:     cfg.DB.Port,
		SSLMode:  cfg.DB.SSLMode,
	}, connectRetries)
}

func migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(
		&auth.User{},
		&attendance.Attendance{},
		&audit.AuditLog{},
	); err != nil {
		return err
	}
	return kafka.EnsureOutboxSchema(ctx, sqlDB)
}
