package app

import (
	"database/sql"
	"net/http"

	"go-presence/internal/attendance"
	"go-presence/internal/audit"
	"go-presence/internal/auth"
	"go-presence/internal/config"
	"go-presence/internal/face"
	"go-presence/internal/facerecognition"
	"go-presence/internal/messaging/kafka"
	"go-presence/internal/office"
	"go-presence/internal/rbac"
	"go-presence/internal/rbac/infra"
	"go-presence/internal/session"
	"go-presence/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Infrastructure ---
	var sessions session.Store = session.NewMemoryStore()
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
	}
	faceClient := facerecognition.NewClient(cfg.FaceAPIURL, &http.Client{Timeout: cfg.FaceTimeout})

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicy())
	if err != nil {
		return err
	}

	// --- Services ---
	flow := workflow.New(faceClient, sessions, cfg.Location)
	attendanceService := attendance.NewServiceWithOutbox(
		db,
		attendanceRepo,
		outboxRepo,
		flow,
		sessions,
		attendance.Geofence{Offices: cfg.Offices, MaxMeters: cfg.MaxDistanceMeters},
		cfg.Location,
	)
	auditService := audit.NewService(auditRepo, cfg.Location)
	authService := auth.NewService(authRepo, cfg.JWTSecret)
	faceService := face.NewService(faceClient, authRepo, auditService)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	auditHandler := audit.NewHandler(auditService)
	authHandler := auth.NewHandler(authService)
	faceHandler := face.NewHandler(faceService)
	officeHandler := office.NewHandler(cfg.Offices, cfg.MaxDistanceMeters)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		face.RegisterRoutes(api, faceHandler, rbacService)
		office.RegisterRoutes(api, officeHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
