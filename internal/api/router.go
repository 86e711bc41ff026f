package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sismt/attendance-system/internal/api/handler"
	apimiddleware "github.com/sismt/attendance-system/internal/api/middleware"
	"github.com/sismt/attendance-system/internal/core/schedule"
	"github.com/sismt/attendance-system/internal/core/service"
	"github.com/sismt/attendance-system/internal/infrastructure/config"
	mongodb "github.com/sismt/attendance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sismt/attendance-system/internal/infrastructure/db/redis"
	"github.com/sismt/attendance-system/internal/infrastructure/notify"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	sched *schedule.Config,
	hub *notify.Hub,
	mailer service.Mailer,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("attendance_http"))

	loc := cfg.Location()

	// --- Repositories ---
	personRepo := mongodb.NewPersonRepository(db)
	encodingRepo := mongodb.NewEncodingRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)
	absenceRepo := mongodb.NewAbsenceRequestRepository(db)
	overtimeRepo := mongodb.NewOvertimeRequestRepository(db)
	guard := redisdb.NewRegistrationGuard(rdb)

	// --- Services ---
	attendanceService := service.NewAttendanceService(personRepo, attendanceRepo, sched, guard, loc, log)
	recognitionService := service.NewRecognitionService(
		personRepo, encodingRepo, attendanceRepo, attendanceService, sched,
		service.RecognitionOptions{
			MinEmbeddingLen:  cfg.Recognition.MinEmbedding,
			MaxEmbeddingLen:  cfg.Recognition.MaxEmbedding,
			DefaultThreshold: cfg.Recognition.Threshold,
			DefaultMinMargin: cfg.Recognition.MinMargin,
		},
		loc, log,
	)
	encodingService := service.NewEncodingService(encodingRepo, personRepo,
		cfg.Recognition.MinEmbedding, cfg.Recognition.MaxEmbedding, log)
	personService := service.NewPersonService(personRepo, encodingService, mailer,
		cfg.JWTSecret, cfg.TokenTTL, log)
	requestService := service.NewRequestService(absenceRepo, overtimeRepo, personRepo, log)
	reportService := service.NewReportService(personRepo, attendanceRepo, absenceRepo, overtimeRepo, log)

	// --- Handlers ---
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, hub)
	recognitionHandler := handler.NewRecognitionHandler(recognitionService, hub)
	personHandler := handler.NewPersonHandler(personService, cfg.SMTP.ResetBaseURL)
	encodingHandler := handler.NewEncodingHandler(encodingService)
	scheduleHandler := handler.NewScheduleHandler(sched)
	requestHandler := handler.NewRequestHandler(requestService)
	reportHandler := handler.NewReportHandler(reportService)
	eventsHandler := handler.NewEventsHandler(hub)

	authRequired := apimiddleware.Auth(cfg.JWTSecret)
	adminOnly := apimiddleware.RequireAdmin()

	// --- Auth routes ---
	e.POST("/auth/login", personHandler.Login)
	e.POST("/auth/password-reset", personHandler.RequestPasswordReset)
	e.POST("/auth/password-reset/confirm", personHandler.ConfirmPasswordReset)

	v1 := e.Group("/v1")

	// --- Registration pipeline (open: kiosk devices carry no token) ---
	v1.POST("/attendance", attendanceHandler.Register)
	v1.POST("/attendance/recognize", recognitionHandler.Recognize)

	// --- Attendance queries ---
	v1.GET("/attendance/board", attendanceHandler.Board, authRequired)
	v1.GET("/attendance/history", attendanceHandler.History, authRequired)
	v1.GET("/attendance/stats", attendanceHandler.Stats, authRequired)
	v1.GET("/attendance/recent", attendanceHandler.Recent, authRequired)
	v1.GET("/attendance/events", eventsHandler.Stream, authRequired)

	// --- Personnel ---
	v1.GET("/personnel", personHandler.List, authRequired)
	v1.POST("/personnel", personHandler.Create, authRequired, adminOnly)
	v1.POST("/personnel/with-encoding", personHandler.CreateWithEncoding, authRequired, adminOnly)
	v1.GET("/personnel/:id", personHandler.Get, authRequired)
	v1.PUT("/personnel/:id", personHandler.Update, authRequired, adminOnly)
	v1.DELETE("/personnel/:id", personHandler.Delete, authRequired, adminOnly)
	v1.GET("/personnel/:id/encodings", encodingHandler.ListByPerson, authRequired)

	// --- Encodings ---
	v1.GET("/encodings", encodingHandler.List, authRequired)
	v1.POST("/encodings", encodingHandler.Create, authRequired, adminOnly)
	v1.GET("/encodings/:id", encodingHandler.Get, authRequired)
	v1.DELETE("/encodings/:id", encodingHandler.Delete, authRequired, adminOnly)

	// --- Schedule ---
	v1.GET("/schedule", scheduleHandler.Get, authRequired)
	v1.PUT("/schedule", scheduleHandler.Update, authRequired, adminOnly)

	// --- Requests ---
	v1.GET("/absences", requestHandler.ListAbsences, authRequired)
	v1.POST("/absences", requestHandler.CreateAbsence, authRequired)
	v1.PATCH("/absences/:id/state", requestHandler.ResolveAbsence, authRequired, adminOnly)
	v1.GET("/overtime", requestHandler.ListOvertime, authRequired)
	v1.POST("/overtime", requestHandler.CreateOvertime, authRequired)
	v1.PATCH("/overtime/:id/state", requestHandler.ResolveOvertime, authRequired, adminOnly)

	// --- Reports ---
	v1.GET("/reports/monthly", reportHandler.Monthly, authRequired, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
