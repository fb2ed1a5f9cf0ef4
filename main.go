package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ems-project/backend/config"
	"ems-project/backend/handlers"
	"ems-project/backend/logging"
	"ems-project/backend/middleware"
	"ems-project/backend/repositories"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_LOAD_FAILED, Description: Failed to load configuration: %v", err)
	}
	logging.InitLogger(cfg.LogFile, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECT_FAILED, Description: Database connection failed: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logging.Logger.Errorf("Event ID: DB_DISCONNECT_FAILED, Description: %v", err)
		}
	}()
	if err := client.Ping(connectCtx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Connected to MongoDB database %s", cfg.MongoDBName)

	db := client.Database(cfg.MongoDBName)
	if err := repositories.EnsureIndexes(connectCtx, db); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	employeeRepo := repositories.NewEmployeeRepository(db, repositories.NewReadBreaker("employees"))
	projectRepo := repositories.NewProjectRepository(db, repositories.NewReadBreaker("projects"))
	leaveRepo := repositories.NewLeaveRepository(db, repositories.NewReadBreaker("leaves"))
	attendanceRepo := repositories.NewAttendanceRepository(db, repositories.NewReadBreaker("attendance"))
	txRunner := repositories.NewTxRunner(client)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	employeeService := services.NewEmployeeService(employeeRepo)
	if err := employeeService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_SEED_FAILED, Description: %v", err)
	}

	h := handlers.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(employeeRepo, tokens, cfg.AdminEmail)),
		Employees:  handlers.NewEmployeeHandler(employeeService),
		Projects:   handlers.NewProjectHandler(services.NewProjectService(projectRepo, employeeRepo, txRunner, cfg.ProjectWriteTimeout)),
		Leaves:     handlers.NewLeaveHandler(services.NewLeaveService(leaveRepo, employeeRepo)),
		Attendance: handlers.NewAttendanceHandler(services.NewAttendanceService(attendanceRepo, employeeRepo)),
	}

	loginLimiter := middleware.PerMinute(cfg.LoginRatePerMinute)
	go loginLimiter.Sweep(time.Minute, ctx.Done())

	router := handlers.NewRouter(h, tokens, loginLimiter, cfg.UploadDir)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START, Description: Server running on http://localhost:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FAILED, Description: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
	logging.Logger.Info("Event ID: SERVER_STOPPED, Description: Server stopped")
}
