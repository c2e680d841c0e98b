package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/softdesk/api/internal/api"
	"github.com/softdesk/api/internal/api/handlers"
	"github.com/softdesk/api/internal/repository"
	"github.com/softdesk/api/internal/services"
	"github.com/softdesk/api/pkg/config"
	"github.com/softdesk/api/pkg/database"
	"github.com/softdesk/api/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting softdesk api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	secret := []byte(cfg.JWTSecret)

	authService := services.NewAuthService(userRepo, secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	issueService := services.NewIssueService(issueRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, cfg.BaseURL)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:     secret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		ProjectRepo: projectRepo,
		IssueRepo:   issueRepo,

		AuthHandler:         handlers.NewAuthHandler(authService),
		UsersHandler:        handlers.NewUsersHandler(userService),
		ProjectsHandler:     handlers.NewProjectsHandler(projectService),
		ContributorsHandler: handlers.NewContributorsHandler(projectService),
		IssuesHandler:       handlers.NewIssuesHandler(issueService),
		CommentsHandler:     handlers.NewCommentsHandler(commentService),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
