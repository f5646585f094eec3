package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "tasklist-web.com/tasklist-web/internal/configs"
	httpapi "tasklist-web.com/tasklist-web/internal/http"
	repository "tasklist-web.com/tasklist-web/internal/repositories"
	"tasklist-web.com/tasklist-web/internal/services"
	"tasklist-web.com/tasklist-web/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Starts the task list web application",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)

		taskService := services.NewTaskService(taskRepo)
		authService := services.NewAuthService(userRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := authService.SeedDefaultUser(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to seed default account: %v", err)
		}

		sessionTTL := time.Duration(cfg.SessionTTLSeconds) * time.Second

		var sessions session.Store
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			sessions = session.NewRedisStore(redisClient, sessionTTL)
		} else {
			log.Println("REDIS_ADDR not set, using in-memory session store")
			sessions = session.NewMemoryStore(sessionTTL)
		}

		e := echo.New()

		renderer, err := httpapi.NewTemplateRenderer(cfg.TemplatesDir)
		if err != nil {
			log.Fatalf("failed to parse templates: %v", err)
		}
		e.Renderer = renderer

		handler := httpapi.NewHandler(taskService, authService, sessions, sessionTTL, cfg.SecureCookies)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
