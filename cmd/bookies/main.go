package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/bookies/internal/config"
	"github.com/xxxsen/bookies/internal/db"
	"github.com/xxxsen/bookies/internal/handler"
	"github.com/xxxsen/bookies/internal/middleware"
	"github.com/xxxsen/bookies/internal/repo"
	"github.com/xxxsen/bookies/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bookies",
		Short: "bookies book catalog server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run bookies server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer conn.Close()
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json (optional, env overrides)")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Duration("token_ttl", cfg.JWTTTL),
	)

	userRepo := repo.NewUserRepo(conn)
	bookRepo := repo.NewBookRepo(conn)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTTTL)
	bookService := service.NewBookService(bookRepo)

	deps := handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService),
		Books:    handler.NewBookHandler(bookService),
		Home:     handler.NewHomeHandler(),
		Verifier: authService,
	}

	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logutil.GetLogger(context.Background()).Info("server stopping...")
		return nil
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}
