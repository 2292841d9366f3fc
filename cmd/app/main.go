package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/config"
	"github.com/BuzzLyutic/todolist/internal/console"
	"github.com/BuzzLyutic/todolist/internal/handler"
	"github.com/BuzzLyutic/todolist/internal/repo"
	"github.com/BuzzLyutic/todolist/internal/service"
	"github.com/BuzzLyutic/todolist/internal/worker"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Подключаем логгер
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()

	slot, err := openSlot(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open task storage", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer slot.Close()

	gw := repo.NewGateway(slot, cfg.Key, logger)
	saver := worker.NewSaver(gw, logger)
	saver.Start(ctx)
	defer saver.Stop()

	store := service.NewTaskStore(gw.Load(ctx), saver, service.WithLogger(logger))

	switch cfg.View {
	case config.ViewConsole:
		runConsole(store, logger)
	default:
		serveHTTP(cfg, store, logger)
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func openSlot(ctx context.Context, cfg config.Config) (repo.Slot, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return repo.NewMemSlot(), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
		return repo.NewSQLiteSlot(ctx, filepath.Join(cfg.DataDir, "tasks.db"))
	default:
		return repo.NewFileSlot(cfg.DataDir)
	}
}

func runConsole(store *service.TaskStore, logger *zap.Logger) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if err := console.New(store, os.Stdout, logger).Run(line); err != nil {
		logger.Error("Console failed", zap.Error(err))
	}
}

func serveHTTP(cfg config.Config, store *service.TaskStore, logger *zap.Logger) {
	srv := http.Server{ // Создаем сервер
		Addr:         cfg.Addr,
		Handler:      handler.NewRouter(handler.NewTaskHandler(store, logger)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
