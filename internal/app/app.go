package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"taskmanager/internal/config"
	"taskmanager/internal/handlers"
	"taskmanager/internal/logger"
	"taskmanager/internal/repository/inmemory"
	"taskmanager/internal/repository/postgres"
	"taskmanager/internal/service"
	"taskmanager/internal/worker"
)

const defaultRateLimit = 100

type App struct {
	config    *config.Config
	server    *http.Server
	sweeper   *worker.OverdueSweeper
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, logger.Sync)

	taskRepo, userRepo, err := a.initRepositories(ctx)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(taskRepo, userRepo, a.config.Validation.DueDatePolicy)
	userService := service.NewUserService(userRepo)

	taskHandler := handlers.NewTaskHandler(taskService, userService)
	userHandler := handlers.NewUserHandler(userService)
	router := handlers.NewRouter(taskHandler, userHandler, defaultRateLimit)

	a.server = &http.Server{
		Addr:         a.config.ServerAddr(),
		Handler:      router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}
	a.sweeper = worker.NewOverdueSweeper(taskService, a.config.Scheduler.Cron)

	return nil
}

func (a *App) initRepositories(ctx context.Context) (service.TaskRepository, service.UserRepository, error) {
	switch a.config.Repository.Type {
	case "inmemory":
		store := inmemory.NewStore()
		return store.Tasks(), store.Users(), nil

	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}

		pool, err := postgres.NewPool(ctx, a.config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("App: closing database pool")
			pool.Close()
		})
		return postgres.NewTaskRepo(pool), postgres.NewUserRepo(pool), nil

	default:
		return nil, nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

// Run serves HTTP and the sweep schedule until the context is
// cancelled or the server fails, then shuts everything down in
// reverse init order.
func (a *App) Run(ctx context.Context) error {
	if err := a.sweeper.Start(); err != nil {
		return fmt.Errorf("starting sweeper: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("App: server started on " + a.server.Addr)
		serverErr <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("App: shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: server shutdown failed", err)
	}
	a.sweeper.Stop(shutdownCtx)
	a.shutdown()
	return nil
}

func (a *App) shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
