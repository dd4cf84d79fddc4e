package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/shestoi/bookstore-inventory/internal/api/http"
	"github.com/shestoi/bookstore-inventory/internal/config"
	"github.com/shestoi/bookstore-inventory/internal/repository/memory"
	"github.com/shestoi/bookstore-inventory/internal/service"
	platformlogging "github.com/shestoi/bookstore-inventory/platform/logging"
	"github.com/shestoi/bookstore-inventory/platform/observability"
	platformshutdown "github.com/shestoi/bookstore-inventory/platform/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown Inventory Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Inventory Service
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	// Создаём logger
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "inventory",
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	buildLogger := logger.With(zap.String("op", op))
	buildLogger.Info("Building Inventory service", zap.String("http_addr", cfg.HTTPAddr))

	// Инициализируем observability (noop, если OTEL_ENABLED=false)
	otelShutdown, err := observability.Init(context.Background(), observability.Config{
		Enabled:               cfg.OtelEnabled,
		OTLPEndpoint:          cfg.OtelOTLPEndpoint,
		SamplingRatio:         cfg.OtelSamplingRatio,
		ServiceName:           "inventory",
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	// Хранилище живёт в памяти процесса: никакой долговечности нет намеренно,
	// состояние теряется при рестарте
	bookRepo := memory.NewMemoryRepository()

	// Создаём service слой с зависимостями
	inventoryService := service.NewInventoryService(bookRepo, logger)

	// Создаём HTTP handler и роутер
	handler := httpapi.NewHandler(inventoryService, logger)

	// Хранилище в памяти готово сразу после создания
	readiness := func() bool { return true }

	router := httpapi.NewRouter(handler, readiness, logger)

	// Создаём HTTP сервер
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Создаём shutdown manager
	// Функции выполняются в обратном порядке регистрации:
	// сначала перестаём принимать запросы, потом доотправляем телеметрию
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("observability", otelShutdown)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Inventory service", zap.String("addr", a.httpServer.Addr))
	a.logger.Info("Health check available", zap.String("url", "http://"+a.httpServer.Addr+"/health"))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Inventory service stopped")
	return nil
}
