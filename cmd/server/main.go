package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/tasknest/backend/api/handler"
	"github.com/tasknest/backend/internal/config"
	"github.com/tasknest/backend/internal/infrastructure/gemini"
	"github.com/tasknest/backend/internal/infrastructure/groq"
	"github.com/tasknest/backend/internal/middleware"
	"github.com/tasknest/backend/internal/router"
	"github.com/tasknest/backend/internal/services/lifecycle"
	"github.com/tasknest/backend/pkg/httpcontext"
	"github.com/tasknest/backend/pkg/logger"
	"github.com/tasknest/backend/repository/memory"
	"github.com/tasknest/backend/usecase"
	assistantUC "github.com/tasknest/backend/usecase/assistant"
	noteUC "github.com/tasknest/backend/usecase/note"
	profileUC "github.com/tasknest/backend/usecase/profile"
	taskUC "github.com/tasknest/backend/usecase/task"
)

// gateway bundles the completion port with its configuration probe.
type gateway interface {
	usecase.CompletionGateway
	Configured() bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)
	manager.Register("logger", func(context.Context) error {
		return zapLogger.Sync()
	})

	store := memory.NewStore()
	taskRepo := memory.NewTaskRepository(store)
	noteRepo := memory.NewNoteRepository(store)
	profileRepo := memory.NewProfileRepository(store)
	chatRepo := memory.NewChatLogRepository(store)

	var ai gateway
	switch cfg.AI.Provider {
	case "groq":
		ai = groq.NewClient(groq.Config{
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.Model,
			BaseURL:    cfg.AI.BaseURL,
			MaxRetries: cfg.AI.MaxRetries,
		}, zapLogger)
	default:
		ai = gemini.NewClient(gemini.Config{
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.Model,
			BaseURL:    cfg.AI.BaseURL,
			Timeout:    cfg.AI.Timeout,
			MaxRetries: cfg.AI.MaxRetries,
			RetryDelay: cfg.AI.RetryDelay,
		}, zapLogger)
	}
	if !ai.Configured() {
		zapLogger.Warn("AI credential missing, AI endpoints will fail",
			zap.String("provider", cfg.AI.Provider))
	}

	taskUseCase := taskUC.New(taskRepo, noteRepo, zapLogger)
	noteUseCase := noteUC.New(taskRepo, noteRepo, zapLogger)
	profileUseCase := profileUC.New(profileRepo, taskUseCase, zapLogger)
	assistantUseCase := assistantUC.New(taskRepo, noteRepo, chatRepo, ai, assistantUC.Config{
		RecommendMaxTokens: cfg.AI.RecommendMaxTokens,
		ChatMaxTokens:      cfg.AI.ChatMaxTokens,
	}, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	aiCtxAdapter := httpcontext.NewAdapter(cfg.Context.AICallTimeout)

	handlers := router.Handlers{
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Note:      apiHandler.NewNoteHandler(noteUseCase, ctxAdapter, zapLogger),
		Assistant: apiHandler.NewAssistantHandler(assistantUseCase, aiCtxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(store, ai, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      middleware.CORS(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
