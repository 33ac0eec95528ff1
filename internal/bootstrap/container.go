package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"pdf-explainer-be/internal/config"
	"pdf-explainer-be/internal/controller"
	"pdf-explainer-be/internal/handler"
	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/internal/repository/memory"
	"pdf-explainer-be/internal/service"
	"pdf-explainer-be/internal/websocket"
	"pdf-explainer-be/pkg/explainer/factory"
	"pdf-explainer-be/pkg/progress"
)

type Container struct {
	// Controllers
	UploadController  controller.IUploadController
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Backend provider
	provider, err := factory.NewProvider(cfg.Backend.Provider, cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize explainer provider: %v", err)
	}
	log.Printf("[INFO] Using explainer provider: %s (%s)", cfg.Backend.Provider, cfg.Backend.BaseURL)

	// 4. In-memory session store
	sessionStore := memory.NewSessionStore()

	// 5. Progress fan-out: hub consumes every simulator frame
	hub := websocket.NewHub(sysLogger)
	go hub.Run()
	simulator := progress.NewSimulator(cfg.Progress.TickInterval, hub.PublishFrame)

	// 6. Services
	uploadService := service.NewUploadService(provider, sessionStore, sysLogger)
	sessionService := service.NewSessionService(sessionStore, sysLogger)
	chatService := service.NewChatService(sessionStore, pubSub, cfg.App.ExchangeTopicName, simulator, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ExchangeTopicName,
		provider,
		sessionStore,
		simulator,
		cfg.Backend.DispatchDelay,
		sysLogger,
	)

	return &Container{
		UploadController:  controller.NewUploadController(uploadService),
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService),
		ConsumerService:   consumerService,
		ProgressHandler:   handler.NewProgressHandler(hub, sysLogger),
		WebSocketHub:      hub,
		Logger:            sysLogger,
	}
}
