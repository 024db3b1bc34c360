package bootstrap

import (
	"context"
	"fmt"

	"smart-pdf-assistant/internal/config"
	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/controller"
	"smart-pdf-assistant/internal/handler"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/internal/repository/memory"
	"smart-pdf-assistant/internal/service"
	"smart-pdf-assistant/internal/view"
	"smart-pdf-assistant/internal/websocket"
	"smart-pdf-assistant/pkg/backend"
	pktNats "smart-pdf-assistant/pkg/nats"
	"smart-pdf-assistant/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger logger.ILogger
	Store  *store.Store

	// Controllers
	AssistantController controller.IAssistantController
	SessionHandler      *handler.SessionHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	wsLogger := logger.NewIsolatedLogger(cfg.App.WebsocketLogPath)
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	publisherService := service.NewPublisherService(cfg.Events.TransitionTopic, pubSub, sysLogger)

	// 3. Session state and the remote backend
	c.Store = store.New(store.WithSink(publisherService))
	be := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// 4. Infrastructure
	// Redis
	var rdb *redis.Client
	if cfg.Events.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.Events.RedisURL)
		if err != nil {
			sysLogger.Warn(constant.LogModuleStartup, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.Events.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn(constant.LogModuleStartup, "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// NATS
	var sink service.EventSink
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn(constant.LogModuleStartup, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// WebSocket Hub
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 5. Services
	uploadService := service.NewUploadService(c.Store, be, sysLogger)
	chatService := service.NewChatService(c.Store, be, sysLogger)
	viewerService := service.NewViewerService(c.Store, be, memory.NewPdfCache(cfg.Viewer.CacheTTL), sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.TransitionTopic, c.WebSocketHub, sink, sysLogger)

	// 6. Controllers
	page, err := view.NewPage()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	c.AssistantController = controller.NewAssistantController(uploadService, chatService, viewerService, page)
	c.SessionHandler = handler.NewSessionHandler(chatService, c.WebSocketHub, wsLogger)

	sysLogger.Info(constant.LogModuleStartup, "Container ready", map[string]interface{}{
		"backend": cfg.Backend.BaseURL,
		"redis":   rdb != nil,
		"nats":    sink != nil,
	})
	return c, nil
}

// Close releases the event bus and external connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
