package handler

import (
	"encoding/json"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/internal/pkg/serverutils"
	"smart-pdf-assistant/internal/service"
	internalWS "smart-pdf-assistant/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type SessionHandler struct {
	chatService service.IChatService
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewSessionHandler(chatService service.IChatService, hub *internalWS.Hub, log logger.ILogger) *SessionHandler {
	return &SessionHandler{
		chatService: chatService,
		hub:         hub,
		logger:      log,
	}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
	r.Get("/healthz", h.Health)
}

// ServeWs upgrades the page's connection and subscribes it to session frames.
func (h *SessionHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		initial, err := h.snapshotFrame()
		if err != nil {
			h.logger.Error(constant.LogModuleHub, "Failed to encode snapshot", map[string]interface{}{"error": err})
		}
		h.logger.Info(constant.LogModuleHub, "Starting WebSocket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
		internalWS.ServeWs(h.hub, conn, initial)
		h.logger.Info(constant.LogModuleHub, "WebSocket session ended", map[string]interface{}{"remote": conn.RemoteAddr().String()})
	})(c)
}

func (h *SessionHandler) Health(c *fiber.Ctx) error {
	s := h.chatService.Session()
	return c.JSON(serverutils.SuccessResponse("ok", dto.HealthResponse{
		State:   string(s.State),
		Version: s.Version,
		Clients: h.hub.ClientCount(),
	}))
}

func (h *SessionHandler) snapshotFrame() ([]byte, error) {
	return json.Marshal(dto.SessionEvent{
		Type:   dto.SessionEventType,
		Action: dto.SnapshotAction,
		Data:   dto.NewSessionResponse(h.chatService.Session()),
	})
}
