package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/student-portal/internal/auth"
	"github.com/spec-kit/student-portal/internal/config"
	"github.com/spec-kit/student-portal/internal/domain"
	"github.com/spec-kit/student-portal/internal/notify"
	"github.com/spec-kit/student-portal/internal/observability"
)

const writeWait = 10 * time.Second

// NotificationsHandler serves the persistent notification channel. Each
// accepted websocket is authenticated, registered, then served by a read
// pump (liveness only) and a write pump (dispatcher pushes) until either
// side fails; the connection is deregistered on every exit path.
type NotificationsHandler struct {
	gate     *auth.AccessGate
	registry *notify.Registry
	metrics  *observability.Metrics
	cfg      config.NotifyConfig
	logger   *zap.Logger
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(gate *auth.AccessGate, registry *notify.Registry, metrics *observability.Metrics, cfg config.NotifyConfig, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{gate: gate, registry: registry, metrics: metrics, cfg: cfg, logger: logger}
}

// Upgrade gates the route: only genuine websocket upgrade requests pass.
func (h *NotificationsHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the websocket handler for the notification route.
func (h *NotificationsHandler) Serve() fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		h.session(ws)
	})
}

type handshakeFrame struct {
	Token string `json:"token"`
}

func (h *NotificationsHandler) session(ws *websocket.Conn) {
	defer ws.Close()

	identity, err := h.handshake(ws)
	if err != nil {
		h.logger.Info("notification handshake rejected", zap.Error(err))
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
		return
	}

	conn := notify.NewConnection(identity.SubjectID, h.cfg.SendBuffer)
	h.registry.Register(identity.SubjectID, conn)
	h.metrics.ConnectionOpened()

	logger := h.logger.With(
		zap.Int("subject_id", identity.SubjectID),
		zap.String("role", string(identity.Role)))
	logger.Info("notification session open")

	defer func() {
		conn.Close()
		h.registry.Deregister(identity.SubjectID, conn)
		h.metrics.ConnectionClosed()
		logger.Info("notification session closed")
	}()

	go h.writePump(ws, conn, logger)
	h.readPump(ws, conn)
}

// handshake authenticates within the configured timeout. A token query
// parameter wins; otherwise the first frame must carry one.
func (h *NotificationsHandler) handshake(ws *websocket.Conn) (domain.Identity, error) {
	if token := ws.Query("token"); token != "" {
		return h.gate.AuthenticateToken(token)
	}

	if err := ws.SetReadDeadline(time.Now().Add(h.cfg.HandshakeTimeout())); err != nil {
		return domain.Identity{}, err
	}
	_, raw, err := ws.ReadMessage()
	if err != nil {
		return domain.Identity{}, err
	}

	var hello handshakeFrame
	if err := json.Unmarshal(raw, &hello); err != nil || hello.Token == "" {
		return domain.Identity{}, errors.New("handshake frame missing token")
	}
	return h.gate.AuthenticateToken(hello.Token)
}

// readPump owns the inbound side. The channel is push-only from the
// server's point of view, so inbound frames count only as liveness.
func (h *NotificationsHandler) readPump(ws *websocket.Conn, conn *notify.Connection) {
	defer conn.Close()

	idle := h.cfg.IdleTimeout()
	_ = ws.SetReadDeadline(time.Now().Add(idle))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(idle))
	})

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(idle))
	}
}

// writePump owns the outbound side: dispatcher frames and keepalive pings.
// Single consumer of the connection's outbound channel, so frames hit the
// transport in dispatch order.
func (h *NotificationsHandler) writePump(ws *websocket.Conn, conn *notify.Connection, logger *zap.Logger) {
	pingPeriod := h.cfg.IdleTimeout() * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		_ = ws.Close()
	}()

	for {
		select {
		case <-conn.Done():
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-conn.Outbound():
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Warn("notification write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
