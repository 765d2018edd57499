package httpserver

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/propshare-labs/propshare/internal/events"
	"go.uber.org/zap"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// EventStreamHandler streams domain events to websocket clients. Each
// connection gets its own bus subscription, so a slow client only drops
// its own events.
type EventStreamHandler struct {
	bus      *events.Bus
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewEventStreamHandler creates a new event stream handler.
func NewEventStreamHandler(bus *events.Bus, logger *zap.Logger) *EventStreamHandler {
	return &EventStreamHandler{
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// HandleStream handles GET /ws/events requests.
func (h *EventStreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket-upgrade-failed", zap.Error(err))
		return
	}

	h.logger.Info("event-stream-client-connected",
		zap.String("remote", conn.RemoteAddr().String()))
	WSConnectionsGauge.Inc()

	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	go h.writeLoop(conn, sub)
	h.readLoop(conn)
}

// readLoop drains client frames so close and ping control messages are
// processed. Client payloads are ignored.
func (h *EventStreamHandler) readLoop(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
		WSConnectionsGauge.Dec()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("event-stream-read-error", zap.Error(err))
			}
			return
		}
	}
}

func (h *EventStreamHandler) writeLoop(conn *websocket.Conn, sub <-chan *events.Event) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(wsWriteTimeout))
				return
			}

			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("event-stream-marshal-error",
					zap.Error(err),
					zap.String("type", ev.Type))
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			err = conn.WriteMessage(websocket.TextMessage, payload)
			if err != nil {
				h.logger.Debug("event-stream-write-error", zap.Error(err))
				return
			}
			WSEventsSentTotal.Inc()

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		}
	}
}
