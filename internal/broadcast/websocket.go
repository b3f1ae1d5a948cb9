package broadcast

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muhammadchandra19/marketsim/pkg/logger"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebsocketHandler serves the prices stream over a websocket. Each
// connection gets its own hub subscription; when the hub drops a slow
// subscriber the connection is closed.
type WebsocketHandler struct {
	hub    *Hub
	logger logger.Interface
}

// NewWebsocketHandler creates a new websocket handler.
func NewWebsocketHandler(hub *Hub, logger logger.Interface) *WebsocketHandler {
	return &WebsocketHandler{hub: hub, logger: logger}
}

// ServeHTTP upgrades the connection and streams messages until the
// client goes away or the subscription ends.
func (h *WebsocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), err, logger.NewField("remote", r.RemoteAddr))
		return
	}

	sub := h.hub.Subscribe()

	go h.readLoop(conn, sub)
	h.writeLoop(conn, sub)
}

// readLoop discards inbound frames; the stream is one-way. It exists to
// process control frames and to notice a dead peer.
func (h *WebsocketHandler) readLoop(conn *websocket.Conn, sub *Subscriber) {
	defer h.hub.Unsubscribe(sub)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WebsocketHandler) writeLoop(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeWait))
				return
			}

			payload, err := Encode(msg)
			if err != nil {
				h.logger.Error(err)
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
