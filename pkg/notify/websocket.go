package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"liyu1981.xyz/consumable-wear-service/pkg/common"
	"liyu1981.xyz/consumable-wear-service/pkg/wear"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12 // 4 KB
	sendBufSize = 16
)

type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type wsClient struct {
	conn    *websocket.Conn
	company string
	send    chan []byte
}

// Hub pushes alerts to the websocket subscribers of a company. A slow
// subscriber whose buffer is full is disconnected rather than waited on.
type Hub struct {
	mu       sync.Mutex
	clients  map[*wsClient]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: map[*wsClient]struct{}{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Clients counts the subscribers of company, or all of them when company is blank.
func (h *Hub) Clients(company string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for c := range h.clients {
		if company == "" || c.company == company {
			n++
		}
	}
	return n
}

// Notify queues the alert for every subscriber of its company. Having no
// subscriber is not a failure.
func (h *Hub) Notify(ctx context.Context, alert wear.Alert) error {
	logger := common.GetCategoryLogger(common.LoggerNameNotifier, common.LoggerCategoryWearNotify)

	payload, err := json.Marshal(wsEnvelope{Type: "alert", Data: alert})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if c.company != alert.Company {
			continue
		}
		select {
		case c.send <- payload:
		default:
			logger.Warn("Dropping slow websocket subscriber", zap.String("company", c.company))
			h.removeLocked(c)
		}
	}
	return nil
}

// ServeWS upgrades the request and streams alerts of company until the
// peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, company string) {
	logger := common.GetCategoryLogger(common.LoggerNameNotifier, common.LoggerCategoryWearNotify)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &wsClient{conn: conn, company: company, send: make(chan []byte, sendBufSize)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	logger.Info("Websocket subscriber connected", zap.String("company", company))

	go h.writeLoop(c)
	h.readLoop(c)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *wsClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) readLoop(c *wsClient) {
	logger := common.GetCategoryLogger(common.LoggerNameNotifier, common.LoggerCategoryWearNotify)

	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Info("Websocket subscriber gone", zap.String("company", c.company), zap.Error(err))
			return
		}
	}
}

func (h *Hub) writeLoop(c *wsClient) {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
