package dashboard

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Message is one dashboard broadcast frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one connected dashboard browser. Each client gets a buffered send
// queue; a client that cannot keep up is dropped rather than allowed to stall
// the broadcast loop.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected dashboard clients and fans broadcast
// messages out to all of them. All client-set mutation happens on the Run
// goroutine; the channels are the only cross-goroutine surface.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run owns the client set until ctx is canceled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug("dashboard client connected", zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.logger.Debug("dashboard client disconnected", zap.Int("clients", len(h.clients)))
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("dropping slow dashboard client")
				}
			}
		}
	}
}

// Broadcast fans a message out to every connected client. It never blocks the
// caller; when the broadcast queue is full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal dashboard message", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("dashboard broadcast queue full; dropping message", zap.String("type", msg.Type))
	}
}

// ServeClient registers the connection and pumps messages until either side
// closes. The flow is server-to-client only; inbound frames are read solely
// to detect disconnects.
func (h *Hub) ServeClient(conn *websocket.Conn) {
	client := &Client{conn: conn, send: make(chan []byte, 32)}
	h.register <- client

	done := make(chan struct{})
	go func() {
		defer close(done)
		for payload := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
		_ = conn.WriteMessage(websocket.CloseMessage, nil)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.unregister <- client
	<-done
	_ = conn.Close()
}
