package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 16
)

// Server pushes reload notifications to connected browsers
type Server struct {
	upgrader websocket.Upgrader
	clients  map[string]*Client
	mu       sync.RWMutex
	wg       sync.WaitGroup
	closed   bool
	log      *zap.Logger
}

// Client is one connected browser tab
type Client struct {
	ID        string
	conn      *websocket.Conn
	send      chan []byte
	closeChan chan struct{}
	closeOnce sync.Once
}

// NewServer creates a live reload server
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			// dev only, any origin may connect
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]*Client),
		log:     log.Named("live"),
	}
}

// HandleWebSocket upgrades the request and registers the browser
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:        uuid.NewString(),
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		closeChan: make(chan struct{}),
	}
	// queued ahead of any broadcast
	s.enqueue(client, Message{Type: MessageHello, ID: client.ID})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[client.ID] = client
	s.wg.Add(2)
	s.mu.Unlock()

	s.log.Debug("Client connected", zap.String("client", client.ID))

	go func() {
		defer s.wg.Done()
		s.writer(client)
	}()
	go func() {
		defer s.wg.Done()
		s.reader(client)
	}()
}

// Broadcast sends msg to every connected browser and returns how many
// clients it was queued for
func (s *Server) Broadcast(msg Message) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sent := 0
	for _, c := range s.clients {
		if s.enqueue(c, msg) {
			sent++
		}
	}
	return sent
}

// Reload tells browsers that files changed
func (s *Server) Reload(files ...string) int {
	return s.Broadcast(Message{Type: MessageReload, Files: files})
}

// Error tells browsers that a rebuild failed
func (s *Server) Error(err error) int {
	return s.Broadcast(Message{Type: MessageError, Error: err.Error()})
}

// Clients returns the number of connected browsers
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects every browser and waits for their goroutines to exit
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	s.wg.Wait()
}

func (s *Server) enqueue(c *Client, msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("Failed to encode message", zap.Error(err))
		return false
	}
	select {
	case c.send <- data:
		return true
	case <-c.closeChan:
		return false
	default:
		s.log.Warn("Client send buffer full, dropping message",
			zap.String("client", c.ID), zap.String("type", string(msg.Type)))
		return false
	}
}

func (s *Server) remove(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.ID)
	s.mu.Unlock()
	c.close()
}

// reader drains incoming frames so control messages are processed and
// disconnects are noticed
func (s *Server) reader(c *Client) {
	defer s.remove(c)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("Client closed unexpectedly", zap.String("client", c.ID), zap.Error(err))
			}
			s.log.Debug("Client disconnected", zap.String("client", c.ID))
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug("Ignoring malformed message", zap.String("client", c.ID))
			continue
		}
		if msg.Type == MessageHello {
			s.enqueue(c, Message{Type: MessageHello, ID: c.ID})
		}
	}
}

func (s *Server) writer(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.Debug("Write failed", zap.String("client", c.ID), zap.Error(err))
				c.close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.closeChan:
			return
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closeChan)
		c.conn.Close()
	})
}
