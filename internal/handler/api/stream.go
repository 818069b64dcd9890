package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"DomainFlip/internal/domain/models"
	applogger "DomainFlip/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamHub pushes finished scan results to connected WebSocket clients.
// It implements usecase.Notifier; NotifyScan never blocks the scanner.
type StreamHub struct {
	l       *applogger.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]chan *models.ScanResult
}

func NewStreamHub(l *applogger.Logger) *StreamHub {
	return &StreamHub{
		l:       l,
		clients: make(map[*websocket.Conn]chan *models.ScanResult),
	}
}

// NotifyScan fans the result out to all clients. Slow clients drop updates
// instead of stalling the scan.
func (h *StreamHub) NotifyScan(r *models.ScanResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- r:
		default:
			h.l.Warn("stream client lagging, dropping update",
				applogger.String("remote", conn.RemoteAddr().String()),
			)
		}
	}
}

// Serve upgrades the connection and streams scan results until the client
// disconnects.
func (h *StreamHub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ch := make(chan *models.ScanResult, 4)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	h.l.Info("stream client connected",
		applogger.String("remote", conn.RemoteAddr().String()),
	)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	// reader: only to detect close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return nil
		case r := <-ch:
			if err := conn.WriteJSON(r); err != nil {
				h.l.Warn("stream write failed", applogger.Error(err))
				return nil
			}
		}
	}
}
