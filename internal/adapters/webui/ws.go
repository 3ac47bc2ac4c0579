package webui

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 15 * time.Second
	subscriberSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// ServeWS upgrades the request and streams the page: first its snapshot, then
// live patches, each as one JSON text message.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, name string) error {
	page, ok := h.Lookup(name)
	if !ok {
		http.Error(w, "unknown page", http.StatusNotFound)
		return nil
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancelCtx := context.WithCancel(r.Context())
	defer cancelCtx()

	snapshot, patches, cancel := page.Subscribe(subscriberSize)
	defer cancel()

	h.logger.Debug(ctx, "Page subscriber connected", map[string]interface{}{"page": name})

	// Reader: only pongs and close frames are expected.
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer cancelCtx()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for _, p := range snapshot {
		if err := writeJSON(conn, p); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-patches:
			if !ok {
				h.logger.Warn(ctx, "Page subscriber fell behind, disconnecting", map[string]interface{}{"page": name})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "resync"), time.Now().Add(writeWait))
				return nil
			}
			if err := writeJSON(conn, p); err != nil {
				return err
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, p Patch) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(p)
}
