package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aryanpatil97/Blockchain-Voting/internal/api/interfaces"
	"github.com/aryanpatil97/Blockchain-Voting/internal/api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens in the CORS middleware ahead of the
		// upgrade.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// EventFeed streams committed ledger facts to a WebSocket client. The feed
// starts at subscription time; historical facts come from the audit store
// endpoints.
func EventFeed(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			services.GetLogger().Error("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		services.GetLogger().Info("Event feed connection established - client_ip: %s", c.ClientIP())

		events, cancel := services.System().SubscribeEvents(100)
		defer cancel()

		// Reader goroutine only services control frames and detects close.
		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			conn.SetPongHandler(func(string) error {
				conn.SetReadDeadline(time.Now().Add(60 * time.Second))
				return nil
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						services.GetLogger().Error("WebSocket error: %v", err)
					}
					return
				}
			}
		}()

		pingTicker := time.NewTicker(30 * time.Second)
		defer pingTicker.Stop()

		hello := models.WebSocketMessage{
			Type: "feed_connected",
			Data: gin.H{
				"paused":    services.System().IsPaused(),
				"elections": services.System().ElectionCount(),
			},
			Timestamp: time.Now().Unix(),
		}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(hello); err != nil {
			return
		}

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}

				msg := models.WebSocketMessage{
					Type:      string(ev.Type),
					Data:      ev,
					Timestamp: ev.Timestamp.Unix(),
				}
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					services.GetLogger().Error("WebSocket write error: %v", err)
					return
				}

			case <-pingTicker.C:
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}

			case <-done:
				services.GetLogger().Info("Event feed client disconnected")
				return

			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
