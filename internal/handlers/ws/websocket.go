// internal/handlers/ws/websocket.go
package ws

import (
	"log"
	"net/http"

	"github.com/careshare/csh_backendl/internal/middleware"
	wsService "github.com/careshare/csh_backendl/internal/services/ws"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an admin dashboard connection and attaches it to
// the live hub.
func ServeWS(hub *wsService.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		client := &wsService.Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			UserID: userID,
		}
		hub.Register(client)

		go hub.WritePump(client)
		go hub.ReadPump(client)
	}
}
