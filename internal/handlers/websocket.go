// internal/handlers/websocket.go
package handlers

import (
	"log"
	"net/http"

	"github.com/evn/sop_backendl/internal/middleware"
	"github.com/evn/sop_backendl/internal/services/ws"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWSHandler подключает клиента к рассылке событий обновления данных.
func ServeWSHandler(manager *ws.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.GetUserIDFromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Ошибка апгрейда websocket: %v", err)
			return
		}

		client := &ws.Client{
			Conn:   conn,
			Send:   make(chan []byte, 16),
			UserID: userID,
		}
		manager.Register(client)

		go manager.WritePump(client)
		go manager.ReadPump(client)
	}
}
