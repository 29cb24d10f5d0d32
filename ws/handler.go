package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Idyll-Intelligent-Systems/UNIUN/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The signaling endpoint is open to any origin, like the rest of the
	// API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the request and runs the session pumps.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.log.WithError(err).Warn("websocket upgrade failed")
			return
		}

		session := newSession(hub, conn)
		hub.add(session)
		metrics.WSSessionOpened()

		go session.writePump()
		go session.readPump()

		session.greet()
	}
}
