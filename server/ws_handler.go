package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/cookiepedia/cookiepedia/services/jwt"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient wraps a websocket connection behind the registry's transport
// interface. gorilla connections allow one concurrent writer, so every
// write takes the mutex.
type wsClient struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func (w *wsClient) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *wsClient) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.conn.Close()
}

func (w *wsClient) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// handleWebsocket authenticates the token query parameter, registers the
// connection and pumps incoming events into the relay. A bad token still
// upgrades, then closes with a policy-violation frame so browser clients
// see a meaningful close code.
func (s *Server) handleWebsocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}

		token := c.Query("token")
		claims, err := jwt.ValidateAndGetClaims(token, s.Config.JWTSecret)
		if err != nil {
			closePolicyViolation(conn, "invalid or missing token")
			return
		}
		idValue, ok := claims["id"].(float64)
		if !ok {
			closePolicyViolation(conn, "invalid token claims")
			return
		}
		userID := uint(idValue)

		client := &wsClient{conn: conn}
		s.Registry.Register(userID, client)
		log.Printf("user %d connected", userID)

		defer func() {
			s.Registry.UnregisterConn(userID, client)
			client.Close()
			log.Printf("user %d disconnected", userID)
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			s.RelayService.HandleEvent(userID, raw)
		}
	}
}

func closePolicyViolation(conn *websocket.Conn, reason string) {
	frame := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	if err := conn.WriteMessage(websocket.CloseMessage, frame); err != nil {
		log.Printf("error writing close frame: %v", err)
	}
	conn.Close()
}
