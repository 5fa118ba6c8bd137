package http

import (
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"waterdelivery/internal/notify"
)

// wsSession adapts one WebSocket connection to the push session contract.
// The mutex serializes writes; the websocket codec is not safe for
// concurrent senders.
type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSession) Send(event notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return websocket.JSON.Send(s.conn, event)
}

// ServeWS handles GET /ws. The connection is registered under the caller's
// identity for push delivery and stays registered until the peer closes it.
// A reconnect replaces the previous registration.
func (s *Server) ServeWS(ctx echo.Context) error {
	principal := principalFrom(ctx)

	websocket.Handler(func(conn *websocket.Conn) {
		session := &wsSession{conn: conn}

		s.registry.Register(principal.PartyID, session)
		defer s.registry.UnregisterSession(session)

		s.logger.Info("websocket connected",
			zap.String("party_id", principal.PartyID.String()))

		// Inbound frames are not part of the protocol; the read loop only
		// detects disconnects.
		for {
			var discard string
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				break
			}
		}

		s.logger.Info("websocket disconnected",
			zap.String("party_id", principal.PartyID.String()))
	}).ServeHTTP(ctx.Response(), ctx.Request())

	return nil
}
