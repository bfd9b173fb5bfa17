package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// wsRequest is a command sent by the client.
type wsRequest struct {
	Action    string `json:"action"` // "move", "undo", "reset" or "state"
	Direction string `json:"direction,omitempty"`
}

// wsMessage is sent after every command. Error is set when the command
// was rejected; the game state is then unchanged.
type wsMessage struct {
	Event string        `json:"event"`
	Error string        `json:"error,omitempty"`
	Game  *gameResponse `json:"game,omitempty"`
}

// wsClient is one WebSocket connection bound to a session.
type wsClient struct {
	server  *Server
	session *Session
	conn    *websocket.Conn
	send    chan wsMessage
	done    chan struct{} // Closed when writePump exits
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	s.logger.Debug("websocket connected", "session", sess.ID)

	c := &wsClient{
		server:  s,
		session: sess,
		conn:    conn,
		send:    make(chan wsMessage, 16),
		done:    make(chan struct{}),
	}

	snap := sess.Snapshot()
	c.send <- c.message("state", snap, nil)

	go c.writePump()
	c.readPump()
}

// readPump handles commands until the connection fails. It owns the send
// channel and closes it on return.
func (c *wsClient) readPump() {
	defer func() {
		close(c.send)
		c.server.logger.Debug("websocket disconnected", "session", c.session.ID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck // a failed deadline surfaces on read
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req wsRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Warn("websocket read failed", "session", c.session.ID, "error", err)
			}
			return
		}
		select {
		case c.send <- c.handle(req):
		case <-c.done:
			return
		}
	}
}

// handle runs one command.
func (c *wsClient) handle(req wsRequest) wsMessage {
	s := c.server
	switch req.Action {
	case "move":
		snap, result, err := s.move(c.session, req.Direction)
		if err != nil {
			return wsMessage{Event: "error", Error: err.Error()}
		}
		return c.message("moved", snap, &result)
	case "undo":
		return c.message("undone", s.undo(c.session), nil)
	case "reset":
		snap, err := s.reset(c.session)
		if err != nil {
			return wsMessage{Event: "error", Error: err.Error()}
		}
		return c.message("reset", snap, nil)
	case "state", "":
		return c.message("state", c.session.Snapshot(), nil)
	default:
		return wsMessage{Event: "error", Error: "unknown action " + req.Action}
	}
}

func (c *wsClient) message(event string, snap t2048.Snapshot, result *t2048.MoveResult) wsMessage {
	resp := newGameResponse(c.session, snap, result)
	return wsMessage{Event: event, Game: &resp}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // a failed deadline surfaces on write
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck // peer may be gone
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // a failed deadline surfaces on write
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
