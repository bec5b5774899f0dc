// Package transport owns the websocket side of a session: connection
// upgrade, the read loop feeding the room, and the bounded write queue that
// keeps one slow client from stalling everyone else.
package transport

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"paintchat/internal/logger"
	"paintchat/internal/room"
)

const writeWait = 10 * time.Second

// Options tunes per-connection behavior.
type Options struct {
	// IdentifyTimeout is how long a connection may sit without an accepted
	// identity claim before it is evicted.
	IdentifyTimeout time.Duration
	// SendBuffer is the outbound queue depth per connection; notifications
	// beyond it are dropped rather than blocking the room.
	SendBuffer int
}

// Service upgrades HTTP requests to websocket sessions and wires them into
// their room.
type Service struct {
	hub      *room.Hub
	opts     Options
	upgrader websocket.Upgrader
}

func NewService(hub *room.Hub, opts Options) *Service {
	if opts.IdentifyTimeout <= 0 {
		opts.IdentifyTimeout = time.Minute
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	return &Service{
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// HandleWS serves one client connection for the room named in the URL path.
func (s *Service) HandleWS(w http.ResponseWriter, req *http.Request) {
	roomName := mux.Vars(req)["room"]
	if roomName == "" {
		roomName = "lobby"
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(conn, s.opts.SendBuffer)
	rm := s.hub.GetOrCreate(roomName)
	sess := rm.Connect(c)

	// Connections that never manage an identity claim would otherwise leak.
	idle := time.AfterFunc(s.opts.IdentifyTimeout, func() {
		if !sess.Active() {
			logger.Info("evicting unidentified session",
				zap.String("room", roomName), zap.String("session", sess.ID))
			c.Kick("identify timeout")
		}
	})

	go c.writePump()

	for {
		mt, data, rerr := conn.ReadMessage()
		if rerr != nil {
			// A graceful close carries a code and reason from the client; an
			// abnormal one means the peer became unreachable.
			if ce, ok := rerr.(*websocket.CloseError); ok &&
				(ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway) {
				logger.Info("peer closed",
					zap.String("session", sess.ID), zap.String("reason", ce.Text))
			} else {
				logger.Warn("connection lost",
					zap.String("session", sess.ID), zap.Error(rerr))
			}
			break
		}
		if mt != websocket.TextMessage {
			continue
		}
		if herr := rm.HandleFrame(sess, string(data)); herr != nil {
			logger.Warn("terminating session",
				zap.String("room", roomName), zap.String("session", sess.ID),
				zap.Error(herr))
			break
		}
	}

	idle.Stop()
	rm.Disconnect(sess)
	c.shutdown()
	if n := c.droppedFrames(); n > 0 {
		logger.Warn("session dropped frames",
			zap.String("session", sess.ID), zap.Uint64("count", n))
	}
}

// client adapts one websocket connection to room.Peer.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	once    sync.Once
	dropped atomic.Uint64
}

func newClient(conn *websocket.Conn, buffer int) *client {
	return &client{conn: conn, send: make(chan []byte, buffer)}
}

// Send enqueues a frame without blocking. False means the queue was full and
// the frame was discarded.
func (c *client) Send(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Kick closes the connection with a policy-violation close frame. The read
// loop observes the close and runs the normal cleanup path.
func (c *client) Kick(reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = c.conn.Close()
}

// shutdown closes the send queue; the write pump drains what is left and
// closes the connection. Must only be called after the session has been
// disconnected from its room.
func (c *client) shutdown() {
	c.once.Do(func() { close(c.send) })
}

func (c *client) droppedFrames() uint64 {
	return c.dropped.Load()
}

func (c *client) writePump() {
	var werr error
	for frame := range c.send {
		if werr != nil {
			continue // keep draining so senders are never stuck
		}
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		werr = c.conn.WriteMessage(websocket.TextMessage, frame)
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = c.conn.Close()
}
