package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/widget"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Any origin; the route sits behind AuthMiddleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is an operation sent by a WebSocket client.
type clientMessage struct {
	Op      string `json:"op"` // toggle, filter, collapse, expand
	Path    string `json:"path"`
	Checked bool   `json:"checked"`
	Query   string `json:"query"`
}

// errorMessage is pushed to the client when one of its operations fails.
type errorMessage struct {
	Kind  string `json:"kind"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// handleEvents streams session events over a WebSocket and applies
// operations the client sends back. Every client, including the sender,
// sees the resulting events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.tree(w, r)
	if !ok {
		return
	}
	// Subscribe before the handshake completes so no event is missed.
	events, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "tree_id", sess.ID, "error", err)
		return
	}
	defer conn.Close()

	log := s.log.With("tree_id", sess.ID, "remote", r.RemoteAddr)
	log.Info("event stream opened")
	defer log.Info("event stream closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	replies := make(chan errorMessage, 8)
	go func() {
		defer cancel()
		s.readClient(ctx, conn, sess, replies)
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		var msg any
		select {
		case <-ctx.Done():
			return
		case e, open := <-events:
			if !open {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "tree deleted"),
					time.Now().Add(wsWriteWait))
				return
			}
			msg = e
		case reply := <-replies:
			msg = reply
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("websocket write failed", "error", err)
			return
		}
	}
}

// readClient applies client operations until the connection closes.
func (s *Server) readClient(ctx context.Context, conn *websocket.Conn, sess *session.Session, replies chan<- errorMessage) {
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.apply(sess, msg); err != nil {
			select {
			case replies <- errorMessage{Kind: "error", Op: msg.Op, Error: err.Error()}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Server) apply(sess *session.Session, msg clientMessage) error {
	return sess.Do(func(wd *widget.Widget) error {
		switch msg.Op {
		case "toggle":
			start := time.Now()
			if err := wd.Toggle(msg.Path, msg.Checked); err != nil {
				return err
			}
			s.toggles.Record(time.Since(start))
			return nil
		case "filter":
			wd.Filter(msg.Query)
			return nil
		case "collapse":
			return wd.Collapse(msg.Path)
		case "expand":
			return wd.Expand(msg.Path)
		default:
			return errUnknownOp(msg.Op)
		}
	})
}
