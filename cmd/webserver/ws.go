package main

import (
	"log"
	"net/http"
	"sync"

	"quizshow"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// wsMessage is pushed to every client of a play session
type wsMessage struct {
	Type      string             `json:"type"` // state, tick, sound, error
	State     *quizshow.Snapshot `json:"state,omitempty"`
	Remaining int                `json:"remaining,omitempty"`
	Total     int                `json:"total,omitempty"`
	Cue       *quizshow.Cue      `json:"cue,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// clientMessage is what a browser may send over the socket
type clientMessage struct {
	Type  string `json:"type"` // start, answer, lifeline, walkaway
	Index *int   `json:"index,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan any
}

// hub fans messages out to the sockets of one play session. Slow clients
// miss messages rather than block the game.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

func (h *hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) broadcast(msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			quizshow.VerboseLog("Dropping message for slow websocket client")
		}
	}
}

// sendTo queues msg for c if it is still registered
func (h *hub) sendTo(c *client, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ps, ok := s.currentPlay(r)
	if !ok {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan any, 32),
	}
	if !ps.hub.add(c) {
		_ = conn.Close()
		return
	}

	state := ps.game.Snapshot().Masked()
	ps.hub.sendTo(c, wsMessage{Type: "state", State: &state})

	go c.writePump()
	c.readPump(s, ps)
}

func (c *client) readPump(s *Server, ps *PlaySession) {
	defer func() {
		ps.hub.remove(c)
		_ = c.conn.Close()
	}()

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		ps.touch()

		switch msg.Type {
		case "start":
			s.startGame(ps)
		case "answer":
			if msg.Index != nil {
				ps.game.SelectAnswer(*msg.Index)
			}
		case "lifeline":
			kind, ok := quizshow.ParseLifeline(msg.Kind)
			if !ok {
				ps.hub.sendTo(c, wsMessage{Type: "error", Error: "unknown lifeline " + msg.Kind})
				continue
			}
			s.useLifeline(ps, kind)
		case "walkaway":
			ps.game.WalkAway()
		default:
			// ignore unknown types
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
