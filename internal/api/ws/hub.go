package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"ludo-server/internal/auth"
	"ludo-server/internal/room"
	"ludo-server/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
	maxMessage = 4096
)

// Frame is the envelope of every message on the socket, in both directions.
type Frame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
	Room   string          `json:"room,omitempty"`
	Seq    uint64          `json:"seq,omitempty"`
}

type client struct {
	conn      *websocket.Conn
	sessionID string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// deliver queues b without blocking and reports false if the client is
// gone or too slow to keep up.
func (c *client) deliver(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub fans room notifications out to subscribed sockets. Publish never
// touches the network: it appends to a queue that Run drains in order.
type Hub struct {
	qmu    sync.Mutex
	queue  []shared.Notification
	signal chan struct{}

	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[*client]string

	roomManager RoomManager
	upgrader    websocket.Upgrader
}

func NewHub(roomManager RoomManager, allowedOrigins []string) *Hub {
	h := &Hub{
		signal:      make(chan struct{}, 1),
		rooms:       make(map[string]map[*client]struct{}),
		clients:     make(map[*client]string),
		roomManager: roomManager,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Publish implements room.Broadcaster.
func (h *Hub) Publish(n shared.Notification) {
	h.qmu.Lock()
	h.queue = append(h.queue, n)
	h.qmu.Unlock()
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

// Run delivers queued notifications until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.signal:
		}
		h.drain()
	}
}

// drain dispatches everything queued so far.
func (h *Hub) drain() {
	h.qmu.Lock()
	batch := h.queue
	h.queue = nil
	h.qmu.Unlock()
	for _, n := range batch {
		h.dispatch(n)
	}
}

func (h *Hub) dispatch(n shared.Notification) {
	data, err := json.Marshal(n.Payload)
	if err != nil {
		log.Printf("ws: marshal %s for %s: %v", n.Kind, n.RoomCode, err)
		return
	}
	msg, _ := json.Marshal(Frame{Action: string(n.Kind), Data: data, Room: n.RoomCode, Seq: n.Seq})

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[n.RoomCode] {
		if !c.deliver(msg) {
			log.Printf("ws: dropping slow client %s", c.sessionID)
			h.detachLocked(c)
			c.close()
		}
	}
	if n.Kind == shared.KindRoomClosed {
		for c := range h.rooms[n.RoomCode] {
			h.detachLocked(c)
		}
		delete(h.rooms, n.RoomCode)
	}
}

// Subscribers reports how many sockets follow code.
func (h *Hub) Subscribers(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

func (h *Hub) subscribe(c *client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[*client]struct{})
	}
	h.rooms[code][c] = struct{}{}
	h.clients[c] = code
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *client) {
	code, ok := h.clients[c]
	if !ok {
		return
	}
	delete(h.clients, c)
	if subs, ok := h.rooms[code]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.rooms, code)
		}
	}
}

// HandleWS upgrades the request and serves commands for the caller's
// session. It expects auth.SessionMiddleware to have run.
func (h *Hub) HandleWS(c *gin.Context) {
	sid := auth.SessionID(c)
	if sid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	// A freshly minted session must reach the client through the handshake.
	hdr := http.Header{}
	if tok := c.Writer.Header().Get(auth.TokenHeader); tok != "" {
		hdr.Set(auth.TokenHeader, tok)
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, hdr)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	cl := &client{conn: conn, sessionID: sid, send: make(chan []byte, sendBuffer)}
	go cl.writePump()

	h.connect(cl)

	defer func() {
		h.unsubscribe(cl)
		cl.close()
	}()
	h.readPump(cl)
}

func (h *Hub) readPump(cl *client) {
	cl.conn.SetReadLimit(maxMessage)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in Frame
		if err := cl.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read from %s: %v", cl.sessionID, err)
			}
			return
		}
		h.handle(cl, in)
	}
}

func (h *Hub) handle(cl *client, in Frame) {
	var cmd room.Command
	if len(in.Data) > 0 {
		if err := json.Unmarshal(in.Data, &cmd); err != nil {
			h.replyError(cl, &room.Error{Kind: room.KindInvalidArgument, Reason: "BAD_FRAME", Message: err.Error()})
			return
		}
	}
	cmd.Type = room.CommandType(in.Action)

	res, err := h.roomManager.Execute(cl.sessionID, cmd)
	if err != nil {
		h.replyError(cl, err)
		return
	}

	code := ""
	if res.Room != nil {
		code = res.Room.Code
	}
	switch cmd.Type {
	case room.CmdCreateRoom, room.CmdJoinRoom:
		h.subscribe(cl, code)
		// Notifications dispatched before the subscription existed are
		// covered by a snapshot taken after it.
		if v, ok := h.roomManager.RoomBySession(cl.sessionID); ok {
			res.Room = &v
			res.Seq = v.Seq
		}
	case room.CmdLeaveRoom:
		h.unsubscribe(cl)
	}
	h.reply(cl, Frame{Action: in.Action, Room: code, Seq: res.Seq}, res)
}

// connect subscribes a new socket to its session's room, if any, and
// greets it with a snapshot taken after subscribing.
func (h *Hub) connect(cl *client) {
	v, ok := h.roomManager.RoomBySession(cl.sessionID)
	if !ok {
		h.reply(cl, Frame{Action: "connected"}, nil)
		return
	}
	h.subscribe(cl, v.Code)
	if fresh, ok := h.roomManager.RoomBySession(cl.sessionID); ok {
		v = fresh
	}
	h.reply(cl, Frame{Action: "connected", Room: v.Code, Seq: v.Seq}, v)
}

// reply sends v to the caller only. f.Seq lets the client order the reply
// against room broadcasts: frames with a higher seq are newer.
func (h *Hub) reply(cl *client, f Frame, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws: marshal %s reply: %v", f.Action, err)
		return
	}
	f.Data = data
	msg, _ := json.Marshal(f)
	cl.deliver(msg)
}

func (h *Hub) replyError(cl *client, err error) {
	var re *room.Error
	if !errors.As(err, &re) {
		log.Printf("ws: unexpected error for %s: %v", cl.sessionID, err)
		re = &room.Error{Kind: "internal", Reason: "INTERNAL", Message: "internal error"}
	}
	h.reply(cl, Frame{Action: "error"}, re)
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
