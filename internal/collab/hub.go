// Package collab hosts the room-scoped collaboration fan-out: websocket
// clients join per-document rooms, cursor and annotation messages fan out
// to every other member, and the event bus carries frames across bridge
// instances so membership can stay process-local.
package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/docstreamhq/docstream/internal/bus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 8 << 10
	sendQueueSize  = 32
)

// Hub owns room membership for one bridge instance. All membership
// mutations go through h.mu; frame delivery goes through per-client send
// queues so a slow socket cannot block the hub.
type Hub struct {
	bus      bus.Bus
	logger   *slog.Logger
	instance string
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	rooms  map[string]map[*client]struct{}
	relays map[string]*roomRelay
}

// roomRelay is one upstream bus subscription feeding a room's local
// members with frames published by other instances.
type roomRelay struct {
	sub    bus.Subscription
	cancel context.CancelFunc
}

type client struct {
	id    string
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}
}

func NewHub(b bus.Bus, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		bus:      b,
		logger:   logger,
		instance: uuid.NewString(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser origin is enforced by the CORS layer in front.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
		rooms:  make(map[string]map[*client]struct{}),
		relays: make(map[string]*roomRelay),
	}
}

// Close detaches every relay subscription. Connected sockets drain on
// their own as reads fail.
func (h *Hub) Close() error {
	h.cancel()
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, relay := range h.relays {
		_ = relay.sub.Close()
		relay.cancel()
		delete(h.relays, room)
	}
	return nil
}

// ServeHTTP upgrades the connection and runs the client until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &client{
		id:    uuid.NewString(),
		conn:  conn,
		send:  make(chan []byte, sendQueueSize),
		rooms: make(map[string]struct{}),
	}
	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.dropClient(c)
		close(c.send)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "client_id", c.id, "err", err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warn("dropping unparseable message", "client_id", c.id, "err", err)
			continue
		}
		if err := validateMessage(msg.Type, raw); err != nil {
			h.logger.Warn("dropping invalid message", "client_id", c.id, "type", msg.Type, "err", err)
			continue
		}

		switch msg.Type {
		case MsgJoinDocument:
			h.join(c, msg.DocumentID)
		case MsgCursorMove:
			data, _ := json.Marshal(cursorChangedData{ClientID: c.id, X: msg.X, Y: msg.Y})
			h.fanOut(c, msg.DocumentID, EventCursorChanged, data)
		case MsgAddAnnotation:
			data, _ := json.Marshal(annotationAddedData{ClientID: c.id, DocumentID: msg.DocumentID, Content: msg.Content})
			h.fanOut(c, msg.DocumentID, EventAnnotationAdded, data)
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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

// join puts c into the room for documentID; the first local member wires
// the cross-instance relay for that room.
func (h *Hub) join(c *client, documentID string) {
	room := roomName(documentID)

	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
	needsRelay := h.relays[room] == nil
	h.mu.Unlock()

	if needsRelay {
		h.startRelay(room, documentID)
	}
	h.logger.Debug("client joined room", "client_id", c.id, "room", room)
}

// fanOut delivers a frame to every local room member except the sender and
// publishes it on the bus so other instances deliver to theirs.
func (h *Hub) fanOut(sender *client, documentID, event string, data json.RawMessage) {
	frame, err := json.Marshal(outboundFrame{Event: event, Data: data})
	if err != nil {
		return
	}
	h.deliverLocal(roomName(documentID), sender, frame)

	envelope, err := json.Marshal(busEnvelope{
		Origin: h.instance,
		Room:   roomName(documentID),
		Event:  event,
		Data:   data,
	})
	if err != nil {
		return
	}
	if _, err := h.bus.Publish(h.ctx, RoomTopic(documentID), envelope); err != nil {
		h.logger.Warn("room broadcast publish failed", "room", roomName(documentID), "err", err)
	}
}

// deliverLocal enqueues frame for every member of room except skip. A full
// send queue drops the frame for that member; collaboration traffic is
// lossy by contract.
func (h *Hub) deliverLocal(room string, skip *client, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for member := range h.rooms[room] {
		if member == skip {
			continue
		}
		select {
		case member.send <- frame:
		default:
			h.logger.Warn("dropping frame for slow collaboration client", "client_id", member.id, "room", room)
		}
	}
}

// startRelay subscribes to the room topic and forwards frames published by
// other instances to local members.
func (h *Hub) startRelay(room, documentID string) {
	ctx, cancel := context.WithCancel(h.ctx)
	sub, err := h.bus.Subscribe(ctx, RoomTopic(documentID))
	if err != nil {
		cancel()
		h.logger.Error("room relay subscribe failed", "room", room, "err", err)
		return
	}

	h.mu.Lock()
	if h.relays[room] != nil {
		// Lost the race to another joiner.
		h.mu.Unlock()
		cancel()
		_ = sub.Close()
		return
	}
	h.relays[room] = &roomRelay{sub: sub, cancel: cancel}
	h.mu.Unlock()

	go func() {
		defer cancel()
		for payload := range sub.Events() {
			var env busEnvelope
			if err := json.Unmarshal(payload, &env); err != nil {
				h.logger.Warn("dropping malformed room envelope", "room", room, "err", err)
				continue
			}
			if env.Origin == h.instance {
				continue
			}
			frame, err := json.Marshal(outboundFrame{Event: env.Event, Data: env.Data})
			if err != nil {
				continue
			}
			h.deliverLocal(room, nil, frame)
		}
		if err := sub.Err(); err != nil {
			h.logger.Warn("room relay subscription ended", "room", room, "err", err)
		}
		h.mu.Lock()
		if relay := h.relays[room]; relay != nil && relay.sub == sub {
			delete(h.relays, room)
		}
		h.mu.Unlock()
	}()
}

// dropClient removes c from every room it joined; the last member out of a
// room tears down that room's relay.
func (h *Hub) dropClient(c *client) {
	var emptied []string

	h.mu.Lock()
	for room := range c.rooms {
		members := h.rooms[room]
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
			emptied = append(emptied, room)
		}
	}
	relays := make([]*roomRelay, 0, len(emptied))
	for _, room := range emptied {
		if relay := h.relays[room]; relay != nil {
			relays = append(relays, relay)
			delete(h.relays, room)
		}
	}
	h.mu.Unlock()

	for _, relay := range relays {
		_ = relay.sub.Close()
		relay.cancel()
	}
}
