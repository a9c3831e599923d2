package lobby

import (
	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
	"github.com/DoyleJ11/fake-artist-backend/internal/types"
)

type RoomFactory func(code string) *engine.Room

// Registry owns every room, every connection outbox and the index from
// connection to room. It is not safe for concurrent use; the hub serializes
// all access.
type Registry struct {
	rooms   map[string]*engine.Room
	outbox  map[string]chan types.ServerMessage
	roomOf  map[string]string
	newRoom RoomFactory
	log     *zap.Logger
}

func NewRegistry(newRoom RoomFactory, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		rooms:   make(map[string]*engine.Room),
		outbox:  make(map[string]chan types.ServerMessage),
		roomOf:  make(map[string]string),
		newRoom: newRoom,
		log:     log,
	}
}

// GetOrCreate is the only place rooms come from.
func (r *Registry) GetOrCreate(code string) *engine.Room {
	if room := r.rooms[code]; room != nil {
		return room
	}
	room := r.newRoom(code)
	r.rooms[code] = room
	r.log.Info("room created", zap.String("room", code))
	return room
}

func (r *Registry) Lookup(code string) (*engine.Room, bool) {
	room, ok := r.rooms[code]
	return room, ok
}

func (r *Registry) Remove(code string) {
	if _, ok := r.rooms[code]; !ok {
		return
	}
	delete(r.rooms, code)
	r.log.Info("room removed", zap.String("room", code))
}

func (r *Registry) Len() int { return len(r.rooms) }

func (r *Registry) Attach(connID string, out chan types.ServerMessage) {
	r.outbox[connID] = out
}

// Detach closes the connection's outbox. Safe to call twice.
func (r *Registry) Detach(connID string) {
	if ch, ok := r.outbox[connID]; ok {
		close(ch)
		delete(r.outbox, connID)
	}
}

// DetachAll closes every outbox, used on shutdown.
func (r *Registry) DetachAll() {
	for id := range r.outbox {
		r.Detach(id)
	}
}

func (r *Registry) Bind(connID, code string) { r.roomOf[connID] = code }

func (r *Registry) Unbind(connID string) { delete(r.roomOf, connID) }

func (r *Registry) RoomOf(connID string) (string, bool) {
	code, ok := r.roomOf[connID]
	return code, ok
}

func (r *Registry) Send(connID, event string, payload any) {
	ch, ok := r.outbox[connID]
	if !ok {
		return
	}
	select {
	case ch <- types.ServerMessage{Event: event, Data: payload}:
	default:
		// Client is slow/full - drop them.
		r.log.Warn("dropping slow client", zap.String("conn", connID), zap.String("event", event))
		r.Detach(connID)
	}
}

func (r *Registry) Broadcast(code, event string, payload any) {
	r.BroadcastExcept(code, "", event, payload)
}

func (r *Registry) BroadcastExcept(code, senderID, event string, payload any) {
	room, ok := r.rooms[code]
	if !ok {
		return
	}
	for _, id := range room.Members() {
		if id == senderID {
			continue
		}
		r.Send(id, event, payload)
	}
}

// Deliver fans out what a room produced.
func (r *Registry) Deliver(code string, out []engine.Outbound) {
	for _, o := range out {
		switch o.Audience {
		case engine.ToRoom:
			r.Broadcast(code, o.Event, o.Payload)
		case engine.ToOthers:
			r.BroadcastExcept(code, o.ConnID, o.Event, o.Payload)
		case engine.ToOne:
			r.Send(o.ConnID, o.Event, o.Payload)
		}
	}
}
