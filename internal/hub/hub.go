package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
	"github.com/DoyleJ11/fake-artist-backend/internal/lobby"
	"github.com/DoyleJ11/fake-artist-backend/internal/types"
)

type HubMsg interface{ isHubMsg() }

// Connect registers a connection's outbox before it can join a room.
type Connect struct {
	ConnID string
	Outbox chan types.ServerMessage
}

type Disconnect struct {
	ConnID string
}

type Inbound struct {
	ConnID string
	Cmd    types.Command
}

// TurnExpired is posted by the turn timer.
type TurnExpired struct {
	Code string
	Seq  uint64
}

// GetRoom replies with a copy of the room state, or nil.
type GetRoom struct {
	Code  string
	Reply chan *engine.View
}

// RoomExists reports whether a room is live without copying its state.
type RoomExists struct {
	Code  string
	Reply chan bool
}

type CountRooms struct {
	Reply chan int
}

type ShutdownHub struct{}

func (Connect) isHubMsg()     {}
func (Disconnect) isHubMsg()  {}
func (Inbound) isHubMsg()     {}
func (TurnExpired) isHubMsg() {}
func (GetRoom) isHubMsg()     {}
func (RoomExists) isHubMsg()  {}
func (CountRooms) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Options struct {
	// TurnTimeout advances a silent drawer's turn. Zero disables it.
	TurnTimeout time.Duration
	Logger      *zap.Logger
}

// Hub is the single goroutine that owns all game state. Every inbound event
// runs to completion before the next one is read.
type Hub struct {
	inbox  chan HubMsg
	reg    *lobby.Registry
	timers map[string]*turnTimer
	seq    uint64
	opts   Options
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub(parent context.Context, newRoom lobby.RoomFactory, opts Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:  make(chan HubMsg, 256),
		reg:    lobby.NewRegistry(newRoom, log),
		timers: make(map[string]*turnTimer),
		opts:   opts,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the hub loop has exited.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Send posts m unless ctx ends or the hub has stopped first.
func (h *Hub) Send(ctx context.Context, m HubMsg) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.inbox <- m:
		return true
	case <-ctx.Done():
		return false
	case <-h.done:
		return false
	}
}

func (h *Hub) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Connect:
				h.reg.Attach(msg.ConnID, msg.Outbox)

			case Disconnect:
				h.disconnect(msg.ConnID)

			case Inbound:
				h.dispatch(msg.ConnID, msg.Cmd)

			case TurnExpired:
				h.expire(msg)

			case GetRoom:
				room, ok := h.reg.Lookup(msg.Code)
				if !ok {
					msg.Reply <- nil
					break
				}
				v := room.View()
				msg.Reply <- &v

			case RoomExists:
				_, ok := h.reg.Lookup(msg.Code)
				msg.Reply <- ok

			case CountRooms:
				msg.Reply <- h.reg.Len()

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for code := range h.timers {
		h.stopTimer(code)
	}
	h.reg.DetachAll()
	h.cancel()
	h.log.Info("hub stopped")
}
