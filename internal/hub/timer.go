package hub

import (
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
)

type turnTimer struct {
	seq        uint64
	generation int
	timer      *time.Timer
}

// syncTimer arms a timer for the room's live turn, if turn timeouts are on.
func (h *Hub) syncTimer(code string, room *engine.Room) {
	if h.opts.TurnTimeout <= 0 {
		return
	}
	gen, drawing := room.Turn()
	tt := h.timers[code]
	if !drawing {
		h.stopTimer(code)
		return
	}
	if tt != nil && tt.generation == gen {
		return
	}
	h.stopTimer(code)

	h.seq++
	seq := h.seq
	h.timers[code] = &turnTimer{
		seq:        seq,
		generation: gen,
		timer: time.AfterFunc(h.opts.TurnTimeout, func() {
			select {
			case h.inbox <- TurnExpired{Code: code, Seq: seq}:
			case <-h.ctx.Done():
			}
		}),
	}
}

func (h *Hub) stopTimer(code string) {
	if tt := h.timers[code]; tt != nil {
		tt.timer.Stop()
		delete(h.timers, code)
	}
}

func (h *Hub) expire(msg TurnExpired) {
	tt := h.timers[msg.Code]
	if tt == nil || tt.seq != msg.Seq {
		return
	}
	delete(h.timers, msg.Code)

	room, ok := h.reg.Lookup(msg.Code)
	if !ok {
		return
	}
	h.log.Debug("turn timed out", zap.String("room", msg.Code), zap.Int("generation", tt.generation))
	h.reg.Deliver(msg.Code, room.ExpireTurn(tt.generation))
	h.syncTimer(msg.Code, room)
}
