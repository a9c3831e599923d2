package hub

import (
	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
	"github.com/DoyleJ11/fake-artist-backend/internal/types"
)

func (h *Hub) dispatch(connID string, cmd types.Command) {
	switch c := cmd.(type) {
	case types.JoinRoom:
		h.join(connID, c)
		return
	case types.Chat:
		h.inCurrentRoom(connID, func(room *engine.Room) []engine.Outbound {
			return room.Chat(connID, c.Text)
		})
		return
	case types.MouseMove:
		h.inCurrentRoom(connID, func(room *engine.Room) []engine.Outbound {
			return room.MoveCursor(connID, c.X, c.Y)
		})
		return
	}

	scoped, ok := cmd.(types.RoomScoped)
	if !ok {
		return
	}
	code := scoped.Room()
	room, ok := h.reg.Lookup(code)
	if !ok {
		h.log.Debug("event for unknown room", zap.String("room", code), zap.String("conn", connID))
		return
	}

	var out []engine.Outbound
	switch c := cmd.(type) {
	case types.DrawLine:
		out = room.RecordStroke(connID, engine.Stroke{X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2})
	case types.StartGame:
		out = room.StartGame(connID)
	case types.RestartGame:
		out = room.Restart(connID)
	case types.FinishStroke:
		out = room.FinishStroke(connID)
	case types.SubmitVote:
		out = room.SubmitVote(connID, c.TargetID)
	case types.FakeGuess:
		out = room.FinalGuess(connID, c.Guess)
	}
	h.reg.Deliver(code, out)
	h.syncTimer(code, room)
}

func (h *Hub) inCurrentRoom(connID string, fn func(*engine.Room) []engine.Outbound) {
	code, ok := h.reg.RoomOf(connID)
	if !ok {
		return
	}
	room, ok := h.reg.Lookup(code)
	if !ok {
		return
	}
	h.reg.Deliver(code, fn(room))
}

// join keeps a connection in at most one room: joining elsewhere leaves the
// previous room first.
func (h *Hub) join(connID string, c types.JoinRoom) {
	if prev, ok := h.reg.RoomOf(connID); ok {
		if prev == c.RoomCode {
			return
		}
		h.leave(connID, prev)
	}

	room := h.reg.GetOrCreate(c.RoomCode)
	h.reg.Bind(connID, c.RoomCode)
	p, out := room.Join(connID, c.PlayerName)
	h.log.Debug("player joined",
		zap.String("room", c.RoomCode),
		zap.String("conn", connID),
		zap.Bool("spectator", p.Spectator),
	)
	h.reg.Deliver(c.RoomCode, out)
}

func (h *Hub) leave(connID, code string) {
	h.reg.Unbind(connID)
	room, ok := h.reg.Lookup(code)
	if !ok {
		return
	}
	removed, out := room.Leave(connID)
	if !removed {
		return
	}
	if room.Empty() {
		h.stopTimer(code)
		h.reg.Remove(code)
		return
	}
	h.reg.Deliver(code, out)
	h.syncTimer(code, room)
}

// disconnect is idempotent.
func (h *Hub) disconnect(connID string) {
	if code, ok := h.reg.RoomOf(connID); ok {
		h.leave(connID, code)
	}
	h.reg.Detach(connID)
}
