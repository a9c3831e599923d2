package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/fake-artist-backend/internal/catalog"
	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
	"github.com/DoyleJ11/fake-artist-backend/internal/types"
	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

func newRegistry() *Registry {
	words := catalog.Default()
	return NewRegistry(func(code string) *engine.Room {
		return engine.NewRoom(code, engine.Config{Catalog: words})
	}, nil)
}

func drain(ch chan types.ServerMessage) []types.ServerMessage {
	var out []types.ServerMessage
	for {
		select {
		case m, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestRegistry_GetOrCreate_SamePointer(t *testing.T) {
	reg := newRegistry()
	a := reg.GetOrCreate("ZED123")
	b := reg.GetOrCreate("ZED123")
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, 1, reg.Len())

	reg.Remove("ZED123")
	_, ok := reg.Lookup("ZED123")
	assert.False(t, ok)
	assert.NotSame(t, a, reg.GetOrCreate("ZED123"))
}

func TestRegistry_BroadcastExceptSkipsSender(t *testing.T) {
	reg := newRegistry()
	room := reg.GetOrCreate("FOX1")
	outA := make(chan types.ServerMessage, 8)
	outB := make(chan types.ServerMessage, 8)
	reg.Attach("A", outA)
	reg.Attach("B", outB)
	room.Join("A", "Ann")
	room.Join("B", "Bob")

	reg.BroadcastExcept("FOX1", "A", wire.EventMouseMove, wire.Cursor{ID: "A"})
	assert.Empty(t, drain(outA))
	got := drain(outB)
	require.Len(t, got, 1)
	assert.Equal(t, wire.EventMouseMove, got[0].Event)

	reg.Broadcast("FOX1", wire.EventClearCanvas, nil)
	assert.Len(t, drain(outA), 1)
	assert.Len(t, drain(outB), 1)

	reg.Broadcast("NOPE", wire.EventClearCanvas, nil)
	assert.Empty(t, drain(outA))
}

func TestRegistry_Deliver_RoutesByAudience(t *testing.T) {
	reg := newRegistry()
	room := reg.GetOrCreate("FOX1")
	outA := make(chan types.ServerMessage, 16)
	outB := make(chan types.ServerMessage, 16)
	reg.Attach("A", outA)
	reg.Attach("B", outB)
	_, out := room.Join("A", "Ann")
	reg.Deliver("FOX1", out)
	_, out = room.Join("B", "Bob")
	reg.Deliver("FOX1", out)

	events := func(ms []types.ServerMessage) []string {
		var names []string
		for _, m := range ms {
			names = append(names, m.Event)
		}
		return names
	}
	assert.Equal(t, []string{
		wire.EventDrawHistory, wire.EventUpdatePlayers, wire.EventInitPlayer, wire.EventUpdatePlayers,
	}, events(drain(outA)))
	assert.Equal(t, []string{
		wire.EventDrawHistory, wire.EventUpdatePlayers, wire.EventInitPlayer,
	}, events(drain(outB)))
}

func TestRegistry_DropsSlowClient(t *testing.T) {
	reg := newRegistry()
	room := reg.GetOrCreate("FOX1")
	out := make(chan types.ServerMessage, 1)
	reg.Attach("A", out)
	room.Join("A", "Ann")

	reg.Broadcast("FOX1", wire.EventClearCanvas, nil)
	reg.Broadcast("FOX1", wire.EventClearCanvas, nil)

	<-out
	_, ok := <-out
	assert.False(t, ok, "outbox should be closed after overflow")

	// detaching again is a no-op
	reg.Detach("A")
	reg.Send("A", wire.EventClearCanvas, nil)
}

func TestRegistry_ConnectionIndex(t *testing.T) {
	reg := newRegistry()
	reg.Bind("A", "FOX1")
	code, ok := reg.RoomOf("A")
	assert.True(t, ok)
	assert.Equal(t, "FOX1", code)

	reg.Unbind("A")
	_, ok = reg.RoomOf("A")
	assert.False(t, ok)
}
