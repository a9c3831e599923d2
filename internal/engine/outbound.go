package engine

import wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"

type Audience int

const (
	// ToRoom reaches every member of the room.
	ToRoom Audience = iota
	// ToOthers reaches every member except ConnID.
	ToOthers
	// ToOne reaches ConnID only.
	ToOne
)

// Outbound is a message the room wants delivered. The engine never does I/O
// itself; the caller fans these out.
type Outbound struct {
	Audience Audience
	ConnID   string
	Event    string
	Payload  any
}

func toRoom(event string, payload any) Outbound {
	return Outbound{Audience: ToRoom, Event: event, Payload: payload}
}

func toOthers(sender, event string, payload any) Outbound {
	return Outbound{Audience: ToOthers, ConnID: sender, Event: event, Payload: payload}
}

func toOne(id, event string, payload any) Outbound {
	return Outbound{Audience: ToOne, ConnID: id, Event: event, Payload: payload}
}

func systemMessage(text string) wire.ChatMessage {
	return wire.ChatMessage{User: wire.SystemUser, Color: wire.SystemColor, Text: text}
}

// ContainsEvent reports whether any of out carries the given event.
func ContainsEvent(out []Outbound, event string) bool {
	for _, o := range out {
		if o.Event == event {
			return true
		}
	}
	return false
}
