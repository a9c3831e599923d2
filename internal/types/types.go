package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

var (
	ErrBadJSON      = errors.New("bad json")
	ErrUnknownEvent = errors.New("unknown event")
	ErrInvalid      = errors.New("invalid payload")
)

const (
	MaxNameRunes     = 24
	MaxRoomCodeRunes = 32
	MaxGuessRunes    = 64
	MaxChatBytes     = 4096
)

type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Command is a validated inbound event.
type Command interface{ isCommand() }

// RoomScoped commands name the room they target.
type RoomScoped interface {
	Command
	Room() string
}

type JoinRoom struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type DrawLine struct {
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
	RoomCode string  `json:"roomCode"`
}

type StartGame struct{ RoomCode string }

type FinishStroke struct{ RoomCode string }

type RestartGame struct{ RoomCode string }

type SubmitVote struct {
	RoomCode string `json:"roomCode"`
	TargetID string `json:"targetId"`
}

type FakeGuess struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

type Chat struct{ Text string }

type MouseMove struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (JoinRoom) isCommand()     {}
func (DrawLine) isCommand()     {}
func (StartGame) isCommand()    {}
func (FinishStroke) isCommand() {}
func (RestartGame) isCommand()  {}
func (SubmitVote) isCommand()   {}
func (FakeGuess) isCommand()    {}
func (Chat) isCommand()         {}
func (MouseMove) isCommand()    {}

func (c JoinRoom) Room() string     { return c.RoomCode }
func (c DrawLine) Room() string     { return c.RoomCode }
func (c StartGame) Room() string    { return c.RoomCode }
func (c FinishStroke) Room() string { return c.RoomCode }
func (c RestartGame) Room() string  { return c.RoomCode }
func (c SubmitVote) Room() string   { return c.RoomCode }
func (c FakeGuess) Room() string    { return c.RoomCode }

// Decode parses one frame and validates it against the schema of its event.
func Decode(frame []byte) (Command, error) {
	var m ClientMessage
	if err := json.Unmarshal(frame, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}

	switch m.Event {
	case wire.EventJoinRoom:
		var c JoinRoom
		if err := decodeData(m.Data, &c); err != nil {
			return nil, err
		}
		c.RoomCode = strings.TrimSpace(c.RoomCode)
		c.PlayerName = strings.TrimSpace(c.PlayerName)
		if err := checkRoom(c.RoomCode); err != nil {
			return nil, err
		}
		if c.PlayerName == "" || utf8.RuneCountInString(c.PlayerName) > MaxNameRunes {
			return nil, fmt.Errorf("%w: playerName must be 1-%d characters", ErrInvalid, MaxNameRunes)
		}
		return c, nil

	case wire.EventDrawLine:
		var c DrawLine
		if err := decodeData(m.Data, &c); err != nil {
			return nil, err
		}
		if err := checkRoom(c.RoomCode); err != nil {
			return nil, err
		}
		if !finite(c.X1, c.Y1, c.X2, c.Y2) {
			return nil, fmt.Errorf("%w: coordinates must be finite", ErrInvalid)
		}
		return c, nil

	case wire.EventStartGame, wire.EventFinishStroke, wire.EventRestartGame:
		var code string
		if err := decodeData(m.Data, &code); err != nil {
			return nil, err
		}
		if err := checkRoom(code); err != nil {
			return nil, err
		}
		switch m.Event {
		case wire.EventStartGame:
			return StartGame{RoomCode: code}, nil
		case wire.EventFinishStroke:
			return FinishStroke{RoomCode: code}, nil
		default:
			return RestartGame{RoomCode: code}, nil
		}

	case wire.EventSubmitVote:
		var c SubmitVote
		if err := decodeData(m.Data, &c); err != nil {
			return nil, err
		}
		if err := checkRoom(c.RoomCode); err != nil {
			return nil, err
		}
		if c.TargetID == "" {
			return nil, fmt.Errorf("%w: targetId is required", ErrInvalid)
		}
		return c, nil

	case wire.EventFakeGuess:
		var c FakeGuess
		if err := decodeData(m.Data, &c); err != nil {
			return nil, err
		}
		if err := checkRoom(c.RoomCode); err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(c.Guess) > MaxGuessRunes {
			return nil, fmt.Errorf("%w: guess too long", ErrInvalid)
		}
		return c, nil

	case wire.EventChatMessage:
		var text string
		if err := decodeData(m.Data, &text); err != nil {
			return nil, err
		}
		if len(text) > MaxChatBytes {
			return nil, fmt.Errorf("%w: message too long", ErrInvalid)
		}
		return Chat{Text: text}, nil

	case wire.EventMouseMove:
		var c MouseMove
		if err := decodeData(m.Data, &c); err != nil {
			return nil, err
		}
		if !finite(c.X, c.Y) {
			return nil, fmt.Errorf("%w: coordinates must be finite", ErrInvalid)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, m.Event)
	}
}

func decodeData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing data", ErrInvalid)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func checkRoom(code string) error {
	if code == "" || utf8.RuneCountInString(code) > MaxRoomCodeRunes {
		return fmt.Errorf("%w: roomCode must be 1-%d characters", ErrInvalid, MaxRoomCodeRunes)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
