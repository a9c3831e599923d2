package engine

import (
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/DoyleJ11/fake-artist-backend/internal/catalog"
	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDrawing  Phase = "drawing"
	PhaseVoting   Phase = "voting"
	PhaseRevealed Phase = "revealed"
	PhaseFinished Phase = "finished"
)

const (
	DefaultMinPlayers = 3
	MaxChatRunes      = 500
)

type Rand interface {
	IntN(n int) int
}

type Catalog interface {
	Len() int
	At(i int) catalog.Entry
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

type Config struct {
	Catalog    Catalog
	Rand       Rand // defaults to math/rand
	MinPlayers int  // defaults to DefaultMinPlayers
}

// Room is one game session. It is not safe for concurrent use: the owner must
// serialize every call.
type Room struct {
	code       string
	catalog    Catalog
	rng        Rand
	minPlayers int

	roster  Roster
	strokes StrokeLog
	votes   Tally
	turns   Scheduler

	phase       Phase
	gameStarted bool
	word        string
	category    string
	impostorID  string
}

func NewRoom(code string, cfg Config) *Room {
	if cfg.Rand == nil {
		cfg.Rand = globalRand{}
	}
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = DefaultMinPlayers
	}
	return &Room{
		code:       code,
		catalog:    cfg.Catalog,
		rng:        cfg.Rand,
		minPlayers: cfg.MinPlayers,
		phase:      PhaseIdle,
	}
}

func (r *Room) Code() string { return r.code }

func (r *Room) Empty() bool { return r.roster.Len() == 0 }

// Members lists connection ids in join order.
func (r *Room) Members() []string { return r.roster.IDs() }

func (r *Room) ActivePlayers() []Player {
	active := r.roster.Active()
	out := make([]Player, len(active))
	for i, p := range active {
		out[i] = *p
	}
	return out
}

func (r *Room) History() []Stroke { return r.strokes.Snapshot() }

// Turn returns the current turn generation and whether a drawing turn is live.
func (r *Room) Turn() (generation int, drawing bool) {
	return r.turns.Generation, r.phase == PhaseDrawing
}

func (r *Room) Join(id, name string) (Player, []Outbound) {
	if p := r.roster.Find(id); p != nil {
		return *p, nil
	}

	p := r.roster.Add(id, name, r.gameStarted)
	out := []Outbound{
		toOne(id, wire.EventDrawHistory, r.strokes.Snapshot()),
		toRoom(wire.EventUpdatePlayers, r.roster.Snapshot()),
		toOne(id, wire.EventInitPlayer, wire.InitPlayer{
			ID:          p.ID,
			Color:       p.Color,
			RoomCode:    r.code,
			IsSpectator: p.Spectator,
		}),
	}
	if p.Spectator {
		out = append(out, toOne(id, wire.EventMessage, systemMessage("Game in progress... you will play next round!")))
		if r.phase == PhaseDrawing {
			if nt, ok := r.currentTurn(); ok {
				out = append(out, toOne(id, wire.EventNextTurn, nt))
			}
		}
	}
	return *p, out
}

// Leave is idempotent: it reports false when id is not in the room.
func (r *Room) Leave(id string) (bool, []Outbound) {
	gone, activeIdx, ok := r.roster.Remove(id)
	if !ok {
		return false, nil
	}
	if r.roster.Len() == 0 {
		return true, nil
	}

	if activeIdx >= 0 && r.roundLive() && (id == r.impostorID || len(r.roster.Active()) == 0) {
		return true, r.abandon(gone.Name + " left, the round is cancelled.")
	}

	out := []Outbound{toRoom(wire.EventUpdatePlayers, r.roster.Snapshot())}
	if activeIdx < 0 || !r.roundLive() {
		return true, out
	}

	r.votes.Forget(id)
	switch r.phase {
	case PhaseDrawing:
		out = append(out, r.dropDrawer(activeIdx)...)
	case PhaseVoting:
		out = append(out, r.resolveVotes()...)
	}
	return true, out
}

func (r *Room) RecordStroke(sender string, s Stroke) []Outbound {
	p := r.roster.Find(sender)
	if p == nil || p.Spectator {
		return nil
	}
	s.Color = p.Color
	r.strokes.Append(s)
	return []Outbound{toOthers(sender, wire.EventDrawLine, s)}
}

func (r *Room) Chat(sender, text string) []Outbound {
	p := r.roster.Find(sender)
	if p == nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) > MaxChatRunes {
		text = string([]rune(text)[:MaxChatRunes])
	}
	return []Outbound{toRoom(wire.EventMessage, wire.ChatMessage{User: p.Name, Color: p.Color, Text: text})}
}

func (r *Room) MoveCursor(sender string, x, y float64) []Outbound {
	if r.roster.Find(sender) == nil {
		return nil
	}
	return []Outbound{toOthers(sender, wire.EventMouseMove, wire.Cursor{ID: sender, X: x, Y: y})}
}

// View is a read-only copy of the room state.
type View struct {
	Code               string
	Phase              Phase
	GameStarted        bool
	Word               string
	Category           string
	ImpostorID         string
	CurrentPlayerIndex int
	TotalStrokesDone   int
	Players            []Player
	Strokes            []Stroke
	Votes              int
}

func (r *Room) View() View {
	return View{
		Code:               r.code,
		Phase:              r.phase,
		GameStarted:        r.gameStarted,
		Word:               r.word,
		Category:           r.category,
		ImpostorID:         r.impostorID,
		CurrentPlayerIndex: r.turns.Current,
		TotalStrokesDone:   r.turns.Done,
		Players:            r.roster.Snapshot(),
		Strokes:            r.strokes.Snapshot(),
		Votes:              r.votes.Len(),
	}
}
