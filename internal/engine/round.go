package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	wire "github.com/DoyleJ11/fake-artist-backend/pkg/types"
)

func (r *Room) roundLive() bool {
	switch r.phase {
	case PhaseDrawing, PhaseVoting, PhaseRevealed:
		return true
	}
	return false
}

func (r *Room) StartGame(sender string) []Outbound {
	if r.roster.Find(sender) == nil {
		return nil
	}
	if r.phase == PhaseDrawing || r.phase == PhaseVoting {
		return []Outbound{toOne(sender, wire.EventMessage, systemMessage("A round is already in progress."))}
	}
	return r.startRound(sender)
}

// Restart wipes every canvas and deals a new round.
func (r *Room) Restart(sender string) []Outbound {
	if r.roster.Find(sender) == nil {
		return nil
	}
	r.strokes.Clear()
	out := []Outbound{toRoom(wire.EventClearCanvas, nil)}
	return append(out, r.startRound(sender)...)
}

func (r *Room) startRound(sender string) []Outbound {
	if r.roster.Len() < r.minPlayers {
		return []Outbound{toOne(sender, wire.EventMessage, systemMessage(fmt.Sprintf("At least %d artists are needed to start!", r.minPlayers)))}
	}
	if r.catalog == nil || r.catalog.Len() == 0 {
		return []Outbound{toOne(sender, wire.EventMessage, systemMessage("No words available, cannot start."))}
	}

	entry := r.catalog.At(r.rng.IntN(r.catalog.Len()))

	var out []Outbound
	if r.strokes.Len() > 0 {
		out = append(out, toRoom(wire.EventClearCanvas, nil))
	}
	r.strokes.Clear()
	r.votes.Reset()
	r.roster.ActivateAll()

	active := r.roster.Active()
	r.turns.start(len(active), r.rng)
	r.impostorID = active[r.rng.IntN(len(active))].ID
	r.word = entry.Word
	r.category = entry.Category
	r.gameStarted = true
	r.phase = PhaseDrawing

	out = append(out, toRoom(wire.EventUpdatePlayers, r.roster.Snapshot()))
	for _, p := range active {
		role := wire.RoleAssignment{Role: wire.RoleArtist, Category: r.category, Word: r.word}
		if p.ID == r.impostorID {
			role.Role = wire.RoleFake
			role.Word = wire.HiddenWord
		}
		out = append(out, toOne(p.ID, wire.EventRoleAssignment, role))
	}
	nt, _ := r.currentTurn()
	return append(out, toRoom(wire.EventNextTurn, nt))
}

// FinishStroke ends the sender's turn. Anyone but the current drawer is ignored.
func (r *Room) FinishStroke(sender string) []Outbound {
	if r.phase != PhaseDrawing {
		return nil
	}
	active := r.roster.Active()
	if len(active) == 0 {
		return r.abandon("Everyone left, the round is cancelled.")
	}
	if active[r.turns.Current].ID != sender {
		return nil
	}
	return r.advanceTurn(len(active))
}

// ExpireTurn advances the turn for generation as if the drawer had finished.
// Stale generations are ignored.
func (r *Room) ExpireTurn(generation int) []Outbound {
	if r.phase != PhaseDrawing || generation != r.turns.Generation {
		return nil
	}
	n := len(r.roster.Active())
	if n == 0 {
		return r.abandon("Everyone left, the round is cancelled.")
	}
	return r.advanceTurn(n)
}

func (r *Room) advanceTurn(n int) []Outbound {
	if r.turns.advance(n) {
		return r.endDrawing()
	}
	nt, _ := r.currentTurn()
	return []Outbound{toRoom(wire.EventNextTurn, nt)}
}

func (r *Room) endDrawing() []Outbound {
	r.phase = PhaseVoting
	return []Outbound{toRoom(wire.EventGameOver, wire.GameOver{Message: "Drawing is over! Who is the fake artist?"})}
}

func (r *Room) dropDrawer(idx int) []Outbound {
	n := len(r.roster.Active())
	changed := r.turns.drop(idx, n)
	if r.turns.exhausted(n) {
		return r.endDrawing()
	}
	if !changed {
		return nil
	}
	nt, _ := r.currentTurn()
	return []Outbound{toRoom(wire.EventNextTurn, nt)}
}

func (r *Room) currentTurn() (wire.NextTurn, bool) {
	active := r.roster.Active()
	if len(active) == 0 {
		return wire.NextTurn{}, false
	}
	p := active[r.turns.Current%len(active)]
	return wire.NextTurn{ActivePlayerID: p.ID, PlayerName: p.Name}, true
}

// SubmitVote records or replaces voter's ballot and resolves once every active
// player has voted.
func (r *Room) SubmitVote(voter, target string) []Outbound {
	if r.phase != PhaseVoting {
		return nil
	}
	v, t := r.roster.Find(voter), r.roster.Find(target)
	if v == nil || t == nil || v.Spectator || t.Spectator {
		return nil
	}
	r.votes.Submit(voter, target)
	return r.resolveVotes()
}

func (r *Room) resolveVotes() []Outbound {
	active := r.roster.Active()
	if r.phase != PhaseVoting || len(active) == 0 || r.votes.Len() != len(active) {
		return nil
	}
	suspectID, ok := r.votes.Suspect()
	if !ok {
		return nil
	}
	suspect, fake := r.roster.Find(suspectID), r.roster.Find(r.impostorID)
	if suspect == nil || fake == nil {
		return nil
	}

	r.phase = PhaseRevealed
	return []Outbound{toRoom(wire.EventRevealResult, wire.RevealResult{
		IsCaught:    suspectID == r.impostorID,
		SuspectID:   suspect.ID,
		SuspectName: suspect.Name,
		FakeID:      fake.ID,
		FakeName:    fake.Name,
	})}
}

// FinalGuess is the fake artist's last chance. The round stays finished
// until someone asks for a new one.
func (r *Room) FinalGuess(sender, guess string) []Outbound {
	if r.phase != PhaseRevealed || sender != r.impostorID {
		return nil
	}
	r.phase = PhaseFinished
	return []Outbound{toRoom(wire.EventFinalOutcome, wire.FinalOutcome{
		Success: SameWord(guess, r.word),
		Word:    r.word,
	})}
}

// SameWord compares case-insensitively using Unicode case folding.
func SameWord(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

func (r *Room) abandon(reason string) []Outbound {
	r.phase = PhaseIdle
	r.gameStarted = false
	r.impostorID = ""
	r.votes.Reset()
	r.turns.Current = 0
	r.turns.Done = 0
	r.turns.Generation++
	r.roster.ActivateAll()
	return []Outbound{
		toRoom(wire.EventUpdatePlayers, r.roster.Snapshot()),
		toRoom(wire.EventMessage, systemMessage(reason)),
	}
}
