package engine

// Palette colors are handed out by join order.
var Palette = []string{
	"#E74C3C", "#3498DB", "#2ECC71", "#F1C40F", "#9B59B6",
	"#E67E22", "#1ABC9C", "#000000", "#65410b", "#045c13",
}

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Spectator bool   `json:"isSpectator"`
}

// Roster keeps players in join order.
type Roster struct {
	players []*Player
}

func (r *Roster) Add(id, name string, spectator bool) *Player {
	p := &Player{
		ID:        id,
		Name:      name,
		Color:     Palette[len(r.players)%len(Palette)],
		Spectator: spectator,
	}
	r.players = append(r.players, p)
	return p
}

// Remove drops the player and reports its index in the active view before
// removal (-1 for spectators).
func (r *Roster) Remove(id string) (removed Player, activeIdx int, ok bool) {
	activeIdx = r.ActiveIndex(id)
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return *p, activeIdx, true
		}
	}
	return Player{}, -1, false
}

func (r *Roster) Find(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Roster) Len() int { return len(r.players) }

// Active is derived on every call. Never hold on to it across a disconnect.
func (r *Roster) Active() []*Player {
	active := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if !p.Spectator {
			active = append(active, p)
		}
	}
	return active
}

func (r *Roster) ActiveIndex(id string) int {
	i := 0
	for _, p := range r.players {
		if p.Spectator {
			continue
		}
		if p.ID == id {
			return i
		}
		i++
	}
	return -1
}

func (r *Roster) ActivateAll() {
	for _, p := range r.players {
		p.Spectator = false
	}
}

// Snapshot copies the roster for the wire.
func (r *Roster) Snapshot() []Player {
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = *p
	}
	return out
}

func (r *Roster) IDs() []string {
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}
