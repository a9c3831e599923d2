package engine

// StrokesPerPlayer is how many turns each active player gets per round.
const StrokesPerPlayer = 2

// Scheduler tracks whose turn it is as an index into the active view. The
// active view itself is always re-derived by the caller.
type Scheduler struct {
	Current    int
	Done       int
	Generation int
}

func (s *Scheduler) start(n int, rng Rand) {
	s.Current = rng.IntN(n)
	s.Done = 0
	s.Generation++
}

// advance moves to the next player and reports whether the stroke budget is spent.
func (s *Scheduler) advance(n int) bool {
	s.Done++
	s.Current = (s.Current + 1) % n
	s.Generation++
	return s.exhausted(n)
}

func (s *Scheduler) exhausted(n int) bool {
	return s.Done >= n*StrokesPerPlayer
}

// drop re-aligns Current after the active player at idx left; n is the new
// active count. Reports whether the current drawer changed.
func (s *Scheduler) drop(idx, n int) bool {
	switch {
	case n == 0:
		s.Current = 0
		return true
	case idx < s.Current:
		s.Current--
		return false
	case idx == s.Current:
		if s.Current >= n {
			s.Current = 0
		}
		s.Generation++
		return true
	default:
		return false
	}
}
