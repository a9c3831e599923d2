package engine

// Tally maps voter -> accused. A voter keeps its original position when it
// changes its vote.
type Tally struct {
	order []string
	votes map[string]string
}

func (t *Tally) Submit(voter, target string) {
	if t.votes == nil {
		t.votes = make(map[string]string)
	}
	if _, ok := t.votes[voter]; !ok {
		t.order = append(t.order, voter)
	}
	t.votes[voter] = target
}

func (t *Tally) Len() int { return len(t.votes) }

func (t *Tally) VoteOf(voter string) (string, bool) {
	target, ok := t.votes[voter]
	return target, ok
}

// Forget drops the ballot cast by id and every ballot naming id.
func (t *Tally) Forget(id string) {
	kept := t.order[:0]
	for _, voter := range t.order {
		if voter == id || t.votes[voter] == id {
			delete(t.votes, voter)
			continue
		}
		kept = append(kept, voter)
	}
	t.order = kept
}

func (t *Tally) Reset() {
	t.order = nil
	t.votes = nil
}

// Suspect returns the accused with the most votes. Ties go to the accused
// that shows up first when walking ballots in voter insertion order.
func (t *Tally) Suspect() (string, bool) {
	counts := make(map[string]int, len(t.votes))
	var seen []string
	for _, voter := range t.order {
		target := t.votes[voter]
		if counts[target] == 0 {
			seen = append(seen, target)
		}
		counts[target]++
	}

	best, bestCount := "", 0
	for _, id := range seen {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	return best, bestCount > 0
}
