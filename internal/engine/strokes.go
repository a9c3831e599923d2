package engine

type Stroke struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
}

// StrokeLog is append-only for the lifetime of a round.
type StrokeLog struct {
	strokes []Stroke
}

func (l *StrokeLog) Append(s Stroke) { l.strokes = append(l.strokes, s) }

func (l *StrokeLog) Len() int { return len(l.strokes) }

// Snapshot returns the ordered log; never nil so it encodes as [].
func (l *StrokeLog) Snapshot() []Stroke {
	out := make([]Stroke, len(l.strokes))
	copy(out, l.strokes)
	return out
}

func (l *StrokeLog) Clear() { l.strokes = nil }
