package signature

// Point is one sampled pointer position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous drag: an ordered point sequence. A completed
// stroke always has at least two points; single-point taps carry no ink and
// are dropped at finalization.
type Stroke []Point

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// DefaultStrokePointBudget bounds how many raw points accumulate in one
// in-progress stroke before it is split to cap memory and redraw cost.
const DefaultStrokePointBudget = 100

// Builder turns a raw pointer-drag stream into committed strokes. It holds at
// most one in-progress stroke; once that stroke exceeds the point budget it
// is committed and a fresh one starts from the last point, so the drawn curve
// stays visually continuous across the split.
type Builder struct {
	budget    int
	committed []Stroke
	current   Stroke
}

// NewBuilder constructs a Builder. budget <= 0 selects the default.
func NewBuilder(budget int) *Builder {
	if budget <= 0 {
		budget = DefaultStrokePointBudget
	}
	return &Builder{budget: budget}
}

// Begin starts a new in-progress stroke seeded with the initial point. Any
// unfinished stroke is finalized first, matching a pointer stream where a new
// down event implies the previous drag ended.
func (b *Builder) Begin(p Point) {
	b.End()
	b.current = Stroke{p}
}

// Move appends a point to the in-progress stroke, splitting at the budget.
func (b *Builder) Move(p Point) {
	if b.current == nil {
		b.Begin(p)
		return
	}
	b.current = append(b.current, p)
	if len(b.current) > b.budget {
		last := b.current[len(b.current)-1]
		b.commit(b.current)
		b.current = Stroke{last}
	}
}

// End finalizes the in-progress stroke. Strokes with fewer than two points
// are discarded.
func (b *Builder) End() {
	if b.current == nil {
		return
	}
	b.commit(b.current)
	b.current = nil
}

// DiscardCurrent drops the in-progress stroke without committing it. Used
// when capture is disabled or torn down mid-drag.
func (b *Builder) DiscardCurrent() {
	b.current = nil
}

// Reset drops everything, committed and in-progress.
func (b *Builder) Reset() {
	b.committed = nil
	b.current = nil
}

// Strokes returns the committed strokes.
func (b *Builder) Strokes() []Stroke {
	return b.committed
}

// Current returns the in-progress stroke, nil when none.
func (b *Builder) Current() Stroke {
	return b.current
}

// TotalPoints counts every captured point, committed and in-progress. This is
// the "ink" measure gating save.
func (b *Builder) TotalPoints() int {
	total := len(b.current)
	for _, s := range b.committed {
		total += len(s)
	}
	return total
}

func (b *Builder) commit(s Stroke) {
	if len(s) < 2 {
		return
	}
	b.committed = append(b.committed, s)
}
