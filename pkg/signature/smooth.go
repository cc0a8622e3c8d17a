package signature

// OpKind discriminates path operations produced by smoothing.
type OpKind int

const (
	// OpMove positions the pen without drawing.
	OpMove OpKind = iota
	// OpQuad draws a quadratic curve: Ctrl is the control point, To the end.
	OpQuad
	// OpLine draws a straight segment to To.
	OpLine
)

// PathOp is one smoothed path operation.
type PathOp struct {
	Kind OpKind
	Ctrl Point
	To   Point
}

// Smooth converts a stroke into a visually continuous curve: move to the
// first point, then for each interior point a quadratic toward the midpoint
// of it and its successor, and finally a line to the last point. Strokes with
// fewer than two points produce no ops.
func Smooth(s Stroke) []PathOp {
	if len(s) < 2 {
		return nil
	}
	ops := make([]PathOp, 0, len(s))
	ops = append(ops, PathOp{Kind: OpMove, To: s[0]})
	for i := 1; i < len(s)-1; i++ {
		ops = append(ops, PathOp{
			Kind: OpQuad,
			Ctrl: s[i],
			To:   midpoint(s[i], s[i+1]),
		})
	}
	ops = append(ops, PathOp{Kind: OpLine, To: s[len(s)-1]})
	return ops
}

// Flatten subdivides a smoothed path into a dense polyline for stroking.
// steps controls how many line segments approximate each quadratic.
func Flatten(ops []PathOp, steps int) []Point {
	if steps < 1 {
		steps = 8
	}
	var out []Point
	var pen Point
	for _, op := range ops {
		switch op.Kind {
		case OpMove:
			pen = op.To
			out = append(out, pen)
		case OpLine:
			pen = op.To
			out = append(out, pen)
		case OpQuad:
			for i := 1; i <= steps; i++ {
				t := float64(i) / float64(steps)
				out = append(out, quadAt(pen, op.Ctrl, op.To, t))
			}
			pen = op.To
		}
	}
	return out
}

func quadAt(p0, ctrl, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*ctrl.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*ctrl.Y + t*t*p1.Y,
	}
}
