package signature

import "context"

// EventKind discriminates pointer events.
type EventKind int

const (
	// EventDown begins a drag.
	EventDown EventKind = iota
	// EventMove continues a drag.
	EventMove
	// EventUp ends a drag.
	EventUp
)

// PointerEvent is one sample from the pointer producer.
type PointerEvent struct {
	Kind  EventKind
	Point Point
}

// Consume drains a pointer-event stream into the builder until the stream
// closes or the context is canceled. The producer (the screen's gesture
// handler) and the consumer stay decoupled through the channel, keeping the
// rasterizer independent of the input source. Cancellation mid-drag discards
// the partial stroke so teardown never leaves a half-committed path.
func Consume(ctx context.Context, events <-chan PointerEvent, builder *Builder) error {
	for {
		select {
		case <-ctx.Done():
			builder.DiscardCurrent()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				builder.End()
				return nil
			}
			switch ev.Kind {
			case EventDown:
				builder.Begin(ev.Point)
			case EventMove:
				builder.Move(ev.Point)
			case EventUp:
				builder.End()
			}
		}
	}
}
