// Package telemetry provides frame timing, window statistics, event logs and
// bench result history for the rectangle benchmark.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSetup EventType = iota
	EventGrow
	EventShrink
	EventResize
)

var eventNames = [...]string{
	EventSetup:  "setup",
	EventGrow:   "grow",
	EventShrink: "shrink",
	EventResize: "resize",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single population or viewport event.
type Event struct {
	Type  EventType `csv:"-"`
	Name  string    `csv:"event"`
	Frame int32     `csv:"frame"`

	// Population events
	From int `csv:"from"`
	To   int `csv:"to"`

	// Resize events
	Width     float32 `csv:"width"`
	Height    float32 `csv:"height"`
	Respawned int     `csv:"respawned"`
}

// NewSetupEvent creates an initial population event.
func NewSetupEvent(frame int32, count int) Event {
	return Event{Type: EventSetup, Name: EventSetup.String(), Frame: frame, To: count}
}

// NewGrowEvent creates a grow event taking the target from one count to another.
func NewGrowEvent(frame int32, from, to int) Event {
	return Event{Type: EventGrow, Name: EventGrow.String(), Frame: frame, From: from, To: to}
}

// NewShrinkEvent creates a shrink event taking the target from one count to another.
func NewShrinkEvent(frame int32, from, to int) Event {
	return Event{Type: EventShrink, Name: EventShrink.String(), Frame: frame, From: from, To: to}
}

// NewResizeEvent creates a viewport resize event.
func NewResizeEvent(frame int32, width, height float32, respawned int) Event {
	return Event{
		Type:      EventResize,
		Name:      EventResize.String(),
		Frame:     frame,
		Width:     width,
		Height:    height,
		Respawned: respawned,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("frame", int(e.Frame)),
	}
	switch e.Type {
	case EventResize:
		attrs = append(attrs,
			slog.Float64("width", float64(e.Width)),
			slog.Float64("height", float64(e.Height)),
			slog.Int("respawned", e.Respawned),
		)
	default:
		attrs = append(attrs, slog.Int("from", e.From), slog.Int("to", e.To))
	}
	return slog.GroupValue(attrs...)
}
