package core

import "fmt"

// Listener receives the board's outbound events. Calls happen synchronously,
// in order, while the board mutates; the board never waits on a listener.
type Listener interface {
	// OnPieceSpawned fires when fill or refill creates a piece. from is where
	// it enters: its own cell for the initial fill, above the board on refill.
	OnPieceSpawned(p Piece, from Pos)
	OnPieceMoved(id PieceID, from, to Pos)
	OnPieceRemoved(id PieceID)
	OnPointsScored(delta int)
	// OnSuccessfulMove fires once per accepted swap after the cascade settles.
	OnSuccessfulMove()
	OnSwapRejected()
}

// NopListener ignores every event. Embed it to implement only a few methods.
type NopListener struct{}

func (NopListener) OnPieceSpawned(Piece, Pos)      {}
func (NopListener) OnPieceMoved(PieceID, Pos, Pos) {}
func (NopListener) OnPieceRemoved(PieceID)         {}
func (NopListener) OnPointsScored(int)             {}
func (NopListener) OnSuccessfulMove()              {}
func (NopListener) OnSwapRejected()                {}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnPieceSpawned(p Piece, from Pos) {
	for _, l := range ls {
		l.OnPieceSpawned(p, from)
	}
}

func (ls Listeners) OnPieceMoved(id PieceID, from, to Pos) {
	for _, l := range ls {
		l.OnPieceMoved(id, from, to)
	}
}

func (ls Listeners) OnPieceRemoved(id PieceID) {
	for _, l := range ls {
		l.OnPieceRemoved(id)
	}
}

func (ls Listeners) OnPointsScored(delta int) {
	for _, l := range ls {
		l.OnPointsScored(delta)
	}
}

func (ls Listeners) OnSuccessfulMove() {
	for _, l := range ls {
		l.OnSuccessfulMove()
	}
}

func (ls Listeners) OnSwapRejected() {
	for _, l := range ls {
		l.OnSwapRejected()
	}
}

// EventKind tags a recorded event.
type EventKind uint8

const (
	EventSpawned EventKind = iota
	EventMoved
	EventRemoved
	EventScored
	EventSuccess
	EventRejected
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventMoved:
		return "moved"
	case EventRemoved:
		return "removed"
	case EventScored:
		return "scored"
	case EventSuccess:
		return "success"
	case EventRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Event is one recorded board event. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	ID     PieceID
	Type   PieceType
	From   Pos
	To     Pos
	Points int
}

func (e Event) String() string {
	switch e.Kind {
	case EventSpawned:
		return fmt.Sprintf("spawned #%d type=%d %v->%v", e.ID, e.Type, e.From, e.To)
	case EventMoved:
		return fmt.Sprintf("moved #%d %v->%v", e.ID, e.From, e.To)
	case EventRemoved:
		return fmt.Sprintf("removed #%d", e.ID)
	case EventScored:
		return fmt.Sprintf("scored %d", e.Points)
	default:
		return e.Kind.String()
	}
}

// Recorder collects events in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnPieceSpawned(p Piece, from Pos) {
	r.Events = append(r.Events, Event{Kind: EventSpawned, ID: p.ID, Type: p.Type, From: from, To: p.Pos})
}

func (r *Recorder) OnPieceMoved(id PieceID, from, to Pos) {
	r.Events = append(r.Events, Event{Kind: EventMoved, ID: id, From: from, To: to})
}

func (r *Recorder) OnPieceRemoved(id PieceID) {
	r.Events = append(r.Events, Event{Kind: EventRemoved, ID: id})
}

func (r *Recorder) OnPointsScored(delta int) {
	r.Events = append(r.Events, Event{Kind: EventScored, Points: delta})
}

func (r *Recorder) OnSuccessfulMove() {
	r.Events = append(r.Events, Event{Kind: EventSuccess})
}

func (r *Recorder) OnSwapRejected() {
	r.Events = append(r.Events, Event{Kind: EventRejected})
}

// Take returns the recorded events and clears the recorder.
func (r *Recorder) Take() []Event {
	ev := r.Events
	r.Events = nil
	return ev
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
