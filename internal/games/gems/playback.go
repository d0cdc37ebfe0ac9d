package gems

import (
	"sort"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// Sprite is the displayed copy of a board piece.
type Sprite struct {
	ID     gcore.PieceID
	Type   gcore.PieceType
	From   gcore.Pos // where the current animation step started
	To     gcore.Pos // where it ends
	Fading bool      // removed in the current step
}

// Playback replays board events on a set of sprites, one group per
// animation step. The board resolves a swap at once; Playback lets the
// display catch up afterwards.
//
// A group is a run of moves and spawns, or a run of removals. A move
// group ends early when a piece moves twice, so a rejected swap shows
// going out and coming back.
type Playback struct {
	ticksPerStep int

	sprites map[gcore.PieceID]*Sprite
	pending []gcore.Event
	active  []gcore.Event
	elapsed int
	points  int // scored while the active group plays
}

var _ gcore.Listener = (*Playback)(nil)

// NewPlayback creates an empty playback. ticksPerStep <= 0 applies events
// as soon as Tick is called.
func NewPlayback(ticksPerStep int) *Playback {
	return &Playback{
		ticksPerStep: ticksPerStep,
		sprites:      make(map[gcore.PieceID]*Sprite),
	}
}

func (p *Playback) push(e gcore.Event) { p.pending = append(p.pending, e) }

func (p *Playback) OnPieceSpawned(pc gcore.Piece, from gcore.Pos) {
	p.push(gcore.Event{Kind: gcore.EventSpawned, ID: pc.ID, Type: pc.Type, From: from, To: pc.Pos})
}

func (p *Playback) OnPieceMoved(id gcore.PieceID, from, to gcore.Pos) {
	p.push(gcore.Event{Kind: gcore.EventMoved, ID: id, From: from, To: to})
}

func (p *Playback) OnPieceRemoved(id gcore.PieceID) {
	p.push(gcore.Event{Kind: gcore.EventRemoved, ID: id})
}

func (p *Playback) OnPointsScored(delta int) {
	p.push(gcore.Event{Kind: gcore.EventScored, Points: delta})
}

func (p *Playback) OnSuccessfulMove() {}
func (p *Playback) OnSwapRejected()   {}

// Busy reports whether events are still waiting to be shown.
func (p *Playback) Busy() bool {
	return len(p.active) > 0 || len(p.pending) > 0
}

// Tick advances the animation by one frame.
func (p *Playback) Tick() {
	if p.ticksPerStep <= 0 {
		p.Finish()
		return
	}
	if len(p.active) == 0 {
		if len(p.pending) == 0 {
			return
		}
		p.start()
	}
	p.elapsed++
	if p.elapsed >= p.ticksPerStep {
		p.settle()
	}
}

// Finish applies everything pending without animating.
func (p *Playback) Finish() {
	for p.Busy() {
		if len(p.active) == 0 {
			p.start()
		}
		p.settle()
	}
}

// Progress returns how far the active step has played, in [0, 1].
func (p *Playback) Progress() float64 {
	if len(p.active) == 0 || p.ticksPerStep <= 0 {
		return 1
	}
	return float64(p.elapsed) / float64(p.ticksPerStep)
}

// StepPoints returns the points scored by the step on screen.
func (p *Playback) StepPoints() int { return p.points }

// Sprites returns the displayed pieces ordered by ID.
func (p *Playback) Sprites() []Sprite {
	out := make([]Sprite, 0, len(p.sprites))
	for _, s := range p.sprites {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// At returns the sprite whose resting position is pos.
func (p *Playback) At(pos gcore.Pos) (Sprite, bool) {
	for _, s := range p.sprites {
		if s.To == pos {
			return *s, true
		}
	}
	return Sprite{}, false
}

// Position returns where s is drawn at the current progress, rounded to
// whole cells.
func (p *Playback) Position(s Sprite) gcore.Pos {
	t := p.Progress()
	lerp := func(a, b int) int {
		return a + int(float64(b-a)*t+0.5)
	}
	return gcore.P(lerp(s.From.X, s.To.X), lerp(s.From.Y, s.To.Y))
}

// start moves the next group from pending to active and applies its
// starting positions.
func (p *Playback) start() {
	n := nextGroup(p.pending)
	p.active, p.pending = p.pending[:n], p.pending[n:]
	p.elapsed = 0
	p.points = 0

	for _, e := range p.active {
		switch e.Kind {
		case gcore.EventSpawned:
			p.sprites[e.ID] = &Sprite{ID: e.ID, Type: e.Type, From: e.From, To: e.To}
		case gcore.EventMoved:
			if s, ok := p.sprites[e.ID]; ok {
				s.From, s.To = e.From, e.To
			}
		case gcore.EventRemoved:
			if s, ok := p.sprites[e.ID]; ok {
				s.Fading = true
			}
		case gcore.EventScored:
			p.points += e.Points
		}
	}
}

// settle ends the active group.
func (p *Playback) settle() {
	for id, s := range p.sprites {
		if s.Fading {
			delete(p.sprites, id)
			continue
		}
		s.From = s.To
	}
	p.active = nil
	p.elapsed = 0
}

// nextGroup returns the length of the first group in events. Scores open
// a new group so they show with the removals they pay for. A refill spawn
// may be followed by its own drop in the same group.
func nextGroup(events []gcore.Event) int {
	removal := false
	shaped := false
	moved := make(map[gcore.PieceID]bool)

	for i, e := range events {
		switch e.Kind {
		case gcore.EventScored:
			if shaped {
				return i
			}
		case gcore.EventRemoved:
			if shaped && !removal {
				return i
			}
			removal, shaped = true, true
		case gcore.EventSpawned:
			if shaped && removal {
				return i
			}
			shaped = true
		case gcore.EventMoved:
			if shaped && (removal || moved[e.ID]) {
				return i
			}
			moved[e.ID] = true
			shaped = true
		}
	}
	return len(events)
}
