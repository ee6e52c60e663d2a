package view

// PanPhase is the state of the drag gesture.
type PanPhase int

const (
	Idle PanPhase = iota
	Panning
)

func (p PanPhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	default:
		return "unknown"
	}
}

// Pan tracks a drag gesture. The translation of the drag is always measured
// from the cursor position where it started, never between successive moves.
type Pan struct {
	phase  PanPhase
	anchor Vec
}

// Phase returns the current phase.
func (p *Pan) Phase() PanPhase { return p.phase }

// Anchor returns the cursor position the current drag started at.
func (p *Pan) Anchor() Vec { return p.anchor }

// Begin starts a drag at. A drag still in progress is committed first.
func (p *Pan) Begin(s *State, at Vec) {
	if p.phase == Panning {
		p.Commit(s)
	}
	p.phase = Panning
	p.anchor = at
}

// Update moves the drag to at. It is a no-op while idle.
func (p *Pan) Update(s *State, at Vec) bool {
	if p.phase != Panning {
		return false
	}
	s.PanDelta = at.Sub(p.anchor)
	if !s.PanDelta.IsZero() {
		s.Adjusted = true
	}
	return true
}

// Commit folds the drag into the pan offset and ends it. It is a no-op while
// idle.
func (p *Pan) Commit(s *State) bool {
	if p.phase != Panning {
		return false
	}
	s.PanOffset = s.PanOffset.Add(s.PanDelta)
	s.PanDelta = Vec{}
	p.phase = Idle
	p.anchor = Vec{}
	return true
}

// Cancel drops the drag without committing it.
func (p *Pan) Cancel(s *State) {
	s.PanDelta = Vec{}
	p.phase = Idle
	p.anchor = Vec{}
}
