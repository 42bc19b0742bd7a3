package match3

// explosionCell is one cell caught in an explosion's blast, tagged with its
// Chebyshev distance from the blast's anchor so the scheduler knows which
// wave it belongs to.
type explosionCell struct {
	pos  Position
	dist int
	done bool
}

// explosion is a single in-flight blast: every affected cell is suspended
// immediately on creation, then destroyed wave-by-wave as elapsed time
// crosses each Chebyshev distance band (spec.md §4.7).
type explosion struct {
	cells       []explosionCell
	elapsed     float32
	maxDistance int
}

func newExplosion(state *GameState, anchor Position, affected []Position) *explosion {
	e := &explosion{}
	for _, p := range affected {
		if !state.InBounds(p) {
			continue
		}
		d := anchor.Chebyshev(p)
		e.cells = append(e.cells, explosionCell{pos: p, dist: d})
		if d > e.maxDistance {
			e.maxDistance = d
		}
		state.At(p).Flags.Suspended = true
	}
	return e
}

// ExplosionScheduler advances every active blast once per tick, in
// wave-interval-sized steps, destroying cells and surfacing any bombs the
// blast reaches so the caller can re-trigger them as new explosions
// (spec.md §4.7).
type ExplosionScheduler struct {
	WaveInterval float32
	active       []*explosion
}

// NewExplosionScheduler builds a scheduler with the given wave interval
// (seconds between successive Chebyshev-distance bands).
func NewExplosionScheduler(waveInterval float32) *ExplosionScheduler {
	return &ExplosionScheduler{WaveInterval: waveInterval}
}

// SpawnRadial creates a blast covering every cell within radius of anchor
// (Chebyshev distance), suspending them immediately.
func (s *ExplosionScheduler) SpawnRadial(state *GameState, anchor Position, radius int) {
	s.active = append(s.active, newExplosion(state, anchor, blockAround(state, anchor, radius)))
}

// SpawnTargeted creates a blast covering exactly the given cell list,
// suspending them immediately. anchor is the reference point distances are
// measured from for wave ordering (the triggering bomb's own cell, for a
// re-triggered bomb; the swap target, for a combo).
func (s *ExplosionScheduler) SpawnTargeted(state *GameState, anchor Position, affected []Position) {
	if len(affected) == 0 {
		return
	}
	s.active = append(s.active, newExplosion(state, anchor, affected))
}

// Active reports whether any blast is still in flight.
func (s *ExplosionScheduler) Active() bool {
	return len(s.active) > 0
}

// Advance steps every active blast forward by dt, destroying cells whose
// wave has arrived and collecting the positions of any bombs caught in the
// blast (released from suspension, not destroyed — the caller re-triggers
// them via ActivateBomb and feeds the result back into SpawnTargeted).
func (s *ExplosionScheduler) Advance(state *GameState, dt float32, collector EventCollector) []Position {
	var triggered []Position

	remaining := s.active[:0]
	for _, e := range s.active {
		e.elapsed += dt
		w := int(e.elapsed / s.WaveInterval)

		for i := range e.cells {
			c := &e.cells[i]
			if c.done || c.dist > w {
				continue
			}
			c.done = true

			t := state.At(c.pos)
			if t.Bomb != BombNone {
				t.Flags.Suspended = false
				triggered = append(triggered, c.pos)
				continue
			}
			destroyCell(state, c.pos, collector)
		}

		if w > e.maxDistance {
			continue // blast fully resolved, drop it
		}
		remaining = append(remaining, e)
	}
	s.active = remaining

	return triggered
}
