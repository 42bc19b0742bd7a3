package match3

// EngineConfig tunes the tick loop (spec.md §4.9). Defaults live in
// internal/config, not here — this package never reads the environment.
type EngineConfig struct {
	TickDuration float32 // fixed dt advanced per Tick call, seconds
	WaveInterval float32 // explosion wave spacing, seconds
	SwapDeadline float32 // seconds a speculative swap waits before commit/revert
	Gravity      GravityConfig
	TickBudget   int // max ticks RunUntilStable will spend before erroring
}

// pendingSwap tracks a speculative player swap awaiting its deadline.
type pendingSwap struct {
	From, To Position
	Elapsed  float32
}

// trackingCollector wraps a caller-supplied EventCollector so that
// objective bookkeeping (applyObjectiveEvent) always runs, even while
// RunUntilStable swaps the inner collector out for a NullCollector.
type trackingCollector struct {
	state *GameState
	inner EventCollector
}

func (c *trackingCollector) Emit(e Event) {
	applyObjectiveEvent(c.state, e, c.inner)
	c.inner.Emit(e)
}

func (c *trackingCollector) IsEnabled() bool { return true }

// StableResult summarizes a completed RunUntilStable call.
type StableResult struct {
	Ticks         int
	Score         int64
	LevelComplete bool
}

// Engine drives the fixed-tick simulation loop over a GameState: accepting
// player moves, resolving combos, and advancing the explosion / gravity /
// refill / match cascade each tick until the board settles (spec.md §4.9).
type Engine struct {
	State     *GameState
	Config    EngineConfig
	Score     ScoreSystem
	Spawn     SpawnModel
	Scheduler *ExplosionScheduler

	collector     *trackingCollector
	pending       *pendingSwap
	levelComplete bool
}

// NewEngine builds an Engine over state. collector receives every event;
// pass NullCollector{} to discard them.
func NewEngine(state *GameState, cfg EngineConfig, score ScoreSystem, spawn SpawnModel, collector EventCollector) *Engine {
	return &Engine{
		State:     state,
		Config:    cfg,
		Score:     score,
		Spawn:     spawn,
		Scheduler: NewExplosionScheduler(cfg.WaveInterval),
		collector: &trackingCollector{state: state, inner: collector},
	}
}

// ApplyMove attempts a swap between two adjacent cells. It returns false
// without mutating state if the move is invalid: out of bounds, not
// orthogonally adjacent, either cell empty or suspended, or a swap is
// already pending (spec.md §4.9).
func (e *Engine) ApplyMove(from, to Position) bool {
	if !e.State.InBounds(from) || !e.State.InBounds(to) || !isAdjacent(from, to) {
		return false
	}
	if e.pending != nil {
		return false
	}

	fromTile, toTile := e.State.At(from), e.State.At(to)
	if fromTile.Empty() || toTile.Empty() || fromTile.Flags.Suspended || toTile.Flags.Suspended {
		return false
	}

	aSpecial := fromTile.Bomb != BombNone || fromTile.Kind == KindRainbow
	bSpecial := toTile.Bomb != BombNone || toTile.Kind == KindRainbow

	if aSpecial || bSpecial {
		e.resolveComboSwap(from, to, *fromTile, *toTile)
		return true
	}

	swapTiles(e.State, from, to)
	e.collector.Emit(Event{Type: EventTilesSwapped, From: from, To: to})
	e.pending = &pendingSwap{From: from, To: to}
	return true
}

// resolveComboSwap handles a swap where at least one endpoint is a bomb or
// a Rainbow tile: these resolve immediately, with no speculative deadline
// (spec.md §4.5, §4.9). Every combo swap also invokes ScoreSystem's combo
// bonus hook, on top of whatever MatchScore the clear itself earns once
// the blast resolves (spec.md §4.6 step 5, §6).
func (e *Engine) resolveComboSwap(from, to Position, a, b Tile) {
	e.collector.Emit(Event{Type: EventTilesSwapped, From: from, To: to})

	if delta := e.Score.SpecialMoveScore(a.Kind, a.Bomb, b.Kind, b.Bomb); delta != 0 {
		e.State.Score += int64(delta)
		e.collector.Emit(Event{Type: EventScoreChanged, Delta: delta})
	}

	switch {
	case a.Kind == KindRainbow && b.Kind.IsOrdinaryColour() && (a.Bomb == BombNone || (a.Bomb == BombColorBomb && b.Bomb == BombNone)):
		affected := ResolveRainbowSwap(e.State, b.Kind)
		clearTileToEmpty(e.State, from)
		e.Scheduler.SpawnTargeted(e.State, to, affected)

	case b.Kind == KindRainbow && a.Kind.IsOrdinaryColour() && (b.Bomb == BombNone || (b.Bomb == BombColorBomb && a.Bomb == BombNone)):
		affected := ResolveRainbowSwap(e.State, a.Kind)
		clearTileToEmpty(e.State, to)
		e.Scheduler.SpawnTargeted(e.State, from, affected)

	case a.Bomb != BombNone && b.Bomb != BombNone:
		affected := ResolveCombo(e.State, from, to, a.Bomb, b.Bomb)
		clearTileToEmpty(e.State, from)
		clearTileToEmpty(e.State, to)
		e.Scheduler.SpawnTargeted(e.State, to, affected)

	case a.Bomb != BombNone:
		affected := ActivateBomb(e.State, a.Bomb, to)
		swapTiles(e.State, from, to)
		clearTileToEmpty(e.State, to)
		e.Scheduler.SpawnTargeted(e.State, to, affected)

	case b.Bomb != BombNone:
		affected := ActivateBomb(e.State, b.Bomb, from)
		swapTiles(e.State, from, to)
		clearTileToEmpty(e.State, from)
		e.Scheduler.SpawnTargeted(e.State, from, affected)
	}
}

// Tick advances the simulation by one fixed step: explosion waves, then
// (only once no explosion is active) gravity, refill, the pending-swap
// deadline, and cascade match resolution, in that order (spec.md §4.9).
func (e *Engine) Tick(dt float32) {
	e.State.Tick++
	e.State.SimTime += dt

	for _, p := range e.Scheduler.Advance(e.State, dt, e.collector) {
		e.retriggerBomb(p)
	}
	if e.Scheduler.Active() {
		return
	}

	if ApplyGravity(e.State, dt, e.Config.Gravity, e.collector) {
		return
	}
	if Refill(e.State, e.Spawn, e.State.Tick, e.collector) {
		return
	}

	if e.pending != nil {
		e.pending.Elapsed += dt
		if e.pending.Elapsed >= e.Config.SwapDeadline {
			e.resolvePendingSwap()
		}
		return
	}

	e.resolveCascade()
}

// retriggerBomb activates a bomb the explosion scheduler reached, clearing
// its Bomb tag (so the next wave pass destroys the cell instead of
// re-triggering it) and feeding the blast into a new targeted explosion.
func (e *Engine) retriggerBomb(p Position) {
	tile := e.State.At(p)
	bomb := tile.Bomb
	affected := ActivateBomb(e.State, bomb, p)
	tile.Bomb = BombNone
	e.Scheduler.SpawnTargeted(e.State, p, affected)
}

func (e *Engine) resolvePendingSwap() {
	ps := e.pending
	e.pending = nil

	groups := FindMatches(e.State)
	touched := false
	for _, g := range groups {
		for _, p := range g.Positions {
			if p == ps.From || p == ps.To {
				touched = true
			}
		}
	}

	if !touched {
		e.State.Pools.ReleaseMatchGroups(groups)
		swapTiles(e.State, ps.From, ps.To)
		e.collector.Emit(Event{Type: EventTilesSwapped, From: ps.From, To: ps.To, IsRevert: true})
		return
	}

	e.processMatches(groups, []Position{ps.From, ps.To})
	e.State.Pools.ReleaseMatchGroups(groups)
}

func (e *Engine) resolveCascade() {
	groups := FindMatches(e.State)
	if len(groups) == 0 {
		e.State.Pools.ReleaseMatchGroups(groups)
		return
	}
	e.processMatches(groups, nil)
	e.State.Pools.ReleaseMatchGroups(groups)
}

func (e *Engine) processMatches(groups []MatchGroup, foci []Position) {
	delta, triggeredBombs := ProcessGroups(e.State, groups, foci, e.Score, e.collector)
	if delta != 0 {
		e.State.Score += int64(delta)
		e.collector.Emit(Event{Type: EventScoreChanged, Delta: delta})
	}

	for _, p := range triggeredBombs {
		e.retriggerBomb(p)
	}

	if !e.levelComplete && AllObjectivesSatisfied(e.State) {
		e.levelComplete = true
		e.collector.Emit(Event{Type: EventLevelCompleted})
	}
}

// RunUntilStable ticks the engine with event emission suppressed until the
// board reaches a stable state (no falling, suspended, or pending-swap
// tiles, no active explosion, no unresolved match), or returns
// ErrTickBudgetExceeded if Config.TickBudget is exhausted first
// (spec.md §4.9, §7).
func (e *Engine) RunUntilStable() (StableResult, error) {
	saved := e.collector.inner
	e.collector.inner = NullCollector{}
	defer func() { e.collector.inner = saved }()

	spent := 0
	for !e.isStable() {
		if spent >= e.Config.TickBudget {
			return StableResult{}, wrapTickBudget(spent, e.State.Tick)
		}
		e.Tick(e.Config.TickDuration)
		spent++
	}

	return StableResult{
		Ticks:         spent,
		Score:         e.State.Score,
		LevelComplete: e.levelComplete,
	}, nil
}

func (e *Engine) isStable() bool {
	if e.Scheduler.Active() || e.pending != nil {
		return false
	}
	for i := range e.State.Grid {
		f := e.State.Grid[i].Flags
		if f.Falling || f.Suspended {
			return false
		}
	}
	// A resting tile over an empty, unblocked cell is about to fall.
	for y := 0; y < e.State.Height-1; y++ {
		for x := 0; x < e.State.Width; x++ {
			p := Position{X: x, Y: y}
			below := p.Add(0, 1)
			if !e.State.At(p).Empty() && e.State.At(below).Empty() && !blocksGravity(e.State.CoverAt(below)) {
				return false
			}
		}
	}
	return !HasAnyMatch(e.State)
}

func isAdjacent(a, b Position) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

func swapTiles(state *GameState, a, b Position) {
	ai, bi := state.idx(a), state.idx(b)
	ta, tb := state.Grid[ai], state.Grid[bi]
	ta.LogicalPos, tb.LogicalPos = b, a
	ta.VisualPos = Vec2{X: float32(b.X), Y: float32(b.Y)}
	tb.VisualPos = Vec2{X: float32(a.X), Y: float32(a.Y)}
	state.Grid[ai], state.Grid[bi] = tb, ta
}

func clearTileToEmpty(state *GameState, p Position) {
	*state.At(p) = Tile{LogicalPos: p, VisualPos: Vec2{X: float32(p.X), Y: float32(p.Y)}}
}
