package match3

// GravityConfig tunes the continuous-time fall integration (spec.md §4.8).
type GravityConfig struct {
	Gravity      float32 // acceleration, cells/sec^2
	MaxFallSpeed float32 // terminal velocity, cells/sec
}

// blocksGravity reports whether a cover permanently occupies its cell for
// gravity purposes. Static covers (Cage/Chain) block; a Dynamic cover
// (Bubble) never blocks — it simply travels along with whatever tile
// passes through its cell.
func blocksGravity(cover *Cover) bool {
	return cover.Kind != CoverNone && !cover.Dynamic
}

// ApplyGravity integrates one fixed step of falling for every tile on the
// board, bottom row first so a tile's downstream cell is already resolved
// before it is considered (spec.md §4.8). It returns whether anything is
// still in motion afterward.
//
// A tile is "falling" in one of two senses unified by comparing its visual
// Y against its logical row: a freshly spawned tile starts above its own
// logical cell (visual Y < logical Y) and first falls into that slot; once
// arrived, it is re-evaluated against the cell below exactly like any
// other resting tile.
func ApplyGravity(state *GameState, dt float32, cfg GravityConfig, collector EventCollector) bool {
	anyFalling := false

	for y := state.Height - 1; y >= 0; y-- {
		for x := 0; x < state.Width; x++ {
			p := Position{X: x, Y: y}
			tile := state.At(p)
			if tile.Empty() || tile.Flags.Suspended {
				continue
			}
			tile.Flags.JustLanded = false

			target := float32(p.Y)
			if tile.VisualPos.Y < target {
				anyFalling = true
				tile.Flags.Falling = true
				integrate(tile, cfg, dt)
				if tile.VisualPos.Y >= target {
					tile.VisualPos.Y = target
				}
				continue
			}

			below := p.Add(0, 1)
			if !state.InBounds(below) {
				stopFalling(tile, p, collector)
				continue
			}
			belowTile := state.At(below)
			belowCover := state.CoverAt(below)
			if !belowTile.Empty() || blocksGravity(belowCover) {
				stopFalling(tile, p, collector)
				continue
			}

			anyFalling = true
			tile.Flags.Falling = true
			integrate(tile, cfg, dt)
			if tile.VisualPos.Y >= float32(below.Y) {
				moveTileDown(state, p, below)
			}
		}
	}

	return anyFalling
}

func integrate(tile *Tile, cfg GravityConfig, dt float32) {
	tile.Velocity.Y += cfg.Gravity * dt
	if tile.Velocity.Y > cfg.MaxFallSpeed {
		tile.Velocity.Y = cfg.MaxFallSpeed
	}
	tile.VisualPos.Y += tile.Velocity.Y * dt
}

func stopFalling(tile *Tile, p Position, collector EventCollector) {
	wasFalling := tile.Flags.Falling
	tile.Velocity.Y = 0
	tile.VisualPos.Y = float32(p.Y)
	tile.Flags.Falling = false
	if wasFalling {
		tile.Flags.JustLanded = true
		if collector.IsEnabled() {
			collector.Emit(Event{Type: EventTileLanded, Position: p, Kind: tile.Kind, Bomb: tile.Bomb})
		}
	}
}

// moveTileDown carries a falling tile's full cell content (and a Dynamic
// cover, if any) from its old logical cell into the new one, carrying
// velocity and visual position forward rather than resetting them.
func moveTileDown(state *GameState, from, to Position) {
	fromIdx, toIdx := state.idx(from), state.idx(to)

	t := state.Grid[fromIdx]
	t.LogicalPos = to
	state.Grid[toIdx] = t
	state.Grid[fromIdx] = Tile{LogicalPos: from, VisualPos: Vec2{X: float32(from.X), Y: float32(from.Y)}}

	if fromCover := state.Covers[fromIdx]; fromCover.Dynamic {
		state.Covers[toIdx] = fromCover
		state.Covers[fromIdx] = Cover{}
	}
}

// Refill spawns a fresh tile in every empty, non-suspended cell of row 0,
// appearing visually one cell above the board so it falls into place under
// normal gravity (spec.md §4.8). It returns whether anything was spawned.
func Refill(state *GameState, model SpawnModel, tick uint64, collector EventCollector) bool {
	spawnedAny := false
	for x := 0; x < state.Width; x++ {
		p := Position{X: x, Y: 0}
		t := state.At(p)
		if !t.Empty() || t.Flags.Suspended {
			continue
		}

		kind := model.Predict(state, x, SpawnContext{Tick: tick})
		*t = Tile{
			ID:         state.AllocTileID(),
			Kind:       kind,
			LogicalPos: p,
			VisualPos:  Vec2{X: float32(x), Y: -1},
			Flags:      TileFlags{Falling: true},
		}
		spawnedAny = true
		if collector.IsEnabled() {
			collector.Emit(Event{Type: EventTileSpawned, Position: p, Kind: kind})
		}
	}
	return spawnedAny
}
