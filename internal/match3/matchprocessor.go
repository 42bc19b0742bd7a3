package match3

// ProcessGroups clears a set of resolved MatchGroups against state:
// choosing bomb origins, damaging cover/ground overlays, destroying cells,
// placing newly spawned bombs, and collecting any pre-existing bombs that
// were caught in the clear (spec.md §4.6). foci carries the swap endpoints
// (0, 1 or 2 positions) consulted by ChooseBombOrigin; it is empty for
// cascade matches with no originating swap.
//
// It returns the total score increment and the positions of bombs that
// were triggered (not yet destroyed — the caller enqueues these into the
// explosion scheduler) rather than simply cleared.
func ProcessGroups(state *GameState, groups []MatchGroup, foci []Position, score ScoreSystem, collector EventCollector) (int32, []Position) {
	var scoreDelta int32
	var triggered []Position

	for i := range groups {
		g := &groups[i]
		if g.SpawnBomb != BombNone {
			origin := ChooseBombOrigin(*g, foci, state.Random)
			g.BombOrigin = &origin
		}
	}

	for _, g := range groups {
		scoreDelta += score.MatchScore(g)
		if collector.IsEnabled() {
			collector.Emit(Event{
				Type:      EventMatchDetected,
				Positions: append([]Position(nil), g.Positions...),
				TileCount: len(g.Positions),
				SpawnBomb: g.SpawnBomb,
			})
		}

		for _, p := range g.Positions {
			if g.BombOrigin != nil && p == *g.BombOrigin {
				continue // protected: becomes the new bomb tile
			}
			t := state.At(p)
			if t.Bomb != BombNone {
				triggered = append(triggered, p)
				continue // a pre-existing bomb is triggered, not destroyed here
			}
			destroyCell(state, p, collector)
		}

		if g.BombOrigin != nil {
			placeBomb(state, *g.BombOrigin, g.Kind, g.SpawnBomb, collector)
		}
	}

	return scoreDelta, triggered
}

// destroyCell applies one hit to the cell at p: a blocking cover (Cage or
// Chain) absorbs the hit and preserves the tile until its own HP reaches
// zero; a non-blocking Ground overlay takes damage alongside the tile; the
// tile itself is cleared only when no blocking cover remains (spec.md
// §3/§4.6). Chain differs from Cage only in match eligibility
// (Cover.BlocksMatching): both block the clear itself identically.
func destroyCell(state *GameState, p Position, collector EventCollector) {
	cover := state.CoverAt(p)
	if cover.Kind != CoverNone && cover.BlocksClear() {
		if cover.HP > 0 {
			cover.HP--
		}
		if cover.HP == 0 {
			k := cover.Kind
			*cover = Cover{}
			if collector.IsEnabled() {
				collector.Emit(Event{Type: EventCoverDestroyed, Position: p, CoverK: k})
			}
		}
		return
	}

	ground := state.GroundAt(p)
	if ground.Kind != GroundNone && ground.HP > 0 {
		ground.HP--
		if collector.IsEnabled() {
			collector.Emit(Event{Type: EventGroundDamaged, Position: p, GroundK: ground.Kind, Remain: ground.HP})
		}
	}

	tile := state.At(p)
	kind, bomb := tile.Kind, tile.Bomb
	*tile = Tile{LogicalPos: p, VisualPos: tile.VisualPos}
	if collector.IsEnabled() {
		collector.Emit(Event{Type: EventTileDestroyed, Position: p, Kind: kind, Bomb: bomb})
	}
}

// placeBomb writes the newly spawned bomb onto origin's tile. A ColorBomb
// overrides the tile's displayed kind to Rainbow; every other bomb keeps
// the matched colour and only decorates its Bomb field (spec.md §4.6).
func placeBomb(state *GameState, origin Position, kind TileKind, bomb BombKind, collector EventCollector) {
	displayKind := kind
	if bomb == BombColorBomb {
		displayKind = KindRainbow
	}

	tile := state.At(origin)
	tile.Kind = displayKind
	tile.Bomb = bomb
	tile.Flags.JustLanded = false

	if collector.IsEnabled() {
		collector.Emit(Event{Type: EventBombCreated, Position: origin, Kind: displayKind, Bomb: bomb})
	}
}
