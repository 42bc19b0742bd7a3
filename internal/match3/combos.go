package match3

// comboCategory groups the four bomb kinds into the classes spec.md §4.5's
// combo table is keyed on. Horizontal and Vertical rockets share a class;
// which concrete orientation matters only for the rules that say so
// explicitly (Rocket x Rocket, Rocket x UFO, Rocket x Colour).
type comboCategory uint8

const (
	comboCatRocket comboCategory = iota
	comboCatArea
	comboCatUfo
	comboCatColor
)

func categoryOf(k BombKind) (comboCategory, bool) {
	switch k {
	case BombHorizontalRocket, BombVerticalRocket:
		return comboCatRocket, true
	case BombAreaBomb:
		return comboCatArea, true
	case BombUfo:
		return comboCatUfo, true
	case BombColorBomb:
		return comboCatColor, true
	}
	return 0, false
}

// ResolveCombo returns the affected cell set for two bombs meeting on a
// swap, per spec.md §4.5. from/to are the swapped cells; kindA is the bomb
// at from, kindB the bomb at to. It returns nil unless both kinds are bombs;
// a Rainbow swapped with an ordinary tile goes through ResolveRainbowSwap.
//
// The caller (engine.go's resolveComboSwap) empties both combining cells
// right after this returns and before the blast is scheduled, so when the
// explosion reaches either cell it finds no live bomb to re-trigger.
func ResolveCombo(state *GameState, from, to Position, kindA, kindB BombKind) []Position {
	catA, okA := categoryOf(kindA)
	catB, okB := categoryOf(kindB)
	if !okA || !okB {
		return nil
	}

	target := to
	is := func(x, y comboCategory) bool {
		return (catA == x && catB == y) || (catA == y && catB == x)
	}
	rocketOrientation := func() BombKind {
		if catA == comboCatRocket {
			return kindA
		}
		return kindB
	}

	switch {
	case is(comboCatRocket, comboCatRocket):
		return rocketCrossEffect(state, target)

	case is(comboCatRocket, comboCatArea):
		return threeByThreeBand(state, target)

	case is(comboCatRocket, comboCatUfo):
		out := smallCross(state, target)
		out = append(out, rocketLine(state, target, rocketOrientation())...)
		return out

	case is(comboCatRocket, comboCatColor):
		return convertColourAndFire(state, rocketOrientation())

	case is(comboCatArea, comboCatArea):
		return blockAround(state, target, 4) // 9x9

	case is(comboCatArea, comboCatUfo):
		out := smallCross(state, target)
		out = append(out, blockAround(state, target, 2)...) // 5x5
		return out

	case is(comboCatArea, comboCatColor):
		return convertColourAndFire(state, BombAreaBomb)

	case is(comboCatUfo, comboCatUfo):
		out := smallCross(state, from)
		out = append(out, smallCross(state, to)...)
		for i := 0; i < 3; i++ {
			if p, ok := randomNonEmptyCell(state); ok {
				out = append(out, smallCross(state, p)...)
			}
		}
		return out

	case is(comboCatUfo, comboCatColor):
		return convertColourAndFire(state, BombUfo)

	case is(comboCatColor, comboCatColor):
		return entireBoard(state)
	}

	return nil
}

// ResolveRainbowSwap implements the manual-swap special case from
// spec.md §4.5: a Rainbow tile swapped against an ordinary colour clears
// every cell of that colour, with no bomb conversion involved.
func ResolveRainbowSwap(state *GameState, colour TileKind) []Position {
	return cellsOfColour(state, colour)
}

func rocketCrossEffect(state *GameState, target Position) []Position {
	out := horizontalRocketEffect(state, target)
	for _, p := range verticalRocketEffect(state, target) {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// rocketLine fires a single row (Horizontal) or column (Vertical) through
// target, matching the combining rocket's own orientation.
func rocketLine(state *GameState, target Position, orientation BombKind) []Position {
	if orientation == BombVerticalRocket {
		return verticalRocketEffect(state, target)
	}
	return horizontalRocketEffect(state, target)
}

// threeByThreeBand returns the three rows and three columns centred on
// target, clipped to the board (Rocket x Area, spec.md §4.5).
func threeByThreeBand(state *GameState, target Position) []Position {
	seen := map[Position]bool{}
	var out []Position
	add := func(p Position) {
		if state.InBounds(p) && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for dy := -1; dy <= 1; dy++ {
		for x := 0; x < state.Width; x++ {
			add(Position{X: x, Y: target.Y + dy})
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for y := 0; y < state.Height; y++ {
			add(Position{X: target.X + dx, Y: y})
		}
	}
	return out
}

// convertColourAndFire finds the board's most populous ordinary colour and
// fires a bomb of kind at every cell of that colour, unioning the results.
// Used by every "converted and fired" combo rule (Rocket/Area/UFO x Colour).
func convertColourAndFire(state *GameState, kind BombKind) []Position {
	colour, ok := MostPopulousColour(state)
	if !ok {
		return nil
	}

	seen := map[Position]bool{}
	var out []Position
	for _, p := range cellsOfColour(state, colour) {
		for _, affected := range ActivateBomb(state, kind, p) {
			if !seen[affected] {
				seen[affected] = true
				out = append(out, affected)
			}
		}
	}
	return out
}

// randomNonEmptyCell draws one cell uniformly from every non-empty,
// non-suspended cell on the board.
func randomNonEmptyCell(state *GameState) (Position, bool) {
	var candidates []Position
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			p := Position{X: x, Y: y}
			t := state.At(p)
			if t.Kind != KindNone && !t.Flags.Suspended {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return Position{}, false
	}
	return candidates[state.Random.NextN(len(candidates))], true
}

func entireBoard(state *GameState) []Position {
	out := make([]Position, 0, state.Width*state.Height)
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}
