package match3

// bombEffect computes the affected cell set for a bomb activated at
// origin. Each kind is a plain function in a package-level dispatch
// table, mirroring the teacher's cachedHitboxes map (hitbox.go) and
// DefaultComboDefinitions (combat.go): built once, looked up by value,
// no per-call allocation of the table itself (spec.md §9: "tagged
// variants with a static dispatch table").
type bombEffect func(state *GameState, origin Position) []Position

var bombEffects = map[BombKind]bombEffect{
	BombHorizontalRocket: horizontalRocketEffect,
	BombVerticalRocket:   verticalRocketEffect,
	BombAreaBomb:         areaBombEffect,
	BombUfo:              ufoEffect,
	BombColorBomb:        colorBombEffect,
}

// ActivateBomb returns the affected cell set for kind activated at
// origin. Activation does not recurse: cascading into newly-triggered
// bombs is the explosion scheduler's job (spec.md §4.4).
func ActivateBomb(state *GameState, kind BombKind, origin Position) []Position {
	fn, ok := bombEffects[kind]
	if !ok {
		return nil
	}
	return fn(state, origin)
}

func horizontalRocketEffect(state *GameState, origin Position) []Position {
	out := make([]Position, 0, state.Width)
	for x := 0; x < state.Width; x++ {
		out = append(out, Position{X: x, Y: origin.Y})
	}
	return out
}

func verticalRocketEffect(state *GameState, origin Position) []Position {
	out := make([]Position, 0, state.Height)
	for y := 0; y < state.Height; y++ {
		out = append(out, Position{X: origin.X, Y: y})
	}
	return out
}

func areaBombEffect(state *GameState, origin Position) []Position {
	return blockAround(state, origin, 2) // 5x5 = radius 2
}

// blockAround returns every in-bounds cell within the given Chebyshev
// radius of origin.
func blockAround(state *GameState, origin Position, radius int) []Position {
	out := make([]Position, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := origin.Add(dx, dy)
			if state.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// smallCross returns origin plus its four orthogonal neighbours, clipped
// to the board. This is the UFO bomb's base shape, shared by the plain
// UFO effect and by every combo rule that places a "small cross" without
// the extra random shot.
func smallCross(state *GameState, origin Position) []Position {
	out := []Position{origin}
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		p := origin.Add(d[0], d[1])
		if state.InBounds(p) {
			out = append(out, p)
		}
	}
	return out
}

// ufoEffect returns the small cross around origin plus one additional
// random non-empty, non-suspended cell drawn uniformly from the rest of
// the board (spec.md §4.4, §9 Open Question).
func ufoEffect(state *GameState, origin Position) []Position {
	out := smallCross(state, origin)

	crossSet := make(map[Position]bool, len(out))
	for _, p := range out {
		crossSet[p] = true
	}

	var candidates []Position
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			p := Position{X: x, Y: y}
			if crossSet[p] {
				continue
			}
			t := state.At(p)
			if t.Kind != KindNone && !t.Flags.Suspended {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) > 0 {
		out = append(out, candidates[state.Random.NextN(len(candidates))])
	}
	return out
}

// MostPopulousColour returns the ordinary colour with the most cells on
// the board, ties broken by Palette enumeration order (spec.md §4.4,
// §9 Open Question). The Rainbow and Bomb tile kinds never count; a
// bomb decoration on an ordinary-coloured tile does not stop it counting.
func MostPopulousColour(state *GameState) (TileKind, bool) {
	counts := map[TileKind]int{}
	for _, t := range state.Grid {
		if t.Kind.IsOrdinaryColour() {
			counts[t.Kind]++
		}
	}

	best := KindNone
	bestCount := 0
	found := false
	for _, k := range Palette {
		c := counts[k]
		if c > bestCount {
			bestCount = c
			best = k
			found = true
		}
	}
	return best, found
}

func colorBombEffect(state *GameState, origin Position) []Position {
	target, ok := MostPopulousColour(state)
	if !ok {
		return nil
	}
	return cellsOfColour(state, target)
}

// cellsOfColour returns every cell whose tile is exactly kind.
func cellsOfColour(state *GameState, kind TileKind) []Position {
	var out []Position
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			p := Position{X: x, Y: y}
			if state.At(p).Kind == kind {
				out = append(out, p)
			}
		}
	}
	return out
}
