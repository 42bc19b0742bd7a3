package match3

// FindMatches scans the full board for 4-neighbour-connected, same-coloured
// components of length >= 3 and resolves each into its MatchGroups via
// BuildMatchGroups (spec.md §4.1/§4.2). Suspended, empty and Cage-covered
// cells never participate — a Cage blocks matching entirely (spec.md §3).
// Used both by swap validation and by the tick loop's cascade resolution
// (spec.md §4.9).
func FindMatches(state *GameState) []MatchGroup {
	visited := make(map[Position]bool, state.Width*state.Height)
	groups := state.Pools.AcquireMatchGroups()

	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			start := Position{X: x, Y: y}
			if visited[start] {
				continue
			}
			t := state.At(start)
			if !t.Kind.IsOrdinaryColour() || t.Flags.Suspended || state.CoverAt(start).BlocksMatching() {
				visited[start] = true
				continue
			}

			component := floodFillSameColour(state, start, visited)
			if len(component) < 3 {
				state.Pools.ReleasePositions(component)
				continue
			}
			groups = append(groups, BuildMatchGroups(t.Kind, component, state.Pools)...)
			state.Pools.ReleasePositions(component)
		}
	}
	return groups
}

// floodFillSameColour collects the 4-neighbour-connected region of cells
// sharing start's colour, marking every visited cell (matched or not) in
// visited so the outer scan never revisits it. A Cage-covered cell never
// joins the region (spec.md §3: Cage blocks matching).
//
// The returned slice is pool-acquired scratch (spec.md §5); the caller owns
// it and must release it back via state.Pools.ReleasePositions once done.
func floodFillSameColour(state *GameState, start Position, visited map[Position]bool) []Position {
	kind := state.At(start).Kind
	region := state.Pools.AcquirePositions()
	queue := state.Pools.AcquirePositions()
	queue = append(queue, start)
	visited[start] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.Add(d[0], d[1])
			if !state.InBounds(n) || visited[n] {
				continue
			}
			t := state.At(n)
			if t.Kind == kind && !t.Flags.Suspended && !state.CoverAt(n).BlocksMatching() {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	state.Pools.ReleasePositions(queue)
	return region
}

// HasAnyMatch reports whether the board contains at least one run of
// length >= 3 anywhere, without paying for full shape/partition resolution.
// Used by Engine.isStable's final check (spec.md §4.9).
func HasAnyMatch(state *GameState) bool {
	visited := make(map[Position]bool, state.Width*state.Height)
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			start := Position{X: x, Y: y}
			if visited[start] {
				continue
			}
			t := state.At(start)
			if !t.Kind.IsOrdinaryColour() || t.Flags.Suspended || state.CoverAt(start).BlocksMatching() {
				visited[start] = true
				continue
			}
			region := floodFillSameColour(state, start, visited)
			set := make(map[Position]bool, len(region))
			for _, p := range region {
				set[p] = true
			}
			state.Pools.ReleasePositions(region)
			if len(findHLines(set)) > 0 || len(findVLines(set)) > 0 {
				return true
			}
		}
	}
	return false
}
