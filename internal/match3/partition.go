package match3

import "sort"

// kindPriority orders bomb kinds for tie-breaking, per spec.md §4.2:
// Rainbow > AreaBomb > Rocket > UFO. Lower value wins a tie.
func kindPriority(k BombKind) int {
	switch k {
	case BombColorBomb:
		return 0
	case BombAreaBomb:
		return 1
	case BombHorizontalRocket, BombVerticalRocket:
		return 2
	case BombUfo:
		return 3
	default:
		return 4
	}
}

// candidateLess reports whether a should be preferred over b when
// breaking ties: weight desc, then kind priority, then anchor lex order
// (spec.md §4.2).
func candidateLess(a, b shapeCandidate) bool {
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	if pa, pb := kindPriority(a.kind), kindPriority(b.kind); pa != pb {
		return pa < pb
	}
	return lessPos(a.anchor, b.anchor)
}

// PartitionPlan is the result of resolving a candidate set into a
// disjoint, weight-maximizing selection (spec.md §4.2).
type PartitionPlan struct {
	Selected []shapeCandidate
}

// exactSearchCandidateLimit bounds the branch-and-bound exact search.
// Above this many candidates the planner falls back to the deterministic
// greedy (spec.md §9 Open Question: exact threshold left to the
// implementer). See SPEC_FULL.md §11 for the chosen default and rationale.
// internal/config overrides this at process start via SetExactSearchLimit.
var exactSearchCandidateLimit = 20

// SetExactSearchLimit overrides the candidate-count threshold above which
// planPartition falls back from exact branch-and-bound search to the
// greedy heuristic. Exists so internal/config can tune it per deployment
// without the core importing a config package itself.
func SetExactSearchLimit(n int) {
	if n > 0 {
		exactSearchCandidateLimit = n
	}
}

// planPartition selects a pairwise-disjoint, weight-maximizing subset of
// candidates. Ties are broken deterministically per candidateLess.
//
// ordered is scratch: a pool-acquired copy of candidates, sorted in place
// and released before returning (spec.md §5). Only the extracted Selected
// slice — freshly allocated by exactPartition/greedyPartition, never
// aliasing ordered's backing array — escapes this call.
func planPartition(candidates []shapeCandidate, pools *Pools) PartitionPlan {
	ordered := pools.acquireCandidates()
	ordered = append(ordered, candidates...)
	sort.SliceStable(ordered, func(i, j int) bool { return candidateLess(ordered[i], ordered[j]) })

	var selected []shapeCandidate
	if len(ordered) <= exactSearchCandidateLimit {
		selected = exactPartition(ordered)
	} else {
		selected = greedyPartition(ordered)
	}
	pools.releaseCandidates(ordered)
	return PartitionPlan{Selected: selected}
}

// exactPartition performs a branch-and-bound search for the maximum
// total-weight, pairwise cell-disjoint subset. Candidates are assumed
// pre-sorted by candidateLess so that the "include greedily first"
// branch order matches the desired tie-break when several subsets tie on
// weight.
func exactPartition(ordered []shapeCandidate) []shapeCandidate {
	n := len(ordered)
	suffixMax := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMax[i] = suffixMax[i+1] + int(ordered[i].weight)
	}

	var best []int
	bestWeight := -1

	var chosen []int

	var rec func(i, curWeight int, occupied map[Position]bool)
	rec = func(i, curWeight int, occupied map[Position]bool) {
		if curWeight+suffixMax[i] <= bestWeight {
			return // cannot possibly beat the current best
		}
		if i == n {
			if curWeight > bestWeight {
				bestWeight = curWeight
				best = append([]int(nil), chosen...)
			}
			return
		}

		// Branch 1: include ordered[i], if it doesn't conflict.
		cand := ordered[i]
		conflict := false
		for _, p := range cand.cells {
			if occupied[p] {
				conflict = true
				break
			}
		}
		if !conflict {
			for _, p := range cand.cells {
				occupied[p] = true
			}
			chosen = append(chosen, i)
			rec(i+1, curWeight+int(cand.weight), occupied)
			chosen = chosen[:len(chosen)-1]
			for _, p := range cand.cells {
				delete(occupied, p)
			}
		}

		// Branch 2: exclude ordered[i].
		rec(i+1, curWeight, occupied)
	}

	rec(0, 0, map[Position]bool{})

	out := make([]shapeCandidate, 0, len(best))
	for _, i := range best {
		out = append(out, ordered[i])
	}
	return out
}

// greedyPartition picks candidates highest-weight first, skipping any
// that conflict with an already-chosen cell. Used above
// exactSearchCandidateLimit candidates.
func greedyPartition(ordered []shapeCandidate) []shapeCandidate {
	occupied := map[Position]bool{}
	var out []shapeCandidate
	for _, cand := range ordered {
		conflict := false
		for _, p := range cand.cells {
			if occupied[p] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for _, p := range cand.cells {
			occupied[p] = true
		}
		out = append(out, cand)
	}
	return out
}

// BuildMatchGroups resolves a connected, same-coloured component into its
// final set of MatchGroups: the disjoint selection from the partition
// planner (with line-scrap absorption applied), plus simple match groups
// covering any residual run of length >= 3 (spec.md §4.2).
func BuildMatchGroups(kind TileKind, component []Position, pools *Pools) []MatchGroup {
	candidates := DetectShapes(component, pools)
	plan := planPartition(candidates, pools)
	pools.releaseCandidates(candidates)

	componentSet := make(map[Position]bool, len(component))
	for _, p := range component {
		componentSet[p] = true
	}

	used := map[Position]bool{}
	groups := make([]MatchGroup, 0, len(plan.Selected)+1)

	for _, cand := range plan.Selected {
		cells := append([]Position(nil), cand.cells...)
		for _, p := range cells {
			used[p] = true
		}

		if cand.family == FamilyLine4 || cand.family == FamilyLine5 {
			cells = absorbLineScrap(cells, cand, componentSet, used)
		}

		groups = append(groups, MatchGroup{
			Kind:      kind,
			Positions: cells,
			SpawnBomb: cand.kind,
		})
	}

	// Residual handling: any connected residual sub-region that still
	// contains a run of length >= 3 becomes a simple match group.
	residual := make([]Position, 0, len(component))
	for _, p := range component {
		if !used[p] {
			residual = append(residual, p)
		}
	}
	groups = append(groups, residualGroups(kind, residual, pools)...)

	return groups
}

// absorbLineScrap extends a selected Line-4/Line-5 group along its own
// axis into adjacent, unused, collinear residual cells of the same
// component. Perpendicular residuals are never absorbed (anchored by the
// IrregularShape_Hook test in spec.md §4.2).
func absorbLineScrap(cells []Position, cand shapeCandidate, componentSet, used map[Position]bool) []Position {
	horizontal := cand.cells[0].Y == cand.cells[len(cand.cells)-1].Y

	sorted := append([]Position(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool {
		if horizontal {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	extend := func(p Position, dx, dy int) []Position {
		var added []Position
		next := p.Add(dx, dy)
		for componentSet[next] && !used[next] {
			added = append(added, next)
			used[next] = true
			next = next.Add(dx, dy)
		}
		return added
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	if horizontal {
		cells = append(cells, extend(first, -1, 0)...)
		cells = append(cells, extend(last, 1, 0)...)
	} else {
		cells = append(cells, extend(first, 0, -1)...)
		cells = append(cells, extend(last, 0, 1)...)
	}
	return cells
}

// residualGroups finds every connected sub-region of residual that still
// contains a run of length >= 3, and emits it as a bomb-less MatchGroup.
// Cells belonging to no run are discarded entirely (not cleared).
func residualGroups(kind TileKind, residual []Position, pools *Pools) []MatchGroup {
	if len(residual) == 0 {
		return nil
	}

	residualSet := make(map[Position]bool, len(residual))
	for _, p := range residual {
		residualSet[p] = true
	}

	visited := map[Position]bool{}
	var groups []MatchGroup

	for _, start := range residual {
		if visited[start] {
			continue
		}
		// Flood-fill the connected sub-region containing start. Both
		// scratch slices are pool-acquired and released once this
		// iteration's region set has been copied out below.
		region := pools.AcquirePositions()
		queue := pools.AcquirePositions()
		queue = append(queue, start)
		visited[start] = true
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			region = append(region, p)
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				n := p.Add(d[0], d[1])
				if residualSet[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		pools.ReleasePositions(queue)

		regionSet := make(map[Position]bool, len(region))
		for _, p := range region {
			regionSet[p] = true
		}
		pools.ReleasePositions(region)
		hlines := findHLines(regionSet)
		vlines := findVLines(regionSet)

		inRun := map[Position]bool{}
		for _, r := range hlines {
			for _, p := range r.cells {
				inRun[p] = true
			}
		}
		for _, r := range vlines {
			for _, p := range r.cells {
				inRun[p] = true
			}
		}
		if len(inRun) == 0 {
			continue
		}

		cells := make([]Position, 0, len(inRun))
		for p := range inRun {
			cells = append(cells, p)
		}
		sort.Slice(cells, func(i, j int) bool { return lessPos(cells[i], cells[j]) })

		groups = append(groups, MatchGroup{
			Kind:      kind,
			Positions: cells,
			SpawnBomb: BombNone,
		})
	}

	return groups
}
