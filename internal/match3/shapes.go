package match3

import "sort"

// ShapeFamily classifies the template a shapeCandidate was generated
// from, independent of the BombKind it spawns (spec.md §4.1's
// "shape: enum" field).
type ShapeFamily uint8

const (
	FamilyLine4 ShapeFamily = iota
	FamilyLine5
	FamilySquare
	FamilyIntersection
)

// Candidate weights, fixed by spec.md §4.1.
const (
	weightLine4        uint16 = 40
	weightLine5        uint16 = 130
	weightSquare       uint16 = 20
	weightIntersection uint16 = 60
)

// shapeCandidate is a detected-but-not-yet-selected shape. The partition
// planner resolves overlapping candidates into a disjoint MatchGroup set.
type shapeCandidate struct {
	kind   BombKind
	family ShapeFamily
	cells  []Position
	weight uint16
	anchor Position
}

// run is a maximal same-row/same-column sequence of component cells of
// length >= 3, ordered along its axis.
type run struct {
	horizontal bool
	cells      []Position
}

// DetectShapes runs the LineRule, SquareRule and IntersectionRule over a
// connected, same-coloured component (spec.md §4.1). component must be a
// 4-neighbour connected set; passing a disconnected set is a programmer
// contract violation (spec.md §7), but connectivity is not checked here or
// in the partition planner: a disconnected set silently produces
// incomplete or incorrect candidates, so callers uphold it themselves.
//
// The returned slice is acquired from pools (spec.md §5's scratch-container
// pool contract); the caller owns it and must release it back via
// pools.releaseCandidates once done, exactly as BuildMatchGroups does.
func DetectShapes(component []Position, pools *Pools) []shapeCandidate {
	set := make(map[Position]bool, len(component))
	for _, p := range component {
		set[p] = true
	}

	hlines := findHLines(set)
	vlines := findVLines(set)

	candidates := pools.acquireCandidates()
	for _, r := range hlines {
		candidates = append(candidates, lineRuleCandidates(r)...)
	}
	for _, r := range vlines {
		candidates = append(candidates, lineRuleCandidates(r)...)
	}
	candidates = append(candidates, squareRuleCandidates(set, hlines, vlines)...)
	candidates = append(candidates, intersectionRuleCandidates(hlines, vlines)...)

	return candidates
}

// findHLines returns all maximal horizontal runs of length >= 3.
func findHLines(set map[Position]bool) []run {
	byRow := map[int][]int{}
	for p := range set {
		byRow[p.Y] = append(byRow[p.Y], p.X)
	}

	var runs []run
	for y, xs := range byRow {
		sort.Ints(xs)
		i := 0
		for i < len(xs) {
			j := i
			for j+1 < len(xs) && xs[j+1] == xs[j]+1 {
				j++
			}
			if j-i+1 >= 3 {
				cells := make([]Position, 0, j-i+1)
				for k := i; k <= j; k++ {
					cells = append(cells, Position{X: xs[k], Y: y})
				}
				runs = append(runs, run{horizontal: true, cells: cells})
			}
			i = j + 1
		}
	}
	sort.Slice(runs, func(i, j int) bool { return lessPos(runs[i].cells[0], runs[j].cells[0]) })
	return runs
}

// findVLines returns all maximal vertical runs of length >= 3.
func findVLines(set map[Position]bool) []run {
	byCol := map[int][]int{}
	for p := range set {
		byCol[p.X] = append(byCol[p.X], p.Y)
	}

	var runs []run
	for x, ys := range byCol {
		sort.Ints(ys)
		i := 0
		for i < len(ys) {
			j := i
			for j+1 < len(ys) && ys[j+1] == ys[j]+1 {
				j++
			}
			if j-i+1 >= 3 {
				cells := make([]Position, 0, j-i+1)
				for k := i; k <= j; k++ {
					cells = append(cells, Position{X: x, Y: ys[k]})
				}
				runs = append(runs, run{horizontal: false, cells: cells})
			}
			i = j + 1
		}
	}
	sort.Slice(runs, func(i, j int) bool { return lessPos(runs[i].cells[0], runs[j].cells[0]) })
	return runs
}

func lessPos(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// lineRuleCandidates applies spec.md §4.1's LineRule to a single run.
func lineRuleCandidates(r run) []shapeCandidate {
	L := len(r.cells)
	rocketKind := BombVerticalRocket
	if !r.horizontal {
		rocketKind = BombHorizontalRocket
	}

	switch {
	case L == 3:
		return nil

	case L == 4:
		return []shapeCandidate{{
			kind:   rocketKind,
			family: FamilyLine4,
			cells:  append([]Position(nil), r.cells...),
			weight: weightLine4,
			anchor: r.cells[0],
		}}

	case L == 5:
		return []shapeCandidate{{
			kind:   BombColorBomb,
			family: FamilyLine5,
			cells:  append([]Position(nil), r.cells...),
			weight: weightLine5,
			anchor: r.cells[0],
		}}

	default: // L >= 6
		var out []shapeCandidate
		for start := 0; start+5 <= L; start++ {
			window := append([]Position(nil), r.cells[start:start+5]...)
			out = append(out, shapeCandidate{
				kind:   BombColorBomb,
				family: FamilyLine5,
				cells:  window,
				weight: weightLine5,
				anchor: window[0],
			})
		}
		// Edge-only rocket policy: only the two end-anchored size-4
		// windows spawn rockets, not every interior size-4 window.
		first := append([]Position(nil), r.cells[0:4]...)
		out = append(out, shapeCandidate{
			kind:   rocketKind,
			family: FamilyLine4,
			cells:  first,
			weight: weightLine4,
			anchor: first[0],
		})
		last := append([]Position(nil), r.cells[L-4:L]...)
		out = append(out, shapeCandidate{
			kind:   rocketKind,
			family: FamilyLine4,
			cells:  last,
			weight: weightLine4,
			anchor: last[0],
		})
		return out
	}
}

// squareRuleCandidates applies spec.md §4.1's SquareRule: every fully
// interior 2x2 block emits a UFO candidate, unless it would double-count
// inside a 2xN rectangle already dominated by rockets.
func squareRuleCandidates(set map[Position]bool, hlines, vlines []run) []shapeCandidate {
	rowLong := longRunCoverage(hlines, true)
	colLong := longRunCoverage(vlines, false)

	var out []shapeCandidate
	for p := range set {
		x, y := p.X, p.Y
		c00 := Position{X: x, Y: y}
		c10 := Position{X: x + 1, Y: y}
		c01 := Position{X: x, Y: y + 1}
		c11 := Position{X: x + 1, Y: y + 1}
		if !set[c10] || !set[c01] || !set[c11] {
			continue
		}

		row0Long := cellCoveredByLongRun(rowLong, y, x, x+1)
		row1Long := cellCoveredByLongRun(rowLong, y+1, x, x+1)
		col0Long := cellCoveredByLongRunCol(colLong, x, y, y+1)
		col1Long := cellCoveredByLongRunCol(colLong, x+1, y, y+1)

		if (row0Long && row1Long) || (col0Long && col1Long) {
			continue
		}

		out = append(out, shapeCandidate{
			kind:   BombUfo,
			family: FamilySquare,
			cells:  []Position{c00, c10, c01, c11},
			weight: weightSquare,
			anchor: c00,
		})
	}

	sort.Slice(out, func(i, j int) bool { return lessPos(out[i].anchor, out[j].anchor) })
	return out
}

// longRunCoverage builds a lookup of which (row-or-col, position-along-axis)
// pairs are covered by a run of length >= 4 on that axis.
func longRunCoverage(runs []run, horizontal bool) map[[2]int]bool {
	cov := map[[2]int]bool{}
	for _, r := range runs {
		if r.horizontal != horizontal || len(r.cells) < 4 {
			continue
		}
		for _, p := range r.cells {
			if horizontal {
				cov[[2]int{p.Y, p.X}] = true
			} else {
				cov[[2]int{p.X, p.Y}] = true
			}
		}
	}
	return cov
}

func cellCoveredByLongRun(rowLong map[[2]int]bool, y, x0, x1 int) bool {
	return rowLong[[2]int{y, x0}] && rowLong[[2]int{y, x1}]
}

func cellCoveredByLongRunCol(colLong map[[2]int]bool, x, y0, y1 int) bool {
	return colLong[[2]int{x, y0}] && colLong[[2]int{x, y1}]
}

// intersectionRuleCandidates applies spec.md §4.1's IntersectionRule:
// every HLine/VLine pair sharing a cell whose union is >= 5 cells spawns
// an AreaBomb candidate covering the union.
func intersectionRuleCandidates(hlines, vlines []run) []shapeCandidate {
	var out []shapeCandidate
	for _, h := range hlines {
		hRow := h.cells[0].Y
		hMinX, hMaxX := h.cells[0].X, h.cells[len(h.cells)-1].X
		for _, v := range vlines {
			vCol := v.cells[0].X
			vMinY, vMaxY := v.cells[0].Y, v.cells[len(v.cells)-1].Y

			if vCol < hMinX || vCol > hMaxX || hRow < vMinY || hRow > vMaxY {
				continue
			}

			union := map[Position]bool{}
			for _, p := range h.cells {
				union[p] = true
			}
			for _, p := range v.cells {
				union[p] = true
			}
			if len(union) < 5 {
				continue
			}

			cells := make([]Position, 0, len(union))
			for p := range union {
				cells = append(cells, p)
			}
			sort.Slice(cells, func(i, j int) bool { return lessPos(cells[i], cells[j]) })

			out = append(out, shapeCandidate{
				kind:   BombAreaBomb,
				family: FamilyIntersection,
				cells:  cells,
				weight: weightIntersection,
				anchor: Position{X: vCol, Y: hRow},
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessPos(out[i].anchor, out[j].anchor) })
	return out
}
