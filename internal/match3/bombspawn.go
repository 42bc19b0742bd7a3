package match3

// ChooseBombOrigin resolves which cell in group keeps the newly spawned
// bomb, per spec.md §4.3:
//  1. exactly one swap focus lies in the group -> that focus
//  2. both swap foci lie in the group -> uniform random choice between them
//  3. otherwise -> uniform random choice among the group's cells
//
// foci has length 0, 1 or 2 (zero when no swap is involved, e.g. a
// cascade match).
func ChooseBombOrigin(group MatchGroup, foci []Position, rng *Rng) Position {
	inGroup := func(p Position) bool {
		for _, gp := range group.Positions {
			if gp == p {
				return true
			}
		}
		return false
	}

	var hits []Position
	for _, f := range foci {
		if inGroup(f) {
			hits = append(hits, f)
		}
	}

	switch len(hits) {
	case 1:
		return hits[0]
	case 2:
		return hits[rng.NextN(2)]
	default:
		return group.Positions[rng.NextN(len(group.Positions))]
	}
}
