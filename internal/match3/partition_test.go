package match3

import "testing"

func TestBuildMatchGroupsSimpleLine3(t *testing.T) {
	groups := BuildMatchGroups(KindRed, line(0, 0, 2), NewPools())
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].SpawnBomb != BombNone {
		t.Errorf("length-3 match should not spawn a bomb, got %v", groups[0].SpawnBomb)
	}
	if len(groups[0].Positions) != 3 {
		t.Errorf("expected 3 cells, got %d", len(groups[0].Positions))
	}
}

func TestBuildMatchGroupsLine4SpawnsSingleRocket(t *testing.T) {
	groups := BuildMatchGroups(KindBlue, line(0, 0, 3), NewPools())
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].SpawnBomb != BombVerticalRocket {
		t.Errorf("expected a vertical rocket, got %v", groups[0].SpawnBomb)
	}
	if groups[0].BombOrigin != nil {
		t.Fatal("bomb origin is chosen later by ProcessGroups, not by BuildMatchGroups")
	}
}

// IrregularShape_Hook: a length-4 run with one perpendicular cell hanging
// off its end. The perpendicular scrap must not be absorbed into the
// selected line group — it becomes its own residual group (or is dropped
// if it forms no run of its own). A longer perpendicular arm would form a
// vertical run of 3 and turn the shape into an AreaBomb intersection.
func TestIrregularShapeHookDoesNotAbsorbPerpendicularScrap(t *testing.T) {
	component := append(line(0, 0, 3), Position{X: 0, Y: 1})

	groups := BuildMatchGroups(KindGreen, component, NewPools())

	var lineGroup *MatchGroup
	for i := range groups {
		if groups[i].SpawnBomb == BombVerticalRocket {
			lineGroup = &groups[i]
		}
	}
	if lineGroup == nil {
		t.Fatal("expected the length-4 run to produce a rocket group")
	}
	for _, p := range lineGroup.Positions {
		if p.Y != 0 {
			t.Errorf("rocket group absorbed a perpendicular cell: %+v", p)
		}
	}
}

func TestBuildMatchGroupsIndependentComponentsDontConflict(t *testing.T) {
	g1 := BuildMatchGroups(KindYellow, line(0, 0, 3), NewPools())
	g2 := BuildMatchGroups(KindYellow, line(5, 0, 3), NewPools())
	if len(g1) != 1 || len(g2) != 1 {
		t.Fatalf("expected one group per disjoint line, got %d and %d", len(g1), len(g2))
	}
}

func TestBuildMatchGroupsLongRunUnderExactLimit(t *testing.T) {
	// A length-8 run yields 6 candidates, well under
	// exactSearchCandidateLimit, so this only exercises exactPartition.
	// Confirms no panic and a sane non-empty result for a larger shape.
	groups := BuildMatchGroups(KindPurple, line(0, 0, 7), NewPools())
	total := 0
	for _, g := range groups {
		total += len(g.Positions)
	}
	if total == 0 {
		t.Fatal("expected at least one cell cleared from a length-8 run")
	}
}
