package match3

import "testing"

func line(y, x0, x1 int) []Position {
	var out []Position
	for x := x0; x <= x1; x++ {
		out = append(out, Position{X: x, Y: y})
	}
	return out
}

func TestLineRuleLength3YieldsNoCandidate(t *testing.T) {
	cands := DetectShapes(line(0, 0, 2), NewPools())
	for _, c := range cands {
		if c.family == FamilyLine4 || c.family == FamilyLine5 {
			t.Fatalf("length-3 run must not produce a line candidate, got %+v", c)
		}
	}
}

func TestLineRuleLength4YieldsRocket(t *testing.T) {
	cands := DetectShapes(line(0, 0, 3), NewPools())
	found := false
	for _, c := range cands {
		if c.family == FamilyLine4 {
			found = true
			if c.kind != BombVerticalRocket {
				t.Errorf("horizontal run of 4 should spawn a vertical rocket, got %v", c.kind)
			}
			if len(c.cells) != 4 {
				t.Errorf("expected 4 cells, got %d", len(c.cells))
			}
		}
	}
	if !found {
		t.Fatal("expected a Line4 candidate")
	}
}

func TestLineRuleLength5YieldsRainbow(t *testing.T) {
	cands := DetectShapes(line(0, 0, 4), NewPools())
	found := false
	for _, c := range cands {
		if c.family == FamilyLine5 {
			found = true
			if c.kind != BombColorBomb {
				t.Errorf("length-5 run should spawn a colour bomb, got %v", c.kind)
			}
		}
	}
	if !found {
		t.Fatal("expected a Line5 candidate")
	}
}

func TestLineRuleLength6EdgeOnlyRocketPolicy(t *testing.T) {
	cands := DetectShapes(line(0, 0, 5), NewPools()) // length 6: x in [0,5]

	var rockets, rainbows int
	for _, c := range cands {
		switch c.family {
		case FamilyLine4:
			rockets++
		case FamilyLine5:
			rainbows++
		}
	}
	// Sliding 5-windows: [0-4],[1-5] => 2 rainbow candidates.
	if rainbows != 2 {
		t.Errorf("expected 2 rainbow candidates for a length-6 run, got %d", rainbows)
	}
	// Only the two end-anchored 4-windows spawn rockets, not every interior one.
	if rockets != 2 {
		t.Errorf("expected exactly 2 rocket candidates (edge-only policy), got %d", rockets)
	}
}

func TestSquareRuleDetectsFullyInterior2x2(t *testing.T) {
	component := []Position{
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
	}
	cands := DetectShapes(component, NewPools())
	found := false
	for _, c := range cands {
		if c.family == FamilySquare {
			found = true
			if c.kind != BombUfo {
				t.Errorf("square should spawn a UFO, got %v", c.kind)
			}
		}
	}
	if !found {
		t.Fatal("expected a Square candidate for a 2x2 block")
	}
}

func TestSquareRuleSkippedInsideLongRectangle(t *testing.T) {
	// A 2x4 rectangle: both rows are length-4 runs, so the interior 2x2
	// blocks must not also emit a UFO candidate (double-count guard).
	var component []Position
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			component = append(component, Position{X: x, Y: y})
		}
	}
	cands := DetectShapes(component, NewPools())
	for _, c := range cands {
		if c.family == FamilySquare {
			t.Fatalf("2x4 rectangle should not emit a square candidate, got %+v", c)
		}
	}
}

func TestIntersectionRuleRequiresUnionOfAtLeastFive(t *testing.T) {
	// A T-shape: horizontal run of 3 at y=1, vertical run of 3 at x=1,
	// sharing cell (1,1). Union = 3 + 3 - 1 = 5.
	component := append(line(1, 0, 2), Position{X: 1, Y: 0}, Position{X: 1, Y: 2})

	cands := DetectShapes(component, NewPools())
	found := false
	for _, c := range cands {
		if c.family == FamilyIntersection {
			found = true
			if c.kind != BombAreaBomb {
				t.Errorf("intersection should spawn an area bomb, got %v", c.kind)
			}
			if len(c.cells) < 5 {
				t.Errorf("intersection union must be >= 5 cells, got %d", len(c.cells))
			}
		}
	}
	if !found {
		t.Fatal("expected an Intersection candidate for the T-shape")
	}
}
