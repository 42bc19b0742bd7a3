package match3

import "testing"

func defaultGravityConfig() GravityConfig {
	return GravityConfig{Gravity: 40, MaxFallSpeed: 60}
}

func TestApplyGravityDropsFloatingTileToFloor(t *testing.T) {
	s := NewGameState(1, 5, 6, 1)
	s.Grid[0].Kind = KindRed
	s.Grid[0].ID = s.AllocTileID()
	s.Grid[0].VisualPos = Vec2{X: 0, Y: 0}

	cfg := defaultGravityConfig()
	for i := 0; i < 500 && ApplyGravity(s, 1.0/60.0, cfg, NullCollector{}); i++ {
	}

	bottom := s.At(Position{X: 0, Y: 4})
	if bottom.Kind != KindRed {
		t.Fatalf("expected the tile to settle at the bottom row, found %v", bottom.Kind)
	}
	if bottom.Flags.Falling {
		t.Error("settled tile should not still be marked falling")
	}
}

func TestApplyGravityBlockedByStaticCage(t *testing.T) {
	s := NewGameState(1, 3, 6, 1)
	s.Grid[0].Kind = KindRed
	s.Grid[0].ID = s.AllocTileID()
	s.Covers[s.idx(Position{X: 0, Y: 1})] = Cover{Kind: CoverCage, HP: 1, Dynamic: false}

	cfg := defaultGravityConfig()
	for i := 0; i < 500 && ApplyGravity(s, 1.0/60.0, cfg, NullCollector{}); i++ {
	}

	if s.At(Position{X: 0, Y: 0}).Kind != KindRed {
		t.Fatal("tile should be held in place by the static cage below it")
	}
}

func TestApplyGravityDynamicCoverTravelsWithTile(t *testing.T) {
	s := NewGameState(1, 5, 6, 1)
	s.Grid[0].Kind = KindRed
	s.Grid[0].ID = s.AllocTileID()
	s.Covers[0] = Cover{Kind: CoverBubble, HP: 1, Dynamic: true}

	cfg := defaultGravityConfig()
	for i := 0; i < 500 && ApplyGravity(s, 1.0/60.0, cfg, NullCollector{}); i++ {
	}

	if s.CoverAt(Position{X: 0, Y: 0}).Kind != CoverNone {
		t.Error("dynamic cover should have left its original cell")
	}
	if s.CoverAt(Position{X: 0, Y: 4}).Kind != CoverBubble {
		t.Error("dynamic cover should have followed the tile to its final cell")
	}
}

func TestRefillFillsEmptyRowZeroOnly(t *testing.T) {
	s := NewGameState(3, 3, 6, 1)
	spawned := Refill(s, UniformSpawnModel{}, s.Tick, NullCollector{})
	if !spawned {
		t.Fatal("expected refill to spawn into the empty board")
	}
	for x := 0; x < 3; x++ {
		if s.At(Position{X: x, Y: 0}).Empty() {
			t.Errorf("row 0 col %d should have been refilled", x)
		}
		if !s.At(Position{X: x, Y: 1}).Empty() || !s.At(Position{X: x, Y: 2}).Empty() {
			t.Errorf("refill must never touch rows below 0, col %d", x)
		}
	}
}

func TestRefillSkipsSuspendedCells(t *testing.T) {
	s := NewGameState(2, 2, 6, 1)
	s.Grid[s.idx(Position{X: 0, Y: 0})].Flags.Suspended = true

	Refill(s, UniformSpawnModel{}, s.Tick, NullCollector{})

	if !s.At(Position{X: 0, Y: 0}).Empty() {
		t.Error("a suspended cell must not be refilled")
	}
	if s.At(Position{X: 1, Y: 0}).Empty() {
		t.Error("a non-suspended empty cell should have been refilled")
	}
}
