package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngineConfig() EngineConfig {
	return EngineConfig{
		TickDuration: 1.0 / 60.0,
		WaveInterval: 0.05,
		SwapDeadline: 0.1,
		Gravity:      GravityConfig{Gravity: 40, MaxFallSpeed: 60},
		TickBudget:   10000,
	}
}

// boardFromRows builds a GameState from a row-major grid of TileKinds,
// row 0 at the top, bottom row last.
func boardFromRows(rows [][]TileKind, seed uint64) *GameState {
	h := len(rows)
	w := len(rows[0])
	s := NewGameState(w, h, 6, seed)
	for y, row := range rows {
		for x, k := range row {
			p := Position{X: x, Y: y}
			t := s.At(p)
			t.Kind = k
			if k != KindNone {
				t.ID = s.AllocTileID()
			}
		}
	}
	return s
}

func TestApplyMoveRejectsNonAdjacentSwap(t *testing.T) {
	s := boardFromRows([][]TileKind{{KindRed, KindGreen, KindBlue}}, 1)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, NullCollector{})

	ok := e.ApplyMove(Position{X: 0, Y: 0}, Position{X: 2, Y: 0})
	assert.False(t, ok)
}

func TestApplyMoveRejectsOutOfBounds(t *testing.T) {
	s := boardFromRows([][]TileKind{{KindRed, KindGreen}}, 1)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, NullCollector{})

	ok := e.ApplyMove(Position{X: 1, Y: 0}, Position{X: 2, Y: 0})
	assert.False(t, ok)
}

func TestApplyMoveValidSwapCreatesPendingAndEmitsSwap(t *testing.T) {
	rows := [][]TileKind{
		{KindRed, KindGreen, KindRed, KindBlue},
	}
	s := boardFromRows(rows, 1)
	collector := NewSliceCollector(8)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, collector)

	ok := e.ApplyMove(Position{X: 1, Y: 0}, Position{X: 2, Y: 0})
	require.True(t, ok)
	require.NotNil(t, e.pending)

	found := false
	for _, ev := range collector.Events {
		if ev.Type == EventTilesSwapped && !ev.IsRevert {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolvePendingSwapRevertsWhenNoMatchFormed(t *testing.T) {
	rows := [][]TileKind{
		{KindRed, KindGreen, KindBlue, KindYellow},
	}
	s := boardFromRows(rows, 1)
	collector := NewSliceCollector(8)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, collector)

	require.True(t, e.ApplyMove(Position{X: 0, Y: 0}, Position{X: 1, Y: 0}))

	// Advance past the swap deadline.
	ticks := int(e.Config.SwapDeadline/e.Config.TickDuration) + 2
	for i := 0; i < ticks; i++ {
		e.Tick(e.Config.TickDuration)
	}

	assert.Equal(t, KindRed, s.At(Position{X: 0, Y: 0}).Kind)
	assert.Equal(t, KindGreen, s.At(Position{X: 1, Y: 0}).Kind)

	reverted := false
	for _, ev := range collector.Events {
		if ev.Type == EventTilesSwapped && ev.IsRevert {
			reverted = true
		}
	}
	assert.True(t, reverted)
}

func TestResolvePendingSwapCommitsWhenMatchFormed(t *testing.T) {
	rows := [][]TileKind{
		{KindRed, KindGreen, KindRed, KindRed},
	}
	s := boardFromRows(rows, 1)
	collector := NewSliceCollector(8)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, collector)

	// Swapping (0,0) and (1,0) gives G R R R: a run of 3 through the swap target.
	require.True(t, e.ApplyMove(Position{X: 0, Y: 0}, Position{X: 1, Y: 0}))

	ticks := int(e.Config.SwapDeadline/e.Config.TickDuration) + 2
	for i := 0; i < ticks; i++ {
		e.Tick(e.Config.TickDuration)
	}

	assert.Greater(t, s.Score, int64(0))
}

func TestRunUntilStableSettlesAndSuppressesEvents(t *testing.T) {
	rows := [][]TileKind{
		{KindRed, KindRed, KindRed, KindGreen},
		{KindBlue, KindGreen, KindYellow, KindPurple},
	}
	s := boardFromRows(rows, 1)
	collector := NewSliceCollector(8)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, collector)

	before := len(collector.Events)
	result, err := e.RunUntilStable()
	require.NoError(t, err)
	assert.Equal(t, before, len(collector.Events), "RunUntilStable must suppress event emission")
	assert.Greater(t, result.Score, int64(0))

	// The pre-placed horizontal triple should have cleared.
	for x := 0; x < 3; x++ {
		assert.NotEqual(t, KindRed, s.At(Position{X: x, Y: 0}).Kind)
	}
}

func TestRunUntilStableReturnsErrorOnExhaustedBudget(t *testing.T) {
	// A single tile starting at the very top of a tall column takes many
	// ticks of gravity integration to land; a budget of 1 tick cannot
	// possibly see it settle.
	s := NewGameState(1, 20, 6, 1)
	s.Grid[0].Kind = KindRed
	s.Grid[0].ID = s.AllocTileID()

	cfg := testEngineConfig()
	cfg.TickBudget = 1
	e := NewEngine(s, cfg, DefaultScoreSystem{}, UniformSpawnModel{}, NullCollector{})

	_, err := e.RunUntilStable()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTickBudgetExceeded)
}

func TestEngineObjectiveProgressAndLevelCompleted(t *testing.T) {
	rows := [][]TileKind{
		{KindRed, KindRed, KindRed, KindGreen},
	}
	s := boardFromRows(rows, 1)
	s.Objectives[0] = Objective{Layer: ObjectiveTile, Element: int32(KindRed), Target: 3}
	s.ActiveObjCount = 1

	collector := NewSliceCollector(8)
	e := NewEngine(s, testEngineConfig(), DefaultScoreSystem{}, UniformSpawnModel{}, collector)

	for i := 0; i < 600; i++ {
		e.Tick(e.Config.TickDuration)
	}

	assert.True(t, s.Objectives[0].Satisfied())

	completed := false
	for _, ev := range collector.Events {
		if ev.Type == EventLevelCompleted {
			completed = true
		}
	}
	assert.True(t, completed)
}
