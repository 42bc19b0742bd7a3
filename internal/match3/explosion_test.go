package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplosionDestroysWaveByWaveOnDistance(t *testing.T) {
	s := filledBoard(5, 1, KindRed)
	sched := NewExplosionScheduler(0.1)
	sched.SpawnTargeted(s, Position{X: 0, Y: 0}, []Position{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
	})

	for _, p := range []Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}} {
		assert.True(t, s.At(p).Flags.Suspended, "cell %+v should be suspended immediately on blast creation", p)
	}

	// Elapsed 0.05s: wave 0 only (distance 0).
	sched.Advance(s, 0.05, NullCollector{})
	assert.True(t, s.At(Position{X: 0, Y: 0}).Empty(), "distance-0 cell should be destroyed in wave 0")
	assert.Equal(t, KindRed, s.At(Position{X: 1, Y: 0}).Kind, "distance-1 cell must not be destroyed yet")

	// Elapsed reaches 0.15s total: wave 1 (distance <= 1).
	sched.Advance(s, 0.1, NullCollector{})
	assert.True(t, s.At(Position{X: 1, Y: 0}).Empty(), "distance-1 cell should be destroyed by wave 1")
	assert.Equal(t, KindRed, s.At(Position{X: 2, Y: 0}).Kind)

	require.True(t, sched.Active())
}

func TestExplosionDropsFromActiveOnceFullyResolved(t *testing.T) {
	s := filledBoard(2, 1, KindRed)
	sched := NewExplosionScheduler(0.1)
	sched.SpawnTargeted(s, Position{X: 0, Y: 0}, []Position{{X: 0, Y: 0}, {X: 1, Y: 0}})

	require.True(t, sched.Active())
	sched.Advance(s, 1.0, NullCollector{})
	assert.False(t, sched.Active(), "a blast whose furthest wave has fully elapsed must be dropped")
}

func TestExplosionReleasesCaughtBombsAndReportsThem(t *testing.T) {
	s := filledBoard(3, 1, KindRed)
	s.At(Position{X: 1, Y: 0}).Bomb = BombHorizontalRocket

	sched := NewExplosionScheduler(0.1)
	sched.SpawnTargeted(s, Position{X: 0, Y: 0}, []Position{{X: 0, Y: 0}, {X: 1, Y: 0}})

	triggered := sched.Advance(s, 1.0, NullCollector{})
	require.Len(t, triggered, 1)
	assert.Equal(t, Position{X: 1, Y: 0}, triggered[0])

	bombCell := s.At(Position{X: 1, Y: 0})
	assert.Equal(t, BombHorizontalRocket, bombCell.Bomb, "a caught bomb must not be destroyed by the blast that reaches it")
	assert.False(t, bombCell.Flags.Suspended, "a caught bomb is released from suspension so it can be re-triggered")
}

func TestSpawnTargetedIgnoresEmptyAffectedList(t *testing.T) {
	s := filledBoard(2, 2, KindRed)
	sched := NewExplosionScheduler(0.1)
	sched.SpawnTargeted(s, Position{X: 0, Y: 0}, nil)
	assert.False(t, sched.Active())
}

func TestSpawnRadialSuspendsClippedBlockAround(t *testing.T) {
	s := filledBoard(3, 3, KindRed)
	sched := NewExplosionScheduler(0.1)
	sched.SpawnRadial(s, Position{X: 0, Y: 0}, 1)

	require.True(t, sched.Active())
	// blockAround radius 1 clipped to the board corner yields a 2x2 quadrant.
	count := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if s.At(Position{X: x, Y: y}).Flags.Suspended {
				count++
			}
		}
	}
	assert.Equal(t, 4, count)
}
