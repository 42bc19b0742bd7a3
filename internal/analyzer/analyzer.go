// Package analyzer runs headless, randomized playthroughs of a level to
// gather score and completion-rate statistics, without any rendering,
// networking, or player input (spec.md §1 Non-goals; this package is pure
// external tooling built on top of internal/match3's public surface).
package analyzer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"matchcore/internal/config"
	"matchcore/internal/match3"
)

// Result summarizes one Run call across every completed simulation.
type Result struct {
	RunID        string
	Simulations  int
	Completions  int
	AverageScore float64
	MaxScore     int64
	MinScore     int64
	TicksSpent   int
}

// Analyzer runs Monte-Carlo playthroughs of a level under a worker pool
// throttled by golang.org/x/time/rate, publishing counters and histograms
// to a private prometheus.Registry (never the global default, and never
// exposed over HTTP — spec.md's Non-goals exclude a metrics server, not
// metrics themselves).
type Analyzer struct {
	simCfg    config.AnalyzerConfig
	engineCfg config.EngineConfig
	limiter   *rate.Limiter
	registry  *prometheus.Registry

	simulationsTotal prometheus.Counter
	completionsTotal prometheus.Counter
	simulationTicks  prometheus.Histogram
	simulationScore  prometheus.Histogram
}

// New builds an Analyzer. engineCfg governs the simulated engine used for
// every playthrough; simCfg governs the analyzer's own concurrency and
// sample count.
func New(simCfg config.AnalyzerConfig, engineCfg config.EngineConfig) *Analyzer {
	reg := prometheus.NewRegistry()

	a := &Analyzer{
		simCfg:    simCfg,
		engineCfg: engineCfg,
		limiter:   rate.NewLimiter(rate.Limit(simCfg.RateLimitPerSec), 1),
		registry:  reg,
		simulationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_analyzer_simulations_total",
			Help: "Total randomized playthroughs completed by the analyzer.",
		}),
		completionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match3_analyzer_level_completions_total",
			Help: "Playthroughs that satisfied every level objective before running out of moves.",
		}),
		simulationTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match3_analyzer_simulation_ticks",
			Help:    "Engine ticks spent per playthrough.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		}),
		simulationScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match3_analyzer_simulation_score",
			Help:    "Final score per playthrough.",
			Buckets: prometheus.ExponentialBuckets(100, 2, 12),
		}),
	}
	reg.MustRegister(a.simulationsTotal, a.completionsTotal, a.simulationTicks, a.simulationScore)
	return a
}

// Registry exposes the analyzer's private metric registry, for tests or an
// operator wanting to wire their own exposition endpoint.
func (a *Analyzer) Registry() *prometheus.Registry {
	return a.registry
}

// Run launches simCfg.Simulations independent playthroughs of level across
// a bounded worker pool, each throttled by the rate limiter, and returns
// the aggregate Result. It stops early if ctx is cancelled.
func (a *Analyzer) Run(ctx context.Context, level match3.LevelConfig) Result {
	runID := uuid.NewString()

	sem := make(chan struct{}, maxInt(a.simCfg.Workers, 1))
	var wg sync.WaitGroup
	var mu sync.Mutex

	res := Result{RunID: runID}
	var scoreSum float64
	first := true

	for i := 0; i < a.simCfg.Simulations; i++ {
		if ctx.Err() != nil {
			break
		}
		if err := a.limiter.Wait(ctx); err != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(salt uint64) {
			defer wg.Done()
			defer func() { <-sem }()

			score, ticks, completed := a.simulateOne(level, salt)

			a.simulationsTotal.Inc()
			a.simulationTicks.Observe(float64(ticks))
			a.simulationScore.Observe(float64(score))
			if completed {
				a.completionsTotal.Inc()
			}

			mu.Lock()
			defer mu.Unlock()
			res.Simulations++
			if completed {
				res.Completions++
			}
			scoreSum += float64(score)
			res.TicksSpent += ticks
			if first || score > res.MaxScore {
				res.MaxScore = score
			}
			if first || score < res.MinScore {
				res.MinScore = score
			}
			first = false
		}(uint64(i))
	}
	wg.Wait()

	if res.Simulations > 0 {
		res.AverageScore = scoreSum / float64(res.Simulations)
	}
	return res
}

// simulateOne plays a single randomized game: uniformly random adjacent
// swaps until the move limit is spent or every objective is satisfied. It
// does not check whether any legal swap remains: a draw that points off
// the board, like a swap ApplyMove rejects, still uses up one move.
func (a *Analyzer) simulateOne(level match3.LevelConfig, salt uint64) (score int64, ticks int, completed bool) {
	lvl := level
	lvl.Seed = level.Seed ^ (salt * 0x9E3779B97F4A7C15)

	state := match3.NewGameStateFromConfig(lvl)
	engine := match3.NewEngine(state, a.engineCfg.ToMatch3(), match3.DefaultScoreSystem{}, match3.UniformSpawnModel{}, match3.NullCollector{})

	movesLeft := int(lvl.MoveLimit)
	if movesLeft <= 0 {
		movesLeft = 50
	}

	for m := 0; m < movesLeft; m++ {
		from, to, ok := randomAdjacentSwap(state)
		if !ok {
			continue
		}
		if !engine.ApplyMove(from, to) {
			continue
		}
		if _, err := engine.RunUntilStable(); err != nil {
			break
		}
		if match3.AllObjectivesSatisfied(state) {
			completed = true
			break
		}
	}

	return state.Score, int(state.Tick), completed
}

// randomAdjacentSwap draws a uniformly random cell and a uniformly random
// orthogonal direction, using the state's own RNG stream so a replayed
// seed reproduces the same sequence of simulated moves.
func randomAdjacentSwap(state *match3.GameState) (match3.Position, match3.Position, bool) {
	if state.Width == 0 || state.Height == 0 {
		return match3.Position{}, match3.Position{}, false
	}

	from := match3.Position{X: state.Random.NextN(state.Width), Y: state.Random.NextN(state.Height)}
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	d := dirs[state.Random.NextN(4)]
	to := from.Add(d[0], d[1])
	if !state.InBounds(to) {
		return match3.Position{}, match3.Position{}, false
	}
	return from, to, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
