// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all engine, resource-limit and
// analyzer settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"matchcore/internal/match3"
)

// =============================================================================
// ENGINE TICK CONFIGURATION
// =============================================================================

// EngineConfig holds the fixed-tick simulation's timing parameters.
type EngineConfig struct {
	TickDuration float32 // seconds advanced per Tick call
	WaveInterval float32 // explosion wave spacing, seconds
	SwapDeadline float32 // seconds a speculative swap waits before commit/revert
	Gravity      float32 // acceleration, cells/sec^2
	MaxFallSpeed float32 // terminal velocity, cells/sec
	TickBudget   int     // max ticks RunUntilStable spends before erroring
}

// DefaultEngine returns the default engine tick configuration.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		TickDuration: 1.0 / 60.0,
		WaveInterval: 0.08,
		SwapDeadline: 0.20,
		Gravity:      40.0,
		MaxFallSpeed: 60.0,
		TickBudget:   6000, // 100s of simulated time at 60 ticks/sec
	}
}

// EngineFromEnv returns engine configuration with environment variable
// overrides applied on top of DefaultEngine.
func EngineFromEnv() EngineConfig {
	cfg := DefaultEngine()

	if fps := getEnvInt("MATCH3_TICK_FPS", 0); fps > 0 {
		cfg.TickDuration = 1.0 / float32(fps)
	}
	if wi := getEnvFloat("MATCH3_WAVE_INTERVAL", -1); wi >= 0 {
		cfg.WaveInterval = float32(wi)
	}
	if sd := getEnvFloat("MATCH3_SWAP_DEADLINE", -1); sd >= 0 {
		cfg.SwapDeadline = float32(sd)
	}
	if g := getEnvFloat("MATCH3_GRAVITY", -1); g >= 0 {
		cfg.Gravity = float32(g)
	}
	if mfs := getEnvFloat("MATCH3_MAX_FALL_SPEED", -1); mfs >= 0 {
		cfg.MaxFallSpeed = float32(mfs)
	}
	if tb := getEnvInt("MATCH3_TICK_BUDGET", 0); tb > 0 {
		cfg.TickBudget = tb
	}

	return cfg
}

// ToMatch3 converts this configuration into the match3.EngineConfig the
// core package actually consumes. Kept as a separate conversion so
// internal/match3 never imports this package (spec.md ownership boundary).
func (c EngineConfig) ToMatch3() match3.EngineConfig {
	return match3.EngineConfig{
		TickDuration: c.TickDuration,
		WaveInterval: c.WaveInterval,
		SwapDeadline: c.SwapDeadline,
		TickBudget:   c.TickBudget,
		Gravity: match3.GravityConfig{
			Gravity:      c.Gravity,
			MaxFallSpeed: c.MaxFallSpeed,
		},
	}
}

// =============================================================================
// PLANNER RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls the cost bounds of the partition planner and the
// headless analyzer (DoS protection and predictable worst-case runtime).
type ResourceLimits struct {
	PartitionExactSearchLimit int // candidate count above which planPartition falls back to greedy
	MaxBoardCells             int // hard cap on Width*Height a LevelConfig may request
	AnalyzerMaxWorkers        int // cap on concurrent analyzer.Run goroutines
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		PartitionExactSearchLimit: 20,
		MaxBoardCells:             2048,
		AnalyzerMaxWorkers:        8,
	}
}

// LimitsFromEnv returns resource limits with environment variable
// overrides applied on top of DefaultLimits.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if n := getEnvInt("MATCH3_EXACT_SEARCH_LIMIT", 0); n > 0 {
		cfg.PartitionExactSearchLimit = n
	}
	if n := getEnvInt("MATCH3_MAX_BOARD_CELLS", 0); n > 0 {
		cfg.MaxBoardCells = n
	}
	if n := getEnvInt("MATCH3_ANALYZER_WORKERS", 0); n > 0 {
		cfg.AnalyzerMaxWorkers = n
	}

	return cfg
}

// Apply pushes process-wide tunables (currently just the partition
// planner's exact-search threshold) into the packages that hold them.
func (r ResourceLimits) Apply() {
	match3.SetExactSearchLimit(r.PartitionExactSearchLimit)
}

// =============================================================================
// ANALYZER CONFIGURATION
// =============================================================================

// AnalyzerConfig holds the headless Monte-Carlo runner's settings.
type AnalyzerConfig struct {
	Simulations     int     // total randomized playthroughs per level
	RateLimitPerSec float64 // max simulations launched per second (x/time/rate)
	Workers         int     // worker pool size
}

// DefaultAnalyzer returns the default analyzer configuration.
func DefaultAnalyzer() AnalyzerConfig {
	return AnalyzerConfig{
		Simulations:     500,
		RateLimitPerSec: 200,
		Workers:         8,
	}
}

// AnalyzerFromEnv returns analyzer configuration with environment variable
// overrides applied on top of DefaultAnalyzer.
func AnalyzerFromEnv() AnalyzerConfig {
	cfg := DefaultAnalyzer()

	if n := getEnvInt("MATCH3_ANALYZER_SIMULATIONS", 0); n > 0 {
		cfg.Simulations = n
	}
	if r := getEnvFloat("MATCH3_ANALYZER_RATE", -1); r >= 0 {
		cfg.RateLimitPerSec = r
	}
	if w := getEnvInt("MATCH3_ANALYZER_WORKERS", 0); w > 0 {
		cfg.Workers = w
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Engine   EngineConfig
	Limits   ResourceLimits
	Analyzer AnalyzerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Engine:   EngineFromEnv(),
		Limits:   LimitsFromEnv(),
		Analyzer: AnalyzerFromEnv(),
	}
}

// LoadDotEnv loads a .env file into the process environment if present,
// checking the working directory then its parent. A missing .env file is
// not an error; this is a convenience for local development, not a
// requirement.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
