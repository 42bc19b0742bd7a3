// Command analyze runs headless, randomized playthroughs of a level file
// and prints aggregate score/completion statistics. It performs no
// rendering, networking, or player interaction.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"matchcore/internal/analyzer"
	"matchcore/internal/config"
	"matchcore/internal/levelio"
)

func main() {
	config.LoadDotEnv()

	levelPath := flag.String("level", "", "path to a level YAML file")
	simulations := flag.Int("simulations", 0, "override the configured simulation count (0 = use config)")
	timeoutSec := flag.Int("timeout", 60, "overall run timeout in seconds")
	flag.Parse()

	if *levelPath == "" {
		log.Fatal("analyze: -level is required")
	}

	appCfg := config.Load()
	appCfg.Limits.Apply()

	analyzerCfg := appCfg.Analyzer
	if *simulations > 0 {
		analyzerCfg.Simulations = *simulations
	}
	if analyzerCfg.Workers > appCfg.Limits.AnalyzerMaxWorkers {
		analyzerCfg.Workers = appCfg.Limits.AnalyzerMaxWorkers
	}

	level, err := levelio.Load(*levelPath)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}
	if cells := level.Width * level.Height; cells > appCfg.Limits.MaxBoardCells {
		log.Fatalf("analyze: level has %d cells, over the limit of %d", cells, appCfg.Limits.MaxBoardCells)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSec)*time.Second)
	defer cancel()

	a := analyzer.New(analyzerCfg, appCfg.Engine)
	start := time.Now()
	result := a.Run(ctx, level)
	elapsed := time.Since(start)

	log.Printf("run %s: %d/%d simulations completed the level", result.RunID, result.Completions, result.Simulations)
	log.Printf("score: min=%d max=%d avg=%.1f", result.MinScore, result.MaxScore, result.AverageScore)
	log.Printf("ticks spent: %d (wall clock %s)", result.TicksSpent, elapsed)
}
