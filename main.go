package main

import (
	"connect/config"
	"connect/engine"
	"connect/experiments"
	"connect/game"
	"connect/player"
	"connect/searcher"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay or experiment")
	settingsPath := flag.String("config", "", "YAML settings file")
	experiment := flag.String("experiment", "depth", "experiment to run: depth, random_baseline or throughput")
	games := flag.Int("games", experiments.NumGames, "games per match up")
	out := flag.String("out", experiments.Root, "directory for experiment records")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.SetLogLevel(settings.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := settings.GameConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game settings")
	}
	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	switch *mode {
	case "selfplay":
		runSelfPlay(cfg, seed)
	case "experiment":
		opts := experiments.Options{Config: cfg, NumGames: *games, Root: *out, Seed: seed}
		if _, err := experiments.Run(*experiment, opts); err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// runSelfPlay lets the configured computer play a copy of itself and prints the final board.
func runSelfPlay(cfg game.Config, seed uint64) {
	first := player.NewPlayer("Computer 1", player.Computer, cfg.Colors[0])
	second := player.NewPlayer("Computer 2", player.Computer, cfg.Colors[1])
	roster, err := player.NewRoster(first, second)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid players")
	}

	agents := [2]engine.Agent{
		&engine.SearchAgent{Searcher: searcher.FromConfig(cfg, searcher.WithSeed(seed), searcher.WithMetrics())},
		&engine.SearchAgent{Searcher: searcher.FromConfig(cfg, searcher.WithSeed(seed+1), searcher.WithMetrics())},
	}
	e, err := engine.LocalEngine(cfg, agents, game.WithSeed(seed), game.WithRecorder(roster))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}

	outcome, gameMetric, _ := e.Run()
	fmt.Print(e.State.Board())
	fmt.Printf("%s in %d moves (%s)\n", outcome, gameMetric.TotalMoves, gameMetric.Duration)
}
