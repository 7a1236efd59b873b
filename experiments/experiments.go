package experiments

import (
	"connect/engine"
	"connect/experiments/metrics"
	"connect/game"
	"connect/searcher"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

const (
	NumGames = 30 // Per match up
	Root     = "experiments"
)

type Options struct {
	Config   game.Config
	NumGames int
	Root     string // records go to <Root>/<experiment name>/...
	Seed     uint64
}

func (o Options) withDefaults() Options {
	if o.NumGames <= 0 {
		o.NumGames = NumGames
	}
	if o.Root == "" {
		o.Root = Root
	}
	if o.Config.Columns == 0 {
		o.Config = game.DefaultConfig()
	}
	return o
}

// Summary aggregates the games of one match up. Wins are counted per agent,
// whichever color it played.
type Summary struct {
	Agent1, Agent2   int
	Wins1, Wins2     int
	Draws            int
	MeanMoves        float64
	StdDevMoves      float64
	MeanNodes        float64 // per searched move
	MeanNodesPerSec  float64
	MeanMoveDuration float64 // seconds, searched moves only
}

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 1},
	{ID: 2, Depth: 2},
	{ID: 3, Depth: 3},
	{ID: 4, Depth: 4},
	{ID: 5, Depth: 5},
}

// RunDepthExperiment pairs the beginner-strength baseline against searchers of
// growing depth.
func RunDepthExperiment(opts Options) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 2, RandomMoveChance: 0.3}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("depth", opts, append(depthConfigs, baseline), matchUps)
}

// RunRandomBaselineExperiment checks every depth against a uniformly random player.
func RunRandomBaselineExperiment(opts Options) ([]Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("random_baseline", opts, append(depthConfigs, baseline), matchUps)
}

func runExperiment(name string, opts Options, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) ([]Summary, error) {
	opts = opts.withDefaults()
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []Summary{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		summary := Summary{Agent1: config1.ID, Agent2: config2.ID}
		moves := make([]float64, 0, opts.NumGames)
		var nodes, nodesPerSec, durations []float64

		for i := 0; i < opts.NumGames; i++ {
			seed := opts.Seed + uint64(mi*opts.NumGames+i)
			// Alternate the starting agent
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}

			outcome, gameMetric, moveMetrics, err := runGame(opts.Config, first, second, seed)
			if err != nil {
				return nil, err
			}

			id := uuid.NewString()
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
				if mm.Wildcard || mm.RandomMove {
					continue
				}
				nodes = append(nodes, float64(mm.Nodes))
				durations = append(durations, mm.Duration.Seconds())
				if mm.Duration > 0 {
					nodesPerSec = append(nodesPerSec, float64(mm.Nodes)/mm.Duration.Seconds())
				}
			}
			moves = append(moves, float64(gameMetric.TotalMoves))

			switch {
			case outcome.Status == game.Draw:
				summary.Draws++
			case (outcome.Winner == opts.Config.Colors[0]) == (first.ID == config1.ID):
				summary.Wins1++
			default:
				summary.Wins2++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(matchUps), i+1, outcome)
		}

		summary.MeanMoves, summary.StdDevMoves = meanStdDev(moves)
		summary.MeanNodes, _ = meanStdDev(nodes)
		summary.MeanNodesPerSec, _ = meanStdDev(nodesPerSec)
		summary.MeanMoveDuration, _ = meanStdDev(durations)
		summaries = append(summaries, summary)

		log.Info().Msgf("completed matchup %d of %d: %+v", mi+1, len(matchUps), summary)
	}

	log.Info().Msgf("completed %s experiment", name)

	if err := store(name, opts.Root, configs, gameRecords, moveRecords); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func store(name, root string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame executes a single game between two agents, the first one moving first.
func runGame(cfg game.Config, config1, config2 metrics.AgentConfig, seed uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]engine.Agent{createAgent(config1, seed), createAgent(config2, seed+1)}
	e, err := engine.LocalEngine(cfg, agents, game.WithSeed(seed))
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}
	outcome, gameMetric, moveMetrics := e.Run()
	return outcome, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) engine.Agent {
	if config.Random {
		return engine.NewRandomAgent(seed)
	}

	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.RandomMoveChance > 0 {
		options = append(options, searcher.WithRandomMoveChance(config.RandomMoveChance))
	}
	return &engine.SearchAgent{Searcher: searcher.NewMinimax(options...)}
}

func meanStdDev(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
