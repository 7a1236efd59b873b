package engine

import (
	"connect/experiments/metrics"
	"connect/game"
	"connect/searcher"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Engine struct {
	State  *game.State
	Agents [2]Agent // in turn order
}

func LocalEngine(cfg game.Config, agents [2]Agent, options ...game.Option) (*Engine, error) {
	if agents[0] == nil || agents[1] == nil {
		return nil, fmt.Errorf("need two agents")
	}
	state, err := game.NewState(cfg, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &Engine{State: state, Agents: agents}, nil
}

func (e *Engine) agentFor(color game.Color) Agent {
	if color == e.State.Config().Colors[0] {
		return e.Agents[0]
	}
	return e.Agents[1]
}

// Run executes the entire game loop until the game is decided.
func (e *Engine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	startTime := time.Now()
	starting := e.State.Turn()
	log.Info().Msgf("player %s is starting", starting)

	var moveMetrics []metrics.MoveMetric
	for step := 1; !e.State.Outcome().Decided() && step <= MaxMoves; step++ {
		if offer, ok := e.State.PendingOffer(); ok {
			if e.agentFor(offer.Owner).AcceptOffer(e.State) {
				if _, err := e.State.AcceptOffer(); err != nil {
					panic(fmt.Sprintf("accepting a pending offer failed: %v", err))
				}
				moveMetrics = append(moveMetrics, metrics.MoveMetric{
					Step:     step,
					Player:   offer.Owner.String(),
					Column:   offer.Column + 1,
					Wildcard: true,
				})
				log.Debug().Msgf("%s accepted a wildcard in column %d", offer.Owner, offer.Column+1)
			} else if err := e.State.RejectOffer(); err != nil {
				panic(fmt.Sprintf("rejecting a pending offer failed: %v", err))
			}
			continue
		}

		player := e.State.Turn()
		column, searchMetric := e.agentFor(player).FindMove(e.State)
		if !e.State.IsValidMove(column) {
			columns := e.State.LegalColumns()
			if len(columns) == 0 {
				panic("no legal moves at all")
			}
			log.Warn().Msgf("%s picked invalid column %d, falling back to %d", player, column, columns[0])
			column = columns[0]
		}
		if _, err := e.State.Play(column); err != nil {
			panic(fmt.Sprintf("playing a legal column failed: %v", err))
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Column:       column,
			SearchMetric: searchMetric,
		})
	}

	outcome := e.State.Outcome()
	if !outcome.Decided() {
		log.Warn().Msgf("stopped after %d moves without a result", MaxMoves)
	}
	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: starting.String(),
		Square:         outcome.Square,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     len(e.State.History()),
		Wildcards:      e.State.Wildcards(),
	}
	if outcome.Status == game.Win {
		gameMetric.Winner = outcome.Winner.String()
	}
	log.Info().Msgf("game over: %s after %d moves", outcome, gameMetric.TotalMoves)
	return outcome, gameMetric, moveMetrics
}

// SearchAgent plays with a minimax searcher.
type SearchAgent struct {
	Searcher *searcher.Minimax
}

func (a *SearchAgent) FindMove(state *game.State) (int, metrics.SearchMetric) {
	column, metric, _ := a.Searcher.Search(state)
	return column, metric
}

func (a *SearchAgent) AcceptOffer(state *game.State) bool {
	return a.Searcher.DecideOffer(state)
}

// RandomAgent drops into a uniformly random legal column and flips a coin on offers.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state *game.State) (int, metrics.SearchMetric) {
	columns := state.LegalColumns()
	if len(columns) == 0 {
		return 0, metrics.SearchMetric{RandomMove: true}
	}
	return columns[a.rng.Intn(len(columns))], metrics.SearchMetric{RandomMove: true}
}

func (a *RandomAgent) AcceptOffer(state *game.State) bool {
	return a.rng.Intn(2) == 0
}
