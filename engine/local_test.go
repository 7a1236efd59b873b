package engine

import (
	"connect/experiments/metrics"
	"connect/game"
	"connect/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubbornAgent always asks for a column that does not exist.
type stubbornAgent struct{}

func (stubbornAgent) FindMove(state *game.State) (int, metrics.SearchMetric) {
	return 99, metrics.SearchMetric{}
}
func (stubbornAgent) AcceptOffer(state *game.State) bool { return true }

func TestRun(t *testing.T) {
	t.Run("random self-play reaches a result", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.OfferChance = 0.5
		for seed := uint64(1); seed <= 5; seed++ {
			e, err := LocalEngine(cfg, [2]Agent{NewRandomAgent(seed), NewRandomAgent(seed + 100)}, game.WithSeed(seed))
			require.NoError(t, err)

			outcome, gameMetric, moveMetrics := e.Run()
			require.True(t, outcome.Decided())
			require.Equal(t, "red", gameMetric.StartingPlayer)
			require.Equal(t, len(e.State.History()), gameMetric.TotalMoves)
			require.LessOrEqual(t, gameMetric.Wildcards, cfg.MaxWildcards)
			require.GreaterOrEqual(t, len(moveMetrics), gameMetric.TotalMoves)
			if outcome.Status == game.Win {
				require.Equal(t, outcome.Winner.String(), gameMetric.Winner)
			} else {
				require.Empty(t, gameMetric.Winner)
			}
		}
	})

	t.Run("search beats random", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.OfferChance = 0
		strong := &SearchAgent{Searcher: searcher.NewMinimax(searcher.WithDepth(3), searcher.WithSeed(1), searcher.WithMetrics())}
		e, err := LocalEngine(cfg, [2]Agent{strong, NewRandomAgent(2)}, game.WithSeed(1))
		require.NoError(t, err)

		outcome, _, moveMetrics := e.Run()
		require.Equal(t, game.Outcome{Status: game.Win, Winner: game.Red}, outcome)
		require.Positive(t, moveMetrics[0].Nodes, "search agents report their work")
		require.Equal(t, 3, moveMetrics[0].Depth)
	})

	t.Run("invalid agent choices fall back to a legal column", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.OfferChance = 0
		e, err := LocalEngine(cfg, [2]Agent{stubbornAgent{}, stubbornAgent{}})
		require.NoError(t, err)

		outcome, gameMetric, _ := e.Run()
		require.True(t, outcome.Decided())
		require.Positive(t, gameMetric.TotalMoves)
	})

	t.Run("needs two agents and a valid config", func(t *testing.T) {
		_, err := LocalEngine(game.DefaultConfig(), [2]Agent{NewRandomAgent(1), nil})
		require.Error(t, err)

		cfg := game.DefaultConfig()
		cfg.Rows = 1
		_, err = LocalEngine(cfg, [2]Agent{NewRandomAgent(1), NewRandomAgent(2)})
		require.ErrorIs(t, err, game.ErrInvalidConfig)
	})
}
