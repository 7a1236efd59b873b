package gamemaster

import (
	"connect/game"
	"connect/searcher"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, cfg game.Config) *Session {
	t.Helper()
	state, err := game.NewState(cfg, game.WithSeed(5))
	require.NoError(t, err)
	return NewSession(state, searcher.NewMinimax(searcher.WithDepth(2), searcher.WithSeed(5)))
}

func quietConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.OfferChance = 0
	return cfg
}

func TestSession(t *testing.T) {
	t.Run("no updates before the first move", func(t *testing.T) {
		s := newSession(t, quietConfig())
		_, ok := s.Next()
		require.False(t, ok)
	})

	t.Run("moves are published in order", func(t *testing.T) {
		s := newSession(t, quietConfig())
		_, err := s.Play(4)
		require.NoError(t, err)
		_, err = s.Play(4)
		require.NoError(t, err)
		require.NoError(t, s.Undo())

		u, ok := s.Next()
		require.True(t, ok)
		require.Equal(t, Placed, u.Kind)
		require.Equal(t, game.Move{Column: 3, Row: 0}, u.Move)
		require.Len(t, u.State.History, 1)

		u, _ = s.Next()
		require.Equal(t, game.Move{Column: 3, Row: 1}, u.Move)

		u, _ = s.Next()
		require.Equal(t, Undone, u.Kind)
		require.Equal(t, game.Move{Column: 3, Row: 1}, u.Move)
		require.Equal(t, game.Yellow, s.Turn())

		_, ok = s.Next()
		require.False(t, ok)
	})

	t.Run("illegal moves publish nothing", func(t *testing.T) {
		s := newSession(t, quietConfig())
		_, err := s.Play(0)
		require.ErrorIs(t, err, game.ErrInvalidColumn)
		_, ok := s.Next()
		require.False(t, ok)
	})

	t.Run("computer blocks the open three", func(t *testing.T) {
		s := newSession(t, quietConfig())
		for _, column := range []int{1, 2, 1, 3, 7, 4} {
			_, err := s.Play(column)
			require.NoError(t, err)
		}

		column, outcome, err := s.ComputerMove(context.Background())
		require.NoError(t, err)
		require.Equal(t, 5, column)
		require.Equal(t, game.InProgress, outcome.Status)
		require.Equal(t, game.Yellow, s.Turn())
	})

	t.Run("cancelled search leaves the game alone", func(t *testing.T) {
		s := newSession(t, quietConfig())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := s.ComputerMove(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, s.Snapshot().History)
		_, ok := s.Next()
		require.False(t, ok, "nothing is published for a discarded search")
	})

	t.Run("searches run one after another", func(t *testing.T) {
		columns := []int{4, 4, 3}
		s := newSession(t, quietConfig())
		for _, column := range columns {
			_, err := s.Play(column)
			require.NoError(t, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := s.ComputerMove(ctx)
		require.ErrorIs(t, err, context.Canceled)

		column, _, err := s.ComputerMove(context.Background())
		require.NoError(t, err)

		state, err := game.NewState(quietConfig(), game.WithSeed(5))
		require.NoError(t, err)
		for _, c := range columns {
			_, err := state.Play(c)
			require.NoError(t, err)
		}
		reference := searcher.NewMinimax(searcher.WithDepth(2), searcher.WithSeed(5))
		_, ok := reference.BestMove(state)
		require.True(t, ok)
		want, ok := reference.BestMove(state)
		require.True(t, ok)
		require.Equal(t, want, column, "the second search should follow the first one's random draws")
	})

	t.Run("no search while an offer is pending or the game is over", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.OfferChance = 1
		s := newSession(t, cfg)
		_, err := s.Play(4)
		require.NoError(t, err)

		_, _, err = s.ComputerMove(context.Background())
		require.ErrorIs(t, err, game.ErrOfferPending)
		require.NoError(t, s.RejectOffer())

		s = newSession(t, quietConfig())
		for _, column := range []int{1, 2, 1, 2, 1, 2, 1} {
			_, err := s.Play(column)
			require.NoError(t, err)
		}
		_, outcome, err := s.ComputerMove(context.Background())
		require.ErrorIs(t, err, game.ErrGameOver)
		require.Equal(t, game.Red, outcome.Winner)
	})

	t.Run("computer resolves its own offer", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.OfferChance = 1
		s := newSession(t, cfg)

		_, err := s.ResolveOffer(context.Background())
		require.ErrorIs(t, err, game.ErrNoOfferPending)

		_, err = s.Play(4)
		require.NoError(t, err)
		_, ok := s.PendingOffer()
		require.True(t, ok)

		accepted, err := s.ResolveOffer(context.Background())
		require.NoError(t, err)
		_, ok = s.PendingOffer()
		require.False(t, ok, "the offer should be resolved either way")
		if accepted {
			require.Len(t, s.Snapshot().History, 2)
		} else {
			require.Len(t, s.Snapshot().History, 1)
		}
	})

	t.Run("restart clears the board", func(t *testing.T) {
		s := newSession(t, quietConfig())
		_, err := s.Play(1)
		require.NoError(t, err)
		s.Restart()
		require.Empty(t, s.Snapshot().History)
		require.Equal(t, game.Red, s.Turn())
	})
}
