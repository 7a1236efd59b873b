package engine

import (
	"connect/experiments/metrics"
	"connect/game"
)

// MaxMoves bounds a self-play game, counting offer decisions as moves.
const MaxMoves = 10000

type Runner interface {
	// Run plays a game until it is decided or MaxMoves is reached
	Run() (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Agent chooses moves and offer decisions for one side. Agents must treat the
// state as read-only.
type Agent interface {
	FindMove(state *game.State) (int, metrics.SearchMetric)
	AcceptOffer(state *game.State) bool
}
