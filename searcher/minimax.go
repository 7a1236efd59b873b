package searcher

import (
	"connect/experiments/metrics"
	"connect/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	WinScore  = 1_000_000
	LossScore = -WinScore
	DrawScore = 0

	// Accepting an offer is preferred unless it scores this much worse than rejecting.
	OfferTolerance = 5

	DefaultDepth = 4

	infinity = 1 << 40
)

type Option func(m *Minimax)

// Minimax is a depth-limited alpha-beta searcher over cloned game states. A
// single Minimax must not run two searches at the same time.
type Minimax struct {
	depth            int
	randomMoveChance float64
	rng              *rand.Rand
	evaluate         game.Evaluate
	metrics          metrics.Collector
	exhaustive       bool // disables pruning, for verification
}

// WithDepth sets the search depth in plies. Depth 0 scores each legal column
// by the position it leads to without looking further.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithRandomMoveChance makes the searcher skip the search and play a uniformly
// random legal column with the given probability.
func WithRandomMoveChance(chance float64) Option {
	return func(m *Minimax) {
		if chance >= 0 && chance <= 1 {
			m.randomMoveChance = chance
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *Minimax) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluatePosition,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// FromConfig builds a searcher with the depth and random move chance of cfg.
// Later options win.
func FromConfig(cfg game.Config, options ...Option) *Minimax {
	defaults := []Option{WithDepth(cfg.SearchDepth), WithRandomMoveChance(cfg.RandomMoveChance)}
	return NewMinimax(append(defaults, options...)...)
}

func (m *Minimax) Depth() int {
	return m.depth
}

// BestMove returns the 1-based column to play for the player to move. ok is
// false when there is no legal column.
func (m *Minimax) BestMove(state *game.State) (column int, ok bool) {
	column, _, ok = m.Search(state)
	return column, ok
}

// Search is BestMove plus the metrics of the call.
func (m *Minimax) Search(state *game.State) (int, metrics.SearchMetric, bool) {
	m.metrics.Start(m.depth)
	columns := orderColumns(state.LegalColumns(), state.Config().Columns)
	if len(columns) == 0 {
		return 0, m.metrics.Complete(), false
	}

	if m.randomMoveChance > 0 && m.rng.Float64() < m.randomMoveChance {
		m.metrics.SetRandomMove(true)
		return columns[m.rng.Intn(len(columns))], m.metrics.Complete(), true
	}

	best, score := m.searchRoot(state, columns)
	metric := m.metrics.Complete()
	log.Debug().Msgf("searched depth %d for %s: column %d scored %d", m.depth, state.Turn(), best, score)
	return best, metric, true
}

func (m *Minimax) searchRoot(state *game.State, columns []int) (int, int) {
	owner := state.Turn()
	best, bestScore := 0, -infinity
	alpha := -infinity
	for _, column := range columns {
		child := state.Clone()
		if _, err := child.Play(column); err != nil {
			continue
		}
		// Children are searched with alpha just below the best score so that
		// a tie comes back as an exact value.
		score := m.minimax(child, owner, m.depth-1, alpha, infinity)
		switch {
		case best == 0 || score > bestScore:
			best, bestScore = column, score
		case score == bestScore && m.rng.Intn(2) == 0:
			best = column
		}
		alpha = bestScore - 1
	}
	return best, bestScore
}

func (m *Minimax) minimax(state *game.State, owner game.Color, depth, alpha, beta int) int {
	m.metrics.AddNode()
	if state.Outcome().Decided() || depth <= 0 {
		return m.score(state, owner)
	}

	columns := orderColumns(state.LegalColumns(), state.Config().Columns)
	if len(columns) == 0 {
		return DrawScore
	}

	maximizing := state.Turn() == owner
	value := infinity
	if maximizing {
		value = -infinity
	}
	for _, column := range columns {
		child := state.Clone()
		if _, err := child.Play(column); err != nil {
			continue
		}
		score := m.minimax(child, owner, depth-1, alpha, beta)
		if maximizing {
			value = max(value, score)
			alpha = max(alpha, value)
		} else {
			value = min(value, score)
			beta = min(beta, value)
		}
		if !m.exhaustive && beta <= alpha {
			m.metrics.AddCutoff()
			break
		}
	}
	return value
}

// score values a leaf for owner: exact for decided games, the evaluator otherwise.
func (m *Minimax) score(state *game.State, owner game.Color) int {
	outcome := state.Outcome()
	switch {
	case outcome.Status == game.Draw:
		return DrawScore
	case outcome.Status == game.Win && outcome.Winner == owner:
		return WinScore
	case outcome.Status == game.Win:
		return LossScore
	}
	m.metrics.AddEvaluation()
	return m.evaluate(state, owner)
}

// DecideOffer reports whether the owner of the pending offer should take it.
// It looks one ply ahead only: an immediate win or a corner on a square-win
// board is always taken, otherwise the accepted position must score no more
// than OfferTolerance below the rejected one.
func (m *Minimax) DecideOffer(state *game.State) bool {
	offer, ok := state.PendingOffer()
	if !ok {
		return false
	}

	accepted := state.Clone()
	outcome, err := accepted.AcceptOffer()
	if err != nil {
		return false
	}
	if outcome.Status == game.Win && outcome.Winner == offer.Owner {
		return true
	}
	if state.Config().SquareWin && state.Board().IsCorner(offer.Column, offer.Row) {
		return true
	}

	rejected := state.Clone()
	if err := rejected.RejectOffer(); err != nil {
		return false
	}
	return m.score(accepted, offer.Owner) >= m.score(rejected, offer.Owner)-OfferTolerance
}

// orderColumns sorts legal 1-based columns center first, then alternating
// left and right with growing distance.
func orderColumns(legal []int, columns int) []int {
	open := make([]bool, columns+2)
	for _, column := range legal {
		open[column] = true
	}

	ordered := make([]int, 0, len(legal))
	center := columns/2 + 1
	if open[center] {
		ordered = append(ordered, center)
	}
	for offset := 1; offset < columns; offset++ {
		if left := center - offset; left >= 1 && open[left] {
			ordered = append(ordered, left)
		}
		if right := center + offset; right <= columns && open[right] {
			ordered = append(ordered, right)
		}
	}
	return ordered
}
