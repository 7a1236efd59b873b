package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth       int
	Duration    time.Duration
	Nodes       int
	Cutoffs     int
	Evaluations int
	RandomMove  bool // chosen without searching
}

type MoveMetric struct {
	Step     int
	Player   string // color name
	Column   int
	Wildcard bool // the step resolved an offer instead of dropping a piece
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // empty on a draw
	Square         bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Wildcards      int
}

// Collector counts the work of one search call. Counters are atomic so the
// progress of a search running on another goroutine can be read safely.
type Collector interface {
	Start(depth int)
	AddNode()
	AddCutoff()
	AddEvaluation()
	SetRandomMove(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	cutoffs     atomic.Int64
	evaluations atomic.Int64
	randomMove  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.evaluations.Store(0)
	m.randomMove.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) SetRandomMove(value bool) {
	m.randomMove.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		Evaluations: int(m.evaluations.Load()),
		RandomMove:  m.randomMove.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)          {}
func (m *dummyCollector) AddNode()                 {}
func (m *dummyCollector) AddCutoff()               {}
func (m *dummyCollector) AddEvaluation()           {}
func (m *dummyCollector) SetRandomMove(value bool) {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
