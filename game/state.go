package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"golang.org/x/exp/rand"
)

type Option func(s *State)

// WithRand injects the random source used for wildcard offers.
func WithRand(rng *rand.Rand) Option {
	return func(s *State) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *State) {
		s.recorder = recorder
	}
}

// State is the rules engine of one game: the board, the move history, whose
// turn it is, the pending wildcard offer and the outcome. It is not safe for
// concurrent use. Search works on clones, which never roll for offers and
// never report outcomes to a recorder.
type State struct {
	config     Config
	board      *Board
	history    []MoveRecord
	turn       Color
	outcome    Outcome
	offer      *Offer
	wildcards  int // accepted wildcards
	rng        *rand.Rand
	recorder   Recorder
	simulation bool
}

func NewState(cfg Config, options ...Option) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &State{config: cfg}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	s.Restart()
	return s, nil
}

// Restart clears the board, history, offer, outcome and wildcard budget.
func (s *State) Restart() {
	s.board = NewBoard(s.config.Columns, s.config.Rows)
	s.history = make([]MoveRecord, 0, s.config.Columns*s.config.Rows)
	s.turn = s.config.Colors[0]
	s.outcome = Outcome{}
	s.offer = nil
	s.wildcards = 0
}

func (s *State) Config() Config     { return s.config }
func (s *State) Board() *Board      { return s.board }
func (s *State) Turn() Color        { return s.turn }
func (s *State) Outcome() Outcome   { return s.outcome }
func (s *State) Wildcards() int     { return s.wildcards }
func (s *State) IsSimulation() bool { return s.simulation }

// PendingOffer returns the wildcard offer awaiting a decision, if any.
func (s *State) PendingOffer() (Offer, bool) {
	if s.offer == nil {
		return Offer{}, false
	}
	return *s.offer, true
}

func (s *State) History() []MoveRecord {
	history := make([]MoveRecord, len(s.history))
	copy(history, s.history)
	return history
}

// Opponent returns the other player's color.
func (s *State) Opponent(color Color) Color {
	if color == s.config.Colors[0] {
		return s.config.Colors[1]
	}
	return s.config.Colors[0]
}

// checkPlay validates a 1-based column in the order callers rely on.
func (s *State) checkPlay(column int) error {
	if s.offer != nil {
		return fmt.Errorf("%w: accept or reject it first", ErrOfferPending)
	}
	if s.outcome.Decided() {
		return fmt.Errorf("%w: %s", ErrGameOver, s.outcome)
	}
	if column < 1 || column > s.config.Columns {
		return fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidColumn, column, s.config.Columns)
	}
	if s.board.IsColumnFull(column - 1) {
		return fmt.Errorf("%w: column %d", ErrColumnFull, column)
	}
	return nil
}

func (s *State) IsValidMove(column int) bool {
	return s.checkPlay(column) == nil
}

// LegalColumns returns the playable 1-based columns in ascending order. It is
// empty once the game is decided or while an offer is pending.
func (s *State) LegalColumns() []int {
	if s.offer != nil || s.outcome.Decided() {
		return nil
	}
	columns := make([]int, 0, s.config.Columns)
	for col := 0; col < s.config.Columns; col++ {
		if !s.board.IsColumnFull(col) {
			columns = append(columns, col+1)
		}
	}
	return columns
}

// Play drops the current player's piece into the 1-based column. On success
// the turn passes to the opponent and, on live states, a wildcard offer may
// be rolled.
func (s *State) Play(column int) (Outcome, error) {
	if err := s.checkPlay(column); err != nil {
		return s.outcome, err
	}
	col := column - 1
	s.place(Move{Column: col, Row: s.board.LandingRow(col)}, s.turn, false)
	if !s.outcome.Decided() {
		s.rollOffer()
	}
	return s.outcome, nil
}

// AcceptOffer turns the pending wildcard into a piece of the player who
// triggered it.
func (s *State) AcceptOffer() (Outcome, error) {
	if s.offer == nil {
		return s.outcome, ErrNoOfferPending
	}
	offer := *s.offer
	s.offer = nil
	s.wildcards++
	s.place(Move{Column: offer.Column, Row: offer.Row}, offer.Owner, true)
	return s.outcome, nil
}

func (s *State) RejectOffer() error {
	if s.offer == nil {
		return ErrNoOfferPending
	}
	s.clearOffer()
	return nil
}

// Undo reverts the last placement. A pending offer is rejected first, even
// when there is nothing to undo.
func (s *State) Undo() error {
	if s.offer != nil {
		s.clearOffer()
	}
	if len(s.history) == 0 {
		return ErrNoHistory
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.board.clear(last.Move.Column, last.Move.Row)
	s.turn = s.Opponent(s.turn)
	if last.Wildcard {
		s.wildcards--
	}
	s.outcome = Outcome{}
	return nil
}

func (s *State) place(move Move, color Color, wildcard bool) {
	s.board.set(move.Column, move.Row, Cell{Kind: Owned, Color: color})
	s.history = append(s.history, MoveRecord{Move: move, Wildcard: wildcard})
	s.turn = s.Opponent(s.turn)
	s.outcome = judge(s.board, s.config)
	if s.outcome.Decided() && !s.simulation && s.recorder != nil {
		s.recorder.RecordOutcome(s.outcome)
	}
}

func (s *State) rollOffer() {
	if s.simulation || s.wildcards >= s.config.MaxWildcards {
		return
	}
	if s.rng.Float64() >= s.config.OfferChance {
		return
	}
	open := make([]int, 0, s.config.Columns)
	for col := 0; col < s.config.Columns; col++ {
		if !s.board.IsColumnFull(col) {
			open = append(open, col)
		}
	}
	if len(open) == 0 {
		return
	}
	col := open[s.rng.Intn(len(open))]
	s.offerAt(col, s.board.LandingRow(col))
}

// offerAt marks (col, row) as a wildcard owned by the player who just moved.
func (s *State) offerAt(col, row int) {
	s.board.set(col, row, Cell{Kind: Wildcard})
	s.offer = &Offer{Column: col, Row: row, Owner: s.Opponent(s.turn)}
}

func (s *State) clearOffer() {
	s.board.clear(s.offer.Column, s.offer.Row)
	s.offer = nil
}

// Clone returns an independent copy for simulation.
func (s *State) Clone() *State {
	history := make([]MoveRecord, len(s.history), cap(s.history))
	copy(history, s.history)

	var offer *Offer
	if s.offer != nil {
		o := *s.offer
		offer = &o
	}

	return &State{
		config:     s.config, // Config holds no references
		board:      s.board.Copy(),
		history:    history,
		turn:       s.turn,
		outcome:    s.outcome,
		offer:      offer,
		wildcards:  s.wildcards,
		rng:        s.rng,
		simulation: true,
	}
}

func (s *State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.turn))
	binary.Write(hasher, binary.LittleEndian, int64(s.wildcards))

	for _, cell := range s.board.cells {
		binary.Write(hasher, binary.LittleEndian, int64(cell.Kind))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Color))
	}

	if s.offer != nil {
		binary.Write(hasher, binary.LittleEndian, int64(s.offer.Column))
		binary.Write(hasher, binary.LittleEndian, int64(s.offer.Row))
		binary.Write(hasher, binary.LittleEndian, int64(s.offer.Owner))
	}

	return StateHash(hasher.Sum64())
}
