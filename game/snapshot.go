package game

import "fmt"

// Snapshot is a plain copy of everything needed to rebuild a State, for a
// persistence layer to encode as it sees fit.
type Snapshot struct {
	Columns   int          `json:"columns"`
	Rows      int          `json:"rows"`
	Cells     []Cell       `json:"cells"` // row-major, bottom row first
	History   []MoveRecord `json:"history"`
	Turn      Color        `json:"turn"`
	Outcome   Outcome      `json:"outcome"`
	Offer     *Offer       `json:"offer,omitempty"`
	Wildcards int          `json:"wildcards"`
}

func (s *State) Snapshot() Snapshot {
	var offer *Offer
	if s.offer != nil {
		o := *s.offer
		offer = &o
	}
	return Snapshot{
		Columns:   s.board.columns,
		Rows:      s.board.rows,
		Cells:     s.board.Cells(),
		History:   s.History(),
		Turn:      s.turn,
		Outcome:   s.outcome,
		Offer:     offer,
		Wildcards: s.wildcards,
	}
}

// Restore rebuilds a live State from a snapshot taken under the same config.
// Snapshots that break gravity or disagree with their own history are
// rejected.
func Restore(cfg Config, snap Snapshot, options ...Option) (*State, error) {
	s, err := NewState(cfg, options...)
	if err != nil {
		return nil, err
	}
	if snap.Columns != cfg.Columns || snap.Rows != cfg.Rows || len(snap.Cells) != cfg.Columns*cfg.Rows {
		return nil, fmt.Errorf("%w: board is %dx%d with %d cells, config wants %dx%d",
			ErrInvalidSnapshot, snap.Columns, snap.Rows, len(snap.Cells), cfg.Columns, cfg.Rows)
	}

	board := &Board{columns: cfg.Columns, rows: cfg.Rows, cells: make([]Cell, len(snap.Cells))}
	copy(board.cells, snap.Cells)
	if !board.hasGravity() {
		return nil, fmt.Errorf("%w: floating pieces", ErrInvalidSnapshot)
	}

	if err := checkHistory(board, cfg, snap); err != nil {
		return nil, err
	}
	if err := checkOffer(board, cfg, snap); err != nil {
		return nil, err
	}

	settled := board.Copy()
	if snap.Offer != nil {
		settled.clear(snap.Offer.Column, snap.Offer.Row)
	}
	if outcome := judge(settled, cfg); outcome != snap.Outcome {
		return nil, fmt.Errorf("%w: outcome %s does not match board (%s)", ErrInvalidSnapshot, snap.Outcome, outcome)
	}

	s.board = board
	s.history = make([]MoveRecord, len(snap.History), cfg.Columns*cfg.Rows)
	copy(s.history, snap.History)
	s.turn = snap.Turn
	s.outcome = snap.Outcome
	s.wildcards = snap.Wildcards
	if snap.Offer != nil {
		o := *snap.Offer
		s.offer = &o
	}
	return s, nil
}

func checkHistory(board *Board, cfg Config, snap Snapshot) error {
	if owned := board.count(Owned); owned != len(snap.History) {
		return fmt.Errorf("%w: %d pieces but %d history records", ErrInvalidSnapshot, owned, len(snap.History))
	}
	seen := make(map[Move]bool, len(snap.History))
	wildcards := 0
	for _, record := range snap.History {
		m := record.Move
		if !board.InBounds(m.Column, m.Row) || board.At(m.Column, m.Row).Kind != Owned || seen[m] {
			return fmt.Errorf("%w: history record %+v does not match a piece", ErrInvalidSnapshot, m)
		}
		seen[m] = true
		if record.Wildcard {
			wildcards++
		}
	}
	if wildcards != snap.Wildcards || wildcards > cfg.MaxWildcards {
		return fmt.Errorf("%w: %d accepted wildcards recorded as %d (budget %d)",
			ErrInvalidSnapshot, wildcards, snap.Wildcards, cfg.MaxWildcards)
	}
	if want := cfg.Colors[len(snap.History)%2]; snap.Turn != want {
		return fmt.Errorf("%w: turn is %v after %d moves, want %v", ErrInvalidSnapshot, snap.Turn, len(snap.History), want)
	}
	return nil
}

func checkOffer(board *Board, cfg Config, snap Snapshot) error {
	marked := board.count(Wildcard)
	if snap.Offer == nil {
		if marked != 0 {
			return fmt.Errorf("%w: wildcard cell without an offer", ErrInvalidSnapshot)
		}
		return nil
	}
	o := snap.Offer
	if marked != 1 || board.At(o.Column, o.Row).Kind != Wildcard {
		return fmt.Errorf("%w: offer at (%d, %d) does not match the board", ErrInvalidSnapshot, o.Column, o.Row)
	}
	if mover := cfg.Colors[(len(snap.History)+1)%2]; o.Owner != mover {
		return fmt.Errorf("%w: offer owned by %v, but %v moved last", ErrInvalidSnapshot, o.Owner, mover)
	}
	if snap.Outcome.Decided() {
		return fmt.Errorf("%w: offer pending in a finished game", ErrInvalidSnapshot)
	}
	return nil
}
