package gamemaster

import (
	"connect/game"
	"connect/searcher"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrStale is returned when the game changed while the computer was thinking.
var ErrStale = errors.New("game changed during search")

type UpdateKind int

const (
	Placed UpdateKind = iota
	WildcardAccepted
	WildcardRejected
	Undone
	Restarted
)

type Update struct {
	Kind    UpdateKind
	Move    game.Move
	Outcome game.Outcome
	State   game.Snapshot
}

// Session hosts one live game for an interactive front end. All mutations go
// through the session lock, so a human turn and a background computer search
// never touch the live state at the same time. The computer runs one search
// at a time, including searches whose caller already gave up on them.
type Session struct {
	mu       sync.Mutex
	state    *game.State
	computer *searcher.Minimax
	searchCh chan struct{} // holds a token while the computer is searching
	updateCh chan Update
}

func NewSession(state *game.State, computer *searcher.Minimax) *Session {
	cfg := state.Config()
	return &Session{
		state:    state,
		computer: computer,
		searchCh: make(chan struct{}, 1),
		updateCh: make(chan Update, 2*cfg.Columns*cfg.Rows),
	}
}

// acquire waits until no search is running. An idle computer is taken even
// when ctx is already done.
func (s *Session) acquire(ctx context.Context) error {
	select {
	case s.searchCh <- struct{}{}:
		return nil
	default:
	}
	select {
	case s.searchCh <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) release() {
	<-s.searchCh
}

// Next returns the oldest unread update, or false if there is none.
func (s *Session) Next() (Update, bool) {
	select {
	case u := <-s.updateCh:
		return u, true
	default:
		return Update{}, false
	}
}

func (s *Session) publish(kind UpdateKind, move game.Move) {
	u := Update{Kind: kind, Move: move, Outcome: s.state.Outcome(), State: s.state.Snapshot()}
	select {
	case s.updateCh <- u:
	default:
		log.Warn().Msgf("update queue full, dropping %+v", move)
	}
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

func (s *Session) Turn() game.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Turn()
}

func (s *Session) PendingOffer() (game.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PendingOffer()
}

func (s *Session) Play(column int) (game.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play(column)
}

func (s *Session) play(column int) (game.Outcome, error) {
	outcome, err := s.state.Play(column)
	if err != nil {
		return outcome, err
	}
	history := s.state.History()
	s.publish(Placed, history[len(history)-1].Move)
	return outcome, nil
}

func (s *Session) AcceptOffer() (game.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accept()
}

func (s *Session) accept() (game.Outcome, error) {
	offer, _ := s.state.PendingOffer()
	outcome, err := s.state.AcceptOffer()
	if err != nil {
		return outcome, err
	}
	s.publish(WildcardAccepted, game.Move{Column: offer.Column, Row: offer.Row})
	return outcome, nil
}

func (s *Session) RejectOffer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reject()
}

func (s *Session) reject() error {
	offer, _ := s.state.PendingOffer()
	if err := s.state.RejectOffer(); err != nil {
		return err
	}
	s.publish(WildcardRejected, game.Move{Column: offer.Column, Row: offer.Row})
	return nil
}

func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.state.History()
	if err := s.state.Undo(); err != nil {
		return err
	}
	s.publish(Undone, history[len(history)-1].Move)
	return nil
}

func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Restart()
	s.publish(Restarted, game.Move{})
}

type result struct {
	column int
	hash   game.StateHash
	ok     bool
}

// ComputerMove searches a copy of the current position on its own goroutine
// and plays the chosen column. If ctx ends first the result is discarded, and
// if the live game moved on in the meantime ErrStale is returned. A discarded
// search keeps the computer busy until it finishes.
func (s *Session) ComputerMove(ctx context.Context) (int, game.Outcome, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, game.Outcome{}, err
	}

	s.mu.Lock()
	if err := s.checkSearchable(); err != nil {
		outcome := s.state.Outcome()
		s.mu.Unlock()
		s.release()
		return 0, outcome, err
	}
	position := s.state.Clone()
	s.mu.Unlock()

	resultCh := make(chan result, 1)
	go func() {
		defer s.release()
		column, ok := s.computer.BestMove(position)
		resultCh <- result{column: column, hash: position.Hash(), ok: ok}
	}()

	select {
	case <-ctx.Done():
		return 0, game.Outcome{}, ctx.Err()
	case r := <-resultCh:
		if err := ctx.Err(); err != nil {
			return 0, game.Outcome{}, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state.Hash() != r.hash {
			return 0, s.state.Outcome(), ErrStale
		}
		if !r.ok {
			return 0, s.state.Outcome(), fmt.Errorf("%w: no legal column", game.ErrGameOver)
		}
		outcome, err := s.play(r.column)
		return r.column, outcome, err
	}
}

func (s *Session) checkSearchable() error {
	if _, ok := s.state.PendingOffer(); ok {
		return game.ErrOfferPending
	}
	if s.state.Outcome().Decided() {
		return game.ErrGameOver
	}
	return nil
}

// ResolveOffer lets the computer accept or reject the pending offer it owns.
func (s *Session) ResolveOffer(ctx context.Context) (bool, error) {
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.PendingOffer(); !ok {
		return false, game.ErrNoOfferPending
	}
	if s.computer.DecideOffer(s.state) {
		_, err := s.accept()
		return true, err
	}
	return false, s.reject()
}
