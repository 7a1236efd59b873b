package player

import (
	"connect/game"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Kind int

const (
	Human Kind = iota
	Computer
)

func (k Kind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// Player is a named participant with a piece color and a running record.
type Player struct {
	ID        string
	Name      string
	Kind      Kind
	Color     game.Color
	GamesWon  int
	GamesLost int
	GamesTied int
}

// NewPlayer creates a new Player instance.
func NewPlayer(name string, kind Kind, color game.Color) *Player {
	return &Player{
		ID:    uuid.New().String(),
		Name:  name,
		Kind:  kind,
		Color: color,
	}
}

func (p *Player) RecordWin()  { p.GamesWon++ }
func (p *Player) RecordLoss() { p.GamesLost++ }
func (p *Player) RecordTie()  { p.GamesTied++ }

func (p *Player) GamesPlayed() int {
	return p.GamesWon + p.GamesLost + p.GamesTied
}

// WinPercentage is 0 before the first game.
func (p *Player) WinPercentage() float64 {
	played := p.GamesPlayed()
	if played == 0 {
		return 0
	}
	return 100 * float64(p.GamesWon) / float64(played)
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Kind, p.Color)
}

// Roster holds the two players of a game, in turn order, and keeps their
// records. It is a game.Recorder.
type Roster struct {
	players [2]*Player
}

func NewRoster(first, second *Player) (*Roster, error) {
	if first == nil || second == nil {
		return nil, fmt.Errorf("roster needs two players")
	}
	if first.Color == second.Color {
		return nil, fmt.Errorf("players %s and %s share color %s", first.Name, second.Name, first.Color)
	}
	return &Roster{players: [2]*Player{first, second}}, nil
}

func (r *Roster) Players() []*Player {
	return r.players[:]
}

// Colors returns the players' colors in turn order, ready for game.Config.
func (r *Roster) Colors() [2]game.Color {
	return [2]game.Color{r.players[0].Color, r.players[1].Color}
}

func (r *Roster) ByColor(color game.Color) (*Player, bool) {
	i := slices.IndexFunc(r.players[:], func(p *Player) bool { return p.Color == color })
	if i < 0 {
		return nil, false
	}
	return r.players[i], true
}

func (r *Roster) RecordOutcome(outcome game.Outcome) {
	switch outcome.Status {
	case game.Win:
		for _, p := range r.players {
			if p.Color == outcome.Winner {
				p.RecordWin()
			} else {
				p.RecordLoss()
			}
		}
		if winner, ok := r.ByColor(outcome.Winner); ok {
			log.Info().Msgf("%s won (%.1f%% of %d games)", winner.Name, winner.WinPercentage(), winner.GamesPlayed())
		}
	case game.Draw:
		for _, p := range r.players {
			p.RecordTie()
		}
		log.Info().Msg("game tied")
	}
}
