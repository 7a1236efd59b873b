package game

import (
	"fmt"
	"strings"
)

const (
	DefaultWinLength   = 4
	DefaultOfferChance = 0.15
)

// Config fixes the board geometry, win rules, wildcard mechanic and search
// strength of one game. Colors[0] moves first.
type Config struct {
	Columns          int      `yaml:"columns"`
	Rows             int      `yaml:"rows"`
	WinLength        int      `yaml:"win_length"`
	SquareWin        bool     `yaml:"square_win"`
	MaxWildcards     int      `yaml:"max_wildcards"`
	OfferChance      float64  `yaml:"offer_chance"`
	SearchDepth      int      `yaml:"search_depth"`
	RandomMoveChance float64  `yaml:"random_move_chance"`
	Colors           [2]Color `yaml:"colors,flow"`
}

func (c Config) Validate() error {
	if c.Columns < 2 || c.Rows < 2 {
		return fmt.Errorf("%w: board must be at least 2x2, got %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	}
	if c.WinLength < 2 || (c.WinLength > c.Columns && c.WinLength > c.Rows) {
		return fmt.Errorf("%w: win length %d does not fit a %dx%d board", ErrInvalidConfig, c.WinLength, c.Columns, c.Rows)
	}
	if c.MaxWildcards < 0 {
		return fmt.Errorf("%w: negative wildcard budget %d", ErrInvalidConfig, c.MaxWildcards)
	}
	if c.OfferChance < 0 || c.OfferChance > 1 {
		return fmt.Errorf("%w: offer chance %v outside [0, 1]", ErrInvalidConfig, c.OfferChance)
	}
	if c.RandomMoveChance < 0 || c.RandomMoveChance > 1 {
		return fmt.Errorf("%w: random move chance %v outside [0, 1]", ErrInvalidConfig, c.RandomMoveChance)
	}
	if c.SearchDepth < 0 {
		return fmt.Errorf("%w: negative search depth %d", ErrInvalidConfig, c.SearchDepth)
	}
	for _, color := range c.Colors {
		if color < Red || color > Orange {
			return fmt.Errorf("%w: color %v is not in the palette", ErrInvalidConfig, color)
		}
	}
	if c.Colors[0] == c.Colors[1] {
		return fmt.Errorf("%w: both players picked %v", ErrInvalidConfig, c.Colors[0])
	}
	return nil
}

// Difficulty tiers scale board size, wildcard budget and search depth together.
type Difficulty int

const (
	Beginner Difficulty = iota
	Intermediate
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beginner", "easy":
		return Beginner, nil
	case "intermediate", "medium":
		return Intermediate, nil
	case "expert", "hard":
		return Expert, nil
	}
	return Beginner, fmt.Errorf("unknown difficulty %q", name)
}

// Config returns the preset for the tier. Square boards enable the
// square-capture win.
func (d Difficulty) Config(square bool) Config {
	cfg := Config{
		WinLength:   DefaultWinLength,
		SquareWin:   square,
		OfferChance: DefaultOfferChance,
		Colors:      [2]Color{Red, Yellow},
	}
	switch d {
	case Intermediate:
		cfg.Columns, cfg.Rows = 14, 12
		cfg.MaxWildcards = 7
		cfg.SearchDepth = 4
	case Expert:
		cfg.Columns, cfg.Rows = 21, 18
		cfg.MaxWildcards = 11
		cfg.SearchDepth = 4
	default:
		cfg.Columns, cfg.Rows = 7, 6
		cfg.MaxWildcards = 3
		cfg.SearchDepth = 2
		cfg.RandomMoveChance = 0.3
	}
	if square {
		switch d {
		case Intermediate:
			cfg.Columns, cfg.Rows = 12, 12
		case Expert:
			cfg.Columns, cfg.Rows = 18, 18
		default:
			cfg.Columns, cfg.Rows = 7, 7
		}
	}
	return cfg
}

// DefaultConfig is the classic 7x6 board at beginner strength.
func DefaultConfig() Config {
	return Beginner.Config(false)
}
