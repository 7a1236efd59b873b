package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJudge(t *testing.T) {
	t.Run("runs are found in every direction", func(t *testing.T) {
		cfg := quietConfig()
		starts := map[string][2]int{
			"horizontal": {1, 2},
			"vertical":   {3, 0},
			"rising":     {0, 0},
			"falling":    {2, 5},
		}
		for i, d := range directions {
			name := []string{"horizontal", "vertical", "rising", "falling"}[i]
			start := starts[name]

			b := NewBoard(cfg.Columns, cfg.Rows)
			for k := 0; k < cfg.WinLength; k++ {
				b.set(start[0]+d[0]*k, start[1]+d[1]*k, Cell{Kind: Owned, Color: Yellow})
			}
			require.True(t, hasRun(b, Yellow, 4), "%s line should be a run", name)
			require.False(t, hasRun(b, Red, 4), "%s line belongs to yellow only", name)
			require.Equal(t, Outcome{Status: Win, Winner: Yellow}, judge(b, cfg))

			b.set(start[0]+d[0], start[1]+d[1], Cell{Kind: Wildcard})
			require.True(t, hasRun(b, Yellow, 4), "%s line with a wildcard should still be a run", name)

			b.set(start[0]+d[0], start[1]+d[1], Cell{Kind: Owned, Color: Red})
			require.False(t, hasRun(b, Yellow, 4), "%s line broken by red is not a run", name)
		}
	})

	t.Run("lines laid from either end are found", func(t *testing.T) {
		cfg := quietConfig()
		anchor := map[int][2]int{-1: {6, 5}, 0: {3, 2}, 1: {0, 0}}
		for dc := -1; dc <= 1; dc++ {
			for dr := -1; dr <= 1; dr++ {
				if dc == 0 && dr == 0 {
					continue
				}
				col, row := anchor[dc][0], anchor[dr][1]

				b := NewBoard(cfg.Columns, cfg.Rows)
				for k := 0; k < cfg.WinLength; k++ {
					b.set(col+dc*k, row+dr*k, Cell{Kind: Owned, Color: Red})
				}
				require.True(t, hasRun(b, Red, cfg.WinLength), "line from (%d, %d) going (%d, %d)", col, row, dc, dr)
				require.Equal(t, Outcome{Status: Win, Winner: Red}, judge(b, cfg))

				b.clear(col, row)
				require.False(t, hasRun(b, Red, cfg.WinLength), "three from (%d, %d) going (%d, %d)", col, row, dc, dr)
			}
		}
	})

	t.Run("win length is configurable", func(t *testing.T) {
		b := NewBoard(7, 6)
		for col := 0; col < 3; col++ {
			b.set(col, 0, Cell{Kind: Owned, Color: Red})
		}
		require.True(t, hasRun(b, Red, 3))
		require.False(t, hasRun(b, Red, 4))
	})

	t.Run("square capture on the outer corners", func(t *testing.T) {
		cfg := Beginner.Config(true)
		require.Equal(t, 7, cfg.Columns)
		require.Equal(t, 7, cfg.Rows)

		b := NewBoard(cfg.Columns, cfg.Rows)
		for row, color := range []Color{Red, Yellow, Yellow, Red, Yellow, Yellow, Red} {
			b.set(0, row, Cell{Kind: Owned, Color: color})
			b.set(6, row, Cell{Kind: Owned, Color: color})
		}
		require.True(t, b.hasGravity())

		require.Equal(t, Outcome{Status: Win, Winner: Red, Square: true}, judge(b, cfg))

		cfg.SquareWin = false
		require.Equal(t, Outcome{}, judge(b, cfg), "square capture only counts when enabled")
	})

	t.Run("mismatched or empty corners are not a square", func(t *testing.T) {
		cfg := Beginner.Config(true)
		b := NewBoard(cfg.Columns, cfg.Rows)
		b.set(0, 0, Cell{Kind: Owned, Color: Red})
		b.set(2, 0, Cell{Kind: Owned, Color: Red})
		b.set(0, 1, Cell{Kind: Owned, Color: Red})
		b.set(0, 2, Cell{Kind: Owned, Color: Red})
		b.set(2, 1, Cell{Kind: Owned, Color: Yellow})
		_, ok := findSquare(b, cfg.Colors)
		require.False(t, ok, "top right corner of the 2-square is empty")

		b.set(2, 2, Cell{Kind: Owned, Color: Yellow})
		_, ok = findSquare(b, cfg.Colors)
		require.False(t, ok, "top right corner is yellow")

		b.set(2, 2, Cell{Kind: Wildcard})
		color, ok := findSquare(b, cfg.Colors)
		require.True(t, ok, "a wildcard corner matches")
		require.Equal(t, Red, color)
	})

	t.Run("runs take priority over squares", func(t *testing.T) {
		cfg := Beginner.Config(true)
		b := NewBoard(cfg.Columns, cfg.Rows)
		for col := 0; col < 4; col++ {
			b.set(col, 0, Cell{Kind: Owned, Color: Yellow})
			b.set(col, 1, Cell{Kind: Owned, Color: Yellow})
		}
		require.Equal(t, Outcome{Status: Win, Winner: Yellow}, judge(b, cfg))
	})
}

func TestConfig(t *testing.T) {
	t.Run("presets are valid", func(t *testing.T) {
		for _, d := range []Difficulty{Beginner, Intermediate, Expert} {
			for _, square := range []bool{false, true} {
				cfg := d.Config(square)
				require.NoError(t, cfg.Validate(), "%s square=%v", d, square)
				require.Equal(t, square, cfg.SquareWin)
				if square {
					require.Equal(t, cfg.Columns, cfg.Rows, "%s square board should be square", d)
				}
			}
		}
		require.Equal(t, 0.3, Beginner.Config(false).RandomMoveChance)
		require.Equal(t, 0.0, Expert.Config(false).RandomMoveChance)
		require.Equal(t, 14, Intermediate.Config(false).Columns)
		require.Equal(t, 11, Expert.Config(false).MaxWildcards)
	})

	t.Run("invalid configs are rejected", func(t *testing.T) {
		broken := map[string]func(*Config){
			"tiny board":        func(c *Config) { c.Columns = 1 },
			"long win":          func(c *Config) { c.WinLength = 9 },
			"short win":         func(c *Config) { c.WinLength = 1 },
			"negative budget":   func(c *Config) { c.MaxWildcards = -1 },
			"chance above one":  func(c *Config) { c.OfferChance = 1.5 },
			"negative random":   func(c *Config) { c.RandomMoveChance = -0.1 },
			"negative depth":    func(c *Config) { c.SearchDepth = -1 },
			"same colors":       func(c *Config) { c.Colors = [2]Color{Blue, Blue} },
			"color not in play": func(c *Config) { c.Colors = [2]Color{NoColor, Blue} },
		}
		for name, mutate := range broken {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)

			_, err := NewState(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig, name)
		}
	})

	t.Run("names parse", func(t *testing.T) {
		d, err := ParseDifficulty("Expert")
		require.NoError(t, err)
		require.Equal(t, Expert, d)
		_, err = ParseDifficulty("godlike")
		require.Error(t, err)

		c, err := ParseColor(" Purple ")
		require.NoError(t, err)
		require.Equal(t, Purple, c)
		_, err = ParseColor("teal")
		require.Error(t, err)
	})
}

func TestEvaluatePosition(t *testing.T) {
	t.Run("empty board is even", func(t *testing.T) {
		s := newTestState(t, quietConfig())
		require.Equal(t, 0, EvaluatePosition(s, Red))
		require.Equal(t, 0, EvaluatePosition(s, Yellow))
	})

	t.Run("center piece favors its owner", func(t *testing.T) {
		s := newTestState(t, quietConfig())
		playAll(t, s, 4)
		require.Positive(t, EvaluatePosition(s, Red))
		require.Equal(t, -EvaluatePosition(s, Red), EvaluatePosition(s, Yellow), "score should be symmetric")
	})

	t.Run("immediate threat of the mover dominates", func(t *testing.T) {
		s := newTestState(t, quietConfig())
		playAll(t, s, 1, 7, 2, 7, 3)
		// yellow to move, red threatens column 4 but yellow moves first
		require.Less(t, EvaluatePosition(s, Yellow), 0)

		playAll(t, s, 6)
		// red to move with a winning drop in column 4
		require.Greater(t, EvaluatePosition(s, Red), ThreatWeight/2)
	})

	t.Run("window tiers", func(t *testing.T) {
		require.Equal(t, LineWeight, scoreWindow(4, 0, 0, 4))
		require.Equal(t, OpenOneWeight, scoreWindow(3, 0, 1, 4))
		require.Equal(t, OpenTwoWeight, scoreWindow(2, 0, 2, 4))
		require.Equal(t, -OpenOneWeight, scoreWindow(0, 3, 1, 4))
		require.Equal(t, 0, scoreWindow(2, 1, 1, 4), "mixed windows are dead")
		require.Equal(t, 0, scoreWindow(0, 0, 2, 2), "empty windows score nothing")
	})
}
