package game

// Line directions: right, up, up-right, down-right.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// judge computes the outcome of a board. Runs are checked for the first
// player's color before the second's, and both before square captures.
func judge(b *Board, cfg Config) Outcome {
	for _, color := range cfg.Colors {
		if hasRun(b, color, cfg.WinLength) {
			return Outcome{Status: Win, Winner: color}
		}
	}
	if cfg.SquareWin {
		if color, ok := findSquare(b, cfg.Colors); ok {
			return Outcome{Status: Win, Winner: color, Square: true}
		}
	}
	if b.IsFull() {
		return Outcome{Status: Draw}
	}
	return Outcome{}
}

func hasRun(b *Board, color Color, length int) bool {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			for _, d := range directions {
				if runAt(b, color, col, row, d[0], d[1], length) {
					return true
				}
			}
		}
	}
	return false
}

func runAt(b *Board, color Color, col, row, dc, dr, length int) bool {
	endCol, endRow := col+dc*(length-1), row+dr*(length-1)
	if !b.InBounds(endCol, endRow) {
		return false
	}
	for i := 0; i < length; i++ {
		if !b.At(col+dc*i, row+dr*i).Matches(color) {
			return false
		}
	}
	return true
}

// findSquare looks for four occupied corners of an axis-aligned square, any
// side length, that all match one player's color.
func findSquare(b *Board, colors [2]Color) (Color, bool) {
	maxSize := min(b.columns, b.rows) - 1
	for size := 1; size <= maxSize; size++ {
		for col := 0; col+size < b.columns; col++ {
			for row := 0; row+size < b.rows; row++ {
				corners := [4]Cell{
					b.At(col, row),
					b.At(col+size, row),
					b.At(col, row+size),
					b.At(col+size, row+size),
				}
				if corners[0].IsEmpty() || corners[1].IsEmpty() || corners[2].IsEmpty() || corners[3].IsEmpty() {
					continue
				}
				for _, color := range colors {
					if corners[0].Matches(color) && corners[1].Matches(color) &&
						corners[2].Matches(color) && corners[3].Matches(color) {
						return color, true
					}
				}
			}
		}
	}
	return NoColor, false
}
