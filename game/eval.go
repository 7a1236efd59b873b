package game

const (
	CenterWeight  = 3
	ThreatWeight  = 10000
	LineWeight    = 100000 // a full window
	OpenOneWeight = 100    // one cell short, one empty
	OpenTwoWeight = 10     // two cells short, two empty
)

// EvaluatePosition scores the position for perspective from three terms:
// center column occupancy, every window of WinLength cells along the four
// line directions, and immediate winning drops for the player to move.
// A wildcard counts as the perspective's own piece.
func EvaluatePosition(s *State, perspective Color) int {
	return centerScore(s, perspective) + windowScore(s, perspective) + threatScore(s, perspective)
}

func centerScore(s *State, perspective Color) int {
	b := s.board
	center := b.columns / 2
	score := 0
	for row := 0; row < b.rows; row++ {
		cell := b.At(center, row)
		switch {
		case cell.IsEmpty():
		case isOwn(cell, perspective):
			score += CenterWeight
		default:
			score -= CenterWeight
		}
	}
	return score
}

func windowScore(s *State, perspective Color) int {
	b := s.board
	length := s.config.WinLength
	score := 0
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			for _, d := range directions {
				if !b.InBounds(col+d[0]*(length-1), row+d[1]*(length-1)) {
					continue
				}
				own, other, empty := 0, 0, 0
				for i := 0; i < length; i++ {
					cell := b.At(col+d[0]*i, row+d[1]*i)
					switch {
					case cell.IsEmpty():
						empty++
					case isOwn(cell, perspective):
						own++
					default:
						other++
					}
				}
				score += scoreWindow(own, other, empty, length)
			}
		}
	}
	return score
}

func scoreWindow(own, other, empty, length int) int {
	if own > 0 && other > 0 {
		return 0
	}
	if own > 0 {
		return tierScore(own, empty, length)
	}
	if other > 0 {
		return -tierScore(other, empty, length)
	}
	return 0
}

func tierScore(count, empty, length int) int {
	switch {
	case count == length:
		return LineWeight
	case count == length-1 && empty == 1:
		return OpenOneWeight
	case count == length-2 && empty == 2:
		return OpenTwoWeight
	}
	return 0
}

// threatScore counts the columns where the player to move would win at once.
func threatScore(s *State, perspective Color) int {
	mover := s.turn
	score := 0
	for _, column := range s.LegalColumns() {
		clone := s.Clone()
		outcome, err := clone.Play(column)
		if err != nil || outcome.Status != Win || outcome.Winner != mover {
			continue
		}
		if mover == perspective {
			score += ThreatWeight
		} else {
			score -= ThreatWeight
		}
	}
	return score
}

func isOwn(cell Cell, perspective Color) bool {
	return cell.Kind == Wildcard || cell.Color == perspective
}
