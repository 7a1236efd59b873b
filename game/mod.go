package game

type StateHash uint64

// Move is a placement at a 0-based column. Row is derived by gravity.
type Move struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

type MoveRecord struct {
	Move     Move `json:"move"`
	Wildcard bool `json:"wildcard"`
}

// Offer is the single pending wildcard cell. Owner is the player who made the
// move that triggered it.
type Offer struct {
	Column int   `json:"column"`
	Row    int   `json:"row"`
	Owner  Color `json:"owner"`
}

type Status int

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

type Outcome struct {
	Status Status `json:"status"`
	Winner Color  `json:"winner,omitempty"`
	Square bool   `json:"square,omitempty"` // won by square capture
}

func (o Outcome) Decided() bool {
	return o.Status != InProgress
}

func (o Outcome) String() string {
	switch o.Status {
	case Win:
		if o.Square {
			return o.Winner.String() + " wins with four corners"
		}
		return o.Winner.String() + " wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Recorder is told once about every live game that reaches a decision.
type Recorder interface {
	RecordOutcome(Outcome)
}

// Evaluates a non-terminal state from the perspective of the given color.
// Positive scores favor that color.
type Evaluate func(*State, Color) int
