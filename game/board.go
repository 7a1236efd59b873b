package game

import (
	"fmt"
	"strings"
)

type Color int

const (
	NoColor Color = iota
	Red
	Yellow
	Blue
	Green
	Purple
	Orange
)

// Palette lists the colors a player may pick.
var Palette = []Color{Red, Yellow, Blue, Green, Purple, Orange}

var colorNames = map[Color]string{
	NoColor: "none",
	Red:     "red",
	Yellow:  "yellow",
	Blue:    "blue",
	Green:   "green",
	Purple:  "purple",
	Orange:  "orange",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", int(c))
}

func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type CellKind int

const (
	Empty CellKind = iota
	Owned
	Wildcard // pending offer cell, matches any color
)

type Cell struct {
	Kind  CellKind `json:"kind"`
	Color Color    `json:"color,omitempty"`
}

// Matches reports whether the cell counts towards a line of the given color.
func (c Cell) Matches(color Color) bool {
	switch c.Kind {
	case Wildcard:
		return true
	case Owned:
		return c.Color == color
	default:
		return false
	}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// Board is a gravity-fed grid. Row 0 is the bottom row and column 0 the
// leftmost column. Cells are stored row-major.
type Board struct {
	columns int
	rows    int
	cells   []Cell
}

func NewBoard(columns, rows int) *Board {
	return &Board{
		columns: columns,
		rows:    rows,
		cells:   make([]Cell, columns*rows),
	}
}

func (b *Board) Columns() int { return b.columns }
func (b *Board) Rows() int    { return b.rows }

func (b *Board) index(col, row int) int {
	return row*b.columns + col
}

func (b *Board) InBounds(col, row int) bool {
	return col >= 0 && col < b.columns && row >= 0 && row < b.rows
}

// At returns the cell at (col, row), 0-based. Out of range positions read as empty.
func (b *Board) At(col, row int) Cell {
	if !b.InBounds(col, row) {
		return Cell{}
	}
	return b.cells[b.index(col, row)]
}

func (b *Board) set(col, row int, cell Cell) {
	b.cells[b.index(col, row)] = cell
}

func (b *Board) clear(col, row int) {
	b.cells[b.index(col, row)] = Cell{}
}

// LandingRow returns the lowest empty row of the column, or -1 if it is full.
func (b *Board) LandingRow(col int) int {
	for row := 0; row < b.rows; row++ {
		if b.At(col, row).IsEmpty() {
			return row
		}
	}
	return -1
}

func (b *Board) IsColumnFull(col int) bool {
	return !b.At(col, b.rows-1).IsEmpty()
}

// IsFull reports whether every column's top cell is occupied.
func (b *Board) IsFull() bool {
	for col := 0; col < b.columns; col++ {
		if !b.IsColumnFull(col) {
			return false
		}
	}
	return true
}

// IsCorner reports whether (col, row) is one of the four board corners.
func (b *Board) IsCorner(col, row int) bool {
	return (col == 0 || col == b.columns-1) && (row == 0 || row == b.rows-1)
}

// Cells returns a copy of the row-major cell slice.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}

func (b *Board) Copy() *Board {
	return &Board{
		columns: b.columns,
		rows:    b.rows,
		cells:   b.Cells(),
	}
}

// hasGravity reports whether no occupied cell sits above an empty one.
func (b *Board) hasGravity() bool {
	for col := 0; col < b.columns; col++ {
		gap := false
		for row := 0; row < b.rows; row++ {
			if b.At(col, row).IsEmpty() {
				gap = true
			} else if gap {
				return false
			}
		}
	}
	return true
}

func (b *Board) count(kind CellKind) int {
	n := 0
	for _, c := range b.cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// String renders the board top row first, one character per cell.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.columns; col++ {
			cell := b.At(col, row)
			switch cell.Kind {
			case Empty:
				sb.WriteByte('.')
			case Wildcard:
				sb.WriteByte('*')
			default:
				sb.WriteByte(strings.ToUpper(cell.Color.String())[0])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
