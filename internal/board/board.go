// internal/board/board.go
//
// Board model shared by the generator, the solver and the HTTP layer.
//
// A Board is a rectangular grid of single lowercase letters addressed by
// 0-indexed (row, col). The "Qu" die face is stored as the single letter "q";
// CellText expands it back to "qu" when a cell is read into a word.
//
// Boards edited by hand go through Sanitize before Validate so blank cells,
// stray whitespace, upper case and a typed "qu" all end up as valid cells.

package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidDimensions is returned when rows or cols is not positive or
	// exceeds MaxSide.
	ErrInvalidDimensions = errors.New("board: invalid dimensions")
	// ErrInvalidBoard is returned for ragged boards or cells that are not a single letter.
	ErrInvalidBoard = errors.New("board: invalid board")
)

// DefaultSize is the canonical side length (4x4).
const DefaultSize = 4

// MaxSide caps both board dimensions. Search cost grows exponentially with
// the cell count, so larger grids are rejected before any work is done.
const MaxSide = 8

// Placeholder replaces blank cells in hand-edited boards.
const Placeholder = "a"

// Board is a rows x cols grid of single-letter cells.
type Board [][]string

// Coord addresses one cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Rows returns the number of rows.
func (b Board) Rows() int { return len(b) }

// Cols returns the number of columns (0 for an empty board).
func (b Board) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Empty reports whether the board has no cells.
func (b Board) Empty() bool { return b.Rows() == 0 || b.Cols() == 0 }

// InBounds reports whether (row, col) lies on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows() && col >= 0 && col < b.Cols()
}

// At returns the stored letter at c.
func (b Board) At(c Coord) string { return b[c.Row][c.Col] }

// CellText returns the characters a stored cell contributes to a word.
// The stored "q" stands for the "qu" face.
func CellText(cell string) string {
	if cell == "q" {
		return "qu"
	}
	return cell
}

// Word concatenates the cells along path, applying the "q" -> "qu" expansion.
func (b Board) Word(path []Coord) string {
	var sb strings.Builder
	for _, c := range path {
		sb.WriteString(CellText(b.At(c)))
	}
	return sb.String()
}

// Clone returns a deep copy so callers can mutate without affecting b.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Validate checks the shape contract: neither side exceeds MaxSide, every row
// has the same length and every cell holds exactly one lowercase ASCII letter.
func (b Board) Validate() error {
	cols := b.Cols()
	if b.Rows() > MaxSide || cols > MaxSide {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrInvalidDimensions, b.Rows(), cols, MaxSide, MaxSide)
	}
	for r, row := range b {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), cols)
		}
		for c, cell := range row {
			if len(cell) != 1 || cell[0] < 'a' || cell[0] > 'z' {
				return fmt.Errorf("%w: cell (%d,%d) = %q", ErrInvalidBoard, r, c, cell)
			}
		}
	}
	return nil
}

// Sanitize normalizes a hand-edited board: trims and lowercases cells,
// replaces blank cells with Placeholder and folds a typed "qu" into "q".
// Cells that still are not a single letter are left for Validate to reject.
func Sanitize(b Board) Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = sanitizeCell(cell)
		}
	}
	return out
}

func sanitizeCell(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	switch {
	case s == "":
		return Placeholder
	case s == "qu":
		return "q"
	case utf8.RuneCountInString(s) == 1:
		if r, _ := utf8.DecodeRuneInString(s); !unicode.IsLetter(r) {
			return Placeholder
		}
	}
	return s
}

// Parse reads a compact board notation: rows separated by '/' or whitespace,
// one letter per cell, e.g. "cats/oxen/ride/wave".
func Parse(s string) (Board, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	b := make(Board, 0, len(fields))
	for _, f := range fields {
		row := make([]string, 0, len(f))
		for _, r := range f {
			row = append(row, string(unicode.ToLower(r)))
		}
		b = append(b, row)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// String renders the board one row per line, showing the "q" cell as "Qu".
func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if cell == "q" {
				sb.WriteString("Qu")
				continue
			}
			sb.WriteString(strings.ToUpper(cell))
		}
	}
	return sb.String()
}
