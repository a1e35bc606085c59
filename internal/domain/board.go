package domain

// Board holds the cell state for a rows x columns grid. Row 0 is the top,
// so gravity pulls pieces toward row rows-1. Dimensions are fixed for the
// lifetime of a Board; only cell contents change, and only through Drop
// and Undo.
type Board struct {
	rows    int
	columns int
	cells   [][]PlayerID
}

// NewBoard creates an empty board. Both dimensions must be between
// MinBoardSize and MaxBoardSize.
func NewBoard(rows, columns int) (*Board, error) {
	if rows < MinBoardSize || rows > MaxBoardSize {
		return nil, ErrInvalidDimensions
	}
	if columns < MinBoardSize || columns > MaxBoardSize {
		return nil, ErrInvalidDimensions
	}

	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, columns)
	}

	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// Cell returns the occupant of (row, column). Callers are expected to
// stay in bounds.
func (b *Board) Cell(row, column int) PlayerID {
	return b.cells[row][column]
}

// IsValidMove reports whether a piece can still be dropped in column.
func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= b.columns {
		return false
	}

	// the top row decides: if it is taken the column is full
	return b.cells[0][column] == Empty
}

// ValidMoves returns the playable columns in ascending order. The order
// matters: it is the tie-break basis for the search.
func (b *Board) ValidMoves() []int {
	moves := []int{}
	for col := 0; col < b.columns; col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// Drop places a piece for player in column, letting it fall to the lowest
// empty cell, and returns the row it landed in.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if column < 0 || column >= b.columns {
		return -1, ErrInvalidMove
	}

	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			b.cells[row][column] = player
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// Undo clears the cell at (row, column). It must only be used to revert
// the most recent Drop in that column; no validation is performed, so
// misuse silently breaks the gravity invariant.
func (b *Board) Undo(row, column int) {
	b.cells[row][column] = Empty
}

// IsFull reports whether no column accepts another piece.
func (b *Board) IsFull() bool {
	for col := 0; col < b.columns; col++ {
		if b.cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// Grid returns a deep copy of the cells for serialization. The live
// cells are never handed out: a search may be mutating them.
func (b *Board) Grid() [][]PlayerID {
	grid := make([][]PlayerID, b.rows)
	for i := range b.cells {
		grid[i] = make([]PlayerID, b.columns)
		copy(grid[i], b.cells[i])
	}
	return grid
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{rows: b.rows, columns: b.columns, cells: b.Grid()}
}
