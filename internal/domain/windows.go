package domain

// Window is a run of exactly ToWin contiguous cells along one of the four
// line directions. It is the atomic unit of both win detection and
// position scoring: the two always agree on what counts as a line because
// they share this enumeration.
type Window [ToWin]PlayerID

// ForEachWindow calls fn for every window on the board, direction by
// direction: horizontal, vertical, diagonal down-right, diagonal
// up-right. Enumeration stops early when fn returns false.
//
// For an RxC board the total is R*(C-3) + C*(R-3) + 2*(R-3)*(C-3).
func (b *Board) ForEachWindow(fn func(Window) bool) {
	var w Window

	// horizontal
	for row := 0; row < b.rows; row++ {
		for col := 0; col <= b.columns-ToWin; col++ {
			for i := 0; i < ToWin; i++ {
				w[i] = b.cells[row][col+i]
			}
			if !fn(w) {
				return
			}
		}
	}

	// vertical
	for col := 0; col < b.columns; col++ {
		for row := 0; row <= b.rows-ToWin; row++ {
			for i := 0; i < ToWin; i++ {
				w[i] = b.cells[row+i][col]
			}
			if !fn(w) {
				return
			}
		}
	}

	// diagonal down-right
	for row := 0; row <= b.rows-ToWin; row++ {
		for col := 0; col <= b.columns-ToWin; col++ {
			for i := 0; i < ToWin; i++ {
				w[i] = b.cells[row+i][col+i]
			}
			if !fn(w) {
				return
			}
		}
	}

	// diagonal up-right, anchored from the bottom rows
	for row := ToWin - 1; row < b.rows; row++ {
		for col := 0; col <= b.columns-ToWin; col++ {
			for i := 0; i < ToWin; i++ {
				w[i] = b.cells[row-i][col+i]
			}
			if !fn(w) {
				return
			}
		}
	}
}
