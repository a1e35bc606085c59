package domain

// HasFour reports whether player has four in a row anywhere on the board.
// It scans the shared window enumeration and stops at the first match.
func (b *Board) HasFour(player PlayerID) bool {
	found := false
	b.ForEachWindow(func(w Window) bool {
		for _, cell := range w {
			if cell != player {
				return true // keep scanning
			}
		}
		found = true
		return false
	})
	return found
}

// IsDraw reports whether the game is drawn: no column accepts a piece.
// A won board that also happens to be full is not a draw; callers check
// HasFour first.
func (b *Board) IsDraw() bool {
	return b.IsFull()
}
