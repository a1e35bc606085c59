package domain

import "testing"

// closed-form window count for an RxC board
func expectedWindowCount(rows, columns int) int {
	return rows*(columns-3) + columns*(rows-3) + 2*(rows-3)*(columns-3)
}

func TestWindowCountMatchesClosedForm(t *testing.T) {
	for rows := MinBoardSize; rows <= MaxBoardSize; rows++ {
		for columns := MinBoardSize; columns <= MaxBoardSize; columns++ {
			b, err := NewBoard(rows, columns)
			if err != nil {
				t.Fatalf("NewBoard(%d, %d): %v", rows, columns, err)
			}

			count := 0
			b.ForEachWindow(func(Window) bool {
				count++
				return true
			})

			if want := expectedWindowCount(rows, columns); count != want {
				t.Fatalf("%dx%d board: expected %d windows, got %d", rows, columns, want, count)
			}
		}
	}
}

func TestForEachWindowStopsEarly(t *testing.T) {
	b, _ := NewBoard(6, 7)

	count := 0
	b.ForEachWindow(func(Window) bool {
		count++
		return count < 5
	})

	if count != 5 {
		t.Fatalf("expected enumeration to stop after 5 windows, got %d", count)
	}
}

func TestWindowsSeeDroppedPieces(t *testing.T) {
	b, _ := NewBoard(6, 7)
	for col := 0; col < 4; col++ {
		if _, err := b.Drop(col, Bot); err != nil {
			t.Fatalf("drop failed: %v", err)
		}
	}

	// exactly one window contains all four pieces: bottom row, cols 0-3
	full := 0
	b.ForEachWindow(func(w Window) bool {
		if w[0] == Bot && w[1] == Bot && w[2] == Bot && w[3] == Bot {
			full++
		}
		return true
	})

	if full != 1 {
		t.Fatalf("expected exactly 1 all-Bot window, got %d", full)
	}
}
