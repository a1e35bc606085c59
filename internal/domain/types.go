package domain

// PlayerID identifies who occupies a cell.
type PlayerID int

const (
	Empty PlayerID = 0
	Human PlayerID = 1
	Bot   PlayerID = 2
)

func (p PlayerID) String() string {
	switch p {
	case Human:
		return "HUMAN"
	case Bot:
		return "BOT"
	default:
		return "EMPTY"
	}
}

// Opponent returns the other side.
func Opponent(p PlayerID) PlayerID {
	if p == Human {
		return Bot
	}
	return Human
}

// board size limits, anything outside is rejected at construction
const (
	MinBoardSize = 4
	MaxBoardSize = 8
	ToWin        = 4
)

// GameStatus represents the lifecycle of a game.
type GameStatus string

const (
	StatusActive    GameStatus = "active"
	StatusWon       GameStatus = "won"
	StatusDraw      GameStatus = "draw"
	StatusAbandoned GameStatus = "abandoned"
)

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidMove       Error = "invalid move"
	ErrColumnFull        Error = "column is full"
	ErrNoLegalMove       Error = "no legal move available"
	ErrGameFinished      Error = "game is already finished"
	ErrNotYourTurn       Error = "not your turn"
)
