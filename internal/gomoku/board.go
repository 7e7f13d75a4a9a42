package gomoku

// BoardSize is the side length of the grid. Gomoku is played on 15x15.
const BoardSize = 15

// winLength is the minimum run of same-color stones that wins.
const winLength = 5

// Cell values stored in the grid.
const (
	CellEmpty = 0
	CellBlack = 1
	CellWhite = 2
)

// axes are the four scan axes: horizontal, vertical and the two diagonals.
// Each axis is walked in both directions from the placed stone.
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Board holds the grid state. It knows nothing about players or sessions.
type Board struct {
	cells [BoardSize][BoardSize]int
}

func NewBoard() *Board {
	return &Board{}
}

// IsValidMove reports whether the cell is on the board and still empty.
func (that *Board) IsValidMove(row, col int) bool {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return false
	}

	return that.cells[row][col] == CellEmpty
}

// PlacePiece writes the stone into the cell. It returns false without
// mutating the grid when the move is not valid.
func (that *Board) PlacePiece(stone, row, col int) bool {
	if stone != CellBlack && stone != CellWhite {
		return false
	}

	if !that.IsValidMove(row, col) {
		return false
	}

	that.cells[row][col] = stone

	return true
}

// CheckWin reports whether the stone at (row, col) completes a run of five
// or more. It counts through the placed stone in both directions of each axis.
func (that *Board) CheckWin(row, col int) bool {
	stone := that.cells[row][col]
	if stone == CellEmpty {
		return false
	}

	for _, axis := range axes {
		count := 1 // the placed stone itself

		for r, c := row+axis[0], col+axis[1]; that.sameStone(r, c, stone); r, c = r+axis[0], c+axis[1] {
			count++
		}

		for r, c := row-axis[0], col-axis[1]; that.sameStone(r, c, stone); r, c = r-axis[0], c-axis[1] {
			count++
		}

		if count >= winLength {
			return true
		}
	}

	return false
}

// IsFull reports whether no empty cell remains.
func (that *Board) IsFull() bool {
	for row := range that.cells {
		for col := range that.cells[row] {
			if that.cells[row][col] == CellEmpty {
				return false
			}
		}
	}

	return true
}

// State returns an independent copy of the grid so callers cannot mutate
// board state through the returned value.
func (that *Board) State() [][]int {
	state := make([][]int, BoardSize)
	for row := range that.cells {
		state[row] = make([]int, BoardSize)
		copy(state[row], that.cells[row][:])
	}

	return state
}

func (that *Board) sameStone(row, col, stone int) bool {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return false
	}

	return that.cells[row][col] == stone
}
