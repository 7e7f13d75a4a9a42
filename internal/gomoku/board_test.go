package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_PlacePiece(t *testing.T) {
	t.Run("Place on empty cell", func(t *testing.T) {
		// Given: a fresh board
		board := NewBoard()

		// When: black plays the center cell
		ok := board.PlacePiece(CellBlack, 7, 7)

		// Then: the move is accepted and the cell holds a black stone
		require.True(t, ok)
		require.Equal(t, CellBlack, board.State()[7][7])
	})

	t.Run("Reject occupied cell", func(t *testing.T) {
		// Given: a board with a black stone at (7,7)
		board := NewBoard()
		require.True(t, board.PlacePiece(CellBlack, 7, 7))

		// When: white plays the same cell
		ok := board.PlacePiece(CellWhite, 7, 7)

		// Then: the move is rejected and the cell is unchanged
		require.False(t, ok)
		require.Equal(t, CellBlack, board.State()[7][7])
	})

	t.Run("Reject out of range", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.PlacePiece(CellBlack, -1, 0))
		assert.False(t, board.PlacePiece(CellBlack, 0, -1))
		assert.False(t, board.PlacePiece(CellBlack, BoardSize, 0))
		assert.False(t, board.PlacePiece(CellBlack, 0, BoardSize))
	})

	t.Run("Reject empty stone value", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.PlacePiece(CellEmpty, 0, 0))
	})
}

func TestBoard_CheckWin(t *testing.T) {
	t.Run("Horizontal run of five", func(t *testing.T) {
		// Given: black stones at (0,3)..(0,7)
		board := NewBoard()
		for col := 3; col <= 7; col++ {
			require.True(t, board.PlacePiece(CellBlack, 0, col))
		}

		// Then: the last placed stone completes a win
		require.True(t, board.CheckWin(0, 7))
	})

	t.Run("Run of four is not a win", func(t *testing.T) {
		board := NewBoard()
		for col := 3; col <= 6; col++ {
			require.True(t, board.PlacePiece(CellBlack, 0, col))
		}

		require.False(t, board.CheckWin(0, 6))
	})

	t.Run("Run of six still wins", func(t *testing.T) {
		board := NewBoard()
		for col := 2; col <= 7; col++ {
			require.True(t, board.PlacePiece(CellWhite, 4, col))
		}

		require.True(t, board.CheckWin(4, 7))
	})

	t.Run("Vertical run of five", func(t *testing.T) {
		board := NewBoard()
		for row := 5; row <= 9; row++ {
			require.True(t, board.PlacePiece(CellWhite, row, 3))
		}

		require.True(t, board.CheckWin(9, 3))
	})

	t.Run("Diagonal run of five", func(t *testing.T) {
		board := NewBoard()
		for i := 0; i < 5; i++ {
			require.True(t, board.PlacePiece(CellBlack, 3+i, 3+i))
		}

		require.True(t, board.CheckWin(7, 7))
	})

	t.Run("Anti-diagonal run through the middle stone", func(t *testing.T) {
		// Given: a run where the checked stone is not at either end
		board := NewBoard()
		for i := 0; i < 5; i++ {
			require.True(t, board.PlacePiece(CellBlack, 10-i, 4+i))
		}

		// Then: checking the middle stone still detects the win
		require.True(t, board.CheckWin(8, 6))
	})

	t.Run("Broken run is not a win", func(t *testing.T) {
		// Given: four black stones split by one white stone
		board := NewBoard()
		require.True(t, board.PlacePiece(CellBlack, 0, 0))
		require.True(t, board.PlacePiece(CellBlack, 0, 1))
		require.True(t, board.PlacePiece(CellWhite, 0, 2))
		require.True(t, board.PlacePiece(CellBlack, 0, 3))
		require.True(t, board.PlacePiece(CellBlack, 0, 4))

		assert.False(t, board.CheckWin(0, 1))
		assert.False(t, board.CheckWin(0, 4))
	})

	t.Run("Empty cell never wins", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.CheckWin(7, 7))
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Fresh board is not full", func(t *testing.T) {
		board := NewBoard()

		require.False(t, board.IsFull())
	})

	t.Run("Completely covered board is full", func(t *testing.T) {
		// Given: every cell occupied, alternating by row parity so no player
		// is ever validated here (PlacePiece only checks the cell)
		board := NewBoard()
		for row := 0; row < BoardSize; row++ {
			for col := 0; col < BoardSize; col++ {
				stone := CellBlack
				if (row+col)%2 == 1 {
					stone = CellWhite
				}
				require.True(t, board.PlacePiece(stone, row, col))
			}
		}

		require.True(t, board.IsFull())
	})
}

func TestBoard_State(t *testing.T) {
	// Given: a board with one stone
	board := NewBoard()
	require.True(t, board.PlacePiece(CellBlack, 1, 1))

	// When: the snapshot is mutated
	state := board.State()
	state[1][1] = CellWhite
	state[0][0] = CellBlack

	// Then: the board itself is untouched
	fresh := board.State()
	assert.Equal(t, CellBlack, fresh[1][1])
	assert.Equal(t, CellEmpty, fresh[0][0])
}
