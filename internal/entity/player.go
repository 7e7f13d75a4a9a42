package entity

import "github.com/rocketscienceinc/gomoku-backend/internal/gomoku"

const (
	ColorBlack = "black"
	ColorWhite = "white"
)

// Player is one side of a match. The color is assigned on registration and
// never changes: black is the session creator, white is the joiner.
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewPlayer(name, color string) *Player {
	return &Player{
		Name:  name,
		Color: color,
	}
}

// Stone maps the player's color to the board cell value.
func (that *Player) Stone() int {
	if that.Color == ColorBlack {
		return gomoku.CellBlack
	}

	return gomoku.CellWhite
}
