package model

import "github.com/shreekantyadav007/ReactChessTypeScript/internal/rules"

// ClientPlayer is one side of the board as shown to the UI. Both sides are
// played from the same client.
type ClientPlayer struct {
	Color    rules.Color `json:"color"`
	TimeLeft int         `json:"timeLeft"` // tenths of a second
}

func toTenths(c *Clock) int {
	return int(c.GetTimeLeft().Milliseconds() / 100)
}
