// Package tui runs the jumper in a terminal with Bubble Tea, locally or over SSH.
// It owns the fixed-rate tick loop, key mapping, sound cues and the session
// scoreboard; the simulation itself lives in the game packages.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	At    time.Time
	Owner int64 // Model that scheduled the tick
}

// tickOwners hands out model IDs. A model ignores ticks it did not
// schedule, so a stale tick from a previous game never starts a second loop.
var tickOwners atomic.Int64

func newTickOwner() int64 {
	return tickOwners.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for owner after
// one interval at the specified rate.
func tickCmd(tickRate int, owner int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Owner: owner}
	})
}
