package router

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers engine messages later. After is a fixed delay, Frame
// is one render frame.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
	Frame(msg tea.Msg) tea.Cmd
}

// TickScheduler schedules through tea.Tick.
type TickScheduler struct {
	FrameInterval time.Duration
}

// NewTickScheduler uses a 60fps frame.
func NewTickScheduler() TickScheduler {
	return TickScheduler{FrameInterval: time.Second / 60}
}

func (s TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (s TickScheduler) Frame(msg tea.Msg) tea.Cmd {
	return s.After(s.FrameInterval, msg)
}
