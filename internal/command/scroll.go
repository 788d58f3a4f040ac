package command

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/i3sv/i3sv/internal/message"
	"time"
)

// ScrollTickCmd emits a tick for the animation id after delay, or right away when delay is zero
func ScrollTickCmd(id string, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg {
			return message.ScrollTickMsg{ID: id}
		}
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return message.ScrollTickMsg{ID: id}
	})
}
