package toast

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/i3sv/i3sv/internal/dev"
	"time"
)

type Model struct {
	ID           string
	message      string
	Visible      bool
	messageStyle lipgloss.Style
}

func New(message string, messageStyle lipgloss.Style) Model {
	return Model{
		ID:           uuid.NewString(),
		message:      message,
		Visible:      true,
		messageStyle: messageStyle,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	dev.DebugUpdateMsg("Toast", msg)
	switch msg := msg.(type) {
	case TimeoutMsg:
		if msg.ID != m.ID {
			return m, nil
		}
		m.Visible = false
	}
	return m, nil
}

func (m Model) View() string {
	if m.Visible {
		return m.messageStyle.Render(m.message)
	}
	return ""
}

func (m Model) ViewHeight() int {
	if !m.Visible {
		return 0
	}
	return lipgloss.Height(m.View())
}

// TimeoutCmd hides the toast after d
func (m Model) TimeoutCmd(d time.Duration) tea.Cmd {
	id := m.ID
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TimeoutMsg{ID: id}
	})
}

type TimeoutMsg struct {
	ID string
}
