package command

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/i3sv/i3sv/internal/dev"
	"go.uber.org/zap"
)

// writeAll is swapped out in tests so they never touch the system clipboard
var writeAll = clipboard.WriteAll

type ContentCopiedToClipboardMsg struct {
	Content string
	Err     error
}

func CopyContentToClipboardCmd(content string) tea.Cmd {
	return func() tea.Msg {
		err := writeAll(content)
		if err != nil {
			dev.Debug("clipboard write failed", zap.Error(err))
		}
		return ContentCopiedToClipboardMsg{Content: content, Err: err}
	}
}
