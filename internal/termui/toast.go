package termui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/events"
	"tea-estate/internal/render"
	"tea-estate/internal/service"
)

const toastDuration = 4 * time.Second

type ToastExpiredMsg struct{ id int }

// Toasts shows the latest notification until it times out or another one
// replaces it.
type Toasts struct {
	current NotifyMsg
	id      int
	visible bool
}

func (t *Toasts) Show(message NotifyMsg) tea.Cmd {
	t.id++
	t.current = message
	t.visible = true
	id := t.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return ToastExpiredMsg{id: id} })
}

func (t *Toasts) Expire(message ToastExpiredMsg) {
	if message.id == t.id {
		t.visible = false
	}
}

func (t Toasts) View(theme render.Theme) string {
	if !t.visible {
		return ""
	}
	color := theme.Accent
	switch t.current.Level {
	case service.LevelError:
		color = theme.Danger
	case service.LevelInfo:
		color = theme.StatusPreparing
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		Render(t.current.Text)
}

func ConnectionBadge(status events.Status, theme render.Theme) string {
	switch status {
	case events.StatusConnected:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("● live")
	case events.StatusError:
		return lipgloss.NewStyle().Foreground(theme.Danger).Render("● offline")
	case events.StatusDisconnected:
		return lipgloss.NewStyle().Foreground(theme.StatusPending).Render("● reconnecting")
	}
	return lipgloss.NewStyle().Foreground(theme.Faint).Render("○ no live updates")
}
