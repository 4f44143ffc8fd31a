// Package termui holds the pieces both terminal apps share: the bridge
// from service callbacks into a running program, toasts and small forms.
package termui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tea-estate/internal/events"
	"tea-estate/internal/service"
)

// RefreshMsg asks the model to take a new snapshot of its service.
type RefreshMsg struct{}

type NotifyMsg struct {
	Level service.Level
	Text  string
}

type StatusMsg struct {
	Status events.Status
	Err    error
}

type TickMsg time.Time

// Bridge forwards service callbacks to a running program. Anything sent
// before Attach is dropped; the first snapshot after start catches up.
type Bridge struct {
	program atomic.Pointer[tea.Program]
}

var _ service.View = (*Bridge)(nil)

func (b *Bridge) Attach(program *tea.Program) {
	b.program.Store(program)
}

func (b *Bridge) send(message tea.Msg) {
	if program := b.program.Load(); program != nil {
		program.Send(message)
	}
}

func (b *Bridge) Refresh() { b.send(RefreshMsg{}) }

func (b *Bridge) Notify(level service.Level, text string) {
	b.send(NotifyMsg{Level: level, Text: text})
}

// Status has the signature events.Config.OnStatus expects.
func (b *Bridge) Status(status events.Status, err error) {
	b.send(StatusMsg{Status: status, Err: err})
}

// Task runs fn off the update loop. Service calls must go through here:
// they report back with Send, which would block inside Update.
func Task(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// Every schedules one TickMsg after d.
func Every(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}
