package termui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tea-estate/internal/render"
)

type Field struct {
	Label    string
	Value    string
	Password bool
}

// Form is a column of labelled text inputs. Tab and shift+tab move between
// fields; the owner decides what enter and esc do.
type Form struct {
	Title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func NewForm(title string, fields ...Field) Form {
	form := Form{Title: title}
	for i, f := range fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 120
		input.Width = 32
		input.SetValue(f.Value)
		if f.Password {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		if i == 0 {
			input.Focus()
		}
		form.labels = append(form.labels, f.Label)
		form.inputs = append(form.inputs, input)
	}
	return form
}

func (f Form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i := range f.inputs {
		out[i] = f.Value(i)
	}
	return out
}

func (f *Form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f Form) Update(message tea.Msg) (Form, tea.Cmd) {
	if key, ok := message.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.move(1)
			return f, nil
		case "shift+tab", "up":
			f.move(-1)
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(message)
	return f, cmd
}

func (f Form) View(theme render.Theme) string {
	labelW := 0
	for _, l := range f.labels {
		labelW = max(labelW, len(l))
	}
	label := lipgloss.NewStyle().Foreground(theme.Faint).Width(labelW + 2)
	active := label.Foreground(theme.Selected)
	lines := []string{lipgloss.NewStyle().Bold(true).Render(f.Title), ""}
	for i, input := range f.inputs {
		style := label
		if i == f.focus {
			style = active
		}
		lines = append(lines, style.Render(f.labels[i])+input.View())
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Faint).Render("tab next field · enter save · esc cancel"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
