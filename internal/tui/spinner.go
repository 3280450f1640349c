// Package tui holds the interactive terminal pieces: the setup wizard and
// the spinner shown while a slow task runs.
package tui

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user interrupts a spinner.
var ErrAborted = errors.New("aborted")

type taskDoneMsg struct{ result string }

type spinnerModel struct {
	spinner spinner.Model
	title   string
	task    func() string
	result  string
	done    bool
	aborted bool
}

func newSpinnerModel(title string, task func() string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F"))
	return spinnerModel{spinner: s, title: title, task: task}
}

func (m spinnerModel) Init() tea.Cmd {
	task := m.task
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return taskDoneMsg{result: task()}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.result = msg.result
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return "  " + m.spinner.View() + " " + m.title + "\n"
}

// RunWithSpinner runs task while showing a spinner on out and returns the
// task's result. It returns ErrAborted if the user quits first.
func RunWithSpinner(out io.Writer, title string, task func() string) (string, error) {
	final, err := tea.NewProgram(newSpinnerModel(title, task), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(spinnerModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return m.result, nil
}
