package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/grabr/internal/git"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// CloneFunc performs the actual clone while the model animates.
type CloneFunc func(ctx context.Context) error

type CloneModel struct {
	spinner spinner.Model
	url     string
	path    string
	clone   CloneFunc
	cloning bool
	done    bool
	err     error
}

type cloneCompleteMsg struct {
	err error
}

// NewCloneModel creates a spinner model around a clone operation.
func NewCloneModel(url, path string, clone CloneFunc) CloneModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return CloneModel{
		spinner: s,
		url:     url,
		path:    path,
		clone:   clone,
		cloning: true,
	}
}

func (m CloneModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cloneRepo)
}

func (m CloneModel) cloneRepo() tea.Msg {
	return cloneCompleteMsg{err: m.clone(context.Background())}
}

func (m CloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch keyMsg := msg.(type) {
	case tea.KeyMsg:
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.done {
			return m, tea.Quit
		}

	case cloneCompleteMsg:
		m.cloning = false
		m.done = true
		m.err = keyMsg.err

		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(keyMsg)

		return m, cmd
	}

	return m, nil
}

func (m CloneModel) View() string {
	if m.done {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("\n  ✗ Clone failed: %v\n\n", m.err))
		}

		return successStyle.Render(fmt.Sprintf("\n  ✓ Successfully cloned to %s\n\n", m.path))
	}

	if m.cloning {
		return fmt.Sprintf("\n  %s Cloning %s\n  %s\n\n", m.spinner.View(), urlStyle.Render(m.url), pathStyle.Render("→ "+m.path))
	}

	return ""
}

func (m CloneModel) Error() error {
	return m.err
}

// Cloner runs git clone behind the spinner model. Output from git is
// captured rather than streamed so it does not tear the display; on failure
// it surfaces through the returned error.
type Cloner struct {
	Client *git.Client
}

func (c *Cloner) Clone(ctx context.Context, cloneURL, targetPath, branch string) error {
	client := c.Client
	if client == nil {
		client = git.NewClient()
	}

	m := NewCloneModel(cloneURL, targetPath, func(ctx context.Context) error {
		return client.CloneQuiet(ctx, cloneURL, targetPath, branch)
	})

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("running clone display: %w", err)
	}

	if cm, ok := final.(CloneModel); ok {
		return cm.Error()
	}

	return nil
}
