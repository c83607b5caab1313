package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

type selectorItem string

func (i selectorItem) FilterValue() string { return string(i) }

type selectorDelegate struct{}

func (d selectorDelegate) Height() int                             { return 1 }
func (d selectorDelegate) Spacing() int                            { return 0 }
func (d selectorDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d selectorDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(selectorItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, string(i))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

// SelectorModel is a single-choice list. Index reports the picked option,
// or the fallback index when the user quit without choosing.
type SelectorModel struct {
	list     list.Model
	fallback int
	chosen   int
	picked   bool
	quitting bool
}

// NewSelector builds a selector over options with the cursor and fallback
// on def.
func NewSelector(title string, options []string, def int) SelectorModel {
	items := make([]list.Item, 0, len(options))
	for _, opt := range options {
		items = append(items, selectorItem(opt))
	}

	const defaultWidth = 40

	height := len(options) + 6
	if height > 15 {
		height = 15
	}

	l := list.New(items, selectorDelegate{}, defaultWidth, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	if def >= 0 && def < len(options) {
		l.Select(def)
	}

	return SelectorModel{list: l, fallback: def, chosen: def}
}

func (m SelectorModel) Init() tea.Cmd {
	return nil
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.chosen = m.fallback

			return m, tea.Quit

		case "enter":
			m.picked = true
			m.chosen = m.list.Index()

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m SelectorModel) View() string {
	if m.picked || m.quitting {
		return ""
	}

	return "\n" + m.list.View()
}

func (m SelectorModel) Index() int {
	return m.chosen
}

// Select runs the selector as its own program and returns the chosen
// index. Any display error falls back to def so callers always get a
// usable answer.
func Select(title string, options []string, def int) int {
	final, err := tea.NewProgram(NewSelector(title, options, def)).Run()
	if err != nil {
		return def
	}

	if m, ok := final.(SelectorModel); ok {
		return m.Index()
	}

	return def
}
