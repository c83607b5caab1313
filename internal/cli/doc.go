// Package cli provides the terminal user interface components for grabr.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Clone: spinner and outcome display around a running git clone
//   - Selector: single-choice list used for transport and identity picks
//
// Components are optional: every flow they cover also works over plain
// line-oriented prompts when standard input is not a terminal or --no-tui
// is set.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
