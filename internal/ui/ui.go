// Package ui provides the interactive terminal surface: a list picker
// for catalog items and a styled detail view. It is a consumer of the
// catalog core and holds no caching logic of its own.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Option is one selectable row.
type Option struct {
	Title string
	Desc  string
}

type listItem struct {
	option Option
}

func (i listItem) Title() string       { return i.option.Title }
func (i listItem) Description() string { return i.option.Desc }
func (i listItem) FilterValue() string { return i.option.Title }

type pickModel struct {
	list      list.Model
	choice    int
	cancelled bool
}

func (m pickModel) Init() tea.Cmd { return nil }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.choice = m.list.Index()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string { return m.list.View() }

// Select presents options and returns the chosen index. Cancelling the
// picker (esc, q, ctrl+c) returns an error.
func Select(prompt string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = listItem{option: o}
	}

	width, height := termSize()
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = prompt
	l.SetShowStatusBar(false)

	model := pickModel{list: l, choice: -1}
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(pickModel)
	if !ok || m.cancelled || m.choice < 0 {
		return -1, fmt.Errorf("selection cancelled")
	}
	return m.choice, nil
}

// termSize returns the terminal dimensions, with a sane fallback when
// stdout is not a terminal.
func termSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}
