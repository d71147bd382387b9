package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fileconv/fileconv/pkg/dump"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

type formatItem struct {
	ext  string
	name string
}

// formatListModel is the bubbletea model for interactive target-format
// selection, used when neither --to nor the output extension decides it.
type formatListModel struct {
	items    []formatItem
	cursor   int
	selected string
}

func newFormatListModel(r dump.Registry) formatListModel {
	items := make([]formatItem, 0, len(r))
	for ext, factory := range r {
		items = append(items, formatItem{ext: ext, name: factory().Name()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ext < items[j].ext })
	return formatListModel{items: items}
}

func (m formatListModel) Init() tea.Cmd { return nil }

func (m formatListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.items[m.cursor].ext
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m formatListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select target format") + "\n\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%-6s %s", item.ext, StyleDim.Render(item.name))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(listNormalStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + StyleDim.Render("↑/↓ move · enter select · q cancel") + "\n")
	return b.String()
}

// pickFormat runs the interactive picker and returns the chosen extension.
func pickFormat(r dump.Registry) (string, error) {
	final, err := tea.NewProgram(newFormatListModel(r)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(formatListModel)
	if !ok || m.selected == "" {
		return "", fmt.Errorf("no format selected")
	}
	return m.selected, nil
}
