package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hayeah/apktree/fzf"
	"github.com/hayeah/apktree/tree"
)

// ExitState indicates how the program is exiting
type ExitState int

const (
	ExitStateNone    ExitState = iota // Not exiting
	ExitStateAbort                    // Exiting without a choice (ESC, Ctrl+C)
	ExitStateConfirm                  // Exiting with the entry under the cursor (Enter)
)

// row is one node of the tree, flattened in walk order.
type row struct {
	Path  string
	Name  string
	Depth int // 0 for children of the root
	IsDir bool
}

func rowsFromTree(root *tree.Node) []row {
	var rows []row
	_ = root.Walk(func(path string, n *tree.Node, depth int) error {
		if depth == 0 {
			return nil
		}
		rows = append(rows, row{Path: path, Name: n.Name, Depth: depth - 1, IsDir: n.IsDir()})
		return nil
	})
	return rows
}

var cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// browseModel is the Bubble Tea model for the tree browser.
type browseModel struct {
	textInput  textinput.Model
	searchTerm string
	searchErr  error

	title     string
	rows      []row
	paths     []string
	collapsed map[string]bool
	visible   []int // indexes into rows

	cursor    int
	exitState ExitState
	chosen    string

	viewport viewport.Model
	ready    bool
}

func newBrowseModel(title string, root *tree.Node) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Type to fuzzy-search..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	rows := rowsFromTree(root)
	paths := make([]string, len(rows))
	for i, r := range rows {
		paths[i] = r.Path
	}

	m := browseModel{
		textInput: ti,
		title:     title,
		rows:      rows,
		paths:     paths,
		collapsed: make(map[string]bool),
		viewport:  viewport.New(0, 0), // sized on tea.WindowSizeMsg
	}
	m.refilter()
	m.updateViewportContent()
	return m
}

// browseInteractively runs the TUI and returns the path chosen with Enter, or
// "" if the user quit.
func browseInteractively(title string, root *tree.Node) (string, error) {
	// TUI goes to stderr so the chosen path can be piped from stdout
	p := tea.NewProgram(newBrowseModel(title, root), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	finalM, ok := finalModel.(browseModel)
	if !ok {
		return "", fmt.Errorf("could not get final model state")
	}
	if finalM.exitState != ExitStateConfirm {
		return "", nil
	}
	return finalM.chosen, nil
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exitState != ExitStateNone {
		return m, tea.Quit
	}

	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := 3
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.viewport.YPosition = headerHeight
		if !m.ready {
			m.updateViewportContent()
			m.ready = true
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.exitState = ExitStateAbort
			return m, tea.Quit

		case "enter":
			if r, ok := m.current(); ok {
				m.chosen = r.Path
			}
			m.exitState = ExitStateConfirm
			return m, tea.Quit

		case "up":
			m.moveCursor(m.cursor - 1)
			return m, nil

		case "down":
			m.moveCursor(m.cursor + 1)
			return m, nil

		case "home":
			m.moveCursor(0)
			return m, nil

		case "end":
			m.moveCursor(len(m.visible) - 1)
			return m, nil

		case "pgup":
			m.moveCursor(m.cursor - m.pageStep())
			return m, nil

		case "pgdown":
			m.moveCursor(m.cursor + m.pageStep())
			return m, nil

		case "right":
			m.setCollapsed(false)
			return m, nil

		case "left":
			m.setCollapsed(true)
			return m, nil

		case "tab":
			if r, ok := m.current(); ok && r.IsDir {
				m.collapsed[r.Path] = !m.collapsed[r.Path]
				m.refilter()
				m.updateViewportContent()
			}
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	if term := m.textInput.Value(); term != m.searchTerm {
		m.searchTerm = term
		m.cursor = 0
		m.refilter()
		m.updateViewportContent()
		m.viewport.GotoTop()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m browseModel) headerView() string {
	return m.title + "\n" + m.textInput.View() + "\n"
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	status := fmt.Sprintf("%d/%d entries", len(m.visible), len(m.rows))
	if m.searchErr != nil {
		status += "  " + m.searchErr.Error()
	} else if r, ok := m.current(); ok {
		status += "  " + r.Path
	}
	usageHint := "(↑/↓ to navigate, ←/→ to collapse/expand, Tab to toggle, Enter to print path, Esc/Ctrl+C to quit)"
	return fmt.Sprintf("%s%s\n%s\n%s", m.headerView(), m.viewport.View(), status, usageHint)
}

func (m browseModel) current() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return row{}, false
	}
	return m.rows[m.visible[m.cursor]], true
}

func (m *browseModel) moveCursor(to int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(to, len(m.visible)-1))
	m.updateViewportContent()
	m.ensureCursorVisible()
}

// pageStep is half a viewport, the distance pgup and pgdown move the cursor.
func (m browseModel) pageStep() int {
	return max(m.viewport.Height/2, 1)
}

// setCollapsed folds or unfolds the directory under the cursor. Collapsing a
// file or an already folded directory moves to the parent instead.
func (m *browseModel) setCollapsed(collapsed bool) {
	r, ok := m.current()
	if !ok || m.searchTerm != "" {
		return
	}
	if r.IsDir && m.collapsed[r.Path] != collapsed {
		m.collapsed[r.Path] = collapsed
		m.refilter()
		m.updateViewportContent()
		return
	}
	if collapsed && r.Depth > 0 {
		for i := m.cursor - 1; i >= 0; i-- {
			if m.rows[m.visible[i]].Depth == r.Depth-1 {
				m.moveCursor(i)
				return
			}
		}
	}
}

// refilter recomputes the visible rows. Without a search term the tree is
// shown with collapsed directories folded; with one, every row whose path
// matches the fzf query is shown by full path in walk order.
func (m *browseModel) refilter() {
	m.visible = nil
	m.searchErr = nil

	if m.searchTerm == "" {
		skipDepth := -1
		for i, r := range m.rows {
			if skipDepth >= 0 && r.Depth > skipDepth {
				continue
			}
			skipDepth = -1
			m.visible = append(m.visible, i)
			if r.IsDir && m.collapsed[r.Path] {
				skipDepth = r.Depth
			}
		}
	} else if q, err := fzf.Parse(m.searchTerm); err != nil {
		m.searchErr = err
	} else {
		m.visible = q.Match(m.paths)
	}

	if len(m.visible) == 0 {
		m.cursor = 0
	} else {
		m.cursor = min(m.cursor, len(m.visible)-1)
	}
}

func (m browseModel) line(r row) string {
	if m.searchTerm != "" {
		if r.IsDir {
			return r.Path + "/"
		}
		return r.Path
	}

	marker := "  "
	name := r.Name
	if r.IsDir {
		marker = "▾ "
		if m.collapsed[r.Path] {
			marker = "▸ "
		}
		name += "/"
	}
	return strings.Repeat("  ", r.Depth) + marker + name
}

func (m *browseModel) updateViewportContent() {
	var sb strings.Builder
	for i, idx := range m.visible {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		line := cursor + " " + m.line(m.rows[idx])
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		// newline after styling so lipgloss does not pad it
		sb.WriteString(line + "\n")
	}
	m.viewport.SetContent(sb.String())
}

func (m *browseModel) ensureCursorVisible() {
	top := m.viewport.YOffset
	bottom := m.viewport.YOffset + m.viewport.Height - 1

	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
