package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tracekit/tracekit/pkg/ir"
)

// Shared styles
var (
	colorCyan  = lipgloss.Color("6")
	colorWhite = lipgloss.Color("7")
	colorDim   = lipgloss.Color("8")

	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Bold(true).Underline(true)
)

// renderNodeTable renders the non-interactive node listing.
func renderNodeTable(g *ir.Graph) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d nodes", g.Len())))
	b.WriteString("\n")
	for _, n := range g.Nodes() {
		b.WriteString(listNormalStyle.Render(fmtNodeLine(n)))
		if users := n.Users(); len(users) > 0 {
			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.Name()
			}
			b.WriteString(listDimStyle.Render("  users: " + strings.Join(names, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// nodeListModel is the bubbletea model for browsing a graph's nodes.
type nodeListModel struct {
	nodes  []*ir.Node
	cursor int
	height int
	offset int
}

func newNodeListModel(g *ir.Graph) nodeListModel {
	return nodeListModel{
		nodes:  g.Nodes(),
		height: 15,
	}
}

func (m nodeListModel) Init() tea.Cmd {
	return nil
}

func (m nodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		if msg.Height > 8 {
			m.height = msg.Height - 8
		}
	}
	return m, nil
}

func (m nodeListModel) View() string {
	if len(m.nodes) == 0 {
		return listDimStyle.Render("empty graph") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("nodes %d/%d", m.cursor+1, len(m.nodes))))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.nodes))
	for i := m.offset; i < end; i++ {
		line := fmtNodeLine(m.nodes[i])
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView(m.nodes[m.cursor]))
	b.WriteString(listDimStyle.Render("\n↑/↓ navigate · q quit\n"))
	return b.String()
}

// detailView renders the selected node's defs and users.
func (m nodeListModel) detailView(n *ir.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "op: %s  target: %s\n", n.Op(), ir.TargetString(n.Target()))

	defs := n.Defs()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name()
	}
	fmt.Fprintf(&b, "defs: %s\n", strings.Join(names, ", "))

	users := n.Users()
	names = make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name()
	}
	fmt.Fprintf(&b, "users: %s\n", strings.Join(names, ", "))
	return listDimStyle.Render(b.String())
}
