package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/graphomics/debruijn/pkg/debruijn"
	"github.com/graphomics/debruijn/pkg/graphio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for interactive graph browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Browse an exported graph interactively",
		Long: `Browse an exported graph interactively.

The explore command opens a terminal browser over the adjacency lists of
a graph.json file (produced by 'build -f json'). Nodes are listed in
sorted order with their successors; enter pins a node and highlights
where its successors sit in the list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.Import(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			if g.NodeCount() == 0 {
				printInfo("Graph is empty, nothing to explore")
				return nil
			}

			model := NewNodeListModel(g)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// NodeListModel - Interactive adjacency browsing
// =============================================================================

// NodeListModel is the bubbletea model for browsing graph nodes.
type NodeListModel struct {
	Graph  *debruijn.Graph
	Keys   []string // nodes with outgoing edges, sorted
	Cursor int
	Offset int
	Height int
	Pinned string // node whose successors are highlighted, empty when none
}

// NewNodeListModel creates a node list model over the graph's sorted keys.
func NewNodeListModel(g *debruijn.Graph) NodeListModel {
	return NodeListModel{
		Graph:  g,
		Keys:   g.Keys(),
		Cursor: 0,
		Offset: 0,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Keys)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			key := m.Keys[m.Cursor]
			if m.Pinned == key {
				m.Pinned = ""
			} else {
				m.Pinned = key
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Graph"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("k=%d · %d nodes · %d edges",
		m.Graph.K(), m.Graph.NodeCount(), m.Graph.EdgeCount())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ pin successors  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Keys) {
		end = len(m.Keys)
	}

	pinnedSuccessors := map[string]bool{}
	if m.Pinned != "" {
		for _, s := range m.Graph.Successors(m.Pinned) {
			pinnedSuccessors[s] = true
		}
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		key := m.Keys[i]
		succ := m.Graph.Successors(key)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		pin := ""
		if key == m.Pinned {
			pin = "●"
		} else if pinnedSuccessors[key] {
			pin = "○"
		}

		rows = append(rows, []string{
			cursor,
			key,
			fmt.Sprintf("%d", len(succ)),
			strings.Join(succ, ", "),
			pin,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Out", "Successors", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Keys) {
				return lipgloss.NewStyle()
			}
			key := m.Keys[actualIdx]

			switch {
			case actualIdx == m.Cursor:
				return listSelectedStyle
			case key == m.Pinned:
				return lipgloss.NewStyle().Foreground(colorGreen)
			case pinnedSuccessors[key]:
				return lipgloss.NewStyle().Foreground(colorYellow)
			case col == 2 || col == 3:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Keys))))

	return b.String()
}
