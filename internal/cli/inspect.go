package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/ir"
	"github.com/rylanmalarchick/quantum-circuit-optimizer/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [circuit.qasm]",
		Short: "Browse a circuit gate-by-gate in the terminal",
		Long: `Browse a circuit gate-by-gate in the terminal.

The inspect command parses an OpenQASM file and opens an interactive view
listing every gate with its operands, angle, and ASAP schedule layer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := pipeline.NewRunner(logger)
	circuit, err := runner.Parse(ctx, string(source))
	if err != nil {
		return err
	}

	model, err := newCircuitModel(input, circuit)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model).Run()
	return err
}

// gateRow is one display row of the inspector.
type gateRow struct {
	gate  ir.Gate
	layer int
}

// circuitModel is the bubbletea model for the circuit inspector.
type circuitModel struct {
	title  string
	qubits int
	depth  int
	rows   []gateRow
	cursor int
	height int
	offset int
}

func newCircuitModel(title string, c *ir.Circuit) (circuitModel, error) {
	d := ir.FromCircuit(c)
	layers, err := d.Layers()
	if err != nil {
		return circuitModel{}, err
	}

	layerOf := make(map[ir.GateID]int)
	for i, layer := range layers {
		for _, id := range layer {
			layerOf[id] = i
		}
	}

	// FromCircuit assigns DAG IDs in circuit order, so row i maps to
	// node ID i.
	rows := make([]gateRow, 0, c.NumGates())
	for i, g := range c.Gates() {
		rows = append(rows, gateRow{gate: g, layer: layerOf[ir.GateID(i)]})
	}

	return circuitModel{
		title:  title,
		qubits: c.NumQubits(),
		depth:  len(layers),
		rows:   rows,
		height: 15,
	}, nil
}

func (m circuitModel) Init() tea.Cmd { return nil }

func (m circuitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g":
			m.cursor, m.offset = 0, 0
		case "G":
			m.cursor = len(m.rows) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m circuitModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s — %d qubits, %d gates, depth %d",
		m.title, m.qubits, len(m.rows), m.depth)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("%s%-4d %-20s layer %d", cursor, i, row.gate.String(), row.layer)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty circuit)"))
		b.WriteString("\n")
	}

	return b.String()
}
