package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/molviz/molforge/pkg/mol"
	"github.com/molviz/molforge/pkg/molfile"
	"github.com/molviz/molforge/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RecordListModel - Interactive SD record selection
// =============================================================================

// RecordListModel is the bubbletea model for interactive record selection
// in multi-record SD files.
type RecordListModel struct {
	Molecules []*mol.Molecule
	Cursor    int
	Selected  int
	Height    int
	Offset    int
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(mols []*mol.Molecule) RecordListModel {
	return RecordListModel{
		Molecules: mols,
		Cursor:    0,
		Selected:  -1,
		Height:    15,
		Offset:    0,
	}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Molecules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Record"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Molecules) {
		end = len(m.Molecules)
	}

	for i := m.Offset; i < end; i++ {
		rec := m.Molecules[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := rec.Name
		if name == "" {
			name = "(unnamed)"
		}

		stats := fmt.Sprintf("%d atoms, %d bonds", rec.AtomCount(), rec.BondCount())
		line := fmt.Sprintf("%s[%d] %-30s  %s", cursor, i, name, listDimStyle.Render(stats))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Molecules))))

	return b.String()
}

// =============================================================================
// Pick Command
// =============================================================================

// pickCommand creates the pick command for interactive record selection.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "pick [molecules.sdf]",
		Short: "Interactively select a record from a multi-record SD file",
		Long: `Interactively select a record from a multi-record SD file.

The pick command lists every molecule in an SD file and lets you choose one
with the arrow keys. The chosen record is extracted to its own file so it can
be fed to 'layout' or 'graph' directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateInputFormat(format); err != nil {
				return err
			}
			return c.runPick(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>_<record>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), xyz, sdf")

	return cmd
}

// runPick reads all records from input, runs the picker, and extracts the
// selected record.
func (c *CLI) runPick(ctx context.Context, input, output, format string) error {
	mols, err := molfile.ReadSDFFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	if len(mols) == 0 {
		return fmt.Errorf("%s contains no molecules", input)
	}

	selected := 0
	if len(mols) > 1 {
		model := NewRecordListModel(mols)
		p := tea.NewProgram(model, tea.WithContext(ctx))
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		result := final.(RecordListModel)
		if result.Selected < 0 {
			printInfo("No record selected")
			return nil
		}
		selected = result.Selected
	} else {
		printInfo("File has a single record")
	}

	m := mols[selected]

	opts := pipeline.Options{Formats: []string{format}}
	artifacts, err := pipeline.Export(ctx, m, opts)
	if err != nil {
		return fmt.Errorf("export record %d: %w", selected, err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = fmt.Sprintf("%s_%d.%s", base, selected, format)
	}
	if err := writeArtifact(outputPath, artifacts[format]); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Extracted record %d (%s)", selected, m.Name)
	printFile(outputPath)
	printStats(m.AtomCount(), m.BondCount(), false)
	printNewline()
	printNextStep("Lay out", "molforge layout "+outputPath)

	return nil
}
