package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/psptools/psplib/pkg/instance"
)

// newBrowseCmd creates the browse command, an interactive job browser.
func newBrowseCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Interactively browse the jobs of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBrowse(c.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "instance name (overrides the file name)")

	return cmd
}

// runBrowse loads the instance and starts the interactive browser.
func runBrowse(ctx context.Context, path, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := loadInstance(ctx, cfg, path, name, false)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newJobListModel(in))
	_, err = p.Run()
	return err
}

// jobListModel is the bubbletea model for the interactive job browser.
// It shows a scrollable job table with a detail pane for the selected job.
type jobListModel struct {
	inst   *instance.Instance
	jobs   []instance.Job // sorted by ID
	cursor int
	height int
	offset int
}

// newJobListModel creates a browser model for the given instance.
func newJobListModel(in *instance.Instance) jobListModel {
	jobs := make([]instance.Job, len(in.Jobs))
	copy(jobs, in.Jobs)
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobListModel{
		inst:   in,
		jobs:   jobs,
		height: 15,
	}
}

func (m jobListModel) Init() tea.Cmd {
	return nil
}

func (m jobListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.jobs)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "g", "home":
			m.cursor, m.offset = 0, 0
		case "G", "end":
			m.cursor = len(m.jobs) - 1
			if m.cursor >= m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m jobListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.inst.Name))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.jobs) {
		end = len(m.jobs)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		j := m.jobs[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(j.ID),
			strconv.Itoa(j.Duration),
			formatConsumption(m.inst, j),
			formatIDs(m.inst.JobSuccessors()[j.ID]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("", "Job", "Duration", "Consumption", "Successors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(styleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.jobs))))

	return b.String()
}

// detailView renders predecessor and successor lists for the selected job.
func (m jobListModel) detailView() string {
	if len(m.jobs) == 0 {
		return ""
	}
	j := m.jobs[m.cursor]
	preds := formatIDs(m.inst.JobPredecessors()[j.ID])
	succs := formatIDs(m.inst.JobSuccessors()[j.ID])
	return fmt.Sprintf("%s %s\n%s %s",
		styleHeader.Render("preds:"), styleValue.Render(preds),
		styleHeader.Render("succs:"), styleValue.Render(succs))
}

// formatConsumption renders a job's consumption in declared resource order,
// e.g. "R 1:4 R 2:0 R 3:0 R 4:0".
func formatConsumption(in *instance.Instance, j instance.Job) string {
	parts := make([]string, 0, len(in.Resources))
	for _, r := range in.Resources {
		parts = append(parts, fmt.Sprintf("%s:%d", r.Key, j.Consumption[r.Key]))
	}
	return strings.Join(parts, "  ")
}

// formatIDs renders a job ID list, with a dash for the empty list.
func formatIDs(ids []instance.JobID) string {
	if len(ids) == 0 {
		return "—"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
