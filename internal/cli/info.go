package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/psptools/psplib/pkg/instance"
)

// newInfoCmd creates the info command, which prints a summary of an instance.
func newInfoCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print a summary of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInfo(c.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "instance name (overrides the file name)")

	return cmd
}

// runInfo loads the instance and prints summary statistics and a resource table.
func runInfo(ctx context.Context, path, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := loadInstance(ctx, cfg, path, name, false)
	if err != nil {
		return err
	}

	fmt.Println(styleTitle.Render(in.Name))
	fmt.Println()
	printField("Jobs", strconv.Itoa(len(in.Jobs)))
	printField("Precedences", strconv.Itoa(len(in.Precedences)))
	printField("Horizon", strconv.Itoa(in.Horizon))
	printField("Total duration", strconv.Itoa(totalDuration(in)))
	fmt.Println()
	fmt.Println(resourceTable(in).Render())

	return nil
}

// printField prints a dimmed label followed by its value.
func printField(label, value string) {
	fmt.Printf("%s %s\n", styleDim.Render(fmt.Sprintf("%-16s", label)), styleValue.Render(value))
}

// totalDuration sums the durations of all jobs.
func totalDuration(in *instance.Instance) int {
	total := 0
	for _, j := range in.Jobs {
		total += j.Duration
	}
	return total
}

// resourceTable renders one row per resource: key, kind, capacity, and the
// summed consumption across all jobs.
func resourceTable(in *instance.Instance) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)

	demand := make(map[instance.ResourceKey]int)
	for _, j := range in.Jobs {
		for key, units := range j.Consumption {
			demand[key] += units
		}
	}

	rows := make([][]string, 0, len(in.Resources))
	for _, r := range in.Resources {
		rows = append(rows, []string{
			r.Key,
			r.Kind.String(),
			strconv.Itoa(r.Capacity),
			strconv.Itoa(demand[r.Key]),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("Resource", "Kind", "Capacity", "Total demand").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
