package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/wire"
)

// UsageCmd returns the usage command
func UsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show this month's AI credit usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := wire.LogService().MonthlyUsage(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("failed to count credits: %w", err)
			}

			c := color.New(color.FgGreen)
			if usage.Used >= usage.Limit {
				c = color.New(color.FgRed)
			} else if usage.Limit-usage.Used <= 5 {
				c = color.New(color.FgYellow)
			}

			fmt.Printf("AI credits this month: %s\n", c.Sprintf("%d/%d", usage.Used, usage.Limit))
			return nil
		},
	}
}
