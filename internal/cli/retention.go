package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/wire"
)

// PurgeCmd returns the purge command
func PurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete logs older than a retention window",
		Long:  "Delete every log older than the given number of days, along with its AI analysis.",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			force, _ := cmd.Flags().GetBool("force")

			if !force && !confirm(fmt.Sprintf("Delete all logs older than %d days?", days)) {
				fmt.Println("Aborted.")
				return nil
			}

			purged, err := wire.RetentionService().PurgeOlderThan(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("failed to purge: %w", err)
			}

			if purged == 0 {
				fmt.Println("Nothing old enough to purge.")
				return nil
			}
			fmt.Printf("✓ Purged %d logs\n", purged)
			return nil
		},
	}
	cmd.Flags().Int("days", 90, "Delete logs older than this many days")
	cmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	return cmd
}

// WipeCmd returns the wipe command
func WipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all data",
		Long:  "Delete every log, every AI analysis and the dog profile. Requires --force.",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("wipe deletes everything; re-run with --force to confirm")
			}

			if err := wire.RetentionService().WipeAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to wipe data: %w", err)
			}

			fmt.Println("✓ All data deleted")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Confirm deleting everything")
	return cmd
}
