package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage poo logs",
		Long:  "Add, list, show, edit and delete poo logs.",
	}

	cmd.AddCommand(logAddCmd())
	cmd.AddCommand(logListCmd())
	cmd.AddCommand(logShowCmd())
	cmd.AddCommand(logEditCmd())
	cmd.AddCommand(logDeleteCmd())
	return cmd
}

func draftFlags(cmd *cobra.Command) {
	cmd.Flags().Int("consistency", 0, "Consistency score 1-5 (1 very loose, 5 hard)")
	cmd.Flags().String("color", "", "Stool color (normal_brown, greenish, yellow_orange, greasy_gray, black_tarry, red_streaks, or free text)")
	cmd.Flags().Bool("mucus", false, "Mucus present")
	cmd.Flags().Bool("blood", false, "Blood visible")
	cmd.Flags().Bool("worms", false, "Worms visible")
	cmd.Flags().String("notes", "", "Free-text notes")
}

func draftFromFlags(cmd *cobra.Command) models.LogDraft {
	consistency, _ := cmd.Flags().GetInt("consistency")
	colorCode, _ := cmd.Flags().GetString("color")
	mucus, _ := cmd.Flags().GetBool("mucus")
	blood, _ := cmd.Flags().GetBool("blood")
	worms, _ := cmd.Flags().GetBool("worms")
	notes, _ := cmd.Flags().GetString("notes")

	return models.LogDraft{
		ConsistencyScore: consistency,
		Color:            models.StoolColor(colorCode),
		MucusPresent:     mucus,
		BloodVisible:     blood,
		WormsVisible:     worms,
		Notes:            notes,
	}
}

func logAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new poo log",
		Long: `Add a new poo log from manual observations. With --photo and --analyze
the photo is uploaded and analyzed by AI before saving; low-confidence
results prompt for a retake.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wire.ProfileService().Current() == nil {
				return fmt.Errorf("no profile yet\nHint: pawlog profile create \"Your Dog's Name\"")
			}

			draft := draftFromFlags(cmd)
			photo, _ := cmd.Flags().GetString("photo")
			analyze, _ := cmd.Flags().GetBool("analyze")
			draft.PhotoURI = photo

			svc := wire.LogService()

			if !analyze || photo == "" {
				log, err := svc.SaveManual(cmd.Context(), primary.SaveManualRequest{Draft: draft})
				if err != nil {
					return fmt.Errorf("failed to save log: %w", err)
				}
				fmt.Printf("✓ Logged %s\n", log.ID)
				return nil
			}

			res, err := svc.SaveWithAnalysis(cmd.Context(), draft)
			if err != nil {
				return err
			}

			switch res.Outcome {
			case primary.OutcomeSaved:
				fmt.Printf("✓ Logged %s\n", res.Log.ID)
				printAnalysis(res.Log.Analysis)
				return nil

			case primary.OutcomeQuotaExceeded:
				fmt.Printf("Monthly AI credits used up (%d/%d).\n", res.Usage.Used, res.Usage.Limit)
				if !confirm("Save without analysis?") {
					fmt.Println("Nothing saved.")
					return nil
				}
				log, err := svc.SaveManual(cmd.Context(), primary.SaveManualRequest{Draft: draft})
				if err != nil {
					return fmt.Errorf("failed to save log: %w", err)
				}
				fmt.Printf("✓ Logged %s (no analysis)\n", log.ID)
				return nil

			case primary.OutcomeDiverted:
				conf := res.Diversion.Result.ConfidenceScore
				fmt.Printf("Analysis confidence is low (%.2f). The photo may be unclear.\n", conf)
				action := primary.ActionRetake
				if confirm("Save this analysis anyway?") {
					action = primary.ActionSaveAnyway
				}
				log, err := svc.ResolveDiversion(cmd.Context(), res.Diversion, action)
				if err != nil {
					return err
				}
				if log == nil {
					fmt.Println("Discarded. Retake the photo and log again.")
					return nil
				}
				fmt.Printf("✓ Logged %s\n", log.ID)
				printAnalysis(log.Analysis)
				return nil

			default:
				return fmt.Errorf("unexpected save outcome %q", res.Outcome)
			}
		},
	}

	draftFlags(cmd)
	cmd.Flags().String("photo", "", "Path to a photo of the stool")
	cmd.Flags().Bool("analyze", false, "Upload the photo and run AI analysis")
	return cmd
}

func logListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent poo logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			logs, err := wire.LogService().ListRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list logs: %w", err)
			}
			if len(logs) == 0 {
				fmt.Println("No logs yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tCONSISTENCY\tCOLOR\tHEALTH")
			for _, log := range logs {
				health := "-"
				if log.Analysis != nil {
					health = healthColor(log.Analysis.HealthScore).Sprintf("%d", log.Analysis.HealthScore)
					if log.Analysis.VetFlag {
						health += color.New(color.FgHiRed).Sprint(" [vet]")
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(log.ID),
					log.CreatedAt.Format("2006-01-02 15:04"),
					models.ConsistencyLabels[log.ConsistencyScore],
					log.Color,
					health,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("limit", 10, "Maximum number of logs to show")
	return cmd
}

func logShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one poo log with its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := wire.LogService().GetDetail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load log: %w", err)
			}

			fmt.Printf("ID:          %s\n", log.ID)
			fmt.Printf("When:        %s\n", log.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("Consistency: %d (%s)\n", log.ConsistencyScore, models.ConsistencyLabels[log.ConsistencyScore])
			fmt.Printf("Color:       %s\n", log.Color)
			fmt.Printf("Mucus:       %s  Blood: %s  Worms: %s\n",
				yesNo(log.MucusPresent), yesNo(log.BloodVisible), yesNo(log.WormsVisible))
			if log.Notes != "" {
				fmt.Printf("Notes:       %s\n", log.Notes)
			}
			if log.PhotoURI != "" {
				fmt.Printf("Photo:       %s\n", log.PhotoURI)
			}

			if log.Analysis == nil {
				fmt.Println("\nNo AI analysis for this log.")
				return nil
			}
			fmt.Println()
			printAnalysis(log.Analysis)
			return nil
		},
	}
}

func logEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit the manual fields of a poo log",
		Long:  "Edit the manual observations of a log. The photo, timestamp and any AI analysis are untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			svc := wire.LogService()

			current, err := svc.GetDetail(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load log: %w", err)
			}

			// Start from the stored values, override only the flags given.
			draft := models.LogDraft{
				ConsistencyScore: current.ConsistencyScore,
				Color:            current.Color,
				MucusPresent:     current.MucusPresent,
				BloodVisible:     current.BloodVisible,
				WormsVisible:     current.WormsVisible,
				Notes:            current.Notes,
			}
			flags := draftFromFlags(cmd)
			if cmd.Flags().Changed("consistency") {
				draft.ConsistencyScore = flags.ConsistencyScore
			}
			if cmd.Flags().Changed("color") {
				draft.Color = flags.Color
			}
			if cmd.Flags().Changed("mucus") {
				draft.MucusPresent = flags.MucusPresent
			}
			if cmd.Flags().Changed("blood") {
				draft.BloodVisible = flags.BloodVisible
			}
			if cmd.Flags().Changed("worms") {
				draft.WormsVisible = flags.WormsVisible
			}
			if cmd.Flags().Changed("notes") {
				draft.Notes = flags.Notes
			}

			if err := svc.EditManualFields(cmd.Context(), id, draft); err != nil {
				return fmt.Errorf("failed to edit log: %w", err)
			}

			fmt.Printf("✓ Updated %s\n", shortID(id))
			return nil
		},
	}
	draftFlags(cmd)
	return cmd
}

func logDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a poo log and its analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.LogService().DeleteLog(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete log: %w", err)
			}

			fmt.Printf("✓ Deleted %s\n", shortID(args[0]))
			return nil
		},
	}
}

// printAnalysis renders the stored analysis. The sub-analyses are stored as
// opaque JSON; only the list fields get decoded for display.
func printAnalysis(a *models.AIAnalysis) {
	if a == nil {
		return
	}

	fmt.Printf("AI Analysis: %s\n", a.Classification)
	fmt.Printf("Health:      %s/100", healthColor(a.HealthScore).Sprintf("%d", a.HealthScore))
	if a.VetFlag {
		fmt.Printf("  %s", color.New(color.FgHiRed).Sprint("[consult a vet]"))
	}
	fmt.Println()
	fmt.Printf("Confidence:  %.2f\n", a.ConfidenceScore)
	if a.GutHealthSummary != "" {
		fmt.Printf("Summary:     %s\n", a.GutHealthSummary)
	}

	var recs []string
	if err := json.Unmarshal([]byte(a.ActionableRecommendations), &recs); err == nil && len(recs) > 0 {
		fmt.Println("Recommendations:")
		for _, r := range recs {
			fmt.Printf("  - %s\n", r)
		}
	}
}

func healthColor(score int) *color.Color {
	switch {
	case score >= 70:
		return color.New(color.FgGreen)
	case score >= 40:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// confirm asks a y/N question on stdin. Anything but an explicit yes is no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
