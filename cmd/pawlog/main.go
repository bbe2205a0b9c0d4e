package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/cli"
	"github.com/example/pawlog/internal/version"
)

func main() {
	// Best effort; configuration falls back to the real environment.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "pawlog",
		Short:   "pawlog - dog stool logging and AI gut-health analysis",
		Version: version.String(),
		Long: `pawlog tracks your dog's stool observations in a local database and,
when a photo is provided, runs an AI analysis of gut health with a
monthly credit quota.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ProfileCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.UsageCmd())
	rootCmd.AddCommand(cli.PurgeCmd())
	rootCmd.AddCommand(cli.WipeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
