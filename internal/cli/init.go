package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/db"
	"github.com/example/pawlog/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the pawlog database",
		Long:  `Initialize the pawlog database at ~/.pawlog/pawlog.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()

			fmt.Printf("Initializing pawlog database at %s\n", cfg.DBPath)

			// Open creates the file and brings the schema current.
			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer conn.Close()

			fmt.Println("✓ Database initialized successfully")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  pawlog profile create \"Your Dog's Name\"")
			fmt.Println("  pawlog log add --consistency 3 --color normal_brown")

			return nil
		},
	}
}
