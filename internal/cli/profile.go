package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/wire"
)

// ProfileCmd returns the profile command
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the dog profile",
		Long:  "Create, show, update and clear the single dog profile.",
	}

	cmd.AddCommand(profileCreateCmd())
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileUpdateCmd())
	cmd.AddCommand(profileClearCmd())
	return cmd
}

func profileFlags(cmd *cobra.Command) {
	cmd.Flags().String("breed", "", "Breed")
	cmd.Flags().Float64("age", 0, "Age in years")
	cmd.Flags().Float64("weight", 0, "Weight in kilograms")
}

func profileRequestFromFlags(cmd *cobra.Command, name string) primary.ProfileRequest {
	breed, _ := cmd.Flags().GetString("breed")
	age, _ := cmd.Flags().GetFloat64("age")
	weight, _ := cmd.Flags().GetFloat64("weight")
	return primary.ProfileRequest{Name: name, Breed: breed, AgeYears: age, WeightKg: weight}
}

func profileCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create the dog profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.ProfileService().Create(cmd.Context(), profileRequestFromFlags(cmd, args[0]))
			if err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}

			fmt.Printf("✓ Created profile for %s\n", p.Name)
			return nil
		},
	}
	profileFlags(cmd)
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the dog profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := wire.ProfileService().Current()
			if p == nil {
				fmt.Println("No profile yet.")
				fmt.Println("Hint: pawlog profile create \"Your Dog's Name\"")
				return nil
			}

			fmt.Printf("Name:   %s\n", p.Name)
			if p.Breed != "" {
				fmt.Printf("Breed:  %s\n", p.Breed)
			}
			if p.AgeYears > 0 {
				fmt.Printf("Age:    %.1f years\n", p.AgeYears)
			}
			if p.WeightKg > 0 {
				fmt.Printf("Weight: %.1f kg\n", p.WeightKg)
			}
			return nil
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Update the dog profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := wire.ProfileService().Update(cmd.Context(), profileRequestFromFlags(cmd, args[0]))
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}

			fmt.Printf("✓ Updated profile for %s\n", p.Name)
			return nil
		},
	}
	profileFlags(cmd)
	return cmd
}

func profileClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the dog profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.ProfileService().Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear profile: %w", err)
			}

			fmt.Println("✓ Profile cleared")
			return nil
		},
	}
}
