package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarver/rentroll/internal/auth"
	"github.com/jcarver/rentroll/internal/config"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUserCreateCmd())

	return cmd
}

// newUserCreateCmd bootstraps accounts directly against the database,
// useful before the API has any users to log in with.
func newUserCreateCmd() *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(name, email, password, role)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", "admin", "role (admin|manager|tenant)")

	return cmd
}

func runUserCreate(name, email, password, role string) error {
	cfg := config.FromEnv()

	database, err := openDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	user, err := auth.NewUserStore(database).Create(name, email, password, auth.Role(role))
	if err != nil {
		return err
	}

	fmt.Printf("Created user %d (%s, %s)\n", user.ID, user.Email, user.Role)
	return nil
}
