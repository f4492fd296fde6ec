// Package cli defines the cobra command tree for rentroll.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcarver/rentroll/internal/db"
)

var flagDB string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentroll",
		Short:         "Manage rental properties",
		Long:          "Property management server and tools: run the REST API, bulk-import properties from CSV, and manage user accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.rentroll/rentroll.db or $RENTROLL_DB)")

	root.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newUserCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, environment
// config, or the default path.
func openDB(envPath string) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = envPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
