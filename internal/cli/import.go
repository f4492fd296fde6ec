package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcarver/rentroll/internal/client"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk import data from CSV",
	}

	cmd.AddCommand(newImportPropertiesCmd())

	return cmd
}

func newImportPropertiesCmd() *cobra.Command {
	var server, token string

	cmd := &cobra.Command{
		Use:   "properties <file.csv>",
		Short: "Import properties from a CSV file",
		Long: "Create one property per CSV row via the API. The file must start with the header:\n" +
			"  name,address,city,state,zipCode,totalUnits,purchasePrice,purchaseDate,propertyType,status\n" +
			"A bad header rejects the whole file; a bad row is skipped and reported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportProperties(args[0], server, token)
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "API server URL")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (or $RENTROLL_TOKEN)")

	return cmd
}

func runImportProperties(path, server, token string) error {
	if token == "" {
		token = os.Getenv("RENTROLL_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("a token is required (--token or $RENTROLL_TOKEN)")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing file: %v\n", cerr)
		}
	}()

	result, err := client.New(server, token).ImportProperties(f)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d properties\n", result.Succeeded, result.Total)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %s\n", e)
	}
	if result.Succeeded < result.Total {
		return fmt.Errorf("%d rows failed", result.Total-result.Succeeded)
	}

	return nil
}
