package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/bookline-cli/internal/core/domain"
)

var federationCmd = &cobra.Command{
	Use:   "federation",
	Short: "Manage federated identity records",
}

var federationImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a federation record from a JSON file",
	Long: `Import an identity-provider federation record from a JSON export.

The file holds a single record with user_id, provider, and the provider's
metadata document. Imported records act as a fallback credential source
when a user's stored tokens are missing or unusable.`,
	Args: cobra.ExactArgs(1),
	RunE: runFederationImport,
}

func init() {
	federationCmd.AddCommand(federationImportCmd)
	rootCmd.AddCommand(federationCmd)
}

func runFederationImport(cmd *cobra.Command, args []string) error {
	if federationImporter == nil {
		return errors.New("federation store not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var record domain.FederationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if record.UserID == "" {
		return errors.New("federation record has no user_id")
	}
	if record.LinkedAt.IsZero() {
		record.LinkedAt = time.Now().UTC()
	}

	if err := federationImporter.ImportFederationRecord(cmd.Context(), record); err != nil {
		return fmt.Errorf("failed to import federation record: %w", err)
	}

	cmd.Printf("Imported federation record for %s\n", record.UserID)
	return nil
}
