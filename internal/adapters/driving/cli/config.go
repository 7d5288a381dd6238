package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Bookline configuration",
	Long: `View and change Bookline configuration values.

Keys use dot notation, e.g. google.client_id. The OAuth application is
configured with:

  bookline config set google.client_id <id>
  bookline config set google.client_secret <secret>`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value, or the file path with no key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if len(args) == 0 {
		cmd.Printf("Configuration file: %s\n", configStore.Path())
		return nil
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Println(formatConfigValue(args[0], value))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

// formatConfigValue masks secrets before they reach the terminal.
func formatConfigValue(key string, value any) string {
	s := fmt.Sprintf("%v", value)
	if strings.Contains(key, "secret") || strings.Contains(key, "token") {
		return maskSecret(s)
	}
	return s
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
