package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sheetHeaders []string

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage the submission spreadsheet",
}

var sheetCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a spreadsheet and print its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetCreate,
}

var sheetAppendCmd = &cobra.Command{
	Use:   "append <spreadsheet-id> <value>...",
	Short: "Append a row of values to a spreadsheet",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSheetAppend,
}

var sheetHeaderCmd = &cobra.Command{
	Use:   "header <spreadsheet-id>",
	Short: "Rewrite the header row of a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheetHeader,
}

func init() {
	sheetCreateCmd.Flags().StringSliceVar(&sheetHeaders, "header", nil, "Header column (repeatable)")
	sheetHeaderCmd.Flags().StringSliceVar(&sheetHeaders, "header", nil, "Header column (repeatable)")

	sheetCmd.AddCommand(sheetCreateCmd)
	sheetCmd.AddCommand(sheetAppendCmd)
	sheetCmd.AddCommand(sheetHeaderCmd)
	rootCmd.AddCommand(sheetCmd)
}

func runSheetCreate(cmd *cobra.Command, args []string) error {
	if sheetsAPI == nil || tokenService == nil {
		return errors.New("sheets service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	client, err := tokenService.GetClient(cmd.Context(), userID)
	if err != nil {
		return err
	}

	id, err := sheetsAPI.CreateSpreadsheet(cmd.Context(), client, args[0], sheetHeaders)
	if err != nil {
		return err
	}

	cmd.Printf("Created spreadsheet %s\n", id)
	return nil
}

func runSheetAppend(cmd *cobra.Command, args []string) error {
	if sheetsAPI == nil || tokenService == nil {
		return errors.New("sheets service not configured")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	client, err := tokenService.GetClient(cmd.Context(), userID)
	if err != nil {
		return err
	}

	if err := sheetsAPI.AppendRow(cmd.Context(), client, args[0], args[1:]); err != nil {
		return err
	}

	cmd.Println("Row appended.")
	return nil
}

func runSheetHeader(cmd *cobra.Command, args []string) error {
	if sheetsAPI == nil || tokenService == nil {
		return errors.New("sheets service not configured")
	}
	if len(sheetHeaders) == 0 {
		return errors.New("at least one --header is required")
	}
	userID, err := currentUserID(cmd)
	if err != nil {
		return err
	}

	client, err := tokenService.GetClient(cmd.Context(), userID)
	if err != nil {
		return err
	}

	if err := sheetsAPI.UpdateHeader(cmd.Context(), client, args[0], sheetHeaders); err != nil {
		return err
	}

	cmd.Println("Header updated.")
	return nil
}
