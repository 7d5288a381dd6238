package driven

import "context"

// SheetsAPI is the Google Sheets collaborator used for submission sync.
type SheetsAPI interface {
	// CreateSpreadsheet creates a spreadsheet with a header row and
	// returns its ID.
	CreateSpreadsheet(ctx context.Context, client TokenProvider, title string, headers []string) (string, error)

	// AppendRow appends one row of values to the first sheet.
	AppendRow(ctx context.Context, client TokenProvider, spreadsheetID string, values []string) error

	// UpdateHeader rewrites the header row of the first sheet.
	UpdateHeader(ctx context.Context, client TokenProvider, spreadsheetID string, headers []string) error
}
