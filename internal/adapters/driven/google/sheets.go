package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/quill-labs/bookline-cli/internal/core/ports/driven"
)

// Ensure Sheets implements the interface.
var _ driven.SheetsAPI = (*Sheets)(nil)

// Sheets wraps the Google Sheets v4 API behind driven.SheetsAPI.
type Sheets struct {
	limiter *RateLimiter
}

// NewSheets creates the Sheets API adapter.
func NewSheets() *Sheets {
	return &Sheets{
		limiter: NewRateLimiter(ServiceSheets),
	}
}

// CreateSpreadsheet creates a spreadsheet with a header row and returns
// its ID.
func (s *Sheets) CreateSpreadsheet(ctx context.Context, client driven.TokenProvider, title string, headers []string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, client)))
	if err != nil {
		return "", fmt.Errorf("create sheets service: %w", err)
	}

	created, err := svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		s.recordRateLimit(err)
		return "", fmt.Errorf("create spreadsheet: %w", WrapError(err))
	}

	if len(headers) > 0 {
		if err := s.UpdateHeader(ctx, client, created.SpreadsheetId, headers); err != nil {
			return "", err
		}
	}
	return created.SpreadsheetId, nil
}

// AppendRow appends one row of values to the first sheet.
func (s *Sheets) AppendRow(ctx context.Context, client driven.TokenProvider, spreadsheetID string, values []string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, client)))
	if err != nil {
		return fmt.Errorf("create sheets service: %w", err)
	}

	_, err = svc.Spreadsheets.Values.Append(spreadsheetID, "A1", &sheets.ValueRange{
		Values: [][]any{toRow(values)},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		s.recordRateLimit(err)
		return fmt.Errorf("append row: %w", WrapError(err))
	}
	return nil
}

// UpdateHeader rewrites the header row of the first sheet.
func (s *Sheets) UpdateHeader(ctx context.Context, client driven.TokenProvider, spreadsheetID string, headers []string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(NewTokenSource(ctx, client)))
	if err != nil {
		return fmt.Errorf("create sheets service: %w", err)
	}

	_, err = svc.Spreadsheets.Values.Update(spreadsheetID, "1:1", &sheets.ValueRange{
		Values: [][]any{toRow(headers)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		s.recordRateLimit(err)
		return fmt.Errorf("update header: %w", WrapError(err))
	}
	return nil
}

func (s *Sheets) recordRateLimit(err error) {
	if IsRateLimited(err) {
		s.limiter.RecordRateLimitError(0)
	}
}

func toRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
