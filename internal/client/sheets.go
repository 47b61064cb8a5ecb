package client

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient creates spreadsheets and opens them up for sharing.
type SheetsClient struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewSheetsClient authenticates both services with a service-account key.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte) (*SheetsClient, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("google credentials must not be empty")
	}
	opts := []option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
	}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewSheetsClientFromServices(sheetsSvc, driveSvc), nil
}

// NewSheetsClientFromServices wraps already configured services.
func NewSheetsClientFromServices(sheetsSvc *sheets.Service, driveSvc *drive.Service) *SheetsClient {
	return &SheetsClient{sheets: sheetsSvc, drive: driveSvc}
}

// Create makes a new spreadsheet and returns its id.
func (c *SheetsClient) Create(ctx context.Context, title string) (string, error) {
	created, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sheets create: %w", err)
	}
	if created.SpreadsheetId == "" {
		return "", fmt.Errorf("sheets create: empty spreadsheet id")
	}
	return created.SpreadsheetId, nil
}

// ShareWithAnyone lets anyone with the link edit the spreadsheet.
func (c *SheetsClient) ShareWithAnyone(ctx context.Context, spreadsheetID string) error {
	_, err := c.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "writer",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("drive share: %w", err)
	}
	return nil
}

// WriteRows writes rows into the first sheet starting at A1.
func (c *SheetsClient) WriteRows(ctx context.Context, spreadsheetID string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, "A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets update values: %w", err)
	}
	return nil
}
