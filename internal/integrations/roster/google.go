package roster

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scope доступ на чтение таблиц
const Scope = sheets.SpreadsheetsReadonlyScope

// GoogleSheets реализация ValuesReader поверх Google Sheets v4
type GoogleSheets struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewGoogleSheets создает ValuesReader для таблицы spreadsheetID
func NewGoogleSheets(ctx context.Context, httpClient *http.Client, spreadsheetID string) (*GoogleSheets, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %v", ErrInternal, err)
	}
	return &GoogleSheets{service: service, spreadsheetID: spreadsheetID}, nil
}

// GetValues читает диапазон в формате A1
func (g *GoogleSheets) GetValues(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
