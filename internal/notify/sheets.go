package notify

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/saloncartapp/saloncart/internal/models"
	"github.com/saloncartapp/saloncart/internal/payhere"
)

// SheetAppender appends one row per paid order to a Google Sheet.
type SheetAppender struct {
	service       *sheets.Service
	spreadsheetID string
	appendRange   string
}

func NewSheetAppender(ctx context.Context, credentialsFile, spreadsheetID, appendRange string) (*SheetAppender, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetAppender{
		service:       service,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
	}, nil
}

func (s *SheetAppender) Name() string { return "sheets" }

func (s *SheetAppender) Notify(ctx context.Context, order *models.Order, salon *models.Salon) error {
	row := []any{
		time.Now().Format("2006-01-02 15:04:05"),
		order.SalonName,
		order.CustomerName,
		order.Address,
		order.City,
		order.CustomerPhone,
		order.AdditionalPhone,
		order.ItemsSummary(),
		payhere.FormatAmount(order.TotalCents),
		string(order.Status),
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.appendRange, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append order row: %w", err)
	}
	return nil
}
