package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/auspex/internal/models"
)

// ErrReportNotFound indicates no report exists for the requested ticker.
var ErrReportNotFound = errors.New("storage: forecast report not found")

// ReportStorage stores and retrieves forecast reports.
type ReportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportStorage creates a new ReportStorage instance
func NewReportStorage(db *BadgerDB, logger arbor.ILogger) *ReportStorage {
	return &ReportStorage{
		db:     db,
		logger: logger,
	}
}

// Save persists a forecast report, assigning an ID and timestamp when absent.
func (s *ReportStorage) Save(ctx context.Context, report *models.ForecastReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save forecast report: %w", err)
	}

	s.logger.Debug().
		Str("ticker", report.Ticker).
		Str("report_id", report.ID).
		Msg("Forecast report saved")

	return nil
}

// GetLatest returns the most recent report for a ticker.
func (s *ReportStorage) GetLatest(ctx context.Context, ticker string) (*models.ForecastReport, error) {
	var reports []models.ForecastReport
	query := badgerhold.Where("Ticker").Eq(ticker).SortBy("GeneratedAt").Reverse().Limit(1)
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to query forecast reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, ErrReportNotFound
	}
	return &reports[0], nil
}

// ListByTicker returns all reports for a ticker, newest first.
func (s *ReportStorage) ListByTicker(ctx context.Context, ticker string) ([]models.ForecastReport, error) {
	var reports []models.ForecastReport
	query := badgerhold.Where("Ticker").Eq(ticker).SortBy("GeneratedAt").Reverse()
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to query forecast reports: %w", err)
	}
	return reports, nil
}
