package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"smartMarket/domain"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/metrics"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// ReportEngine is the opaque external report generator.
type ReportEngine interface {
	GenerateReport(ctx context.Context, reportType string, userID uint, storeID *uint64, dateFrom, dateTo time.Time, parameters map[string]any) (domain.ReportOutcome, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.GeneratedReport) error
	Update(ctx context.Context, report *domain.GeneratedReport) error
	FindByIDForUser(ctx context.Context, id uint64, userID uint) (domain.GeneratedReport, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.GeneratedReport, error)
	TouchLastAccessed(ctx context.Context, id uint64, at time.Time) error
	RecordDownload(ctx context.Context, id uint64, at time.Time) error
	CreateSchedule(ctx context.Context, schedule *domain.ReportSchedule) error
	FindSchedulesByUser(ctx context.Context, userID uint) ([]domain.ReportSchedule, error)
}

type GenerateRequest struct {
	ReportType string
	StoreID    *uint64
	DateFrom   time.Time
	DateTo     time.Time
	Parameters map[string]any
}

// Download is a rendered report attachment.
type Download struct {
	Content     []byte
	ContentType string
	Filename    string
}

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type reportService struct {
	engine     ReportEngine
	reportRepo ReportRepository
	timeSource func() time.Time
}

func NewReportService(engine ReportEngine, reportRepo ReportRepository) *reportService {
	return &reportService{
		engine:     engine,
		reportRepo: reportRepo,
		timeSource: time.Now,
	}
}

// Generate creates the report row as pending and runs the engine inline.
// Success and failure are both terminal; a failed report is never retried,
// the caller submits a new request instead.
func (s *reportService) Generate(ctx context.Context, userID uint, req GenerateRequest) (*domain.GeneratedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if req.ReportType == "" {
		return nil, errors.New("report type is required")
	}
	if req.DateTo.Before(req.DateFrom) {
		return nil, errors.New("date_to must not be before date_from")
	}

	report := domain.GeneratedReport{
		ReportType:    req.ReportType,
		GeneratedByID: userID,
		StoreID:       req.StoreID,
		DateFrom:      req.DateFrom,
		DateTo:        req.DateTo,
		Parameters:    datatypes.JSONMap(req.Parameters),
		Status:        domain.ReportStatusPending,
	}

	if err := s.reportRepo.Create(ctx, &report); err != nil {
		logger.Error("Failed to create report record", "error", err)
		return nil, err
	}

	// TODO: move generation onto a task queue once one exists; today the
	// engine call runs inside the request.
	outcome, err := s.engine.GenerateReport(ctx, report.ReportType, userID, report.StoreID, report.DateFrom, report.DateTo, req.Parameters)
	if err != nil {
		logger.Error("Report generation failed", "report_id", report.ID, "error", err)

		report.Status = domain.ReportStatusFailed
		if updateErr := s.reportRepo.Update(ctx, &report); updateErr != nil {
			logger.Error("Failed to mark report as failed", "report_id", report.ID, "error", updateErr)
		}
		metrics.ReportGenerations.WithLabelValues(domain.ReportStatusFailed).Inc()

		return nil, errors.New("report generation failed")
	}

	completedAt := s.timeSource()
	report.RawData = datatypes.JSONMap(outcome.RawData)
	report.AISummaryText = outcome.AISummary
	report.Visualizations = datatypes.JSONMap(outcome.Visualizations)
	report.Status = domain.ReportStatusCompleted
	report.CompletedAt = &completedAt

	if err := s.reportRepo.Update(ctx, &report); err != nil {
		logger.Error("Failed to store completed report", "report_id", report.ID, "error", err)
		return nil, err
	}
	metrics.ReportGenerations.WithLabelValues(domain.ReportStatusCompleted).Inc()

	logger.Info("Report generated", "report_id", report.ID, "type", report.ReportType)

	return &report, nil
}

func (s *reportService) List(ctx context.Context, userID uint) ([]domain.GeneratedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.reportRepo.FindByUser(ctx, userID)
}

// Get returns the report and touches last_accessed as a side effect.
func (s *reportService) Get(ctx context.Context, userID uint, reportID uint64) (*domain.GeneratedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	report, err := s.reportRepo.FindByIDForUser(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeSource()
	if err := s.reportRepo.TouchLastAccessed(ctx, report.ID, now); err != nil {
		logger.Error("Failed to touch report", "report_id", report.ID, "error", err)
	}
	report.LastAccessed = &now

	return &report, nil
}

type Status struct {
	ID          uint64     `json:"id"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	GeneratedAt time.Time  `json:"generated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ErrorMsg    string     `json:"error_message,omitempty"`
}

func (s *reportService) GetStatus(ctx context.Context, userID uint, reportID uint64) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, fmt.Errorf("context error: %w", err)
	}

	report, err := s.reportRepo.FindByIDForUser(ctx, reportID, userID)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		ID:          report.ID,
		Status:      report.Status,
		GeneratedAt: report.GeneratedAt,
		CompletedAt: report.CompletedAt,
	}
	if report.Status == domain.ReportStatusCompleted {
		status.Progress = 100
	}
	if report.Status == domain.ReportStatusFailed {
		status.ErrorMsg = "Report generation failed"
	}

	return status, nil
}

// DownloadReport renders a completed report as an attachment and records
// the download. Non-completed reports are not downloadable.
func (s *reportService) DownloadReport(ctx context.Context, userID uint, reportID uint64, format string) (Download, error) {
	if err := ctx.Err(); err != nil {
		return Download{}, fmt.Errorf("context error: %w", err)
	}

	report, err := s.reportRepo.FindByIDForUser(ctx, reportID, userID)
	if err != nil {
		return Download{}, err
	}

	if report.Status != domain.ReportStatusCompleted {
		return Download{}, errors.New("report not found")
	}

	if err := s.reportRepo.RecordDownload(ctx, report.ID, s.timeSource()); err != nil {
		logger.Error("Failed to record report download", "report_id", report.ID, "error", err)
	}

	switch format {
	case FormatJSON:
		return renderJSON(report)
	case FormatXLSX:
		return renderXLSX(report)
	default:
		return renderCSV(report)
	}
}

func renderJSON(report domain.GeneratedReport) (Download, error) {
	content, err := json.Marshal(report.RawData)
	if err != nil {
		return Download{}, fmt.Errorf("failed to marshal report data: %w", err)
	}

	return Download{
		Content:     content,
		ContentType: "application/json",
		Filename:    fmt.Sprintf("report_%d.json", report.ID),
	}, nil
}

func renderCSV(report domain.GeneratedReport) (Download, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{
		{"Report Type", "Generated Date", "Summary"},
		{report.ReportType, report.GeneratedAt.Format("2006-01-02 15:04"), truncateSummary(report.AISummaryText)},
	}
	if err := writer.WriteAll(rows); err != nil {
		return Download{}, fmt.Errorf("failed to write csv: %w", err)
	}

	return Download{
		Content:     buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("report_%d.csv", report.ID),
	}, nil
}

func renderXLSX(report domain.GeneratedReport) (Download, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Report Type", "Generated Date", "Summary"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return Download{}, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	row := []any{report.ReportType, report.GeneratedAt.Format("2006-01-02 15:04"), truncateSummary(report.AISummaryText)}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		return Download{}, fmt.Errorf("failed to write xlsx row: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Download{}, fmt.Errorf("failed to render xlsx: %w", err)
	}

	return Download{
		Content:     buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    fmt.Sprintf("report_%d.xlsx", report.ID),
	}, nil
}

func truncateSummary(summary string) string {
	if len(summary) > 100 {
		return summary[:100] + "..."
	}
	return summary
}

// CreateSchedule computes a single next-run timestamp from the frequency.
// Unknown frequencies fall back to one day. No recurrence engine fires or
// reschedules these.
func (s *reportService) CreateSchedule(ctx context.Context, userID uint, reportType, frequency string, parameters map[string]any) (*domain.ReportSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if reportType == "" {
		return nil, errors.New("report type is required")
	}
	if frequency == "" {
		return nil, errors.New("frequency is required")
	}

	now := s.timeSource()

	schedule := domain.ReportSchedule{
		UserID:     userID,
		ReportType: reportType,
		Frequency:  frequency,
		Parameters: datatypes.JSONMap(parameters),
		IsActive:   true,
		NextRun:    now.Add(FrequencyInterval(frequency)),
	}

	if err := s.reportRepo.CreateSchedule(ctx, &schedule); err != nil {
		logger.Error("Failed to create report schedule", "error", err)
		return nil, err
	}

	return &schedule, nil
}

func (s *reportService) ListSchedules(ctx context.Context, userID uint) ([]domain.ReportSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.reportRepo.FindSchedulesByUser(ctx, userID)
}

// FrequencyInterval maps a schedule frequency to its fixed interval.
func FrequencyInterval(frequency string) time.Duration {
	const day = 24 * time.Hour

	switch frequency {
	case domain.FrequencyDaily:
		return day
	case domain.FrequencyWeekly:
		return 7 * day
	case domain.FrequencyMonthly:
		return 30 * day
	case domain.FrequencyQuarterly:
		return 90 * day
	default:
		return day
	}
}
