package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"smartMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportEngine struct {
	outcome domain.ReportOutcome
	err     error
}

func (f *fakeReportEngine) GenerateReport(ctx context.Context, reportType string, userID uint, storeID *uint64, dateFrom, dateTo time.Time, parameters map[string]any) (domain.ReportOutcome, error) {
	return f.outcome, f.err
}

type fakeReportRepo struct {
	created     *domain.GeneratedReport
	updated     []domain.GeneratedReport
	found       domain.GeneratedReport
	findErr     error
	downloads   int
	touched     int
	schedule    *domain.ReportSchedule
	userReports []domain.GeneratedReport
}

func (f *fakeReportRepo) Create(ctx context.Context, report *domain.GeneratedReport) error {
	report.ID = 1
	report.GeneratedAt = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	f.created = report
	return nil
}

func (f *fakeReportRepo) Update(ctx context.Context, report *domain.GeneratedReport) error {
	f.updated = append(f.updated, *report)
	return nil
}

func (f *fakeReportRepo) FindByIDForUser(ctx context.Context, id uint64, userID uint) (domain.GeneratedReport, error) {
	return f.found, f.findErr
}

func (f *fakeReportRepo) FindByUser(ctx context.Context, userID uint) ([]domain.GeneratedReport, error) {
	return f.userReports, nil
}

func (f *fakeReportRepo) TouchLastAccessed(ctx context.Context, id uint64, at time.Time) error {
	f.touched++
	return nil
}

func (f *fakeReportRepo) RecordDownload(ctx context.Context, id uint64, at time.Time) error {
	f.downloads++
	return nil
}

func (f *fakeReportRepo) CreateSchedule(ctx context.Context, schedule *domain.ReportSchedule) error {
	schedule.ID = 5
	f.schedule = schedule
	return nil
}

func (f *fakeReportRepo) FindSchedulesByUser(ctx context.Context, userID uint) ([]domain.ReportSchedule, error) {
	if f.schedule == nil {
		return nil, nil
	}
	return []domain.ReportSchedule{*f.schedule}, nil
}

func validRequest() GenerateRequest {
	return GenerateRequest{
		ReportType: "sales_summary",
		DateFrom:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Parameters: map[string]any{"group_by": "week"},
	}
}

func TestGenerateSuccess(t *testing.T) {
	engine := &fakeReportEngine{outcome: domain.ReportOutcome{
		RawData:        map[string]any{"total_sales": 1200.5},
		AISummary:      "Sales grew steadily.",
		Visualizations: map[string]any{"chart": "line"},
	}}
	repo := &fakeReportRepo{}

	svc := NewReportService(engine, repo)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.timeSource = func() time.Time { return now }

	report, err := svc.Generate(context.Background(), 7, validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ReportStatusCompleted, report.Status)
	assert.Equal(t, "Sales grew steadily.", report.AISummaryText)
	require.NotNil(t, report.CompletedAt)
	assert.Equal(t, now, *report.CompletedAt)

	// row was first created as pending, then updated to completed
	require.NotNil(t, repo.created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domain.ReportStatusCompleted, repo.updated[0].Status)
}

func TestGenerateEngineFailureIsTerminal(t *testing.T) {
	engine := &fakeReportEngine{err: errors.New("engine unavailable")}
	repo := &fakeReportRepo{}

	svc := NewReportService(engine, repo)

	report, err := svc.Generate(context.Background(), 7, validRequest())
	require.Error(t, err)
	assert.Equal(t, "report generation failed", err.Error())
	assert.Nil(t, report)

	// report row is marked failed, with no result data attached
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domain.ReportStatusFailed, repo.updated[0].Status)
	assert.Empty(t, repo.updated[0].RawData)
	assert.Nil(t, repo.updated[0].CompletedAt)
}

func TestGenerateValidation(t *testing.T) {
	svc := NewReportService(&fakeReportEngine{}, &fakeReportRepo{})

	req := validRequest()
	req.ReportType = ""
	_, err := svc.Generate(context.Background(), 7, req)
	require.Error(t, err)
	assert.Equal(t, "report type is required", err.Error())

	req = validRequest()
	req.DateTo = req.DateFrom.AddDate(0, 0, -1)
	_, err = svc.Generate(context.Background(), 7, req)
	require.Error(t, err)
	assert.Equal(t, "date_to must not be before date_from", err.Error())
}

func TestGetTouchesLastAccessed(t *testing.T) {
	repo := &fakeReportRepo{found: domain.GeneratedReport{ID: 3, Status: domain.ReportStatusCompleted}}
	svc := NewReportService(&fakeReportEngine{}, repo)

	report, err := svc.Get(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.touched)
	assert.NotNil(t, report.LastAccessed)
}

func TestGetStatus(t *testing.T) {
	completedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeReportRepo{found: domain.GeneratedReport{
		ID:          3,
		Status:      domain.ReportStatusCompleted,
		CompletedAt: &completedAt,
	}}
	svc := NewReportService(&fakeReportEngine{}, repo)

	status, err := svc.GetStatus(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 100, status.Progress)
	assert.Empty(t, status.ErrorMsg)

	repo.found = domain.GeneratedReport{ID: 4, Status: domain.ReportStatusFailed}
	status, err = svc.GetStatus(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Progress)
	assert.Equal(t, "Report generation failed", status.ErrorMsg)
}

func TestDownloadPendingReportNotFound(t *testing.T) {
	repo := &fakeReportRepo{found: domain.GeneratedReport{ID: 3, Status: domain.ReportStatusPending}}
	svc := NewReportService(&fakeReportEngine{}, repo)

	_, err := svc.DownloadReport(context.Background(), 7, 3, FormatJSON)
	require.Error(t, err)
	assert.Equal(t, "report not found", err.Error())
	assert.Zero(t, repo.downloads)
}

func TestDownloadCompletedReport(t *testing.T) {
	repo := &fakeReportRepo{found: domain.GeneratedReport{
		ID:            3,
		ReportType:    "sales_summary",
		Status:        domain.ReportStatusCompleted,
		GeneratedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		AISummaryText: "All good.",
	}}
	svc := NewReportService(&fakeReportEngine{}, repo)

	download, err := svc.DownloadReport(context.Background(), 7, 3, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.downloads)
	assert.Equal(t, "text/csv", download.ContentType)
	assert.Equal(t, "report_3.csv", download.Filename)

	content := string(download.Content)
	assert.True(t, strings.Contains(content, "sales_summary"))
	assert.True(t, strings.Contains(content, "2026-02-01 09:00"))

	download, err = svc.DownloadReport(context.Background(), 7, 3, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "report_3.xlsx", download.Filename)
	assert.NotEmpty(t, download.Content)

	// every download is recorded
	assert.Equal(t, 2, repo.downloads)
}

func TestDownloadSummaryTruncation(t *testing.T) {
	long := strings.Repeat("x", 150)
	assert.Equal(t, strings.Repeat("x", 100)+"...", truncateSummary(long))
	assert.Equal(t, "short", truncateSummary("short"))
}

func TestCreateSchedule(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := NewReportService(&fakeReportEngine{}, repo)

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.timeSource = func() time.Time { return now }

	schedule, err := svc.CreateSchedule(context.Background(), 7, "sales_summary", domain.FrequencyWeekly, nil)
	require.NoError(t, err)
	assert.True(t, schedule.IsActive)
	assert.Equal(t, now.Add(7*24*time.Hour), schedule.NextRun)
}

func TestFrequencyInterval(t *testing.T) {
	const day = 24 * time.Hour

	assert.Equal(t, day, FrequencyInterval(domain.FrequencyDaily))
	assert.Equal(t, 7*day, FrequencyInterval(domain.FrequencyWeekly))
	assert.Equal(t, 30*day, FrequencyInterval(domain.FrequencyMonthly))
	assert.Equal(t, 90*day, FrequencyInterval(domain.FrequencyQuarterly))
	assert.Equal(t, day, FrequencyInterval("fortnightly"))
}
