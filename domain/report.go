package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusCompleted = "completed"
	ReportStatusFailed    = "failed"
)

const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// GeneratedReport is one report generation attempt. Created pending and
// moved to completed or failed within the same request. Both are terminal.
type GeneratedReport struct {
	ID             uint64            `gorm:"primaryKey" json:"id"`
	ReportType     string            `gorm:"column:report_type;not null" json:"report_type"`
	GeneratedByID  uint              `gorm:"column:generated_by;not null;index" json:"generated_by"`
	StoreID        *uint64           `gorm:"column:store_id" json:"store_id,omitempty"`
	DateFrom       time.Time         `gorm:"column:date_from;not null" json:"date_from"`
	DateTo         time.Time         `gorm:"column:date_to;not null" json:"date_to"`
	Parameters     datatypes.JSONMap `gorm:"column:parameters;type:jsonb" json:"parameters"`
	Status         string            `gorm:"column:status;default:pending" json:"status"`
	RawData        datatypes.JSONMap `gorm:"column:raw_data;type:jsonb" json:"raw_data,omitempty"`
	AISummaryText  string            `gorm:"column:ai_summary_text;type:text" json:"ai_summary_text"`
	Visualizations datatypes.JSONMap `gorm:"column:visualizations;type:jsonb" json:"visualizations,omitempty"`
	DownloadCount  int               `gorm:"column:download_count;default:0" json:"download_count"`
	GeneratedAt    time.Time         `gorm:"column:generated_at;autoCreateTime" json:"generated_at"`
	CompletedAt    *time.Time        `gorm:"column:completed_at" json:"completed_at,omitempty"`
	LastAccessed   *time.Time        `gorm:"column:last_accessed" json:"last_accessed,omitempty"`
}

func (GeneratedReport) TableName() string {
	return "generated_reports"
}

// ReportSchedule is a recurring report intent. next_run is computed once at
// creation; there is no recurrence engine firing it.
type ReportSchedule struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	ReportType string            `gorm:"column:report_type;not null" json:"report_type"`
	Frequency  string            `gorm:"column:frequency;not null" json:"frequency"`
	Parameters datatypes.JSONMap `gorm:"column:parameters;type:jsonb" json:"parameters"`
	IsActive   bool              `gorm:"column:is_active;default:true" json:"is_active"`
	NextRun    time.Time         `gorm:"column:next_run;not null" json:"next_run"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReportSchedule) TableName() string {
	return "report_schedules"
}
