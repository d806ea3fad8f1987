package services

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/trackflow/trackflow/backend/internal/models"
	"github.com/trackflow/trackflow/backend/pkg/logger"
)

var activityDB *gorm.DB

// InitActivityLogger wires activity logging to a database. Until it is
// called (memory and remote store modes), Log* calls are no-ops.
func InitActivityLogger(db *gorm.DB) {
	activityDB = db
}

func LogInfo(module, action, message string, issueID *uint, extra interface{}) {
	writeActivity("info", module, action, message, issueID, extra)
}

func LogWarn(module, action, message string, issueID *uint, extra interface{}) {
	writeActivity("warning", module, action, message, issueID, extra)
}

func LogError(module, action, message string, issueID *uint, extra interface{}) {
	writeActivity("error", module, action, message, issueID, extra)
}

func writeActivity(level, module, action, message string, issueID *uint, extra interface{}) {
	if activityDB == nil {
		return
	}

	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := &models.ActivityLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		IssueID:   issueID,
		Extra:     extraStr,
		CreatedAt: time.Now(),
	}
	activityDB.Create(entry)
}

type ActivityLogService struct {
	db            *gorm.DB
	retentionDays int
	scheduler     *cron.Cron
}

func NewActivityLogService(db *gorm.DB, retentionDays int) *ActivityLogService {
	return &ActivityLogService{db: db, retentionDays: retentionDays}
}

type ActivityLogListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Level    string `form:"level"`
	Module   string `form:"module"`
	IssueID  uint   `form:"issue_id"`
	Search   string `form:"search"`
}

type ActivityLogListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.ActivityLog `json:"items"`
}

func (s *ActivityLogService) List(req *ActivityLogListRequest) (*ActivityLogListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	var logs []models.ActivityLog
	var total int64

	query := s.db.Model(&models.ActivityLog{})

	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.IssueID != 0 {
		query = query.Where("issue_id = ?", req.IssueID)
	}
	if req.Search != "" {
		query = query.Where("message LIKE ?", "%"+req.Search+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return &ActivityLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    logs,
	}, nil
}

// CleanupOldLogs deletes entries older than the retention window.
// Returns the number of deleted records.
func (s *ActivityLogService) CleanupOldLogs() (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StartCleanupScheduler runs retention cleanup once at startup and then
// daily at 03:00.
func (s *ActivityLogService) StartCleanupScheduler() {
	s.runCleanup()

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc("0 3 * * *", s.runCleanup); err != nil {
		logger.Errorf("failed to schedule activity log cleanup: %v", err)
		return
	}
	s.scheduler.Start()
	logger.Info().Msg("activity log cleanup scheduler started")
}

func (s *ActivityLogService) StopCleanupScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *ActivityLogService) runCleanup() {
	if s.retentionDays <= 0 {
		return
	}

	deleted, err := s.CleanupOldLogs()
	if err != nil {
		logger.Errorf("activity log cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		logger.Infof("cleaned up %d activity logs older than %d days", deleted, s.retentionDays)
	}
}
