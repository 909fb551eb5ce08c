package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"report_relay_bot/internal/domain/report"
	"report_relay_bot/internal/infra/export"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not the report recipient")

type AdminService struct {
	reportRepo  report.Repository
	adminChatID int64
	exportDir   string
	now         func() time.Time
}

func NewAdminService(rr report.Repository, adminChatID int64, exportDir string) *AdminService {
	return &AdminService{
		reportRepo:  rr,
		adminChatID: adminChatID,
		exportDir:   exportDir,
		now:         time.Now,
	}
}

// IsAdmin reports whether the sender or the chat is the configured recipient.
func (s *AdminService) IsAdmin(senderID, chatID int64) bool {
	if s.adminChatID == 0 {
		return false
	}
	return senderID == s.adminChatID || chatID == s.adminChatID
}

// ListReports returns the newest reports matching the filter.
func (s *AdminService) ListReports(ctx context.Context, senderID, chatID int64, f ReportsFilter) ([]*report.Report, error) {
	if !s.IsAdmin(senderID, chatID) {
		return nil, ErrAdminNotAuthorized
	}

	reports, err := s.reportRepo.List(ctx, report.Filter{
		ObjectCode: f.ObjectCode,
		Category:   f.Category,
		Limit:      f.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// ExportReports writes every stored report to a new CSV file in the export
// directory and returns its path.
func (s *AdminService) ExportReports(ctx context.Context, senderID, chatID int64) (string, error) {
	if !s.IsAdmin(senderID, chatID) {
		return "", ErrAdminNotAuthorized
	}

	reports, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load reports for export: %w", err)
	}

	name := fmt.Sprintf("reports_%s.csv", s.now().Format("20060102_150405"))
	path, err := export.WriteCSV(filepath.Join(s.exportDir, name), reports)
	if err != nil {
		return "", fmt.Errorf("failed to export reports: %w", err)
	}
	return path, nil
}
