package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"report_relay_bot/internal/domain/report"
)

// Columns is the header row of an export, one entry per reports column.
var Columns = []string{
	"id",
	"created_at",
	"category",
	"object_code",
	"user_id",
	"user_name",
	"username",
	"chat_id",
	"message_id",
	"content_type",
	"text_preview",
}

const timeLayout = "2006-01-02 15:04:05"

// WriteCSV writes reports, in the given order, to path and returns the path.
// Missing parent directories are created.
func WriteCSV(path string, reports []*report.Report) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}
	for _, r := range reports {
		if err := w.Write(row(r)); err != nil {
			return "", fmt.Errorf("failed to write report %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

func row(r *report.Report) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.CreatedAt.Format(timeLayout),
		r.Category,
		r.ObjectCode,
		strconv.FormatInt(r.UserID, 10),
		r.UserName,
		r.Username.String,
		strconv.FormatInt(r.ChatID, 10),
		strconv.Itoa(r.MessageID),
		string(r.ContentType),
		r.TextPreview,
	}
}
