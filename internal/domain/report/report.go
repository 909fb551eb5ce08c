// internal/domain/report/report.go
package report

import (
	"database/sql"
	"time"
)

// PreviewLimit is the maximum number of characters kept in Report.TextPreview.
const PreviewLimit = 200

// Report is one relayed submission.
// Corresponds to the 'reports' table.
type Report struct {
	ID          int64     // assigned by the database
	CreatedAt   time.Time // assigned by the database
	Category    string
	ObjectCode  string
	UserID      int64
	UserName    string
	Username    sql.NullString // Telegram handle, optional
	ChatID      int64
	MessageID   int
	ContentType ContentType
	TextPreview string
}

// Filter narrows a report listing. Nil fields are not applied.
type Filter struct {
	ObjectCode *string
	Category   *string
	Limit      int
}

// Preview truncates text to PreviewLimit characters.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLimit {
		return text
	}
	return string(runes[:PreviewLimit])
}
