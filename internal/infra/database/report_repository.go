package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"report_relay_bot/internal/domain/report"
)

const MaxListLimit = 50

const reportColumns = `id, created_at, category, object_code, user_id, user_name, username,
	chat_id, message_id, content_type, text_preview`

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ClampLimit forces a listing limit into [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	d := r.db.Dialect
	query := fmt.Sprintf(`INSERT INTO reports (
		category, object_code, user_id, user_name, username,
		chat_id, message_id, content_type, text_preview
	) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4), d.placeholder(5),
		d.placeholder(6), d.placeholder(7), d.placeholder(8), d.placeholder(9))

	args := []any{
		rep.Category, rep.ObjectCode, rep.UserID, rep.UserName, rep.Username,
		rep.ChatID, rep.MessageID, string(rep.ContentType), rep.TextPreview,
	}

	if d == DialectPostgres {
		err := r.db.QueryRowContext(ctx, query+` RETURNING id, created_at`, args...).Scan(&rep.ID, &rep.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating report: %w", err)
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	rep.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading report id: %w", err)
	}
	err = r.db.QueryRowContext(ctx, `SELECT created_at FROM reports WHERE id = ?`, rep.ID).Scan(&rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("error reading report timestamp: %w", err)
	}
	return nil
}

func (r *ReportRepository) List(ctx context.Context, f report.Filter) ([]*report.Report, error) {
	d := r.db.Dialect
	var (
		where []string
		args  []any
	)
	if f.ObjectCode != nil && *f.ObjectCode != "" {
		args = append(args, *f.ObjectCode)
		where = append(where, "object_code = "+d.placeholder(len(args)))
	}
	if f.Category != nil && *f.Category != "" {
		args = append(args, *f.Category)
		where = append(where, "category = "+d.placeholder(len(args)))
	}

	query := "SELECT " + reportColumns + " FROM reports"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, ClampLimit(f.Limit))
	query += " ORDER BY id DESC LIMIT " + d.placeholder(len(args))

	return r.query(ctx, query, args...)
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]*report.Report, error) {
	return r.query(ctx, "SELECT "+reportColumns+" FROM reports ORDER BY id DESC")
}

func (r *ReportRepository) query(ctx context.Context, query string, args ...any) ([]*report.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*report.Report, 0)
	for rows.Next() {
		rep := &report.Report{}
		var (
			contentType string
			preview     sql.NullString
		)
		if err := rows.Scan(&rep.ID, &rep.CreatedAt, &rep.Category, &rep.ObjectCode, &rep.UserID, &rep.UserName,
			&rep.Username, &rep.ChatID, &rep.MessageID, &contentType, &preview); err != nil {
			return nil, fmt.Errorf("error scanning report: %w", err)
		}
		rep.ContentType = report.ContentType(contentType)
		rep.TextPreview = preview.String
		reports = append(reports, rep)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}
