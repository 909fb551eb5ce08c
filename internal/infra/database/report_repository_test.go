package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"report_relay_bot/internal/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *ReportRepository {
	t.Helper()
	db, err := Open("", filepath.Join(t.TempDir(), "data", "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReportRepository(db)
}

func sampleReport(category, objectCode string) *report.Report {
	return &report.Report{
		Category:    category,
		ObjectCode:  objectCode,
		UserID:      1,
		UserName:    "Иван",
		Username:    sql.NullString{String: "ivan", Valid: true},
		ChatID:      10,
		MessageID:   20,
		ContentType: report.ContentPhoto,
		TextPreview: "Показания отправлены",
	}
}

func strPtr(s string) *string { return &s }

func TestReportRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rep := sampleReport("📸 Счётчики", "KV-12")
	require.NoError(t, repo.Create(ctx, rep))
	assert.NotZero(t, rep.ID)
	assert.WithinDuration(t, time.Now(), rep.CreatedAt, time.Hour)

	got, err := repo.List(ctx, report.Filter{ObjectCode: strPtr("KV-12"), Category: strPtr("📸 Счётчики"), Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, rep.ID, got[0].ID)
	assert.Equal(t, "📸 Счётчики", got[0].Category)
	assert.Equal(t, "KV-12", got[0].ObjectCode)
	assert.Equal(t, int64(1), got[0].UserID)
	assert.Equal(t, "Иван", got[0].UserName)
	assert.Equal(t, sql.NullString{String: "ivan", Valid: true}, got[0].Username)
	assert.Equal(t, int64(10), got[0].ChatID)
	assert.Equal(t, 20, got[0].MessageID)
	assert.Equal(t, report.ContentPhoto, got[0].ContentType)
	assert.Equal(t, "Показания отправлены", got[0].TextPreview)
}

func TestReportRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, sampleReport("🛠 Ремонт", "A-1")))
	require.NoError(t, repo.Create(ctx, sampleReport("🛠 Ремонт", "B-2")))
	require.NoError(t, repo.Create(ctx, sampleReport("💸 Штраф", "A-1")))

	byObject, err := repo.List(ctx, report.Filter{ObjectCode: strPtr("A-1"), Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byObject, 2)

	byCategory, err := repo.List(ctx, report.Filter{Category: strPtr("🛠 Ремонт"), Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	both, err := repo.List(ctx, report.Filter{ObjectCode: strPtr("A-1"), Category: strPtr("💸 Штраф"), Limit: 10})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "💸 Штраф", both[0].Category)

	none, err := repo.List(ctx, report.Filter{ObjectCode: strPtr("missing"), Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReportRepository_ListNewestFirstAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, sampleReport("📝 Другое", fmt.Sprintf("OBJ-%d", i))))
	}

	got, err := repo.List(ctx, report.Filter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "OBJ-4", got[0].ObjectCode)
	assert.Equal(t, "OBJ-3", got[1].ObjectCode)
	assert.Equal(t, "OBJ-2", got[2].ObjectCode)

	// Zero limit is clamped up to one row.
	got, err = repo.List(ctx, report.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "OBJ-4", all[0].ObjectCode)
	assert.Equal(t, "OBJ-0", all[4].ObjectCode)
}

func TestReportRepository_NullableColumns(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rep := sampleReport("📝 Другое", "X")
	rep.Username = sql.NullString{}
	rep.TextPreview = ""
	require.NoError(t, repo.Create(ctx, rep))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].Username.Valid)
	assert.Empty(t, got[0].TextPreview)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(0))
	assert.Equal(t, 10, ClampLimit(10))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, 50, ClampLimit(100))
}

func TestDialectPlaceholder(t *testing.T) {
	assert.Equal(t, "?", DialectSQLite.placeholder(3))
	assert.Equal(t, "$3", DialectPostgres.placeholder(3))
}
