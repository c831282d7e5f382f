package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"caseflow/internal/model"
	"caseflow/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caseDetailScanCols = []string{
	"id", "case_title", "case_number", "client_id", "case_type", "status",
	"priority", "description", "start_date", "next_hearing_date", "assigned_to",
	"created_at", "updated_at", "client_name", "client_email", "assignee_name", "assignee_email",
}

func caseDetailRow(rows *sqlmock.Rows, id string, hearing any, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "Acme Corp vs TechStart Inc", "CASE-2025-001", "client-1",
		"Intellectual Property", "In Progress", "High", "Patent dispute",
		now, hearing, "user-1", now, now,
		"Acme Corporation", "contact@acme.com", "John Doe", "john@example.com")
}

func TestCaseFilterClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   repository.CaseFilter
		want     string
		wantArgs []any
	}{
		{
			name:   "empty filter",
			filter: repository.CaseFilter{},
			want:   "",
		},
		{
			name:     "single field",
			filter:   repository.CaseFilter{Status: "Open"},
			want:     " WHERE c.status = $1",
			wantArgs: []any{"Open"},
		},
		{
			name:     "multiple fields keep positional order",
			filter:   repository.CaseFilter{Status: "Open", Priority: "High", ClientID: "client-1"},
			want:     " WHERE c.status = $1 AND c.priority = $2 AND c.client_id = $3",
			wantArgs: []any{"Open", "High", "client-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := caseFilterClause(tt.filter)
			assert.Equal(t, tt.want, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCaseOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort []repository.SortField
		want string
	}{
		{
			name: "default newest first",
			sort: nil,
			want: " ORDER BY c.created_at DESC, c.id DESC",
		},
		{
			name: "descending then ascending",
			sort: []repository.SortField{{Field: "created_at", Desc: true}, {Field: "priority"}},
			want: " ORDER BY c.created_at DESC, c.priority ASC",
		},
		{
			name: "unknown fields are dropped",
			sort: []repository.SortField{{Field: "id; DROP TABLE cases"}, {Field: "status"}},
			want: " ORDER BY c.status ASC",
		},
		{
			name: "only unknown fields fall back to default",
			sort: []repository.SortField{{Field: "bogus"}},
			want: " ORDER BY c.created_at DESC, c.id DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, caseOrderClause(tt.sort))
		})
	}
}

func TestCasePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)
	ctx := context.Background()

	t.Run("found with hearing", func(t *testing.T) {
		now := time.Now().UTC()
		hearing := now.Add(48 * time.Hour)
		rows := caseDetailRow(sqlmock.NewRows(caseDetailScanCols), "case-1", hearing, now)

		mock.ExpectQuery("SELECT (.+) FROM cases c").
			WithArgs("case-1").
			WillReturnRows(rows)

		d, err := repo.FindByID(ctx, "case-1")

		require.NoError(t, err)
		assert.Equal(t, "case-1", d.ID)
		assert.Equal(t, "client-1", d.Client.ID)
		assert.Equal(t, "Acme Corporation", d.Client.Name)
		assert.Equal(t, "John Doe", d.Assignee.Name)
		require.NotNil(t, d.NextHearingDate)
		assert.WithinDuration(t, hearing, *d.NextHearingDate, time.Second)
	})

	t.Run("null hearing date", func(t *testing.T) {
		rows := caseDetailRow(sqlmock.NewRows(caseDetailScanCols), "case-2", nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM cases c").
			WithArgs("case-2").
			WillReturnRows(rows)

		d, err := repo.FindByID(ctx, "case-2")

		require.NoError(t, err)
		assert.Nil(t, d.NextHearingDate)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cases c").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		d, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, d)
	})
}

func TestCasePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)
	ctx := context.Background()

	t.Run("filtered page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cases c WHERE").
			WithArgs("Open", "High").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		rows := caseDetailRow(sqlmock.NewRows(caseDetailScanCols), "case-1", nil, time.Now())
		mock.ExpectQuery("SELECT (.+) FROM cases c(.+) WHERE (.+) LIMIT").
			WithArgs("Open", "High", 10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx,
			repository.CaseFilter{Status: "Open", Priority: "High"},
			nil,
			repository.PageQuery{Limit: 10, Offset: 0},
		)

		require.NoError(t, err)
		assert.Equal(t, 12, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("unfiltered page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM cases c").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM cases c(.+) LIMIT").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(caseDetailScanCols))

		res, err := repo.List(ctx, repository.CaseFilter{}, nil, repository.PageQuery{Limit: 10, Offset: 20})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})
}

func TestCasePostgres_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)
	ctx := context.Background()

	rows := caseDetailRow(sqlmock.NewRows(caseDetailScanCols), "case-1", nil, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM cases c(.+) ILIKE").
		WithArgs("%acme%").
		WillReturnRows(rows)

	items, err := repo.Search(ctx, "acme")

	require.NoError(t, err)
	assert.Len(t, items, 1)

	// ILIKE metacharacters in the query match literally
	mock.ExpectQuery("SELECT (.+) FROM cases c(.+) ILIKE").
		WithArgs(`%CASE\_2025\%%`).
		WillReturnRows(sqlmock.NewRows(caseDetailScanCols))

	_, err = repo.Search(ctx, "CASE_2025%")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCasePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cases WHERE id = ?").
			WithArgs("case-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "case-1"))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cases WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestCasePostgres_Totals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "open", "closed"}).AddRow(10, 7, 3))

	totals, err := repo.Totals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.CaseTotals{Total: 10, Open: 7, Closed: 3}, totals)
}

func TestCasePostgres_UpcomingHearings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)

	from := time.Now().UTC()
	to := from.Add(7 * 24 * time.Hour)
	hearing := from.Add(48 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "case_title", "case_number", "next_hearing_date", "name"}).
		AddRow("case-1", "Acme Corp vs TechStart Inc", "CASE-2025-001", hearing, "Acme Corporation")

	mock.ExpectQuery("SELECT (.+) FROM cases c(.+) next_hearing_date").
		WithArgs(from, to).
		WillReturnRows(rows)

	hearings, err := repo.UpcomingHearings(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, hearings, 1)
	assert.Equal(t, "Acme Corporation", hearings[0].ClientName)
	assert.WithinDuration(t, hearing, hearings[0].NextHearingDate, time.Second)
}

func TestCasePostgres_Recent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCasePostgres(db)

	rows := caseDetailRow(sqlmock.NewRows(caseDetailScanCols), "case-1", nil, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM cases c(.+) LIMIT").
		WithArgs(5).
		WillReturnRows(rows)

	items, err := repo.Recent(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, items, 1)
}
