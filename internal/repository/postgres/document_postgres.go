package postgres

import (
	"context"
	"database/sql"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `d.id, d.case_id, d.document_name, d.document_type, d.status,
		d.storage_path, d.file_size, d.content_type, d.uploaded_at, d.created_at, d.updated_at`

const documentDetailSelect = `
	SELECT ` + documentColumns + `, c.case_title, c.case_number
	FROM documents d
	JOIN cases c ON c.id = d.case_id`

func scanDocument(row interface{ Scan(...any) error }, d *model.Document) error {
	return row.Scan(
		&d.ID,
		&d.CaseID,
		&d.DocumentName,
		&d.DocumentType,
		&d.Status,
		&d.StoragePath,
		&d.FileSize,
		&d.ContentType,
		&d.UploadedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func scanDocumentDetail(row interface{ Scan(...any) error }, d *model.DocumentDetail) error {
	return row.Scan(
		&d.ID,
		&d.CaseID,
		&d.DocumentName,
		&d.DocumentType,
		&d.Status,
		&d.StoragePath,
		&d.FileSize,
		&d.ContentType,
		&d.UploadedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CaseTitle,
		&d.CaseNumber,
	)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, case_id, document_name, document_type, status,
			storage_path, file_size, content_type, uploaded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, case_id, document_name, document_type, status,
			storage_path, file_size, content_type, uploaded_at, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.CaseID,
		doc.DocumentName,
		doc.DocumentType,
		doc.Status,
		doc.StoragePath,
		doc.FileSize,
		doc.ContentType,
		doc.UploadedAt,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document joined with its case title/number.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.DocumentDetail, error) {
	q := documentDetailSelect + ` WHERE d.id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.DocumentDetail
	if err := scanDocumentDetail(row, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all documents joined with case title/number, newest first.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.DocumentDetail, error) {
	q := documentDetailSelect + ` ORDER BY d.created_at DESC, d.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentDetail, 0)
	for rows.Next() {
		var d model.DocumentDetail
		if err := scanDocumentDetail(rows, &d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the mutable metadata fields and returns the stored row.
// The storage path and byte size are never touched here.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET case_id = $2, document_name = $3, document_type = $4, status = $5, updated_at = $6
		WHERE id = $1
		RETURNING id, case_id, document_name, document_type, status,
			storage_path, file_size, content_type, uploaded_at, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.CaseID,
		doc.DocumentName,
		doc.DocumentType,
		doc.Status,
		doc.UpdatedAt,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Ignore rows affected; the service resolves the record before deleting.
	_, _ = res.RowsAffected()
	return nil
}

// CountByStatus groups documents by status.
func (r *DocumentPostgres) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	const q = `SELECT status, COUNT(*) FROM documents GROUP BY status ORDER BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.StatusCount, 0)
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
