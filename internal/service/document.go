package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/model"
	"caseflow/internal/repository"
	"caseflow/internal/storage"
)

// DocumentUpload carries the metadata accompanying an uploaded file.
type DocumentUpload struct {
	CaseID           string
	OriginalFilename string
	DocumentName     string
	DocumentType     string
	ContentType      string
	Size             int64
}

// DocumentUpdate carries the writable metadata fields for partial updates.
// The stored bytes are never touched by an update.
type DocumentUpdate struct {
	CaseID       string `json:"case_id"`
	DocumentName string `json:"document_name"`
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
}

// DocumentService defines the use cases for handling case documents.
type DocumentService interface {
	// Upload verifies the target case, streams the content to object storage,
	// saves metadata to the DB, and rolls back storage if the DB save fails.
	// The object key is UUID + original extension; the original name is kept
	// as the document name unless an explicit one is supplied.
	Upload(ctx context.Context, r io.Reader, up DocumentUpload) (*model.Document, error)

	// List returns all documents joined with case title/number.
	List(ctx context.Context) ([]model.DocumentDetail, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.DocumentDetail, error)

	// Open streams the stored bytes for download or inline viewing.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// Update applies a partial metadata update.
	Update(ctx context.Context, id string, in DocumentUpdate) (*model.Document, error)

	// Delete removes the object (best effort) and then the record.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	cases   repository.CaseRepository
	maxSize int64
}

// NewDocumentService constructs a new DocumentService. maxSize caps upload
// payloads in bytes; zero or negative disables the cap.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, cases repository.CaseRepository, maxSize int64) DocumentService {
	return &documentService{store: store, repo: repo, cases: cases, maxSize: maxSize}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, up DocumentUpload) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if up.CaseID == "" {
		var fe fieldErrors
		fe.add("case_id", "case is required")
		return nil, fe.err()
	}
	if s.maxSize > 0 && up.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	// The case must exist before any storage write happens.
	if _, err := s.cases.FindByID(ctx, up.CaseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Generate object key using UUID + extension
	ext := filepath.Ext(up.OriginalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": up.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	name := up.DocumentName
	if name == "" {
		name = up.OriginalFilename
	}
	docType := up.DocumentType
	if docType == "" {
		docType = "Other"
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:           uuid.New().String(),
		CaseID:       up.CaseID,
		DocumentName: name,
		DocumentType: docType,
		Status:       model.DocumentStatusPending,
		StoragePath:  objInfo.Key,
		FileSize:     objInfo.Size,
		ContentType:  contentType,
		UploadedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context) ([]model.DocumentDetail, error) {
	return s.repo.List(ctx)
}

func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Open returns the stored bytes and the owning record. A missing record or
// a missing backing object both surface as ErrNotFound.
func (s *documentService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return rc, &doc.Document, nil
}

func (s *documentService) Update(ctx context.Context, id string, in DocumentUpdate) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := existing.Document
	if in.CaseID != "" {
		doc.CaseID = in.CaseID
	}
	if in.DocumentName != "" {
		doc.DocumentName = in.DocumentName
	}
	if in.DocumentType != "" {
		doc.DocumentType = in.DocumentType
	}
	if in.Status != "" {
		if !model.ValidDocumentStatus(in.Status) {
			var fe fieldErrors
			fe.add("status", "invalid document status")
			return nil, fe.err()
		}
		doc.Status = in.Status
	}
	doc.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, &doc)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrBadReference
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	// Find the document to get its storage path
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Remove the object first; a missing object is tolerated so the record
	// never outlives its binary.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil && !errors.Is(err, storage.ErrNotExist) {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}
