package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"caseflow/internal/model"
	repoMocks "caseflow/internal/repository/mocks"
	"caseflow/internal/storage"
	storeMocks "caseflow/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		upload     DocumentUpload
		maxSize    int64
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, doc *model.Document)
	}{
		{
			name: "happy path",
			upload: DocumentUpload{
				CaseID:           "case-1",
				OriginalFilename: "contract.pdf",
				ContentType:      "application/pdf",
				Size:             11,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				r := strings.NewReader("hello world")
				mCases.On("FindByID", ctx, "case-1").Return(&model.CaseDetail{}, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "contract.pdf"},
				}).Return(storage.ObjectInfo{
					Key:         "documents/uuid.pdf",
					Size:        11,
					ContentType: "application/pdf",
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.DocumentName == "contract.pdf" &&
						doc.DocumentType == "Other" &&
						doc.Status == model.DocumentStatusPending &&
						doc.StoragePath == "documents/uuid.pdf"
				})).Return(&model.Document{ID: "gen-id", StoragePath: "documents/uuid.pdf"}, nil)

				return r
			},
			check: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, "gen-id", doc.ID)
			},
		},
		{
			name:   "validation error - nil reader",
			upload: DocumentUpload{CaseID: "case-1", OriginalFilename: "contract.pdf"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:   "validation error - missing case id",
			upload: DocumentUpload{OriginalFilename: "contract.pdf"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErrMsg: "case_id",
		},
		{
			name:    "file too large",
			upload:  DocumentUpload{CaseID: "case-1", OriginalFilename: "big.bin", Size: 100},
			maxSize: 10,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name:   "case does not exist - nothing reaches storage",
			upload: DocumentUpload{CaseID: "missing", OriginalFilename: "contract.pdf", Size: 1},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				mCases.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
				return strings.NewReader("x")
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "storage error",
			upload: DocumentUpload{CaseID: "case-1", OriginalFilename: "contract.pdf", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				r := strings.NewReader("hello")
				mCases.On("FindByID", ctx, "case-1").Return(&model.CaseDetail{}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:   "db save fails - object rolled back",
			upload: DocumentUpload{CaseID: "case-1", OriginalFilename: "contract.pdf", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				r := strings.NewReader("hello")
				mCases.On("FindByID", ctx, "case-1").Return(&model.CaseDetail{}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/uuid.pdf", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/")
				})).Return(nil)
				return r
			},
			wantErrMsg: "db save failed",
		},
		{
			name:   "db save and rollback both fail",
			upload: DocumentUpload{CaseID: "case-1", OriginalFilename: "contract.pdf", Size: 5},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mCases *repoMocks.MockCaseRepository) io.Reader {
				r := strings.NewReader("hello")
				mCases.On("FindByID", ctx, "case-1").Return(&model.CaseDetail{}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/uuid.pdf", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			mCases := new(repoMocks.MockCaseRepository)
			r := tt.setupMocks(mStore, mRepo, mCases)

			svc := NewDocumentService(mStore, mRepo, mCases, tt.maxSize)
			doc, err := svc.Upload(ctx, r, tt.upload)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, doc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, doc)
				if tt.check != nil {
					tt.check(t, doc)
				}
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mCases.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("streams the stored object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{
			ID: "doc-1", DocumentName: "contract.pdf", StoragePath: "documents/uuid.pdf",
		}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		body := io.NopCloser(strings.NewReader("bytes"))
		mStore.On("Get", ctx, "documents/uuid.pdf").Return(body, storage.ObjectInfo{}, nil)

		rc, doc, err := svc.Open(ctx, "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "contract.pdf", doc.DocumentName)
		got, _ := io.ReadAll(rc)
		assert.Equal(t, "bytes", string(got))
	})

	t.Run("missing object surfaces as not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{ID: "doc-1", StoragePath: "documents/gone.pdf"}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		mStore.On("Get", ctx, "documents/gone.pdf").
			Return(io.NopCloser(strings.NewReader("")), storage.ObjectInfo{}, storage.ErrNotExist)

		_, _, err := svc.Open(ctx, "doc-1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Open(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes object then record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{ID: "doc-1", StoragePath: "documents/uuid.pdf"}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		mStore.On("Delete", ctx, "documents/uuid.pdf").Return(nil)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing object is tolerated", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{ID: "doc-1", StoragePath: "documents/gone.pdf"}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		mStore.On("Delete", ctx, "documents/gone.pdf").Return(storage.ErrNotExist)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1"))
	})

	t.Run("storage failure keeps the record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{ID: "doc-1", StoragePath: "documents/uuid.pdf"}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		mStore.On("Delete", ctx, "documents/uuid.pdf").Return(errors.New("backend down"))

		err := svc.Delete(ctx, "doc-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete storage")
		mRepo.AssertNotCalled(t, "Delete", ctx, "doc-1")
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial metadata update", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{
			ID: "doc-1", CaseID: "case-1", DocumentName: "old.pdf", DocumentType: "Contract",
			Status: model.DocumentStatusPending,
		}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(d *model.Document) bool {
			return d.DocumentName == "new.pdf" && d.CaseID == "case-1" && d.Status == model.DocumentStatusReviewed
		})).Return(&model.Document{ID: "doc-1", DocumentName: "new.pdf"}, nil)

		doc, err := svc.Update(ctx, "doc-1", DocumentUpdate{DocumentName: "new.pdf", Status: model.DocumentStatusReviewed})

		require.NoError(t, err)
		assert.Equal(t, "new.pdf", doc.DocumentName)
	})

	t.Run("invalid status", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, nil, 0)

		detail := &model.DocumentDetail{Document: model.Document{ID: "doc-1"}}
		mRepo.On("FindByID", ctx, "doc-1").Return(detail, nil)

		_, err := svc.Update(ctx, "doc-1", DocumentUpdate{Status: "Shredded"})

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}
